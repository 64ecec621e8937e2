package operation

import (
	"context"

	"github.com/hupe1980/plwah/estimate"
	"github.com/hupe1980/plwah/resource"
	"github.com/hupe1980/plwah/vector"
)

// Resolver turns the token of a lazy step into a vector. It may block.
// Returning a nil vector is the same as returning an empty one.
type Resolver func(ctx context.Context, token any) (*vector.Vector, error)

// Options configures evaluation. A tree is always evaluated with the options
// of its root operation.
type Options struct {
	// Estimator orders intersections. Defaults to estimate.Popcount.
	Estimator estimate.Estimator

	// Resolver resolves lazy steps during Exec. Without it Exec fails with
	// ErrUnresolved on a lazy step that ResolveData did not resolve.
	Resolver Resolver

	// Controller is charged for intermediate results and the result vector.
	Controller *resource.Controller

	// Concurrency bounds ResolveDataConcurrent. Defaults to Controller.Workers().
	Concurrency int
}

func defaultOptions() Options {
	return Options{
		Estimator: estimate.Popcount{},
	}
}
