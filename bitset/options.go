package bitset

import "github.com/hupe1980/plwah/resource"

type options struct {
	ctrl *resource.Controller
}

// Option configures a Bitset.
type Option func(*options)

// WithController charges every buffer growth of the Bitset to rc.
// When rc runs out of memory its out-of-memory hook is invoked.
func WithController(rc *resource.Controller) Option {
	return func(o *options) {
		o.ctrl = rc
	}
}

func applyOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
