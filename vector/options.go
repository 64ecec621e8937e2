package vector

import "github.com/hupe1980/plwah/resource"

type options struct {
	ctrl *resource.Controller
}

// Option configures a Vector.
type Option func(*options)

// WithController charges every buffer growth of the Vector, and of bitsets
// it produces, to rc.
func WithController(rc *resource.Controller) Option {
	return func(o *options) {
		o.ctrl = rc
	}
}

// ControllerOf returns the controller configured by opts, or nil.
func ControllerOf(opts ...Option) *resource.Controller {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o.ctrl
}
