package atlas

import (
	"github.com/datatrails/go-datatrails-common/logger"
)

// PackOptions configures TexturesToAtlas.
type PackOptions struct {
	log logger.Logger

	// validate selects the checked TextureLevel instead of the unchecked fast
	// path. Textures with a non power of two edge are then skipped.
	validate bool

	// when not nil, receives the reason each skipped index was skipped.
	skipReasons map[int]error
}

// Option is a generic option type. Implementations type assert to their
// options record and ignore options that do not apply to them.
type Option func(any)

func WithLogger(log logger.Logger) Option {
	return func(a any) {
		if opts, ok := a.(*PackOptions); ok {
			opts.log = log
		}
	}
}

func WithValidation(validate bool) Option {
	return func(a any) {
		if opts, ok := a.(*PackOptions); ok {
			opts.validate = validate
		}
	}
}

// WithSkipReasons records, for each skipped texture index, one of ErrTooLarge,
// ErrAtlasFull or ErrNotPow2 in reasons.
func WithSkipReasons(reasons map[int]error) Option {
	return func(a any) {
		if opts, ok := a.(*PackOptions); ok {
			opts.skipReasons = reasons
		}
	}
}

func NewPackOptions(opts ...Option) PackOptions {
	options := PackOptions{}
	for _, o := range opts {
		o(&options)
	}
	if options.log == nil {
		// callers that never configured logging get a silent logger
		if logger.Sugar == nil {
			logger.New("NOOP")
		}
		options.log = logger.Sugar.WithServiceName("atlas")
	}
	return options
}
