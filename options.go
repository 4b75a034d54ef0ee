package scratch

// SessionOption configures a Session during creation.
//
// Example:
//
//	// Default configuration, events discarded
//	s, err := scratch.NewSession(pm)
//
//	// Custom brush and an event callback
//	cfg := scratch.DefaultConfig()
//	cfg.ErasePointRadius = 20
//	s, err := scratch.NewSession(pm,
//	    scratch.WithConfig(cfg),
//	    scratch.WithEventSink(scratch.EventSinkFunc(onEvent)),
//	)
type SessionOption func(*sessionOptions)

type sessionOptions struct {
	config   Config
	sink     EventSink
	loader   ImageLoader
	disabled bool
}

func defaultSessionOptions() sessionOptions {
	return sessionOptions{
		config: DefaultConfig(),
		sink:   nopSink{},
		loader: &SourceLoader{},
	}
}

// WithConfig replaces the default configuration. NewSession validates it.
func WithConfig(cfg Config) SessionOption {
	return func(o *sessionOptions) {
		o.config = cfg
	}
}

// WithEventSink sets where scratch and cleared events are delivered.
// A nil sink discards events.
func WithEventSink(sink EventSink) SessionOption {
	return func(o *sessionOptions) {
		if sink == nil {
			sink = nopSink{}
		}
		o.sink = sink
	}
}

// WithImageLoader sets the loader used by LoadMask.
// The default is a SourceLoader using http.DefaultClient and the OS file system.
func WithImageLoader(l ImageLoader) SessionOption {
	return func(o *sessionOptions) {
		if l != nil {
			o.loader = l
		}
	}
}

// WithDisabled creates the session with pointer input ignored.
func WithDisabled(disabled bool) SessionOption {
	return func(o *sessionOptions) {
		o.disabled = disabled
	}
}
