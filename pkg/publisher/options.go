package publisher

import "go.uber.org/zap"

// Option is a functor to pass optional parameters to the publisher
type Option func(*Publisher)

// Logger specifies a logger for this publisher
func Logger(logger *zap.Logger) Option {
	return func(p *Publisher) {
		if logger != nil {
			p.l = logger
		}
	}
}

// KeepListEdits leaves the edits opened to list bundles on the remote service, until they expire.
//
// By default, those edits are discarded as soon as the listing is done.
func KeepListEdits(keep bool) Option {
	return func(p *Publisher) {
		p.keepListEdits = keep
	}
}
