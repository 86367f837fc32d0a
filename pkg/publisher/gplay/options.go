package gplay

import (
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

// Option is a functor to pass optional parameters to the edits session
type Option func(*Edits)

// Logger specifies a logger for this session
func Logger(logger *zap.Logger) Option {
	return func(e *Edits) {
		if logger != nil {
			e.l = logger
		}
	}
}

// ChunkSize sets the size of the chunks sent when uploading a bundle.
//
// Bundles larger than a chunk are uploaded with a resumable transfer.
// A zero value uploads the bundle in a single request.
func ChunkSize(size int) Option {
	return func(e *Edits) {
		if size >= 0 {
			e.chunkSize = size
		}
	}
}

// WithClientOptions adds options to the underlying API client, e.g. a custom endpoint or http client
func WithClientOptions(opts ...option.ClientOption) Option {
	return func(e *Edits) {
		e.clientOptions = append(e.clientOptions, opts...)
	}
}
