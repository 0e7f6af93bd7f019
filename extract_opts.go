package pak

import "log/slog"

// Option configures an Extractor.
type Option func(*Extractor)

// WithIndex sets the index used by Unpack and LoadTile.
func WithIndex(idx Index) Option {
	return func(e *Extractor) {
		e.index = idx
	}
}

// WithOpener sets how package files are opened. The default opens files
// read-only from the local file system.
func WithOpener(open SourceOpener) Option {
	return func(e *Extractor) {
		if open != nil {
			e.opener = open
		}
	}
}

// WithMaxFileSize limits the maximum entry size (on disk and decompressed).
// Set limit to 0 to disable the limit.
func WithMaxFileSize(limit uint64) Option {
	return func(e *Extractor) {
		e.maxFileSize = limit
	}
}

// WithoutDecoder removes the decoder for kind, so entries of that kind are
// returned as degraded zero-filled payloads. Tools use it to reproduce the
// client's behavior when its native decompressor is missing.
func WithoutDecoder(kind Compression) Option {
	return func(e *Extractor) {
		e.registry = e.registry.Without(kind)
	}
}

// WithLogger sets the logger for extraction diagnostics.
// If not set, logging is disabled.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Extractor) {
		e.logger = logger
	}
}
