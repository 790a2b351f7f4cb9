package cache

import (
	"errors"
	"io"
	"log/slog"
	"path/filepath"
)

// File names inside a cache directory.
const (
	FlowFile     = "flow_accumulation.raw"
	RiversFile   = "rivers.dat"
	LakesFile    = "lakes.dat"
	MetaFile     = "erosion_data.meta"
	PreviewFile  = "erosion_preview.png"
	ThresholdEps = 0.001 // river threshold comparison tolerance
)

var (
	// ErrCacheMiss indicates metadata or an artifact is absent.
	ErrCacheMiss = errors.New("cache: missing cache file")
	// ErrCacheMismatch indicates the cache was produced from other inputs.
	ErrCacheMismatch = errors.New("cache: parameters or source changed")
	// ErrCorrupt indicates a cache file could not be decoded.
	ErrCorrupt = errors.New("cache: malformed cache file")
	// ErrWrite indicates persisting an artifact failed.
	ErrWrite = errors.New("cache: write failed")
)

// Option configures cache operations.
type Option func(*Options)

// Options holds the logger used to report validation reasons and saves.
type Options struct {
	Logger *slog.Logger
}

// DefaultOptions returns a silent logger.
func DefaultOptions() Options {
	return Options{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

// WithLogger sets the logger. A nil logger is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

func buildOptions(opts []Option) Options {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Path joins dir and a cache file name.
func Path(dir, name string) string {
	return filepath.Join(dir, name)
}
