package accumulate

import (
	"errors"
	"io"
	"log/slog"

	"github.com/dave-hillier/sturdy-meme-sub013/grid"
)

var (
	// ErrTopologyDefect indicates the direction graph contains a cycle:
	// the topological queue drained before every cell was processed.
	ErrTopologyDefect = errors.New("accumulate: direction graph contains a cycle")

	// ErrNilGrid is returned when a nil flow grid is passed.
	ErrNilGrid = errors.New("accumulate: flow grid is nil")
)

// Option configures Accumulate.
type Option func(*Options)

// Options holds hooks for Accumulate.
type Options struct {
	// OnProgress, if non-nil, is called roughly every 5% of processed cells.
	OnProgress func(processed, total int)

	// Logger receives summary statistics. Defaults to a discarding logger.
	Logger *slog.Logger
}

// DefaultOptions returns Options with no hooks and a silent logger.
func DefaultOptions() Options {
	return Options{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

// WithOnProgress registers a progress hook.
func WithOnProgress(fn func(processed, total int)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnProgress = fn
		}
	}
}

// WithLogger sets the logger. A nil logger is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// Accumulation holds raw and normalized flow per cell.
//
// Raw[i] counts the cells draining through i, itself included.
// Norm[i] = ln(Raw[i]+1) / ln(MaxFlow+1), in (0,1].
// Processed equals Dims.Len() on success.
type Accumulation struct {
	Dims      grid.Dims
	Raw       []uint32
	Norm      []float32
	MaxFlow   uint32
	Processed int
}
