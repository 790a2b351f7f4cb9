package flowdir

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"

	"github.com/dave-hillier/sturdy-meme-sub013/grid"
)

// ErrOptionViolation is returned when an invalid Option is supplied.
var ErrOptionViolation = errors.New("flowdir: invalid option supplied")

// Option configures Route via functional arguments.
type Option func(*Options)

// Options holds parameters for Route.
type Options struct {
	// SeaLevel is the normalized height at or below which a cell is an outlet.
	SeaLevel float32

	// Logger receives debug statistics. Defaults to a discarding logger.
	Logger *slog.Logger

	err error
}

// DefaultOptions returns Options with SeaLevel 0 and a silent logger.
func DefaultOptions() Options {
	return Options{
		SeaLevel: 0,
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// WithSeaLevel sets the normalized sea level. Values below 0 disable the
// sea; NaN is rejected with ErrOptionViolation.
func WithSeaLevel(level float32) Option {
	return func(o *Options) {
		if math.IsNaN(float64(level)) {
			o.err = fmt.Errorf("%w: sea level is NaN", ErrOptionViolation)
			return
		}
		o.SeaLevel = level
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

// Stats counts what routing did.
type Stats struct {
	Outlets   int // cells at or below sea level
	Pits      int // cells breached to their lowest neighbor
	Cycles    int // cycles broken by the repair pass
	Carved    int // cells redirected along repair paths
	Terminals int // cells promoted to outlet because nothing drained
}

// FlowGrid is the D8 routing of a raster. Dir[i] is the code of cell i;
// Height[i] is the normalized height the routing was computed from.
// A FlowGrid is treated as immutable once returned.
type FlowGrid struct {
	Dims   grid.Dims
	Dir    []grid.Direction
	Height []float32
	Stats  Stats
}

// Downstream returns the index cell i flows into, or ok=false for outlets.
func (fg *FlowGrid) Downstream(i int) (int, bool) {
	return fg.Dims.Neighbor(i, fg.Dir[i])
}
