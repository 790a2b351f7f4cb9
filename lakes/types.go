package lakes

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"

	"github.com/dave-hillier/sturdy-meme-sub013/geom"
	"github.com/dave-hillier/sturdy-meme-sub013/grid"
)

// DefaultSearchHeight bounds the flood above the seed, in normalized height.
const DefaultSearchHeight = 0.05

var (
	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("lakes: invalid option supplied")
	// ErrInputMismatch indicates Height does not match the frame size.
	ErrInputMismatch = errors.New("lakes: height slice does not match frame dimensions")
)

// Lake describes one accepted basin. Position is the world-space centroid of
// its member cells on the ground plane; WaterLevel and Depth are world
// altitude offsets (normalized height × altitude range).
type Lake struct {
	Position   geom.Vec2
	WaterLevel float32
	Radius     float32
	Area       float32
	Depth      float32
}

// Input is the raster the detector reads.
type Input struct {
	Frame         grid.Frame
	Height        []float32 // normalized heights, row-major
	AltitudeRange float32
}

// Option configures Detect.
type Option func(*Options)

// Options holds lake detection parameters.
type Options struct {
	SeaLevel     float32 // normalized; seeds at or below are skipped
	MinArea      float32 // world units squared
	MinDepth     float32 // world units
	SearchHeight float32 // normalized flood bound above the seed

	Logger *slog.Logger

	err error
}

// DefaultOptions returns sea level 0, area 500, depth 2 and a 5% flood bound.
func DefaultOptions() Options {
	return Options{
		SeaLevel:     0,
		MinArea:      500,
		MinDepth:     2,
		SearchHeight: DefaultSearchHeight,
		Logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// WithSeaLevel sets the normalized sea level.
func WithSeaLevel(level float32) Option {
	return func(o *Options) {
		if math.IsNaN(float64(level)) {
			o.err = fmt.Errorf("%w: sea level is NaN", ErrOptionViolation)
			return
		}
		o.SeaLevel = level
	}
}

// WithMinArea sets the minimum accepted area. Negative values are rejected.
func WithMinArea(area float32) Option {
	return func(o *Options) {
		if !(area >= 0) {
			o.err = fmt.Errorf("%w: min area %v", ErrOptionViolation, area)
			return
		}
		o.MinArea = area
	}
}

// WithMinDepth sets the minimum accepted depth. Negative values are rejected.
func WithMinDepth(depth float32) Option {
	return func(o *Options) {
		if !(depth >= 0) {
			o.err = fmt.Errorf("%w: min depth %v", ErrOptionViolation, depth)
			return
		}
		o.MinDepth = depth
	}
}

// WithSearchHeight sets the flood bound above the seed; must be in (0,1].
func WithSearchHeight(h float32) Option {
	return func(o *Options) {
		if !(h > 0 && h <= 1) {
			o.err = fmt.Errorf("%w: search height %v outside (0,1]", ErrOptionViolation, h)
			return
		}
		o.SearchHeight = h
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
