package rivers

import (
	"errors"
	"io"
	"log/slog"

	"github.com/dave-hillier/sturdy-meme-sub013/geom"
	"github.com/dave-hillier/sturdy-meme-sub013/grid"
)

// Trace limits.
const (
	// MaxTracePoints bounds a single trace.
	MaxTracePoints = 10000
	// MinTracePoints is the shortest raw trace kept for simplification.
	MinTracePoints = 10
	// MinSplinePoints is the shortest simplified river kept.
	MinSplinePoints = 3
	// HeightEpsilon is the uphill slack allowed between consecutive points,
	// in normalized height.
	HeightEpsilon = 0.001
)

// Sentinel errors.
var (
	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("rivers: invalid option supplied")
	// ErrInputMismatch indicates Height or Flow do not match the frame size.
	ErrInputMismatch = errors.New("rivers: input slices do not match frame dimensions")
)

// River is a simplified river polyline.
// Points are world positions (X, altitude, Z); Widths[i] belongs to Points[i].
// TotalFlow sums the normalized flow of every traced cell before simplification.
type River struct {
	Points    []geom.Vec3
	Widths    []float32
	TotalFlow float32
}

// Input bundles the per-cell rasters the extractor reads. Height and Flow
// are row-major over Frame.Dims and are not modified.
type Input struct {
	Frame         grid.Frame
	Height        []float32 // normalized heights
	Flow          []float32 // normalized accumulation
	AltitudeRange float32   // world units per normalized height unit
}

// Option configures Extract.
type Option func(*Options)

// Options holds river extraction parameters.
type Options struct {
	FlowThreshold     float32 // minimum normalized flow for a river cell
	MinWidth          float32 // world width at zero flow
	MaxWidth          float32 // world width at flow 1
	SimplifyTolerance float32 // Douglas-Peucker tolerance in world units

	Logger *slog.Logger

	err error
}

// DefaultOptions mirrors the preprocessing tool defaults:
// threshold 0.15, widths 5..80, tolerance 10.
func DefaultOptions() Options {
	return Options{
		FlowThreshold:     0.15,
		MinWidth:          5,
		MaxWidth:          80,
		SimplifyTolerance: 10,
		Logger:            slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}
