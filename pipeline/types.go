package pipeline

import (
	"io"
	"log/slog"
)

// Progress milestones.
const (
	StageLoad       = 0.0
	StageRoute      = 0.1
	StageAccumulate = 0.4
	StageRivers     = 0.6
	StageLakes      = 0.8
	StageSave       = 0.95
	StageDone       = 1.0
)

// Status strings passed with each milestone.
const (
	StatusLoad       = "Loading heightmap"
	StatusRoute      = "Routing flow"
	StatusRestore    = "Restoring flow from cache"
	StatusAccumulate = "Accumulating flow"
	StatusRivers     = "Extracting rivers"
	StatusLakes      = "Detecting lakes"
	StatusSave       = "Saving to cache"
	StatusDone       = "Complete"
)

// ProgressFunc receives a fraction in [0,1] and a status line.
type ProgressFunc func(fraction float64, status string)

// Option configures Run and Generate.
type Option func(*Options)

// Options holds run hooks.
type Options struct {
	OnProgress ProgressFunc
	Logger     *slog.Logger
	// Force makes Generate ignore a valid cache.
	Force bool
}

// DefaultOptions returns no progress hook, a silent logger and Force off.
func DefaultOptions() Options {
	return Options{
		OnProgress: func(float64, string) {},
		Logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// WithProgress registers a progress callback. A nil callback is ignored.
func WithProgress(fn ProgressFunc) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnProgress = fn
		}
	}
}

// WithLogger sets the logger passed to every stage. A nil logger is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithForce controls whether Generate bypasses the cache.
func WithForce(force bool) Option {
	return func(o *Options) {
		o.Force = force
	}
}
