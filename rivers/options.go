package rivers

import (
	"fmt"
	"log/slog"
)

// WithFlowThreshold sets the minimum normalized flow. Must lie in [0,1].
func WithFlowThreshold(v float32) Option {
	return func(o *Options) {
		if v < 0 || v > 1 {
			o.err = fmt.Errorf("%w: flow threshold %v outside [0,1]", ErrOptionViolation, v)
			return
		}
		o.FlowThreshold = v
	}
}

// WithWidths sets the width range. Requires 0 ≤ minW ≤ maxW.
func WithWidths(minW, maxW float32) Option {
	return func(o *Options) {
		if minW < 0 || maxW < minW {
			o.err = fmt.Errorf("%w: widths [%v,%v]", ErrOptionViolation, minW, maxW)
			return
		}
		o.MinWidth, o.MaxWidth = minW, maxW
	}
}

// WithSimplifyTolerance sets the Douglas-Peucker tolerance. Must be ≥ 0.
func WithSimplifyTolerance(v float32) Option {
	return func(o *Options) {
		if v < 0 {
			o.err = fmt.Errorf("%w: negative tolerance %v", ErrOptionViolation, v)
			return
		}
		o.SimplifyTolerance = v
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
