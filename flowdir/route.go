package flowdir

import (
	"math"

	"github.com/dave-hillier/sturdy-meme-sub013/grid"
)

// Route computes D8 flow directions for heights laid out row-major in dims.
// The heights slice is copied into the returned FlowGrid.
// Returns grid.ErrEmptyGrid, grid.ErrSizeMismatch or ErrOptionViolation.
func Route(heights []float32, dims grid.Dims, opts ...Option) (*FlowGrid, error) {
	if dims.Width <= 0 || dims.Height <= 0 {
		return nil, grid.ErrEmptyGrid
	}
	if err := dims.Check(len(heights)); err != nil {
		return nil, err
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}

	fg := &FlowGrid{
		Dims:   dims,
		Dir:    make([]grid.Direction, dims.Len()),
		Height: make([]float32, len(heights)),
	}
	copy(fg.Height, heights)

	for i := range fg.Dir {
		fg.Dir[i] = steepest(fg, i, o.SeaLevel, &fg.Stats)
	}
	repair(fg)

	o.Logger.Debug("flowdir: routed",
		"width", dims.Width, "height", dims.Height,
		"outlets", fg.Stats.Outlets, "pits", fg.Stats.Pits,
		"cycles", fg.Stats.Cycles, "carved", fg.Stats.Carved,
		"terminals", fg.Stats.Terminals)
	return fg, nil
}

// steepest returns the D8 code for cell i.
func steepest(fg *FlowGrid, i int, seaLevel float32, st *Stats) grid.Direction {
	h := fg.Height[i]
	if h <= seaLevel {
		st.Outlets++
		return grid.Outlet
	}

	best, lowest := grid.Outlet, grid.Outlet
	var maxSlope float32
	lowestH := float32(math.Inf(1))
	for k := 0; k < grid.NumDirections; k++ {
		d := grid.Direction(k)
		n, ok := fg.Dims.Neighbor(i, d)
		if !ok {
			continue
		}
		nh := fg.Height[n]
		if nh < lowestH {
			lowestH = nh
			lowest = d
		}
		if slope := (h - nh) / grid.Distances[k]; slope > maxSlope {
			maxSlope = slope
			best = d
		}
	}
	if best == grid.Outlet && lowest != grid.Outlet {
		st.Pits++
		return lowest
	}
	return best
}
