package water

import (
	"errors"

	"github.com/dave-hillier/sturdy-meme-sub013/accumulate"
	"github.com/dave-hillier/sturdy-meme-sub013/flowdir"
	"github.com/dave-hillier/sturdy-meme-sub013/grid"
	"github.com/dave-hillier/sturdy-meme-sub013/lakes"
	"github.com/dave-hillier/sturdy-meme-sub013/rivers"
)

// ErrMismatch is returned when the flow grid and accumulation disagree in size.
var ErrMismatch = errors.New("water: flow grid and accumulation dimensions differ")

// Data is the result of one generation run. Accumulation and Direction are
// row-major over Dims and always present. Height is the per-cell normalized
// height the run routed on; it is not persisted and is nil after a cache load.
//
// Callers treat Data as read-only.
type Data struct {
	Dims         grid.Dims
	Accumulation []float32
	Direction    []grid.Direction
	Height       []float32
	Rivers       []rivers.River
	Lakes        []lakes.Lake
	SeaLevel     float32 // normalized
	MaxFlow      uint32  // 0 when restored from cache
}

// New assembles a snapshot from the routing and accumulation stages.
// Rivers and lakes are attached separately.
func New(fg *flowdir.FlowGrid, acc *accumulate.Accumulation, seaLevel float32) (*Data, error) {
	if fg == nil || acc == nil {
		return nil, accumulate.ErrNilGrid
	}
	if fg.Dims != acc.Dims {
		return nil, ErrMismatch
	}
	return &Data{
		Dims:         fg.Dims,
		Accumulation: acc.Norm,
		Direction:    fg.Dir,
		Height:       fg.Height,
		SeaLevel:     seaLevel,
		MaxFlow:      acc.MaxFlow,
	}, nil
}

// FlowAt returns the normalized accumulation at cell (x,y), or 0 outside the grid.
func (d *Data) FlowAt(x, y int) float32 {
	if !d.Dims.InBounds(x, y) {
		return 0
	}
	return d.Accumulation[d.Dims.Index(x, y)]
}

// DirectionAt returns the direction code at cell (x,y), or grid.Outlet outside the grid.
func (d *Data) DirectionAt(x, y int) grid.Direction {
	if !d.Dims.InBounds(x, y) {
		return grid.Outlet
	}
	return d.Direction[d.Dims.Index(x, y)]
}
