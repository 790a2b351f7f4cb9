package heightmap

import (
	"errors"

	"github.com/dave-hillier/sturdy-meme-sub013/grid"
)

// Sentinel errors for heightmap construction and loading.
var (
	// ErrLoad indicates the source raster is unreadable or unsupported.
	ErrLoad = errors.New("heightmap: cannot load raster")
	// ErrEmptyGrid indicates zero width or height.
	ErrEmptyGrid = grid.ErrEmptyGrid
	// ErrSizeMismatch indicates len(data) != width*height.
	ErrSizeMismatch = grid.ErrSizeMismatch
)

// Depth records the sample depth of the decoded source.
type Depth int

const (
	// DepthMemory marks a heightmap built in memory with New.
	DepthMemory Depth = 0
	// Depth8 marks an 8-bit source.
	Depth8 Depth = 8
	// Depth16 marks a 16-bit source.
	Depth16 Depth = 16
)

// Heightmap is an immutable Width×Height grid of normalized heights.
// Data is row-major; Data[y*Width+x] lies in [0,1].
type Heightmap struct {
	Width, Height int
	Data          []float32
	MinAltitude   float32
	MaxAltitude   float32
	Depth         Depth
}
