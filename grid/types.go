package grid

import (
	"errors"
	"math"
)

// Sentinel errors for grid construction.
var (
	// ErrEmptyGrid indicates a raster with no rows or no columns.
	ErrEmptyGrid = errors.New("grid: raster must have at least one row and one column")
	// ErrSizeMismatch indicates a backing slice whose length is not Width×Height.
	ErrSizeMismatch = errors.New("grid: slice length does not match dimensions")
)

// Direction is a D8 flow code: 0..7 index into Offsets, or Outlet.
type Direction int8

// Outlet marks a cell with no downstream neighbor (sea, or a terminal sink).
const Outlet Direction = -1

// NumDirections is the number of D8 neighbors.
const NumDirections = 8

// Canonical neighbor codes.
const (
	East Direction = iota
	SouthEast
	South
	SouthWest
	West
	NorthWest
	North
	NorthEast
)

// Offsets lists (dx,dy) per Direction in canonical order. +y points south.
var Offsets = [NumDirections][2]int{
	{1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}, {0, -1}, {1, -1},
}

// Distances lists the center-to-center distance per Direction.
var Distances = [NumDirections]float32{
	1, math.Sqrt2, 1, math.Sqrt2, 1, math.Sqrt2, 1, math.Sqrt2,
}

// Valid reports whether d is a neighbor code or Outlet.
func (d Direction) Valid() bool {
	return d == Outlet || (d >= 0 && d < NumDirections)
}

// String returns the compass name of d.
func (d Direction) String() string {
	switch d {
	case East:
		return "E"
	case SouthEast:
		return "SE"
	case South:
		return "S"
	case SouthWest:
		return "SW"
	case West:
		return "W"
	case NorthWest:
		return "NW"
	case North:
		return "N"
	case NorthEast:
		return "NE"
	case Outlet:
		return "outlet"
	}
	return "invalid"
}

// Dims is the size of a raster. It is a value type; copies are cheap.
type Dims struct {
	Width, Height int
}
