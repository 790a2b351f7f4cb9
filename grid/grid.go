package grid

// NewDims validates and returns raster dimensions.
// Returns ErrEmptyGrid if either side is not positive.
func NewDims(width, height int) (Dims, error) {
	if width <= 0 || height <= 0 {
		return Dims{}, ErrEmptyGrid
	}
	return Dims{Width: width, Height: height}, nil
}

// Len returns the number of cells, Width×Height.
func (d Dims) Len() int {
	return d.Width * d.Height
}

// Check returns ErrSizeMismatch unless n == Width×Height.
func (d Dims) Check(n int) error {
	if n != d.Len() {
		return ErrSizeMismatch
	}
	return nil
}

// InBounds reports whether (x,y) lies within the raster.
// Complexity: O(1).
func (d Dims) InBounds(x, y int) bool {
	return x >= 0 && x < d.Width && y >= 0 && y < d.Height
}

// Interior reports whether (x,y) has all eight neighbors inside the raster.
func (d Dims) Interior(x, y int) bool {
	return x >= 1 && x < d.Width-1 && y >= 1 && y < d.Height-1
}

// Index maps (x,y) to a row-major index: y*Width + x.
// Complexity: O(1).
func (d Dims) Index(x, y int) int {
	return y*d.Width + x
}

// Coordinate converts a row-major index back to (x,y).
// Complexity: O(1).
func (d Dims) Coordinate(idx int) (x, y int) {
	return idx % d.Width, idx / d.Width
}

// Neighbor returns the index of the neighbor of idx in direction dir.
// ok is false for Outlet, invalid codes, or neighbors outside the raster.
func (d Dims) Neighbor(idx int, dir Direction) (n int, ok bool) {
	if dir < 0 || dir >= NumDirections {
		return -1, false
	}
	x, y := d.Coordinate(idx)
	nx, ny := x+Offsets[dir][0], y+Offsets[dir][1]
	if !d.InBounds(nx, ny) {
		return -1, false
	}
	return d.Index(nx, ny), true
}

// DirectionTo returns the code pointing from idx to an adjacent cell to,
// or Outlet if the two cells are not 8-neighbors.
func (d Dims) DirectionTo(idx, to int) Direction {
	x, y := d.Coordinate(idx)
	tx, ty := d.Coordinate(to)
	dx, dy := tx-x, ty-y
	for k, off := range Offsets {
		if off[0] == dx && off[1] == dy {
			return Direction(k)
		}
	}
	return Outlet
}
