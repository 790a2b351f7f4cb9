package grid

import "github.com/dave-hillier/sturdy-meme-sub013/geom"

// Frame places a raster on the world ground plane: a square of side
// TerrainSize centered on the origin, +X east and +Z south.
type Frame struct {
	Dims        Dims
	TerrainSize float32
}

// CellToWorld returns the world position of the center of cell (x,y).
func (f Frame) CellToWorld(x, y int) geom.Vec2 {
	u := (float32(x) + 0.5) / float32(f.Dims.Width)
	v := (float32(y) + 0.5) / float32(f.Dims.Height)
	return geom.Vec2{X: (u - 0.5) * f.TerrainSize, Y: (v - 0.5) * f.TerrainSize}
}

// WorldToCell returns the fractional cell coordinates of a world position;
// integer values land on cell corners, +0.5 on centers.
func (f Frame) WorldToCell(w geom.Vec2) (x, y float32) {
	u := w.X/f.TerrainSize + 0.5
	v := w.Y/f.TerrainSize + 0.5
	return u * float32(f.Dims.Width), v * float32(f.Dims.Height)
}

// CellArea returns the world area covered by one cell.
func (f Frame) CellArea() float32 {
	return (f.TerrainSize / float32(f.Dims.Width)) * (f.TerrainSize / float32(f.Dims.Height))
}
