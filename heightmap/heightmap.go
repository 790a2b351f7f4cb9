package heightmap

import (
	"fmt"
	"image"
	"image/color"
	_ "image/png" // register PNG decoder
	"os"

	"github.com/dave-hillier/sturdy-meme-sub013/geom"
	_ "golang.org/x/image/bmp"  // register BMP decoder
	_ "golang.org/x/image/tiff" // register TIFF decoder
)

// New builds a heightmap from normalized row-major data. The slice is copied.
// Returns ErrEmptyGrid for non-positive sides and ErrSizeMismatch when
// len(data) != width*height.
func New(width, height int, data []float32, minAltitude, maxAltitude float32) (*Heightmap, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrEmptyGrid
	}
	if len(data) != width*height {
		return nil, ErrSizeMismatch
	}
	cp := make([]float32, len(data))
	copy(cp, data)
	return &Heightmap{
		Width:       width,
		Height:      height,
		Data:        cp,
		MinAltitude: minAltitude,
		MaxAltitude: maxAltitude,
	}, nil
}

// Load decodes the raster at path into a normalized heightmap.
// Multi-channel images are reduced to luminance. Any failure wraps ErrLoad.
func Load(path string, minAltitude, maxAltitude float32) (*Heightmap, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoad, err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrLoad, path, err)
	}
	b := img.Bounds()
	if b.Empty() {
		return nil, fmt.Errorf("%w: %s: empty %s image", ErrLoad, path, format)
	}

	hm := &Heightmap{
		Width:       b.Dx(),
		Height:      b.Dy(),
		Data:        make([]float32, b.Dx()*b.Dy()),
		MinAltitude: minAltitude,
		MaxAltitude: maxAltitude,
	}
	if is16Bit(img) {
		hm.Depth = Depth16
		for y := 0; y < hm.Height; y++ {
			for x := 0; x < hm.Width; x++ {
				g := color.Gray16Model.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.Gray16)
				hm.Data[y*hm.Width+x] = float32(g.Y) / 65535
			}
		}
		return hm, nil
	}

	hm.Depth = Depth8
	for y := 0; y < hm.Height; y++ {
		for x := 0; x < hm.Width; x++ {
			g := color.GrayModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.Gray)
			hm.Data[y*hm.Width+x] = float32(g.Y) / 255
		}
	}
	return hm, nil
}

// is16Bit reports whether img carries 16 bits per sample.
func is16Bit(img image.Image) bool {
	switch img.(type) {
	case *image.Gray16, *image.RGBA64, *image.NRGBA64:
		return true
	}
	return false
}

// Range returns MaxAltitude - MinAltitude.
func (hm *Heightmap) Range() float32 {
	return hm.MaxAltitude - hm.MinAltitude
}

// Altitude converts a normalized height to a world altitude offset,
// h × Range(). MinAltitude is not added, matching the cache format.
func (hm *Heightmap) Altitude(h float32) float32 {
	return h * hm.Range()
}

// Normalize converts an absolute world altitude to normalized height.
// A degenerate altitude range maps everything to 0.
func (hm *Heightmap) Normalize(altitude float32) float32 {
	r := hm.Range()
	if r == 0 {
		return 0
	}
	return (altitude - hm.MinAltitude) / r
}

// HeightAt returns the bilinearly interpolated height at source-pixel
// coordinates (x,y), clamped to the grid.
func (hm *Heightmap) HeightAt(x, y float32) float32 {
	fx := clamp(x, 0, float32(hm.Width-1))
	fy := clamp(y, 0, float32(hm.Height-1))

	x0, y0 := int(fx), int(fy)
	x1, y1 := min(x0+1, hm.Width-1), min(y0+1, hm.Height-1)
	tx, ty := fx-float32(x0), fy-float32(y0)

	h00 := hm.Data[y0*hm.Width+x0]
	h10 := hm.Data[y0*hm.Width+x1]
	h01 := hm.Data[y1*hm.Width+x0]
	h11 := hm.Data[y1*hm.Width+x1]

	h0 := h00*(1-tx) + h10*tx
	h1 := h01*(1-tx) + h11*tx
	return h0*(1-ty) + h1*ty
}

// GradientAt returns (∂h/∂x, ∂h/∂y) by central differences with unit offset.
func (hm *Heightmap) GradientAt(x, y float32) geom.Vec2 {
	const eps = 1
	hl := hm.HeightAt(x-eps, y)
	hr := hm.HeightAt(x+eps, y)
	hd := hm.HeightAt(x, y-eps)
	hu := hm.HeightAt(x, y+eps)
	return geom.Vec2{X: (hr - hl) / (2 * eps), Y: (hu - hd) / (2 * eps)}
}

// PixelToWorld maps source-pixel coordinates to world coordinates in
// [-terrainSize/2, terrainSize/2].
func (hm *Heightmap) PixelToWorld(px, py, terrainSize float32) geom.Vec2 {
	u := px / float32(hm.Width)
	v := py / float32(hm.Height)
	return geom.Vec2{X: (u - 0.5) * terrainSize, Y: (v - 0.5) * terrainSize}
}

// WorldToPixel is the inverse of PixelToWorld.
func (hm *Heightmap) WorldToPixel(wx, wy, terrainSize float32) geom.Vec2 {
	u := wx/terrainSize + 0.5
	v := wy/terrainSize + 0.5
	return geom.Vec2{X: u * float32(hm.Width), Y: v * float32(hm.Height)}
}

// Scale returns the source pixels per flow cell along each axis for a
// width×height flow grid.
func (hm *Heightmap) Scale(width, height int) (sx, sy float32) {
	return float32(hm.Width) / float32(width), float32(hm.Height) / float32(height)
}

// CellToPixel returns the source-pixel position of the center of flow cell
// (x,y) in a grid whose cells span (sx,sy) source pixels each.
func CellToPixel(x, y int, sx, sy float32) (px, py float32) {
	return (float32(x)+0.5)*sx - 0.5, (float32(y)+0.5)*sy - 0.5
}

// Resample returns one height per cell of a width×height flow grid,
// sampled at cell centers. When the flow grid matches the source size the
// result equals Data exactly.
func (hm *Heightmap) Resample(width, height int) ([]float32, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrEmptyGrid
	}
	sx, sy := hm.Scale(width, height)
	out := make([]float32, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			px, py := CellToPixel(x, y, sx, sy)
			out[y*width+x] = hm.HeightAt(px, py)
		}
	}
	return out, nil
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
