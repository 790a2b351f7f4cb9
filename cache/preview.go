package cache

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"sort"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/dave-hillier/sturdy-meme-sub013/water"
)

// Preview limits and colors.
const (
	MaxPreviewSize    = 2048
	riverPercentile   = 0.995
	percentileStride  = 16
	minLakeDiscRadius = 2
)

var (
	seaColor  = color.RGBA{R: 30, G: 100, B: 200, A: 255}
	lakeColor = color.RGBA{R: 50, G: 200, B: 80, A: 255}
)

// Preview renders a square overview of d: sea in blue, land in gray by
// height, lakes as green discs and the highest-flow cells in red. The side
// is min(d.Dims.Width, MaxPreviewSize). terrainSize maps world positions of
// lakes onto the image.
func Preview(d *water.Data, terrainSize float32) *image.RGBA {
	size := min(d.Dims.Width, MaxPreviewSize)
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	sx := float64(d.Dims.Width) / float64(size)
	sy := float64(d.Dims.Height) / float64(size)
	cell := func(px, py int) int {
		x := min(int(float64(px)*sx), d.Dims.Width-1)
		y := min(int(float64(py)*sy), d.Dims.Height-1)
		return d.Dims.Index(x, y)
	}

	for py := 0; py < size; py++ {
		for px := 0; px < size; px++ {
			var h float32
			if d.Height != nil {
				h = d.Height[cell(px, py)]
			}
			if d.Height != nil && h <= d.SeaLevel {
				img.SetRGBA(px, py, seaColor)
				continue
			}
			g := uint8(60 + clamp01(h)*120)
			img.SetRGBA(px, py, color.RGBA{R: g, G: g, B: g, A: 255})
		}
	}

	scale := float32(size) / terrainSize
	for _, l := range d.Lakes {
		cx := int((l.Position.X/terrainSize + 0.5) * float32(size))
		cy := int((l.Position.Y/terrainSize + 0.5) * float32(size))
		r := max(minLakeDiscRadius, int(l.Radius*scale))
		for dy := -r; dy <= r; dy++ {
			for dx := -r; dx <= r; dx++ {
				if dx*dx+dy*dy <= r*r && image.Pt(cx+dx, cy+dy).In(img.Rect) {
					img.SetRGBA(cx+dx, cy+dy, lakeColor)
				}
			}
		}
	}

	thr := flowPercentile(d.Accumulation, riverPercentile)
	for py := 0; py < size; py++ {
		for px := 0; px < size; px++ {
			f := d.Accumulation[cell(px, py)]
			if f < thr {
				continue
			}
			t := float32(1)
			if thr < 1 {
				t = clamp01((f - thr) / (1 - thr))
			}
			img.SetRGBA(px, py, color.RGBA{
				R: uint8(180 + t*75),
				G: uint8(30 + t*30),
				B: uint8(30 + t*30),
				A: 255,
			})
		}
	}

	caption(img, fmt.Sprintf("rivers %d  lakes %d", len(d.Rivers), len(d.Lakes)))
	return img
}

// WritePreview encodes the preview of d as PNG.
func WritePreview(w io.Writer, d *water.Data, terrainSize float32) error {
	return png.Encode(w, Preview(d, terrainSize))
}

// flowPercentile estimates the p-quantile of flow from every
// percentileStride-th cell. An empty sample returns +Inf.
func flowPercentile(flow []float32, p float64) float32 {
	sample := make([]float32, 0, len(flow)/percentileStride+1)
	for i := 0; i < len(flow); i += percentileStride {
		sample = append(sample, flow[i])
	}
	if len(sample) == 0 {
		return float32(math.Inf(1))
	}
	sort.Slice(sample, func(a, b int) bool { return sample[a] < sample[b] })
	k := min(int(p*float64(len(sample))), len(sample)-1)
	return sample[k]
}

func caption(img *image.RGBA, s string) {
	dr := font.Drawer{
		Dst:  img,
		Src:  image.White,
		Face: basicfont.Face7x13,
		Dot:  fixed.P(4, 4+basicfont.Face7x13.Ascent),
	}
	dr.DrawString(s)
}

func clamp01(v float32) float32 {
	return max(0, min(1, v))
}
