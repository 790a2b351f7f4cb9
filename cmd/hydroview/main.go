//go:build ebiten

// Command hydroview displays a hydrology cache directory for inspection.
//
//	hydroview [-terrain-size 16384] [-window 1024] <cache-dir>
//
// Keys: R toggles rivers, L toggles lakes, F toggles the flow raster,
// Q or Escape quits.
package main

import (
	"errors"
	"flag"
	"fmt"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/dave-hillier/sturdy-meme-sub013/cache"
	"github.com/dave-hillier/sturdy-meme-sub013/config"
	"github.com/dave-hillier/sturdy-meme-sub013/geom"
	"github.com/dave-hillier/sturdy-meme-sub013/water"
)

var (
	riverColor = color.RGBA{R: 90, G: 160, B: 255, A: 255}
	lakeColor  = color.RGBA{R: 50, G: 200, B: 80, A: 200}
	textColor  = color.RGBA{R: 230, G: 230, B: 235, A: 255}
)

type viewer struct {
	data        *water.Data
	base        *ebiten.Image
	size        int
	terrainSize float32

	showRivers bool
	showLakes  bool
	showFlow   bool
}

func (v *viewer) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		v.showRivers = !v.showRivers
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyL) {
		v.showLakes = !v.showLakes
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF) {
		v.showFlow = !v.showFlow
	}
	return nil
}

// toScreen maps a world ground position to window pixels.
func (v *viewer) toScreen(p geom.Vec2) (float32, float32) {
	s := float32(v.size)
	return (p.X/v.terrainSize + 0.5) * s, (p.Y/v.terrainSize + 0.5) * s
}

func (v *viewer) Draw(screen *ebiten.Image) {
	if v.showFlow {
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(float64(v.size)/float64(v.base.Bounds().Dx()), float64(v.size)/float64(v.base.Bounds().Dy()))
		screen.DrawImage(v.base, op)
	}

	scale := float32(v.size) / v.terrainSize
	if v.showLakes {
		for _, l := range v.data.Lakes {
			x, y := v.toScreen(l.Position)
			vector.DrawFilledCircle(screen, x, y, max(2, l.Radius*scale), lakeColor, true)
		}
	}
	if v.showRivers {
		for _, r := range v.data.Rivers {
			for i := 0; i+1 < len(r.Points); i++ {
				x0, y0 := v.toScreen(r.Points[i].Ground())
				x1, y1 := v.toScreen(r.Points[i+1].Ground())
				w := max(1, (r.Widths[i]+r.Widths[i+1])/2*scale)
				vector.StrokeLine(screen, x0, y0, x1, y1, w, riverColor, true)
			}
		}
	}

	status := fmt.Sprintf("%dx%d  rivers %d  lakes %d  [R]ivers [L]akes [F]low",
		v.data.Dims.Width, v.data.Dims.Height, len(v.data.Rivers), len(v.data.Lakes))
	text.Draw(screen, status, basicfont.Face7x13, 8, 18, textColor)
}

func (v *viewer) Layout(int, int) (int, int) {
	return v.size, v.size
}

func main() {
	cfg := config.Default()
	window := flag.Int("window", 1024, "window side in pixels")
	flag.Func("terrain-size", "world size of the terrain side", func(s string) error {
		_, err := fmt.Sscan(s, &cfg.TerrainSize)
		return err
	})
	flag.Parse()
	if flag.NArg() != 1 {
		log.Fatal("usage: hydroview [flags] <cache-dir>")
	}
	cfg.CacheDirectory = flag.Arg(0)

	d, err := cache.Load(cfg)
	if err != nil {
		log.Fatal(err)
	}

	v := &viewer{
		data:        d,
		base:        ebiten.NewImageFromImage(cache.Preview(d, cfg.TerrainSize)),
		size:        *window,
		terrainSize: cfg.TerrainSize,
		showRivers:  true,
		showLakes:   true,
		showFlow:    true,
	}

	ebiten.SetWindowTitle("hydroview — " + cfg.CacheDirectory)
	ebiten.SetWindowSize(v.size, v.size)
	if err := ebiten.RunGame(v); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
