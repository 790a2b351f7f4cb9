package pipeline_test

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/dave-hillier/sturdy-meme-sub013/cache"
	"github.com/dave-hillier/sturdy-meme-sub013/config"
	"github.com/dave-hillier/sturdy-meme-sub013/grid"
	"github.com/dave-hillier/sturdy-meme-sub013/heightmap"
	"github.com/dave-hillier/sturdy-meme-sub013/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeHeightmap stores h(x,y) as a 16-bit grayscale PNG and returns a
// config pointing at it with a matching output resolution.
func writeHeightmap(t *testing.T, n int, h func(x, y int) float64) config.Config {
	t.Helper()
	dir := t.TempDir()
	img := image.NewGray16(image.Rect(0, 0, n, n))
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			img.SetGray16(x, y, color.Gray16{Y: uint16(math.Round(h(x, y) * 65535))})
		}
	}
	path := filepath.Join(dir, "height.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())

	cfg := config.Default()
	cfg.SourceHeightmapPath = path
	cfg.CacheDirectory = filepath.Join(dir, "cache")
	cfg.OutputResolution = uint32(n)
	return cfg
}

// ramp falls linearly from 1 at (0,0) to 0 at (n-1,n-1).
func ramp(n int) func(x, y int) float64 {
	return func(x, y int) float64 { return 1 - float64(x+y)/float64(2*(n-1)) }
}

// bowl is one radial depression: floor 0.3, flat rim 0.6, falling outside.
func bowl(n int) func(x, y int) float64 {
	c := float64(n / 2)
	return func(x, y int) float64 {
		r := math.Hypot(float64(x)-c, float64(y)-c)
		switch {
		case r <= 8:
			return 0.3 + 0.03*(r/8)*(r/8)
		case r <= 10:
			return 0.6
		default:
			return 0.6 - 0.004*(r-10)
		}
	}
}

type recorder struct {
	fractions []float64
	statuses  []string
}

func (r *recorder) record(f float64, s string) {
	r.fractions = append(r.fractions, f)
	r.statuses = append(r.statuses, s)
}

// TestRun_Ramp routes every cell of a 64×64 ramp to the low corner.
func TestRun_Ramp(t *testing.T) {
	cfg := writeHeightmap(t, 64, ramp(64))
	d, err := pipeline.Run(cfg)
	require.NoError(t, err)

	corner := d.Dims.Index(63, 63)
	assert.Equal(t, grid.Outlet, d.Direction[corner])
	assert.Equal(t, uint32(64*64), d.MaxFlow)
	assert.Equal(t, float32(1), d.Accumulation[corner])
	assert.Empty(t, d.Lakes)
	assert.True(t, cache.Validate(cfg))
}

// TestRun_Bowl detects the single lake of a radial bowl.
func TestRun_Bowl(t *testing.T) {
	const n = 41
	cfg := writeHeightmap(t, n, bowl(n))
	cfg.TerrainSize = 10 * n
	d, err := pipeline.Run(cfg)
	require.NoError(t, err)

	require.Len(t, d.Lakes, 1)
	l := d.Lakes[0]
	center := grid.Frame{Dims: d.Dims, TerrainSize: cfg.TerrainSize}.CellToWorld(n/2, n/2)
	assert.InDelta(t, center.X, l.Position.X, 1e-3)
	assert.InDelta(t, center.Y, l.Position.Y, 1e-3)
	assert.InDelta(t, (0.6-0.3)*cfg.AltitudeRange(), l.Depth, 0.01)
}

func TestRun_Progress(t *testing.T) {
	cfg := writeHeightmap(t, 32, ramp(32))
	var rec recorder
	_, err := pipeline.Run(cfg, pipeline.WithProgress(rec.record))
	require.NoError(t, err)

	require.NotEmpty(t, rec.fractions)
	assert.Equal(t, pipeline.StageLoad, rec.fractions[0])
	assert.Equal(t, pipeline.StageDone, rec.fractions[len(rec.fractions)-1])
	for i := 1; i < len(rec.fractions); i++ {
		assert.GreaterOrEqual(t, rec.fractions[i], rec.fractions[i-1])
	}
	assert.Contains(t, rec.statuses, pipeline.StatusRoute)
	assert.Contains(t, rec.statuses, pipeline.StatusLakes)
	assert.Contains(t, rec.statuses, pipeline.StatusSave)
}

// TestRun_Idempotent regenerates twice and compares every binary artifact.
func TestRun_Idempotent(t *testing.T) {
	cfg := writeHeightmap(t, 48, bowl(48))
	read := func() map[string][]byte {
		out := map[string][]byte{}
		for _, n := range []string{cache.FlowFile, cache.RiversFile, cache.LakesFile} {
			b, err := os.ReadFile(cache.Path(cfg.CacheDirectory, n))
			require.NoError(t, err)
			out[n] = b
		}
		return out
	}

	_, err := pipeline.Run(cfg)
	require.NoError(t, err)
	first := read()
	_, err = pipeline.Run(cfg)
	require.NoError(t, err)
	second := read()

	for n, b := range first {
		assert.True(t, bytes.Equal(b, second[n]), "%s differs between runs", n)
	}
}

func TestGenerate_ReusesFlow(t *testing.T) {
	cfg := writeHeightmap(t, 32, ramp(32))
	first, err := pipeline.Generate(cfg)
	require.NoError(t, err)

	var rec recorder
	second, err := pipeline.Generate(cfg, pipeline.WithProgress(rec.record))
	require.NoError(t, err)
	assert.Contains(t, rec.statuses, pipeline.StatusRestore)
	assert.NotContains(t, rec.statuses, pipeline.StatusRoute)
	assert.Equal(t, first.Accumulation, second.Accumulation)
	assert.Equal(t, first.Direction, second.Direction)
	assert.Equal(t, first.Rivers, second.Rivers)
	assert.Equal(t, first.Lakes, second.Lakes)

	rec = recorder{}
	_, err = pipeline.Generate(cfg, pipeline.WithForce(true), pipeline.WithProgress(rec.record))
	require.NoError(t, err)
	assert.Contains(t, rec.statuses, pipeline.StatusRoute)
	assert.NotContains(t, rec.statuses, pipeline.StatusRestore)
}

// TestGenerate_SourceChanged regenerates after the source file changes
// size; bytes after the PNG end chunk leave the decoded image unchanged.
func TestGenerate_SourceChanged(t *testing.T) {
	cfg := writeHeightmap(t, 32, ramp(32))
	_, err := pipeline.Generate(cfg)
	require.NoError(t, err)

	f, err := os.OpenFile(cfg.SourceHeightmapPath, os.O_APPEND|os.O_WRONLY, 0)
	require.NoError(t, err)
	_, err = f.Write(make([]byte, 16))
	require.NoError(t, err)
	require.NoError(t, f.Close())

	var rec recorder
	_, err = pipeline.Generate(cfg, pipeline.WithProgress(rec.record))
	require.NoError(t, err)
	assert.Contains(t, rec.statuses, pipeline.StatusRoute)
	assert.NotContains(t, rec.statuses, pipeline.StatusRestore)
}

func TestRun_Errors(t *testing.T) {
	cfg := writeHeightmap(t, 8, ramp(8))

	bad := cfg
	bad.OutputResolution = 0
	_, err := pipeline.Run(bad)
	assert.ErrorIs(t, err, config.ErrInvalid)

	missing := cfg
	missing.SourceHeightmapPath = filepath.Join(t.TempDir(), "nope.png")
	_, err = pipeline.Generate(missing)
	assert.ErrorIs(t, err, heightmap.ErrLoad)

	blocked := cfg
	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, nil, 0o644))
	blocked.CacheDirectory = filepath.Join(file, "cache")
	_, err = pipeline.Run(blocked)
	assert.ErrorIs(t, err, cache.ErrWrite)
}

// TestRun_Resampled routes a flow grid coarser than the source. No cell
// reaches sea level, so repair promotes a single terminal outlet.
func TestRun_Resampled(t *testing.T) {
	cfg := writeHeightmap(t, 64, ramp(64))
	cfg.OutputResolution = 16
	d, err := pipeline.Run(cfg)
	require.NoError(t, err)
	assert.Equal(t, grid.Dims{Width: 16, Height: 16}, d.Dims)
	assert.Equal(t, uint32(16*16), d.MaxFlow)

	outlets := 0
	for _, dir := range d.Direction {
		if dir == grid.Outlet {
			outlets++
		}
	}
	assert.Equal(t, 1, outlets)
}
