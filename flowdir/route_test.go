package flowdir_test

import (
	"math"
	"testing"

	"github.com/dave-hillier/sturdy-meme-sub013/flowdir"
	"github.com/dave-hillier/sturdy-meme-sub013/grid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ramp returns a w×h surface falling linearly from 1 at (0,0) to 0 at the far corner.
func ramp(w, h int) []float32 {
	out := make([]float32, w*h)
	span := float32(w - 1 + h - 1)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			out[y*w+x] = 1 - float32(x+y)/span
		}
	}
	return out
}

// requireDrains asserts every chain reaches an outlet within Len() steps.
func requireDrains(t *testing.T, fg *flowdir.FlowGrid) {
	t.Helper()
	n := fg.Dims.Len()
	for i := 0; i < n; i++ {
		require.True(t, fg.Dir[i].Valid(), "cell %d has code %d", i, fg.Dir[i])
		cur, steps := i, 0
		for {
			next, ok := fg.Downstream(cur)
			if !ok {
				break
			}
			cur = next
			steps++
			require.LessOrEqual(t, steps, n, "cell %d never reaches an outlet", i)
		}
		assert.Equal(t, grid.Outlet, fg.Dir[cur])
	}
}

// TestRoute_Errors covers invalid dimensions and options.
func TestRoute_Errors(t *testing.T) {
	_, err := flowdir.Route(nil, grid.Dims{})
	assert.ErrorIs(t, err, grid.ErrEmptyGrid)

	_, err = flowdir.Route([]float32{1, 2, 3}, grid.Dims{Width: 2, Height: 2})
	assert.ErrorIs(t, err, grid.ErrSizeMismatch)

	_, err = flowdir.Route([]float32{1}, grid.Dims{Width: 1, Height: 1},
		flowdir.WithSeaLevel(float32(math.NaN())))
	assert.ErrorIs(t, err, flowdir.ErrOptionViolation)
}

// TestRoute_Ramp checks steepest descent on a diagonal ramp.
func TestRoute_Ramp(t *testing.T) {
	dims := grid.Dims{Width: 4, Height: 4}
	fg, err := flowdir.Route(ramp(4, 4), dims, flowdir.WithSeaLevel(0))
	require.NoError(t, err)

	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			got := fg.Dir[dims.Index(x, y)]
			switch {
			case x == 3 && y == 3:
				assert.Equal(t, grid.Outlet, got)
			case x == 3:
				assert.Equal(t, grid.South, got, "(%d,%d)", x, y)
			case y == 3:
				assert.Equal(t, grid.East, got, "(%d,%d)", x, y)
			default:
				assert.Equal(t, grid.SouthEast, got, "(%d,%d)", x, y)
			}
		}
	}
	assert.Equal(t, 1, fg.Stats.Outlets)
	assert.Zero(t, fg.Stats.Pits)
	assert.Zero(t, fg.Stats.Cycles)
	requireDrains(t, fg)
}

// TestRoute_SeaCellsAreOutlets verifies everything at or below sea level is an outlet.
func TestRoute_SeaCellsAreOutlets(t *testing.T) {
	heights := []float32{
		0.1, 0.2, 0.6,
		0.2, 0.5, 0.7,
		0.3, 0.6, 0.9,
	}
	fg, err := flowdir.Route(heights, grid.Dims{Width: 3, Height: 3}, flowdir.WithSeaLevel(0.2))
	require.NoError(t, err)
	for i, h := range heights {
		if h <= 0.2 {
			assert.Equal(t, grid.Outlet, fg.Dir[i], "cell %d", i)
		} else {
			assert.NotEqual(t, grid.Outlet, fg.Dir[i], "cell %d", i)
		}
	}
	assert.Equal(t, 3, fg.Stats.Outlets)
	requireDrains(t, fg)
}

// TestRoute_DiagonalSlopeUsesDistance prefers a shallower orthogonal drop
// over a deeper diagonal one once distance is accounted for.
func TestRoute_DiagonalSlopeUsesDistance(t *testing.T) {
	// Center 1.0; east drops 0.3 (slope 0.3), south-east drops 0.4 (slope ≈ 0.283).
	heights := []float32{
		1, 1, 1,
		1, 1, 0.7,
		1, 1, 0.6,
	}
	fg, err := flowdir.Route(heights, grid.Dims{Width: 3, Height: 3}, flowdir.WithSeaLevel(-1))
	require.NoError(t, err)
	assert.Equal(t, grid.East, fg.Dir[4])
}

// TestRoute_TieBreakCanonicalOrder picks the first of equal slopes in E, SE, S, ... order.
func TestRoute_TieBreakCanonicalOrder(t *testing.T) {
	heights := []float32{
		1, 0.5, 1,
		0.5, 1, 1,
		1, 1, 1,
	}
	// Center has equal drops to W and N; W comes first in canonical order.
	fg, err := flowdir.Route(heights, grid.Dims{Width: 3, Height: 3}, flowdir.WithSeaLevel(-1))
	require.NoError(t, err)
	assert.Equal(t, grid.West, fg.Dir[4])
}

// TestRoute_PitBreachRepairsCycle builds a pit whose lowest neighbor flows back
// into it, and checks the repair carves the pit toward the draining cell.
func TestRoute_PitBreachRepairsCycle(t *testing.T) {
	heights := []float32{
		0.0, 0.5, 0.5, 0.5,
		0.5, 0.5, 0.5, 0.5,
		0.5, 0.5, 0.2, 0.5,
		0.5, 0.5, 0.5, 0.5,
	}
	dims := grid.Dims{Width: 4, Height: 4}
	fg, err := flowdir.Route(heights, dims, flowdir.WithSeaLevel(0))
	require.NoError(t, err)

	assert.GreaterOrEqual(t, fg.Stats.Pits, 1)
	assert.Equal(t, 1, fg.Stats.Cycles)
	assert.Equal(t, 1, fg.Stats.Carved)
	assert.Equal(t, grid.NorthWest, fg.Dir[dims.Index(2, 2)])
	requireDrains(t, fg)
}

// TestRoute_NoSeaPromotesTerminal gives a flat plateau with no sea a single terminal outlet.
func TestRoute_NoSeaPromotesTerminal(t *testing.T) {
	heights := make([]float32, 9)
	for i := range heights {
		heights[i] = 0.5
	}
	fg, err := flowdir.Route(heights, grid.Dims{Width: 3, Height: 3}, flowdir.WithSeaLevel(0))
	require.NoError(t, err)

	assert.Equal(t, 1, fg.Stats.Terminals)
	outlets := 0
	for _, d := range fg.Dir {
		if d == grid.Outlet {
			outlets++
		}
	}
	assert.Equal(t, 1, outlets)
	requireDrains(t, fg)
}

// TestRoute_SingleCell leaves an isolated cell as an outlet.
func TestRoute_SingleCell(t *testing.T) {
	fg, err := flowdir.Route([]float32{0.8}, grid.Dims{Width: 1, Height: 1})
	require.NoError(t, err)
	assert.Equal(t, grid.Outlet, fg.Dir[0])
}

// TestRoute_Deterministic routes the same noisy surface twice.
func TestRoute_Deterministic(t *testing.T) {
	dims := grid.Dims{Width: 48, Height: 40}
	heights := noise(dims)
	a, err := flowdir.Route(heights, dims, flowdir.WithSeaLevel(0.2))
	require.NoError(t, err)
	b, err := flowdir.Route(heights, dims, flowdir.WithSeaLevel(0.2))
	require.NoError(t, err)
	assert.Equal(t, a.Dir, b.Dir)
	requireDrains(t, a)
}

// noise is a deterministic bumpy surface with many pits.
func noise(d grid.Dims) []float32 {
	out := make([]float32, d.Len())
	for y := 0; y < d.Height; y++ {
		for x := 0; x < d.Width; x++ {
			v := 0.5 + 0.25*math.Sin(float64(x)*0.7)*math.Cos(float64(y)*0.9) +
				0.1*math.Sin(float64(x*y)*0.13)
			out[d.Index(x, y)] = float32(v)
		}
	}
	return out
}
