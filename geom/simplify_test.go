package geom_test

import (
	"testing"

	"github.com/dave-hillier/sturdy-meme-sub013/geom"
	"github.com/stretchr/testify/assert"
)

// TestSimplify_Short verifies that fewer than three points pass through unchanged.
func TestSimplify_Short(t *testing.T) {
	assert.Empty(t, geom.Simplify(nil, 1))
	assert.Equal(t, []int{0, 1}, geom.Simplify([]geom.Vec3{{}, {X: 1}}, 1))
}

// TestSimplify_StraightLine collapses collinear points to the endpoints.
func TestSimplify_StraightLine(t *testing.T) {
	pts := make([]geom.Vec3, 20)
	for i := range pts {
		pts[i] = geom.Vec3{X: float32(i), Y: float32(-i) * 0.5, Z: float32(i)}
	}
	assert.Equal(t, []int{0, 19}, geom.Simplify(pts, 0.01))
}

// TestSimplify_Corner keeps the apex of an L-shaped polyline.
func TestSimplify_Corner(t *testing.T) {
	var pts []geom.Vec3
	for i := 0; i <= 10; i++ {
		pts = append(pts, geom.Vec3{X: float32(i)})
	}
	for i := 1; i <= 10; i++ {
		pts = append(pts, geom.Vec3{X: 10, Z: float32(i)})
	}
	assert.Equal(t, []int{0, 10, 20}, geom.Simplify(pts, 0.5))
}

// TestSimplify_Tolerance keeps a bump only when it exceeds the tolerance.
func TestSimplify_Tolerance(t *testing.T) {
	pts := []geom.Vec3{{X: 0}, {X: 1, Z: 0.3}, {X: 2}}
	assert.Equal(t, []int{0, 2}, geom.Simplify(pts, 0.5))
	assert.Equal(t, []int{0, 1, 2}, geom.Simplify(pts, 0.1))
}

// TestSimplify_DegenerateChord leaves a closed loop untouched apart from its endpoints.
func TestSimplify_DegenerateChord(t *testing.T) {
	pts := []geom.Vec3{{X: 0}, {X: 5}, {X: 0}}
	assert.Equal(t, []int{0, 2}, geom.Simplify(pts, 0.1))
}

// TestLerp checks the endpoints and midpoint.
func TestLerp(t *testing.T) {
	assert.Equal(t, float32(5), geom.Lerp(5, 80, 0))
	assert.Equal(t, float32(80), geom.Lerp(5, 80, 1))
	assert.InDelta(t, 42.5, geom.Lerp(5, 80, 0.5), 1e-6)
}

// TestVecLen covers the Pythagorean triples in 2D and 3D.
func TestVecLen(t *testing.T) {
	assert.InDelta(t, 5, geom.Vec2{X: 3, Y: 4}.Len(), 1e-6)
	assert.InDelta(t, 3, geom.Vec3{X: 1, Y: 2, Z: 2}.Len(), 1e-6)
	assert.Equal(t, geom.Vec2{X: 1, Y: 3}, geom.Vec3{X: 1, Y: 2, Z: 3}.Ground())
}
