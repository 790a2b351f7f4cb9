package geom

// minChordLen is the chord length below which a span is treated as
// degenerate and left untouched.
const minChordLen = 1e-4

// Simplify applies Douglas-Peucker simplification to pts and returns the
// indices of the retained points in ascending order. The first and last
// points are always kept. A point is kept when its perpendicular distance
// to the chord of its current span exceeds tolerance.
//
// Fewer than three points are returned unchanged.
func Simplify(pts []Vec3, tolerance float32) []int {
	n := len(pts)
	if n < 3 {
		idx := make([]int, n)
		for i := range idx {
			idx[i] = i
		}
		return idx
	}

	keep := make([]bool, n)
	keep[0], keep[n-1] = true, true

	stack := [][2]int{{0, n - 1}}
	for len(stack) > 0 {
		span := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		start, end := span[0], span[1]
		if end <= start+1 {
			continue
		}

		a := pts[start]
		dir := pts[end].Sub(a)
		chord := dir.Len()
		if chord < minChordLen {
			continue
		}
		dir = dir.Scale(1 / chord)

		var maxDist float32
		maxIdx := start
		for i := start + 1; i < end; i++ {
			rel := pts[i].Sub(a)
			closest := a.Add(dir.Scale(rel.Dot(dir)))
			if d := pts[i].Sub(closest).Len(); d > maxDist {
				maxDist = d
				maxIdx = i
			}
		}
		if maxDist > tolerance {
			keep[maxIdx] = true
			stack = append(stack, [2]int{maxIdx, end}, [2]int{start, maxIdx})
		}
	}

	out := make([]int, 0, n)
	for i, k := range keep {
		if k {
			out = append(out, i)
		}
	}
	return out
}
