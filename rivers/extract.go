package rivers

import (
	"math"
	"sort"

	"github.com/dave-hillier/sturdy-meme-sub013/geom"
	"github.com/dave-hillier/sturdy-meme-sub013/grid"
)

// Width maps normalized flow to a river width in world units.
// The square root keeps growth sub-linear in accumulated flow.
func Width(flow, minW, maxW float32) float32 {
	if flow < 0 {
		flow = 0
	}
	return geom.Lerp(minW, maxW, float32(math.Sqrt(float64(flow))))
}

// Sources returns the indices of river source cells ordered by descending
// flow, then ascending index.
func Sources(in Input, threshold float32) []int {
	d := in.Frame.Dims
	var out []int
	for y := 1; y < d.Height-1; y++ {
		for x := 1; x < d.Width-1; x++ {
			i := d.Index(x, y)
			f := in.Flow[i]
			if f < threshold || !localMax(in, i) {
				continue
			}
			out = append(out, i)
		}
	}
	sort.SliceStable(out, func(a, b int) bool {
		return in.Flow[out[a]] > in.Flow[out[b]]
	})
	return out
}

// localMax reports whether no neighbor of i has strictly greater flow.
func localMax(in Input, i int) bool {
	f := in.Flow[i]
	for k := 0; k < grid.NumDirections; k++ {
		if n, ok := in.Frame.Dims.Neighbor(i, grid.Direction(k)); ok && in.Flow[n] > f {
			return false
		}
	}
	return true
}

// Extract traces, simplifies and filters rivers.
// Returns ErrInputMismatch or ErrOptionViolation on bad input.
func Extract(in Input, opts ...Option) ([]River, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	n := in.Frame.Dims.Len()
	if n == 0 || len(in.Height) != n || len(in.Flow) != n {
		return nil, ErrInputMismatch
	}

	sources := Sources(in, o.FlowThreshold)
	visited := make([]bool, n)
	var rivers []River
	short := 0
	for _, s := range sources {
		if visited[s] {
			continue
		}
		cells := Trace(in, s, o.FlowThreshold, visited)
		if len(cells) < MinTracePoints {
			short++
			continue
		}
		r := build(in, cells, o)
		if len(r.Points) < MinSplinePoints {
			short++
			continue
		}
		rivers = append(rivers, r)
	}

	o.Logger.Debug("rivers: extracted",
		"candidates", len(sources), "rivers", len(rivers), "dropped", short)
	return rivers, nil
}

// Trace walks downhill from start along the highest-flow unvisited
// neighbors, marking every cell it enters in visited, and returns the cell
// indices in order.
func Trace(in Input, start int, threshold float32, visited []bool) []int {
	d := in.Frame.Dims
	cells := []int{}
	cur := start
	for {
		visited[cur] = true
		cells = append(cells, cur)
		if len(cells) >= MaxTracePoints {
			break
		}

		limit := in.Height[cur] + HeightEpsilon
		next, bestFlow := -1, float32(-1)
		for k := 0; k < grid.NumDirections; k++ {
			nb, ok := d.Neighbor(cur, grid.Direction(k))
			if !ok || visited[nb] {
				continue
			}
			f := in.Flow[nb]
			if f < threshold || in.Height[nb] > limit {
				continue
			}
			if f > bestFlow {
				bestFlow = f
				next = nb
			}
		}
		if next < 0 {
			break
		}
		cur = next
	}
	return cells
}

// build converts traced cells into a simplified River.
func build(in Input, cells []int, o Options) River {
	pts := make([]geom.Vec3, len(cells))
	widths := make([]float32, len(cells))
	var total float32
	for j, c := range cells {
		x, y := in.Frame.Dims.Coordinate(c)
		w := in.Frame.CellToWorld(x, y)
		pts[j] = geom.Vec3{X: w.X, Y: in.Height[c] * in.AltitudeRange, Z: w.Y}
		widths[j] = Width(in.Flow[c], o.MinWidth, o.MaxWidth)
		total += in.Flow[c]
	}

	keep := geom.Simplify(pts, o.SimplifyTolerance)
	r := River{
		Points:    make([]geom.Vec3, len(keep)),
		Widths:    make([]float32, len(keep)),
		TotalFlow: total,
	}
	for j, k := range keep {
		r.Points[j] = pts[k]
		r.Widths[j] = widths[k]
	}
	return r
}
