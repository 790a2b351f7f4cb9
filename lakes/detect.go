package lakes

import (
	"github.com/dave-hillier/sturdy-meme-sub013/geom"
	"github.com/dave-hillier/sturdy-meme-sub013/grid"
)

// Seeds returns depression seeds in row-major order: interior cells above
// seaLevel with no strictly lower neighbor.
func Seeds(in Input, seaLevel float32) []int {
	d := in.Frame.Dims
	var out []int
	for y := 1; y < d.Height-1; y++ {
		for x := 1; x < d.Width-1; x++ {
			i := d.Index(x, y)
			h := in.Height[i]
			if h <= seaLevel {
				continue
			}
			lowest := true
			for k := 0; k < grid.NumDirections; k++ {
				if n, ok := d.Neighbor(i, grid.Direction(k)); ok && in.Height[n] < h {
					lowest = false
					break
				}
			}
			if lowest {
				out = append(out, i)
			}
		}
	}
	return out
}

// Basin is the raw result of flooding one seed.
type Basin struct {
	Seed    int
	Members []int   // cells within the flood bound, in BFS order
	Spill   float32 // highest rim height seen, or the seed height
}

// flooder carries the state shared by every seed of one Detect call.
type flooder struct {
	in      Input
	bound   float32
	visited []bool
	queue   []int
}

// Flood grows the basin around seed, marking members and rim cells in
// visited. Cells already visited are neither members nor rim.
func Flood(in Input, seed int, searchHeight float32, visited []bool) Basin {
	f := &flooder{in: in, bound: searchHeight, visited: visited}
	return f.flood(seed)
}

func (f *flooder) flood(seed int) Basin {
	d := f.in.Frame.Dims
	h0 := f.in.Height[seed]
	limit := h0 + f.bound
	b := Basin{Seed: seed, Spill: h0}

	f.queue = append(f.queue[:0], seed)
	f.visited[seed] = true
	for head := 0; head < len(f.queue); head++ {
		cur := f.queue[head]
		if h := f.in.Height[cur]; h > limit {
			b.Spill = max(b.Spill, h)
			continue
		}
		b.Members = append(b.Members, cur)

		for k := 0; k < grid.NumDirections; k++ {
			nb, ok := d.Neighbor(cur, grid.Direction(k))
			if !ok || f.visited[nb] {
				continue
			}
			f.visited[nb] = true
			if nh := f.in.Height[nb]; nh <= limit {
				f.queue = append(f.queue, nb)
			} else {
				b.Spill = max(b.Spill, nh)
			}
		}
	}
	return b
}

// Characterize turns a basin into a Lake. A basin without members yields
// the zero Lake.
func Characterize(in Input, b Basin) Lake {
	if len(b.Members) == 0 {
		return Lake{}
	}
	d := in.Frame.Dims

	pos := make([]geom.Vec2, len(b.Members))
	var sx, sz float64
	for j, c := range b.Members {
		x, y := d.Coordinate(c)
		pos[j] = in.Frame.CellToWorld(x, y)
		sx += float64(pos[j].X)
		sz += float64(pos[j].Y)
	}
	n := float64(len(b.Members))
	centroid := geom.Vec2{X: float32(sx / n), Y: float32(sz / n)}

	var radius float32
	for _, p := range pos {
		radius = max(radius, p.Sub(centroid).Len())
	}

	seedH := in.Height[b.Seed]
	return Lake{
		Position:   centroid,
		WaterLevel: b.Spill * in.AltitudeRange,
		Depth:      (b.Spill - seedH) * in.AltitudeRange,
		Radius:     radius,
		Area:       float32(len(b.Members)) * in.Frame.CellArea(),
	}
}

// Accept reports whether l passes the area and depth filter.
func Accept(l Lake, minArea, minDepth float32) bool {
	return l.Area > 0 && l.Area >= minArea && l.Depth >= minDepth
}

// Detect finds, floods, characterizes and filters lakes.
func Detect(in Input, opts ...Option) ([]Lake, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	n := in.Frame.Dims.Len()
	if n == 0 || len(in.Height) != n {
		return nil, ErrInputMismatch
	}

	seeds := Seeds(in, o.SeaLevel)
	f := &flooder{in: in, bound: o.SearchHeight, visited: make([]bool, n)}
	var lakes []Lake
	for _, s := range seeds {
		if f.visited[s] {
			continue
		}
		l := Characterize(in, f.flood(s))
		if Accept(l, o.MinArea, o.MinDepth) {
			lakes = append(lakes, l)
		}
	}

	o.Logger.Debug("lakes: detected", "seeds", len(seeds), "lakes", len(lakes))
	return lakes, nil
}
