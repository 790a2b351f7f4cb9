package flowdir

import (
	"container/heap"

	"github.com/dave-hillier/sturdy-meme-sub013/grid"
)

// repair rewrites directions so that every chain ends at an outlet.
func repair(fg *FlowGrid) {
	n := fg.Dims.Len()
	drained := make([]bool, n)

	var seeds []int
	for i, d := range fg.Dir {
		if d == grid.Outlet {
			seeds = append(seeds, i)
		}
	}
	drainUpstream(fg, drained, seeds)

	walk := make([]int32, n) // walk stamp per cell while searching cycles
	fl := newFlooder(n)
	var stamp int32
	for start := 0; start < n; start++ {
		if drained[start] || walk[start] != 0 {
			continue
		}
		stamp++
		cur := start
		for !drained[cur] && walk[cur] == 0 {
			walk[cur] = stamp
			next, ok := fg.Downstream(cur)
			if !ok {
				// Outlet not yet drained cannot happen; treat as drained.
				break
			}
			cur = next
		}
		if drained[cur] || walk[cur] != stamp {
			continue
		}

		// cur lies on a cycle; collect it in chain order.
		cycle := []int{cur}
		for c, _ := fg.Downstream(cur); c != cur; c, _ = fg.Downstream(c) {
			cycle = append(cycle, c)
		}
		fg.Stats.Cycles++
		carved := fl.breach(fg, drained, cycle)
		drainUpstream(fg, drained, carved)
	}
}

// drainUpstream marks from and every not-yet-drained cell upstream of it.
// It is a breadth-first search over reversed flow edges.
func drainUpstream(fg *FlowGrid, drained []bool, from []int) {
	queue := make([]int, 0, len(from))
	for _, i := range from {
		if !drained[i] {
			drained[i] = true
			queue = append(queue, i)
		}
	}
	for qi := 0; qi < len(queue); qi++ {
		u := queue[qi]
		for k := 0; k < grid.NumDirections; k++ {
			v, ok := fg.Dims.Neighbor(u, grid.Direction(k))
			if !ok || drained[v] {
				continue
			}
			if down, ok := fg.Downstream(v); ok && down == u {
				drained[v] = true
				queue = append(queue, v)
			}
		}
	}
}

// flooder holds scratch space reused across priority floods.
type flooder struct {
	mark  []int32
	prev  []int32
	stamp int32
	pq    floodPQ
}

func newFlooder(n int) *flooder {
	return &flooder{mark: make([]int32, n), prev: make([]int32, n)}
}

// breach floods outward from cycle in order of increasing spill height until
// it pops a drained cell, then carves the flood path toward that cell.
// It returns the cells whose direction changed.
func (f *flooder) breach(fg *FlowGrid, drained []bool, cycle []int) []int {
	f.stamp++
	f.pq = f.pq[:0]
	for _, c := range cycle {
		f.mark[c] = f.stamp
		f.prev[c] = -1
		heap.Push(&f.pq, floodItem{level: fg.Height[c], idx: int32(c)})
	}

	exit, lowest := -1, cycle[0]
	for f.pq.Len() > 0 {
		it := heap.Pop(&f.pq).(floodItem)
		u := int(it.idx)
		if drained[u] {
			exit = u
			break
		}
		if fg.Height[u] < fg.Height[lowest] || (fg.Height[u] == fg.Height[lowest] && u < lowest) {
			lowest = u
		}
		for k := 0; k < grid.NumDirections; k++ {
			v, ok := fg.Dims.Neighbor(u, grid.Direction(k))
			if !ok || f.mark[v] == f.stamp {
				continue
			}
			f.mark[v] = f.stamp
			f.prev[v] = int32(u)
			heap.Push(&f.pq, floodItem{level: max(it.level, fg.Height[v]), idx: int32(v)})
		}
	}

	var changed []int
	if exit < 0 {
		// Nothing drains: the lowest cell reached becomes a terminal outlet.
		exit = lowest
		fg.Dir[exit] = grid.Outlet
		fg.Stats.Terminals++
		changed = append(changed, exit)
	}
	for at, next := int(f.prev[exit]), exit; at >= 0; at, next = int(f.prev[at]), at {
		fg.Dir[at] = fg.Dims.DirectionTo(at, next)
		changed = append(changed, at)
		fg.Stats.Carved++
	}
	return changed
}

// floodItem is a priority-flood entry: the spill level needed to reach idx.
type floodItem struct {
	level float32
	idx   int32
}

// floodPQ is a min-heap of floodItem ordered by level, then index.
type floodPQ []floodItem

func (pq floodPQ) Len() int { return len(pq) }
func (pq floodPQ) Less(i, j int) bool {
	if pq[i].level != pq[j].level {
		return pq[i].level < pq[j].level
	}
	return pq[i].idx < pq[j].idx
}
func (pq floodPQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

// Push appends x; used by container/heap.
func (pq *floodPQ) Push(x any) { *pq = append(*pq, x.(floodItem)) }

// Pop removes the last item; used by container/heap.
func (pq *floodPQ) Pop() any {
	old := *pq
	it := old[len(old)-1]
	*pq = old[:len(old)-1]
	return it
}
