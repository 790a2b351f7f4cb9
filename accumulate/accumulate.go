package accumulate

import (
	"fmt"
	"math"

	"github.com/dave-hillier/sturdy-meme-sub013/flowdir"
)

// Accumulate computes flow accumulation over fg.
// Returns ErrNilGrid for a nil grid and ErrTopologyDefect if fg is not a forest.
func Accumulate(fg *flowdir.FlowGrid, opts ...Option) (*Accumulation, error) {
	if fg == nil {
		return nil, ErrNilGrid
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	total := fg.Dims.Len()
	down := make([]int32, total)
	inDegree := make([]uint32, total)
	for i := 0; i < total; i++ {
		down[i] = -1
		if n, ok := fg.Downstream(i); ok {
			down[i] = int32(n)
			inDegree[n]++
		}
	}

	acc := &Accumulation{
		Dims: fg.Dims,
		Raw:  make([]uint32, total),
		Norm: make([]float32, total),
	}
	queue := make([]int32, 0, total)
	for i := 0; i < total; i++ {
		acc.Raw[i] = 1
		if inDegree[i] == 0 {
			queue = append(queue, int32(i))
		}
	}

	step := max(total/20, 1)
	for qi := 0; qi < len(queue); qi++ {
		u := queue[qi]
		acc.Processed++
		if d := down[u]; d >= 0 {
			acc.Raw[d] += acc.Raw[u]
			inDegree[d]--
			if inDegree[d] == 0 {
				queue = append(queue, d)
			}
		}
		if o.OnProgress != nil && acc.Processed%step == 0 {
			o.OnProgress(acc.Processed, total)
		}
	}
	if acc.Processed != total {
		return nil, fmt.Errorf("%w: processed %d of %d cells", ErrTopologyDefect, acc.Processed, total)
	}

	for _, r := range acc.Raw {
		acc.MaxFlow = max(acc.MaxFlow, r)
	}
	logMax := math.Log(float64(acc.MaxFlow) + 1)
	for i, r := range acc.Raw {
		acc.Norm[i] = float32(math.Log(float64(r)+1) / logMax)
	}

	o.Logger.Debug("accumulate: done", "cells", total, "maxFlow", acc.MaxFlow)
	return acc, nil
}

// OutletSum returns the sum of raw accumulation over all outlet cells of fg.
// For a valid routing it equals the cell count.
func OutletSum(fg *flowdir.FlowGrid, acc *Accumulation) uint64 {
	var sum uint64
	for i := range fg.Dir {
		if _, ok := fg.Downstream(i); !ok {
			sum += uint64(acc.Raw[i])
		}
	}
	return sum
}
