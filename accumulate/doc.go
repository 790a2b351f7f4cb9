// Package accumulate computes D8 flow accumulation: for every cell, the
// number of cells whose flow path passes through it, itself included.
//
// Accumulate processes the direction graph in topological order with
// Kahn's algorithm over a flat, slice-backed queue. There is no recursion,
// so multi-million-cell grids need no call stack beyond one frame.
//
//  1. In-degree per cell = number of neighbors whose direction points at it.
//  2. Every cell starts at 1; zero in-degree cells seed the queue in index order.
//  3. Pop a cell, add its count to its downstream cell, decrement that cell's
//     in-degree and enqueue it when the in-degree reaches zero.
//  4. If fewer than W×H cells were processed the graph holds a cycle and
//     ErrTopologyDefect is returned; output is never silently truncated.
//  5. Counts are log-normalized: ln(raw+1) / ln(max+1).
//
// Complexity:
//
//   - Time:   O(W×H).
//   - Memory: O(W×H) for in-degree, queue and both accumulation arrays.
package accumulate
