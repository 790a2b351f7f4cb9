// Package rivers extracts a vector river network from normalized flow
// accumulation.
//
// What:
//
//   - Sources are interior cells whose flow is at least FlowThreshold and
//     no smaller than any of their eight neighbors. Sources are processed by
//     descending flow so the largest rivers claim cells first.
//   - A trace walks from a source to the unvisited neighbor with the highest
//     flow among those at or above the threshold and no higher than the
//     current cell plus HeightEpsilon, stopping when none qualify or after
//     MaxTracePoints points.
//   - Width grows with the square root of flow:
//     lerp(MinWidth, MaxWidth, sqrt(flow)).
//   - Traces shorter than MinTracePoints are dropped; the rest are
//     simplified with Douglas-Peucker in (x, altitude, z) and dropped if
//     fewer than three points survive.
//
// Scans use the canonical neighbor order of package grid; ties keep the
// first candidate in that order, so output is reproducible.
//
// Complexity:
//
//   - Source search: O(W×H×8). Sorting: O(S log S).
//   - Tracing: O(W×H) in total, since each cell is visited at most once.
package rivers
