// Package flowdir assigns every raster cell a single D8 downstream neighbor.
//
// What:
//
//   - Cells at or below sea level become outlets (grid.Outlet).
//   - Every other cell flows to the neighbor with the steepest positive
//     slope (hSelf - hNeighbor) / distance, distance 1 orthogonal, √2 diagonal.
//   - A pit with no positive slope is breached: it flows to its lowest
//     neighbor regardless of sign.
//   - Breaching can pair a pit with a neighbor that flows straight back.
//     A repair pass finds every cell whose chain never reaches an outlet,
//     runs a priority flood from each remaining cycle to the nearest cell
//     that does drain, and carves the flood path toward it. Where no cell
//     drains at all, the lowest cell reached becomes a terminal outlet.
//
// The result is a forest rooted at outlets, which is what accumulate relies on.
// Ties are resolved by the canonical neighbor order in package grid and, in
// the priority flood, by row-major index.
//
// Complexity:
//
//   - Routing: O(W×H×8). Memory: O(W×H).
//   - Repair: O(W×H) when nothing cycles; each cycle adds O(k log k) for the
//     k cells its flood visits.
package flowdir
