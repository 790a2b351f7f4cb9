// Package grid holds the raster primitives shared by every hydrology stage:
// dimensions, row-major indexing and the canonical D8 neighbor table.
//
// What:
//
//   - Dims describes a Width×Height raster and maps (x,y) ↔ row-major index.
//   - Direction encodes one of eight downstream neighbors, or Outlet.
//   - Offsets and Distances enumerate neighbors in the canonical order
//     E, SE, S, SW, W, NW, N, NE. Every scan in this module uses this order,
//     so tie-breaks are reproducible across runs and reimplementations.
//
// Complexity:
//
//   - Index, Coordinate, InBounds, Neighbor: O(1).
//
// Errors:
//
//   - ErrEmptyGrid: width or height is not positive.
//   - ErrSizeMismatch: a backing slice does not hold Width×Height values.
package grid
