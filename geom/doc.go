// Package geom provides the small float32 vector types used for world-space
// river and lake geometry, and Douglas-Peucker polyline simplification.
//
// Simplify runs over an explicit stack of index ranges instead of recursion,
// so call-stack use is constant regardless of polyline length.
//
// Complexity:
//
//   - Simplify: O(n²) worst case, O(n log n) typical. Memory: O(n).
package geom
