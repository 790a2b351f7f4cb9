// Package lakes finds closed depressions in a height raster and grows each
// one into a lake basin.
//
// A seed is an interior cell above sea level whose height is no greater than
// any of its 8 neighbors. From each seed a breadth-first flood collects every
// connected cell within SearchHeight of the seed; the first cells beyond that
// bound form the rim, and the highest rim height is taken as the spill level.
// Visit marks are shared across seeds, so a basin is claimed once, by the
// first seed in row-major order that reaches it.
//
// Each basin is characterized by its member centroid, water level, depth,
// radius and area, and kept only when Area ≥ MinArea and Depth ≥ MinDepth.
package lakes
