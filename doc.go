// Package hydrology derives water features from a terrain heightmap.
//
// A generation run routes every cell of a resampled heightmap to one of its
// eight neighbors (D8 steepest descent), accumulates upstream cell counts in
// topological order, traces and simplifies river polylines along high-flow
// cells and floods closed depressions into lakes. Results are written to a
// cache directory and reused while the source file and generation
// parameters are unchanged.
//
// Packages:
//
//	grid/       raster dimensions, D8 direction codes, world frame
//	geom/       float32 vectors, Douglas-Peucker simplification
//	heightmap/  8/16-bit raster loading, bilinear sampling, resampling
//	flowdir/    D8 routing with pit breaching and cycle repair
//	accumulate/ topological flow accumulation and normalization
//	rivers/     river source selection, tracing and width model
//	lakes/      depression seeds, bounded flood fill, lake filter
//	water/      the snapshot shared by stages and the cache
//	cache/      binary artifacts, metadata validation, preview image
//	config/     run parameters with YAML loading
//	pipeline/   stage orchestration with progress reporting
//
// Commands:
//
//	cmd/hydrogen   generate or check a cache from the command line
//	cmd/hydroview  inspect a cache interactively (build tag ebiten)
package hydrology
