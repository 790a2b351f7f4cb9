// Package pipeline runs the hydrology stages in order: load and resample
// the heightmap, route flow, accumulate it, extract rivers, detect lakes and
// persist the result.
//
// Run always regenerates everything. Generate restores the flow grid and
// accumulation from a valid cache instead of recomputing them; rivers and
// lakes are rebuilt from the restored flow and the cache is rewritten.
//
// Progress is reported through an optional callback at fixed milestones,
// with fractions that never decrease:
//
//	0.00  loading heightmap
//	0.10  routing flow (or restoring it from cache)
//	0.40  accumulating flow, refined while it runs
//	0.60  extracting rivers
//	0.80  detecting lakes
//	0.95  saving
//	1.00  complete
//
// Stages run synchronously on the caller's goroutine and every run owns its
// buffers; the returned water.Data is not shared with later runs.
package pipeline
