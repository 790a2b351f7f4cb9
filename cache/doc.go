// Package cache persists hydrology results in a cache directory and decides
// whether a previous run can be reused.
//
// A directory holds five files:
//
//	flow_accumulation.raw  u32 width, u32 height, f32 accumulation[w*h], i8 direction[w*h]
//	rivers.dat             u32 count, per river: u32 n, vec3 points[n], f32 widths[n], f32 totalFlow
//	lakes.dat              u32 count, per lake: vec2 position, f32 waterLevel, radius, area, depth
//	erosion_data.meta      key=value lines describing the run
//	erosion_preview.png    color-coded overview for inspection
//
// Binary files are little-endian; floats are IEEE-754 binary32. Save writes
// the metadata file last and removes any previous one first, so an
// interrupted save never leaves a directory that validates.
//
// Validation compares the source file's byte size, not its path, together
// with the output resolution, droplet count and river threshold.
package cache
