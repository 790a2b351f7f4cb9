// Package config defines the generation parameters shared by the pipeline,
// the cache and the command-line tools.
//
// A Config starts from Default, may be overlaid from a YAML file with Load,
// and must pass Validate before use. YAML keys are snake_case field names;
// unknown keys are rejected.
//
//	source_heightmap_path: terrain/height.png
//	cache_directory: generated/hydro
//	output_resolution: 4096
//	river_flow_threshold: 0.15
//	sea_level: 0
package config
