package main

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeRamp(t *testing.T, n int) string {
	t.Helper()
	img := image.NewGray16(image.Rect(0, 0, n, n))
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			v := 1 - float64(x+y)/float64(2*(n-1))
			img.SetGray16(x, y, color.Gray16{Y: uint16(v * 65535)})
		}
	}
	path := filepath.Join(t.TempDir(), "ramp.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
	return path
}

func TestRun_GenerateThenCheck(t *testing.T) {
	src := writeRamp(t, 32)
	dir := filepath.Join(t.TempDir(), "cache")
	var stderr bytes.Buffer

	assert.Equal(t, exitFailure, run([]string{"-check", "--output-resolution", "32", src, dir}, &stderr))
	assert.Equal(t, exitOK, run([]string{"-quiet", src, dir, "--output-resolution", "32", "--sea-level", "0"}, &stderr))
	assert.Equal(t, exitOK, run([]string{"-check", src, dir, "--output-resolution=32"}, &stderr))
	assert.Equal(t, exitFailure, run([]string{"-check", src, dir, "--output-resolution=16"}, &stderr))
	assert.Contains(t, stderr.String(), "pipeline: complete")
}

func TestRun_Usage(t *testing.T) {
	var stderr bytes.Buffer
	assert.Equal(t, exitUsage, run([]string{"--no-such-flag"}, &stderr))
	assert.Equal(t, exitUsage, run([]string{"-check"}, &stderr), "paths are required")
	assert.Equal(t, exitUsage, run([]string{"a", "b", "c"}, &stderr))
	assert.Equal(t, exitUsage, run([]string{"--river-threshold", "abc", "a", "b"}, &stderr))
	assert.Equal(t, exitOK, run([]string{"-h"}, &stderr))
}

// TestResolve_Precedence applies file values first, then explicit flags,
// then positional paths.
func TestResolve_Precedence(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "hydro.yaml")
	body := "source_heightmap_path: from-file.png\n" +
		"cache_directory: file-cache\n" +
		"output_resolution: 256\n" +
		"sea_level: 5\n" +
		"river_flow_threshold: 0.3\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(body), 0o644))

	c, err := parseFlags([]string{"-config", cfgPath, "--sea-level", "12", "arg.png"}, &bytes.Buffer{})
	require.NoError(t, err)
	cfg, err := c.resolve()
	require.NoError(t, err)

	assert.Equal(t, "arg.png", cfg.SourceHeightmapPath)
	assert.Equal(t, "file-cache", cfg.CacheDirectory)
	assert.Equal(t, uint32(256), cfg.OutputResolution)
	assert.Equal(t, float32(12), cfg.SeaLevel)
	assert.Equal(t, float32(0.3), cfg.RiverFlowThreshold)
	assert.Equal(t, float32(80), cfg.RiverMaxWidth)
}
