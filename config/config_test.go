package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dave-hillier/sturdy-meme-sub013/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func valid() config.Config {
	c := config.Default()
	c.SourceHeightmapPath = "height.png"
	c.CacheDirectory = "cache"
	return c
}

func TestDefault(t *testing.T) {
	c := config.Default()
	assert.Equal(t, uint32(4096), c.OutputResolution)
	assert.Equal(t, float32(0.15), c.RiverFlowThreshold)
	assert.Equal(t, float32(16384), c.TerrainSize)
	assert.ErrorIs(t, c.Validate(), config.ErrInvalid, "paths are required")
	assert.NoError(t, valid().Validate())
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name string
		mut  func(*config.Config)
	}{
		{"no source", func(c *config.Config) { c.SourceHeightmapPath = "" }},
		{"no cache", func(c *config.Config) { c.CacheDirectory = "" }},
		{"zero resolution", func(c *config.Config) { c.OutputResolution = 0 }},
		{"huge resolution", func(c *config.Config) { c.OutputResolution = config.MaxResolution + 1 }},
		{"threshold above 1", func(c *config.Config) { c.RiverFlowThreshold = 1.5 }},
		{"widths inverted", func(c *config.Config) { c.RiverMinWidth = 90 }},
		{"negative tolerance", func(c *config.Config) { c.SplineSimplifyTolerance = -1 }},
		{"negative area", func(c *config.Config) { c.LakeMinArea = -1 }},
		{"empty altitude", func(c *config.Config) { c.MaxAltitude = c.MinAltitude }},
		{"zero terrain", func(c *config.Config) { c.TerrainSize = 0 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := valid()
			tc.mut(&c)
			assert.ErrorIs(t, c.Validate(), config.ErrInvalid)
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hydro.yaml")
	body := "source_heightmap_path: terrain/h.png\n" +
		"cache_directory: out\n" +
		"output_resolution: 512\n" +
		"river_flow_threshold: 0.2\n" +
		"sea_level: 12.5\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	c, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "terrain/h.png", c.SourceHeightmapPath)
	assert.Equal(t, uint32(512), c.OutputResolution)
	assert.Equal(t, float32(0.2), c.RiverFlowThreshold)
	assert.Equal(t, float32(12.5), c.SeaLevel)
	assert.Equal(t, float32(80), c.RiverMaxWidth, "unset keys keep defaults")
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := config.Load(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, config.ErrRead)

	unknown := filepath.Join(dir, "unknown.yaml")
	require.NoError(t, os.WriteFile(unknown, []byte("rivr_threshold: 0.1\n"), 0o644))
	_, err = config.Load(unknown)
	assert.ErrorIs(t, err, config.ErrRead)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("source_heightmap_path: a\ncache_directory: b\noutput_resolution: 0\n"), 0o644))
	_, err = config.Load(bad)
	assert.ErrorIs(t, err, config.ErrInvalid)
}

func TestNormalizedSeaLevel(t *testing.T) {
	c := valid()
	c.MinAltitude, c.MaxAltitude, c.SeaLevel = -50, 150, 0
	assert.Equal(t, float32(200), c.AltitudeRange())
	assert.Equal(t, float32(0.25), c.NormalizedSeaLevel())

	c.MaxAltitude = c.MinAltitude
	assert.Zero(t, c.NormalizedSeaLevel())
}
