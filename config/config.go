package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// MaxResolution bounds OutputResolution.
const MaxResolution = 1 << 15

var (
	// ErrInvalid is returned when a Config fails validation.
	ErrInvalid = errors.New("config: invalid configuration")
	// ErrRead is returned when a config file cannot be read or parsed.
	ErrRead = errors.New("config: cannot read configuration")
)

// Config holds every parameter of a generation run.
type Config struct {
	SourceHeightmapPath string `yaml:"source_heightmap_path"`
	CacheDirectory      string `yaml:"cache_directory"`

	OutputResolution        uint32  `yaml:"output_resolution"`
	RiverFlowThreshold      float32 `yaml:"river_flow_threshold"`
	RiverMinWidth           float32 `yaml:"river_min_width"`
	RiverMaxWidth           float32 `yaml:"river_max_width"`
	SplineSimplifyTolerance float32 `yaml:"spline_simplify_tolerance"`
	LakeMinArea             float32 `yaml:"lake_min_area"`
	LakeMinDepth            float32 `yaml:"lake_min_depth"`

	MinAltitude float32 `yaml:"min_altitude"`
	MaxAltitude float32 `yaml:"max_altitude"`
	SeaLevel    float32 `yaml:"sea_level"` // world altitude
	TerrainSize float32 `yaml:"terrain_size"`

	// NumDroplets is recorded in cache metadata for compatibility with
	// droplet-based generators. Flow routing does not read it.
	NumDroplets uint32 `yaml:"num_droplets"`
}

// Default returns the preprocessing defaults with empty paths.
func Default() Config {
	return Config{
		OutputResolution:        4096,
		RiverFlowThreshold:      0.15,
		RiverMinWidth:           5,
		RiverMaxWidth:           80,
		SplineSimplifyTolerance: 10,
		LakeMinArea:             500,
		LakeMinDepth:            2,
		MinAltitude:             0,
		MaxAltitude:             200,
		SeaLevel:                0,
		TerrainSize:             16384,
		NumDroplets:             0,
	}
}

// Load reads a YAML file over Default and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	f, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("%w: %v", ErrRead, err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("%w: %s: %v", ErrRead, path, err)
	}
	return cfg, cfg.Validate()
}

// Validate checks ranges and required fields.
func (c Config) Validate() error {
	switch {
	case c.SourceHeightmapPath == "":
		return fmt.Errorf("%w: source_heightmap_path is empty", ErrInvalid)
	case c.CacheDirectory == "":
		return fmt.Errorf("%w: cache_directory is empty", ErrInvalid)
	case c.OutputResolution == 0 || c.OutputResolution > MaxResolution:
		return fmt.Errorf("%w: output_resolution %d outside [1,%d]", ErrInvalid, c.OutputResolution, MaxResolution)
	case !inRange(c.RiverFlowThreshold, 0, 1):
		return fmt.Errorf("%w: river_flow_threshold %v outside [0,1]", ErrInvalid, c.RiverFlowThreshold)
	case !inRange(c.RiverMinWidth, 0, c.RiverMaxWidth):
		return fmt.Errorf("%w: river widths %v..%v", ErrInvalid, c.RiverMinWidth, c.RiverMaxWidth)
	case !inRange(c.SplineSimplifyTolerance, 0, math.MaxFloat32):
		return fmt.Errorf("%w: spline_simplify_tolerance %v", ErrInvalid, c.SplineSimplifyTolerance)
	case !inRange(c.LakeMinArea, 0, math.MaxFloat32) || !inRange(c.LakeMinDepth, 0, math.MaxFloat32):
		return fmt.Errorf("%w: lake limits %v/%v", ErrInvalid, c.LakeMinArea, c.LakeMinDepth)
	case !(c.MaxAltitude > c.MinAltitude):
		return fmt.Errorf("%w: altitude range %v..%v is empty", ErrInvalid, c.MinAltitude, c.MaxAltitude)
	case !(c.TerrainSize > 0):
		return fmt.Errorf("%w: terrain_size %v", ErrInvalid, c.TerrainSize)
	case math.IsNaN(float64(c.SeaLevel)):
		return fmt.Errorf("%w: sea_level is NaN", ErrInvalid)
	}
	return nil
}

// inRange reports lo ≤ v ≤ hi; NaN is never in range.
func inRange(v, lo, hi float32) bool {
	return v >= lo && v <= hi
}

// AltitudeRange returns MaxAltitude - MinAltitude.
func (c Config) AltitudeRange() float32 {
	return c.MaxAltitude - c.MinAltitude
}

// NormalizedSeaLevel maps SeaLevel into the heightmap's [0,1] range.
// An empty altitude range yields 0.
func (c Config) NormalizedSeaLevel() float32 {
	r := c.AltitudeRange()
	if r == 0 {
		return 0
	}
	return (c.SeaLevel - c.MinAltitude) / r
}
