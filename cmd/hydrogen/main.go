// Command hydrogen generates the hydrology cache for a heightmap.
//
//	hydrogen [flags] <heightmap> <cache-dir> [flags]
//
// Flags may appear before or after the positional arguments. Values given on
// the command line override those read from -config. With -check the cache
// is only validated: exit status 0 means it can be reused, 1 that it cannot.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/gosuri/uiprogress"

	"github.com/dave-hillier/sturdy-meme-sub013/cache"
	"github.com/dave-hillier/sturdy-meme-sub013/config"
	"github.com/dave-hillier/sturdy-meme-sub013/pipeline"
)

// Exit codes.
const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

// cliFlags holds parsed command-line values before they are merged into a
// config.Config.
type cliFlags struct {
	cfg        config.Config
	configPath string
	force      bool
	check      bool
	verbose    bool
	quiet      bool
	positional []string
	set        map[string]bool
}

func parseFlags(args []string, stderr io.Writer) (*cliFlags, error) {
	c := &cliFlags{cfg: config.Default(), set: map[string]bool{}}
	fs := flag.NewFlagSet("hydrogen", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: hydrogen [flags] <heightmap> <cache-dir>")
		fs.PrintDefaults()
	}

	d := &c.cfg
	fs.StringVar(&c.configPath, "config", "", "YAML configuration file")
	fs.BoolVar(&c.force, "force", false, "regenerate even when the cache is valid")
	fs.BoolVar(&c.check, "check", false, "only validate the cache; exit 0 when valid")
	fs.BoolVar(&c.verbose, "v", false, "debug logging")
	fs.BoolVar(&c.quiet, "quiet", false, "no progress bar")
	uint32Var(fs, &d.OutputResolution, "output-resolution", "flow grid side length in cells")
	float32Var(fs, &d.RiverFlowThreshold, "river-threshold", "normalized flow threshold for rivers")
	float32Var(fs, &d.RiverMinWidth, "river-min-width", "river width at zero flow, world units")
	float32Var(fs, &d.RiverMaxWidth, "river-max-width", "river width at full flow, world units")
	float32Var(fs, &d.SplineSimplifyTolerance, "simplify-tolerance", "river simplification tolerance, world units")
	float32Var(fs, &d.LakeMinArea, "lake-min-area", "minimum lake area, world units squared")
	float32Var(fs, &d.LakeMinDepth, "lake-min-depth", "minimum lake depth, world units")
	float32Var(fs, &d.SeaLevel, "sea-level", "sea level altitude")
	float32Var(fs, &d.TerrainSize, "terrain-size", "world size of the terrain side")
	float32Var(fs, &d.MinAltitude, "min-altitude", "altitude of height 0")
	float32Var(fs, &d.MaxAltitude, "max-altitude", "altitude of height 1")

	rest := args
	for {
		if err := fs.Parse(rest); err != nil {
			return nil, err
		}
		if fs.NArg() == 0 {
			break
		}
		c.positional = append(c.positional, fs.Arg(0))
		rest = fs.Args()[1:]
	}
	fs.Visit(func(f *flag.Flag) { c.set[f.Name] = true })

	if len(c.positional) > 2 {
		return nil, fmt.Errorf("unexpected argument %q", c.positional[2])
	}
	return c, nil
}

// resolve merges -config, positional arguments and explicit flags.
func (c *cliFlags) resolve() (config.Config, error) {
	cfg := config.Default()
	if c.configPath != "" {
		loaded, err := config.Load(c.configPath)
		if err != nil && !errors.Is(err, config.ErrInvalid) {
			return cfg, err
		}
		cfg = loaded
	}
	overlay(&cfg, c.cfg, c.set)
	if len(c.positional) > 0 {
		cfg.SourceHeightmapPath = c.positional[0]
	}
	if len(c.positional) > 1 {
		cfg.CacheDirectory = c.positional[1]
	}
	return cfg, cfg.Validate()
}

// overlay copies the explicitly set flag values from src into dst.
func overlay(dst *config.Config, src config.Config, set map[string]bool) {
	fields := map[string]func(){
		"output-resolution":  func() { dst.OutputResolution = src.OutputResolution },
		"river-threshold":    func() { dst.RiverFlowThreshold = src.RiverFlowThreshold },
		"river-min-width":    func() { dst.RiverMinWidth = src.RiverMinWidth },
		"river-max-width":    func() { dst.RiverMaxWidth = src.RiverMaxWidth },
		"simplify-tolerance": func() { dst.SplineSimplifyTolerance = src.SplineSimplifyTolerance },
		"lake-min-area":      func() { dst.LakeMinArea = src.LakeMinArea },
		"lake-min-depth":     func() { dst.LakeMinDepth = src.LakeMinDepth },
		"sea-level":          func() { dst.SeaLevel = src.SeaLevel },
		"terrain-size":       func() { dst.TerrainSize = src.TerrainSize },
		"min-altitude":       func() { dst.MinAltitude = src.MinAltitude },
		"max-altitude":       func() { dst.MaxAltitude = src.MaxAltitude },
	}
	for name, apply := range fields {
		if set[name] {
			apply()
		}
	}
}

func run(args []string, stderr io.Writer) int {
	c, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		fmt.Fprintln(stderr, "hydrogen:", err)
		return exitUsage
	}

	level := slog.LevelInfo
	if c.verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	cfg, err := c.resolve()
	if err != nil {
		log.Error("invalid configuration", "err", err)
		return exitUsage
	}

	if c.check {
		if cache.Validate(cfg, cache.WithLogger(log)) {
			log.Info("cache valid", "dir", cfg.CacheDirectory)
			return exitOK
		}
		return exitFailure
	}

	opts := []pipeline.Option{pipeline.WithLogger(log), pipeline.WithForce(c.force)}
	if !c.quiet {
		bar := newProgressBar()
		defer bar.stop()
		opts = append(opts, pipeline.WithProgress(bar.update))
	}

	if _, err := pipeline.Generate(cfg, opts...); err != nil {
		log.Error("generation failed", "err", err)
		return exitFailure
	}
	return exitOK
}

// progressBar adapts pipeline progress to a terminal bar.
type progressBar struct {
	bar    *uiprogress.Bar
	mu     sync.Mutex
	status string
}

func newProgressBar() *progressBar {
	p := &progressBar{}
	uiprogress.Start()
	p.bar = uiprogress.AddBar(100).AppendCompleted().PrependElapsed()
	p.bar.PrependFunc(func(*uiprogress.Bar) string {
		p.mu.Lock()
		defer p.mu.Unlock()
		return fmt.Sprintf("%-26s", p.status)
	})
	return p
}

func (p *progressBar) update(fraction float64, status string) {
	p.mu.Lock()
	p.status = status
	p.mu.Unlock()
	_ = p.bar.Set(int(fraction * 100))
}

func (p *progressBar) stop() {
	uiprogress.Stop()
}
