package pipeline

import (
	"fmt"

	"github.com/dave-hillier/sturdy-meme-sub013/accumulate"
	"github.com/dave-hillier/sturdy-meme-sub013/cache"
	"github.com/dave-hillier/sturdy-meme-sub013/config"
	"github.com/dave-hillier/sturdy-meme-sub013/flowdir"
	"github.com/dave-hillier/sturdy-meme-sub013/grid"
	"github.com/dave-hillier/sturdy-meme-sub013/heightmap"
	"github.com/dave-hillier/sturdy-meme-sub013/lakes"
	"github.com/dave-hillier/sturdy-meme-sub013/rivers"
	"github.com/dave-hillier/sturdy-meme-sub013/water"
)

// runner carries one run's configuration and hooks.
type runner struct {
	cfg  config.Config
	opts Options
	last float64
}

func newRunner(cfg config.Config, opts []Option) (*runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &runner{cfg: cfg, opts: o}, nil
}

// Run regenerates every artifact for cfg and saves them.
// Errors wrap config.ErrInvalid, heightmap.ErrLoad,
// accumulate.ErrTopologyDefect or cache.ErrWrite.
func Run(cfg config.Config, opts ...Option) (*water.Data, error) {
	r, err := newRunner(cfg, opts)
	if err != nil {
		return nil, err
	}
	return r.execute(nil)
}

// Generate is Run with flow reuse: when the cache for cfg validates and
// Force is off, the flow grid and accumulation are restored from it.
// A cache that fails to load is logged and regenerated.
func Generate(cfg config.Config, opts ...Option) (*water.Data, error) {
	r, err := newRunner(cfg, opts)
	if err != nil {
		return nil, err
	}
	log := r.opts.Logger

	var cached *water.Data
	if !r.opts.Force && cache.Validate(cfg, cache.WithLogger(log)) {
		cached, err = cache.Load(cfg, cache.WithLogger(log))
		if err != nil {
			log.Warn("pipeline: cache unreadable, regenerating", "err", err)
			cached = nil
		}
	}
	return r.execute(cached)
}

func (r *runner) progress(f float64, status string) {
	f = max(f, r.last)
	r.last = f
	r.opts.OnProgress(f, status)
}

func (r *runner) execute(cached *water.Data) (*water.Data, error) {
	cfg, log := r.cfg, r.opts.Logger

	r.progress(StageLoad, StatusLoad)
	hm, err := heightmap.Load(cfg.SourceHeightmapPath, cfg.MinAltitude, cfg.MaxAltitude)
	if err != nil {
		return nil, err
	}
	res := int(cfg.OutputResolution)
	dims := grid.Dims{Width: res, Height: res}
	heights, err := hm.Resample(res, res)
	if err != nil {
		return nil, err
	}
	sea, altRange := hm.Normalize(cfg.SeaLevel), hm.Range()
	log.Debug("pipeline: heightmap", "width", hm.Width, "height", hm.Height, "flow", res, "sea", sea)

	var d *water.Data
	if cached != nil && cached.Dims == dims {
		r.progress(StageRoute, StatusRestore)
		d = &water.Data{
			Dims:         dims,
			Accumulation: cached.Accumulation,
			Direction:    cached.Direction,
			Height:       heights,
			SeaLevel:     sea,
		}
	} else {
		if d, err = r.flow(heights, dims, sea); err != nil {
			return nil, err
		}
	}

	frame := grid.Frame{Dims: dims, TerrainSize: cfg.TerrainSize}
	r.progress(StageRivers, StatusRivers)
	d.Rivers, err = rivers.Extract(rivers.Input{
		Frame:         frame,
		Height:        d.Height,
		Flow:          d.Accumulation,
		AltitudeRange: altRange,
	},
		rivers.WithFlowThreshold(cfg.RiverFlowThreshold),
		rivers.WithWidths(cfg.RiverMinWidth, cfg.RiverMaxWidth),
		rivers.WithSimplifyTolerance(cfg.SplineSimplifyTolerance),
		rivers.WithLogger(log))
	if err != nil {
		return nil, fmt.Errorf("pipeline: rivers: %w", err)
	}

	r.progress(StageLakes, StatusLakes)
	d.Lakes, err = lakes.Detect(lakes.Input{
		Frame:         frame,
		Height:        d.Height,
		AltitudeRange: altRange,
	},
		lakes.WithSeaLevel(sea),
		lakes.WithMinArea(cfg.LakeMinArea),
		lakes.WithMinDepth(cfg.LakeMinDepth),
		lakes.WithLogger(log))
	if err != nil {
		return nil, fmt.Errorf("pipeline: lakes: %w", err)
	}

	r.progress(StageSave, StatusSave)
	if err := cache.Save(cfg, d, cache.WithLogger(log)); err != nil {
		return nil, err
	}
	r.progress(StageDone, StatusDone)

	log.Info("pipeline: complete",
		"rivers", len(d.Rivers), "lakes", len(d.Lakes),
		"flow_map", fmt.Sprintf("%dx%d", dims.Width, dims.Height),
		"max_flow", d.MaxFlow)
	return d, nil
}

// flow routes and accumulates heights.
func (r *runner) flow(heights []float32, dims grid.Dims, sea float32) (*water.Data, error) {
	log := r.opts.Logger

	r.progress(StageRoute, StatusRoute)
	fg, err := flowdir.Route(heights, dims, flowdir.WithSeaLevel(sea), flowdir.WithLogger(log))
	if err != nil {
		return nil, fmt.Errorf("pipeline: route: %w", err)
	}

	r.progress(StageAccumulate, StatusAccumulate)
	span := StageRivers - StageAccumulate
	acc, err := accumulate.Accumulate(fg,
		accumulate.WithLogger(log),
		accumulate.WithOnProgress(func(done, total int) {
			r.progress(StageAccumulate+span*float64(done)/float64(total), StatusAccumulate)
		}))
	if err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}
	return water.New(fg, acc, sea)
}
