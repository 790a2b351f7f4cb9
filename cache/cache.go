package cache

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dave-hillier/sturdy-meme-sub013/config"
	"github.com/dave-hillier/sturdy-meme-sub013/water"
)

// Check reports why the cache for cfg cannot be reused, or nil when it can.
// Errors wrap ErrCacheMiss, ErrCacheMismatch or ErrCorrupt.
func Check(cfg config.Config) error {
	f, err := os.Open(Path(cfg.CacheDirectory, MetaFile))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCacheMiss, err)
	}
	cached, err := ReadMetadata(f)
	f.Close()
	if err != nil {
		return err
	}

	current, err := NewMetadata(cfg)
	if err != nil {
		return fmt.Errorf("%w: source: %v", ErrCacheMismatch, err)
	}
	if err := cached.Compare(current); err != nil {
		return err
	}

	for _, name := range []string{FlowFile, RiversFile, LakesFile} {
		if _, err := os.Stat(Path(cfg.CacheDirectory, name)); err != nil {
			return fmt.Errorf("%w: %v", ErrCacheMiss, err)
		}
	}
	return nil
}

// Validate reports whether the cache for cfg can be reused. The reason for
// a rejection is logged at info level.
func Validate(cfg config.Config, opts ...Option) bool {
	o := buildOptions(opts)
	if err := Check(cfg); err != nil {
		o.Logger.Info("cache: invalid", "dir", cfg.CacheDirectory, "reason", err)
		return false
	}
	return true
}

// Save writes every artifact of d into cfg.CacheDirectory, metadata last.
// Failures wrap ErrWrite.
func Save(cfg config.Config, d *water.Data, opts ...Option) error {
	o := buildOptions(opts)
	dir := cfg.CacheDirectory
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	meta, err := NewMetadata(cfg)
	if err != nil {
		return fmt.Errorf("%w: source: %v", ErrWrite, err)
	}
	if err := os.Remove(Path(dir, MetaFile)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}

	steps := []struct {
		name  string
		write func(io.Writer) error
	}{
		{FlowFile, func(w io.Writer) error { return WriteFlow(w, d.Dims, d.Accumulation, d.Direction) }},
		{RiversFile, func(w io.Writer) error { return WriteRivers(w, d.Rivers) }},
		{LakesFile, func(w io.Writer) error { return WriteLakes(w, d.Lakes) }},
		{PreviewFile, func(w io.Writer) error { return WritePreview(w, d, cfg.TerrainSize) }},
		{MetaFile, func(w io.Writer) error { _, err := meta.WriteTo(w); return err }},
	}
	for _, s := range steps {
		if err := writeFile(Path(dir, s.name), s.write); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrWrite, s.name, err)
		}
	}

	o.Logger.Info("cache: saved", "dir", dir,
		"rivers", len(d.Rivers), "lakes", len(d.Lakes),
		"width", d.Dims.Width, "height", d.Dims.Height)
	return nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(f)
	if err := write(bw); err != nil {
		f.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Load restores the flow grid, rivers and lakes saved for cfg. It does not
// validate the cache; call Validate first. Missing files wrap ErrCacheMiss,
// undecodable ones ErrCorrupt.
func Load(cfg config.Config, opts ...Option) (*water.Data, error) {
	o := buildOptions(opts)
	d := &water.Data{SeaLevel: cfg.NormalizedSeaLevel()}
	dir := cfg.CacheDirectory

	err := readFile(Path(dir, FlowFile), func(r io.Reader) error {
		var err error
		d.Dims, d.Accumulation, d.Direction, err = ReadFlow(r)
		return err
	})
	if err == nil {
		err = readFile(Path(dir, RiversFile), func(r io.Reader) error {
			var err error
			d.Rivers, err = ReadRivers(r)
			return err
		})
	}
	if err == nil {
		err = readFile(Path(dir, LakesFile), func(r io.Reader) error {
			var err error
			d.Lakes, err = ReadLakes(r)
			return err
		})
	}
	if err != nil {
		return nil, err
	}

	o.Logger.Info("cache: loaded", "dir", dir, "rivers", len(d.Rivers), "lakes", len(d.Lakes))
	return d, nil
}

func readFile(path string, read func(io.Reader) error) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCacheMiss, err)
	}
	defer f.Close()
	return read(bufio.NewReader(f))
}
