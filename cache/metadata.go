package cache

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/dave-hillier/sturdy-meme-sub013/config"
)

// Metadata keys.
const (
	keySource     = "source"
	keyDroplets   = "numDroplets"
	keyResolution = "outputResolution"
	keyThreshold  = "riverFlowThreshold"
	keySourceSize = "sourceFileSize"
)

// Metadata describes the run that produced a cache directory.
// Source is informational only; it never takes part in validation.
type Metadata struct {
	Source             string
	NumDroplets        uint32
	OutputResolution   uint32
	RiverFlowThreshold float32
	SourceFileSize     int64
}

// NewMetadata captures cfg and the current size of its source file.
func NewMetadata(cfg config.Config) (Metadata, error) {
	fi, err := os.Stat(cfg.SourceHeightmapPath)
	if err != nil {
		return Metadata{}, err
	}
	return Metadata{
		Source:             cfg.SourceHeightmapPath,
		NumDroplets:        cfg.NumDroplets,
		OutputResolution:   cfg.OutputResolution,
		RiverFlowThreshold: cfg.RiverFlowThreshold,
		SourceFileSize:     fi.Size(),
	}, nil
}

// WriteTo writes m as key=value lines.
func (m Metadata) WriteTo(w io.Writer) (int64, error) {
	n, err := fmt.Fprintf(w, "%s=%s\n%s=%d\n%s=%d\n%s=%s\n%s=%d\n",
		keySource, m.Source,
		keyDroplets, m.NumDroplets,
		keyResolution, m.OutputResolution,
		keyThreshold, strconv.FormatFloat(float64(m.RiverFlowThreshold), 'g', -1, 32),
		keySourceSize, m.SourceFileSize)
	return int64(n), err
}

// ReadMetadata parses key=value lines. Unknown keys and lines without '='
// are skipped; a known key with an unparsable value returns ErrCorrupt.
func ReadMetadata(r io.Reader) (Metadata, error) {
	var m Metadata
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		key, val, ok := strings.Cut(sc.Text(), "=")
		if !ok {
			continue
		}
		var err error
		switch key {
		case keySource:
			m.Source = val
		case keyDroplets:
			m.NumDroplets, err = parseUint32(val)
		case keyResolution:
			m.OutputResolution, err = parseUint32(val)
		case keyThreshold:
			var f float64
			f, err = strconv.ParseFloat(strings.TrimSpace(val), 32)
			m.RiverFlowThreshold = float32(f)
		case keySourceSize:
			m.SourceFileSize, err = strconv.ParseInt(strings.TrimSpace(val), 10, 64)
		}
		if err != nil {
			return Metadata{}, fmt.Errorf("%w: metadata %s: %v", ErrCorrupt, key, err)
		}
	}
	if err := sc.Err(); err != nil {
		return Metadata{}, fmt.Errorf("%w: metadata: %v", ErrCorrupt, err)
	}
	return m, nil
}

func parseUint32(s string) (uint32, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 10, 32)
	return uint32(v), err
}

// Compare returns nil when m was produced by a run equivalent to want,
// or an error wrapping ErrCacheMismatch naming the first difference.
func (m Metadata) Compare(want Metadata) error {
	switch {
	case m.SourceFileSize != want.SourceFileSize:
		return fmt.Errorf("%w: source file size %d, cached %d", ErrCacheMismatch, want.SourceFileSize, m.SourceFileSize)
	case m.OutputResolution != want.OutputResolution:
		return fmt.Errorf("%w: output resolution %d, cached %d", ErrCacheMismatch, want.OutputResolution, m.OutputResolution)
	case m.NumDroplets != want.NumDroplets:
		return fmt.Errorf("%w: droplets %d, cached %d", ErrCacheMismatch, want.NumDroplets, m.NumDroplets)
	case !(abs32(m.RiverFlowThreshold-want.RiverFlowThreshold) <= ThresholdEps):
		return fmt.Errorf("%w: river threshold %v, cached %v", ErrCacheMismatch, want.RiverFlowThreshold, m.RiverFlowThreshold)
	}
	return nil
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
