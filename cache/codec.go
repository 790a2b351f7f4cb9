package cache

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/dave-hillier/sturdy-meme-sub013/config"
	"github.com/dave-hillier/sturdy-meme-sub013/geom"
	"github.com/dave-hillier/sturdy-meme-sub013/grid"
	"github.com/dave-hillier/sturdy-meme-sub013/lakes"
	"github.com/dave-hillier/sturdy-meme-sub013/rivers"
)

var order = binary.LittleEndian

// lakeFloats is the number of float32 values in one lake record.
const lakeFloats = 6

// WriteFlow encodes the flow grid: dimensions, accumulation, then directions.
func WriteFlow(w io.Writer, dims grid.Dims, acc []float32, dir []grid.Direction) error {
	if len(acc) != dims.Len() || len(dir) != dims.Len() {
		return grid.ErrSizeMismatch
	}
	if err := binary.Write(w, order, [2]uint32{uint32(dims.Width), uint32(dims.Height)}); err != nil {
		return err
	}
	if err := binary.Write(w, order, acc); err != nil {
		return err
	}
	codes := make([]byte, len(dir))
	for i, d := range dir {
		codes[i] = byte(d)
	}
	_, err := w.Write(codes)
	return err
}

// ReadFlow decodes a flow file. A file that ends after the accumulation
// block, or part way through the direction block, yields grid.Outlet for
// every missing direction. Short headers or accumulation blocks return
// ErrCorrupt.
func ReadFlow(r io.Reader) (grid.Dims, []float32, []grid.Direction, error) {
	var hdr [2]uint32
	if err := binary.Read(r, order, &hdr); err != nil {
		return grid.Dims{}, nil, nil, fmt.Errorf("%w: flow header: %v", ErrCorrupt, err)
	}
	if hdr[0] == 0 || hdr[1] == 0 || hdr[0] > config.MaxResolution || hdr[1] > config.MaxResolution {
		return grid.Dims{}, nil, nil, fmt.Errorf("%w: flow dimensions %dx%d", ErrCorrupt, hdr[0], hdr[1])
	}
	dims := grid.Dims{Width: int(hdr[0]), Height: int(hdr[1])}

	acc := make([]float32, dims.Len())
	if err := binary.Read(r, order, acc); err != nil {
		return grid.Dims{}, nil, nil, fmt.Errorf("%w: accumulation: %v", ErrCorrupt, err)
	}

	codes := make([]byte, dims.Len())
	n, err := io.ReadFull(r, codes)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return grid.Dims{}, nil, nil, fmt.Errorf("%w: directions: %v", ErrCorrupt, err)
	}
	dir := make([]grid.Direction, dims.Len())
	for i := range dir {
		if i >= n {
			dir[i] = grid.Outlet
			continue
		}
		d := grid.Direction(int8(codes[i]))
		if !d.Valid() {
			return grid.Dims{}, nil, nil, fmt.Errorf("%w: direction code %d at cell %d", ErrCorrupt, d, i)
		}
		dir[i] = d
	}
	return dims, acc, dir, nil
}

// WriteRivers encodes a river list.
func WriteRivers(w io.Writer, rs []rivers.River) error {
	if err := binary.Write(w, order, uint32(len(rs))); err != nil {
		return err
	}
	for i, r := range rs {
		if len(r.Widths) != len(r.Points) {
			return fmt.Errorf("river %d: %d points, %d widths: %w", i, len(r.Points), len(r.Widths), grid.ErrSizeMismatch)
		}
		if err := binary.Write(w, order, uint32(len(r.Points))); err != nil {
			return err
		}
		if err := binary.Write(w, order, r.Points); err != nil {
			return err
		}
		if err := binary.Write(w, order, r.Widths); err != nil {
			return err
		}
		if err := binary.Write(w, order, r.TotalFlow); err != nil {
			return err
		}
	}
	return nil
}

// ReadRivers decodes a river list. Point counts above rivers.MaxTracePoints
// are rejected as corrupt.
func ReadRivers(r io.Reader) ([]rivers.River, error) {
	var count uint32
	if err := binary.Read(r, order, &count); err != nil {
		return nil, fmt.Errorf("%w: river count: %v", ErrCorrupt, err)
	}
	var out []rivers.River
	for i := uint32(0); i < count; i++ {
		var n uint32
		if err := binary.Read(r, order, &n); err != nil {
			return nil, fmt.Errorf("%w: river %d: %v", ErrCorrupt, i, err)
		}
		if n > rivers.MaxTracePoints {
			return nil, fmt.Errorf("%w: river %d has %d points", ErrCorrupt, i, n)
		}
		rv := rivers.River{
			Points: make([]geom.Vec3, n),
			Widths: make([]float32, n),
		}
		if err := binary.Read(r, order, rv.Points); err != nil {
			return nil, fmt.Errorf("%w: river %d points: %v", ErrCorrupt, i, err)
		}
		if err := binary.Read(r, order, rv.Widths); err != nil {
			return nil, fmt.Errorf("%w: river %d widths: %v", ErrCorrupt, i, err)
		}
		if err := binary.Read(r, order, &rv.TotalFlow); err != nil {
			return nil, fmt.Errorf("%w: river %d flow: %v", ErrCorrupt, i, err)
		}
		out = append(out, rv)
	}
	return out, nil
}

// WriteLakes encodes a lake list as fixed six-float records.
func WriteLakes(w io.Writer, ls []lakes.Lake) error {
	if err := binary.Write(w, order, uint32(len(ls))); err != nil {
		return err
	}
	for _, l := range ls {
		rec := [lakeFloats]float32{l.Position.X, l.Position.Y, l.WaterLevel, l.Radius, l.Area, l.Depth}
		if err := binary.Write(w, order, rec); err != nil {
			return err
		}
	}
	return nil
}

// ReadLakes decodes a lake list.
func ReadLakes(r io.Reader) ([]lakes.Lake, error) {
	var count uint32
	if err := binary.Read(r, order, &count); err != nil {
		return nil, fmt.Errorf("%w: lake count: %v", ErrCorrupt, err)
	}
	var out []lakes.Lake
	for i := uint32(0); i < count; i++ {
		var rec [lakeFloats]float32
		if err := binary.Read(r, order, &rec); err != nil {
			return nil, fmt.Errorf("%w: lake %d: %v", ErrCorrupt, i, err)
		}
		out = append(out, lakes.Lake{
			Position:   geom.Vec2{X: rec[0], Y: rec[1]},
			WaterLevel: rec[2],
			Radius:     rec[3],
			Area:       rec[4],
			Depth:      rec[5],
		})
	}
	return out, nil
}
