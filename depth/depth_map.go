// Package depth - Dense depth maps and per-object distance estimation.
package depth

import (
	"github.com/chewxy/math32"
	"github.com/pkg/errors"
	"gorgonia.org/tensor"

	"github.com/nvr-ai/go-scene/images"
)

// ErrInvalidGeometry is the shared geometry error from the images package.
var ErrInvalidGeometry = images.ErrInvalidGeometry

// Map is an H x W grid of distances in meters, aligned to source-image pixels.
// A Map is read-only after construction and safe for concurrent readers.
type Map struct {
	t             *tensor.Dense
	width, height int
}

// New builds a Map from row-major samples. The samples are copied.
//
// Non-finite samples are accepted and treated as "no reading" by the
// estimator. Finite negative samples are rejected.
//
// Arguments:
//   - width: Number of columns.
//   - height: Number of rows.
//   - samples: width*height distances in meters, row-major.
//
// Returns:
//   - *Map: The depth map.
//   - error: If the dimensions are not positive or do not match the samples.
func New(width, height int, samples []float32) (*Map, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.Errorf("depth map must be non-empty, got %dx%d", width, height)
	}
	if len(samples) != width*height {
		return nil, errors.Errorf("depth map %dx%d needs %d samples, got %d", width, height, width*height, len(samples))
	}
	backing := make([]float32, len(samples))
	for i, v := range samples {
		if v < 0 && !math32.IsInf(v, -1) {
			return nil, errors.Errorf("negative depth %f at (%d,%d)", v, i%width, i/width)
		}
		backing[i] = v
	}
	return &Map{
		t:      tensor.New(tensor.WithShape(height, width), tensor.WithBacking(backing)),
		width:  width,
		height: height,
	}, nil
}

// FromRows builds a Map from a slice of equally long rows.
func FromRows(rows [][]float32) (*Map, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, errors.New("depth map must be non-empty")
	}
	width := len(rows[0])
	samples := make([]float32, 0, width*len(rows))
	for y, row := range rows {
		if len(row) != width {
			return nil, errors.Errorf("depth row %d has %d columns, want %d", y, len(row), width)
		}
		samples = append(samples, row...)
	}
	return New(width, len(rows), samples)
}

// Width returns the number of columns.
func (m *Map) Width() int { return m.width }

// Height returns the number of rows.
func (m *Map) Height() int { return m.height }

// Bounds returns the pixel rectangle covered by the map.
func (m *Map) Bounds() images.Rect {
	return images.Rect{X1: 0, Y1: 0, X2: m.width, Y2: m.height}
}

// At returns the sample at column x, row y.
func (m *Map) At(x, y int) float32 {
	return m.t.Data().([]float32)[y*m.width+x]
}

// Region returns a copy of the samples inside r, which must already lie
// within the map bounds.
func (m *Map) Region(r images.Rect) ([]float32, error) {
	if r.Empty() {
		return nil, nil
	}
	view, err := m.t.Slice(tensor.S(r.Y1, r.Y2), tensor.S(r.X1, r.X2))
	if err != nil {
		return nil, errors.Wrapf(err, "slice depth region %s", r)
	}
	switch data := view.Materialize().Data().(type) {
	case []float32:
		return append([]float32(nil), data...), nil
	case float32:
		// A 1x1 region collapses to a scalar.
		return []float32{data}, nil
	default:
		return nil, errors.Errorf("unexpected depth region type %T", data)
	}
}

// finite drops NaN and +-Inf samples in place and returns the kept prefix.
func finite(samples []float32) []float32 {
	kept := samples[:0]
	for _, v := range samples {
		if math32.IsNaN(v) || math32.IsInf(v, 0) {
			continue
		}
		kept = append(kept, v)
	}
	return kept
}
