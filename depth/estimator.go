package depth

import (
	"slices"

	"github.com/pkg/errors"

	"github.com/nvr-ai/go-scene/images"
)

// ErrEmptyRegion is returned when a box covers no usable depth samples.
// Callers must not substitute a default distance for it.
var ErrEmptyRegion = errors.New("empty depth region")

// EstimateDistance returns the median depth inside box, in meters.
//
// The box is clamped to the map bounds and read half-open: rows Y1..Y2,
// columns X1..X2. The median keeps background pixels that bleed in at the
// box edges from dragging the estimate.
//
// Arguments:
//   - box: The detection box in depth-map pixels.
//   - m: The depth map.
//
// Returns:
//   - float64: The median distance in meters.
//   - error: ErrInvalidGeometry for a malformed box or one lying entirely
//     outside the map, ErrEmptyRegion when no finite sample remains.
//
// @example
// m, _ := depth.FromRows([][]float32{{1, 2, 3, 4, 100}})
// d, _ := depth.EstimateDistance(images.Box(0, 0, 5, 1), m) // 3
func EstimateDistance(box images.Rect, m *Map) (float64, error) {
	if m == nil || m.width == 0 || m.height == 0 {
		return 0, errors.New("depth map is empty")
	}
	if err := box.Validate(); err != nil {
		return 0, err
	}
	if !box.Overlaps(m.Bounds()) {
		return 0, errors.Wrapf(ErrInvalidGeometry, "box %s outside depth map %dx%d", box, m.width, m.height)
	}

	clamped := box.Intersect(m.Bounds())
	samples, err := m.Region(clamped)
	if err != nil {
		return 0, err
	}
	samples = finite(samples)
	if len(samples) == 0 {
		return 0, errors.Wrapf(ErrEmptyRegion, "box %s", box)
	}
	return Median(samples), nil
}

// Median returns the median of samples, averaging the two middle values for
// an even count. samples is sorted in place. It panics on an empty slice.
func Median(samples []float32) float64 {
	slices.Sort(samples)
	n := len(samples)
	if n%2 == 1 {
		return float64(samples[n/2])
	}
	return (float64(samples[n/2-1]) + float64(samples[n/2])) / 2
}
