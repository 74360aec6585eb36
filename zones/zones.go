// Package zones - Horizontal direction of an object relative to the viewer.
package zones

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/nvr-ai/go-scene/images"
)

// ErrInvalidGeometry is the shared geometry error from the images package.
var ErrInvalidGeometry = images.ErrInvalidGeometry

// Zone is one of three equal-width vertical strips of the image.
type Zone int

const (
	// Left is [0, W/3).
	Left Zone = iota
	// Center is [W/3, 2W/3).
	Center
	// Right is [2W/3, W).
	Right
)

// All lists the zones in tie-break priority order.
var All = [...]Zone{Left, Center, Right}

func (z Zone) String() string {
	switch z {
	case Left:
		return "left"
	case Center:
		return "center"
	case Right:
		return "right"
	default:
		return fmt.Sprintf("zone(%d)", int(z))
	}
}

// MarshalText encodes the zone as "left", "center" or "right".
func (z Zone) MarshalText() ([]byte, error) {
	if z < Left || z > Right {
		return nil, errors.Errorf("invalid zone %d", int(z))
	}
	return []byte(z.String()), nil
}

// UnmarshalText parses "left", "center" or "right".
func (z *Zone) UnmarshalText(text []byte) error {
	for _, c := range All {
		if strings.EqualFold(string(text), c.String()) {
			*z = c
			return nil
		}
	}
	return errors.Errorf("unknown zone %q", string(text))
}

// Overlaps returns the length of the box's horizontal span [X1, X2] that falls
// in each third of an image imageWidth pixels wide, indexed by Zone.
func Overlaps(box images.Rect, imageWidth int) [3]float64 {
	tripled := tripledOverlaps(box, imageWidth)
	return [3]float64{
		Left:   float64(tripled[Left]) / 3,
		Center: float64(tripled[Center]) / 3,
		Right:  float64(tripled[Right]) / 3,
	}
}

// tripledOverlaps is Overlaps scaled by 3, so the thirds fall on integer
// boundaries and equal shares compare equal for any width.
func tripledOverlaps(box images.Rect, imageWidth int) [3]int {
	x1, x2 := 3*box.X1, 3*box.X2
	w := imageWidth

	return [3]int{
		Left:   max(0, min(x2, w)-x1),
		Center: max(0, min(x2, 2*w)-max(x1, w)),
		Right:  max(0, x2-max(x1, 2*w)),
	}
}

// Classify assigns box to the zone holding the largest share of its width.
// Exact ties go to the earlier zone in the order Left, Center, Right.
//
// Arguments:
//   - box: The detection box in source-image pixels.
//   - imageWidth: Width of the source image in pixels.
//
// Returns:
//   - Zone: The assigned zone.
//   - error: ErrInvalidGeometry for a malformed box, a non-positive width, or a
//     box lying entirely outside [0, imageWidth).
//
// @example
// z, _ := zones.Classify(images.Box(100, 100, 150, 200), 300) // Center
func Classify(box images.Rect, imageWidth int) (Zone, error) {
	if imageWidth <= 0 {
		return Left, errors.Wrapf(ErrInvalidGeometry, "image width must be positive, got %d", imageWidth)
	}
	if err := box.Validate(); err != nil {
		return Left, err
	}
	if box.X2 <= 0 || box.X1 >= imageWidth {
		return Left, errors.Wrapf(ErrInvalidGeometry, "box %s outside image width %d", box, imageWidth)
	}

	overlaps := tripledOverlaps(box, imageWidth)
	best := Left
	for _, z := range All[1:] {
		if overlaps[z] > overlaps[best] {
			best = z
		}
	}
	return best, nil
}
