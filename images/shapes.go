// Package images - Pixel-space geometry shared by the depth and zone stages.
package images

import (
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"
)

// ErrInvalidGeometry is returned when a box is malformed (X1>=X2 or Y1>=Y2)
// or lies entirely outside the area it is measured against.
var ErrInvalidGeometry = errors.New("invalid geometry")

// Rect is a lightweight bounding box in integer pixel coordinates.
type Rect struct {
	// X2,Y2 are exclusive (like image.Rectangle).
	X1, Y1, X2, Y2 int
}

// Box returns the rectangle spanning [x1,x2) x [y1,y2).
func Box(x1, y1, x2, y2 int) Rect {
	return Rect{X1: x1, Y1: y1, X2: x2, Y2: y2}
}

// Width returns the horizontal extent of r.
func (r Rect) Width() int {
	return r.X2 - r.X1
}

// Height returns the vertical extent of r.
func (r Rect) Height() int {
	return r.Y2 - r.Y1
}

// Empty reports whether r covers no pixels.
func (r Rect) Empty() bool {
	return r.X1 >= r.X2 || r.Y1 >= r.Y2
}

// Validate checks the ordering invariant X1<X2, Y1<Y2.
//
// Returns:
//   - error: ErrInvalidGeometry wrapped with the offending coordinates, nil otherwise.
func (r Rect) Validate() error {
	if r.X1 >= r.X2 || r.Y1 >= r.Y2 {
		return errors.Wrapf(ErrInvalidGeometry, "box %s: want x1<x2 and y1<y2", r)
	}
	return nil
}

// Intersect returns the largest rectangle contained by both r and o. The
// result is empty (and normalised to the zero Rect) if they do not overlap.
//
// @example
// r := Rect{-10, -10, 50, 50}.Intersect(Rect{0, 0, 40, 40}) // Rect{0, 0, 40, 40}
func (r Rect) Intersect(o Rect) Rect {
	ix := Rect{
		X1: max(r.X1, o.X1),
		Y1: max(r.Y1, o.Y1),
		X2: min(r.X2, o.X2),
		Y2: min(r.Y2, o.Y2),
	}
	if ix.Empty() {
		return Rect{}
	}
	return ix
}

// Overlaps reports whether r and o share at least one pixel.
func (r Rect) Overlaps(o Rect) bool {
	return !r.Intersect(o).Empty()
}

func (r Rect) String() string {
	return fmt.Sprintf("[%d,%d,%d,%d]", r.X1, r.Y1, r.X2, r.Y2)
}

// MarshalJSON encodes r as the detector's [x1,y1,x2,y2] array.
func (r Rect) MarshalJSON() ([]byte, error) {
	return json.Marshal([4]int{r.X1, r.Y1, r.X2, r.Y2})
}

// UnmarshalJSON decodes a [x1,y1,x2,y2] array.
func (r *Rect) UnmarshalJSON(data []byte) error {
	var coords []int
	if err := json.Unmarshal(data, &coords); err != nil {
		return errors.Wrap(err, "box must be an array of 4 integers")
	}
	if len(coords) != 4 {
		return errors.Errorf("box must have 4 coordinates, got %d", len(coords))
	}
	*r = Rect{X1: coords[0], Y1: coords[1], X2: coords[2], Y2: coords[3]}
	return nil
}
