// Package common - Detection values passed between the depth, zone and description stages.
package common

import (
	"fmt"

	"github.com/nvr-ai/go-scene/images"
	"github.com/nvr-ai/go-scene/labels"
)

// Detection is one object found by the upstream detector, in detector order.
type Detection struct {
	Label labels.Label `json:"label"`
	Box   images.Rect  `json:"box"`
}

// NewDetection resolves a detector class id through a label table.
//
// Arguments:
//   - table: The label table matching the detector's output indices.
//   - classID: The class index returned by the model.
//   - box: The detection box in source-image pixels.
//
// Returns:
//   - Detection: The labelled detection.
//   - error: labels.ErrUnknownClass if the id is not in the table.
//
// @example
// det, err := NewDetection(labels.COCO, 16, images.Box(10, 10, 50, 100)) // a "dog"
func NewDetection(table *labels.Table, classID int, box images.Rect) (Detection, error) {
	l, err := table.Lookup(classID)
	if err != nil {
		return Detection{}, err
	}
	return Detection{Label: l, Box: box}, nil
}

func (d Detection) String() string {
	return fmt.Sprintf("Object %s: %s", d.Label.Name, d.Box)
}

// WithDistance returns a new annotated value; d itself is left untouched.
func (d Detection) WithDistance(meters float64) AnnotatedDetection {
	return AnnotatedDetection{Detection: d, Distance: &meters}
}

// AnnotatedDetection is a Detection together with its estimated distance.
// A nil Distance means the distance was never measured.
type AnnotatedDetection struct {
	Detection
	Distance *float64 `json:"distance,omitempty"`
}

// Meters returns the distance and whether one was set.
func (a AnnotatedDetection) Meters() (float64, bool) {
	if a.Distance == nil {
		return 0, false
	}
	return *a.Distance, true
}

func (a AnnotatedDetection) String() string {
	if m, ok := a.Meters(); ok {
		return fmt.Sprintf("%s at %.2fm", a.Detection, m)
	}
	return fmt.Sprintf("%s (no distance)", a.Detection)
}
