// Package scene - Fuses detections with a depth map and renders the scene report.
package scene

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/nvr-ai/go-scene/common"
	"github.com/nvr-ai/go-scene/depth"
	"github.com/nvr-ai/go-scene/labels"
)

// Policy decides what happens to a detection whose distance or zone cannot be
// computed.
type Policy string

const (
	// PolicySkip records the failing detection in Report.Skipped and keeps going.
	PolicySkip Policy = "skip"
	// PolicyFail aborts the whole batch on the first failing detection.
	PolicyFail Policy = "fail"
)

// ParsePolicy parses "skip" or "fail". The empty string means PolicySkip.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(strings.ToLower(s)) {
	case "", PolicySkip:
		return PolicySkip, nil
	case PolicyFail:
		return PolicyFail, nil
	default:
		return "", errors.Errorf("unknown policy %q (want skip or fail)", s)
	}
}

// Skipped is a detection left out of the description, with the reason.
type Skipped struct {
	// Index is the position of the detection in the input slice.
	Index  int          `json:"index"`
	Label  labels.Label `json:"label"`
	Reason string       `json:"reason"`
	Err    error        `json:"-"`
}

// skippable reports whether err is a per-object condition a PolicySkip caller
// may step over.
func skippable(err error) bool {
	return errors.Is(err, depth.ErrEmptyRegion) || errors.Is(err, depth.ErrInvalidGeometry)
}

// Annotate estimates a distance for every detection.
//
// The input is never modified: each output value is built fresh. Under
// PolicySkip, detections failing with depth.ErrEmptyRegion or
// ErrInvalidGeometry are returned in skipped instead; any other error, or any
// failure under PolicyFail, aborts.
//
// Arguments:
//   - dets: Detections in detector order.
//   - m: The depth map aligned to the source image.
//   - policy: The per-object failure policy.
//
// Returns:
//   - []common.AnnotatedDetection: Detections with distances, in input order.
//   - []Skipped: Detections that were left out.
//   - error: The first non-skippable failure.
func Annotate(dets []common.Detection, m *depth.Map, policy Policy) ([]common.AnnotatedDetection, []Skipped, error) {
	if m == nil {
		return nil, nil, errors.New("depth map is nil")
	}
	annotated := make([]common.AnnotatedDetection, 0, len(dets))
	var skipped []Skipped

	for i, det := range dets {
		meters, err := depth.EstimateDistance(det.Box, m)
		if err != nil {
			if policy == PolicyFail || !skippable(err) {
				return nil, nil, errors.Wrapf(err, "detection %d (%s)", i, det.Label)
			}
			skipped = append(skipped, Skipped{Index: i, Label: det.Label, Reason: err.Error(), Err: err})
			continue
		}
		annotated = append(annotated, det.WithDistance(meters))
	}
	return annotated, skipped, nil
}
