package scene

import (
	"cmp"
	"slices"

	"github.com/pkg/errors"

	"github.com/nvr-ai/go-scene/common"
	"github.com/nvr-ai/go-scene/depth"
	"github.com/nvr-ai/go-scene/describe"
	"github.com/nvr-ai/go-scene/zones"
)

// Result is one described detection.
type Result struct {
	common.AnnotatedDetection
	Zone zones.Zone `json:"zone"`
}

// Report is the engine output for one image.
type Report struct {
	// Results are the detections with distances, in detector order.
	Results []Result `json:"results"`
	// Skipped are detections left out under PolicySkip.
	Skipped []Skipped `json:"skipped,omitempty"`
	// Description is the rendered scene sentence.
	Description string `json:"description"`
}

// Options configures an Engine.
type Options struct {
	Locale describe.Locale
	Policy Policy
}

// DefaultOptions describes in Brazilian Portuguese and skips failing objects.
func DefaultOptions() Options {
	return Options{
		Locale: describe.PortugueseBR,
		Policy: PolicySkip,
	}
}

// Engine runs the distance, zone and description stages for one image at a
// time. It holds no per-request state and is safe for concurrent use.
type Engine struct {
	describer *describe.Describer
	policy    Policy
}

// NewEngine returns an Engine for opts.
func NewEngine(opts Options) *Engine {
	if opts.Policy == "" {
		opts.Policy = PolicySkip
	}
	return &Engine{
		describer: describe.New(opts.Locale),
		policy:    opts.Policy,
	}
}

// Process annotates dets with distances and zones and renders the description.
//
// Arguments:
//   - dets: Detections in detector order.
//   - m: The depth map aligned to the source image.
//   - imageWidth: Source image width; <= 0 uses the depth map width.
//
// Returns:
//   - *Report: The annotated results, skipped detections and description.
//   - error: A failure the policy does not allow to skip.
//
// @example
// engine := scene.NewEngine(scene.Options{Locale: describe.English})
// report, err := engine.Process(dets, depthMap, 640)
//
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// fmt.Println(report.Description)
func (e *Engine) Process(dets []common.Detection, m *depth.Map, imageWidth int) (*Report, error) {
	if m == nil {
		return nil, errors.New("depth map is nil")
	}
	if imageWidth <= 0 {
		imageWidth = m.Width()
	}

	annotated, skipped, err := Annotate(dets, m, e.policy)
	if err != nil {
		return nil, err
	}

	// Annotate drops indices, so recover them for zone failures.
	indices := make([]int, 0, len(annotated))
	skippedAt := make(map[int]bool, len(skipped))
	for _, s := range skipped {
		skippedAt[s.Index] = true
	}
	for i := range dets {
		if !skippedAt[i] {
			indices = append(indices, i)
		}
	}

	report := &Report{Results: make([]Result, 0, len(annotated)), Skipped: skipped}
	described := make([]common.AnnotatedDetection, 0, len(annotated))
	placed := make([]zones.Zone, 0, len(annotated))
	for j, a := range annotated {
		zone, err := zones.Classify(a.Box, imageWidth)
		if err != nil {
			if e.policy == PolicyFail {
				return nil, errors.Wrapf(err, "detection %d (%s)", indices[j], a.Label)
			}
			report.Skipped = append(report.Skipped, Skipped{Index: indices[j], Label: a.Label, Reason: err.Error(), Err: err})
			continue
		}
		report.Results = append(report.Results, Result{AnnotatedDetection: a, Zone: zone})
		described = append(described, a)
		placed = append(placed, zone)
	}
	slices.SortFunc(report.Skipped, func(a, b Skipped) int { return cmp.Compare(a.Index, b.Index) })

	groups, err := describe.GroupZoned(described, placed)
	if err != nil {
		return nil, err
	}
	report.Description = e.describer.Render(groups)
	return report, nil
}
