// Package describe - Renders annotated detections as a spoken-style scene description.
//
// Detections are grouped by rounded distance and direction, so that
//
//	person @ 5.2m left, person @ 4.9m left, dog @ 3.1m center
//
// becomes "There are 2 people at 5 meters to your left, a dog at 3 meters in
// front of you." Group order follows the first detection of each group.
package describe

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/nvr-ai/go-scene/common"
	"github.com/nvr-ai/go-scene/labels"
	"github.com/nvr-ai/go-scene/zones"
)

// ErrMissingDistance is returned when a detection reaches the describer
// without a usable distance. It is a caller bug, not a per-object condition.
var ErrMissingDistance = errors.New("detection has no distance")

// Describer renders descriptions in one locale. It holds no mutable state and
// is safe for concurrent use.
type Describer struct {
	locale Locale
}

// New returns a Describer for locale.
func New(locale Locale) *Describer {
	return &Describer{locale: locale}
}

// Group buckets detections by (rounded distance, zone) in first-seen order.
//
// Arguments:
//   - dets: Detections carrying a distance, in detector order.
//   - imageWidth: Source image width in pixels, for zone classification.
//
// Returns:
//   - *Groups: The insertion-ordered groups.
//   - error: ErrMissingDistance if any detection has no finite distance, or
//     zones.ErrInvalidGeometry from classification.
func Group(dets []common.AnnotatedDetection, imageWidth int) (*Groups, error) {
	zs := make([]zones.Zone, len(dets))
	for i, det := range dets {
		zone, err := zones.Classify(det.Box, imageWidth)
		if err != nil {
			return nil, errors.Wrapf(err, "detection %d (%s)", i, det.Label)
		}
		zs[i] = zone
	}
	return GroupZoned(dets, zs)
}

// GroupZoned is Group for callers that already classified every detection;
// zs[i] is the zone of dets[i].
func GroupZoned(dets []common.AnnotatedDetection, zs []zones.Zone) (*Groups, error) {
	if len(zs) != len(dets) {
		return nil, errors.Errorf("got %d zones for %d detections", len(zs), len(dets))
	}
	groups := NewGroups()
	for i, det := range dets {
		meters, ok := det.Meters()
		if !ok || math.IsNaN(meters) || math.IsInf(meters, 0) {
			return nil, errors.Wrapf(ErrMissingDistance, "detection %d (%s)", i, det.Label)
		}
		groups.Add(GroupKey{Distance: int(math.Round(meters)), Zone: zs[i]}, det.Label)
	}
	return groups, nil
}

// Describe renders dets as a single sentence.
//
// An empty slice yields the locale's "nothing detected" sentence. Otherwise
// each group becomes "{labels} {prep} {distance} {unit} {zone}", the phrases
// are joined with commas, and the sentence opens with the singular intro for
// exactly one detection and the plural intro for more.
//
// @example
// d := describe.New(describe.English)
// s, _ := d.Describe(dets, 300) // "There are 2 people at 5 meters to your left."
func (d *Describer) Describe(dets []common.AnnotatedDetection, imageWidth int) (string, error) {
	if len(dets) == 0 {
		return d.locale.Nothing, nil
	}
	groups, err := Group(dets, imageWidth)
	if err != nil {
		return "", err
	}
	return d.Render(groups), nil
}

// Render turns non-empty groups into the final sentence.
func (d *Describer) Render(groups *Groups) string {
	if groups.Total() == 0 {
		return d.locale.Nothing
	}

	phrases := make([]string, 0, groups.Len())
	for _, key := range groups.Keys() {
		phrases = append(phrases, d.phrase(key, groups.Labels(key)))
	}

	intro := d.locale.IntroPlural
	if groups.Total() == 1 {
		intro = d.locale.IntroSingular
	}
	return intro + strings.Join(phrases, ", ") + "."
}

func (d *Describer) phrase(key GroupKey, group []labels.Label) string {
	counts := countLabels(group)
	parts := make([]string, 0, len(counts))
	for _, c := range counts {
		if c.count == 1 {
			parts = append(parts, d.locale.Article(c.label)+" "+c.label.Name)
			continue
		}
		parts = append(parts, strconv.Itoa(c.count)+" "+d.locale.Inflector.Pluralize(c.label.Name))
	}

	return fmt.Sprintf("%s %s %d %s %s",
		strings.Join(parts, " "+d.locale.Conjunction+" "),
		d.locale.Preposition,
		key.Distance,
		d.locale.Unit,
		d.locale.ZonePhrase(key.Zone),
	)
}
