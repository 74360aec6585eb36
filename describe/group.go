package describe

import (
	"github.com/nvr-ai/go-scene/labels"
	"github.com/nvr-ai/go-scene/zones"
)

// GroupKey identifies detections reported together in one phrase.
type GroupKey struct {
	// Distance is the rounded distance in whole meters.
	Distance int
	Zone     zones.Zone
}

// Groups is an insertion-ordered map from GroupKey to the labels that fell
// into it. Keys iterate in the order they were first added, and labels keep
// their insertion order within a key.
type Groups struct {
	order  []GroupKey
	labels map[GroupKey][]labels.Label
	total  int
}

// NewGroups returns an empty Groups.
func NewGroups() *Groups {
	return &Groups{labels: make(map[GroupKey][]labels.Label)}
}

// Add appends l to the group for key, creating the group at the end of the
// order if it is new.
func (g *Groups) Add(key GroupKey, l labels.Label) {
	if _, ok := g.labels[key]; !ok {
		g.order = append(g.order, key)
	}
	g.labels[key] = append(g.labels[key], l)
	g.total++
}

// Keys returns the group keys in first-seen order.
func (g *Groups) Keys() []GroupKey {
	return append([]GroupKey(nil), g.order...)
}

// Labels returns the labels of one group in insertion order.
func (g *Groups) Labels(key GroupKey) []labels.Label {
	return g.labels[key]
}

// Len returns the number of groups.
func (g *Groups) Len() int {
	return len(g.order)
}

// Total returns the number of labels added across all groups.
func (g *Groups) Total() int {
	return g.total
}

// labelCount is one distinct label of a group and how often it occurred.
type labelCount struct {
	label labels.Label
	count int
}

// countLabels tallies labels by name, keeping first-seen order.
func countLabels(ls []labels.Label) []labelCount {
	var out []labelCount
	idx := make(map[string]int, len(ls))
	for _, l := range ls {
		if i, ok := idx[l.Name]; ok {
			out[i].count++
			continue
		}
		idx[l.Name] = len(out)
		out = append(out, labelCount{label: l, count: 1})
	}
	return out
}
