// Package profiler - Per-stage timing and counters for batch scene runs.
package profiler

import (
	"fmt"
	"io"
	"sort"
	"sync"
	"time"
)

// Stats summarises one named series of samples.
type Stats struct {
	Name  string
	Count int64
	Sum   float64
	Min   float64
	Max   float64
}

// Mean returns Sum / Count, or 0 for an empty series.
func (s Stats) Mean() float64 {
	if s.Count == 0 {
		return 0
	}
	return s.Sum / float64(s.Count)
}

func (s *Stats) add(v float64) {
	if s.Count == 0 || v < s.Min {
		s.Min = v
	}
	if s.Count == 0 || v > s.Max {
		s.Max = v
	}
	s.Sum += v
	s.Count++
}

// Profiler collects operation durations and counters. It is safe for
// concurrent use.
type Profiler struct {
	mu        sync.Mutex
	startTime time.Time
	now       func() time.Time

	operations map[string]*Stats
	metrics    map[string]*Stats
}

// New returns an empty profiler whose uptime starts now.
func New() *Profiler {
	return &Profiler{
		startTime:  time.Now(),
		now:        time.Now,
		operations: make(map[string]*Stats),
		metrics:    make(map[string]*Stats),
	}
}

// StartOperation begins timing an operation.
//
// Arguments:
// - name: The name of the operation to track
//
// Returns:
// - A function to call when the operation completes
//
// @example
//
//	done := p.StartOperation("process")
//	report, err := engine.Process(dets, m, w)
//	done()
func (p *Profiler) StartOperation(name string) func() {
	start := p.now()
	return func() {
		p.RecordDuration(name, p.now().Sub(start))
	}
}

// RecordDuration adds one sample to the named operation, in milliseconds.
func (p *Profiler) RecordDuration(name string, d time.Duration) {
	p.record(p.operations, name, float64(d)/float64(time.Millisecond))
}

// RecordMetric adds one sample to the named counter series.
func (p *Profiler) RecordMetric(name string, value float64) {
	p.record(p.metrics, name, value)
}

func (p *Profiler) record(series map[string]*Stats, name string, v float64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	s, ok := series[name]
	if !ok {
		s = &Stats{Name: name}
		series[name] = s
	}
	s.add(v)
}

// Operation returns the timing stats for name, in milliseconds.
func (p *Profiler) Operation(name string) (Stats, bool) {
	return p.lookup(p.operations, name)
}

// Metric returns the counter stats for name.
func (p *Profiler) Metric(name string) (Stats, bool) {
	return p.lookup(p.metrics, name)
}

func (p *Profiler) lookup(series map[string]*Stats, name string) (Stats, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	s, ok := series[name]
	if !ok {
		return Stats{Name: name}, false
	}
	return *s, true
}

// WriteReport prints every series sorted by name.
func (p *Profiler) WriteReport(w io.Writer) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, err := fmt.Fprintf(w, "uptime: %v\n", p.now().Sub(p.startTime).Truncate(time.Millisecond)); err != nil {
		return err
	}
	for _, s := range sorted(p.operations) {
		if _, err := fmt.Fprintf(w, "  %s: avg=%.3fms, min=%.3fms, max=%.3fms, count=%d\n",
			s.Name, s.Mean(), s.Min, s.Max, s.Count); err != nil {
			return err
		}
	}
	for _, s := range sorted(p.metrics) {
		if _, err := fmt.Fprintf(w, "  %s: avg=%.2f, min=%.2f, max=%.2f, total=%.0f\n",
			s.Name, s.Mean(), s.Min, s.Max, s.Sum); err != nil {
			return err
		}
	}
	return nil
}

func sorted(series map[string]*Stats) []Stats {
	out := make([]Stats, 0, len(series))
	for _, s := range series {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
