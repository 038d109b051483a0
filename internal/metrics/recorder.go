package metrics

import (
	"sync"
	"time"
)

// Recorder collects degradation events from concurrent pipeline
// workers. The zero value is not usable; use NewRecorder.
type Recorder struct {
	mu     sync.Mutex
	events []Event
	counts map[Stage]map[string]int
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{counts: make(map[Stage]map[string]int)}
}

// Record stores a single degradation event.
func (r *Recorder) Record(stage Stage, kind, act, detail string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, Event{
		Stage:     stage,
		Kind:      kind,
		Act:       act,
		Detail:    detail,
		CreatedAt: time.Now(),
	})
	r.bump(stage, kind, 1)
}

// Add bumps a counter by n without keeping per-event detail. Used for
// bulk counts like dropped furniture lines.
func (r *Recorder) Add(stage Stage, kind string, n int) {
	if n == 0 {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bump(stage, kind, n)
}

func (r *Recorder) bump(stage Stage, kind string, n int) {
	m, ok := r.counts[stage]
	if !ok {
		m = make(map[string]int)
		r.counts[stage] = m
	}
	m[kind] += n
}

// Summary is a point-in-time copy of the counters.
type Summary struct {
	Counts map[Stage]map[string]int `json:"counts"`
	Total  int                      `json:"total"`
}

// Snapshot returns a copy of the current counters.
func (r *Recorder) Snapshot() Summary {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := Summary{Counts: make(map[Stage]map[string]int, len(r.counts))}
	for stage, kinds := range r.counts {
		m := make(map[string]int, len(kinds))
		for k, n := range kinds {
			m[k] = n
			out.Total += n
		}
		out.Counts[stage] = m
	}
	return out
}

// Events returns a copy of the recorded events in order.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}
