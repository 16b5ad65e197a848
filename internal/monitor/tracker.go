package monitor

import (
	"fmt"
	"time"
)

// Outcome is how one submitted file ended
type Outcome string

const (
	// OutcomeAnalyzed is a prediction the server answered
	OutcomeAnalyzed Outcome = "analyzed"

	// OutcomeRejected is a file refused before submission
	OutcomeRejected Outcome = "rejected"

	// OutcomeFailed is a submission that did not produce predictions
	OutcomeFailed Outcome = "failed"
)

// Tracker counts outcomes for a run of analyses and times the requests that
// reached the server
type Tracker struct {
	analyzed *Counter
	rejected *Counter
	failed   *Counter
	latency  *Timer
	started  time.Time
}

// Snapshot is a point-in-time copy of a Tracker
type Snapshot struct {
	Analyzed   int64         `json:"analyzed"`
	Rejected   int64         `json:"rejected"`
	Failed     int64         `json:"failed"`
	MinLatency time.Duration `json:"min_latency_ns"`
	AvgLatency time.Duration `json:"avg_latency_ns"`
	MaxLatency time.Duration `json:"max_latency_ns"`
	Uptime     time.Duration `json:"uptime_ns"`
}

// NewTracker creates an empty tracker
func NewTracker() *Tracker {
	return &Tracker{
		analyzed: NewCounter(string(OutcomeAnalyzed)),
		rejected: NewCounter(string(OutcomeRejected)),
		failed:   NewCounter(string(OutcomeFailed)),
		latency:  NewTimer("predict_latency"),
		started:  time.Now(),
	}
}

// Record counts one outcome. Latency is kept for requests that reached the
// server, whether or not they succeeded.
func (t *Tracker) Record(outcome Outcome, elapsed time.Duration) {
	switch outcome {
	case OutcomeAnalyzed:
		t.analyzed.Inc()
		t.latency.Record(elapsed)
	case OutcomeFailed:
		t.failed.Inc()
		if elapsed > 0 {
			t.latency.Record(elapsed)
		}
	case OutcomeRejected:
		t.rejected.Inc()
	}
}

// Snapshot returns the current totals
func (t *Tracker) Snapshot() Snapshot {
	return Snapshot{
		Analyzed:   t.analyzed.Get(),
		Rejected:   t.rejected.Get(),
		Failed:     t.failed.Get(),
		MinLatency: t.latency.MinTime(),
		AvgLatency: t.latency.AvgTime(),
		MaxLatency: t.latency.MaxTime(),
		Uptime:     time.Since(t.started),
	}
}

// Total is the number of files seen
func (s Snapshot) Total() int64 {
	return s.Analyzed + s.Rejected + s.Failed
}

// String renders a one-line summary, e.g. "3 files: 2 analyzed, 1 rejected, 0 failed (avg 120ms)"
func (s Snapshot) String() string {
	line := fmt.Sprintf("%d files: %d analyzed, %d rejected, %d failed", s.Total(), s.Analyzed, s.Rejected, s.Failed)
	if s.AvgLatency > 0 {
		line += fmt.Sprintf(" (avg %s)", s.AvgLatency.Round(time.Millisecond))
	}
	return line
}
