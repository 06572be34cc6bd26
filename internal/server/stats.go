package server

import (
	"sync/atomic"
)

// Stats collects per-outcome query statistics.
// All methods are safe for concurrent use.
type Stats struct {
	queriesTotal   atomic.Uint64
	answered       atomic.Uint64
	notImplemented atomic.Uint64
	dropped        atomic.Uint64
	latencyTotalNs atomic.Uint64
}

// NewStats creates a new statistics collector.
func NewStats() *Stats {
	return &Stats{}
}

// RecordOutcome records one handled datagram under its outcome.
func (s *Stats) RecordOutcome(o Outcome) {
	s.queriesTotal.Add(1)
	switch o {
	case OutcomeAnswered:
		s.answered.Add(1)
	case OutcomeNotImplemented:
		s.notImplemented.Add(1)
	case OutcomeDropped:
		s.dropped.Add(1)
	}
}

// RecordLatency records per-datagram handling latency in nanoseconds.
func (s *Stats) RecordLatency(ns int64) {
	if ns > 0 {
		s.latencyTotalNs.Add(uint64(ns))
	}
}

// StatsSnapshot is a point-in-time snapshot of responder statistics.
type StatsSnapshot struct {
	QueriesTotal   uint64
	Answered       uint64
	NotImplemented uint64
	Dropped        uint64
	AvgLatencyMs   float64
}

// Snapshot returns the current statistics.
func (s *Stats) Snapshot() StatsSnapshot {
	total := s.queriesTotal.Load()
	latencyNs := s.latencyTotalNs.Load()

	avgLatencyMs := 0.0
	if total > 0 {
		avgLatencyMs = float64(latencyNs) / float64(total) / 1e6
	}

	return StatsSnapshot{
		QueriesTotal:   total,
		Answered:       s.answered.Load(),
		NotImplemented: s.notImplemented.Load(),
		Dropped:        s.dropped.Load(),
		AvgLatencyMs:   avgLatencyMs,
	}
}
