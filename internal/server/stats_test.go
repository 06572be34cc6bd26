package server_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"sinkdns/internal/server"
)

func TestStats_RecordOutcome(t *testing.T) {
	s := server.NewStats()

	s.RecordOutcome(server.OutcomeAnswered)
	s.RecordOutcome(server.OutcomeAnswered)
	s.RecordOutcome(server.OutcomeNotImplemented)
	s.RecordOutcome(server.OutcomeDropped)

	snap := s.Snapshot()
	assert.Equal(t, uint64(4), snap.QueriesTotal)
	assert.Equal(t, uint64(2), snap.Answered)
	assert.Equal(t, uint64(1), snap.NotImplemented)
	assert.Equal(t, uint64(1), snap.Dropped)
}

func TestStats_AvgLatency(t *testing.T) {
	s := server.NewStats()
	assert.Zero(t, s.Snapshot().AvgLatencyMs, "no queries yet")

	s.RecordOutcome(server.OutcomeAnswered)
	s.RecordLatency(2_000_000) // 2ms
	s.RecordOutcome(server.OutcomeAnswered)
	s.RecordLatency(4_000_000) // 4ms

	assert.InDelta(t, 3.0, s.Snapshot().AvgLatencyMs, 0.001)
}

func TestStats_ConcurrentRecording(t *testing.T) {
	s := server.NewStats()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				s.RecordOutcome(server.OutcomeAnswered)
				s.RecordLatency(1000)
			}
		}()
	}
	wg.Wait()

	snap := s.Snapshot()
	assert.Equal(t, uint64(8000), snap.QueriesTotal)
	assert.Equal(t, uint64(8000), snap.Answered)
}

func TestOutcome_String(t *testing.T) {
	assert.Equal(t, "answered", server.OutcomeAnswered.String())
	assert.Equal(t, "not-implemented", server.OutcomeNotImplemented.String())
	assert.Equal(t, "dropped", server.OutcomeDropped.String())
}
