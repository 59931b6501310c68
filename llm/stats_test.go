package llm

import (
	"testing"
	"time"
)

func TestStatsSnapshot_Percentiles(t *testing.T) {
	s := NewStats(time.Hour)
	for _, ms := range []int64{100, 200, 300, 400, 500} {
		s.Record(ms)
	}

	snap := s.Snapshot()
	if snap.Count != 5 {
		t.Errorf("expected count 5, got %d", snap.Count)
	}
	if snap.MinMs != 100 {
		t.Errorf("expected min 100, got %d", snap.MinMs)
	}
	if snap.MaxMs != 500 {
		t.Errorf("expected max 500, got %d", snap.MaxMs)
	}
	if snap.AvgMs != 300 {
		t.Errorf("expected avg 300, got %f", snap.AvgMs)
	}
	if snap.P50Ms != 300 {
		t.Errorf("expected p50 300, got %f", snap.P50Ms)
	}
	if snap.P95Ms != 480 {
		t.Errorf("expected p95 480, got %f", snap.P95Ms)
	}
	if snap.P99Ms != 496 {
		t.Errorf("expected p99 496, got %f", snap.P99Ms)
	}
}

func TestStatsSnapshot_Empty(t *testing.T) {
	s := NewStats(time.Hour)
	snap := s.Snapshot()
	if snap.Count != 0 {
		t.Errorf("expected empty snapshot, got count %d", snap.Count)
	}
}

func TestStatsRecord_ClampsNegativeDurations(t *testing.T) {
	s := NewStats(time.Hour)
	s.Record(-50)

	snap := s.Snapshot()
	if snap.Count != 1 {
		t.Fatalf("expected 1 sample, got %d", snap.Count)
	}
	if snap.MinMs != 0 {
		t.Errorf("expected negative duration clamped to 0, got %d", snap.MinMs)
	}
}

func TestStatsSnapshot_PrunesExpiredSamples(t *testing.T) {
	s := NewStats(50 * time.Millisecond)
	s.Record(100)
	time.Sleep(80 * time.Millisecond)
	s.Record(200)

	snap := s.Snapshot()
	if snap.Count != 1 {
		t.Fatalf("expected expired sample pruned, got count %d", snap.Count)
	}
	if snap.MinMs != 200 {
		t.Errorf("expected surviving sample 200, got %d", snap.MinMs)
	}
}
