package progress

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCompute(t *testing.T) {
	start := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	total := 60 * time.Minute

	tests := []struct {
		name          string
		now           time.Time
		wantElapsed   time.Duration
		wantRemaining int
		wantFraction  float64
		wantLabel     Label
	}{
		{name: "before start", now: start.Add(-5 * time.Minute), wantElapsed: 0, wantRemaining: 60, wantFraction: 0, wantLabel: LabelStarting},
		{name: "at start", now: start, wantElapsed: 0, wantRemaining: 60, wantFraction: 0, wantLabel: LabelStarting},
		{name: "partial minute rounds up", now: start.Add(10*time.Minute + 30*time.Second), wantElapsed: 10*time.Minute + 30*time.Second, wantRemaining: 50, wantFraction: 0.175, wantLabel: LabelStarting},
		{name: "thirty percent", now: start.Add(18 * time.Minute), wantElapsed: 18 * time.Minute, wantRemaining: 42, wantFraction: 0.3, wantLabel: LabelInProgress},
		{name: "seventy percent", now: start.Add(42 * time.Minute), wantElapsed: 42 * time.Minute, wantRemaining: 18, wantFraction: 0.7, wantLabel: LabelFinishing},
		{name: "done", now: start.Add(60 * time.Minute), wantElapsed: total, wantRemaining: 0, wantFraction: 1, wantLabel: LabelReady},
		{name: "overdue clamps", now: start.Add(3 * time.Hour), wantElapsed: total, wantRemaining: 0, wantFraction: 1, wantLabel: LabelReady},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Compute(tt.now, start, total)
			assert.Equal(t, tt.wantElapsed, p.Elapsed)
			assert.Equal(t, tt.wantRemaining, p.RemainingMinutes)
			assert.InDelta(t, tt.wantFraction, p.Fraction, 1e-9)
			assert.Equal(t, tt.wantLabel, p.Label)
		})
	}
}

func TestCompute_Deterministic(t *testing.T) {
	start := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	now := start.Add(25 * time.Minute)

	first := Compute(now, start, time.Hour)
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, Compute(now, start, time.Hour))
	}

	// после "перезапуска" сохраняется только момент начала
	persisted := start.Format(time.RFC3339Nano)
	restored, err := time.Parse(time.RFC3339Nano, persisted)
	assert.NoError(t, err)
	assert.Equal(t, first, Compute(now, restored, time.Hour))
}

func TestCompute_NonPositiveTotal(t *testing.T) {
	now := time.Now()
	p := Compute(now, now, 0)
	assert.Equal(t, float64(1), p.Fraction)
	assert.Equal(t, LabelReady, p.Label)
	assert.Equal(t, 0, p.RemainingMinutes)
}
