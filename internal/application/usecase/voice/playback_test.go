package voice

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

func TestScheduleIdleStartsImmediately(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s := NewPlaybackScheduler()
	s.now = fixedClock(base)

	start := s.Schedule(time.Second)
	assert.Equal(t, base, start)
}

func TestScheduleBuffersNeverOverlap(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s := NewPlaybackScheduler()
	s.now = fixedClock(base)

	// Three buffers arrive back to back, faster than they play.
	durations := []time.Duration{400 * time.Millisecond, 250 * time.Millisecond, time.Second}
	var prevEnd time.Time
	for i, d := range durations {
		start := s.Schedule(d)
		if i > 0 {
			assert.False(t, start.Before(prevEnd), "buffer %d starts before buffer %d ends", i, i-1)
			assert.Equal(t, prevEnd, start, "no gap when buffers queue up")
		}
		prevEnd = start.Add(d)
	}
}

func TestSchedulePreservesArrivalOrder(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s := NewPlaybackScheduler()
	s.now = fixedClock(base)

	first := s.Schedule(time.Second)
	second := s.Schedule(10 * time.Millisecond)
	assert.True(t, second.After(first))
}

func TestScheduleAfterDrainStartsAtNow(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s := NewPlaybackScheduler()
	s.now = fixedClock(base)

	s.Schedule(time.Second)

	// The queue has fully played out; the next buffer must not wait.
	later := base.Add(5 * time.Second)
	s.now = fixedClock(later)
	start := s.Schedule(time.Second)
	assert.Equal(t, later, start)
}

func TestResetDropsScheduledBacklog(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s := NewPlaybackScheduler()
	s.now = fixedClock(base)

	s.Schedule(time.Minute)
	s.Reset()

	start := s.Schedule(time.Second)
	assert.Equal(t, base, start, "post-reset buffer plays immediately")
}

func TestDurationForPCM(t *testing.T) {
	// One second of 16-bit mono audio at 24 kHz is 48000 bytes.
	assert.Equal(t, time.Second, DurationForPCM(48000, OutputSampleRate))
	assert.Equal(t, 500*time.Millisecond, DurationForPCM(24000, OutputSampleRate))
	assert.Equal(t, time.Duration(0), DurationForPCM(0, OutputSampleRate))
	assert.Equal(t, time.Duration(0), DurationForPCM(100, 0))
}
