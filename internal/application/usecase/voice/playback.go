package voice

import (
	"sync"
	"time"
)

// OutputSampleRate is the sample rate of model audio (16-bit mono PCM).
const OutputSampleRate = 24000

// PlaybackScheduler assigns start times to inbound audio buffers so that
// playback never overlaps: a single monotonic cursor tracks the end of the
// last scheduled buffer, and the next buffer starts no earlier than that.
// Buffers are scheduled in arrival order.
type PlaybackScheduler struct {
	mu     sync.Mutex
	cursor time.Time
	now    func() time.Time
}

func NewPlaybackScheduler() *PlaybackScheduler {
	return &PlaybackScheduler{now: time.Now}
}

// Schedule returns the start time for a buffer of the given duration:
// max(now, end of previous buffer). The cursor advances to the new end.
func (s *PlaybackScheduler) Schedule(d time.Duration) time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	start := s.now()
	if s.cursor.After(start) {
		start = s.cursor
	}
	s.cursor = start.Add(d)
	return start
}

// Reset drops everything still scheduled. Buffers queued after a reset play
// immediately instead of waiting behind stopped audio.
func (s *PlaybackScheduler) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cursor = time.Time{}
}

// DurationForPCM converts a 16-bit mono PCM byte count into play time.
func DurationForPCM(numBytes, sampleRate int) time.Duration {
	if sampleRate <= 0 || numBytes <= 0 {
		return 0
	}
	samples := numBytes / 2
	return time.Duration(samples) * time.Second / time.Duration(sampleRate)
}
