package service

import (
	"context"

	"github.com/darshil-dcis/career-copilot-api/internal/domain/profile"
)

// LiveEvent is one inbound message from a realtime voice session: a PCM
// audio buffer, an optional transcription fragment, or a turn boundary.
type LiveEvent struct {
	Audio        []byte
	Transcript   string
	TurnComplete bool
}

// LiveSession is a bidirectional audio stream with the model. SendAudio
// forwards captured chunks as they arrive; Receive blocks until the next
// server event. Close tears the upstream session down synchronously.
type LiveSession interface {
	SendAudio(ctx context.Context, pcm []byte) error
	Receive() (*LiveEvent, error)
	Close() error
}

type LiveService interface {
	Connect(ctx context.Context, p *profile.Profile) (LiveSession, error)
}
