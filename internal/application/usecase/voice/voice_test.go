package voice

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/darshil-dcis/career-copilot-api/adapters/event"
	"github.com/darshil-dcis/career-copilot-api/internal/application/service"
	"github.com/darshil-dcis/career-copilot-api/internal/domain/session"
	"github.com/darshil-dcis/career-copilot-api/pkg/logger"
)

type fakeUpstream struct {
	events []*service.LiveEvent
	idx    int
	sent   [][]byte
	closed int
}

func (u *fakeUpstream) SendAudio(_ context.Context, pcm []byte) error {
	u.sent = append(u.sent, pcm)
	return nil
}

func (u *fakeUpstream) Receive() (*service.LiveEvent, error) {
	if u.idx >= len(u.events) {
		return nil, io.EOF
	}
	ev := u.events[u.idx]
	u.idx++
	return ev, nil
}

func (u *fakeUpstream) Close() error {
	u.closed++
	return nil
}

type fakeSessionRepo struct {
	appended []*session.Session
}

func (r *fakeSessionRepo) Append(_ context.Context, s *session.Session) error {
	r.appended = append(r.appended, s)
	return nil
}

func (r *fakeSessionRepo) ListByOwner(_ context.Context, _ uuid.UUID, _ session.Kind, _, _ int) ([]*session.Session, error) {
	return nil, nil
}

func (r *fakeSessionRepo) EvictBeyond(_ context.Context, _ uuid.UUID, _ session.Kind, _ int) error {
	return nil
}

type fakeEvents struct {
	sessionEvents []event.SessionEventPayload
}

func (f *fakeEvents) PublishSessionEvent(_ context.Context, payload event.SessionEventPayload) error {
	f.sessionEvents = append(f.sessionEvents, payload)
	return nil
}

func newTestSession(upstream *fakeUpstream, repo *fakeSessionRepo, events *fakeEvents) *Session {
	return &Session{
		ownerID:     uuid.New(),
		upstream:    upstream,
		scheduler:   NewPlaybackScheduler(),
		sessionRepo: repo,
		events:      events,
		logger:      logger.NewZapLogger("development"),
	}
}

func pcmOfDuration(d time.Duration) []byte {
	samples := int(d * OutputSampleRate / time.Second)
	return make([]byte, samples*2)
}

func TestNextEventSchedulesAudioWithoutOverlap(t *testing.T) {
	upstream := &fakeUpstream{events: []*service.LiveEvent{
		{Audio: pcmOfDuration(time.Second)},
		{Audio: pcmOfDuration(500 * time.Millisecond)},
	}}
	s := newTestSession(upstream, &fakeSessionRepo{}, &fakeEvents{})

	first, err := s.NextEvent()
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.Equal(t, time.Second, first.Duration)

	second, err := s.NextEvent()
	require.NoError(t, err)
	require.NotNil(t, second)
	assert.False(t, second.PlayAt.Before(first.PlayAt.Add(first.Duration)),
		"second buffer must not start before the first finishes")
}

func TestNextEventAccumulatesTranscript(t *testing.T) {
	upstream := &fakeUpstream{events: []*service.LiveEvent{
		{Transcript: "Keep "},
		{Transcript: "practicing.", TurnComplete: true},
	}}
	repo := &fakeSessionRepo{}
	s := newTestSession(upstream, repo, &fakeEvents{})

	_, err := s.NextEvent()
	require.NoError(t, err)
	out, err := s.NextEvent()
	require.NoError(t, err)
	assert.True(t, out.TurnComplete)

	require.NoError(t, s.Close(context.Background()))
	require.Len(t, repo.appended, 1)
	assert.Equal(t, session.KindVoice, repo.appended[0].Kind)
	assert.Equal(t, "Keep practicing.", repo.appended[0].Messages[0].Content)
}

func TestNextEventSkipsEmptyEvents(t *testing.T) {
	upstream := &fakeUpstream{events: []*service.LiveEvent{{}}}
	s := newTestSession(upstream, &fakeSessionRepo{}, &fakeEvents{})

	out, err := s.NextEvent()
	require.NoError(t, err)
	assert.Nil(t, out)
}

func TestCloseWithoutTranscriptDiscardsSession(t *testing.T) {
	upstream := &fakeUpstream{}
	repo := &fakeSessionRepo{}
	events := &fakeEvents{}
	s := newTestSession(upstream, repo, events)

	require.NoError(t, s.Close(context.Background()))
	assert.Equal(t, 1, upstream.closed)
	assert.Empty(t, repo.appended)
	assert.Empty(t, events.sessionEvents)
}

func TestCloseIsIdempotent(t *testing.T) {
	upstream := &fakeUpstream{}
	s := newTestSession(upstream, &fakeSessionRepo{}, &fakeEvents{})

	require.NoError(t, s.Close(context.Background()))
	require.NoError(t, s.Close(context.Background()))
	assert.Equal(t, 1, upstream.closed)
}

func TestSendAudioAfterCloseRejected(t *testing.T) {
	upstream := &fakeUpstream{}
	s := newTestSession(upstream, &fakeSessionRepo{}, &fakeEvents{})

	require.NoError(t, s.Close(context.Background()))
	err := s.SendAudio(context.Background(), []byte{1, 2})
	assert.Error(t, err)
	assert.Empty(t, upstream.sent)
}
