package voice

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/darshil-dcis/career-copilot-api/adapters/event"
	"github.com/darshil-dcis/career-copilot-api/internal/application/service"
	"github.com/darshil-dcis/career-copilot-api/internal/domain/profile"
	"github.com/darshil-dcis/career-copilot-api/internal/domain/session"
	"github.com/darshil-dcis/career-copilot-api/pkg/apperror"
	"github.com/darshil-dcis/career-copilot-api/pkg/logger"
)

type eventPublisher interface {
	PublishSessionEvent(ctx context.Context, payload event.SessionEventPayload) error
}

type StartSessionUseCase struct {
	live        service.LiveService
	profileRepo profile.Repository
	sessionRepo session.Repository
	events      eventPublisher
	logger      logger.Logger
}

func NewStartSessionUseCase(
	live service.LiveService,
	pr profile.Repository,
	sr session.Repository,
	events eventPublisher,
	log logger.Logger,
) *StartSessionUseCase {
	return &StartSessionUseCase{
		live:        live,
		profileRepo: pr,
		sessionRepo: sr,
		events:      events,
		logger:      log,
	}
}

// Execute opens a live voice session for the user. The returned Session
// must be closed by the caller; Close tears the upstream stream down and
// records the session to history.
func (uc *StartSessionUseCase) Execute(ctx context.Context, ownerID uuid.UUID) (*Session, error) {
	p, err := uc.profileRepo.GetByOwnerID(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	upstream, err := uc.live.Connect(ctx, p)
	if err != nil {
		return nil, apperror.NewBadGateway("failed to open live voice session", err)
	}

	return &Session{
		ownerID:     ownerID,
		upstream:    upstream,
		scheduler:   NewPlaybackScheduler(),
		sessionRepo: uc.sessionRepo,
		events:      uc.events,
		logger:      uc.logger,
	}, nil
}

// OutboundAudio is one model audio buffer with its assigned playback slot.
type OutboundAudio struct {
	PCM          []byte
	PlayAt       time.Time
	Duration     time.Duration
	Transcript   string
	TurnComplete bool
}

// Session bridges the upstream live stream and the client transport.
// Outbound captured audio is forwarded as it arrives; inbound model audio
// gets a playback slot from the monotonic scheduler.
type Session struct {
	ownerID     uuid.UUID
	upstream    service.LiveSession
	scheduler   *PlaybackScheduler
	sessionRepo session.Repository
	events      eventPublisher
	logger      logger.Logger

	mu         sync.Mutex
	transcript strings.Builder
	closed     bool
}

// SendAudio forwards one captured PCM chunk upstream. No buffering beyond
// the chunk itself.
func (s *Session) SendAudio(ctx context.Context, pcm []byte) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return apperror.NewInvalidInput("voice session is closed", nil)
	}
	s.mu.Unlock()
	return s.upstream.SendAudio(ctx, pcm)
}

// NextEvent blocks for the next upstream event and schedules any audio it
// carries. Returns nil, nil when the event carried nothing useful.
func (s *Session) NextEvent() (*OutboundAudio, error) {
	ev, err := s.upstream.Receive()
	if err != nil {
		return nil, err
	}

	if ev.Transcript != "" {
		s.mu.Lock()
		s.transcript.WriteString(ev.Transcript)
		s.mu.Unlock()
	}

	if len(ev.Audio) == 0 && ev.Transcript == "" && !ev.TurnComplete {
		return nil, nil
	}

	out := &OutboundAudio{
		PCM:          ev.Audio,
		Transcript:   ev.Transcript,
		TurnComplete: ev.TurnComplete,
	}
	if len(ev.Audio) > 0 {
		out.Duration = DurationForPCM(len(ev.Audio), OutputSampleRate)
		out.PlayAt = s.scheduler.Schedule(out.Duration)
	}
	return out, nil
}

// Close synchronously closes the upstream session, drops any buffers still
// scheduled for playback and records the session to history. A session
// that never produced a transcript is discarded, not recorded. Recording
// failure is logged, not returned: the session is already over.
func (s *Session) Close(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	transcript := s.transcript.String()
	s.mu.Unlock()

	s.scheduler.Reset()
	closeErr := s.upstream.Close()

	if strings.TrimSpace(transcript) == "" {
		return closeErr
	}

	now := time.Now().UTC()
	record := &session.Session{
		ID:        uuid.New(),
		OwnerID:   s.ownerID,
		Kind:      session.KindVoice,
		Messages:  []session.Message{{Role: "mentor", Content: transcript}},
		CreatedAt: now,
	}
	if err := s.sessionRepo.Append(ctx, record); err != nil {
		s.logger.Error("Failed to record voice session", err, zap.String("owner_id", s.ownerID.String()))
		return closeErr
	}

	if err := s.events.PublishSessionEvent(ctx, event.SessionEventPayload{
		EventType:  event.SessionEventRecorded,
		OwnerID:    s.ownerID,
		SessionID:  record.ID,
		Kind:       string(session.KindVoice),
		OccurredAt: now,
	}); err != nil {
		s.logger.Warn("Failed to publish session event", zap.Error(err))
	}

	return closeErr
}
