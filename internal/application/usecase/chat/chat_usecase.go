package chat

import (
	"context"
	"strings"
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

type ChatUseCase struct {
	llm         service.LLMService
	transcripts service.TranscriptStore
	profileRepo profile.Repository
	sessionRepo session.Repository
	events      eventPublisher
	logger      logger.Logger
}

func NewChatUseCase(
	llm service.LLMService,
	transcripts service.TranscriptStore,
	pr profile.Repository,
	sr session.Repository,
	events eventPublisher,
	log logger.Logger,
) *ChatUseCase {
	return &ChatUseCase{
		llm:         llm,
		transcripts: transcripts,
		profileRepo: pr,
		sessionRepo: sr,
		events:      events,
		logger:      log,
	}
}

type SendMessageInput struct {
	OwnerID uuid.UUID
	Message string
}

type SendMessageOutput struct {
	Reply   string
	History []session.Message
}

func (uc *ChatUseCase) SendMessage(ctx context.Context, input SendMessageInput) (*SendMessageOutput, error) {
	message := strings.TrimSpace(input.Message)
	if message == "" {
		return nil, apperror.NewInvalidInput("message must not be empty", nil)
	}

	p, err := uc.profileRepo.GetByOwnerID(ctx, input.OwnerID)
	if err != nil {
		return nil, err
	}

	history, err := uc.transcripts.Get(ctx, session.KindChat, input.OwnerID)
	if err != nil {
		return nil, err
	}

	reply, err := uc.llm.GenerateChatReply(ctx, p, history, message)
	if err != nil {
		uc.logger.Error("Chat reply generation failed", err, zap.String("owner_id", input.OwnerID.String()))
		return nil, apperror.NewBadGateway("failed to generate mentor reply", err)
	}

	userMsg := session.Message{Role: "user", Content: message}
	mentorMsg := session.Message{Role: "mentor", Content: reply}
	if err := uc.transcripts.Append(ctx, session.KindChat, input.OwnerID, userMsg); err != nil {
		return nil, err
	}
	if err := uc.transcripts.Append(ctx, session.KindChat, input.OwnerID, mentorMsg); err != nil {
		return nil, err
	}

	return &SendMessageOutput{
		Reply:   reply,
		History: append(append(history, userMsg), mentorMsg),
	}, nil
}

type EndSessionInput struct {
	OwnerID uuid.UUID
}

type EndSessionOutput struct {
	Recorded bool
}

// EndSession moves the open transcript into history. Empty transcripts are
// discarded. The stored chat history is capped FIFO at
// session.ChatHistoryLimit entries; the oldest session is evicted once the
// cap is exceeded.
func (uc *ChatUseCase) EndSession(ctx context.Context, input EndSessionInput) (*EndSessionOutput, error) {
	history, err := uc.transcripts.Get(ctx, session.KindChat, input.OwnerID)
	if err != nil {
		return nil, err
	}
	if len(history) == 0 {
		return &EndSessionOutput{Recorded: false}, nil
	}

	now := time.Now().UTC()
	record := &session.Session{
		ID:        uuid.New(),
		OwnerID:   input.OwnerID,
		Kind:      session.KindChat,
		Messages:  history,
		CreatedAt: now,
	}
	if err := uc.sessionRepo.Append(ctx, record); err != nil {
		return nil, err
	}
	if err := uc.sessionRepo.EvictBeyond(ctx, input.OwnerID, session.KindChat, session.ChatHistoryLimit); err != nil {
		uc.logger.Warn("Failed to evict old chat sessions", zap.Error(err))
	}

	if err := uc.transcripts.Clear(ctx, session.KindChat, input.OwnerID); err != nil {
		uc.logger.Warn("Failed to clear chat transcript", zap.Error(err))
	}

	if err := uc.events.PublishSessionEvent(ctx, event.SessionEventPayload{
		EventType:  event.SessionEventRecorded,
		OwnerID:    input.OwnerID,
		SessionID:  record.ID,
		Kind:       string(session.KindChat),
		OccurredAt: now,
	}); err != nil {
		uc.logger.Warn("Failed to publish session event", zap.Error(err))
	}

	return &EndSessionOutput{Recorded: true}, nil
}
