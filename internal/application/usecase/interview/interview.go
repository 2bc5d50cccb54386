package interview

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

// minRecordableMessages guards history: an interview holding only the
// opening question was never really taken and is discarded on finish.
const minRecordableMessages = 2

type eventPublisher interface {
	PublishSessionEvent(ctx context.Context, payload event.SessionEventPayload) error
}

type InterviewUseCase struct {
	llm         service.LLMService
	transcripts service.TranscriptStore
	profileRepo profile.Repository
	sessionRepo session.Repository
	events      eventPublisher
	logger      logger.Logger
}

func NewInterviewUseCase(
	llm service.LLMService,
	transcripts service.TranscriptStore,
	pr profile.Repository,
	sr session.Repository,
	events eventPublisher,
	log logger.Logger,
) *InterviewUseCase {
	return &InterviewUseCase{
		llm:         llm,
		transcripts: transcripts,
		profileRepo: pr,
		sessionRepo: sr,
		events:      events,
		logger:      log,
	}
}

type StartInput struct {
	OwnerID uuid.UUID
}

type StartOutput struct {
	Question string
}

// Start opens a fresh interview: any leftover transcript is dropped and the
// model asks a role-specific opening question.
func (uc *InterviewUseCase) Start(ctx context.Context, input StartInput) (*StartOutput, error) {
	p, err := uc.profileRepo.GetByOwnerID(ctx, input.OwnerID)
	if err != nil {
		return nil, err
	}

	if err := uc.transcripts.Clear(ctx, session.KindInterview, input.OwnerID); err != nil {
		return nil, err
	}

	question, err := uc.llm.GenerateInterviewQuestion(ctx, p.TargetRole, nil)
	if err != nil {
		return nil, apperror.NewBadGateway("failed to generate opening question", err)
	}

	if err := uc.transcripts.Append(ctx, session.KindInterview, input.OwnerID,
		session.Message{Role: "interviewer", Content: question}); err != nil {
		return nil, err
	}

	return &StartOutput{Question: question}, nil
}

type ReplyInput struct {
	OwnerID uuid.UUID
	Answer  string
}

type ReplyOutput struct {
	Question string
}

func (uc *InterviewUseCase) Reply(ctx context.Context, input ReplyInput) (*ReplyOutput, error) {
	answer := strings.TrimSpace(input.Answer)
	if answer == "" {
		return nil, apperror.NewInvalidInput("answer must not be empty", nil)
	}

	p, err := uc.profileRepo.GetByOwnerID(ctx, input.OwnerID)
	if err != nil {
		return nil, err
	}

	history, err := uc.transcripts.Get(ctx, session.KindInterview, input.OwnerID)
	if err != nil {
		return nil, err
	}
	if len(history) == 0 {
		return nil, apperror.NewInvalidInput("no open interview, start one first", nil)
	}

	if err := uc.transcripts.Append(ctx, session.KindInterview, input.OwnerID,
		session.Message{Role: "candidate", Content: answer}); err != nil {
		return nil, err
	}
	history = append(history, session.Message{Role: "candidate", Content: answer})

	question, err := uc.llm.GenerateInterviewQuestion(ctx, p.TargetRole, history)
	if err != nil {
		return nil, apperror.NewBadGateway("failed to generate next question", err)
	}

	if err := uc.transcripts.Append(ctx, session.KindInterview, input.OwnerID,
		session.Message{Role: "interviewer", Content: question}); err != nil {
		return nil, err
	}

	return &ReplyOutput{Question: question}, nil
}

type FinishInput struct {
	OwnerID uuid.UUID
}

type FinishOutput struct {
	Feedback *service.InterviewFeedback
	Recorded bool
}

// Finish scores the interview and records it, unless the transcript never
// got past the opening question.
func (uc *InterviewUseCase) Finish(ctx context.Context, input FinishInput) (*FinishOutput, error) {
	p, err := uc.profileRepo.GetByOwnerID(ctx, input.OwnerID)
	if err != nil {
		return nil, err
	}

	history, err := uc.transcripts.Get(ctx, session.KindInterview, input.OwnerID)
	if err != nil {
		return nil, err
	}

	if len(history) < minRecordableMessages {
		if err := uc.transcripts.Clear(ctx, session.KindInterview, input.OwnerID); err != nil {
			uc.logger.Warn("Failed to clear interview transcript", zap.Error(err))
		}
		return &FinishOutput{Recorded: false}, nil
	}

	feedback, err := uc.llm.EvaluateInterview(ctx, p.TargetRole, history)
	if err != nil {
		return nil, apperror.NewBadGateway("failed to evaluate interview", err)
	}

	now := time.Now().UTC()
	score := feedback.Score
	record := &session.Session{
		ID:        uuid.New(),
		OwnerID:   input.OwnerID,
		Kind:      session.KindInterview,
		Messages:  history,
		Summary:   feedback.Summary,
		Score:     &score,
		CreatedAt: now,
	}
	recorded := true
	if err := uc.sessionRepo.Append(ctx, record); err != nil {
		// The user keeps their feedback even when recording fails.
		uc.logger.Error("Failed to record interview session", err, zap.String("owner_id", input.OwnerID.String()))
		recorded = false
	}

	if err := uc.transcripts.Clear(ctx, session.KindInterview, input.OwnerID); err != nil {
		uc.logger.Warn("Failed to clear interview transcript", zap.Error(err))
	}

	if recorded {
		if err := uc.events.PublishSessionEvent(ctx, event.SessionEventPayload{
			EventType:  event.SessionEventRecorded,
			OwnerID:    input.OwnerID,
			SessionID:  record.ID,
			Kind:       string(session.KindInterview),
			OccurredAt: now,
		}); err != nil {
			uc.logger.Warn("Failed to publish session event", zap.Error(err))
		}
	}

	return &FinishOutput{Feedback: feedback, Recorded: recorded}, nil
}
