package quiz

import (
	"context"
	"fmt"
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

const (
	defaultQuestions = 5
	// passThreshold is the fraction of correct answers needed to earn xp.
	passThreshold = 0.6
)

type eventPublisher interface {
	PublishProfileEvent(ctx context.Context, payload event.ProfileEventPayload) error
	PublishSessionEvent(ctx context.Context, payload event.SessionEventPayload) error
}

type QuizUseCase struct {
	llm         service.LLMService
	profileRepo profile.Repository
	sessionRepo session.Repository
	events      eventPublisher
	logger      logger.Logger
}

func NewQuizUseCase(
	llm service.LLMService,
	pr profile.Repository,
	sr session.Repository,
	events eventPublisher,
	log logger.Logger,
) *QuizUseCase {
	return &QuizUseCase{llm: llm, profileRepo: pr, sessionRepo: sr, events: events, logger: log}
}

type GenerateInput struct {
	OwnerID      uuid.UUID
	Skill        string
	NumQuestions int
}

type GenerateOutput struct {
	Quiz *service.Quiz
}

func (uc *QuizUseCase) Generate(ctx context.Context, input GenerateInput) (*GenerateOutput, error) {
	skill := strings.TrimSpace(input.Skill)
	if skill == "" {
		return nil, apperror.NewInvalidInput("skill is required", nil)
	}
	n := input.NumQuestions
	if n <= 0 {
		n = defaultQuestions
	}

	quiz, err := uc.llm.GenerateQuiz(ctx, skill, n)
	if err != nil {
		return nil, apperror.NewBadGateway("failed to generate quiz", err)
	}
	return &GenerateOutput{Quiz: quiz}, nil
}

type SubmitInput struct {
	OwnerID uuid.UUID
	Quiz    *service.Quiz
	// Answers holds the chosen option index per question.
	Answers []int
}

type SubmitOutput struct {
	Correct  int
	Total    int
	Passed   bool
	XPEarned int
}

// Submit grades locally against the answer key, awards xp on a pass and
// records a quiz session. Grading never goes back to the model.
func (uc *QuizUseCase) Submit(ctx context.Context, input SubmitInput) (*SubmitOutput, error) {
	if input.Quiz == nil || len(input.Quiz.Questions) == 0 {
		return nil, apperror.NewInvalidInput("quiz is required", nil)
	}
	if len(input.Answers) != len(input.Quiz.Questions) {
		return nil, apperror.NewInvalidInput(
			fmt.Sprintf("expected %d answers, got %d", len(input.Quiz.Questions), len(input.Answers)), nil)
	}

	correct := 0
	for i, q := range input.Quiz.Questions {
		if input.Answers[i] == q.Answer {
			correct++
		}
	}
	total := len(input.Quiz.Questions)
	passed := float64(correct) >= passThreshold*float64(total)

	xpEarned := 0
	now := time.Now().UTC()
	if passed {
		p, err := uc.profileRepo.GetByOwnerID(ctx, input.OwnerID)
		if err != nil {
			return nil, err
		}
		p.AddXP(profile.QuizXP)
		xpEarned = profile.QuizXP
		p.UpdatedAt = now
		p.Achievements = profile.EvaluateAchievements(p, now)
		if err := uc.profileRepo.Upsert(ctx, p); err != nil {
			return nil, err
		}
		if err := uc.events.PublishProfileEvent(ctx, event.ProfileEventPayload{
			EventType:  event.ProfileEventUpdated,
			OwnerID:    input.OwnerID,
			OccurredAt: now,
		}); err != nil {
			uc.logger.Warn("Failed to publish profile event", zap.Error(err))
		}
	}

	score := 0
	if total > 0 {
		score = correct * 100 / total
	}
	record := &session.Session{
		ID:      uuid.New(),
		OwnerID: input.OwnerID,
		Kind:    session.KindQuiz,
		Summary: fmt.Sprintf("%s quiz: %d/%d", input.Quiz.Skill, correct, total),
		Score:   &score,
		CreatedAt: now,
	}
	if err := uc.sessionRepo.Append(ctx, record); err != nil {
		// Recording failure does not block the result.
		uc.logger.Error("Failed to record quiz session", err, zap.String("owner_id", input.OwnerID.String()))
	} else if err := uc.events.PublishSessionEvent(ctx, event.SessionEventPayload{
		EventType:  event.SessionEventRecorded,
		OwnerID:    input.OwnerID,
		SessionID:  record.ID,
		Kind:       string(session.KindQuiz),
		OccurredAt: now,
	}); err != nil {
		uc.logger.Warn("Failed to publish session event", zap.Error(err))
	}

	return &SubmitOutput{Correct: correct, Total: total, Passed: passed, XPEarned: xpEarned}, nil
}
