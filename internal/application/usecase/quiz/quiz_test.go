package quiz

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/darshil-dcis/career-copilot-api/adapters/event"
	"github.com/darshil-dcis/career-copilot-api/internal/application/service"
	"github.com/darshil-dcis/career-copilot-api/internal/domain/profile"
	"github.com/darshil-dcis/career-copilot-api/internal/domain/session"
	"github.com/darshil-dcis/career-copilot-api/pkg/apperror"
	"github.com/darshil-dcis/career-copilot-api/pkg/logger"
)

type fakeProfileRepo struct {
	stored      *profile.Profile
	upsertCalls int
}

func (r *fakeProfileRepo) GetByOwnerID(_ context.Context, _ uuid.UUID) (*profile.Profile, error) {
	return r.stored, nil
}

func (r *fakeProfileRepo) Upsert(_ context.Context, p *profile.Profile) error {
	r.upsertCalls++
	r.stored = p
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

type fakeQuizLLM struct {
	quiz *service.Quiz
	err  error
}

func (f *fakeQuizLLM) GenerateCareerPlan(context.Context, string, string) (*service.CareerPlan, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeQuizLLM) GenerateRoadmap(context.Context, *profile.Profile) ([]profile.RoadmapStep, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeQuizLLM) GenerateProjects(context.Context, *profile.Profile) ([]profile.Project, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeQuizLLM) GenerateTrends(context.Context, string) ([]profile.Trend, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeQuizLLM) GenerateChatReply(context.Context, *profile.Profile, []session.Message, string) (string, error) {
	return "", errors.New("not implemented")
}

func (f *fakeQuizLLM) GenerateInterviewQuestion(context.Context, string, []session.Message) (string, error) {
	return "", errors.New("not implemented")
}

func (f *fakeQuizLLM) EvaluateInterview(context.Context, string, []session.Message) (*service.InterviewFeedback, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeQuizLLM) GenerateQuiz(context.Context, string, int) (*service.Quiz, error) {
	return f.quiz, f.err
}

func (f *fakeQuizLLM) ReviewResume(context.Context, string, string) (*service.ResumeReview, error) {
	return nil, errors.New("not implemented")
}

type fakeEvents struct {
	profileEvents []event.ProfileEventPayload
	sessionEvents []event.SessionEventPayload
}

func (f *fakeEvents) PublishProfileEvent(_ context.Context, payload event.ProfileEventPayload) error {
	f.profileEvents = append(f.profileEvents, payload)
	return nil
}

func (f *fakeEvents) PublishSessionEvent(_ context.Context, payload event.SessionEventPayload) error {
	f.sessionEvents = append(f.sessionEvents, payload)
	return nil
}

func fiveQuestionQuiz() *service.Quiz {
	q := &service.Quiz{Skill: "Go"}
	for i := 0; i < 5; i++ {
		q.Questions = append(q.Questions, service.QuizQuestion{
			Prompt:  "q",
			Options: []string{"a", "b", "c", "d"},
			Answer:  0,
		})
	}
	return q
}

func newFixture() (*QuizUseCase, *fakeProfileRepo, *fakeSessionRepo, *fakeEvents) {
	repo := &fakeProfileRepo{stored: &profile.Profile{TargetRole: "Backend Engineer"}}
	sessions := &fakeSessionRepo{}
	events := &fakeEvents{}
	uc := NewQuizUseCase(&fakeQuizLLM{quiz: fiveQuestionQuiz()}, repo, sessions, events, logger.NewZapLogger("development"))
	return uc, repo, sessions, events
}

func TestGenerateRequiresSkill(t *testing.T) {
	uc, _, _, _ := newFixture()

	_, err := uc.Generate(context.Background(), GenerateInput{OwnerID: uuid.New(), Skill: "  "})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
}

func TestSubmitAnswerCountMismatchRejected(t *testing.T) {
	uc, _, _, _ := newFixture()

	_, err := uc.Submit(context.Background(), SubmitInput{
		OwnerID: uuid.New(),
		Quiz:    fiveQuestionQuiz(),
		Answers: []int{0, 0},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
}

func TestSubmitPassAwardsXPAndRecords(t *testing.T) {
	uc, repo, sessions, events := newFixture()

	// 3 of 5 correct hits the pass threshold exactly.
	out, err := uc.Submit(context.Background(), SubmitInput{
		OwnerID: uuid.New(),
		Quiz:    fiveQuestionQuiz(),
		Answers: []int{0, 0, 0, 1, 1},
	})
	require.NoError(t, err)
	assert.True(t, out.Passed)
	assert.Equal(t, 3, out.Correct)
	assert.Equal(t, profile.QuizXP, out.XPEarned)
	assert.Equal(t, profile.QuizXP, repo.stored.XP)
	assert.Equal(t, 1, repo.upsertCalls)
	require.Len(t, events.profileEvents, 1)

	require.Len(t, sessions.appended, 1)
	record := sessions.appended[0]
	assert.Equal(t, session.KindQuiz, record.Kind)
	require.NotNil(t, record.Score)
	assert.Equal(t, 60, *record.Score)
}

func TestSubmitFailAwardsNothingButStillRecords(t *testing.T) {
	uc, repo, sessions, _ := newFixture()

	out, err := uc.Submit(context.Background(), SubmitInput{
		OwnerID: uuid.New(),
		Quiz:    fiveQuestionQuiz(),
		Answers: []int{1, 1, 1, 1, 0},
	})
	require.NoError(t, err)
	assert.False(t, out.Passed)
	assert.Equal(t, 1, out.Correct)
	assert.Equal(t, 0, out.XPEarned)
	assert.Equal(t, 0, repo.stored.XP)
	assert.Equal(t, 0, repo.upsertCalls)

	require.Len(t, sessions.appended, 1)
	require.NotNil(t, sessions.appended[0].Score)
	assert.Equal(t, 20, *sessions.appended[0].Score)
}
