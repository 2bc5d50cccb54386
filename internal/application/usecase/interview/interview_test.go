package interview

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

type fakeProfileRepo struct{}

func (r *fakeProfileRepo) GetByOwnerID(_ context.Context, _ uuid.UUID) (*profile.Profile, error) {
	return &profile.Profile{TargetRole: "Backend Engineer"}, nil
}

func (r *fakeProfileRepo) Upsert(_ context.Context, _ *profile.Profile) error { return nil }

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

type fakeTranscriptStore struct {
	messages []session.Message
	cleared  int
}

func (s *fakeTranscriptStore) Append(_ context.Context, _ session.Kind, _ uuid.UUID, m session.Message) error {
	s.messages = append(s.messages, m)
	return nil
}

func (s *fakeTranscriptStore) Get(_ context.Context, _ session.Kind, _ uuid.UUID) ([]session.Message, error) {
	return s.messages, nil
}

func (s *fakeTranscriptStore) Clear(_ context.Context, _ session.Kind, _ uuid.UUID) error {
	s.cleared++
	s.messages = nil
	return nil
}

type fakeInterviewLLM struct {
	question string
	feedback *service.InterviewFeedback
}

func (f *fakeInterviewLLM) GenerateCareerPlan(context.Context, string, string) (*service.CareerPlan, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeInterviewLLM) GenerateRoadmap(context.Context, *profile.Profile) ([]profile.RoadmapStep, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeInterviewLLM) GenerateProjects(context.Context, *profile.Profile) ([]profile.Project, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeInterviewLLM) GenerateTrends(context.Context, string) ([]profile.Trend, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeInterviewLLM) GenerateChatReply(context.Context, *profile.Profile, []session.Message, string) (string, error) {
	return "", errors.New("not implemented")
}

func (f *fakeInterviewLLM) GenerateInterviewQuestion(context.Context, string, []session.Message) (string, error) {
	return f.question, nil
}

func (f *fakeInterviewLLM) EvaluateInterview(context.Context, string, []session.Message) (*service.InterviewFeedback, error) {
	if f.feedback == nil {
		return nil, errors.New("model unavailable")
	}
	return f.feedback, nil
}

func (f *fakeInterviewLLM) GenerateQuiz(context.Context, string, int) (*service.Quiz, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeInterviewLLM) ReviewResume(context.Context, string, string) (*service.ResumeReview, error) {
	return nil, errors.New("not implemented")
}

type fakeEvents struct {
	sessionEvents []event.SessionEventPayload
}

func (f *fakeEvents) PublishSessionEvent(_ context.Context, payload event.SessionEventPayload) error {
	f.sessionEvents = append(f.sessionEvents, payload)
	return nil
}

func newFixture(llm *fakeInterviewLLM) (*InterviewUseCase, *fakeTranscriptStore, *fakeSessionRepo, *fakeEvents) {
	transcripts := &fakeTranscriptStore{}
	sessions := &fakeSessionRepo{}
	events := &fakeEvents{}
	uc := NewInterviewUseCase(llm, transcripts, &fakeProfileRepo{}, sessions, events, logger.NewZapLogger("development"))
	return uc, transcripts, sessions, events
}

func TestStartClearsLeftoverTranscript(t *testing.T) {
	uc, transcripts, _, _ := newFixture(&fakeInterviewLLM{question: "Tell me about yourself."})
	transcripts.messages = []session.Message{{Role: "interviewer", Content: "stale"}}

	out, err := uc.Start(context.Background(), StartInput{OwnerID: uuid.New()})
	require.NoError(t, err)
	assert.Equal(t, "Tell me about yourself.", out.Question)
	assert.Equal(t, 1, transcripts.cleared)
	require.Len(t, transcripts.messages, 1)
	assert.Equal(t, "interviewer", transcripts.messages[0].Role)
}

func TestReplyWithoutOpenInterviewRejected(t *testing.T) {
	uc, _, _, _ := newFixture(&fakeInterviewLLM{question: "Next question."})

	_, err := uc.Reply(context.Background(), ReplyInput{OwnerID: uuid.New(), Answer: "an answer"})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
}

func TestReplyAppendsAnswerAndNextQuestion(t *testing.T) {
	uc, transcripts, _, _ := newFixture(&fakeInterviewLLM{question: "Why this role?"})
	transcripts.messages = []session.Message{{Role: "interviewer", Content: "Tell me about yourself."}}

	out, err := uc.Reply(context.Background(), ReplyInput{OwnerID: uuid.New(), Answer: "I build APIs."})
	require.NoError(t, err)
	assert.Equal(t, "Why this role?", out.Question)
	require.Len(t, transcripts.messages, 3)
	assert.Equal(t, "candidate", transcripts.messages[1].Role)
	assert.Equal(t, "interviewer", transcripts.messages[2].Role)
}

func TestFinishDiscardsInterviewWithOnlyOpeningQuestion(t *testing.T) {
	uc, transcripts, sessions, events := newFixture(&fakeInterviewLLM{
		feedback: &service.InterviewFeedback{Score: 80},
	})
	transcripts.messages = []session.Message{{Role: "interviewer", Content: "Tell me about yourself."}}

	out, err := uc.Finish(context.Background(), FinishInput{OwnerID: uuid.New()})
	require.NoError(t, err)
	assert.False(t, out.Recorded)
	assert.Nil(t, out.Feedback)
	assert.Empty(t, sessions.appended)
	assert.Empty(t, events.sessionEvents)
	assert.Equal(t, 1, transcripts.cleared)
}

func TestFinishRecordsScoredSession(t *testing.T) {
	uc, transcripts, sessions, events := newFixture(&fakeInterviewLLM{
		feedback: &service.InterviewFeedback{Score: 72, Summary: "Solid fundamentals."},
	})
	transcripts.messages = []session.Message{
		{Role: "interviewer", Content: "Tell me about yourself."},
		{Role: "candidate", Content: "I build APIs."},
	}

	out, err := uc.Finish(context.Background(), FinishInput{OwnerID: uuid.New()})
	require.NoError(t, err)
	assert.True(t, out.Recorded)
	require.NotNil(t, out.Feedback)
	assert.Equal(t, 72, out.Feedback.Score)

	require.Len(t, sessions.appended, 1)
	record := sessions.appended[0]
	assert.Equal(t, session.KindInterview, record.Kind)
	require.NotNil(t, record.Score)
	assert.Equal(t, 72, *record.Score)
	assert.Equal(t, "Solid fundamentals.", record.Summary)

	assert.Equal(t, 1, transcripts.cleared)
	require.Len(t, events.sessionEvents, 1)
}

func TestFinishEvaluationFailureKeepsTranscript(t *testing.T) {
	uc, transcripts, sessions, _ := newFixture(&fakeInterviewLLM{feedback: nil})
	transcripts.messages = []session.Message{
		{Role: "interviewer", Content: "Tell me about yourself."},
		{Role: "candidate", Content: "I build APIs."},
	}

	_, err := uc.Finish(context.Background(), FinishInput{OwnerID: uuid.New()})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrBadGateway)
	assert.Empty(t, sessions.appended)
	// The transcript stays so the user can retry finishing.
	assert.Equal(t, 0, transcripts.cleared)
	assert.Len(t, transcripts.messages, 2)
}
