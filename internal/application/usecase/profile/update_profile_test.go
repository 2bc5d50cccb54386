package profile

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
	lastUpsert  *profile.Profile
}

func (r *fakeProfileRepo) GetByOwnerID(_ context.Context, _ uuid.UUID) (*profile.Profile, error) {
	if r.stored == nil {
		return nil, apperror.NewNotFound("profile", "owner")
	}
	cp := *r.stored
	return &cp, nil
}

func (r *fakeProfileRepo) Upsert(_ context.Context, p *profile.Profile) error {
	r.upsertCalls++
	cp := *p
	r.lastUpsert = &cp
	r.stored = &cp
	return nil
}

type fakeLLM struct {
	roadmapErr  error
	projectsErr error
	trendsErr   error
}

func (f *fakeLLM) GenerateCareerPlan(context.Context, string, string) (*service.CareerPlan, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeLLM) GenerateRoadmap(context.Context, *profile.Profile) ([]profile.RoadmapStep, error) {
	if f.roadmapErr != nil {
		return nil, f.roadmapErr
	}
	return []profile.RoadmapStep{{Title: "new step"}}, nil
}

func (f *fakeLLM) GenerateProjects(context.Context, *profile.Profile) ([]profile.Project, error) {
	if f.projectsErr != nil {
		return nil, f.projectsErr
	}
	return []profile.Project{{ID: uuid.New(), Title: "new project", Status: profile.StatusNotStarted, XPReward: 100}}, nil
}

func (f *fakeLLM) GenerateTrends(context.Context, string) ([]profile.Trend, error) {
	if f.trendsErr != nil {
		return nil, f.trendsErr
	}
	return []profile.Trend{{Title: "new trend"}}, nil
}

func (f *fakeLLM) GenerateChatReply(context.Context, *profile.Profile, []session.Message, string) (string, error) {
	return "", errors.New("not implemented")
}

func (f *fakeLLM) GenerateInterviewQuestion(context.Context, string, []session.Message) (string, error) {
	return "", errors.New("not implemented")
}

func (f *fakeLLM) EvaluateInterview(context.Context, string, []session.Message) (*service.InterviewFeedback, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeLLM) GenerateQuiz(context.Context, string, int) (*service.Quiz, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeLLM) ReviewResume(context.Context, string, string) (*service.ResumeReview, error) {
	return nil, errors.New("not implemented")
}

type fakeEvents struct {
	profileEvents []event.ProfileEventPayload
}

func (f *fakeEvents) PublishProfileEvent(_ context.Context, payload event.ProfileEventPayload) error {
	f.profileEvents = append(f.profileEvents, payload)
	return nil
}

func strPtr(s string) *string { return &s }

func seedProfile(ownerID uuid.UUID) *profile.Profile {
	return &profile.Profile{
		OwnerID:    ownerID,
		Name:       "Dana",
		TargetRole: "Backend Engineer",
		XP:         300,
		Roadmap:    []profile.RoadmapStep{{Title: "old step", Completed: true}},
		Projects:   []profile.Project{{ID: uuid.New(), Title: "old project", Status: profile.StatusInProgress}},
		Trends:     []profile.Trend{{Title: "old trend"}},
	}
}

func TestUpdateProfilePlainMerge(t *testing.T) {
	ownerID := uuid.New()
	repo := &fakeProfileRepo{stored: seedProfile(ownerID)}
	events := &fakeEvents{}
	uc := NewUpdateProfileUseCase(repo, &fakeLLM{}, events, logger.NewZapLogger("development"))

	out, err := uc.Execute(context.Background(), UpdateProfileInput{
		OwnerID: ownerID,
		Bio:     strPtr("building things"),
	})

	require.NoError(t, err)
	assert.False(t, out.Regenerated)
	assert.Equal(t, "building things", out.Profile.Bio)
	assert.Equal(t, "Dana", out.Profile.Name)
	assert.Equal(t, 1, repo.upsertCalls)
	// Derived content is untouched on a plain merge.
	assert.Equal(t, "old step", out.Profile.Roadmap[0].Title)
	require.Len(t, events.profileEvents, 1)
}

func TestUpdateProfileRoleChangeRequiresConfirmation(t *testing.T) {
	ownerID := uuid.New()
	repo := &fakeProfileRepo{stored: seedProfile(ownerID)}
	uc := NewUpdateProfileUseCase(repo, &fakeLLM{}, &fakeEvents{}, logger.NewZapLogger("development"))

	_, err := uc.Execute(context.Background(), UpdateProfileInput{
		OwnerID:    ownerID,
		TargetRole: strPtr("Data Engineer"),
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrConflict)
	assert.Equal(t, 0, repo.upsertCalls)
}

func TestUpdateProfileConfirmedRoleChangeRegenerates(t *testing.T) {
	ownerID := uuid.New()
	repo := &fakeProfileRepo{stored: seedProfile(ownerID)}
	uc := NewUpdateProfileUseCase(repo, &fakeLLM{}, &fakeEvents{}, logger.NewZapLogger("development"))

	out, err := uc.Execute(context.Background(), UpdateProfileInput{
		OwnerID:           ownerID,
		TargetRole:        strPtr("Data Engineer"),
		ConfirmRoleChange: true,
	})

	require.NoError(t, err)
	assert.True(t, out.Regenerated)
	assert.Equal(t, "Data Engineer", out.Profile.TargetRole)
	assert.Equal(t, "new step", out.Profile.Roadmap[0].Title)
	assert.Equal(t, "new project", out.Profile.Projects[0].Title)
	assert.Equal(t, "new trend", out.Profile.Trends[0].Title)
	// Earned xp survives the regeneration.
	assert.Equal(t, 300, out.Profile.XP)
	assert.Equal(t, 1, repo.upsertCalls)
}

func TestUpdateProfileRegenerationIsAllOrNothing(t *testing.T) {
	for name, llm := range map[string]*fakeLLM{
		"roadmap fails":  {roadmapErr: errors.New("model unavailable")},
		"projects fail":  {projectsErr: errors.New("model unavailable")},
		"trends fail":    {trendsErr: errors.New("model unavailable")},
		"all three fail": {roadmapErr: errors.New("a"), projectsErr: errors.New("b"), trendsErr: errors.New("c")},
	} {
		t.Run(name, func(t *testing.T) {
			ownerID := uuid.New()
			seed := seedProfile(ownerID)
			repo := &fakeProfileRepo{stored: seed}
			uc := NewUpdateProfileUseCase(repo, llm, &fakeEvents{}, logger.NewZapLogger("development"))

			_, err := uc.Execute(context.Background(), UpdateProfileInput{
				OwnerID:           ownerID,
				TargetRole:        strPtr("Data Engineer"),
				ConfirmRoleChange: true,
			})

			require.Error(t, err)
			assert.ErrorIs(t, err, apperror.ErrBadGateway)
			assert.Equal(t, 0, repo.upsertCalls, "nothing may be persisted on partial failure")
			assert.Equal(t, "Backend Engineer", repo.stored.TargetRole)
			assert.Equal(t, "old step", repo.stored.Roadmap[0].Title)
		})
	}
}

func TestUpdateProfileEmptyTargetRoleRejected(t *testing.T) {
	ownerID := uuid.New()
	repo := &fakeProfileRepo{stored: seedProfile(ownerID)}
	uc := NewUpdateProfileUseCase(repo, &fakeLLM{}, &fakeEvents{}, logger.NewZapLogger("development"))

	_, err := uc.Execute(context.Background(), UpdateProfileInput{
		OwnerID:    ownerID,
		TargetRole: strPtr("   "),
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
	assert.Equal(t, 0, repo.upsertCalls)
}
