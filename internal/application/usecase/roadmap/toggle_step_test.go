package roadmap

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/darshil-dcis/career-copilot-api/adapters/event"
	"github.com/darshil-dcis/career-copilot-api/internal/domain/profile"
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

type fakeEvents struct {
	profileEvents []event.ProfileEventPayload
}

func (f *fakeEvents) PublishProfileEvent(_ context.Context, payload event.ProfileEventPayload) error {
	f.profileEvents = append(f.profileEvents, payload)
	return nil
}

func newFixture(p *profile.Profile) (*ToggleStepUseCase, *fakeProfileRepo, *fakeEvents) {
	repo := &fakeProfileRepo{stored: p}
	events := &fakeEvents{}
	return NewToggleStepUseCase(repo, events, logger.NewZapLogger("development")), repo, events
}

func twoStepProfile() *profile.Profile {
	return &profile.Profile{
		OwnerID: uuid.New(),
		XP:      0,
		Roadmap: []profile.RoadmapStep{
			{Title: "learn sql"},
			{Title: "build an api"},
		},
	}
}

func TestToggleStepOutOfRange(t *testing.T) {
	uc, repo, _ := newFixture(twoStepProfile())

	for _, idx := range []int{-1, 2, 100} {
		_, err := uc.Execute(context.Background(), ToggleStepInput{StepIndex: idx, Completed: true})
		require.Error(t, err, "index %d", idx)
		assert.ErrorIs(t, err, apperror.ErrInvalidInput)
	}
	assert.Equal(t, 0, repo.upsertCalls)
}

func TestToggleStepCompleteAwardsXP(t *testing.T) {
	uc, repo, events := newFixture(twoStepProfile())

	out, err := uc.Execute(context.Background(), ToggleStepInput{StepIndex: 0, Completed: true})
	require.NoError(t, err)
	assert.Equal(t, profile.StepXP, out.XPDelta)
	assert.Equal(t, profile.StepXP, out.Profile.XP)
	assert.True(t, out.Profile.Roadmap[0].Completed)
	assert.Equal(t, 1, repo.upsertCalls)

	// Completing the first step triggers achievements, so the published
	// event carries them.
	require.Len(t, events.profileEvents, 1)
	assert.Equal(t, event.ProfileEventAchievementAwarded, events.profileEvents[0].EventType)
	assert.Contains(t, events.profileEvents[0].Achievements, "FIRST_STEP")
}

func TestToggleStepUncompleteRevokesXP(t *testing.T) {
	p := twoStepProfile()
	p.Roadmap[0].Completed = true
	p.XP = profile.StepXP
	uc, _, _ := newFixture(p)

	out, err := uc.Execute(context.Background(), ToggleStepInput{StepIndex: 0, Completed: false})
	require.NoError(t, err)
	assert.Equal(t, -profile.StepXP, out.XPDelta)
	assert.Equal(t, 0, out.Profile.XP)
	assert.False(t, out.Profile.Roadmap[0].Completed)
}

func TestToggleStepSameStateIsNoop(t *testing.T) {
	uc, repo, events := newFixture(twoStepProfile())

	out, err := uc.Execute(context.Background(), ToggleStepInput{StepIndex: 0, Completed: false})
	require.NoError(t, err)
	assert.Equal(t, 0, out.XPDelta)
	assert.Equal(t, 0, repo.upsertCalls)
	assert.Empty(t, events.profileEvents)
}

func TestToggleStepXPNeverGoesNegative(t *testing.T) {
	p := twoStepProfile()
	p.Roadmap[0].Completed = true
	p.XP = 0 // drifted state: completed step but no xp on record
	uc, _, _ := newFixture(p)

	out, err := uc.Execute(context.Background(), ToggleStepInput{StepIndex: 0, Completed: false})
	require.NoError(t, err)
	assert.Equal(t, 0, out.Profile.XP)
}
