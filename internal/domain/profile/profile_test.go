package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevel(t *testing.T) {
	cases := []struct {
		xp    int
		level int
	}{
		{0, 1},
		{1, 1},
		{499, 1},
		{500, 2},
		{999, 2},
		{1000, 3},
		{2750, 6},
	}
	for _, tc := range cases {
		p := Profile{XP: tc.xp}
		assert.Equal(t, tc.level, p.Level(), "xp=%d", tc.xp)
	}
}

func TestAddXPClampsAtZero(t *testing.T) {
	p := Profile{XP: 100}

	p.AddXP(-300)
	assert.Equal(t, 0, p.XP)
	assert.Equal(t, 1, p.Level())

	p.AddXP(StepXP)
	assert.Equal(t, StepXP, p.XP)
}

func TestCompletedCounters(t *testing.T) {
	p := Profile{
		Roadmap: []RoadmapStep{
			{Title: "a", Completed: true},
			{Title: "b"},
			{Title: "c", Completed: true},
		},
		Projects: []Project{
			{Title: "x", Status: StatusCompleted},
			{Title: "y", Status: StatusInProgress},
			{Title: "z", Status: StatusNotStarted},
		},
	}
	assert.Equal(t, 2, p.CompletedSteps())
	assert.Equal(t, 1, p.CompletedProjects())
}

func TestReconcileXPRepairsUpwardDrift(t *testing.T) {
	p := Profile{
		XP: 0,
		Roadmap: []RoadmapStep{
			{Title: "a", Completed: true},
			{Title: "b", Completed: true},
		},
		Projects: []Project{
			{Title: "x", Status: StatusCompleted, XPReward: 200},
		},
	}

	drift := p.ReconcileXP()
	assert.Equal(t, 500, drift)
	assert.Equal(t, 500, p.XP)
}

func TestReconcileXPLeavesExtraXPAlone(t *testing.T) {
	// Quiz passes add xp that completion state cannot explain; reconcile
	// must not claw it back.
	p := Profile{
		XP: 350,
		Roadmap: []RoadmapStep{
			{Title: "a", Completed: true},
		},
	}

	drift := p.ReconcileXP()
	assert.Equal(t, -200, drift)
	assert.Equal(t, 350, p.XP)
}

func TestReconcileXPConsistentIsNoop(t *testing.T) {
	p := Profile{
		XP: StepXP,
		Roadmap: []RoadmapStep{
			{Title: "a", Completed: true},
		},
	}
	assert.Equal(t, 0, p.ReconcileXP())
	assert.Equal(t, StepXP, p.XP)
}
