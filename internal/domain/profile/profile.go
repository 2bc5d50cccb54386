package profile

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Proficiency string

const (
	ProficiencyBeginner     Proficiency = "Beginner"
	ProficiencyIntermediate Proficiency = "Intermediate"
	ProficiencyAdvanced     Proficiency = "Advanced"
	ProficiencyExpert       Proficiency = "Expert"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

type ProjectStatus string

const (
	StatusNotStarted ProjectStatus = "Not Started"
	StatusInProgress ProjectStatus = "In Progress"
	StatusCompleted  ProjectStatus = "Completed"
)

const (
	// XPPerLevel drives the level curve: level = floor(xp/500) + 1.
	XPPerLevel = 500
	// StepXP is awarded (or revoked) per roadmap step toggle.
	StepXP = 150
	// QuizXP is awarded for a passed skill quiz.
	QuizXP = 50
)

type Skill struct {
	Name        string      `json:"name"`
	Proficiency Proficiency `json:"proficiency"`
	Category    string      `json:"category"`
	IsGap       bool        `json:"is_gap"`
}

type RoadmapStep struct {
	Title            string   `json:"title"`
	Duration         string   `json:"duration"`
	SkillsToLearn    []string `json:"skills_to_learn"`
	Resources        []string `json:"resources"`
	MilestoneProject string   `json:"milestone_project"`
	Completed        bool     `json:"completed"`
}

type Project struct {
	ID             uuid.UUID     `json:"id"`
	Title          string        `json:"title"`
	Description    string        `json:"description"`
	RequiredSkills []string      `json:"required_skills"`
	Difficulty     Difficulty    `json:"difficulty"`
	XPReward       int           `json:"xp_reward"`
	Status         ProjectStatus `json:"status"`
	Steps          []string      `json:"steps,omitempty"`
	Notes          string        `json:"notes,omitempty"`
}

type Achievement struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	AwardedAt   time.Time `json:"awarded_at"`
}

type Trend struct {
	Title   string `json:"title"`
	Summary string `json:"summary"`
	Source  string `json:"source,omitempty"`
}

// Profile is the per-user aggregate. One row per authenticated user; every
// feature of the application mutates it through the repository's Upsert.
type Profile struct {
	OwnerID      uuid.UUID     `json:"owner_id"`
	Name         string        `json:"name"`
	TargetRole   string        `json:"target_role"`
	Bio          string        `json:"bio"`
	Location     string        `json:"location"`
	XP           int           `json:"xp"`
	Streak       int           `json:"streak"`
	Skills       []Skill       `json:"skills"`
	Roadmap      []RoadmapStep `json:"roadmap"`
	Projects     []Project     `json:"projects"`
	Achievements []Achievement `json:"achievements"`
	Trends       []Trend       `json:"trends"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// Level derives from xp. XP is clamped to zero on mutation, so the floor
// division is safe.
func (p *Profile) Level() int {
	if p.XP < 0 {
		return 1
	}
	return p.XP/XPPerLevel + 1
}

// AddXP applies a delta and clamps the result at zero. XP never goes negative.
func (p *Profile) AddXP(delta int) {
	p.XP += delta
	if p.XP < 0 {
		p.XP = 0
	}
}

func (p *Profile) CompletedSteps() int {
	n := 0
	for _, s := range p.Roadmap {
		if s.Completed {
			n++
		}
	}
	return n
}

func (p *Profile) CompletedProjects() int {
	n := 0
	for _, pr := range p.Projects {
		if pr.Status == StatusCompleted {
			n++
		}
	}
	return n
}

// ReconcileXP recomputes xp from completion state instead of trusting the
// accumulated toggle deltas. Returns the drift that was corrected; zero
// means the bookkeeping was already consistent. Quiz XP is excluded since
// quiz passes are not recoverable from the aggregate itself.
func (p *Profile) ReconcileXP() int {
	expected := p.CompletedSteps() * StepXP
	for _, pr := range p.Projects {
		if pr.Status == StatusCompleted {
			expected += pr.XPReward
		}
	}
	drift := expected - p.XP
	if drift > 0 {
		p.XP = expected
	}
	return drift
}

type Repository interface {
	GetByOwnerID(ctx context.Context, ownerID uuid.UUID) (*Profile, error)
	Upsert(ctx context.Context, p *Profile) error
}
