package profile

import "time"

// Rule is one achievement trigger. Predicates read the aggregate only; they
// must not mutate it.
type Rule struct {
	ID          string
	Name        string
	Description string
	Predicate   func(p *Profile) bool
}

// Rules is the full trigger table. Rules are independent of each other and
// order does not matter. Ratio rules guard against empty roadmaps and
// project lists so nothing is awarded vacuously.
var Rules = []Rule{
	{
		ID:          "PROJECT_STARTER",
		Name:        "Project Starter",
		Description: "Start your first project",
		Predicate: func(p *Profile) bool {
			for _, pr := range p.Projects {
				if pr.Status != StatusNotStarted {
					return true
				}
			}
			return false
		},
	},
	{
		ID:          "PROJECT_FINISHER",
		Name:        "Project Finisher",
		Description: "Complete a project",
		Predicate: func(p *Profile) bool {
			return p.CompletedProjects() >= 1
		},
	},
	{
		ID:          "TRIPLE_THREAT",
		Name:        "Triple Threat",
		Description: "Complete three projects",
		Predicate: func(p *Profile) bool {
			return p.CompletedProjects() >= 3
		},
	},
	{
		ID:          "HARD_MODE",
		Name:        "Hard Mode",
		Description: "Complete a hard project",
		Predicate: func(p *Profile) bool {
			for _, pr := range p.Projects {
				if pr.Status == StatusCompleted && pr.Difficulty == DifficultyHard {
					return true
				}
			}
			return false
		},
	},
	{
		ID:          "FIRST_STEP",
		Name:        "First Step",
		Description: "Complete a roadmap step",
		Predicate: func(p *Profile) bool {
			return p.CompletedSteps() >= 1
		},
	},
	{
		ID:          "HALFWAY_THERE",
		Name:        "Halfway There",
		Description: "Complete half of your roadmap",
		Predicate: func(p *Profile) bool {
			total := len(p.Roadmap)
			return total > 0 && p.CompletedSteps()*2 >= total
		},
	},
	{
		ID:          "ROADMAP_COMPLETE",
		Name:        "Roadmap Complete",
		Description: "Complete every roadmap step",
		Predicate: func(p *Profile) bool {
			total := len(p.Roadmap)
			return total > 0 && p.CompletedSteps() == total
		},
	},
	{
		ID:          "SKILL_COLLECTOR",
		Name:        "Skill Collector",
		Description: "Track ten or more skills",
		Predicate: func(p *Profile) bool {
			return len(p.Skills) >= 10
		},
	},
	{
		ID:          "EXPERT_DEVELOPER",
		Name:        "Expert Developer",
		Description: "Reach expert proficiency in a skill",
		Predicate: func(p *Profile) bool {
			for _, s := range p.Skills {
				if s.Proficiency == ProficiencyExpert {
					return true
				}
			}
			return false
		},
	},
	{
		ID:          "ADVANCED_PRACTITIONER",
		Name:        "Advanced Practitioner",
		Description: "Reach advanced proficiency in five skills",
		Predicate: func(p *Profile) bool {
			n := 0
			for _, s := range p.Skills {
				if s.Proficiency == ProficiencyAdvanced {
					n++
				}
			}
			return n >= 5
		},
	},
	{
		ID:          "STREAK_KEEPER",
		Name:        "Streak Keeper",
		Description: "Keep a seven day streak",
		Predicate: func(p *Profile) bool {
			return p.Streak >= 7
		},
	},
}

// EvaluateAchievements returns the profile's achievement set extended with
// every rule whose predicate currently holds. Already-awarded achievements
// are carried over unchanged, even when their condition no longer holds;
// the set only grows. The function is pure: it never mutates the profile
// and calling it twice on the same snapshot yields the same set.
func EvaluateAchievements(p *Profile, now time.Time) []Achievement {
	awarded := make([]Achievement, len(p.Achievements))
	copy(awarded, p.Achievements)

	have := make(map[string]bool, len(awarded))
	for _, a := range awarded {
		have[a.ID] = true
	}

	for _, rule := range Rules {
		if have[rule.ID] || !rule.Predicate(p) {
			continue
		}
		awarded = append(awarded, Achievement{
			ID:          rule.ID,
			Name:        rule.Name,
			Description: rule.Description,
			AwardedAt:   now,
		})
		have[rule.ID] = true
	}

	return awarded
}
