package llm

import (
	"fmt"

	"github.com/google/uuid"
	"google.golang.org/genai"

	"github.com/darshil-dcis/career-copilot-api/internal/domain/profile"
)

// Schema helpers keep the table below readable.

func objSchema(props map[string]*genai.Schema, required ...string) *genai.Schema {
	return &genai.Schema{Type: genai.TypeObject, Properties: props, Required: required}
}

func arrSchema(item *genai.Schema) *genai.Schema {
	return &genai.Schema{Type: genai.TypeArray, Items: item}
}

func strSchema() *genai.Schema {
	return &genai.Schema{Type: genai.TypeString}
}

func enumSchema(values ...string) *genai.Schema {
	return &genai.Schema{Type: genai.TypeString, Enum: values}
}

func intSchema() *genai.Schema {
	return &genai.Schema{Type: genai.TypeInteger}
}

func boolSchema() *genai.Schema {
	return &genai.Schema{Type: genai.TypeBoolean}
}

var skillSchema = objSchema(map[string]*genai.Schema{
	"name":        strSchema(),
	"proficiency": enumSchema("Beginner", "Intermediate", "Advanced", "Expert"),
	"category":    strSchema(),
	"is_gap":      boolSchema(),
}, "name", "proficiency", "category", "is_gap")

var stepSchema = objSchema(map[string]*genai.Schema{
	"title":             strSchema(),
	"duration":          strSchema(),
	"skills_to_learn":   arrSchema(strSchema()),
	"resources":         arrSchema(strSchema()),
	"milestone_project": strSchema(),
}, "title", "duration", "skills_to_learn", "resources", "milestone_project")

var projectSchema = objSchema(map[string]*genai.Schema{
	"title":           strSchema(),
	"description":     strSchema(),
	"required_skills": arrSchema(strSchema()),
	"difficulty":      enumSchema("Easy", "Medium", "Hard"),
	"xp_reward":       intSchema(),
	"steps":           arrSchema(strSchema()),
}, "title", "description", "required_skills", "difficulty", "xp_reward")

var careerPlanSchema = objSchema(map[string]*genai.Schema{
	"skills":   arrSchema(skillSchema),
	"roadmap":  arrSchema(stepSchema),
	"projects": arrSchema(projectSchema),
}, "skills", "roadmap", "projects")

var roadmapSchema = objSchema(map[string]*genai.Schema{
	"roadmap": arrSchema(stepSchema),
}, "roadmap")

var projectsSchema = objSchema(map[string]*genai.Schema{
	"projects": arrSchema(projectSchema),
}, "projects")

var interviewFeedbackSchema = objSchema(map[string]*genai.Schema{
	"score":        intSchema(),
	"strengths":    arrSchema(strSchema()),
	"improvements": arrSchema(strSchema()),
	"summary":      strSchema(),
}, "score", "strengths", "improvements", "summary")

var quizSchema = objSchema(map[string]*genai.Schema{
	"questions": arrSchema(objSchema(map[string]*genai.Schema{
		"prompt":  strSchema(),
		"options": arrSchema(strSchema()),
		"answer":  intSchema(),
	}, "prompt", "options", "answer")),
}, "questions")

var resumeReviewSchema = objSchema(map[string]*genai.Schema{
	"score":       intSchema(),
	"strengths":   arrSchema(strSchema()),
	"gaps":        arrSchema(strSchema()),
	"suggestions": arrSchema(strSchema()),
	"summary":     strSchema(),
}, "score", "strengths", "gaps", "suggestions", "summary")

// Wire payloads. Kept separate from domain types so enum validation happens
// in one place before anything crosses the boundary.

type skillPayload struct {
	Name        string `json:"name"`
	Proficiency string `json:"proficiency"`
	Category    string `json:"category"`
	IsGap       bool   `json:"is_gap"`
}

type stepPayload struct {
	Title            string   `json:"title"`
	Duration         string   `json:"duration"`
	SkillsToLearn    []string `json:"skills_to_learn"`
	Resources        []string `json:"resources"`
	MilestoneProject string   `json:"milestone_project"`
}

type projectPayload struct {
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	RequiredSkills []string `json:"required_skills"`
	Difficulty     string   `json:"difficulty"`
	XPReward       int      `json:"xp_reward"`
	Steps          []string `json:"steps,omitempty"`
}

type careerPlanPayload struct {
	Skills   []skillPayload   `json:"skills"`
	Roadmap  []stepPayload    `json:"roadmap"`
	Projects []projectPayload `json:"projects"`
}

type roadmapPayload struct {
	Roadmap []stepPayload `json:"roadmap"`
}

type projectsPayload struct {
	Projects []projectPayload `json:"projects"`
}

type trendPayload struct {
	Title   string `json:"title"`
	Summary string `json:"summary"`
	Source  string `json:"source,omitempty"`
}

type interviewFeedbackPayload struct {
	Score        int      `json:"score"`
	Strengths    []string `json:"strengths"`
	Improvements []string `json:"improvements"`
	Summary      string   `json:"summary"`
}

type quizQuestionPayload struct {
	Prompt  string   `json:"prompt"`
	Options []string `json:"options"`
	Answer  int      `json:"answer"`
}

type quizPayload struct {
	Questions []quizQuestionPayload `json:"questions"`
}

type resumeReviewPayload struct {
	Score       int      `json:"score"`
	Strengths   []string `json:"strengths"`
	Gaps        []string `json:"gaps"`
	Suggestions []string `json:"suggestions"`
	Summary     string   `json:"summary"`
}

func (s skillPayload) toDomain() (profile.Skill, error) {
	switch profile.Proficiency(s.Proficiency) {
	case profile.ProficiencyBeginner, profile.ProficiencyIntermediate,
		profile.ProficiencyAdvanced, profile.ProficiencyExpert:
	default:
		return profile.Skill{}, fmt.Errorf("%w: unknown proficiency %q", ErrMalformedResponse, s.Proficiency)
	}
	return profile.Skill{
		Name:        s.Name,
		Proficiency: profile.Proficiency(s.Proficiency),
		Category:    s.Category,
		IsGap:       s.IsGap,
	}, nil
}

func (s stepPayload) toDomain() profile.RoadmapStep {
	return profile.RoadmapStep{
		Title:            s.Title,
		Duration:         s.Duration,
		SkillsToLearn:    s.SkillsToLearn,
		Resources:        s.Resources,
		MilestoneProject: s.MilestoneProject,
		Completed:        false,
	}
}

func (p projectPayload) toDomain() (profile.Project, error) {
	switch profile.Difficulty(p.Difficulty) {
	case profile.DifficultyEasy, profile.DifficultyMedium, profile.DifficultyHard:
	default:
		return profile.Project{}, fmt.Errorf("%w: unknown difficulty %q", ErrMalformedResponse, p.Difficulty)
	}
	xp := p.XPReward
	if xp <= 0 {
		return profile.Project{}, fmt.Errorf("%w: non-positive xp reward %d", ErrMalformedResponse, xp)
	}
	return profile.Project{
		ID:             uuid.New(),
		Title:          p.Title,
		Description:    p.Description,
		RequiredSkills: p.RequiredSkills,
		Difficulty:     profile.Difficulty(p.Difficulty),
		XPReward:       xp,
		Status:         profile.StatusNotStarted,
		Steps:          p.Steps,
	}, nil
}

func skillsToDomain(in []skillPayload) ([]profile.Skill, error) {
	out := make([]profile.Skill, 0, len(in))
	for _, s := range in {
		skill, err := s.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, skill)
	}
	return out, nil
}

func stepsToDomain(in []stepPayload) []profile.RoadmapStep {
	out := make([]profile.RoadmapStep, 0, len(in))
	for _, s := range in {
		out = append(out, s.toDomain())
	}
	return out
}

func projectsToDomain(in []projectPayload) ([]profile.Project, error) {
	out := make([]profile.Project, 0, len(in))
	for _, p := range in {
		pr, err := p.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, pr)
	}
	return out, nil
}
