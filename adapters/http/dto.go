package http

import (
	"time"

	"github.com/google/uuid"

	"github.com/darshil-dcis/career-copilot-api/internal/application/service"
	"github.com/darshil-dcis/career-copilot-api/internal/domain/profile"
	"github.com/darshil-dcis/career-copilot-api/internal/domain/session"
)

// Profile DTOs

type SkillDTO struct {
	Name        string `json:"name"`
	Proficiency string `json:"proficiency"`
	Category    string `json:"category"`
	IsGap       bool   `json:"is_gap"`
}

type RoadmapStepDTO struct {
	Title            string   `json:"title"`
	Duration         string   `json:"duration"`
	SkillsToLearn    []string `json:"skills_to_learn"`
	Resources        []string `json:"resources"`
	MilestoneProject string   `json:"milestone_project"`
	Completed        bool     `json:"completed"`
}

type ProjectDTO struct {
	ID             uuid.UUID `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	RequiredSkills []string  `json:"required_skills"`
	Difficulty     string    `json:"difficulty"`
	XPReward       int       `json:"xp_reward"`
	Status         string    `json:"status"`
	Steps          []string  `json:"steps,omitempty"`
	Notes          string    `json:"notes,omitempty"`
}

type AchievementDTO struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	AwardedAt   time.Time `json:"awarded_at"`
}

type TrendDTO struct {
	Title   string `json:"title"`
	Summary string `json:"summary"`
	Source  string `json:"source,omitempty"`
}

type ProfileDTO struct {
	Name         string           `json:"name"`
	TargetRole   string           `json:"target_role"`
	Bio          string           `json:"bio"`
	Location     string           `json:"location"`
	XP           int              `json:"xp"`
	Level        int              `json:"level"`
	Streak       int              `json:"streak"`
	Skills       []SkillDTO       `json:"skills"`
	Roadmap      []RoadmapStepDTO `json:"roadmap"`
	Projects     []ProjectDTO     `json:"projects"`
	Achievements []AchievementDTO `json:"achievements"`
	Trends       []TrendDTO       `json:"trends"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

func ToProfileDTO(p *profile.Profile) ProfileDTO {
	dto := ProfileDTO{
		Name:       p.Name,
		TargetRole: p.TargetRole,
		Bio:        p.Bio,
		Location:   p.Location,
		XP:         p.XP,
		Level:      p.Level(),
		Streak:     p.Streak,
		UpdatedAt:  p.UpdatedAt,
	}
	dto.Skills = make([]SkillDTO, len(p.Skills))
	for i, s := range p.Skills {
		dto.Skills[i] = SkillDTO{
			Name:        s.Name,
			Proficiency: string(s.Proficiency),
			Category:    s.Category,
			IsGap:       s.IsGap,
		}
	}
	dto.Roadmap = make([]RoadmapStepDTO, len(p.Roadmap))
	for i, s := range p.Roadmap {
		dto.Roadmap[i] = RoadmapStepDTO{
			Title:            s.Title,
			Duration:         s.Duration,
			SkillsToLearn:    s.SkillsToLearn,
			Resources:        s.Resources,
			MilestoneProject: s.MilestoneProject,
			Completed:        s.Completed,
		}
	}
	dto.Projects = make([]ProjectDTO, len(p.Projects))
	for i, pr := range p.Projects {
		dto.Projects[i] = ProjectDTO{
			ID:             pr.ID,
			Title:          pr.Title,
			Description:    pr.Description,
			RequiredSkills: pr.RequiredSkills,
			Difficulty:     string(pr.Difficulty),
			XPReward:       pr.XPReward,
			Status:         string(pr.Status),
			Steps:          pr.Steps,
			Notes:          pr.Notes,
		}
	}
	dto.Achievements = make([]AchievementDTO, len(p.Achievements))
	for i, a := range p.Achievements {
		dto.Achievements[i] = AchievementDTO{
			ID:          a.ID,
			Name:        a.Name,
			Description: a.Description,
			AwardedAt:   a.AwardedAt,
		}
	}
	dto.Trends = make([]TrendDTO, len(p.Trends))
	for i, t := range p.Trends {
		dto.Trends[i] = TrendDTO{Title: t.Title, Summary: t.Summary, Source: t.Source}
	}
	return dto
}

type UpdateProfileRequest struct {
	Name              *string `json:"name"`
	TargetRole        *string `json:"target_role"`
	Bio               *string `json:"bio"`
	Location          *string `json:"location"`
	Streak            *int    `json:"streak"`
	ConfirmRoleChange bool    `json:"confirm_role_change"`
}

type OnboardingRequest struct {
	Name       string `json:"name"`
	TargetRole string `json:"target_role" binding:"required"`
	Background string `json:"background" binding:"required"`
	Bio        string `json:"bio"`
	Location   string `json:"location"`
}

// Session DTOs

type MessageDTO struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type SessionDTO struct {
	ID        uuid.UUID    `json:"id"`
	Kind      string       `json:"kind"`
	Messages  []MessageDTO `json:"messages"`
	Summary   string       `json:"summary,omitempty"`
	Score     *int         `json:"score,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
}

func ToSessionDTO(s *session.Session) SessionDTO {
	dto := SessionDTO{
		ID:        s.ID,
		Kind:      string(s.Kind),
		Summary:   s.Summary,
		Score:     s.Score,
		CreatedAt: s.CreatedAt,
	}
	dto.Messages = make([]MessageDTO, len(s.Messages))
	for i, m := range s.Messages {
		dto.Messages[i] = MessageDTO{Role: m.Role, Content: m.Content}
	}
	return dto
}

func toMessageDTOs(msgs []session.Message) []MessageDTO {
	out := make([]MessageDTO, len(msgs))
	for i, m := range msgs {
		out[i] = MessageDTO{Role: m.Role, Content: m.Content}
	}
	return out
}

// Quiz DTOs

type QuizQuestionDTO struct {
	Prompt  string   `json:"prompt"`
	Options []string `json:"options"`
	Answer  int      `json:"answer"`
}

type QuizDTO struct {
	Skill     string            `json:"skill"`
	Questions []QuizQuestionDTO `json:"questions"`
}

func ToQuizDTO(q *service.Quiz) QuizDTO {
	dto := QuizDTO{Skill: q.Skill}
	dto.Questions = make([]QuizQuestionDTO, len(q.Questions))
	for i, qq := range q.Questions {
		dto.Questions[i] = QuizQuestionDTO{Prompt: qq.Prompt, Options: qq.Options, Answer: qq.Answer}
	}
	return dto
}

type SubmitQuizRequest struct {
	Quiz    QuizDTO `json:"quiz" binding:"required"`
	Answers []int   `json:"answers" binding:"required"`
}

func (r *SubmitQuizRequest) ToDomainQuiz() *service.Quiz {
	q := &service.Quiz{Skill: r.Quiz.Skill}
	q.Questions = make([]service.QuizQuestion, len(r.Quiz.Questions))
	for i, qq := range r.Quiz.Questions {
		q.Questions[i] = service.QuizQuestion{Prompt: qq.Prompt, Options: qq.Options, Answer: qq.Answer}
	}
	return q
}

// Interview / resume DTOs

type InterviewFeedbackDTO struct {
	Score        int      `json:"score"`
	Strengths    []string `json:"strengths"`
	Improvements []string `json:"improvements"`
	Summary      string   `json:"summary"`
}

func ToInterviewFeedbackDTO(f *service.InterviewFeedback) InterviewFeedbackDTO {
	return InterviewFeedbackDTO{
		Score:        f.Score,
		Strengths:    f.Strengths,
		Improvements: f.Improvements,
		Summary:      f.Summary,
	}
}

type ResumeReviewDTO struct {
	Score       int      `json:"score"`
	Strengths   []string `json:"strengths"`
	Gaps        []string `json:"gaps"`
	Suggestions []string `json:"suggestions"`
	Summary     string   `json:"summary"`
}

func ToResumeReviewDTO(r *service.ResumeReview) ResumeReviewDTO {
	return ResumeReviewDTO{
		Score:       r.Score,
		Strengths:   r.Strengths,
		Gaps:        r.Gaps,
		Suggestions: r.Suggestions,
		Summary:     r.Summary,
	}
}
