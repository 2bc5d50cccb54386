package service

import (
	"context"

	"github.com/darshil-dcis/career-copilot-api/internal/domain/profile"
	"github.com/darshil-dcis/career-copilot-api/internal/domain/session"
)

// CareerPlan is the structured output of the onboarding generation call.
type CareerPlan struct {
	Skills   []profile.Skill
	Roadmap  []profile.RoadmapStep
	Projects []profile.Project
}

type InterviewFeedback struct {
	Score        int
	Strengths    []string
	Improvements []string
	Summary      string
}

type QuizQuestion struct {
	Prompt  string
	Options []string
	// Answer indexes into Options.
	Answer int
}

type Quiz struct {
	Skill     string
	Questions []QuizQuestion
}

type ResumeReview struct {
	Score       int
	Strengths   []string
	Gaps        []string
	Suggestions []string
	Summary     string
}

// LLMService is the gateway to the generative model. Every method either
// returns a fully validated, typed result or an error; callers never see
// raw model output.
type LLMService interface {
	GenerateCareerPlan(ctx context.Context, background, targetRole string) (*CareerPlan, error)
	GenerateRoadmap(ctx context.Context, p *profile.Profile) ([]profile.RoadmapStep, error)
	GenerateProjects(ctx context.Context, p *profile.Profile) ([]profile.Project, error)
	// GenerateTrends is grounded with web search.
	GenerateTrends(ctx context.Context, targetRole string) ([]profile.Trend, error)
	GenerateChatReply(ctx context.Context, p *profile.Profile, history []session.Message, message string) (string, error)
	GenerateInterviewQuestion(ctx context.Context, targetRole string, history []session.Message) (string, error)
	EvaluateInterview(ctx context.Context, targetRole string, history []session.Message) (*InterviewFeedback, error)
	GenerateQuiz(ctx context.Context, skill string, numQuestions int) (*Quiz, error)
	ReviewResume(ctx context.Context, targetRole, resumeText string) (*ResumeReview, error)
}
