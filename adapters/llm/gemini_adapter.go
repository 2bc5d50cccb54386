package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/darshil-dcis/career-copilot-api/internal/application/service"
	"github.com/darshil-dcis/career-copilot-api/internal/config"
	"github.com/darshil-dcis/career-copilot-api/internal/domain/profile"
	"github.com/darshil-dcis/career-copilot-api/internal/domain/session"
	"github.com/darshil-dcis/career-copilot-api/pkg/logger"
)

type geminiAdapter struct {
	client *genai.Client
	model  string
	log    logger.Logger
}

// NewGeminiAdapter creates the LLM gateway backed by the Gemini API.
func NewGeminiAdapter(ctx context.Context, cfg config.Config, log logger.Logger) (service.LLMService, error) {
	apiKey := strings.TrimSpace(cfg.Gemini.APIKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is not configured")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	log.Info("Gemini (LLM) Adapter initialized", zap.String("model", cfg.Gemini.Model))
	return &geminiAdapter{client: client, model: cfg.Gemini.Model, log: log}, nil
}

// generateJSON runs a schema-constrained generation and returns the raw body.
func (a *geminiAdapter) generateJSON(ctx context.Context, prompt string, schema *genai.Schema) (string, error) {
	cfg := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   schema,
	}
	return a.generate(ctx, prompt, cfg)
}

func (a *geminiAdapter) generate(ctx context.Context, prompt string, cfg *genai.GenerateContentConfig) (string, error) {
	resp, err := a.client.Models.GenerateContent(ctx, a.model, genai.Text(prompt), cfg)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil {
				continue
			}
			text := strings.TrimSpace(part.Text)
			if text == "" {
				continue
			}
			if builder.Len() > 0 {
				builder.WriteString("\n")
			}
			builder.WriteString(text)
		}
	}

	output := strings.TrimSpace(builder.String())
	if output == "" {
		return "", errors.New("gemini api returned empty response")
	}
	return output, nil
}

func (a *geminiAdapter) GenerateCareerPlan(ctx context.Context, background, targetRole string) (*service.CareerPlan, error) {
	raw, err := a.generateJSON(ctx, careerPlanPrompt(background, targetRole), careerPlanSchema)
	if err != nil {
		return nil, err
	}

	var payload careerPlanPayload
	if err := decodeStrict(raw, &payload); err != nil {
		return nil, err
	}

	skills, err := skillsToDomain(payload.Skills)
	if err != nil {
		return nil, err
	}
	projects, err := projectsToDomain(payload.Projects)
	if err != nil {
		return nil, err
	}

	return &service.CareerPlan{
		Skills:   skills,
		Roadmap:  stepsToDomain(payload.Roadmap),
		Projects: projects,
	}, nil
}

func (a *geminiAdapter) GenerateRoadmap(ctx context.Context, p *profile.Profile) ([]profile.RoadmapStep, error) {
	raw, err := a.generateJSON(ctx, roadmapPrompt(p), roadmapSchema)
	if err != nil {
		return nil, err
	}

	var payload roadmapPayload
	if err := decodeStrict(raw, &payload); err != nil {
		return nil, err
	}
	if len(payload.Roadmap) == 0 {
		return nil, fmt.Errorf("%w: empty roadmap", ErrMalformedResponse)
	}
	return stepsToDomain(payload.Roadmap), nil
}

func (a *geminiAdapter) GenerateProjects(ctx context.Context, p *profile.Profile) ([]profile.Project, error) {
	raw, err := a.generateJSON(ctx, projectsPrompt(p), projectsSchema)
	if err != nil {
		return nil, err
	}

	var payload projectsPayload
	if err := decodeStrict(raw, &payload); err != nil {
		return nil, err
	}
	if len(payload.Projects) == 0 {
		return nil, fmt.Errorf("%w: empty project list", ErrMalformedResponse)
	}
	return projectsToDomain(payload.Projects)
}

// GenerateTrends is grounded with the GoogleSearch tool. Tool use cannot be
// combined with a response schema, so the JSON body is extracted from the
// text response and parsed strictly.
func (a *geminiAdapter) GenerateTrends(ctx context.Context, targetRole string) ([]profile.Trend, error) {
	cfg := &genai.GenerateContentConfig{
		Tools: []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}},
	}
	raw, err := a.generate(ctx, trendsPrompt(targetRole), cfg)
	if err != nil {
		return nil, err
	}

	var payload struct {
		Trends []trendPayload `json:"trends"`
	}
	if err := decodeStrict(raw, &payload); err != nil {
		return nil, err
	}
	if len(payload.Trends) == 0 {
		return nil, fmt.Errorf("%w: empty trend list", ErrMalformedResponse)
	}

	trends := make([]profile.Trend, 0, len(payload.Trends))
	for _, t := range payload.Trends {
		trends = append(trends, profile.Trend{Title: t.Title, Summary: t.Summary, Source: t.Source})
	}
	return trends, nil
}

func (a *geminiAdapter) GenerateChatReply(ctx context.Context, p *profile.Profile, history []session.Message, message string) (string, error) {
	return a.generate(ctx, chatPrompt(p, history, message), nil)
}

func (a *geminiAdapter) GenerateInterviewQuestion(ctx context.Context, targetRole string, history []session.Message) (string, error) {
	return a.generate(ctx, interviewQuestionPrompt(targetRole, history), nil)
}

func (a *geminiAdapter) EvaluateInterview(ctx context.Context, targetRole string, history []session.Message) (*service.InterviewFeedback, error) {
	raw, err := a.generateJSON(ctx, interviewFeedbackPrompt(targetRole, history), interviewFeedbackSchema)
	if err != nil {
		return nil, err
	}

	var payload interviewFeedbackPayload
	if err := decodeStrict(raw, &payload); err != nil {
		return nil, err
	}
	if payload.Score < 0 || payload.Score > 100 {
		return nil, fmt.Errorf("%w: score %d out of range", ErrMalformedResponse, payload.Score)
	}
	return &service.InterviewFeedback{
		Score:        payload.Score,
		Strengths:    payload.Strengths,
		Improvements: payload.Improvements,
		Summary:      payload.Summary,
	}, nil
}

func (a *geminiAdapter) GenerateQuiz(ctx context.Context, skill string, numQuestions int) (*service.Quiz, error) {
	raw, err := a.generateJSON(ctx, quizPrompt(skill, numQuestions), quizSchema)
	if err != nil {
		return nil, err
	}

	var payload quizPayload
	if err := decodeStrict(raw, &payload); err != nil {
		return nil, err
	}
	if len(payload.Questions) == 0 {
		return nil, fmt.Errorf("%w: empty quiz", ErrMalformedResponse)
	}

	questions := make([]service.QuizQuestion, 0, len(payload.Questions))
	for _, q := range payload.Questions {
		if q.Answer < 0 || q.Answer >= len(q.Options) {
			return nil, fmt.Errorf("%w: answer index %d out of range", ErrMalformedResponse, q.Answer)
		}
		questions = append(questions, service.QuizQuestion{
			Prompt:  q.Prompt,
			Options: q.Options,
			Answer:  q.Answer,
		})
	}
	return &service.Quiz{Skill: skill, Questions: questions}, nil
}

func (a *geminiAdapter) ReviewResume(ctx context.Context, targetRole, resumeText string) (*service.ResumeReview, error) {
	raw, err := a.generateJSON(ctx, resumeReviewPrompt(targetRole, resumeText), resumeReviewSchema)
	if err != nil {
		return nil, err
	}

	var payload resumeReviewPayload
	if err := decodeStrict(raw, &payload); err != nil {
		return nil, err
	}
	if payload.Score < 0 || payload.Score > 100 {
		return nil, fmt.Errorf("%w: score %d out of range", ErrMalformedResponse, payload.Score)
	}
	return &service.ResumeReview{
		Score:       payload.Score,
		Strengths:   payload.Strengths,
		Gaps:        payload.Gaps,
		Suggestions: payload.Suggestions,
		Summary:     payload.Summary,
	}, nil
}
