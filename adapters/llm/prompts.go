package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/darshil-dcis/career-copilot-api/internal/domain/profile"
	"github.com/darshil-dcis/career-copilot-api/internal/domain/session"
)

const mentorPersona = "You are an experienced, encouraging career mentor. " +
	"Be concise and concrete. Base advice only on the provided context."

// profileContext serializes the parts of the aggregate the model needs.
// Achievements and xp are omitted: they are derived state, not input.
func profileContext(p *profile.Profile) string {
	ctx := map[string]any{
		"name":        p.Name,
		"target_role": p.TargetRole,
		"skills":      p.Skills,
		"roadmap":     p.Roadmap,
		"projects":    p.Projects,
	}
	b, err := json.Marshal(ctx)
	if err != nil {
		return fmt.Sprintf("target role: %s", p.TargetRole)
	}
	return string(b)
}

func transcriptBlock(history []session.Message) string {
	var b strings.Builder
	for _, m := range history {
		b.WriteString(m.Role)
		b.WriteString(": ")
		b.WriteString(m.Content)
		b.WriteString("\n")
	}
	return b.String()
}

func careerPlanPrompt(background, targetRole string) string {
	return fmt.Sprintf(`%s

A user wants to become a %s. Their background, in their own words:

%s

Produce a skill map, a learning roadmap and project suggestions for this user.
Mark skills the target role requires but the user lacks with "is_gap": true.
Roadmap steps must be ordered phases with a duration label like "2 weeks".
Suggest 3 to 5 projects with xp_reward between 100 and 500, scaled by difficulty.`,
		mentorPersona, targetRole, background)
}

func roadmapPrompt(p *profile.Profile) string {
	return fmt.Sprintf(`%s

Generate a fresh learning roadmap for the target role %q.

User profile:
%s`, mentorPersona, p.TargetRole, profileContext(p))
}

func projectsPrompt(p *profile.Profile) string {
	return fmt.Sprintf(`%s

Suggest 3 to 5 portfolio projects for the target role %q, with xp_reward
between 100 and 500 scaled by difficulty.

User profile:
%s`, mentorPersona, p.TargetRole, profileContext(p))
}

func trendsPrompt(targetRole string) string {
	return fmt.Sprintf(`Search the web for current industry trends relevant to a %s.

Return ONLY a JSON object of the form
{"trends": [{"title": string, "summary": string, "source": string}]}
with 3 to 6 entries. No markdown, no text outside the JSON.`, targetRole)
}

func chatPrompt(p *profile.Profile, history []session.Message, message string) string {
	return fmt.Sprintf(`%s

User profile:
%s

Conversation so far:
%s
user: %s

Reply as the mentor. Plain text, no JSON.`,
		mentorPersona, profileContext(p), transcriptBlock(history), message)
}

func interviewQuestionPrompt(targetRole string, history []session.Message) string {
	if len(history) == 0 {
		return fmt.Sprintf(`You are a professional interviewer for a %s position.
Ask one strong opening interview question. Return only the question text.`, targetRole)
	}
	return fmt.Sprintf(`You are a professional interviewer for a %s position.

Interview so far:
%s
Ask the next question, building on the candidate's answers. Return only the
question text.`, targetRole, transcriptBlock(history))
}

func interviewFeedbackPrompt(targetRole string, history []session.Message) string {
	return fmt.Sprintf(`You are a professional interviewer for a %s position.
The interview is over. Score the candidate from 0 to 100 and give feedback.

Transcript:
%s`, targetRole, transcriptBlock(history))
}

func quizPrompt(skill string, numQuestions int) string {
	return fmt.Sprintf(`Write a multiple-choice quiz with %d questions testing
practical knowledge of %s. Each question has exactly 4 options; "answer" is
the zero-based index of the correct option.`, numQuestions, skill)
}

func resumeReviewPrompt(targetRole, resumeText string) string {
	return fmt.Sprintf(`You are an expert resume reviewer. The candidate targets
a %s role. Score the resume from 0 to 100 and list strengths, gaps relative
to the target role, and concrete rewrite suggestions. Base all reasoning
only on the resume text; do not invent experience.

Resume:
%s`, targetRole, resumeText)
}
