package resume

import (
	"bytes"
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/ledongthuc/pdf"

	"github.com/darshil-dcis/career-copilot-api/internal/application/service"
	"github.com/darshil-dcis/career-copilot-api/internal/domain/profile"
	"github.com/darshil-dcis/career-copilot-api/pkg/apperror"
	"github.com/darshil-dcis/career-copilot-api/pkg/logger"
)

// Resumes longer than this are cut before prompting; anything past it is
// boilerplate in practice.
const maxResumeChars = 30000

type ReviewResumeUseCase struct {
	llm         service.LLMService
	profileRepo profile.Repository
	logger      logger.Logger
}

func NewReviewResumeUseCase(llm service.LLMService, pr profile.Repository, log logger.Logger) *ReviewResumeUseCase {
	return &ReviewResumeUseCase{llm: llm, profileRepo: pr, logger: log}
}

type ReviewInput struct {
	OwnerID uuid.UUID
	// Text is the resume body. Either Text or PDF must be set.
	Text string
	// PDF is a raw uploaded file; text is extracted server-side.
	PDF []byte
}

type ReviewOutput struct {
	Review *service.ResumeReview
}

func (uc *ReviewResumeUseCase) Execute(ctx context.Context, input ReviewInput) (*ReviewOutput, error) {
	text := strings.TrimSpace(input.Text)
	if text == "" && len(input.PDF) > 0 {
		extracted, err := extractPDFText(input.PDF)
		if err != nil {
			return nil, apperror.NewInvalidInput("could not extract text from PDF", err)
		}
		text = strings.TrimSpace(extracted)
	}
	if text == "" {
		return nil, apperror.NewInvalidInput("resume text or a PDF upload is required", nil)
	}
	if len(text) > maxResumeChars {
		text = text[:maxResumeChars]
	}

	p, err := uc.profileRepo.GetByOwnerID(ctx, input.OwnerID)
	if err != nil {
		return nil, err
	}

	review, err := uc.llm.ReviewResume(ctx, p.TargetRole, text)
	if err != nil {
		return nil, apperror.NewBadGateway("failed to review resume", err)
	}

	return &ReviewOutput{Review: review}, nil
}

func extractPDFText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		b.WriteString(content)
		b.WriteString("\n")
	}
	return b.String(), nil
}
