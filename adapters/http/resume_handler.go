package http

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/darshil-dcis/career-copilot-api/internal/application/usecase/resume"
	"github.com/darshil-dcis/career-copilot-api/pkg/apperror"
)

// Uploaded resumes larger than this are rejected outright.
const maxResumeUploadBytes = 10 << 20

type ResumeHandler struct {
	reviewUseCase *resume.ReviewResumeUseCase
}

func NewResumeHandler(uc *resume.ReviewResumeUseCase) *ResumeHandler {
	return &ResumeHandler{reviewUseCase: uc}
}

type reviewResumeRequest struct {
	Text string `json:"text" binding:"required"`
}

// Review accepts either a JSON body with the resume text or a multipart
// form with a "file" PDF upload.
func (h *ResumeHandler) Review(c *gin.Context) {
	ownerID, ok := GetOwnerIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("ownerID not found in context"))
		return
	}

	input := resume.ReviewInput{OwnerID: ownerID}

	contentType := c.GetHeader("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") {
		fileHeader, err := c.FormFile("file")
		if err != nil {
			c.Error(apperror.NewInvalidInput("a resume file upload is required", err))
			return
		}
		if fileHeader.Size > maxResumeUploadBytes {
			c.Error(apperror.NewInvalidInput("resume file is too large", nil))
			return
		}
		f, err := fileHeader.Open()
		if err != nil {
			c.Error(apperror.NewInvalidInput("could not read uploaded file", err))
			return
		}
		defer f.Close()
		data, err := io.ReadAll(io.LimitReader(f, maxResumeUploadBytes))
		if err != nil {
			c.Error(apperror.NewInvalidInput("could not read uploaded file", err))
			return
		}
		input.PDF = data
	} else {
		var req reviewResumeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.Error(apperror.NewInvalidInput("invalid JSON body for resume review", err))
			return
		}
		input.Text = req.Text
	}

	output, err := h.reviewUseCase.Execute(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, ToResumeReviewDTO(output.Review))
}
