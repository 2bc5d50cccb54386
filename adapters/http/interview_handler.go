package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/darshil-dcis/career-copilot-api/internal/application/usecase/interview"
	"github.com/darshil-dcis/career-copilot-api/pkg/apperror"
)

type InterviewHandler struct {
	interviewUseCase *interview.InterviewUseCase
}

func NewInterviewHandler(uc *interview.InterviewUseCase) *InterviewHandler {
	return &InterviewHandler{interviewUseCase: uc}
}

func (h *InterviewHandler) Start(c *gin.Context) {
	ownerID, ok := GetOwnerIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("ownerID not found in context"))
		return
	}

	output, err := h.interviewUseCase.Start(c.Request.Context(), interview.StartInput{OwnerID: ownerID})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"question": output.Question})
}

type interviewReplyRequest struct {
	Answer string `json:"answer" binding:"required"`
}

func (h *InterviewHandler) Reply(c *gin.Context) {
	ownerID, ok := GetOwnerIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("ownerID not found in context"))
		return
	}

	var req interviewReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for interview reply", err))
		return
	}

	output, err := h.interviewUseCase.Reply(c.Request.Context(), interview.ReplyInput{
		OwnerID: ownerID,
		Answer:  req.Answer,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"question": output.Question})
}

func (h *InterviewHandler) Finish(c *gin.Context) {
	ownerID, ok := GetOwnerIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("ownerID not found in context"))
		return
	}

	output, err := h.interviewUseCase.Finish(c.Request.Context(), interview.FinishInput{OwnerID: ownerID})
	if err != nil {
		c.Error(err)
		return
	}

	resp := gin.H{"recorded": output.Recorded}
	if output.Feedback != nil {
		resp["feedback"] = ToInterviewFeedbackDTO(output.Feedback)
	}
	c.JSON(http.StatusOK, resp)
}
