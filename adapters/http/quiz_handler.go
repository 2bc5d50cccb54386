package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/darshil-dcis/career-copilot-api/internal/application/usecase/quiz"
	"github.com/darshil-dcis/career-copilot-api/pkg/apperror"
)

type QuizHandler struct {
	quizUseCase *quiz.QuizUseCase
}

func NewQuizHandler(uc *quiz.QuizUseCase) *QuizHandler {
	return &QuizHandler{quizUseCase: uc}
}

type generateQuizRequest struct {
	Skill        string `json:"skill" binding:"required"`
	NumQuestions int    `json:"num_questions"`
}

func (h *QuizHandler) Generate(c *gin.Context) {
	ownerID, ok := GetOwnerIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("ownerID not found in context"))
		return
	}

	var req generateQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for quiz generation", err))
		return
	}

	output, err := h.quizUseCase.Generate(c.Request.Context(), quiz.GenerateInput{
		OwnerID:      ownerID,
		Skill:        req.Skill,
		NumQuestions: req.NumQuestions,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, ToQuizDTO(output.Quiz))
}

func (h *QuizHandler) Submit(c *gin.Context) {
	ownerID, ok := GetOwnerIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("ownerID not found in context"))
		return
	}

	var req SubmitQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for quiz submission", err))
		return
	}

	output, err := h.quizUseCase.Submit(c.Request.Context(), quiz.SubmitInput{
		OwnerID: ownerID,
		Quiz:    req.ToDomainQuiz(),
		Answers: req.Answers,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"correct":   output.Correct,
		"total":     output.Total,
		"passed":    output.Passed,
		"xp_earned": output.XPEarned,
	})
}
