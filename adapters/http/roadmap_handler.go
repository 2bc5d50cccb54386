package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/darshil-dcis/career-copilot-api/internal/application/usecase/project"
	"github.com/darshil-dcis/career-copilot-api/internal/application/usecase/roadmap"
	"github.com/darshil-dcis/career-copilot-api/internal/domain/profile"
	"github.com/darshil-dcis/career-copilot-api/pkg/apperror"
)

type RoadmapHandler struct {
	toggleStepUseCase    *roadmap.ToggleStepUseCase
	updateProjectUseCase *project.UpdateProjectUseCase
}

func NewRoadmapHandler(toggleUC *roadmap.ToggleStepUseCase, projectUC *project.UpdateProjectUseCase) *RoadmapHandler {
	return &RoadmapHandler{
		toggleStepUseCase:    toggleUC,
		updateProjectUseCase: projectUC,
	}
}

type toggleStepRequest struct {
	StepIndex *int `json:"step_index" binding:"required"`
	Completed bool `json:"completed"`
}

func (h *RoadmapHandler) ToggleStep(c *gin.Context) {
	ownerID, ok := GetOwnerIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("ownerID not found in context"))
		return
	}

	var req toggleStepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for step toggle", err))
		return
	}

	input := roadmap.ToggleStepInput{
		OwnerID:   ownerID,
		StepIndex: *req.StepIndex,
		Completed: req.Completed,
	}
	output, err := h.toggleStepUseCase.Execute(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"profile":  ToProfileDTO(output.Profile),
		"xp_delta": output.XPDelta,
	})
}

type updateProjectRequest struct {
	Status *string `json:"status"`
	Notes  *string `json:"notes"`
}

func (h *RoadmapHandler) UpdateProject(c *gin.Context) {
	ownerID, ok := GetOwnerIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("ownerID not found in context"))
		return
	}

	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Error(apperror.NewInvalidInput("invalid project id", err))
		return
	}

	var req updateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for project update", err))
		return
	}

	input := project.UpdateProjectInput{
		OwnerID:   ownerID,
		ProjectID: projectID,
		Notes:     req.Notes,
	}
	if req.Status != nil {
		status := profile.ProjectStatus(*req.Status)
		input.Status = &status
	}

	output, err := h.updateProjectUseCase.Execute(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"profile":  ToProfileDTO(output.Profile),
		"xp_delta": output.XPDelta,
	})
}
