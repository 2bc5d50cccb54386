package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/darshil-dcis/career-copilot-api/internal/application/usecase/onboarding"
	profileUC "github.com/darshil-dcis/career-copilot-api/internal/application/usecase/profile"
	"github.com/darshil-dcis/career-copilot-api/pkg/apperror"
	"github.com/darshil-dcis/career-copilot-api/pkg/logger"
)

type ProfileHandler struct {
	getUseCase        *profileUC.GetProfileUseCase
	updateUseCase     *profileUC.UpdateProfileUseCase
	onboardingUseCase *onboarding.OnboardingUseCase
	logger            logger.Logger
}

func NewProfileHandler(
	getUC *profileUC.GetProfileUseCase,
	updateUC *profileUC.UpdateProfileUseCase,
	onboardingUC *onboarding.OnboardingUseCase,
	log logger.Logger,
) *ProfileHandler {
	return &ProfileHandler{
		getUseCase:        getUC,
		updateUseCase:     updateUC,
		onboardingUseCase: onboardingUC,
		logger:            log,
	}
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	ownerID, ok := GetOwnerIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("ownerID not found in context"))
		return
	}

	input := profileUC.GetProfileInput{OwnerID: ownerID}
	output, err := h.getUseCase.Execute(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, ToProfileDTO(output.Profile))
}

func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	ownerID, ok := GetOwnerIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("ownerID not found in context"))
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for profile update", err))
		return
	}

	input := profileUC.UpdateProfileInput{
		OwnerID:           ownerID,
		Name:              req.Name,
		TargetRole:        req.TargetRole,
		Bio:               req.Bio,
		Location:          req.Location,
		Streak:            req.Streak,
		ConfirmRoleChange: req.ConfirmRoleChange,
	}
	output, err := h.updateUseCase.Execute(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"profile":     ToProfileDTO(output.Profile),
		"regenerated": output.Regenerated,
	})
}

func (h *ProfileHandler) Onboard(c *gin.Context) {
	ownerID, ok := GetOwnerIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("ownerID not found in context"))
		return
	}

	var req OnboardingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for onboarding", err))
		return
	}

	input := onboarding.OnboardingInput{
		OwnerID:    ownerID,
		Name:       req.Name,
		TargetRole: req.TargetRole,
		Background: req.Background,
		Bio:        req.Bio,
		Location:   req.Location,
	}
	output, err := h.onboardingUseCase.Execute(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, ToProfileDTO(output.Profile))
}
