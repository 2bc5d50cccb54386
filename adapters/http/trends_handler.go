package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/darshil-dcis/career-copilot-api/internal/application/usecase/trends"
	"github.com/darshil-dcis/career-copilot-api/pkg/apperror"
)

type TrendsHandler struct {
	refreshUseCase *trends.RefreshTrendsUseCase
}

func NewTrendsHandler(uc *trends.RefreshTrendsUseCase) *TrendsHandler {
	return &TrendsHandler{refreshUseCase: uc}
}

func (h *TrendsHandler) Refresh(c *gin.Context) {
	ownerID, ok := GetOwnerIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("ownerID not found in context"))
		return
	}

	output, err := h.refreshUseCase.Execute(c.Request.Context(), trends.RefreshInput{OwnerID: ownerID})
	if err != nil {
		c.Error(err)
		return
	}

	dtos := make([]TrendDTO, len(output.Trends))
	for i, t := range output.Trends {
		dtos[i] = TrendDTO{Title: t.Title, Summary: t.Summary, Source: t.Source}
	}
	c.JSON(http.StatusOK, gin.H{"trends": dtos})
}
