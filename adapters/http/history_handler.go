package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/darshil-dcis/career-copilot-api/internal/application/usecase/history"
	"github.com/darshil-dcis/career-copilot-api/internal/domain/session"
	"github.com/darshil-dcis/career-copilot-api/pkg/apperror"
)

type HistoryHandler struct {
	listUseCase *history.ListSessionsUseCase
}

func NewHistoryHandler(uc *history.ListSessionsUseCase) *HistoryHandler {
	return &HistoryHandler{listUseCase: uc}
}

func (h *HistoryHandler) ListSessions(c *gin.Context) {
	ownerID, ok := GetOwnerIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("ownerID not found in context"))
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	input := history.ListInput{
		OwnerID: ownerID,
		Kind:    session.Kind(c.Query("kind")),
		Limit:   limit,
		Offset:  offset,
	}
	output, err := h.listUseCase.Execute(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}

	dtos := make([]SessionDTO, len(output.Sessions))
	for i, s := range output.Sessions {
		dtos[i] = ToSessionDTO(s)
	}
	c.JSON(http.StatusOK, gin.H{"sessions": dtos})
}
