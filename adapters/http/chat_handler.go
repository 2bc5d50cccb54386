package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/darshil-dcis/career-copilot-api/internal/application/usecase/chat"
	"github.com/darshil-dcis/career-copilot-api/pkg/apperror"
)

type ChatHandler struct {
	chatUseCase *chat.ChatUseCase
}

func NewChatHandler(uc *chat.ChatUseCase) *ChatHandler {
	return &ChatHandler{chatUseCase: uc}
}

type sendMessageRequest struct {
	Message string `json:"message" binding:"required"`
}

func (h *ChatHandler) SendMessage(c *gin.Context) {
	ownerID, ok := GetOwnerIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("ownerID not found in context"))
		return
	}

	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for chat message", err))
		return
	}

	input := chat.SendMessageInput{OwnerID: ownerID, Message: req.Message}
	output, err := h.chatUseCase.SendMessage(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reply":   output.Reply,
		"history": toMessageDTOs(output.History),
	})
}

func (h *ChatHandler) EndSession(c *gin.Context) {
	ownerID, ok := GetOwnerIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("ownerID not found in context"))
		return
	}

	output, err := h.chatUseCase.EndSession(c.Request.Context(), chat.EndSessionInput{OwnerID: ownerID})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"recorded": output.Recorded})
}
