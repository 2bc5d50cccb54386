package http

import (
	"encoding/base64"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/darshil-dcis/career-copilot-api/internal/application/usecase/voice"
	"github.com/darshil-dcis/career-copilot-api/pkg/apperror"
	"github.com/darshil-dcis/career-copilot-api/pkg/logger"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  16 * 1024,
	WriteBufferSize: 16 * 1024,
	// Auth happens via the JWT middleware before the upgrade; browser
	// clients connect cross-origin from the app frontend.
	CheckOrigin: func(r *http.Request) bool { return true },
}

type VoiceHandler struct {
	startUseCase *voice.StartSessionUseCase
	logger       logger.Logger
}

func NewVoiceHandler(uc *voice.StartSessionUseCase, log logger.Logger) *VoiceHandler {
	return &VoiceHandler{startUseCase: uc, logger: log}
}

// voiceServerMessage is one frame pushed to the client: a base64 PCM buffer
// with its assigned playback slot, plus incremental transcript text.
type voiceServerMessage struct {
	Audio        string    `json:"audio,omitempty"`
	PlayAt       time.Time `json:"play_at,omitempty"`
	DurationMS   int64     `json:"duration_ms,omitempty"`
	Transcript   string    `json:"transcript,omitempty"`
	TurnComplete bool      `json:"turn_complete,omitempty"`
}

// Stream upgrades the request to a WebSocket and bridges it to a live voice
// session. Binary frames from the client carry raw 16 kHz PCM; JSON frames
// back to the client carry scheduled model audio and transcription.
func (h *VoiceHandler) Stream(c *gin.Context) {
	ownerID, ok := GetOwnerIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("ownerID not found in context"))
		return
	}

	ctx := c.Request.Context()
	sess, err := h.startUseCase.Execute(ctx, ownerID)
	if err != nil {
		c.Error(err)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade has already written its own error response.
		if closeErr := sess.Close(ctx); closeErr != nil {
			h.logger.Warn("Failed to close voice session after upgrade error", zap.Error(closeErr))
		}
		return
	}
	defer conn.Close()

	done := make(chan struct{})

	// Upstream -> client. Owns all writes on the conn.
	go func() {
		defer close(done)
		for {
			out, err := sess.NextEvent()
			if err != nil {
				return
			}
			if out == nil {
				continue
			}
			msg := voiceServerMessage{
				Transcript:   out.Transcript,
				TurnComplete: out.TurnComplete,
			}
			if len(out.PCM) > 0 {
				msg.Audio = base64.StdEncoding.EncodeToString(out.PCM)
				msg.PlayAt = out.PlayAt
				msg.DurationMS = out.Duration.Milliseconds()
			}
			if err := conn.WriteJSON(msg); err != nil {
				return
			}
		}
	}()

	// Client -> upstream.
	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			break
		}
		if msgType != websocket.BinaryMessage || len(data) == 0 {
			continue
		}
		if err := sess.SendAudio(ctx, data); err != nil {
			h.logger.Warn("Failed to forward audio upstream", zap.Error(err))
			break
		}
	}

	if err := sess.Close(ctx); err != nil {
		h.logger.Warn("Failed to close voice session", zap.Error(err))
	}
	<-done
}
