package llm

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/darshil-dcis/career-copilot-api/internal/application/service"
	"github.com/darshil-dcis/career-copilot-api/internal/config"
	"github.com/darshil-dcis/career-copilot-api/internal/domain/profile"
	"github.com/darshil-dcis/career-copilot-api/pkg/logger"
)

// Input is 16kHz mono PCM from the browser; the live model answers with
// 24kHz mono PCM.
const inputMIMEType = "audio/pcm;rate=16000"

type geminiLiveService struct {
	client *genai.Client
	model  string
	log    logger.Logger
}

func NewGeminiLiveService(ctx context.Context, cfg config.Config, log logger.Logger) (service.LiveService, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.Gemini.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	log.Info("Gemini Live Adapter initialized", zap.String("model", cfg.Gemini.LiveModel))
	return &geminiLiveService{client: client, model: cfg.Gemini.LiveModel, log: log}, nil
}

func (s *geminiLiveService) Connect(ctx context.Context, p *profile.Profile) (service.LiveSession, error) {
	instruction := fmt.Sprintf(
		"%s You are speaking with %s, who is working toward a %s role. Keep spoken answers short.",
		mentorPersona, p.Name, p.TargetRole,
	)

	sess, err := s.client.Live.Connect(ctx, s.model, &genai.LiveConnectConfig{
		ResponseModalities: []genai.Modality{genai.ModalityAudio},
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: instruction}},
		},
		OutputAudioTranscription: &genai.AudioTranscriptionConfig{},
	})
	if err != nil {
		return nil, fmt.Errorf("connect live session: %w", err)
	}

	return &geminiLiveSession{session: sess}, nil
}

type geminiLiveSession struct {
	session *genai.Session
}

func (s *geminiLiveSession) SendAudio(_ context.Context, pcm []byte) error {
	err := s.session.SendRealtimeInput(genai.LiveRealtimeInput{
		Media: &genai.Blob{Data: pcm, MIMEType: inputMIMEType},
	})
	if err != nil {
		return fmt.Errorf("send realtime audio: %w", err)
	}
	return nil
}

func (s *geminiLiveSession) Receive() (*service.LiveEvent, error) {
	msg, err := s.session.Receive()
	if err != nil {
		return nil, fmt.Errorf("receive live message: %w", err)
	}

	event := &service.LiveEvent{}
	content := msg.ServerContent
	if content == nil {
		return event, nil
	}

	event.TurnComplete = content.TurnComplete
	if content.OutputTranscription != nil {
		event.Transcript = content.OutputTranscription.Text
	}
	if content.ModelTurn != nil {
		for _, part := range content.ModelTurn.Parts {
			if part != nil && part.InlineData != nil {
				event.Audio = append(event.Audio, part.InlineData.Data...)
			}
		}
	}
	return event, nil
}

func (s *geminiLiveSession) Close() error {
	return s.session.Close()
}
