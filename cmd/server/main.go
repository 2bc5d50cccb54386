package main

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/darshil-dcis/career-copilot-api/adapters/event"
	httpAdapter "github.com/darshil-dcis/career-copilot-api/adapters/http"
	"github.com/darshil-dcis/career-copilot-api/adapters/llm"
	"github.com/darshil-dcis/career-copilot-api/adapters/persistence"
	authUC "github.com/darshil-dcis/career-copilot-api/internal/application/usecase/auth"
	chatUC "github.com/darshil-dcis/career-copilot-api/internal/application/usecase/chat"
	historyUC "github.com/darshil-dcis/career-copilot-api/internal/application/usecase/history"
	interviewUC "github.com/darshil-dcis/career-copilot-api/internal/application/usecase/interview"
	onboardingUC "github.com/darshil-dcis/career-copilot-api/internal/application/usecase/onboarding"
	profileUC "github.com/darshil-dcis/career-copilot-api/internal/application/usecase/profile"
	projectUC "github.com/darshil-dcis/career-copilot-api/internal/application/usecase/project"
	quizUC "github.com/darshil-dcis/career-copilot-api/internal/application/usecase/quiz"
	resumeUC "github.com/darshil-dcis/career-copilot-api/internal/application/usecase/resume"
	roadmapUC "github.com/darshil-dcis/career-copilot-api/internal/application/usecase/roadmap"
	trendsUC "github.com/darshil-dcis/career-copilot-api/internal/application/usecase/trends"
	voiceUC "github.com/darshil-dcis/career-copilot-api/internal/application/usecase/voice"
	"github.com/darshil-dcis/career-copilot-api/internal/config"
	"github.com/darshil-dcis/career-copilot-api/pkg/auth"
	"github.com/darshil-dcis/career-copilot-api/pkg/logger"
	"github.com/darshil-dcis/career-copilot-api/pkg/tracing"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)
	appLogger.Info("Starting Career Copilot API server...")

	ctx := context.Background()

	tp, err := tracing.NewTracerProvider(cfg, appLogger, "career-copilot-api")
	if err != nil {
		appLogger.Fatal("Cannot init tracer provider", err)
	}
	defer func() {
		if err := tp.Shutdown(context.Background()); err != nil {
			appLogger.Warn("Tracer provider shutdown failed", zap.Error(err))
		}
	}()

	dbPool, err := persistence.NewPostgresPool(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Cannot connect Postgres", err)
	}
	defer dbPool.Close()

	redisClient, err := persistence.NewRedisClient(cfg)
	if err != nil {
		appLogger.Fatal("Cannot connect Redis", err)
	}
	defer redisClient.Close()

	kafkaClient, err := event.NewKafkaProducerClient(cfg)
	if err != nil {
		appLogger.Fatal("Cannot init Kafka", err)
	}
	defer kafkaClient.Close()

	// Repositories
	userRepo := persistence.NewPostgresUserRepo(dbPool, appLogger)
	profileRepo := persistence.NewPostgresProfileRepo(dbPool, appLogger)
	sessionRepo := persistence.NewPostgresSessionRepo(dbPool, appLogger)
	transcriptStore := persistence.NewRedisTranscriptStore(redisClient)

	// Services
	jwtSvc := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.TokenLifespan)
	llmSvc, err := llm.NewGeminiAdapter(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Cannot init Gemini adapter", err)
	}
	liveSvc, err := llm.NewGeminiLiveService(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Cannot init Gemini live service", err)
	}

	// Use Cases
	signupUseCase := authUC.NewSignupUseCase(userRepo, jwtSvc, appLogger)
	loginUseCase := authUC.NewLoginUseCase(userRepo, jwtSvc, appLogger)
	onboardingUseCase := onboardingUC.NewOnboardingUseCase(profileRepo, llmSvc, kafkaClient, appLogger)
	getProfileUseCase := profileUC.NewGetProfileUseCase(profileRepo)
	updateProfileUseCase := profileUC.NewUpdateProfileUseCase(profileRepo, llmSvc, kafkaClient, appLogger)
	toggleStepUseCase := roadmapUC.NewToggleStepUseCase(profileRepo, kafkaClient, appLogger)
	updateProjectUseCase := projectUC.NewUpdateProjectUseCase(profileRepo, kafkaClient, appLogger)
	chatUseCase := chatUC.NewChatUseCase(llmSvc, transcriptStore, profileRepo, sessionRepo, kafkaClient, appLogger)
	interviewUseCase := interviewUC.NewInterviewUseCase(llmSvc, transcriptStore, profileRepo, sessionRepo, kafkaClient, appLogger)
	quizUseCase := quizUC.NewQuizUseCase(llmSvc, profileRepo, sessionRepo, kafkaClient, appLogger)
	refreshTrendsUseCase := trendsUC.NewRefreshTrendsUseCase(llmSvc, profileRepo, kafkaClient, appLogger)
	reviewResumeUseCase := resumeUC.NewReviewResumeUseCase(llmSvc, profileRepo, appLogger)
	startVoiceUseCase := voiceUC.NewStartSessionUseCase(liveSvc, profileRepo, sessionRepo, kafkaClient, appLogger)
	listSessionsUseCase := historyUC.NewListSessionsUseCase(sessionRepo)

	// HTTP Handlers
	authHandler := httpAdapter.NewAuthHandler(signupUseCase, loginUseCase)
	profileHandler := httpAdapter.NewProfileHandler(getProfileUseCase, updateProfileUseCase, onboardingUseCase, appLogger)
	roadmapHandler := httpAdapter.NewRoadmapHandler(toggleStepUseCase, updateProjectUseCase)
	chatHandler := httpAdapter.NewChatHandler(chatUseCase)
	interviewHandler := httpAdapter.NewInterviewHandler(interviewUseCase)
	quizHandler := httpAdapter.NewQuizHandler(quizUseCase)
	trendsHandler := httpAdapter.NewTrendsHandler(refreshTrendsUseCase)
	resumeHandler := httpAdapter.NewResumeHandler(reviewResumeUseCase)
	historyHandler := httpAdapter.NewHistoryHandler(listSessionsUseCase)
	voiceHandler := httpAdapter.NewVoiceHandler(startVoiceUseCase, appLogger)

	// Middleware
	authMiddleware := httpAdapter.AuthMiddleware(jwtSvc)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(httpAdapter.ErrorMiddleware(appLogger))

	api := router.Group("/api/v1")
	{
		api.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "UP"}) })

		authGroup := api.Group("/auth")
		{
			authGroup.POST("/signup", authHandler.Signup)
			authGroup.POST("/login", authHandler.Login)
		}

		private := api.Group("/")
		private.Use(authMiddleware)
		{
			private.POST("/onboarding", profileHandler.Onboard)
			private.GET("/profile", profileHandler.GetProfile)
			private.PUT("/profile", profileHandler.UpdateProfile)

			private.PUT("/roadmap/steps", roadmapHandler.ToggleStep)
			private.PUT("/projects/:id", roadmapHandler.UpdateProject)

			chatGroup := private.Group("/chat")
			{
				chatGroup.POST("/messages", chatHandler.SendMessage)
				chatGroup.POST("/end", chatHandler.EndSession)
			}

			interviewGroup := private.Group("/interview")
			{
				interviewGroup.POST("/start", interviewHandler.Start)
				interviewGroup.POST("/reply", interviewHandler.Reply)
				interviewGroup.POST("/finish", interviewHandler.Finish)
			}

			quizGroup := private.Group("/quiz")
			{
				quizGroup.POST("/generate", quizHandler.Generate)
				quizGroup.POST("/submit", quizHandler.Submit)
			}

			private.POST("/trends/refresh", trendsHandler.Refresh)
			private.POST("/resume/review", resumeHandler.Review)
			private.GET("/sessions", historyHandler.ListSessions)
			private.GET("/voice/stream", voiceHandler.Stream)
		}
	}

	appLogger.Info("Server running", zap.String("port", cfg.App.Port))
	if err := router.Run(":" + cfg.App.Port); err != nil {
		appLogger.Fatal("Cannot run server", err)
	}
}
