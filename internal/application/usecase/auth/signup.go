package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/darshil-dcis/career-copilot-api/internal/domain/user"
	"github.com/darshil-dcis/career-copilot-api/pkg/apperror"
	"github.com/darshil-dcis/career-copilot-api/pkg/auth"
	"github.com/darshil-dcis/career-copilot-api/pkg/logger"
)

type SignupUseCase struct {
	userRepo user.Repository
	jwtSvc   *auth.JWTService
	logger   logger.Logger
}

func NewSignupUseCase(repo user.Repository, jwtSvc *auth.JWTService, log logger.Logger) *SignupUseCase {
	return &SignupUseCase{
		userRepo: repo,
		jwtSvc:   jwtSvc,
		logger:   log,
	}
}

type SignupInput struct {
	Email    string
	Name     string
	Password string
}

type SignupOutput struct {
	AccessToken string
	UserID      uuid.UUID
}

func (uc *SignupUseCase) Execute(ctx context.Context, input SignupInput) (*SignupOutput, error) {
	email := strings.TrimSpace(strings.ToLower(input.Email))
	if email == "" || len(input.Password) < 8 {
		return nil, apperror.NewInvalidInput("email is required and password must be at least 8 characters", nil)
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, apperror.NewInternal("failed to hash password", err)
	}

	u := &user.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if name := strings.TrimSpace(input.Name); name != "" {
		u.Name = &name
	}

	if err := uc.userRepo.Create(ctx, u); err != nil {
		return nil, err
	}

	token, err := uc.jwtSvc.GenerateToken(u.ID)
	if err != nil {
		uc.logger.Error("Failed to generate token after signup", err, zap.String("user_id", u.ID.String()))
		return nil, apperror.NewInternal("failed to generate token", err)
	}

	return &SignupOutput{AccessToken: token, UserID: u.ID}, nil
}
