package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/darshil-dcis/career-copilot-api/internal/application/usecase/auth"
	"github.com/darshil-dcis/career-copilot-api/pkg/apperror"
)

type AuthHandler struct {
	signupUseCase *auth.SignupUseCase
	loginUseCase  *auth.LoginUseCase
}

func NewAuthHandler(signupUC *auth.SignupUseCase, loginUC *auth.LoginUseCase) *AuthHandler {
	return &AuthHandler{
		signupUseCase: signupUC,
		loginUseCase:  loginUC,
	}
}

type signupRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name"`
	Password string `json:"password" binding:"required,min=8"`
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for signup", err))
		return
	}

	input := auth.SignupInput{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
	}
	output, err := h.signupUseCase.Execute(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"access_token": output.AccessToken,
		"user_id":      output.UserID,
	})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for login", err))
		return
	}

	input := auth.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	}
	output, err := h.loginUseCase.Execute(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": output.AccessToken,
	})
}
