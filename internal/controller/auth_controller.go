package controller

import (
	"github.com/dersapp/dersapp-backend/internal/models"
	"github.com/dersapp/dersapp-backend/internal/service"
)

type AuthController struct {
	authService *service.AuthService
}

func NewAuthController(authService *service.AuthService) *AuthController {
	return &AuthController{
		authService: authService,
	}
}

func (c *AuthController) Register(req models.RegisterRequest) (*models.AuthResponse, error) {
	return c.authService.Register(req)
}

func (c *AuthController) Login(req models.LoginRequest) (*models.AuthResponse, error) {
	return c.authService.Login(req)
}
