package controller

import (
	"github.com/dersapp/dersapp-backend/internal/models"
	"github.com/dersapp/dersapp-backend/internal/service"
)

type UserController struct {
	userService *service.UserService
}

func NewUserController(userService *service.UserService) *UserController {
	return &UserController{
		userService: userService,
	}
}

func (c *UserController) GetProfile(userID uint) (*models.UserProfile, error) {
	return c.userService.GetProfile(userID)
}
