package service

import (
	"errors"

	"github.com/dersapp/dersapp-backend/internal/models"
	"gorm.io/gorm"
)

type UserService struct {
	userStore    UserStore
	studentStore StudentStore
}

func NewUserService(userStore UserStore, studentStore StudentStore) *UserService {
	return &UserService{
		userStore:    userStore,
		studentStore: studentStore,
	}
}

func (s *UserService) GetProfile(userID uint) (*models.UserProfile, error) {
	user, err := s.userStore.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	profile := &models.UserProfile{User: *user}

	student, err := s.studentStore.GetByUserID(userID)
	if err == nil {
		profile.Student = student
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	return profile, nil
}
