package service

import (
	"errors"

	"github.com/dersapp/dersapp-backend/internal/models"
	"github.com/dersapp/dersapp-backend/pkg/bcrypt"
	"github.com/dersapp/dersapp-backend/pkg/email"
	jwtPkg "github.com/dersapp/dersapp-backend/pkg/jwt"
	"go.uber.org/zap"
)

type AuthService struct {
	userStore    UserStore
	studentStore StudentStore
	emailService *email.EmailService
	logger       *zap.Logger
}

func NewAuthService(userStore UserStore, studentStore StudentStore, emailService *email.EmailService, logger *zap.Logger) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		userStore:    userStore,
		studentStore: studentStore,
		emailService: emailService,
		logger:       logger,
	}
}

// Register creates the user account and its student profile together.
func (s *AuthService) Register(req models.RegisterRequest) (*models.AuthResponse, error) {
	exists, err := s.userStore.EmailExists(req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errors.New("email already exists")
	}

	hashedPassword, err := bcrypt.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		FullName: req.FullName,
		Email:    req.Email,
		Password: hashedPassword,
		Phone:    req.Phone,
	}
	if err := s.userStore.Create(user); err != nil {
		return nil, err
	}

	student := &models.Student{
		UserID:     user.ID,
		GradeLevel: req.GradeLevel,
		City:       req.City,
	}
	if err := s.studentStore.Create(student); err != nil {
		return nil, err
	}

	if s.emailService != nil {
		if err := s.emailService.SendWelcomeEmail(user.Email, user.FullName); err != nil {
			s.logger.Warn("welcome email failed",
				zap.String("email", user.Email),
				zap.Error(err))
		}
	}

	token, err := jwtPkg.GenerateToken(user.Email, user.ID)
	if err != nil {
		return nil, err
	}

	return &models.AuthResponse{
		Token: token,
		User:  *user,
	}, nil
}

func (s *AuthService) Login(req models.LoginRequest) (*models.AuthResponse, error) {
	user, err := s.userStore.GetByEmail(req.Email)
	if err != nil {
		return nil, errors.New("invalid email or password")
	}

	if err := bcrypt.ComparePassword(user.Password, req.Password); err != nil {
		return nil, errors.New("invalid email or password")
	}

	token, err := jwtPkg.GenerateToken(user.Email, user.ID)
	if err != nil {
		return nil, err
	}

	return &models.AuthResponse{
		Token: token,
		User:  *user,
	}, nil
}
