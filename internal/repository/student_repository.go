package repository

import (
	"github.com/dersapp/dersapp-backend/internal/models"
	"gorm.io/gorm"
)

type StudentRepository struct {
	db *gorm.DB
}

func NewStudentRepository(db *gorm.DB) *StudentRepository {
	return &StudentRepository{
		db: db,
	}
}

func (r *StudentRepository) Create(student *models.Student) error {
	return r.db.Create(student).Error
}

func (r *StudentRepository) GetByUserID(userID uint) (*models.Student, error) {
	var student models.Student
	err := r.db.Where("user_id = ?", userID).First(&student).Error
	return &student, err
}
