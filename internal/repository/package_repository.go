package repository

import (
	"github.com/dersapp/dersapp-backend/internal/models"
	"gorm.io/gorm"
)

type LessonPackageRepository struct {
	db *gorm.DB
}

func NewLessonPackageRepository(db *gorm.DB) *LessonPackageRepository {
	return &LessonPackageRepository{
		db: db,
	}
}

func (r *LessonPackageRepository) GetByID(id uint) (*models.LessonPackage, error) {
	var lessonPackage models.LessonPackage
	err := r.db.First(&lessonPackage, id).Error
	return &lessonPackage, err
}

func (r *LessonPackageRepository) GetActive() ([]models.LessonPackage, error) {
	var packages []models.LessonPackage
	err := r.db.Where("is_active = ?", true).Find(&packages).Error
	return packages, err
}
