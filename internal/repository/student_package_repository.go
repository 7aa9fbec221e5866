package repository

import (
	"github.com/dersapp/dersapp-backend/internal/models"
	"gorm.io/gorm"
)

type StudentPackageRepository struct {
	db *gorm.DB
}

func NewStudentPackageRepository(db *gorm.DB) *StudentPackageRepository {
	return &StudentPackageRepository{
		db: db,
	}
}

func (r *StudentPackageRepository) Create(purchase *models.StudentPackage) error {
	return r.db.Create(purchase).Error
}

func (r *StudentPackageRepository) GetByID(id uint) (*models.StudentPackage, error) {
	var purchase models.StudentPackage
	err := r.db.First(&purchase, id).Error
	return &purchase, err
}

func (r *StudentPackageRepository) GetByStudent(studentID uint) ([]models.StudentPackage, error) {
	var purchases []models.StudentPackage
	err := r.db.Where("student_id = ?", studentID).
		Order("created_at DESC").
		Find(&purchases).Error
	return purchases, err
}
