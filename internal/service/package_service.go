package service

import (
	"errors"

	"github.com/dersapp/dersapp-backend/internal/models"
	"gorm.io/gorm"
)

type PackageService struct {
	packageStore PackageStore
}

func NewPackageService(packageStore PackageStore) *PackageService {
	return &PackageService{
		packageStore: packageStore,
	}
}

func (s *PackageService) GetActivePackages() ([]models.LessonPackage, error) {
	return s.packageStore.GetActive()
}

func (s *PackageService) GetPackageByID(id uint) (*models.LessonPackage, error) {
	pkg, err := s.packageStore.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPackageNotFound
		}
		return nil, err
	}
	return pkg, nil
}
