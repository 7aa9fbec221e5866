package controller

import (
	"github.com/dersapp/dersapp-backend/internal/models"
	"github.com/dersapp/dersapp-backend/internal/service"
)

type PackageController struct {
	packageService *service.PackageService
}

func NewPackageController(packageService *service.PackageService) *PackageController {
	return &PackageController{
		packageService: packageService,
	}
}

func (c *PackageController) GetActivePackages() ([]models.LessonPackage, error) {
	return c.packageService.GetActivePackages()
}

func (c *PackageController) GetPackageByID(id uint) (*models.LessonPackage, error) {
	return c.packageService.GetPackageByID(id)
}
