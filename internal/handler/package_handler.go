package handler

import (
	"errors"

	"github.com/dersapp/dersapp-backend/internal/controller"
	"github.com/dersapp/dersapp-backend/internal/models"
	"github.com/dersapp/dersapp-backend/internal/service"
	"github.com/gofiber/fiber/v2"
)

type PackageHandler struct {
	packageController *controller.PackageController
}

func NewPackageHandler(packageController *controller.PackageController) *PackageHandler {
	return &PackageHandler{
		packageController: packageController,
	}
}

func (h *PackageHandler) GetActivePackages(c *fiber.Ctx) error {
	packages, err := h.packageController.GetActivePackages()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse(err.Error()))
	}

	return c.JSON(models.SuccessResponse(packages, "Packages retrieved successfully"))
}

func (h *PackageHandler) GetPackageByID(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid package ID"))
	}

	pkg, err := h.packageController.GetPackageByID(uint(id))
	if err != nil {
		if errors.Is(err, service.ErrPackageNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse("Package not found"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse(err.Error()))
	}

	return c.JSON(models.SuccessResponse(pkg, "Package retrieved successfully"))
}
