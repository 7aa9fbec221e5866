package handler

import (
	"errors"

	"github.com/dersapp/dersapp-backend/internal/controller"
	"github.com/dersapp/dersapp-backend/internal/models"
	"github.com/dersapp/dersapp-backend/internal/service"
	"github.com/dersapp/dersapp-backend/pkg/utils"
	"github.com/gofiber/fiber/v2"
)

type PaymentHandler struct {
	paymentController *controller.PaymentController
	validator         *utils.Validator
}

func NewPaymentHandler(paymentController *controller.PaymentController, validator *utils.Validator) *PaymentHandler {
	return &PaymentHandler{
		paymentController: paymentController,
		validator:         validator,
	}
}

// InitializeCheckout starts a package purchase and returns the hosted
// checkout form reference.
func (h *PaymentHandler) InitializeCheckout(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("User not authenticated"))
	}

	var req models.InitializePaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	form, err := h.paymentController.InitializeCheckout(userID, req)
	if err != nil {
		return paymentError(c, err)
	}

	return c.JSON(models.SuccessResponse(form, "Checkout form created"))
}

// HandleCallback finalizes the payment for a gateway token. The gateway
// posts the token form-encoded; clients may also relay it as JSON.
func (h *PaymentHandler) HandleCallback(c *fiber.Ctx) error {
	var req models.PaymentCallbackRequest
	_ = c.BodyParser(&req)
	if req.Token == "" {
		req.Token = c.FormValue("token")
	}
	if req.Token == "" {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("token is required"))
	}

	result, err := h.paymentController.HandleCallback(req.Token)
	if err != nil {
		return paymentError(c, err)
	}

	return c.JSON(models.SuccessResponse(result, result.Message))
}

// MockSuccess forces a pending payment to completed. Registered in
// development environments only.
func (h *PaymentHandler) MockSuccess(c *fiber.Ctx) error {
	return h.mockFinalize(c, h.paymentController.MockSuccess)
}

// MockFail forces a pending payment to failed. Registered in development
// environments only.
func (h *PaymentHandler) MockFail(c *fiber.Ctx) error {
	return h.mockFinalize(c, h.paymentController.MockFail)
}

func (h *PaymentHandler) mockFinalize(c *fiber.Ctx, finalize func(uint) (*models.PaymentResult, error)) error {
	var req models.MockPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	result, err := finalize(req.PaymentID)
	if err != nil {
		return paymentError(c, err)
	}

	return c.JSON(models.SuccessResponse(result, result.Message))
}

func (h *PaymentHandler) GetPurchaseHistory(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("User not authenticated"))
	}

	purchases, err := h.paymentController.PurchaseHistory(userID)
	if err != nil {
		return paymentError(c, err)
	}

	return c.JSON(models.SuccessResponse(purchases, "Purchase history retrieved successfully"))
}

// paymentError maps service errors onto HTTP statuses: missing records
// are 404, gateway declines and invalid transitions 400, everything else
// a generic 500. Gateway transport failures stay server side.
func paymentError(c *fiber.Ctx, err error) error {
	var declined *service.GatewayDeclinedError

	switch {
	case errors.Is(err, service.ErrPackageNotFound),
		errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrStudentNotFound),
		errors.Is(err, service.ErrPaymentNotFound):
		return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse(err.Error()))
	case errors.As(err, &declined):
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(declined.Message))
	case errors.Is(err, service.ErrPaymentFinalized):
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Payment processing failed"))
	}
}

func currentUserID(c *fiber.Ctx) (uint, bool) {
	userID, ok := c.Locals("userID").(uint)
	return userID, ok
}
