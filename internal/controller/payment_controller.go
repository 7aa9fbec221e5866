package controller

import (
	"github.com/dersapp/dersapp-backend/internal/models"
	"github.com/dersapp/dersapp-backend/internal/service"
)

type PaymentController struct {
	paymentService *service.PaymentService
}

func NewPaymentController(paymentService *service.PaymentService) *PaymentController {
	return &PaymentController{
		paymentService: paymentService,
	}
}

func (c *PaymentController) InitializeCheckout(userID uint, req models.InitializePaymentRequest) (*models.CheckoutForm, error) {
	return c.paymentService.InitializeCheckout(userID, req)
}

func (c *PaymentController) HandleCallback(token string) (*models.PaymentResult, error) {
	return c.paymentService.HandleCallback(token)
}

func (c *PaymentController) MockSuccess(paymentID uint) (*models.PaymentResult, error) {
	return c.paymentService.MockSuccess(paymentID)
}

func (c *PaymentController) MockFail(paymentID uint) (*models.PaymentResult, error) {
	return c.paymentService.MockFail(paymentID)
}

func (c *PaymentController) PurchaseHistory(userID uint) ([]models.StudentPackage, error) {
	return c.paymentService.PurchaseHistory(userID)
}
