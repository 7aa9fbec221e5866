package handler

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dersapp/dersapp-backend/internal/controller"
	"github.com/dersapp/dersapp-backend/internal/models"
	"github.com/dersapp/dersapp-backend/internal/service"
	"github.com/dersapp/dersapp-backend/pkg/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// emptyPaymentStore satisfies service.PaymentStore and has no records;
// enough for boundary cases that never reach the gateway.
type emptyPaymentStore struct{}

func (emptyPaymentStore) Create(*models.Payment) error { return nil }
func (emptyPaymentStore) GetByID(uint) (*models.Payment, error) {
	return nil, gorm.ErrRecordNotFound
}
func (emptyPaymentStore) GetByConversationID(string) (*models.Payment, error) {
	return nil, gorm.ErrRecordNotFound
}
func (emptyPaymentStore) Finalize(*models.Payment, *models.StudentPackage) error { return nil }
func (emptyPaymentStore) GetStalePending(time.Time) ([]models.Payment, error)   { return nil, nil }

func newTestApp() *fiber.App {
	paymentService := service.NewPaymentService(nil, nil, nil, nil, nil, emptyPaymentStore{}, nil, "", nil)
	h := NewPaymentHandler(controller.NewPaymentController(paymentService), utils.NewValidator())

	app := fiber.New()
	api := app.Group("/api")

	api.Post("/payments/callback", h.HandleCallback)
	api.Post("/payments/mock/success", h.MockSuccess)

	// Stub auth: the initialize route expects userID in locals.
	api.Use(func(c *fiber.Ctx) error {
		c.Locals("userID", uint(7))
		return c.Next()
	})
	api.Post("/payments/initialize", h.InitializeCheckout)

	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, body interface{}) (int, models.Response) {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(fiber.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var parsed models.Response
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&parsed))
	return resp.StatusCode, parsed
}

func TestInitializeCheckoutRejectsMissingPackageID(t *testing.T) {
	app := newTestApp()

	status, resp := postJSON(t, app, "/api/payments/initialize", fiber.Map{})
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.False(t, resp.Success)
	assert.NotEmpty(t, resp.Error)
}

func TestInitializeCheckoutRejectsBadInstallmentCount(t *testing.T) {
	app := newTestApp()

	status, resp := postJSON(t, app, "/api/payments/initialize", fiber.Map{
		"package_id":        1,
		"installment_count": 5,
	})
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.False(t, resp.Success)
}

func TestCallbackRequiresToken(t *testing.T) {
	app := newTestApp()

	status, resp := postJSON(t, app, "/api/payments/callback", fiber.Map{})
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "token is required", resp.Error)
}

func TestMockSuccessRequiresPaymentID(t *testing.T) {
	app := newTestApp()

	status, resp := postJSON(t, app, "/api/payments/mock/success", fiber.Map{})
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.False(t, resp.Success)
}

func TestMockSuccessUnknownPayment(t *testing.T) {
	app := newTestApp()

	status, resp := postJSON(t, app, "/api/payments/mock/success", fiber.Map{
		"payment_id": 42,
	})
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, service.ErrPaymentNotFound.Error(), resp.Error)
}
