package service

import (
	"time"

	"github.com/dersapp/dersapp-backend/internal/models"
	"github.com/dersapp/dersapp-backend/pkg/payment"
)

// Store interfaces the services depend on. The gorm repositories satisfy
// them in production; tests inject in-memory fakes.

type UserStore interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	EmailExists(email string) (bool, error)
}

type StudentStore interface {
	Create(student *models.Student) error
	GetByUserID(userID uint) (*models.Student, error)
}

type PackageStore interface {
	GetByID(id uint) (*models.LessonPackage, error)
	GetActive() ([]models.LessonPackage, error)
}

type PurchaseStore interface {
	Create(purchase *models.StudentPackage) error
	GetByID(id uint) (*models.StudentPackage, error)
	GetByStudent(studentID uint) ([]models.StudentPackage, error)
}

type PaymentStore interface {
	Create(payment *models.Payment) error
	GetByID(id uint) (*models.Payment, error)
	GetByConversationID(conversationID string) (*models.Payment, error)
	Finalize(payment *models.Payment, purchase *models.StudentPackage) error
	GetStalePending(before time.Time) ([]models.Payment, error)
}

// CheckoutGateway is the slice of the payment gateway the purchase flow
// uses. pkg/payment.IyzicoService is the production implementation.
type CheckoutGateway interface {
	InitializeCheckoutForm(req *payment.CheckoutFormRequest) (*payment.CheckoutFormResult, error)
	RetrieveCheckoutForm(token string) (*payment.CheckoutFormResult, error)
}

type ReceiptMailer interface {
	SendPaymentReceiptEmail(email, fullName, packageName string, amount float64) error
}
