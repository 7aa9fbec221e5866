package models

import (
	"time"
)

const (
	PurchaseStatusPending   = "pending"
	PurchaseStatusActive    = "active"
	PurchaseStatusCancelled = "cancelled"

	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusFailed    = "failed"
)

// StudentPackage is one student's purchase of a lesson package. It is
// created pending at checkout initialization and moves to a terminal
// state together with its Payment, never independently.
type StudentPackage struct {
	ID               uint       `json:"id" gorm:"primaryKey"`
	StudentID        uint       `json:"student_id" gorm:"not null;index"`
	PackageID        uint       `json:"package_id" gorm:"not null"`
	Status           string     `json:"status" gorm:"not null;default:'pending'"`
	PaymentStatus    string     `json:"payment_status" gorm:"not null;default:'pending'"`
	TotalAmount      float64    `json:"total_amount" gorm:"not null"`
	InstallmentCount int        `json:"installment_count" gorm:"not null;default:1"`
	ActivationDate   *time.Time `json:"activation_date"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// Payment is a single attempt to pay for a StudentPackage. The
// conversation id is the correlation key the gateway echoes back on the
// callback; it is unique per attempt.
type Payment struct {
	ID               uint      `json:"id" gorm:"primaryKey"`
	UserID           uint      `json:"user_id" gorm:"not null;index"`
	StudentPackageID uint      `json:"student_package_id" gorm:"not null"`
	Amount           float64   `json:"amount" gorm:"not null"`
	Status           string    `json:"status" gorm:"not null;default:'pending'"`
	ConversationID   string    `json:"conversation_id" gorm:"type:varchar(100);uniqueIndex;not null"`
	IyzicoPaymentID  string    `json:"iyzico_payment_id" gorm:"type:varchar(100)"`
	ErrorMessage     string    `json:"error_message"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type InitializePaymentRequest struct {
	PackageID        uint `json:"package_id" validate:"required"`
	InstallmentCount int  `json:"installment_count" validate:"omitempty,installments"`
}

type PaymentCallbackRequest struct {
	Token string `json:"token"`
}

type MockPaymentRequest struct {
	PaymentID uint `json:"payment_id" validate:"required"`
}

// CheckoutForm is what the client needs to hand control to the hosted
// payment page.
type CheckoutForm struct {
	CheckoutFormContent string `json:"checkout_form_content"`
	Token               string `json:"token"`
	PaymentPageURL      string `json:"payment_page_url"`
	ConversationID      string `json:"conversation_id"`
	PaymentID           uint   `json:"payment_id"`
}

type PaymentResult struct {
	PaymentID uint   `json:"payment_id"`
	Status    string `json:"status"`
	Message   string `json:"message,omitempty"`
}
