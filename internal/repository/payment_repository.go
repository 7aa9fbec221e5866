package repository

import (
	"time"

	"github.com/dersapp/dersapp-backend/internal/models"
	"gorm.io/gorm"
)

type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{
		db: db,
	}
}

func (r *PaymentRepository) Create(payment *models.Payment) error {
	return r.db.Create(payment).Error
}

func (r *PaymentRepository) GetByID(id uint) (*models.Payment, error) {
	var payment models.Payment
	err := r.db.First(&payment, id).Error
	return &payment, err
}

func (r *PaymentRepository) GetByConversationID(conversationID string) (*models.Payment, error) {
	var payment models.Payment
	err := r.db.Where("conversation_id = ?", conversationID).First(&payment).Error
	return &payment, err
}

// Finalize commits a payment and its purchase in a single transaction so
// the pair can never be observed half-transitioned.
func (r *PaymentRepository) Finalize(payment *models.Payment, purchase *models.StudentPackage) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(payment).Error; err != nil {
			return err
		}
		return tx.Save(purchase).Error
	})
}

// GetStalePending returns pending payments created before the cutoff.
// The reconciliation sweep expires them.
func (r *PaymentRepository) GetStalePending(before time.Time) ([]models.Payment, error) {
	var payments []models.Payment
	err := r.db.Where("status = ? AND created_at < ?", models.PaymentStatusPending, before).
		Find(&payments).Error
	return payments, err
}
