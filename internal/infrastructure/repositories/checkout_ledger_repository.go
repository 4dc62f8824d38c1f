package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/urmu/storefront/domain"
	"gorm.io/gorm"
)

// DBCheckoutAttempt is the GORM model for a checkout whose payment step failed
type DBCheckoutAttempt struct {
	ID        uint   `gorm:"primaryKey"`
	SessionID string `gorm:"size:64;not null"`
	Phone     string `gorm:"size:32;index;not null"`
	OrderID   string `gorm:"size:64;index;not null"`
	Status    string `gorm:"size:32;not null"`
	Reason    string `gorm:"type:text"`
	CreatedAt time.Time
}

func (DBCheckoutAttempt) TableName() string {
	return "checkout_attempts"
}

// toDomain converts the database model to a domain entity
func (a *DBCheckoutAttempt) toDomain() domain.CheckoutAttempt {
	return domain.CheckoutAttempt{
		ID:        a.ID,
		SessionID: a.SessionID,
		Phone:     a.Phone,
		OrderID:   a.OrderID,
		Status:    a.Status,
		Reason:    a.Reason,
		CreatedAt: a.CreatedAt,
	}
}

// CheckoutLedgerImpl implements domain.CheckoutLedger using GORM
type CheckoutLedgerImpl struct {
	db *gorm.DB
}

// NewCheckoutLedger creates a new checkout ledger
func NewCheckoutLedger(db *gorm.DB) domain.CheckoutLedger {
	return &CheckoutLedgerImpl{db: db}
}

// Record implements domain.CheckoutLedger
func (l *CheckoutLedgerImpl) Record(ctx context.Context, attempt *domain.CheckoutAttempt) error {
	row := DBCheckoutAttempt{
		SessionID: attempt.SessionID,
		Phone:     attempt.Phone,
		OrderID:   attempt.OrderID,
		Status:    attempt.Status,
		Reason:    attempt.Reason,
	}
	if err := l.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("failed to record checkout attempt: %w", err)
	}
	attempt.ID = row.ID
	attempt.CreatedAt = row.CreatedAt
	return nil
}

// ListByPhone returns the recorded attempts of a customer, newest first
func (l *CheckoutLedgerImpl) ListByPhone(ctx context.Context, phone string) ([]domain.CheckoutAttempt, error) {
	var rows []DBCheckoutAttempt
	err := l.db.WithContext(ctx).
		Where("phone = ?", phone).
		Order("created_at DESC, id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list checkout attempts: %w", err)
	}

	attempts := make([]domain.CheckoutAttempt, 0, len(rows))
	for i := range rows {
		attempts = append(attempts, rows[i].toDomain())
	}
	return attempts, nil
}
