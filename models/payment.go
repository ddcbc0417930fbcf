package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	PaymentRecordPending   = "pending"
	PaymentRecordSuccess   = "success"
	PaymentRecordFailed    = "failed"
	PaymentRecordCancelled = "cancelled"
)

// ValidPaymentRecordStatus reports whether s belongs to the payment ledger's
// status vocabulary.
func ValidPaymentRecordStatus(s string) bool {
	switch s {
	case PaymentRecordPending, PaymentRecordSuccess, PaymentRecordFailed, PaymentRecordCancelled:
		return true
	}
	return false
}

// Payment is one ledger row recording a payment attempt against an order.
type Payment struct {
	ID        string          `gorm:"primaryKey" json:"id"`
	OrderID   string          `gorm:"index;not null" json:"order_id"`
	Amount    decimal.Decimal `gorm:"type:decimal(10,2)" json:"amount"`
	Method    string          `json:"method"`
	Status    string          `gorm:"type:varchar(20);default:'pending'" json:"status"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}
