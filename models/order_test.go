package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransitionOrderStatus(t *testing.T) {
	assert.True(t, CanTransitionOrderStatus(OrderStatusPending, OrderStatusCompleted))
	assert.True(t, CanTransitionOrderStatus(OrderStatusPending, OrderStatusCancelled))

	// terminal states never move
	assert.False(t, CanTransitionOrderStatus(OrderStatusCompleted, OrderStatusPending))
	assert.False(t, CanTransitionOrderStatus(OrderStatusCompleted, OrderStatusCancelled))
	assert.False(t, CanTransitionOrderStatus(OrderStatusCancelled, OrderStatusPending))
	assert.False(t, CanTransitionOrderStatus(OrderStatusCancelled, OrderStatusCompleted))

	// re-asserting the current status is not a transition
	assert.False(t, CanTransitionOrderStatus(OrderStatusPending, OrderStatusPending))
}

func TestCanTransitionPaymentStatus(t *testing.T) {
	assert.True(t, CanTransitionPaymentStatus(PaymentStatusPending, PaymentStatusPaid))
	assert.True(t, CanTransitionPaymentStatus(PaymentStatusPending, PaymentStatusFailed))

	assert.False(t, CanTransitionPaymentStatus(PaymentStatusPaid, PaymentStatusFailed))
	assert.False(t, CanTransitionPaymentStatus(PaymentStatusPaid, PaymentStatusPending))
	assert.False(t, CanTransitionPaymentStatus(PaymentStatusFailed, PaymentStatusPaid))
	assert.False(t, CanTransitionPaymentStatus(PaymentStatusPending, PaymentStatusPending))
}

func TestValidPaymentRecordStatus(t *testing.T) {
	for _, status := range []string{
		PaymentRecordPending, PaymentRecordSuccess, PaymentRecordFailed, PaymentRecordCancelled,
	} {
		assert.True(t, ValidPaymentRecordStatus(status), status)
	}
	assert.False(t, ValidPaymentRecordStatus("refunded"))
	assert.False(t, ValidPaymentRecordStatus(""))
}
