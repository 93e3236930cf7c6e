package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPurchaseStatusTransitions(t *testing.T) {
	tests := []struct {
		from    PurchaseStatus
		to      PurchaseStatus
		allowed bool
	}{
		{PurchasePending, PurchaseConfirmed, true},
		{PurchasePending, PurchaseCancelled, true},
		{PurchasePending, PurchaseDelivered, false},
		{PurchaseConfirmed, PurchaseDelivered, true},
		{PurchaseConfirmed, PurchaseCancelled, false},
		{PurchaseConfirmed, PurchasePending, false},
		{PurchaseDelivered, PurchaseConfirmed, false},
		{PurchaseDelivered, PurchaseCancelled, false},
		{PurchaseCancelled, PurchaseConfirmed, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestAdminCanResetToPending(t *testing.T) {
	for _, from := range []PurchaseStatus{PurchaseConfirmed, PurchaseDelivered, PurchaseCancelled} {
		assert.True(t, from.AdminCanTransitionTo(PurchasePending), "%s -> pending", from)
	}

	// Ordinary machine still applies to everything else
	assert.True(t, PurchasePending.AdminCanTransitionTo(PurchaseConfirmed))
	assert.False(t, PurchaseDelivered.AdminCanTransitionTo(PurchaseConfirmed))
	assert.False(t, PurchasePending.AdminCanTransitionTo(PurchasePending))
}

func TestStatusValidity(t *testing.T) {
	assert.True(t, PurchasePending.Valid())
	assert.True(t, PurchaseDelivered.Valid())
	assert.False(t, PurchaseStatus("shipped").Valid())

	assert.True(t, SubmissionScheduled.Valid())
	assert.False(t, SubmissionStatus("done").Valid())

	assert.True(t, TransactionEarnedWaste.Valid())
	assert.True(t, TransactionSpentDiscount.Valid())
	assert.False(t, TransactionType("earned_referral").Valid())
}
