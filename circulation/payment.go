package circulation

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentMethod is the channel through which a payment was made.
type PaymentMethod string

const (
	PaymentMethodCash   PaymentMethod = "cash"
	PaymentMethodCard   PaymentMethod = "card"
	PaymentMethodOnline PaymentMethod = "online"
	PaymentMethodStripe PaymentMethod = "stripe"
)

// PaymentStatus represents the state of a payment.
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusRefunded  PaymentStatus = "refunded"
)

// Payment records money received from a member and the set of fines it
// settled. Invariant: every fine reconciled by a completed payment is marked
// paid. The payment-gateway interaction happens outside this core; reconcile
// is only invoked after the gateway reported success, so payments enter the
// ledger already completed.
type Payment struct {
	ID          uuid.UUID
	MemberID    uuid.UUID
	Amount      decimal.Decimal
	Method      PaymentMethod
	Status      PaymentStatus
	PaymentDate time.Time
}

// BuildCompletedPayment creates a completed Payment for a confirmed amount.
func BuildCompletedPayment(
	id uuid.UUID,
	memberID uuid.UUID,
	amount decimal.Decimal,
	method PaymentMethod,
	occurredAt time.Time,
) Payment {

	return Payment{
		ID:          id,
		MemberID:    memberID,
		Amount:      amount.Round(2),
		Method:      method,
		Status:      PaymentStatusCompleted,
		PaymentDate: ToOccurredAt(occurredAt),
	}
}
