package circulation

import (
	"time"
)

// PaymentReconciledEventType is the audit event type identifier.
const PaymentReconciledEventType = "PaymentReconciled"

// PaymentReconciled records that a payment was matched against pending fines.
type PaymentReconciled struct {
	PaymentID  string
	MemberID   string
	Amount     string
	PaidFines  []string
	OccurredAt OccurredAtTS
}

// BuildPaymentReconciled creates a new PaymentReconciled audit event.
func BuildPaymentReconciled(payment Payment, paidFineIDs []string) PaymentReconciled {
	return PaymentReconciled{
		PaymentID:  payment.ID.String(),
		MemberID:   payment.MemberID.String(),
		Amount:     payment.Amount.StringFixed(2),
		PaidFines:  paidFineIDs,
		OccurredAt: payment.PaymentDate,
	}
}

// EventType returns the audit event type identifier.
func (e PaymentReconciled) EventType() string {
	return PaymentReconciledEventType
}

// HasOccurredAt returns when this event occurred.
func (e PaymentReconciled) HasOccurredAt() time.Time {
	return e.OccurredAt
}
