package reconcilepayment

import (
	"github.com/google/uuid"

	"github.com/openshelf/circulation-go/circulation"
)

// Decision holds the completed payment, the fines it settled (possibly none)
// and the audit event describing the reconciliation.
type Decision struct {
	Payment   circulation.Payment
	PaidFines []circulation.Fine
	Audit     circulation.PaymentReconciled
}

// Decide is the pure decision function for payment reconciliation.
//
// Settlement policy: fines settle oldest first, and a fine is settled only
// when the remaining amount fully covers it. There is no fine splitting, so
// a payment smaller than the oldest pending fine settles nothing. The
// payment itself is always recorded as completed; any surplus is absorbed.
func Decide(
	member circulation.Member,
	pendingFines []circulation.Fine,
	paymentID uuid.UUID,
	command Command,
) (Decision, error) {

	if !circulation.IsPositiveAmount(command.Amount) {
		return Decision{}, circulation.ErrInvalidAmount
	}

	payment := circulation.BuildCompletedPayment(paymentID, member.ID, command.Amount, command.Method, command.OccurredAt)

	remaining := payment.Amount
	paidFines := make([]circulation.Fine, 0, len(pendingFines))
	paidFineIDs := make([]string, 0, len(pendingFines))

	for _, fine := range pendingFines {
		if fine.Amount.GreaterThan(remaining) {
			break
		}

		paid, payErr := fine.WithPayment(command.OccurredAt, string(command.Method))
		if payErr != nil {
			return Decision{}, payErr
		}

		remaining = remaining.Sub(fine.Amount)
		paidFines = append(paidFines, paid)
		paidFineIDs = append(paidFineIDs, paid.ID.String())
	}

	return Decision{
		Payment:   payment,
		PaidFines: paidFines,
		Audit:     circulation.BuildPaymentReconciled(payment, paidFineIDs),
	}, nil
}
