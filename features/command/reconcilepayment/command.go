package reconcilepayment

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/openshelf/circulation-go/circulation"
)

const (
	commandType = "ReconcilePayment"
)

// Command represents a confirmed payment to reconcile against the member's
// pending fines. It is triggered after the payment collaborator reports
// success, never before.
type Command struct {
	MemberID   uuid.UUID
	Amount     decimal.Decimal
	Method     circulation.PaymentMethod
	OccurredAt circulation.OccurredAtTS
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(
	memberID uuid.UUID,
	amount decimal.Decimal,
	method circulation.PaymentMethod,
	occurredAt time.Time,
) Command {

	return Command{
		MemberID:   memberID,
		Amount:     amount,
		Method:     method,
		OccurredAt: circulation.ToOccurredAt(occurredAt),
	}
}
