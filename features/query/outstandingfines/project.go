package outstandingfines

import (
	"github.com/openshelf/circulation-go/circulation"
)

// Project builds the read model from the member's pending fines.
// The total is an exact decimal sum, never floating point.
func Project(fines []circulation.Fine, query Query) Result {
	views := make([]FineView, 0, len(fines))
	total := circulation.ZeroAmount

	for _, fine := range fines {
		views = append(views, FineView{
			FineID:    fine.ID.String(),
			BorrowID:  fine.BorrowID.String(),
			Amount:    fine.Amount.StringFixed(2),
			Reason:    fine.Reason,
			IssueDate: fine.IssueDate,
			DueDate:   fine.DueDate,
		})

		total = total.Add(fine.Amount)
	}

	return Result{
		MemberID: query.MemberID.String(),
		Fines:    views,
		Total:    total.StringFixed(2),
	}
}
