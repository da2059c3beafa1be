package borrowsofmember

import (
	"github.com/openshelf/circulation-go/circulation"
)

// Project builds the read model from the member's borrow transactions.
// Pure function: the same borrows and query always produce the same result.
func Project(borrows []circulation.Borrow, query Query) Result {
	views := make([]BorrowView, 0, len(borrows))

	for _, borrow := range borrows {
		view := BorrowView{
			BorrowID:    borrow.ID.String(),
			BookID:      borrow.BookID.String(),
			BorrowDate:  borrow.BorrowDate,
			DueDate:     borrow.DueDate,
			ReturnDate:  borrow.ReturnDate,
			Status:      string(borrow.Status),
			FineAmount:  borrow.FineAmount.StringFixed(2),
			IsOverdue:   circulation.IsOverdue(borrow, query.AsOf),
			DaysOverdue: circulation.DaysOverdue(borrow, query.AsOf),
		}

		view.AccruedFine = circulation.ZeroAmount.StringFixed(2)
		if view.IsOverdue {
			view.AccruedFine = circulation.AccruedFine(borrow, query.AsOf).StringFixed(2)
		}

		views = append(views, view)
	}

	return Result{
		MemberID: query.MemberID.String(),
		Borrows:  views,
	}
}
