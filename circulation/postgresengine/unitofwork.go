package postgresengine

import (
	"context"
	"errors"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/google/uuid"

	"github.com/openshelf/circulation-go/circulation"
)

// UnitOfWork exposes the transactional operations of a single lifecycle
// command. All reads use SELECT ... FOR UPDATE so that concurrent commands
// touching the same rows serialize on the row locks, and all guarded updates
// compare against the values read under the lock. Obtain one through
// CirculationStore.InTransaction; it must not be used after the callback returns.
type UnitOfWork struct {
	store CirculationStore
	tx    dbRunner
}

/*** Locked reads ***/

// GetBookForUpdate fetches a book and locks its row for the rest of the transaction.
func (u *UnitOfWork) GetBookForUpdate(ctx context.Context, id uuid.UUID) (circulation.Book, error) {
	return u.store.getBook(ctx, u.tx, id, true)
}

// GetMemberForUpdate fetches a member and locks their row for the rest of the transaction.
func (u *UnitOfWork) GetMemberForUpdate(ctx context.Context, id uuid.UUID) (circulation.Member, error) {
	return u.store.getMember(ctx, u.tx, id, true)
}

// GetBorrowForUpdate fetches a borrow transaction and locks its row for the rest of the transaction.
func (u *UnitOfWork) GetBorrowForUpdate(ctx context.Context, id uuid.UUID) (circulation.Borrow, error) {
	return u.store.getBorrow(ctx, u.tx, id, true)
}

// ListPendingFinesForUpdate fetches and locks the pending fines of a member, oldest first.
func (u *UnitOfWork) ListPendingFinesForUpdate(ctx context.Context, memberID uuid.UUID) ([]circulation.Fine, error) {
	return u.store.listPendingFines(ctx, u.tx, memberID, true)
}

// FindActiveReservationID looks up the member's active reservation for the
// book, locking it if found. The second return value reports whether one exists.
func (u *UnitOfWork) FindActiveReservationID(ctx context.Context, bookID uuid.UUID, memberID uuid.UUID) (uuid.UUID, bool, error) {
	selectStmt := goqu.Dialect(dialectPostgres).
		From(tableReservations).
		Select(colID).
		Where(goqu.Ex{
			colBookID:   bookID.String(),
			colMemberID: memberID.String(),
			colStatus:   string(circulation.ReservationStatusActive),
		}).
		ForUpdate(exp.Wait)

	sqlQuery, _, toSQLErr := selectStmt.ToSQL()
	if toSQLErr != nil {
		return uuid.Nil, false, u.store.buildQueryError(toSQLErr)
	}

	rows, err := u.store.executeQuery(ctx, u.tx, sqlQuery)
	if err != nil {
		return uuid.Nil, false, err
	}
	defer u.store.closeRows(rows)

	if !rows.Next() {
		return uuid.Nil, false, nil
	}

	var reservationID uuid.UUID
	if scanErr := rows.Scan(&reservationID); scanErr != nil {
		return uuid.Nil, false, u.store.scanRowError(scanErr)
	}

	return reservationID, true, nil
}

/*** Inserts ***/

// InsertBook adds a new book to the catalog.
func (u *UnitOfWork) InsertBook(ctx context.Context, book circulation.Book) error {
	insertStmt := goqu.Dialect(dialectPostgres).
		Insert(tableBooks).
		Rows(goqu.Record{
			colID:              book.ID.String(),
			colTitle:           book.Title,
			colISBN:            book.ISBN,
			colStatus:          string(book.Status),
			colTotalCopies:     book.TotalCopies,
			colAvailableCopies: book.AvailableCopies,
		})

	return u.executeInsert(ctx, insertStmt)
}

// InsertMember registers a new member.
func (u *UnitOfWork) InsertMember(ctx context.Context, member circulation.Member) error {
	insertStmt := goqu.Dialect(dialectPostgres).
		Insert(tableMembers).
		Rows(goqu.Record{
			colID:                   member.ID.String(),
			colName:                 member.Name,
			colIsActive:             member.IsActive,
			colMembershipExpiry:     member.MembershipExpiry,
			colMaxBooksAllowed:      member.MaxBooksAllowed,
			colCurrentBooksBorrowed: member.CurrentBooksBorrowed,
		})

	return u.executeInsert(ctx, insertStmt)
}

// InsertBorrow records a new borrow transaction.
func (u *UnitOfWork) InsertBorrow(ctx context.Context, borrow circulation.Borrow) error {
	insertStmt := goqu.Dialect(dialectPostgres).
		Insert(tableBorrows).
		Rows(goqu.Record{
			colID:         borrow.ID.String(),
			colBookID:     borrow.BookID.String(),
			colMemberID:   borrow.MemberID.String(),
			colBorrowDate: borrow.BorrowDate,
			colDueDate:    borrow.DueDate,
			colStatus:     string(borrow.Status),
			colFineAmount: goqu.L(castNumeric, borrow.FineAmount.StringFixed(2)),
		})

	return u.executeInsert(ctx, insertStmt)
}

// InsertFine records a newly issued fine.
func (u *UnitOfWork) InsertFine(ctx context.Context, fine circulation.Fine) error {
	insertStmt := goqu.Dialect(dialectPostgres).
		Insert(tableFines).
		Rows(goqu.Record{
			colID:            fine.ID.String(),
			colBorrowID:      fine.BorrowID.String(),
			colAmount:        goqu.L(castNumeric, fine.Amount.StringFixed(2)),
			colReason:        fine.Reason,
			colIssueDate:     fine.IssueDate,
			colDueDate:       fine.DueDate,
			colStatus:        string(fine.Status),
			colPaymentMethod: fine.PaymentMethod,
		})

	return u.executeInsert(ctx, insertStmt)
}

// InsertReservation records a new reservation. A partial unique index on
// active reservations backs up the application-level duplicate check, so a
// racing duplicate surfaces as circulation.ErrAlreadyReserved.
func (u *UnitOfWork) InsertReservation(ctx context.Context, reservation circulation.Reservation) error {
	insertStmt := goqu.Dialect(dialectPostgres).
		Insert(tableReservations).
		Rows(goqu.Record{
			colID:              reservation.ID.String(),
			colBookID:          reservation.BookID.String(),
			colMemberID:        reservation.MemberID.String(),
			colReservationDate: reservation.ReservationDate,
			colExpiryDate:      reservation.ExpiryDate,
			colStatus:          string(reservation.Status),
		})

	insertErr := u.executeInsert(ctx, insertStmt)
	if insertErr != nil && isUniqueViolation(insertErr) {
		return errors.Join(circulation.ErrAlreadyReserved, insertErr)
	}

	return insertErr
}

// InsertPayment records a completed payment.
func (u *UnitOfWork) InsertPayment(ctx context.Context, payment circulation.Payment) error {
	insertStmt := goqu.Dialect(dialectPostgres).
		Insert(tablePayments).
		Rows(goqu.Record{
			colID:          payment.ID.String(),
			colMemberID:    payment.MemberID.String(),
			colAmount:      goqu.L(castNumeric, payment.Amount.StringFixed(2)),
			colMethod:      string(payment.Method),
			colStatus:      string(payment.Status),
			colPaymentDate: payment.PaymentDate,
		})

	return u.executeInsert(ctx, insertStmt)
}

// LinkPaymentToFine records which fines a payment settled.
func (u *UnitOfWork) LinkPaymentToFine(ctx context.Context, paymentID uuid.UUID, fineID uuid.UUID) error {
	insertStmt := goqu.Dialect(dialectPostgres).
		Insert(tablePaymentFines).
		Rows(goqu.Record{
			colPaymentID: paymentID.String(),
			colFineID:    fineID.String(),
		})

	return u.executeInsert(ctx, insertStmt)
}

/*** Guarded updates ***/

// UpdateBookCopies persists new copy counts and status for a book. The update
// is guarded by the available count read under the row lock; an empty update
// means the stored state no longer matches that read.
func (u *UnitOfWork) UpdateBookCopies(ctx context.Context, book circulation.Book, expectedAvailable int) error {
	updateStmt := goqu.Dialect(dialectPostgres).
		Update(tableBooks).
		Set(goqu.Record{
			colAvailableCopies: book.AvailableCopies,
			colStatus:          string(book.Status),
		}).
		Where(goqu.Ex{
			colID:              book.ID.String(),
			colAvailableCopies: expectedAvailable,
		})

	return u.executeGuardedUpdate(ctx, updateStmt, tableBooks, circulation.ErrConcurrencyConflict)
}

// UpdateMemberBorrowed persists a new borrowed-books counter for a member,
// guarded by the counter value read under the row lock.
func (u *UnitOfWork) UpdateMemberBorrowed(ctx context.Context, member circulation.Member, expectedBorrowed int) error {
	updateStmt := goqu.Dialect(dialectPostgres).
		Update(tableMembers).
		Set(goqu.Record{
			colCurrentBooksBorrowed: member.CurrentBooksBorrowed,
		}).
		Where(goqu.Ex{
			colID:                   member.ID.String(),
			colCurrentBooksBorrowed: expectedBorrowed,
		})

	return u.executeGuardedUpdate(ctx, updateStmt, tableMembers, circulation.ErrConcurrencyConflict)
}

// UpdateBorrowReturned closes a borrow transaction with its return timestamp
// and final fine amount. Guarded against the borrow already being returned,
// so a racing duplicate return surfaces as circulation.ErrAlreadyReturned.
func (u *UnitOfWork) UpdateBorrowReturned(ctx context.Context, borrow circulation.Borrow) error {
	updateStmt := goqu.Dialect(dialectPostgres).
		Update(tableBorrows).
		Set(goqu.Record{
			colReturnDate: *borrow.ReturnDate,
			colStatus:     string(borrow.Status),
			colFineAmount: goqu.L(castNumeric, borrow.FineAmount.StringFixed(2)),
		}).
		Where(goqu.And(
			goqu.Ex{colID: borrow.ID.String()},
			goqu.I(colStatus).Neq(string(circulation.BorrowStatusReturned)),
		))

	return u.executeGuardedUpdate(ctx, updateStmt, tableBorrows, circulation.ErrAlreadyReturned)
}

// MarkFinePaid settles a pending fine with the payment timestamp and method.
func (u *UnitOfWork) MarkFinePaid(ctx context.Context, fine circulation.Fine) error {
	updateStmt := goqu.Dialect(dialectPostgres).
		Update(tableFines).
		Set(goqu.Record{
			colStatus:        string(circulation.FineStatusPaid),
			colPaymentDate:   *fine.PaymentDate,
			colPaymentMethod: fine.PaymentMethod,
		}).
		Where(goqu.Ex{
			colID:     fine.ID.String(),
			colStatus: string(circulation.FineStatusPending),
		})

	return u.executeGuardedUpdate(ctx, updateStmt, tableFines, circulation.ErrConcurrencyConflict)
}

// MarkReservationFulfilled closes an active reservation after the member borrowed the book.
func (u *UnitOfWork) MarkReservationFulfilled(ctx context.Context, reservationID uuid.UUID) error {
	updateStmt := goqu.Dialect(dialectPostgres).
		Update(tableReservations).
		Set(goqu.Record{
			colStatus: string(circulation.ReservationStatusFulfilled),
		}).
		Where(goqu.Ex{
			colID:     reservationID.String(),
			colStatus: string(circulation.ReservationStatusActive),
		})

	return u.executeGuardedUpdate(ctx, updateStmt, tableReservations, circulation.ErrConcurrencyConflict)
}

// ExpireReservations lazily expires the member's active reservations whose
// validity window has passed. Returns the number of reservations expired.
func (u *UnitOfWork) ExpireReservations(ctx context.Context, memberID uuid.UUID, asOf circulation.OccurredAtTS) (int64, error) {
	updateStmt := goqu.Dialect(dialectPostgres).
		Update(tableReservations).
		Set(goqu.Record{
			colStatus: string(circulation.ReservationStatusExpired),
		}).
		Where(goqu.And(
			goqu.Ex{colMemberID: memberID.String()},
			goqu.Ex{colStatus: string(circulation.ReservationStatusActive)},
			goqu.I(colExpiryDate).Lt(asOf),
		))

	sqlQuery, _, toSQLErr := updateStmt.ToSQL()
	if toSQLErr != nil {
		return 0, u.store.buildQueryError(toSQLErr)
	}

	return u.store.executeStatement(ctx, u.tx, sqlQuery)
}

/*** Statement helpers ***/

func (u *UnitOfWork) executeInsert(ctx context.Context, insertStmt *goqu.InsertDataset) error {
	sqlQuery, _, toSQLErr := insertStmt.ToSQL()
	if toSQLErr != nil {
		return u.store.buildQueryError(toSQLErr)
	}

	_, execErr := u.store.executeStatement(ctx, u.tx, sqlQuery)

	return execErr
}

func (u *UnitOfWork) executeGuardedUpdate(
	ctx context.Context,
	updateStmt *goqu.UpdateDataset,
	table string,
	emptyUpdateErr error,
) error {
	sqlQuery, _, toSQLErr := updateStmt.ToSQL()
	if toSQLErr != nil {
		return u.store.buildQueryError(toSQLErr)
	}

	rowsAffected, execErr := u.store.executeStatement(ctx, u.tx, sqlQuery)
	if execErr != nil {
		return execErr
	}

	if rowsAffected == 0 {
		if u.store.logger != nil {
			u.store.logger.Warn(logMsgGuardedUpdateEmpty, logAttrTable, table)
		}

		return emptyUpdateErr
	}

	return nil
}
