package postgresengine

import (
	"context"
	"database/sql"
	"errors"
	"math"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // driver import
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/openshelf/circulation-go/circulation"
	"github.com/openshelf/circulation-go/circulation/postgresengine/internal/adapters"
)

const (
	tableBooks          = "books"
	tableMembers        = "members"
	tableBorrows        = "borrows"
	tableFines          = "fines"
	tableReservations   = "reservations"
	tablePayments       = "payments"
	tablePaymentFines   = "payment_fines"
	tableCirculationLog = "circulation_log"

	colID                   = "id"
	colTitle                = "title"
	colISBN                 = "isbn"
	colStatus               = "status"
	colTotalCopies          = "total_copies"
	colAvailableCopies      = "available_copies"
	colName                 = "name"
	colIsActive             = "is_active"
	colMembershipExpiry     = "membership_expiry"
	colMaxBooksAllowed      = "max_books_allowed"
	colCurrentBooksBorrowed = "current_books_borrowed"
	colBookID               = "book_id"
	colMemberID             = "member_id"
	colBorrowID             = "borrow_id"
	colPaymentID            = "payment_id"
	colFineID               = "fine_id"
	colBorrowDate           = "borrow_date"
	colDueDate              = "due_date"
	colReturnDate           = "return_date"
	colFineAmount           = "fine_amount"
	colAmount               = "amount"
	colReason               = "reason"
	colIssueDate            = "issue_date"
	colPaymentDate          = "payment_date"
	colPaymentMethod        = "payment_method"
	colReservationDate      = "reservation_date"
	colExpiryDate           = "expiry_date"
	colMethod               = "method"
	colEventType            = "event_type"
	colOccurredAt           = "occurred_at"
	colPayload              = "payload"

	dialectPostgres = "postgres"
	castNumeric     = "?::numeric"
	castJsonb       = "?::jsonb"

	logMsgBuildQueryFailed   = "failed to build sql query"
	logMsgDBQueryFailed      = "database query execution failed"
	logMsgDBExecFailed       = "database statement execution failed"
	logMsgCloseRowsFailed    = "failed to close database rows"
	logMsgScanRowFailed      = "failed to scan database row"
	logMsgRowsAffectedFailed = "failed to get rows affected count"
	logMsgBeginTxFailed      = "failed to begin transaction"
	logMsgCommitTxFailed     = "failed to commit transaction"
	logMsgRollbackTxFailed   = "failed to roll back transaction"
	logMsgGuardedUpdateEmpty = "guarded update affected no rows"
	logMsgSQLExecuted        = "executed sql for: "
	logMsgOperation          = "circulation store operation: "
	logAttrError             = "error"
	logAttrQuery             = "query"
	logAttrTable             = "table"
	logAttrDurationMS        = "duration_ms"
	logActionQuery           = "query"
	logActionExec            = "exec"

	// Postgres error codes mapped to ErrConcurrencyConflict / ErrAlreadyReserved.
	pgCodeSerializationFailure = "40001"
	pgCodeDeadlockDetected     = "40P01"
	pgCodeUniqueViolation      = "23505"
)

var ErrBuildingQueryFailed = errors.New("building sql query failed")
var ErrQueryingStoreFailed = errors.New("querying circulation store failed")
var ErrScanningDBRowFailed = errors.New("scanning database row failed")
var ErrExecutingStatementFailed = errors.New("executing database statement failed")
var ErrGettingRowsAffectedFailed = errors.New("getting rows affected count failed")
var ErrBeginningTransactionFailed = errors.New("beginning transaction failed")
var ErrCommittingTransactionFailed = errors.New("committing transaction failed")

// dbRunner is the subset of database operations shared by a plain connection
// and a transaction; read helpers work against either.
type dbRunner interface {
	Query(ctx context.Context, query string) (adapters.DBRows, error)
	Exec(ctx context.Context, query string) (adapters.DBResult, error)
}

// CirculationStore is the transactional Postgres store for the circulation
// lifecycle. Reads can run directly on the store; composite read-check-mutate
// operations run inside InTransaction so that all mutations of one use case
// commit or roll back together.
type CirculationStore struct {
	db     adapters.DBAdapter
	logger circulation.Logger
}

// Option defines a functional option for configuring CirculationStore.
type Option func(*CirculationStore) error

// WithLogger sets the logger for the CirculationStore.
//
// Debug level: SQL queries with execution timing (development use)
// Info level: operation summaries (production-safe)
// Warn level: non-critical issues like rollback failures
// Error level: critical failures that cause operation failures.
func WithLogger(logger circulation.Logger) Option {
	return func(cs *CirculationStore) error {
		cs.logger = logger
		return nil
	}
}

// NewCirculationStoreFromPGXPool creates a new CirculationStore using a pgx Pool with optional configuration.
func NewCirculationStoreFromPGXPool(db *pgxpool.Pool, options ...Option) (CirculationStore, error) {
	if db == nil {
		return CirculationStore{}, circulation.ErrNilDatabaseConnection
	}

	return newCirculationStore(adapters.NewPGXAdapter(db), options...)
}

// NewCirculationStoreFromSQLDB creates a new CirculationStore using a sql.DB with optional configuration.
func NewCirculationStoreFromSQLDB(db *sql.DB, options ...Option) (CirculationStore, error) {
	if db == nil {
		return CirculationStore{}, circulation.ErrNilDatabaseConnection
	}

	return newCirculationStore(adapters.NewSQLAdapter(db), options...)
}

// NewCirculationStoreFromSQLX creates a new CirculationStore using a sqlx.DB with optional configuration.
func NewCirculationStoreFromSQLX(db *sqlx.DB, options ...Option) (CirculationStore, error) {
	if db == nil {
		return CirculationStore{}, circulation.ErrNilDatabaseConnection
	}

	return newCirculationStore(adapters.NewSQLXAdapter(db), options...)
}

func newCirculationStore(db adapters.DBAdapter, options ...Option) (CirculationStore, error) {
	cs := CirculationStore{db: db}

	for _, option := range options {
		if err := option(&cs); err != nil {
			return CirculationStore{}, err
		}
	}

	return cs, nil
}

// InTransaction runs fn inside a single database transaction. Any error from
// fn rolls everything back, so a failed lifecycle operation leaves all
// entities in their pre-operation state. Serialization failures and deadlocks
// surface as circulation.ErrConcurrencyConflict for the caller to retry.
func (cs CirculationStore) InTransaction(ctx context.Context, fn func(ctx context.Context, uow *UnitOfWork) error) error {
	tx, beginErr := cs.db.Begin(ctx)
	if beginErr != nil {
		if cs.logger != nil {
			cs.logger.Error(logMsgBeginTxFailed, logAttrError, beginErr.Error())
		}

		return errors.Join(ErrBeginningTransactionFailed, beginErr)
	}

	uow := &UnitOfWork{store: cs, tx: tx}

	if fnErr := fn(ctx, uow); fnErr != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			if cs.logger != nil {
				cs.logger.Warn(logMsgRollbackTxFailed, logAttrError, rbErr.Error())
			}
		}

		return mapConflictError(fnErr)
	}

	if commitErr := tx.Commit(ctx); commitErr != nil {
		if cs.logger != nil {
			cs.logger.Error(logMsgCommitTxFailed, logAttrError, commitErr.Error())
		}

		_ = tx.Rollback(ctx)

		return mapConflictError(errors.Join(ErrCommittingTransactionFailed, commitErr))
	}

	return nil
}

// mapConflictError folds Postgres serialization failures and deadlocks into
// the retryable circulation.ErrConcurrencyConflict kind.
func mapConflictError(err error) error {
	var pgxErr *pgconn.PgError
	if errors.As(err, &pgxErr) {
		if pgxErr.Code == pgCodeSerializationFailure || pgxErr.Code == pgCodeDeadlockDetected {
			return errors.Join(circulation.ErrConcurrencyConflict, err)
		}
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		if string(pqErr.Code) == pgCodeSerializationFailure || string(pqErr.Code) == pgCodeDeadlockDetected {
			return errors.Join(circulation.ErrConcurrencyConflict, err)
		}
	}

	return err
}

// isUniqueViolation reports whether err is a Postgres unique constraint violation.
func isUniqueViolation(err error) bool {
	var pgxErr *pgconn.PgError
	if errors.As(err, &pgxErr) && pgxErr.Code == pgCodeUniqueViolation {
		return true
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == pgCodeUniqueViolation {
		return true
	}

	return false
}

/*** Read operations on the store (outside any transaction) ***/

// GetBook fetches a catalog book by id. Returns circulation.ErrBookNotFound if it does not exist.
func (cs CirculationStore) GetBook(ctx context.Context, id uuid.UUID) (circulation.Book, error) {
	return cs.getBook(ctx, cs.db, id, false)
}

// GetMember fetches a member by id. Returns circulation.ErrMemberNotFound if it does not exist.
func (cs CirculationStore) GetMember(ctx context.Context, id uuid.UUID) (circulation.Member, error) {
	return cs.getMember(ctx, cs.db, id, false)
}

// GetBorrow fetches a borrow transaction by id. Returns circulation.ErrBorrowNotFound if it does not exist.
func (cs CirculationStore) GetBorrow(ctx context.Context, id uuid.UUID) (circulation.Borrow, error) {
	return cs.getBorrow(ctx, cs.db, id, false)
}

// ListBorrowsOfMember fetches all borrow transactions of a member, newest first.
func (cs CirculationStore) ListBorrowsOfMember(ctx context.Context, memberID uuid.UUID) ([]circulation.Borrow, error) {
	selectStmt := goqu.Dialect(dialectPostgres).
		From(tableBorrows).
		Select(colID, colBookID, colMemberID, colBorrowDate, colDueDate, colReturnDate, colStatus, colFineAmount).
		Where(goqu.Ex{colMemberID: memberID.String()}).
		Order(goqu.I(colBorrowDate).Desc())

	sqlQuery, _, toSQLErr := selectStmt.ToSQL()
	if toSQLErr != nil {
		return nil, cs.buildQueryError(toSQLErr)
	}

	rows, err := cs.executeQuery(ctx, cs.db, sqlQuery)
	if err != nil {
		return nil, err
	}
	defer cs.closeRows(rows)

	borrows := make([]circulation.Borrow, 0)

	for rows.Next() {
		borrow, scanErr := cs.scanBorrow(rows)
		if scanErr != nil {
			return nil, scanErr
		}

		borrows = append(borrows, borrow)
	}

	return borrows, nil
}

// ListPendingFines fetches all pending fines of a member, oldest first.
func (cs CirculationStore) ListPendingFines(ctx context.Context, memberID uuid.UUID) ([]circulation.Fine, error) {
	return cs.listPendingFines(ctx, cs.db, memberID, false)
}

// Stats holds the library-wide circulation counters for the statistics view.
type Stats struct {
	TotalBooks     int64
	AvailableBooks int64
	TotalMembers   int64
	ActiveBorrows  int64
}

// GetStats computes the library-wide circulation counters in a single query.
func (cs CirculationStore) GetStats(ctx context.Context) (Stats, error) {
	selectStmt := goqu.Dialect(dialectPostgres).Select(
		goqu.L("(SELECT count(*) FROM books)").As("total_books"),
		goqu.L("(SELECT count(*) FROM books WHERE status = 'available')").As("available_books"),
		goqu.L("(SELECT count(*) FROM members)").As("total_members"),
		goqu.L("(SELECT count(*) FROM borrows WHERE status = 'active')").As("active_borrows"),
	)

	sqlQuery, _, toSQLErr := selectStmt.ToSQL()
	if toSQLErr != nil {
		return Stats{}, cs.buildQueryError(toSQLErr)
	}

	rows, err := cs.executeQuery(ctx, cs.db, sqlQuery)
	if err != nil {
		return Stats{}, err
	}
	defer cs.closeRows(rows)

	var stats Stats

	if !rows.Next() {
		return Stats{}, ErrScanningDBRowFailed
	}

	if scanErr := rows.Scan(&stats.TotalBooks, &stats.AvailableBooks, &stats.TotalMembers, &stats.ActiveBorrows); scanErr != nil {
		return Stats{}, cs.scanRowError(scanErr)
	}

	return stats, nil
}

/*** Shared row readers, used by the store and the unit of work ***/

func (cs CirculationStore) getBook(ctx context.Context, run dbRunner, id uuid.UUID, forUpdate bool) (circulation.Book, error) {
	selectStmt := goqu.Dialect(dialectPostgres).
		From(tableBooks).
		Select(colID, colTitle, colISBN, colStatus, colTotalCopies, colAvailableCopies).
		Where(goqu.Ex{colID: id.String()})

	if forUpdate {
		selectStmt = selectStmt.ForUpdate(exp.Wait)
	}

	sqlQuery, _, toSQLErr := selectStmt.ToSQL()
	if toSQLErr != nil {
		return circulation.Book{}, cs.buildQueryError(toSQLErr)
	}

	rows, err := cs.executeQuery(ctx, run, sqlQuery)
	if err != nil {
		return circulation.Book{}, err
	}
	defer cs.closeRows(rows)

	if !rows.Next() {
		return circulation.Book{}, circulation.ErrBookNotFound
	}

	var book circulation.Book
	var status string

	scanErr := rows.Scan(&book.ID, &book.Title, &book.ISBN, &status, &book.TotalCopies, &book.AvailableCopies)
	if scanErr != nil {
		return circulation.Book{}, cs.scanRowError(scanErr)
	}

	book.Status = circulation.BookStatus(status)

	return book, nil
}

func (cs CirculationStore) getMember(ctx context.Context, run dbRunner, id uuid.UUID, forUpdate bool) (circulation.Member, error) {
	selectStmt := goqu.Dialect(dialectPostgres).
		From(tableMembers).
		Select(colID, colName, colIsActive, colMembershipExpiry, colMaxBooksAllowed, colCurrentBooksBorrowed).
		Where(goqu.Ex{colID: id.String()})

	if forUpdate {
		selectStmt = selectStmt.ForUpdate(exp.Wait)
	}

	sqlQuery, _, toSQLErr := selectStmt.ToSQL()
	if toSQLErr != nil {
		return circulation.Member{}, cs.buildQueryError(toSQLErr)
	}

	rows, err := cs.executeQuery(ctx, run, sqlQuery)
	if err != nil {
		return circulation.Member{}, err
	}
	defer cs.closeRows(rows)

	if !rows.Next() {
		return circulation.Member{}, circulation.ErrMemberNotFound
	}

	var member circulation.Member

	scanErr := rows.Scan(
		&member.ID,
		&member.Name,
		&member.IsActive,
		&member.MembershipExpiry,
		&member.MaxBooksAllowed,
		&member.CurrentBooksBorrowed,
	)
	if scanErr != nil {
		return circulation.Member{}, cs.scanRowError(scanErr)
	}

	return member, nil
}

func (cs CirculationStore) getBorrow(ctx context.Context, run dbRunner, id uuid.UUID, forUpdate bool) (circulation.Borrow, error) {
	selectStmt := goqu.Dialect(dialectPostgres).
		From(tableBorrows).
		Select(colID, colBookID, colMemberID, colBorrowDate, colDueDate, colReturnDate, colStatus, colFineAmount).
		Where(goqu.Ex{colID: id.String()})

	if forUpdate {
		selectStmt = selectStmt.ForUpdate(exp.Wait)
	}

	sqlQuery, _, toSQLErr := selectStmt.ToSQL()
	if toSQLErr != nil {
		return circulation.Borrow{}, cs.buildQueryError(toSQLErr)
	}

	rows, err := cs.executeQuery(ctx, run, sqlQuery)
	if err != nil {
		return circulation.Borrow{}, err
	}
	defer cs.closeRows(rows)

	if !rows.Next() {
		return circulation.Borrow{}, circulation.ErrBorrowNotFound
	}

	return cs.scanBorrow(rows)
}

func (cs CirculationStore) scanBorrow(rows adapters.DBRows) (circulation.Borrow, error) {
	var borrow circulation.Borrow
	var status string
	var returnDate sql.NullTime

	scanErr := rows.Scan(
		&borrow.ID,
		&borrow.BookID,
		&borrow.MemberID,
		&borrow.BorrowDate,
		&borrow.DueDate,
		&returnDate,
		&status,
		&borrow.FineAmount,
	)
	if scanErr != nil {
		return circulation.Borrow{}, cs.scanRowError(scanErr)
	}

	borrow.Status = circulation.BorrowStatus(status)
	if returnDate.Valid {
		t := returnDate.Time
		borrow.ReturnDate = &t
	}

	return borrow, nil
}

func (cs CirculationStore) listPendingFines(ctx context.Context, run dbRunner, memberID uuid.UUID, forUpdate bool) ([]circulation.Fine, error) {
	builder := goqu.Dialect(dialectPostgres)

	// Fines reference borrows; the member is reached through the borrow row.
	// Ordered oldest first because reconciliation settles oldest fines first.
	selectStmt := builder.
		From(goqu.T(tableFines).As("f")).
		Join(
			goqu.T(tableBorrows).As("b"),
			goqu.On(goqu.Ex{"f." + colBorrowID: goqu.I("b." + colID)}),
		).
		Select(
			"f."+colID, "f."+colBorrowID, "f."+colAmount, "f."+colReason,
			"f."+colIssueDate, "f."+colDueDate, "f."+colStatus,
			"f."+colPaymentDate, "f."+colPaymentMethod,
		).
		Where(goqu.And(
			goqu.Ex{"b." + colMemberID: memberID.String()},
			goqu.Ex{"f." + colStatus: string(circulation.FineStatusPending)},
		)).
		Order(goqu.I("f." + colIssueDate).Asc())

	if forUpdate {
		selectStmt = selectStmt.ForUpdate(exp.Wait)
	}

	sqlQuery, _, toSQLErr := selectStmt.ToSQL()
	if toSQLErr != nil {
		return nil, cs.buildQueryError(toSQLErr)
	}

	rows, err := cs.executeQuery(ctx, run, sqlQuery)
	if err != nil {
		return nil, err
	}
	defer cs.closeRows(rows)

	fines := make([]circulation.Fine, 0)

	for rows.Next() {
		var fine circulation.Fine
		var status string
		var paymentDate sql.NullTime

		scanErr := rows.Scan(
			&fine.ID,
			&fine.BorrowID,
			&fine.Amount,
			&fine.Reason,
			&fine.IssueDate,
			&fine.DueDate,
			&status,
			&paymentDate,
			&fine.PaymentMethod,
		)
		if scanErr != nil {
			return nil, cs.scanRowError(scanErr)
		}

		fine.Status = circulation.FineStatus(status)
		if paymentDate.Valid {
			t := paymentDate.Time
			fine.PaymentDate = &t
		}

		fines = append(fines, fine)
	}

	return fines, nil
}

/*** Execution helpers ***/

// executeQuery executes the SQL query with timing and logging.
func (cs CirculationStore) executeQuery(ctx context.Context, run dbRunner, sqlQuery string) (adapters.DBRows, error) {
	start := time.Now()
	rows, queryErr := run.Query(ctx, sqlQuery)
	cs.logQueryWithDuration(sqlQuery, logActionQuery, time.Since(start))

	if queryErr != nil {
		if cs.logger != nil {
			cs.logger.Error(logMsgDBQueryFailed, logAttrError, queryErr.Error(), logAttrQuery, sqlQuery)
		}

		return nil, errors.Join(ErrQueryingStoreFailed, queryErr)
	}

	return rows, nil
}

// executeStatement executes an SQL statement with timing and logging and returns rows affected.
func (cs CirculationStore) executeStatement(ctx context.Context, run dbRunner, sqlQuery string) (int64, error) {
	start := time.Now()
	result, execErr := run.Exec(ctx, sqlQuery)
	cs.logQueryWithDuration(sqlQuery, logActionExec, time.Since(start))

	if execErr != nil {
		if cs.logger != nil {
			cs.logger.Error(logMsgDBExecFailed, logAttrError, execErr.Error(), logAttrQuery, sqlQuery)
		}

		return 0, errors.Join(ErrExecutingStatementFailed, execErr)
	}

	rowsAffected, rowsAffectedErr := result.RowsAffected()
	if rowsAffectedErr != nil {
		if cs.logger != nil {
			cs.logger.Error(logMsgRowsAffectedFailed, logAttrError, rowsAffectedErr.Error())
		}

		return 0, errors.Join(ErrGettingRowsAffectedFailed, rowsAffectedErr)
	}

	return rowsAffected, nil
}

// closeRows safely closes database rows and logs any errors.
func (cs CirculationStore) closeRows(rows adapters.DBRows) {
	if closeErr := rows.Close(); closeErr != nil {
		if cs.logger != nil {
			cs.logger.Warn(logMsgCloseRowsFailed, logAttrError, closeErr.Error())
		}
	}
}

func (cs CirculationStore) buildQueryError(err error) error {
	if cs.logger != nil {
		cs.logger.Error(logMsgBuildQueryFailed, logAttrError, err.Error())
	}

	return errors.Join(ErrBuildingQueryFailed, err)
}

func (cs CirculationStore) scanRowError(err error) error {
	if cs.logger != nil {
		cs.logger.Error(logMsgScanRowFailed, logAttrError, err.Error())
	}

	return errors.Join(ErrScanningDBRowFailed, err)
}

// logQueryWithDuration logs SQL queries with execution time at debug level if the logger is configured.
func (cs CirculationStore) logQueryWithDuration(sqlQuery string, action string, duration time.Duration) {
	if cs.logger != nil {
		cs.logger.Debug(logMsgSQLExecuted+action, logAttrDurationMS, cs.durationToMilliseconds(duration), logAttrQuery, sqlQuery)
	}
}

// logOperation logs operational information at info level if the logger is configured.
func (cs CirculationStore) logOperation(action string, args ...any) {
	if cs.logger != nil {
		cs.logger.Info(logMsgOperation+action, args...)
	}
}

// durationToMilliseconds converts a time.Duration to float64 milliseconds with 3 decimal places.
func (cs CirculationStore) durationToMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}
