// Package postgreswrapper abstracts over the supported database adapters so
// store and feature tests can run against pgx.pool, sql.db or sqlx.db,
// selected through the ADAPTER_TYPE environment variable.
package postgreswrapper

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"

	"github.com/openshelf/circulation-go/circulation/postgresengine"
	"github.com/openshelf/circulation-go/features/shared/shell/config"
)

// Engine type constants
const (
	typePGXPool = "pgx.pool"
	typeSQLDB   = "sql.db"
	typeSQLXDB  = "sqlx.db"
)

const truncateAllTables = `TRUNCATE TABLE
	payment_fines, payments, fines, reservations, borrows, members, books, circulation_log
	RESTART IDENTITY CASCADE`

// Wrapper interface to abstract over different engine types
type Wrapper interface {
	GetStore() postgresengine.CirculationStore
	Close()
}

// PGXPoolWrapper wraps pgxpool-based testing
type PGXPoolWrapper struct {
	pool  *pgxpool.Pool
	store postgresengine.CirculationStore
}

func (e *PGXPoolWrapper) GetStore() postgresengine.CirculationStore {
	return e.store
}

func (e *PGXPoolWrapper) Close() {
	e.pool.Close()
}

// SQLDBWrapper wraps sql.DB-based testing
type SQLDBWrapper struct {
	db    *sql.DB
	store postgresengine.CirculationStore
}

func (e *SQLDBWrapper) GetStore() postgresengine.CirculationStore {
	return e.store
}

func (e *SQLDBWrapper) Close() {
	_ = e.db.Close() // ignore error
}

// SQLXWrapper wraps sqlx.DB-based testing
type SQLXWrapper struct {
	db    *sqlx.DB
	store postgresengine.CirculationStore
}

func (e *SQLXWrapper) GetStore() postgresengine.CirculationStore {
	return e.store
}

func (e *SQLXWrapper) Close() {
	_ = e.db.Close() // ignore error
}

// CreateWrapperWithTestConfig creates the appropriate wrapper based on the
// environment variable and ensures the schema exists.
func CreateWrapperWithTestConfig(t testing.TB) Wrapper {
	engineTypeFromEnv := strings.ToLower(os.Getenv("ADAPTER_TYPE"))

	var wrapper Wrapper

	switch engineTypeFromEnv {
	case typePGXPool, "":
		connPool, err := pgxpool.NewWithConfig(context.Background(), config.PostgresPGXPoolTestConfig())
		assert.NoError(t, err, "error connecting to DB pool in test setup")

		store, err := postgresengine.NewCirculationStoreFromPGXPool(connPool)
		assert.NoError(t, err, "error creating circulation store")

		wrapper = &PGXPoolWrapper{pool: connPool, store: store}

	case typeSQLDB:
		db := config.PostgresSQLDBTestConfig()

		store, err := postgresengine.NewCirculationStoreFromSQLDB(db)
		assert.NoError(t, err, "error creating circulation store")

		wrapper = &SQLDBWrapper{db: db, store: store}

	case typeSQLXDB:
		db := config.PostgresSQLXTestConfig()

		store, err := postgresengine.NewCirculationStoreFromSQLX(db)
		assert.NoError(t, err, "error creating circulation store")

		wrapper = &SQLXWrapper{db: db, store: store}

	default: // neither one of the known types nor empty
		panic(fmt.Sprintf("unsupported wrapper type from env: %s", engineTypeFromEnv))
	}

	schemaErr := wrapper.GetStore().CreateSchema(context.Background())
	assert.NoError(t, schemaErr, "error creating schema in test setup")

	return wrapper
}

// CleanUp truncates all circulation tables for the given wrapper.
func CleanUp(t testing.TB, wrapper Wrapper) {
	switch e := wrapper.(type) {
	case *PGXPoolWrapper:
		_, err := e.pool.Exec(context.Background(), truncateAllTables)
		assert.NoError(t, err, "error cleaning up the circulation tables")

	case *SQLDBWrapper:
		_, err := e.db.Exec(truncateAllTables)
		assert.NoError(t, err, "error cleaning up the circulation tables")

	case *SQLXWrapper:
		_, err := e.db.Exec(truncateAllTables)
		assert.NoError(t, err, "error cleaning up the circulation tables")

	default:
		panic(fmt.Sprintf("unsupported wrapper type: %T", e))
	}
}

// CountAuditEntries counts audit log entries of one event type for the given wrapper.
func CountAuditEntries(t testing.TB, wrapper Wrapper, eventType string) int {
	query := fmt.Sprintf(`SELECT count(*) FROM circulation_log WHERE event_type = '%s'`, eventType)

	var cnt int
	var err error

	switch e := wrapper.(type) {
	case *PGXPoolWrapper:
		row := e.pool.QueryRow(context.Background(), query)
		err = row.Scan(&cnt)

	case *SQLDBWrapper:
		row := e.db.QueryRow(query)
		err = row.Scan(&cnt)

	case *SQLXWrapper:
		row := e.db.QueryRow(query)
		err = row.Scan(&cnt)

	default:
		panic(fmt.Sprintf("unsupported wrapper type: %T", e))
	}

	assert.NoError(t, err, "error counting audit entries")

	return cnt
}
