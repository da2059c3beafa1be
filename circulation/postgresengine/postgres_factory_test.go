package postgresengine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/openshelf/circulation-go/circulation"
	"github.com/openshelf/circulation-go/circulation/postgresengine"
)

func Test_NewCirculationStoreFromPGXPool_RejectsNilConnection(t *testing.T) {
	_, err := postgresengine.NewCirculationStoreFromPGXPool(nil)

	assert.ErrorIs(t, err, circulation.ErrNilDatabaseConnection)
}

func Test_NewCirculationStoreFromSQLDB_RejectsNilConnection(t *testing.T) {
	_, err := postgresengine.NewCirculationStoreFromSQLDB(nil)

	assert.ErrorIs(t, err, circulation.ErrNilDatabaseConnection)
}

func Test_NewCirculationStoreFromSQLX_RejectsNilConnection(t *testing.T) {
	_, err := postgresengine.NewCirculationStoreFromSQLX(nil)

	assert.ErrorIs(t, err, circulation.ErrNilDatabaseConnection)
}
