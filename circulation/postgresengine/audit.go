package postgresengine

import (
	"context"
	"errors"

	"github.com/doug-martin/goqu/v9"
	jsoniter "github.com/json-iterator/go"

	"github.com/openshelf/circulation-go/circulation"
)

var ErrMarshalingAuditPayloadFailed = errors.New("marshaling audit payload failed")

var marshal = jsoniter.ConfigFastest.Marshal

// AppendAuditEntry writes an audit event to the circulation log within the
// current transaction, so the audit trail commits and rolls back together
// with the state change it describes.
func (u *UnitOfWork) AppendAuditEntry(ctx context.Context, event circulation.AuditEvent) error {
	payloadJSON, marshalErr := marshal(event)
	if marshalErr != nil {
		return errors.Join(ErrMarshalingAuditPayloadFailed, marshalErr)
	}

	insertStmt := goqu.Dialect(dialectPostgres).
		Insert(tableCirculationLog).
		Rows(goqu.Record{
			colEventType:  event.EventType(),
			colOccurredAt: event.HasOccurredAt(),
			colPayload:    goqu.L(castJsonb, string(payloadJSON)),
		})

	return u.executeInsert(ctx, insertStmt)
}

// ListAuditEntries fetches the payloads of all audit entries of one event
// type in append order. Used by tests and diagnostic tooling.
func (cs CirculationStore) ListAuditEntries(ctx context.Context, eventType string) ([][]byte, error) {
	selectStmt := goqu.Dialect(dialectPostgres).
		From(tableCirculationLog).
		Select(colPayload).
		Where(goqu.Ex{colEventType: eventType}).
		Order(goqu.I("sequence_number").Asc())

	sqlQuery, _, toSQLErr := selectStmt.ToSQL()
	if toSQLErr != nil {
		return nil, cs.buildQueryError(toSQLErr)
	}

	rows, err := cs.executeQuery(ctx, cs.db, sqlQuery)
	if err != nil {
		return nil, err
	}
	defer cs.closeRows(rows)

	payloads := make([][]byte, 0)

	for rows.Next() {
		var payload []byte
		if scanErr := rows.Scan(&payload); scanErr != nil {
			return nil, cs.scanRowError(scanErr)
		}

		payloads = append(payloads, payload)
	}

	return payloads, nil
}
