package postgresengine

import "context"

// Schema statements are idempotent so test wrappers and dev tooling can call
// CreateSchema on every start. Production deployments run proper migrations.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS books (
		id uuid PRIMARY KEY,
		title text NOT NULL,
		isbn text NOT NULL,
		status text NOT NULL,
		total_copies integer NOT NULL,
		available_copies integer NOT NULL,
		CONSTRAINT books_copies_within_total CHECK (available_copies >= 0 AND available_copies <= total_copies)
	)`,

	`CREATE TABLE IF NOT EXISTS members (
		id uuid PRIMARY KEY,
		name text NOT NULL,
		is_active boolean NOT NULL,
		membership_expiry date NOT NULL,
		max_books_allowed integer NOT NULL,
		current_books_borrowed integer NOT NULL,
		CONSTRAINT members_borrowed_non_negative CHECK (current_books_borrowed >= 0)
	)`,

	`CREATE TABLE IF NOT EXISTS borrows (
		id uuid PRIMARY KEY,
		book_id uuid NOT NULL REFERENCES books (id),
		member_id uuid NOT NULL REFERENCES members (id),
		borrow_date timestamptz NOT NULL,
		due_date date NOT NULL,
		return_date timestamptz,
		status text NOT NULL,
		fine_amount numeric(8, 2) NOT NULL DEFAULT 0
	)`,

	`CREATE INDEX IF NOT EXISTS idx_borrows_member ON borrows (member_id, borrow_date DESC)`,

	`CREATE TABLE IF NOT EXISTS fines (
		id uuid PRIMARY KEY,
		borrow_id uuid NOT NULL REFERENCES borrows (id),
		amount numeric(8, 2) NOT NULL,
		reason text NOT NULL,
		issue_date timestamptz NOT NULL,
		due_date date NOT NULL,
		status text NOT NULL,
		payment_date timestamptz,
		payment_method text NOT NULL DEFAULT ''
	)`,

	`CREATE INDEX IF NOT EXISTS idx_fines_borrow ON fines (borrow_id)`,

	`CREATE TABLE IF NOT EXISTS reservations (
		id uuid PRIMARY KEY,
		book_id uuid NOT NULL REFERENCES books (id),
		member_id uuid NOT NULL REFERENCES members (id),
		reservation_date timestamptz NOT NULL,
		expiry_date timestamptz NOT NULL,
		status text NOT NULL
	)`,

	// One active reservation per member and book; expired or fulfilled
	// reservations do not block a new one.
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_reservations_one_active
		ON reservations (book_id, member_id) WHERE status = 'active'`,

	`CREATE TABLE IF NOT EXISTS payments (
		id uuid PRIMARY KEY,
		member_id uuid NOT NULL REFERENCES members (id),
		amount numeric(8, 2) NOT NULL,
		method text NOT NULL,
		status text NOT NULL,
		payment_date timestamptz NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS payment_fines (
		payment_id uuid NOT NULL REFERENCES payments (id),
		fine_id uuid NOT NULL REFERENCES fines (id),
		PRIMARY KEY (payment_id, fine_id)
	)`,

	`CREATE TABLE IF NOT EXISTS circulation_log (
		sequence_number bigint GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
		event_type text NOT NULL,
		occurred_at timestamptz NOT NULL,
		payload jsonb NOT NULL
	)`,
}

// CreateSchema creates all circulation tables and indexes if they do not exist yet.
func (cs CirculationStore) CreateSchema(ctx context.Context) error {
	for _, statement := range schemaStatements {
		if _, err := cs.executeStatement(ctx, cs.db, statement); err != nil {
			return err
		}
	}

	return nil
}
