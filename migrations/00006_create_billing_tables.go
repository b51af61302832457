package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateBillingTables, downCreateBillingTables)
}

func upCreateBillingTables(ctx context.Context, tx *sql.Tx) error {
	query := `
		CREATE TABLE coach.lesson_packages (
			id TEXT PRIMARY KEY,
			student_id TEXT NOT NULL REFERENCES coach.students(id) ON DELETE CASCADE,
			purchased_lessons NUMERIC NOT NULL CHECK (purchased_lessons > 0),
			price NUMERIC NOT NULL,
			unit_price NUMERIC,
			purchased_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			remark TEXT NOT NULL DEFAULT ''
		);

		CREATE TABLE coach.payments (
			id TEXT PRIMARY KEY,
			student_id TEXT NOT NULL REFERENCES coach.students(id) ON DELETE CASCADE,
			package_id TEXT NOT NULL REFERENCES coach.lesson_packages(id) ON DELETE CASCADE,
			amount NUMERIC NOT NULL,
			method TEXT NOT NULL DEFAULT 'other',
			paid_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);

		CREATE INDEX lesson_packages_student_idx ON coach.lesson_packages (student_id);
		CREATE INDEX payments_paid_at_idx ON coach.payments (paid_at);
	`

	_, err := tx.ExecContext(ctx, query)

	return err
}

func downCreateBillingTables(ctx context.Context, tx *sql.Tx) error {
	query := `DROP TABLE IF EXISTS coach.payments; DROP TABLE IF EXISTS coach.lesson_packages;`
	_, err := tx.ExecContext(ctx, query)

	return err
}
