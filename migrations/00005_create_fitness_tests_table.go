package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateFitnessTestsTable, downCreateFitnessTestsTable)
}

func upCreateFitnessTestsTable(ctx context.Context, tx *sql.Tx) error {
	query := `
		CREATE TABLE coach.fitness_tests (
			id TEXT PRIMARY KEY,
			student_id TEXT NOT NULL REFERENCES coach.students(id) ON DELETE CASCADE,
			quarter TEXT NOT NULL,
			date TIMESTAMPTZ NOT NULL,
			items JSONB NOT NULL DEFAULT '[]',
			radar JSONB NOT NULL DEFAULT '{}'
		);

		CREATE INDEX fitness_tests_student_idx ON coach.fitness_tests (student_id, date);
	`

	_, err := tx.ExecContext(ctx, query)

	return err
}

func downCreateFitnessTestsTable(ctx context.Context, tx *sql.Tx) error {
	query := `DROP TABLE IF EXISTS coach.fitness_tests;`
	_, err := tx.ExecContext(ctx, query)

	return err
}
