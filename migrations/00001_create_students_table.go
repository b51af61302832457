package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateStudentsTable, downCreateStudentsTable)
}

func upCreateStudentsTable(ctx context.Context, tx *sql.Tx) error {
	query := `
		CREATE SCHEMA IF NOT EXISTS coach;

		CREATE TABLE coach.students (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			gender TEXT CHECK (gender IN ('M', 'F')),
			birth DATE,
			guardian_name TEXT NOT NULL DEFAULT '',
			guardian_phone TEXT NOT NULL DEFAULT '',
			join_date DATE,
			current_rank INT CHECK (current_rank >= 1),
			tags JSONB NOT NULL DEFAULT '[]',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);

		CREATE TABLE coach.rank_exams (
			id TEXT PRIMARY KEY,
			student_id TEXT NOT NULL REFERENCES coach.students(id) ON DELETE CASCADE,
			date TIMESTAMPTZ NOT NULL,
			from_rank INT NOT NULL,
			to_rank INT NOT NULL,
			passed BOOLEAN NOT NULL,
			notes TEXT NOT NULL DEFAULT ''
		);
	`

	_, err := tx.ExecContext(ctx, query)

	return err
}

func downCreateStudentsTable(ctx context.Context, tx *sql.Tx) error {
	query := `DROP TABLE IF EXISTS coach.rank_exams; DROP TABLE IF EXISTS coach.students;`
	_, err := tx.ExecContext(ctx, query)

	return err
}
