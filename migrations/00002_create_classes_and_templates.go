package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateClassesAndTemplates, downCreateClassesAndTemplates)
}

func upCreateClassesAndTemplates(ctx context.Context, tx *sql.Tx) error {
	query := `
		CREATE TABLE coach.templates (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			period TEXT NOT NULL CHECK (period IN ('PREP', 'SPEC', 'COMP')),
			weeks INT,
			blocks JSONB NOT NULL DEFAULT '[]',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);

		CREATE TABLE coach.classes (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			coach_name TEXT NOT NULL,
			schedule TEXT NOT NULL DEFAULT '',
			template_id TEXT REFERENCES coach.templates(id) ON DELETE SET NULL,
			student_ids JSONB NOT NULL DEFAULT '[]'
		);
	`

	_, err := tx.ExecContext(ctx, query)

	return err
}

func downCreateClassesAndTemplates(ctx context.Context, tx *sql.Tx) error {
	query := `DROP TABLE IF EXISTS coach.classes; DROP TABLE IF EXISTS coach.templates;`
	_, err := tx.ExecContext(ctx, query)

	return err
}
