package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateSessionsTable, downCreateSessionsTable)
}

func upCreateSessionsTable(ctx context.Context, tx *sql.Tx) error {
	query := `
		CREATE TABLE coach.sessions (
			id TEXT PRIMARY KEY,
			class_id TEXT NOT NULL REFERENCES coach.classes(id) ON DELETE CASCADE,
			date TIMESTAMPTZ NOT NULL,
			template_id TEXT,
			attendance JSONB NOT NULL DEFAULT '[]',
			speed JSONB NOT NULL DEFAULT '[]',
			freestyle JSONB NOT NULL DEFAULT '[]',
			notes JSONB NOT NULL DEFAULT '[]',
			closed BOOLEAN NOT NULL DEFAULT false,
			lesson_consume NUMERIC,
			consume_overrides JSONB NOT NULL DEFAULT '[]',
			highlights JSONB NOT NULL DEFAULT '[]'
		);

		CREATE INDEX sessions_class_date_idx ON coach.sessions (class_id, date);
		CREATE INDEX sessions_closed_idx ON coach.sessions (closed);
	`

	_, err := tx.ExecContext(ctx, query)

	return err
}

func downCreateSessionsTable(ctx context.Context, tx *sql.Tx) error {
	query := `DROP TABLE IF EXISTS coach.sessions;`
	_, err := tx.ExecContext(ctx, query)

	return err
}
