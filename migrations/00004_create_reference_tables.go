package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateReferenceTables, downCreateReferenceTables)
}

func upCreateReferenceTables(ctx context.Context, tx *sql.Tx) error {
	query := `
		CREATE TABLE coach.benchmarks (
			id TEXT PRIMARY KEY,
			quality TEXT NOT NULL,
			age_min INT NOT NULL,
			age_max INT NOT NULL,
			gender TEXT CHECK (gender IN ('M', 'F')),
			unit TEXT NOT NULL,
			p25 DOUBLE PRECISION NOT NULL,
			p50 DOUBLE PRECISION NOT NULL,
			p75 DOUBLE PRECISION NOT NULL,
			min DOUBLE PRECISION NOT NULL,
			max DOUBLE PRECISION NOT NULL
		);

		CREATE TABLE coach.warrior_nodes (
			id TEXT PRIMARY KEY,
			rank INT NOT NULL,
			title TEXT NOT NULL,
			move_ids JSONB NOT NULL DEFAULT '[]',
			points INT NOT NULL
		);

		CREATE TABLE coach.rank_moves (
			id TEXT PRIMARY KEY,
			rank INT NOT NULL,
			name TEXT NOT NULL,
			tags JSONB NOT NULL DEFAULT '[]',
			description TEXT NOT NULL DEFAULT '',
			criteria TEXT NOT NULL DEFAULT ''
		);

		CREATE TABLE coach.fitness_test_items (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			quality TEXT NOT NULL,
			unit TEXT NOT NULL
		);
	`

	_, err := tx.ExecContext(ctx, query)

	return err
}

func downCreateReferenceTables(ctx context.Context, tx *sql.Tx) error {
	query := `DROP TABLE IF EXISTS coach.fitness_test_items; DROP TABLE IF EXISTS coach.rank_moves; DROP TABLE IF EXISTS coach.warrior_nodes; DROP TABLE IF EXISTS coach.benchmarks;`
	_, err := tx.ExecContext(ctx, query)

	return err
}
