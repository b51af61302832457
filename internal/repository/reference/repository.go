package reference

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"rope-coach/internal/models"
	"rope-coach/internal/repository"
)

type referenceRepository struct {
	db *sqlx.DB
}

func NewReferenceRepository(db *sqlx.DB) repository.ReferenceRepository {
	return &referenceRepository{db: db}
}

func (r *referenceRepository) GetBenchmarks(ctx context.Context) ([]models.Benchmark, error) {
	benchmarks := []models.Benchmark{}
	query := `
		SELECT id, quality, age_min, age_max, gender, unit, p25, p50, p75, min, max
		FROM coach.benchmarks
		ORDER BY quality, age_min
	`
	if err := r.db.SelectContext(ctx, &benchmarks, query); err != nil {
		return nil, err
	}
	return benchmarks, nil
}

func (r *referenceRepository) GetWarriorNodes(ctx context.Context) ([]models.WarriorPathNode, error) {
	nodes := []models.WarriorPathNode{}
	query := `SELECT id, rank, title, move_ids, points FROM coach.warrior_nodes ORDER BY rank, id`
	if err := r.db.SelectContext(ctx, &nodes, query); err != nil {
		return nil, err
	}
	return nodes, nil
}

func (r *referenceRepository) GetRankMoves(ctx context.Context) ([]models.RankMove, error) {
	moves := []models.RankMove{}
	query := `SELECT id, rank, name, tags, description, criteria FROM coach.rank_moves ORDER BY rank, id`
	if err := r.db.SelectContext(ctx, &moves, query); err != nil {
		return nil, err
	}
	return moves, nil
}

func (r *referenceRepository) GetTestItems(ctx context.Context) ([]models.FitnessTestItem, error) {
	items := []models.FitnessTestItem{}
	query := `SELECT id, name, quality, unit FROM coach.fitness_test_items ORDER BY id`
	if err := r.db.SelectContext(ctx, &items, query); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *referenceRepository) GetTestItemByID(ctx context.Context, id string) (*models.FitnessTestItem, error) {
	var item models.FitnessTestItem
	query := `SELECT id, name, quality, unit FROM coach.fitness_test_items WHERE id = $1`
	if err := r.db.GetContext(ctx, &item, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}
