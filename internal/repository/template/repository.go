package template

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"rope-coach/internal/models"
	"rope-coach/internal/repository"
)

type templateRepository struct {
	db *sqlx.DB
}

func NewTemplateRepository(db *sqlx.DB) repository.TemplateRepository {
	return &templateRepository{db: db}
}

func (r *templateRepository) Upsert(ctx context.Context, t *models.TrainingTemplate) error {
	query := `
		INSERT INTO coach.templates (id, name, period, weeks, blocks)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			period = EXCLUDED.period,
			weeks = EXCLUDED.weeks,
			blocks = EXCLUDED.blocks
		RETURNING created_at
	`
	return r.db.QueryRowxContext(ctx, query, t.ID, t.Name, t.Period, t.Weeks, t.Blocks).Scan(&t.CreatedAt)
}

func (r *templateRepository) GetByID(ctx context.Context, id string) (*models.TrainingTemplate, error) {
	var t models.TrainingTemplate
	query := `SELECT id, name, period, weeks, blocks, created_at FROM coach.templates WHERE id = $1`
	if err := r.db.GetContext(ctx, &t, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (r *templateRepository) GetAll(ctx context.Context) ([]models.TrainingTemplate, error) {
	var templates []models.TrainingTemplate
	query := `SELECT id, name, period, weeks, blocks, created_at FROM coach.templates ORDER BY name`
	if err := r.db.SelectContext(ctx, &templates, query); err != nil {
		return nil, err
	}
	return templates, nil
}

func (r *templateRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM coach.templates WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return fmt.Errorf("шаблон с ID %s не найден: %w", id, models.ErrTemplateNotFound)
	}
	return nil
}
