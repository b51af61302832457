package class

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"rope-coach/internal/models"
	"rope-coach/internal/repository"
)

type classRepository struct {
	db *sqlx.DB
}

func NewClassRepository(db *sqlx.DB) repository.ClassRepository {
	return &classRepository{db: db}
}

func (r *classRepository) GetAll(ctx context.Context) ([]models.ClassEntity, error) {
	query := `
		SELECT id, name, coach_name, schedule, template_id, student_ids
		FROM coach.classes
		ORDER BY name
	`

	var classes []models.ClassEntity
	if err := r.db.SelectContext(ctx, &classes, query); err != nil {
		return nil, err
	}
	return classes, nil
}

func (r *classRepository) GetByID(ctx context.Context, id string) (*models.ClassEntity, error) {
	query := `
		SELECT id, name, coach_name, schedule, template_id, student_ids
		FROM coach.classes
		WHERE id = $1
	`

	class := &models.ClassEntity{}
	err := r.db.GetContext(ctx, class, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // группа не найдена
		}
		return nil, err
	}
	return class, nil
}
