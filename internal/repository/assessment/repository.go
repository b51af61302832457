package assessment

import (
	"context"

	"github.com/jmoiron/sqlx"

	"rope-coach/internal/models"
	"rope-coach/internal/repository"
)

type assessmentRepository struct {
	db *sqlx.DB
}

func NewAssessmentRepository(db *sqlx.DB) repository.AssessmentRepository {
	return &assessmentRepository{db: db}
}

func (r *assessmentRepository) Upsert(ctx context.Context, result *models.FitnessTestResult) error {
	query := `
		INSERT INTO coach.fitness_tests (id, student_id, quarter, date, items, radar)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			quarter = EXCLUDED.quarter,
			date = EXCLUDED.date,
			items = EXCLUDED.items,
			radar = EXCLUDED.radar
	`
	_, err := r.db.ExecContext(ctx, query,
		result.ID,
		result.StudentID,
		result.Quarter,
		result.Date,
		result.Items,
		result.Radar,
	)
	return err
}

// GetByStudent - все тесты студента по возрастанию даты
func (r *assessmentRepository) GetByStudent(ctx context.Context, studentID string) ([]models.FitnessTestResult, error) {
	results := []models.FitnessTestResult{}
	query := `
		SELECT id, student_id, quarter, date, items, radar
		FROM coach.fitness_tests
		WHERE student_id = $1
		ORDER BY date
	`
	if err := r.db.SelectContext(ctx, &results, query, studentID); err != nil {
		return nil, err
	}
	return results, nil
}
