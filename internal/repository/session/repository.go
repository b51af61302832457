package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"rope-coach/internal/models"
	"rope-coach/internal/repository"
)

const sessionColumns = `id, class_id, date, template_id, attendance, speed, freestyle, notes,
	closed, lesson_consume, consume_overrides, highlights`

type sessionRepository struct {
	db *sqlx.DB
}

func NewSessionRepository(db *sqlx.DB) repository.SessionRepository {
	return &sessionRepository{db: db}
}

// Upsert заменяет сессию целиком по ID. Закрытая сессия не перезаписывается:
// в этом случае возвращается ErrSessionClosed
func (r *sessionRepository) Upsert(ctx context.Context, s *models.SessionRecord) error {
	query := `
		INSERT INTO coach.sessions
		(id, class_id, date, template_id, attendance, speed, freestyle, notes,
		 closed, lesson_consume, consume_overrides, highlights)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (id) DO UPDATE SET
			class_id = EXCLUDED.class_id,
			date = EXCLUDED.date,
			template_id = EXCLUDED.template_id,
			attendance = EXCLUDED.attendance,
			speed = EXCLUDED.speed,
			freestyle = EXCLUDED.freestyle,
			notes = EXCLUDED.notes,
			closed = EXCLUDED.closed,
			lesson_consume = EXCLUDED.lesson_consume,
			consume_overrides = EXCLUDED.consume_overrides,
			highlights = EXCLUDED.highlights
		WHERE coach.sessions.closed = FALSE
	`
	res, err := r.db.ExecContext(ctx, query,
		s.ID,
		s.ClassID,
		s.Date,
		s.TemplateID,
		s.Attendance,
		s.Speed,
		s.Freestyle,
		s.Notes,
		s.Closed,
		s.LessonConsume,
		s.ConsumeOverrides,
		s.Highlights,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("session %s: %w", s.ID, models.ErrSessionClosed)
	}
	return nil
}

func (r *sessionRepository) GetByID(ctx context.Context, id string) (*models.SessionRecord, error) {
	var s models.SessionRecord
	query := `SELECT ` + sessionColumns + ` FROM coach.sessions WHERE id = $1`
	if err := r.db.GetContext(ctx, &s, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *sessionRepository) ListByClass(ctx context.Context, classID string) ([]models.SessionRecord, error) {
	query := `SELECT ` + sessionColumns + ` FROM coach.sessions WHERE class_id = $1 ORDER BY date`
	return r.selectSessions(ctx, query, classID)
}

func (r *sessionRepository) Recent(ctx context.Context, limit int) ([]models.SessionRecord, error) {
	query := `SELECT ` + sessionColumns + ` FROM coach.sessions ORDER BY date DESC LIMIT $1`
	return r.selectSessions(ctx, query, limit)
}

func (r *sessionRepository) ListClosed(ctx context.Context) ([]models.SessionRecord, error) {
	query := `SELECT ` + sessionColumns + ` FROM coach.sessions WHERE closed = TRUE ORDER BY date`
	return r.selectSessions(ctx, query)
}

// ListOpenByClass - незакрытые черновики группы, от новых к старым
func (r *sessionRepository) ListOpenByClass(ctx context.Context, classID string) ([]models.SessionRecord, error) {
	query := `SELECT ` + sessionColumns + ` FROM coach.sessions WHERE class_id = $1 AND closed = FALSE ORDER BY date DESC`
	return r.selectSessions(ctx, query, classID)
}

func (r *sessionRepository) selectSessions(ctx context.Context, query string, args ...any) ([]models.SessionRecord, error) {
	sessions := []models.SessionRecord{}
	if err := r.db.SelectContext(ctx, &sessions, query, args...); err != nil {
		return nil, err
	}
	return sessions, nil
}
