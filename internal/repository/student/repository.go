package student

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"rope-coach/internal/models"
	"rope-coach/internal/repository"
)

const studentColumns = `id, name, gender, birth, guardian_name, guardian_phone, join_date, current_rank, tags, created_at`

type studentRepository struct {
	db *sqlx.DB
}

func NewStudentRepository(db *sqlx.DB) repository.StudentRepository {
	return &studentRepository{db: db}
}

func (r *studentRepository) Upsert(ctx context.Context, student *models.Student) error {
	query := `
		INSERT INTO coach.students
		(id, name, gender, birth, guardian_name, guardian_phone, join_date, current_rank, tags)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			gender = EXCLUDED.gender,
			birth = EXCLUDED.birth,
			guardian_name = EXCLUDED.guardian_name,
			guardian_phone = EXCLUDED.guardian_phone,
			join_date = EXCLUDED.join_date,
			current_rank = EXCLUDED.current_rank,
			tags = EXCLUDED.tags
		RETURNING created_at
	`
	return r.db.QueryRowxContext(ctx, query,
		student.ID,
		student.Name,
		student.Gender,
		student.Birth,
		student.GuardianName,
		student.GuardianPhone,
		student.JoinDate,
		student.CurrentRank,
		student.Tags,
	).Scan(&student.CreatedAt)
}

func (r *studentRepository) GetByID(ctx context.Context, id string) (*models.Student, error) {
	var student models.Student
	query := `SELECT ` + studentColumns + ` FROM coach.students WHERE id = $1`
	err := r.db.GetContext(ctx, &student, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &student, nil
}

func (r *studentRepository) GetAll(ctx context.Context) ([]models.Student, error) {
	var students []models.Student
	query := `SELECT ` + studentColumns + ` FROM coach.students ORDER BY name`
	if err := r.db.SelectContext(ctx, &students, query); err != nil {
		return nil, err
	}
	return students, nil
}

func (r *studentRepository) GetByIDs(ctx context.Context, ids []string) ([]models.Student, error) {
	if len(ids) == 0 {
		return []models.Student{}, nil
	}
	query, args, err := sqlx.In(`SELECT `+studentColumns+` FROM coach.students WHERE id IN (?) ORDER BY name`, ids)
	if err != nil {
		return nil, err
	}
	var students []models.Student
	if err := r.db.SelectContext(ctx, &students, r.db.Rebind(query), args...); err != nil {
		return nil, err
	}
	return students, nil
}

func (r *studentRepository) UpdateRank(ctx context.Context, id string, rank int) error {
	query := `UPDATE coach.students SET current_rank = $1 WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, rank, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return fmt.Errorf("student %s: %w", id, models.ErrStudentNotFound)
	}
	return nil
}

func (r *studentRepository) CreateRankExam(ctx context.Context, exam *models.RankExamRecord) error {
	query := `
		INSERT INTO coach.rank_exams (id, student_id, date, from_rank, to_rank, passed, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.ExecContext(ctx, query,
		exam.ID,
		exam.StudentID,
		exam.Date,
		exam.FromRank,
		exam.ToRank,
		exam.Passed,
		exam.Notes,
	)
	return err
}
