package student_service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"rope-coach/internal/models"
	"rope-coach/internal/repository"
	"rope-coach/internal/service"
)

type studentService struct {
	studentRepo repository.StudentRepository
	log         *zap.Logger
}

func NewStudentService(studentRepo repository.StudentRepository, log *zap.Logger) service.StudentService {
	return &studentService{
		studentRepo: studentRepo,
		log:         log.Named("student"),
	}
}

func (s *studentService) GetByID(ctx context.Context, id string) (*models.Student, error) {
	student, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get student %s: %w", id, err)
	}
	if student == nil {
		return nil, fmt.Errorf("student %s: %w", id, models.ErrStudentNotFound)
	}
	return student, nil
}

func (s *studentService) GetAll(ctx context.Context) ([]models.Student, error) {
	return s.studentRepo.GetAll(ctx)
}

func (s *studentService) Save(ctx context.Context, student *models.Student) error {
	student.Name = strings.TrimSpace(student.Name)
	if student.Name == "" {
		return models.ErrEmptyName
	}
	if student.Gender != nil && !student.Gender.Valid() {
		return fmt.Errorf("%w: %q", models.ErrInvalidGender, *student.Gender)
	}
	if student.ID == "" {
		student.ID = uuid.NewString()
	}
	if student.JoinDate == nil {
		now := time.Now()
		student.JoinDate = &now
	}
	return s.studentRepo.Upsert(ctx, student)
}

func (s *studentService) RecordRankExam(ctx context.Context, studentID string, passed bool, notes string) (*models.RankExamRecord, error) {
	student, err := s.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}

	from := 0
	if student.CurrentRank != nil {
		from = *student.CurrentRank
	}
	exam := &models.RankExamRecord{
		ID:        uuid.NewString(),
		StudentID: studentID,
		Date:      time.Now(),
		FromRank:  from,
		ToRank:    from + 1,
		Passed:    passed,
		Notes:     notes,
	}
	if err := s.studentRepo.CreateRankExam(ctx, exam); err != nil {
		return nil, fmt.Errorf("save rank exam: %w", err)
	}

	if passed {
		if err := s.studentRepo.UpdateRank(ctx, studentID, exam.ToRank); err != nil {
			return nil, err
		}
		s.log.Info("ранг повышен",
			zap.String("student_id", studentID),
			zap.Int("rank", exam.ToRank),
		)
	}
	return exam, nil
}
