package assessment_service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"rope-coach/internal/engine/benchmark"
	"rope-coach/internal/models"
	"rope-coach/internal/repository"
	"rope-coach/internal/service"
)

type assessmentService struct {
	assessmentRepo repository.AssessmentRepository
	referenceRepo  repository.ReferenceRepository
	studentRepo    repository.StudentRepository
	log            *zap.Logger
	now            func() time.Time
}

func NewAssessmentService(
	assessmentRepo repository.AssessmentRepository,
	referenceRepo repository.ReferenceRepository,
	studentRepo repository.StudentRepository,
	log *zap.Logger,
) service.AssessmentService {
	return &assessmentService{
		assessmentRepo: assessmentRepo,
		referenceRepo:  referenceRepo,
		studentRepo:    studentRepo,
		log:            log.Named("assessment"),
		now:            time.Now,
	}
}

// Quarter - метка квартала вида 2024-Q2
func Quarter(t time.Time) string {
	return fmt.Sprintf("%d-Q%d", t.Year(), (int(t.Month())-1)/3+1)
}

func (s *assessmentService) RecordTest(ctx context.Context, studentID, itemID string, value float64, quarter string) (*models.FitnessTestResult, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return nil, fmt.Errorf("invalid test value %v", value)
	}
	student, err := s.studentRepo.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if student == nil {
		return nil, fmt.Errorf("student %s: %w", studentID, models.ErrStudentNotFound)
	}

	items, err := s.referenceRepo.GetTestItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("load test items: %w", err)
	}
	if !hasItem(items, itemID) {
		return nil, fmt.Errorf("item %s: %w", itemID, models.ErrTestItemNotFound)
	}
	benchmarks, err := s.referenceRepo.GetBenchmarks(ctx)
	if err != nil {
		return nil, fmt.Errorf("load benchmarks: %w", err)
	}

	now := s.now()
	if quarter == "" {
		quarter = Quarter(now)
	}

	results, err := s.assessmentRepo.GetByStudent(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("load results: %w", err)
	}
	result := &models.FitnessTestResult{
		ID:        uuid.NewString(),
		StudentID: studentID,
		Quarter:   quarter,
	}
	for i := range results {
		if results[i].Quarter == quarter {
			result = &results[i]
			break
		}
	}

	result.Date = now
	result.Items = setValue(result.Items, models.TestValue{ItemID: itemID, Value: value})
	result.Radar = benchmark.Radar(result.Items, items, benchmarks, student, now)
	s.warnMissingBands(result.Items, items, benchmarks, student, now)

	if err := s.assessmentRepo.Upsert(ctx, result); err != nil {
		return nil, fmt.Errorf("save result: %w", err)
	}
	return result, nil
}

func (s *assessmentService) GetByStudent(ctx context.Context, studentID string) ([]models.FitnessTestResult, error) {
	return s.assessmentRepo.GetByStudent(ctx, studentID)
}

// warnMissingBands логирует качества, для которых не нашлось норматива
func (s *assessmentService) warnMissingBands(values []models.TestValue, items []models.FitnessTestItem, benchmarks []models.Benchmark, student *models.Student, now time.Time) {
	for _, v := range values {
		for _, item := range items {
			if item.ID != v.ItemID {
				continue
			}
			if _, ok := benchmark.FindBand(item.Quality, benchmarks, student, now); !ok {
				s.log.Warn("норматив не найден, используется шкала 0..100",
					zap.String("student_id", student.ID),
					zap.String("quality", string(item.Quality)),
				)
			}
		}
	}
}

func hasItem(items []models.FitnessTestItem, id string) bool {
	for _, item := range items {
		if item.ID == id {
			return true
		}
	}
	return false
}

func setValue(values models.TestValues, v models.TestValue) models.TestValues {
	for i := range values {
		if values[i].ItemID == v.ItemID {
			values[i] = v
			return values
		}
	}
	return append(values, v)
}
