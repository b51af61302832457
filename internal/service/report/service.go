package report_service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"rope-coach/internal/engine/series"
	"rope-coach/internal/engine/snapshot"
	"rope-coach/internal/models"
	"rope-coach/internal/repository"
	"rope-coach/internal/service"
)

// RecentSessions - сколько последних занятий смотрим для профиля
const RecentSessions = 50

type reportService struct {
	studentRepo    repository.StudentRepository
	sessionRepo    repository.SessionRepository
	referenceRepo  repository.ReferenceRepository
	assessmentRepo repository.AssessmentRepository
	billing        service.BillingService
	log            *zap.Logger
}

func NewReportService(
	studentRepo repository.StudentRepository,
	sessionRepo repository.SessionRepository,
	referenceRepo repository.ReferenceRepository,
	assessmentRepo repository.AssessmentRepository,
	billing service.BillingService,
	log *zap.Logger,
) service.ReportService {
	return &reportService{
		studentRepo:    studentRepo,
		sessionRepo:    sessionRepo,
		referenceRepo:  referenceRepo,
		assessmentRepo: assessmentRepo,
		billing:        billing,
		log:            log.Named("report"),
	}
}

// GetStudentReport собирает профиль: графики строятся только по закрытым
// занятиям, где студент есть в посещаемости; баланс - по всей истории.
func (s *reportService) GetStudentReport(ctx context.Context, studentID string) (*service.StudentReport, error) {
	student, err := s.studentRepo.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if student == nil {
		return nil, fmt.Errorf("student %s: %w", studentID, models.ErrStudentNotFound)
	}

	recent, err := s.sessionRepo.Recent(ctx, RecentSessions)
	if err != nil {
		return nil, fmt.Errorf("load sessions: %w", err)
	}
	sessions := make([]models.SessionRecord, 0, len(recent))
	for _, sess := range recent {
		if sess.Closed && sess.HasStudent(studentID) {
			sessions = append(sessions, sess)
		}
	}

	nodes, err := s.referenceRepo.GetWarriorNodes(ctx)
	if err != nil {
		return nil, fmt.Errorf("load warrior path: %w", err)
	}
	results, err := s.assessmentRepo.GetByStudent(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("load fitness tests: %w", err)
	}
	wallet, err := s.billing.GetWallet(ctx, studentID)
	if err != nil {
		return nil, err
	}

	report := &service.StudentReport{
		Student:     student,
		Single30:    series.Speed(sessions, models.JumpSingle, models.Window30, studentID),
		Double30:    series.Speed(sessions, models.JumpDouble, models.Window30, studentID),
		Progression: series.Progression(sessions, nodes, studentID),
		Wallet:      wallet,
		Sessions:    len(sessions),
	}
	if radar, ok := snapshot.LatestRadar(results); ok {
		report.Radar = radar
	}
	return report, nil
}
