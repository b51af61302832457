package session_service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"rope-coach/internal/engine/ledger"
	"rope-coach/internal/engine/series"
	"rope-coach/internal/events"
	"rope-coach/internal/models"
	"rope-coach/internal/models/config"
	"rope-coach/internal/repository"
	"rope-coach/internal/service"
	"rope-coach/pkg/monitoring"
)

type sessionService struct {
	sessionRepo   repository.SessionRepository
	classRepo     repository.ClassRepository
	studentRepo   repository.StudentRepository
	referenceRepo repository.ReferenceRepository
	billing       service.BillingService
	publisher     events.Publisher
	threshold     float64
	log           *zap.Logger
}

func NewSessionService(
	sessionRepo repository.SessionRepository,
	classRepo repository.ClassRepository,
	studentRepo repository.StudentRepository,
	referenceRepo repository.ReferenceRepository,
	billing service.BillingService,
	publisher events.Publisher,
	cfg *config.Config,
	log *zap.Logger,
) service.SessionService {
	return &sessionService{
		sessionRepo:   sessionRepo,
		classRepo:     classRepo,
		studentRepo:   studentRepo,
		referenceRepo: referenceRepo,
		billing:       billing,
		publisher:     publisher,
		threshold:     cfg.Billing.RenewalThreshold,
		log:           log.Named("session"),
	}
}

func (s *sessionService) GetClasses(ctx context.Context) ([]models.ClassEntity, error) {
	return s.classRepo.GetAll(ctx)
}

// Start открывает черновик занятия: все студенты группы отмечены присутствующими,
// списание по умолчанию 1. Если у группы уже есть открытый черновик, возвращается он.
func (s *sessionService) Start(ctx context.Context, classID string, date time.Time) (*models.SessionRecord, error) {
	class, err := s.classRepo.GetByID(ctx, classID)
	if err != nil {
		return nil, fmt.Errorf("get class %s: %w", classID, err)
	}
	if class == nil {
		return nil, fmt.Errorf("class %s: %w", classID, models.ErrClassNotFound)
	}

	open, err := s.sessionRepo.ListOpenByClass(ctx, classID)
	if err != nil {
		return nil, fmt.Errorf("list open sessions: %w", err)
	}
	if len(open) > 0 {
		s.log.Info("продолжаем открытый черновик",
			zap.String("class_id", classID),
			zap.String("session_id", open[0].ID),
		)
		return &open[0], nil
	}

	attendance := make(models.AttendanceList, 0, len(class.StudentIDs))
	for _, id := range class.StudentIDs {
		attendance = append(attendance, models.AttendanceItem{StudentID: id, Present: true})
	}
	consume := models.DefaultLessonConsume
	session := &models.SessionRecord{
		ID:            uuid.NewString(),
		ClassID:       classID,
		Date:          date,
		TemplateID:    class.TemplateID,
		Attendance:    attendance,
		LessonConsume: &consume,
	}
	if err := s.sessionRepo.Upsert(ctx, session); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	s.log.Info("черновик занятия создан",
		zap.String("class_id", classID),
		zap.String("session_id", session.ID),
		zap.Int("students", len(attendance)),
	)
	return session, nil
}

func (s *sessionService) GetByID(ctx context.Context, id string) (*models.SessionRecord, error) {
	session, err := s.sessionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get session %s: %w", id, err)
	}
	if session == nil {
		return nil, fmt.Errorf("session %s: %w", id, models.ErrSessionNotFound)
	}
	return session, nil
}

func (s *sessionService) ListByClass(ctx context.Context, classID string) ([]models.SessionRecord, error) {
	class, err := s.classRepo.GetByID(ctx, classID)
	if err != nil {
		return nil, err
	}
	if class == nil {
		return nil, fmt.Errorf("class %s: %w", classID, models.ErrClassNotFound)
	}
	return s.sessionRepo.ListByClass(ctx, classID)
}

// edit применяет правку к открытому черновику и сразу сохраняет его
func (s *sessionService) edit(ctx context.Context, id string, fn func(*models.SessionRecord) error) (*models.SessionRecord, error) {
	session, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if session.Closed {
		return nil, fmt.Errorf("session %s: %w", id, models.ErrSessionClosed)
	}
	if err := fn(session); err != nil {
		return nil, err
	}
	if err := s.sessionRepo.Upsert(ctx, session); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return session, nil
}

func (s *sessionService) SetPresence(ctx context.Context, sessionID, studentID string, present bool) (*models.SessionRecord, error) {
	return s.edit(ctx, sessionID, func(session *models.SessionRecord) error {
		for i := range session.Attendance {
			if session.Attendance[i].StudentID == studentID {
				session.Attendance[i].Present = present
				return nil
			}
		}
		// гость не из состава группы
		student, err := s.studentRepo.GetByID(ctx, studentID)
		if err != nil {
			return err
		}
		if student == nil {
			return fmt.Errorf("student %s: %w", studentID, models.ErrStudentNotFound)
		}
		session.Attendance = append(session.Attendance, models.AttendanceItem{StudentID: studentID, Present: present})
		return nil
	})
}

func (s *sessionService) SetLessonConsume(ctx context.Context, sessionID string, consume float64) (*models.SessionRecord, error) {
	if consume < 0 {
		return nil, models.ErrInvalidConsume
	}
	return s.edit(ctx, sessionID, func(session *models.SessionRecord) error {
		session.LessonConsume = &consume
		return nil
	})
}

func (s *sessionService) SetOverride(ctx context.Context, sessionID, studentID string, consume float64) (*models.SessionRecord, error) {
	if consume < 0 {
		return nil, models.ErrInvalidConsume
	}
	return s.edit(ctx, sessionID, func(session *models.SessionRecord) error {
		if !session.HasStudent(studentID) {
			return fmt.Errorf("student %s is not in session: %w", studentID, models.ErrStudentNotFound)
		}
		for i := range session.ConsumeOverrides {
			if session.ConsumeOverrides[i].StudentID == studentID {
				session.ConsumeOverrides[i].Consume = consume
				return nil
			}
		}
		session.ConsumeOverrides = append(session.ConsumeOverrides, models.ConsumeOverride{StudentID: studentID, Consume: consume})
		return nil
	})
}

func (s *sessionService) RecordSpeed(ctx context.Context, sessionID, studentID string, mode models.JumpMode, window models.WindowSec, reps int) (*models.SessionRecord, error) {
	if !mode.Valid() {
		return nil, fmt.Errorf("%w: %q", models.ErrUnknownJumpMode, mode)
	}
	if !window.Valid() {
		return nil, fmt.Errorf("%w: %d", models.ErrUnknownWindow, window)
	}
	if reps < 0 {
		return nil, models.ErrInvalidReps
	}
	return s.edit(ctx, sessionID, func(session *models.SessionRecord) error {
		if !session.HasStudent(studentID) {
			return fmt.Errorf("student %s is not in session: %w", studentID, models.ErrStudentNotFound)
		}
		record := models.SpeedRecord{
			ID:        uuid.NewString(),
			StudentID: studentID,
			Mode:      mode,
			Window:    window,
			Reps:      reps,
		}
		session.Speed = series.MergeSpeed(session.Speed, []models.SpeedRecord{record})
		return nil
	})
}

// RecordAttempt - повторная попытка того же элемента перезаписывает предыдущую
func (s *sessionService) RecordAttempt(ctx context.Context, sessionID, studentID, moveID string, passed bool) (*models.SessionRecord, error) {
	return s.edit(ctx, sessionID, func(session *models.SessionRecord) error {
		if !session.HasStudent(studentID) {
			return fmt.Errorf("student %s is not in session: %w", studentID, models.ErrStudentNotFound)
		}
		attempt := models.SkillAttempt{
			ID:        uuid.NewString(),
			StudentID: studentID,
			MoveID:    moveID,
			Passed:    passed,
		}
		for _, a := range session.Freestyle {
			if a.StudentID == studentID && a.MoveID == moveID {
				attempt.ID = a.ID
				break
			}
		}
		session.Freestyle = series.MergeAttempts(session.Freestyle, []models.SkillAttempt{attempt})
		return nil
	})
}

func (s *sessionService) AddNote(ctx context.Context, sessionID, studentID, comments string) (*models.SessionRecord, error) {
	comments = strings.TrimSpace(comments)
	return s.edit(ctx, sessionID, func(session *models.SessionRecord) error {
		if !session.HasStudent(studentID) {
			return fmt.Errorf("student %s is not in session: %w", studentID, models.ErrStudentNotFound)
		}
		session.Notes = append(session.Notes, models.TrainingNote{
			ID:        uuid.NewString(),
			StudentID: studentID,
			Comments:  comments,
		})
		return nil
	})
}

// Close закрывает занятие: считает хайлайты, сохраняет закрытую сессию,
// публикует события и возвращает балансы присутствовавших.
func (s *sessionService) Close(ctx context.Context, sessionID string) (*service.CloseResult, error) {
	session, err := s.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Closed {
		return nil, fmt.Errorf("session %s: %w", sessionID, models.ErrSessionClosed)
	}

	ids := make([]string, 0, len(session.Attendance))
	for _, a := range session.Attendance {
		ids = append(ids, a.StudentID)
	}
	students, err := s.studentRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load students: %w", err)
	}
	moves, err := s.referenceRepo.GetRankMoves(ctx)
	if err != nil {
		return nil, fmt.Errorf("load rank moves: %w", err)
	}

	session.Highlights = series.Highlights(session.Speed, session.Freestyle, students, moves)
	session.Closed = true
	if err := s.sessionRepo.Upsert(ctx, session); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	charged, chargedIDs := chargedStudents(session)
	var total float64
	for _, c := range charged {
		total += c.Lessons
	}
	monitoring.SessionsClosed.Inc()
	monitoring.LessonsConsumed.Add(total)

	s.log.Info("занятие закрыто",
		zap.String("session_id", session.ID),
		zap.String("class_id", session.ClassID),
		zap.Int("charged", len(charged)),
		zap.Float64("lessons", total),
		zap.Strings("highlights", session.Highlights),
	)

	// сессия уже закрыта, ошибки публикации только логируем
	if err := s.publisher.PublishSessionClosed(session, charged); err != nil {
		s.log.Warn("не удалось опубликовать session.closed", zap.Error(err))
	}

	wallets, err := s.billing.GetWallets(ctx, chargedIDs)
	if err != nil {
		return nil, fmt.Errorf("load wallets: %w", err)
	}
	result := &service.CloseResult{Session: session, Wallets: wallets}
	for _, w := range ledger.DueForRenewal(wallets, s.threshold) {
		result.LowBalance = append(result.LowBalance, w)
		if err := s.publisher.PublishLowBalance(w); err != nil {
			s.log.Warn("не удалось опубликовать wallet.low_balance",
				zap.String("student_id", w.StudentID),
				zap.Error(err),
			)
		}
	}
	return result, nil
}

// chargedStudents - присутствовавшие (по первой записи) и их списание
func chargedStudents(session *models.SessionRecord) ([]events.ChargedStudent, []string) {
	seen := make(map[string]bool)
	var charged []events.ChargedStudent
	var ids []string
	for _, a := range session.Attendance {
		if seen[a.StudentID] {
			continue
		}
		seen[a.StudentID] = true
		if !a.Present {
			continue
		}
		charged = append(charged, events.ChargedStudent{
			StudentID: a.StudentID,
			Lessons:   ledger.Charge(session, a.StudentID),
		})
		ids = append(ids, a.StudentID)
	}
	return charged, ids
}
