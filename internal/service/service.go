package service

import (
	"context"
	"time"

	"rope-coach/internal/engine/ledger"
	"rope-coach/internal/engine/series"
	"rope-coach/internal/models"
)

type StudentService interface {
	GetByID(ctx context.Context, id string) (*models.Student, error)
	GetAll(ctx context.Context) ([]models.Student, error)
	Save(ctx context.Context, student *models.Student) error
	// RecordRankExam фиксирует экзамен на следующий ранг, при сдаче повышает ранг
	RecordRankExam(ctx context.Context, studentID string, passed bool, notes string) (*models.RankExamRecord, error)
}

type BuyRequest struct {
	StudentID string
	Lessons   float64
	Price     float64
	Method    models.PaymentMethod
	Remark    string
}

type BillingService interface {
	GetWallet(ctx context.Context, studentID string) (models.LessonWallet, error)
	GetWallets(ctx context.Context, studentIDs []string) ([]models.LessonWallet, error)
	GetAllWallets(ctx context.Context) ([]models.LessonWallet, error)
	GetFinance(ctx context.Context) (ledger.Summary, error)
	GetRenewals(ctx context.Context) ([]models.LessonWallet, error)
	BuyPackage(ctx context.Context, req BuyRequest) (*models.LessonPackage, *models.PaymentRecord, error)
	DeletePackage(ctx context.Context, packageID string) error
}

type CloseResult struct {
	Session *models.SessionRecord
	// Wallets - балансы присутствовавших после списания
	Wallets    []models.LessonWallet
	LowBalance []models.LessonWallet
}

// ///Черновик занятия: все правки сохраняются сразу, закрытие один раз
type SessionService interface {
	GetClasses(ctx context.Context) ([]models.ClassEntity, error)
	Start(ctx context.Context, classID string, date time.Time) (*models.SessionRecord, error)
	GetByID(ctx context.Context, id string) (*models.SessionRecord, error)
	ListByClass(ctx context.Context, classID string) ([]models.SessionRecord, error)

	SetPresence(ctx context.Context, sessionID, studentID string, present bool) (*models.SessionRecord, error)
	SetLessonConsume(ctx context.Context, sessionID string, consume float64) (*models.SessionRecord, error)
	SetOverride(ctx context.Context, sessionID, studentID string, consume float64) (*models.SessionRecord, error)
	RecordSpeed(ctx context.Context, sessionID, studentID string, mode models.JumpMode, window models.WindowSec, reps int) (*models.SessionRecord, error)
	RecordAttempt(ctx context.Context, sessionID, studentID, moveID string, passed bool) (*models.SessionRecord, error)
	AddNote(ctx context.Context, sessionID, studentID, comments string) (*models.SessionRecord, error)

	Close(ctx context.Context, sessionID string) (*CloseResult, error)
}

type AssessmentService interface {
	// RecordTest добавляет результат упражнения в тест квартала и пересчитывает радар
	RecordTest(ctx context.Context, studentID, itemID string, value float64, quarter string) (*models.FitnessTestResult, error)
	GetByStudent(ctx context.Context, studentID string) ([]models.FitnessTestResult, error)
}

type TemplateService interface {
	GetAll(ctx context.Context) ([]models.TrainingTemplate, error)
	GetByID(ctx context.Context, id string) (*models.TrainingTemplate, error)
	Save(ctx context.Context, template *models.TrainingTemplate) error
	Delete(ctx context.Context, id string) error
}

type StudentReport struct {
	Student     *models.Student     `json:"student"`
	Single30    []series.Point      `json:"single_30s"`
	Double30    []series.Point      `json:"double_30s"`
	Progression []series.Point      `json:"progression"`
	Radar       models.Radar        `json:"radar,omitempty"`
	Wallet      models.LessonWallet `json:"wallet"`
	Sessions    int                 `json:"sessions"`
}

type ReportService interface {
	GetStudentReport(ctx context.Context, studentID string) (*StudentReport, error)
}
