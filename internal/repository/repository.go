package repository

import (
	"context"

	"rope-coach/internal/models"
)

// Все Get-методы возвращают nil, nil, если запись не найдена

type StudentRepository interface {
	Upsert(ctx context.Context, student *models.Student) error
	GetByID(ctx context.Context, id string) (*models.Student, error)
	GetAll(ctx context.Context) ([]models.Student, error)
	GetByIDs(ctx context.Context, ids []string) ([]models.Student, error)
	UpdateRank(ctx context.Context, id string, rank int) error
	CreateRankExam(ctx context.Context, exam *models.RankExamRecord) error
}

type ClassRepository interface {
	GetByID(ctx context.Context, id string) (*models.ClassEntity, error)
	GetAll(ctx context.Context) ([]models.ClassEntity, error)
}

type TemplateRepository interface {
	Upsert(ctx context.Context, template *models.TrainingTemplate) error
	GetByID(ctx context.Context, id string) (*models.TrainingTemplate, error)
	GetAll(ctx context.Context) ([]models.TrainingTemplate, error)
	Delete(ctx context.Context, id string) error
}

type SessionRepository interface {
	Upsert(ctx context.Context, session *models.SessionRecord) error
	GetByID(ctx context.Context, id string) (*models.SessionRecord, error)
	// ListByClass - по возрастанию даты
	ListByClass(ctx context.Context, classID string) ([]models.SessionRecord, error)
	// Recent - последние limit сессий, от новых к старым
	Recent(ctx context.Context, limit int) ([]models.SessionRecord, error)
	ListClosed(ctx context.Context) ([]models.SessionRecord, error)
	ListOpenByClass(ctx context.Context, classID string) ([]models.SessionRecord, error)
}

type BillingRepository interface {
	CreatePackage(ctx context.Context, pkg *models.LessonPackage) error
	DeletePackage(ctx context.Context, id string) error
	GetPackages(ctx context.Context) ([]models.LessonPackage, error)
	GetPackagesByStudent(ctx context.Context, studentID string) ([]models.LessonPackage, error)
	CreatePayment(ctx context.Context, payment *models.PaymentRecord) error
	GetPayments(ctx context.Context) ([]models.PaymentRecord, error)
}

// ReferenceRepository - справочники: нормативы, путь воина, элементы, тесты
type ReferenceRepository interface {
	GetBenchmarks(ctx context.Context) ([]models.Benchmark, error)
	GetWarriorNodes(ctx context.Context) ([]models.WarriorPathNode, error)
	GetRankMoves(ctx context.Context) ([]models.RankMove, error)
	GetTestItems(ctx context.Context) ([]models.FitnessTestItem, error)
	GetTestItemByID(ctx context.Context, id string) (*models.FitnessTestItem, error)
}

type AssessmentRepository interface {
	Upsert(ctx context.Context, result *models.FitnessTestResult) error
	GetByStudent(ctx context.Context, studentID string) ([]models.FitnessTestResult, error)
}
