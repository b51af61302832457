package billing_service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"rope-coach/internal/engine/ledger"
	"rope-coach/internal/models"
	"rope-coach/internal/models/config"
	"rope-coach/internal/repository"
	"rope-coach/internal/service"
)

type billingService struct {
	billingRepo repository.BillingRepository
	sessionRepo repository.SessionRepository
	studentRepo repository.StudentRepository
	threshold   float64
	log         *zap.Logger
}

func NewBillingService(
	billingRepo repository.BillingRepository,
	sessionRepo repository.SessionRepository,
	studentRepo repository.StudentRepository,
	cfg *config.Config,
	log *zap.Logger,
) service.BillingService {
	return &billingService{
		billingRepo: billingRepo,
		sessionRepo: sessionRepo,
		studentRepo: studentRepo,
		threshold:   cfg.Billing.RenewalThreshold,
		log:         log.Named("billing"),
	}
}

func (s *billingService) GetWallet(ctx context.Context, studentID string) (models.LessonWallet, error) {
	student, err := s.studentRepo.GetByID(ctx, studentID)
	if err != nil {
		return models.LessonWallet{}, err
	}
	if student == nil {
		return models.LessonWallet{}, fmt.Errorf("student %s: %w", studentID, models.ErrStudentNotFound)
	}

	packages, err := s.billingRepo.GetPackagesByStudent(ctx, studentID)
	if err != nil {
		return models.LessonWallet{}, fmt.Errorf("load packages: %w", err)
	}
	sessions, err := s.sessionRepo.ListClosed(ctx)
	if err != nil {
		return models.LessonWallet{}, fmt.Errorf("load sessions: %w", err)
	}
	return ledger.WalletFor(studentID, packages, sessions), nil
}

func (s *billingService) GetWallets(ctx context.Context, studentIDs []string) ([]models.LessonWallet, error) {
	packages, err := s.billingRepo.GetPackages(ctx)
	if err != nil {
		return nil, fmt.Errorf("load packages: %w", err)
	}
	sessions, err := s.sessionRepo.ListClosed(ctx)
	if err != nil {
		return nil, fmt.Errorf("load sessions: %w", err)
	}
	return ledger.Wallets(studentIDs, packages, sessions), nil
}

func (s *billingService) GetAllWallets(ctx context.Context) ([]models.LessonWallet, error) {
	students, err := s.studentRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load students: %w", err)
	}
	ids := make([]string, len(students))
	for i, st := range students {
		ids[i] = st.ID
	}
	return s.GetWallets(ctx, ids)
}

func (s *billingService) GetFinance(ctx context.Context) (ledger.Summary, error) {
	wallets, err := s.GetAllWallets(ctx)
	if err != nil {
		return ledger.Summary{}, err
	}
	payments, err := s.billingRepo.GetPayments(ctx)
	if err != nil {
		return ledger.Summary{}, fmt.Errorf("load payments: %w", err)
	}
	return ledger.Summarize(wallets, payments, s.threshold), nil
}

func (s *billingService) GetRenewals(ctx context.Context) ([]models.LessonWallet, error) {
	wallets, err := s.GetAllWallets(ctx)
	if err != nil {
		return nil, err
	}
	return ledger.DueForRenewal(wallets, s.threshold), nil
}

// BuyPackage записывает пакет и оплату к нему. Если оплата не сохранилась,
// пакет удаляется, чтобы занятия не появились без денег.
func (s *billingService) BuyPackage(ctx context.Context, req service.BuyRequest) (*models.LessonPackage, *models.PaymentRecord, error) {
	if req.Lessons <= 0 {
		return nil, nil, models.ErrInvalidLessons
	}
	if req.Method == "" {
		req.Method = models.PaymentOther
	}
	if !req.Method.Valid() {
		return nil, nil, fmt.Errorf("%w: %q", models.ErrUnknownPaymentMethod, req.Method)
	}
	student, err := s.studentRepo.GetByID(ctx, req.StudentID)
	if err != nil {
		return nil, nil, err
	}
	if student == nil {
		return nil, nil, fmt.Errorf("student %s: %w", req.StudentID, models.ErrStudentNotFound)
	}

	now := time.Now()
	unitPrice := req.Price / req.Lessons
	pkg := &models.LessonPackage{
		ID:               uuid.NewString(),
		StudentID:        req.StudentID,
		PurchasedLessons: req.Lessons,
		Price:            req.Price,
		UnitPrice:        &unitPrice,
		PurchasedAt:      now,
		Remark:           req.Remark,
	}
	if err := s.billingRepo.CreatePackage(ctx, pkg); err != nil {
		return nil, nil, fmt.Errorf("create package: %w", err)
	}

	payment := &models.PaymentRecord{
		ID:        uuid.NewString(),
		StudentID: req.StudentID,
		PackageID: pkg.ID,
		Amount:    req.Price,
		Method:    req.Method,
		PaidAt:    now,
	}
	if err := s.billingRepo.CreatePayment(ctx, payment); err != nil {
		if delErr := s.billingRepo.DeletePackage(ctx, pkg.ID); delErr != nil {
			s.log.Error("не удалось откатить пакет", zap.String("package_id", pkg.ID), zap.Error(delErr))
		}
		return nil, nil, fmt.Errorf("create payment: %w", err)
	}

	s.log.Info("куплен пакет",
		zap.String("student_id", req.StudentID),
		zap.Float64("lessons", req.Lessons),
		zap.Float64("price", req.Price),
		zap.String("method", string(req.Method)),
	)
	return pkg, payment, nil
}

func (s *billingService) DeletePackage(ctx context.Context, packageID string) error {
	return s.billingRepo.DeletePackage(ctx, packageID)
}
