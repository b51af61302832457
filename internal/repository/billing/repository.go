package billing

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"rope-coach/internal/models"
	"rope-coach/internal/repository"
)

const packageColumns = `id, student_id, purchased_lessons, price, unit_price, purchased_at, remark`

type billingRepository struct {
	db *sqlx.DB
}

func NewBillingRepository(db *sqlx.DB) repository.BillingRepository {
	return &billingRepository{db: db}
}

func (r *billingRepository) CreatePackage(ctx context.Context, pkg *models.LessonPackage) error {
	query := `
		INSERT INTO coach.lesson_packages
		(id, student_id, purchased_lessons, price, unit_price, purchased_at, remark)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.ExecContext(ctx, query,
		pkg.ID,
		pkg.StudentID,
		pkg.PurchasedLessons,
		pkg.Price,
		pkg.UnitPrice,
		pkg.PurchasedAt,
		pkg.Remark,
	)
	return err
}

// DeletePackage удаляет пакет вместе с его оплатами (ON DELETE CASCADE)
func (r *billingRepository) DeletePackage(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM coach.lesson_packages WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return fmt.Errorf("пакет с ID %s не найден", id)
	}
	return nil
}

func (r *billingRepository) GetPackages(ctx context.Context) ([]models.LessonPackage, error) {
	packages := []models.LessonPackage{}
	query := `SELECT ` + packageColumns + ` FROM coach.lesson_packages ORDER BY purchased_at`
	if err := r.db.SelectContext(ctx, &packages, query); err != nil {
		return nil, err
	}
	return packages, nil
}

func (r *billingRepository) GetPackagesByStudent(ctx context.Context, studentID string) ([]models.LessonPackage, error) {
	packages := []models.LessonPackage{}
	query := `SELECT ` + packageColumns + ` FROM coach.lesson_packages WHERE student_id = $1 ORDER BY purchased_at`
	if err := r.db.SelectContext(ctx, &packages, query, studentID); err != nil {
		return nil, err
	}
	return packages, nil
}

func (r *billingRepository) CreatePayment(ctx context.Context, payment *models.PaymentRecord) error {
	query := `
		INSERT INTO coach.payments (id, student_id, package_id, amount, method, paid_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.ExecContext(ctx, query,
		payment.ID,
		payment.StudentID,
		payment.PackageID,
		payment.Amount,
		payment.Method,
		payment.PaidAt,
	)
	return err
}

func (r *billingRepository) GetPayments(ctx context.Context) ([]models.PaymentRecord, error) {
	payments := []models.PaymentRecord{}
	query := `SELECT id, student_id, package_id, amount, method, paid_at FROM coach.payments ORDER BY paid_at`
	if err := r.db.SelectContext(ctx, &payments, query); err != nil {
		return nil, err
	}
	return payments, nil
}
