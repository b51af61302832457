package billing_service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"rope-coach/internal/models"
	"rope-coach/internal/models/config"
	"rope-coach/internal/repository/memory"
	"rope-coach/internal/service"
	billing_service "rope-coach/internal/service/billing"
)

func testConfig() *config.Config {
	return &config.Config{Billing: config.BillingConfig{RenewalThreshold: 3}}
}

func present(ids ...string) models.AttendanceList {
	out := models.AttendanceList{}
	for _, id := range ids {
		out = append(out, models.AttendanceItem{StudentID: id, Present: true})
	}
	return out
}

type fixture struct {
	students *memory.Students
	sessions *memory.Sessions
	billing  *memory.Billing
	svc      service.BillingService
}

func newFixture() *fixture {
	f := &fixture{
		students: memory.NewStudents(
			models.Student{ID: "s1", Name: "Lin"},
			models.Student{ID: "s2", Name: "Max"},
		),
		sessions: memory.NewSessions(
			models.SessionRecord{ID: "a", Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), Closed: true, Attendance: present("s1", "s2")},
			models.SessionRecord{ID: "b", Date: time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC), Closed: true, Attendance: present("s1")},
			models.SessionRecord{ID: "c", Date: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), Closed: false, Attendance: present("s1")},
		),
		billing: memory.NewBilling(
			models.LessonPackage{ID: "p1", StudentID: "s1", PurchasedLessons: 4, Price: 400},
			models.LessonPackage{ID: "p2", StudentID: "s2", PurchasedLessons: 12, Price: 1000},
		),
	}
	f.svc = billing_service.NewBillingService(f.billing, f.sessions, f.students, testConfig(), zap.NewNop())
	return f
}

func TestGetWallet(t *testing.T) {
	f := newFixture()

	w, err := f.svc.GetWallet(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, models.LessonWallet{StudentID: "s1", TotalPurchased: 4, TotalConsumed: 2, Remaining: 2}, w)
}

func TestGetWallet_UnknownStudent(t *testing.T) {
	f := newFixture()

	_, err := f.svc.GetWallet(context.Background(), "ghost")
	require.ErrorIs(t, err, models.ErrStudentNotFound)
}

func TestGetRenewals(t *testing.T) {
	f := newFixture()

	due, err := f.svc.GetRenewals(context.Background())
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, "s1", due[0].StudentID)
}

func TestGetFinance(t *testing.T) {
	f := newFixture()
	_, _, err := f.svc.BuyPackage(context.Background(), service.BuyRequest{StudentID: "s2", Lessons: 10, Price: 800, Method: models.PaymentCard})
	require.NoError(t, err)

	summary, err := f.svc.GetFinance(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 26.0, summary.Totals.Purchased)
	assert.Equal(t, 3.0, summary.Totals.Consumed)
	assert.Equal(t, 800.0, summary.Totals.Revenue)
	require.Len(t, summary.Monthly, 1)
	assert.Equal(t, 1, summary.Distribution.Small)
	assert.Equal(t, 1, summary.Distribution.Large)
}

func TestBuyPackage(t *testing.T) {
	f := newFixture()

	pkg, payment, err := f.svc.BuyPackage(context.Background(), service.BuyRequest{StudentID: "s1", Lessons: 10, Price: 1000})
	require.NoError(t, err)
	assert.Equal(t, 100.0, *pkg.UnitPrice)
	assert.Equal(t, pkg.ID, payment.PackageID)
	assert.Equal(t, models.PaymentOther, payment.Method)

	w, err := f.svc.GetWallet(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, 12.0, w.Remaining)
}

func TestBuyPackage_Validation(t *testing.T) {
	f := newFixture()

	_, _, err := f.svc.BuyPackage(context.Background(), service.BuyRequest{StudentID: "s1", Lessons: 0, Price: 10})
	require.ErrorIs(t, err, models.ErrInvalidLessons)

	_, _, err = f.svc.BuyPackage(context.Background(), service.BuyRequest{StudentID: "s1", Lessons: 1, Method: "bitcoin"})
	require.ErrorIs(t, err, models.ErrUnknownPaymentMethod)

	_, _, err = f.svc.BuyPackage(context.Background(), service.BuyRequest{StudentID: "ghost", Lessons: 1})
	require.ErrorIs(t, err, models.ErrStudentNotFound)
}

func TestBuyPackage_RollsBackOnPaymentFailure(t *testing.T) {
	f := newFixture()
	f.billing.FailPayment = errors.New("db down")

	_, _, err := f.svc.BuyPackage(context.Background(), service.BuyRequest{StudentID: "s1", Lessons: 5, Price: 500})
	require.Error(t, err)
	assert.Len(t, f.billing.Packages, 2)
}
