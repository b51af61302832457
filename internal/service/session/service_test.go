package session_service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"rope-coach/internal/events"
	"rope-coach/internal/models"
	"rope-coach/internal/models/config"
	"rope-coach/internal/repository/memory"
	"rope-coach/internal/service"
	billing_service "rope-coach/internal/service/billing"
	session_service "rope-coach/internal/service/session"
)

type recordingPublisher struct {
	closed     []string
	charged    []events.ChargedStudent
	lowBalance []models.LessonWallet
}

func (p *recordingPublisher) PublishSessionClosed(s *models.SessionRecord, charged []events.ChargedStudent) error {
	p.closed = append(p.closed, s.ID)
	p.charged = charged
	return nil
}

func (p *recordingPublisher) PublishLowBalance(w models.LessonWallet) error {
	p.lowBalance = append(p.lowBalance, w)
	return nil
}

func (p *recordingPublisher) Close() {}

type fixture struct {
	sessions  *memory.Sessions
	billing   *memory.Billing
	publisher *recordingPublisher
	svc       service.SessionService
}

func newFixture() *fixture {
	cfg := &config.Config{Billing: config.BillingConfig{RenewalThreshold: 3}}
	students := memory.NewStudents(
		models.Student{ID: "s1", Name: "Lin"},
		models.Student{ID: "s2", Name: "Max"},
		models.Student{ID: "s3", Name: "Ann"},
	)
	tpl := "tpl-1"
	classes := memory.NewClasses(models.ClassEntity{ID: "c1", Name: "Juniors", TemplateID: &tpl, StudentIDs: models.Tags{"s1", "s2"}})
	reference := &memory.Reference{Moves: []models.RankMove{{ID: "m1", Rank: 1, Name: "Crossover"}}}

	f := &fixture{
		sessions: memory.NewSessions(),
		billing: memory.NewBilling(
			models.LessonPackage{ID: "p1", StudentID: "s1", PurchasedLessons: 10},
			models.LessonPackage{ID: "p2", StudentID: "s2", PurchasedLessons: 3},
		),
		publisher: &recordingPublisher{},
	}
	billing := billing_service.NewBillingService(f.billing, f.sessions, students, cfg, zap.NewNop())
	f.svc = session_service.NewSessionService(f.sessions, classes, students, reference, billing, f.publisher, cfg, zap.NewNop())
	return f
}

var day = time.Date(2024, 5, 4, 10, 0, 0, 0, time.UTC)

func TestStart(t *testing.T) {
	f := newFixture()

	s, err := f.svc.Start(context.Background(), "c1", day)
	require.NoError(t, err)
	assert.False(t, s.Closed)
	assert.Equal(t, "tpl-1", *s.TemplateID)
	assert.Equal(t, 1.0, *s.LessonConsume)
	require.Len(t, s.Attendance, 2)
	for _, a := range s.Attendance {
		assert.True(t, a.Present)
	}
	assert.Len(t, f.sessions.Items, 1)
}

func TestStart_ResumesOpenDraft(t *testing.T) {
	f := newFixture()

	first, err := f.svc.Start(context.Background(), "c1", day)
	require.NoError(t, err)
	second, err := f.svc.Start(context.Background(), "c1", day.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, f.sessions.Items, 1)
}

func TestStart_UnknownClass(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Start(context.Background(), "nope", day)
	require.ErrorIs(t, err, models.ErrClassNotFound)
}

func TestEdits(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	s, err := f.svc.Start(ctx, "c1", day)
	require.NoError(t, err)

	_, err = f.svc.SetPresence(ctx, s.ID, "s2", false)
	require.NoError(t, err)
	_, err = f.svc.SetPresence(ctx, s.ID, "s3", true)
	require.NoError(t, err)
	_, err = f.svc.SetOverride(ctx, s.ID, "s1", 2)
	require.NoError(t, err)
	_, err = f.svc.RecordSpeed(ctx, s.ID, "s1", models.JumpSingle, models.Window30, 80)
	require.NoError(t, err)
	_, err = f.svc.RecordSpeed(ctx, s.ID, "s1", models.JumpSingle, models.Window30, 95)
	require.NoError(t, err)
	_, err = f.svc.RecordAttempt(ctx, s.ID, "s1", "m1", false)
	require.NoError(t, err)
	_, err = f.svc.RecordAttempt(ctx, s.ID, "s1", "m1", true)
	require.NoError(t, err)
	got, err := f.svc.AddNote(ctx, s.ID, "s3", "  first visit ")
	require.NoError(t, err)

	assert.Len(t, got.Attendance, 3)
	assert.False(t, got.Attendance[1].Present)
	assert.Equal(t, 2.0, got.ChargeFor("s1"))
	require.Len(t, got.Speed, 1)
	assert.Equal(t, 95, got.Speed[0].Reps)
	require.Len(t, got.Freestyle, 1)
	assert.True(t, got.Freestyle[0].Passed)
	require.Len(t, got.Notes, 1)
	assert.Equal(t, "first visit", got.Notes[0].Comments)
}

func TestEdits_Validation(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	s, err := f.svc.Start(ctx, "c1", day)
	require.NoError(t, err)

	_, err = f.svc.SetLessonConsume(ctx, s.ID, -1)
	require.ErrorIs(t, err, models.ErrInvalidConsume)
	_, err = f.svc.RecordSpeed(ctx, s.ID, "s1", "triple", models.Window30, 10)
	require.ErrorIs(t, err, models.ErrUnknownJumpMode)
	_, err = f.svc.RecordSpeed(ctx, s.ID, "s1", models.JumpSingle, 45, 10)
	require.ErrorIs(t, err, models.ErrUnknownWindow)
	_, err = f.svc.RecordSpeed(ctx, s.ID, "s1", models.JumpSingle, models.Window30, -5)
	require.ErrorIs(t, err, models.ErrInvalidReps)
	_, err = f.svc.RecordSpeed(ctx, s.ID, "s3", models.JumpSingle, models.Window30, 5)
	require.ErrorIs(t, err, models.ErrStudentNotFound)
	_, err = f.svc.SetPresence(ctx, s.ID, "ghost", true)
	require.ErrorIs(t, err, models.ErrStudentNotFound)
	_, err = f.svc.SetPresence(ctx, "missing", "s1", true)
	require.ErrorIs(t, err, models.ErrSessionNotFound)
}

func TestClose(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	s, err := f.svc.Start(ctx, "c1", day)
	require.NoError(t, err)
	_, err = f.svc.RecordSpeed(ctx, s.ID, "s1", models.JumpSingle, models.Window30, 160)
	require.NoError(t, err)
	_, err = f.svc.RecordAttempt(ctx, s.ID, "s2", "m1", true)
	require.NoError(t, err)

	res, err := f.svc.Close(ctx, s.ID)
	require.NoError(t, err)
	assert.True(t, res.Session.Closed)
	assert.Equal(t, []string{"Lin 160 reps, new highlight!", "Max passed Crossover"}, []string(res.Session.Highlights))

	require.Len(t, res.Wallets, 2)
	assert.Equal(t, 9.0, res.Wallets[0].Remaining)
	assert.Equal(t, 2.0, res.Wallets[1].Remaining)
	require.Len(t, res.LowBalance, 1)
	assert.Equal(t, "s2", res.LowBalance[0].StudentID)

	assert.Equal(t, []string{s.ID}, f.publisher.closed)
	assert.Len(t, f.publisher.charged, 2)
	assert.Len(t, f.publisher.lowBalance, 1)

	stored, err := f.svc.GetByID(ctx, s.ID)
	require.NoError(t, err)
	assert.True(t, stored.Closed)
}

func TestClose_Twice(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	s, err := f.svc.Start(ctx, "c1", day)
	require.NoError(t, err)

	_, err = f.svc.Close(ctx, s.ID)
	require.NoError(t, err)
	_, err = f.svc.Close(ctx, s.ID)
	require.ErrorIs(t, err, models.ErrSessionClosed)
	_, err = f.svc.SetLessonConsume(ctx, s.ID, 2)
	require.ErrorIs(t, err, models.ErrSessionClosed)
}

func TestClose_AbsentNotCharged(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	s, err := f.svc.Start(ctx, "c1", day)
	require.NoError(t, err)
	_, err = f.svc.SetPresence(ctx, s.ID, "s2", false)
	require.NoError(t, err)

	res, err := f.svc.Close(ctx, s.ID)
	require.NoError(t, err)
	require.Len(t, res.Wallets, 1)
	assert.Equal(t, "s1", res.Wallets[0].StudentID)
	assert.Empty(t, res.LowBalance)
}

// staleSessions отдаёт копию сессии, прочитанную до её закрытия
type staleSessions struct {
	*memory.Sessions
	stale models.SessionRecord
}

func (r *staleSessions) GetByID(_ context.Context, id string) (*models.SessionRecord, error) {
	s := r.stale
	return &s, nil
}

func TestEditAndCloseAfterConcurrentClose(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	draft, err := f.svc.Start(ctx, "c1", day)
	require.NoError(t, err)
	_, err = f.svc.Close(ctx, draft.ID)
	require.NoError(t, err)
	require.Len(t, f.publisher.closed, 1)

	cfg := &config.Config{Billing: config.BillingConfig{RenewalThreshold: 3}}
	students := memory.NewStudents(models.Student{ID: "s1", Name: "Lin"}, models.Student{ID: "s2", Name: "Max"})
	stale := &staleSessions{Sessions: f.sessions, stale: *draft}
	stale.stale.Closed = false
	stale.stale.Attendance = append(models.AttendanceList(nil), draft.Attendance...)
	billing := billing_service.NewBillingService(f.billing, f.sessions, students, cfg, zap.NewNop())
	late := session_service.NewSessionService(stale, memory.NewClasses(), students, &memory.Reference{}, billing, f.publisher, cfg, zap.NewNop())

	_, err = late.SetPresence(ctx, draft.ID, "s2", false)
	require.ErrorIs(t, err, models.ErrSessionClosed)

	_, err = late.Close(ctx, draft.ID)
	require.ErrorIs(t, err, models.ErrSessionClosed)

	stored, err := f.sessions.GetByID(ctx, draft.ID)
	require.NoError(t, err)
	assert.True(t, stored.Closed)
	presence, ok := stored.AttendanceFor("s2")
	require.True(t, ok)
	assert.True(t, presence.Present)
	assert.Len(t, f.publisher.closed, 1)
}
