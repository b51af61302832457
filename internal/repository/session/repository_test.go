package session_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rope-coach/internal/models"
	"rope-coach/internal/repository/session"
)

var columns = []string{"id", "class_id", "date", "template_id", "attendance", "speed", "freestyle", "notes",
	"closed", "lesson_consume", "consume_overrides", "highlights"}

func newMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return sqlx.NewDb(db, "sqlmock"), mock
}

func TestSessionRepository_Upsert(t *testing.T) {
	db, mock := newMock(t)
	r := session.NewSessionRepository(db)

	date := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	s := &models.SessionRecord{
		ID:         "sess-1",
		ClassID:    "c1",
		Date:       date,
		Attendance: models.AttendanceList{{StudentID: "s1", Present: true}},
		Closed:     true,
	}

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO coach.sessions`)).
		WithArgs("sess-1", "c1", date, sqlmock.AnyArg(),
			[]byte(`[{"student_id":"s1","present":true}]`),
			[]byte(`[]`), []byte(`[]`), []byte(`[]`),
			true, sqlmock.AnyArg(), []byte(`[]`), []byte(`[]`)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, r.Upsert(context.Background(), s))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepository_Upsert_KeepsClosedSession(t *testing.T) {
	db, mock := newMock(t)
	r := session.NewSessionRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(`WHERE coach.sessions.closed = FALSE`)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := r.Upsert(context.Background(), &models.SessionRecord{ID: "sess-1", ClassID: "c1"})
	require.ErrorIs(t, err, models.ErrSessionClosed)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepository_GetByID(t *testing.T) {
	db, mock := newMock(t)
	r := session.NewSessionRepository(db)

	date := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows(columns).AddRow(
		"sess-1", "c1", date, nil,
		[]byte(`[{"student_id":"s1","present":true},{"student_id":"s2","present":false}]`),
		[]byte(`[{"id":"r1","student_id":"s1","mode":"single","window":30,"reps":88}]`),
		[]byte(`[]`), []byte(`[]`),
		true, "0.5", []byte(`[{"student_id":"s1","consume":2}]`), []byte(`["Lin 88 reps, new record!"]`),
	)
	mock.ExpectQuery(regexp.QuoteMeta(`FROM coach.sessions WHERE id = $1`)).
		WithArgs("sess-1").
		WillReturnRows(rows)

	s, err := r.GetByID(context.Background(), "sess-1")
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Len(t, s.Attendance, 2)
	assert.Equal(t, models.Window30, s.Speed[0].Window)
	assert.Equal(t, 88, s.Speed[0].Reps)
	require.NotNil(t, s.LessonConsume)
	assert.InDelta(t, 0.5, *s.LessonConsume, 1e-9)
	assert.Equal(t, 2.0, s.ChargeFor("s1"))
	assert.Equal(t, 0.5, s.ChargeFor("s2"))
	assert.Equal(t, models.Tags{"Lin 88 reps, new record!"}, s.Highlights)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepository_GetByID_NotFound(t *testing.T) {
	db, mock := newMock(t)
	r := session.NewSessionRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM coach.sessions WHERE id = $1`)).
		WithArgs("nope").
		WillReturnRows(sqlmock.NewRows(columns))

	s, err := r.GetByID(context.Background(), "nope")
	require.NoError(t, err)
	require.Nil(t, s)
}

func TestSessionRepository_Recent(t *testing.T) {
	db, mock := newMock(t)
	r := session.NewSessionRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM coach.sessions ORDER BY date DESC LIMIT $1`)).
		WithArgs(50).
		WillReturnRows(sqlmock.NewRows(columns))

	sessions, err := r.Recent(context.Background(), 50)
	require.NoError(t, err)
	require.NotNil(t, sessions)
	require.Empty(t, sessions)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepository_ListClosed(t *testing.T) {
	db, mock := newMock(t)
	r := session.NewSessionRepository(db)

	date := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows(columns).
		AddRow("a", "c1", date, nil, []byte(`[]`), []byte(`[]`), []byte(`[]`), []byte(`[]`), true, nil, []byte(`[]`), []byte(`[]`))
	mock.ExpectQuery(regexp.QuoteMeta(`WHERE closed = TRUE ORDER BY date`)).
		WillReturnRows(rows)

	sessions, err := r.ListClosed(context.Background())
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Nil(t, sessions[0].LessonConsume)
	assert.Equal(t, models.DefaultLessonConsume, sessions[0].ChargeFor("anyone"))
}

func TestSessionRepository_ListOpenByClass(t *testing.T) {
	db, mock := newMock(t)
	r := session.NewSessionRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE class_id = $1 AND closed = FALSE`)).
		WithArgs("c1").
		WillReturnRows(sqlmock.NewRows(columns))

	sessions, err := r.ListOpenByClass(context.Background(), "c1")
	require.NoError(t, err)
	require.Empty(t, sessions)
	require.NoError(t, mock.ExpectationsWereMet())
}
