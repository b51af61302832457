package reference_test

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"rope-coach/internal/models"
	"rope-coach/internal/repository/reference"
)

func newMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return sqlx.NewDb(db, "sqlmock"), mock
}

func TestReferenceRepository_GetBenchmarks(t *testing.T) {
	db, mock := newMock(t)
	r := reference.NewReferenceRepository(db)

	rows := sqlmock.NewRows([]string{"id", "quality", "age_min", "age_max", "gender", "unit", "p25", "p50", "p75", "min", "max"}).
		AddRow("b1", "speed", 8, 10, nil, "count", 60.0, 80.0, 100.0, 40.0, 120.0).
		AddRow("b2", "speed", 8, 10, "F", "count", 55.0, 75.0, 95.0, 35.0, 115.0)
	mock.ExpectQuery(regexp.QuoteMeta(`FROM coach.benchmarks`)).WillReturnRows(rows)

	benchmarks, err := r.GetBenchmarks(context.Background())
	require.NoError(t, err)
	require.Len(t, benchmarks, 2)
	require.Nil(t, benchmarks[0].Gender)
	require.Equal(t, models.GenderFemale, *benchmarks[1].Gender)
	require.Equal(t, models.QualitySpeed, benchmarks[1].Quality)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReferenceRepository_GetWarriorNodes(t *testing.T) {
	db, mock := newMock(t)
	r := reference.NewReferenceRepository(db)

	rows := sqlmock.NewRows([]string{"id", "rank", "title", "move_ids", "points"}).
		AddRow("n1", 1, "Basic", []byte(`["m1","m2"]`), 10)
	mock.ExpectQuery(regexp.QuoteMeta(`FROM coach.warrior_nodes`)).WillReturnRows(rows)

	nodes, err := r.GetWarriorNodes(context.Background())
	require.NoError(t, err)
	require.Len(t, nodes, 1)
	require.Equal(t, models.Tags{"m1", "m2"}, nodes[0].MoveIDs)
	require.Equal(t, 10, nodes[0].Points)
}

func TestReferenceRepository_GetTestItemByID_NotFound(t *testing.T) {
	db, mock := newMock(t)
	r := reference.NewReferenceRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM coach.fitness_test_items WHERE id = $1`)).
		WithArgs("x").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "quality", "unit"}))

	item, err := r.GetTestItemByID(context.Background(), "x")
	require.NoError(t, err)
	require.Nil(t, item)
}
