package snapshot_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rope-coach/internal/engine/snapshot"
	"rope-coach/internal/models"
)

func TestLatestRadar_Empty(t *testing.T) {
	radar, ok := snapshot.LatestRadar(nil)
	assert.False(t, ok)
	assert.Nil(t, radar)
}

func TestLatestRadar_Single(t *testing.T) {
	r := models.Radar{models.QualitySpeed: 70}
	radar, ok := snapshot.LatestRadar([]models.FitnessTestResult{{ID: "q1", Radar: r}})
	require.True(t, ok)
	assert.Equal(t, r, radar)
}

func TestLatestRadar_PicksLatestWithoutReordering(t *testing.T) {
	results := []models.FitnessTestResult{
		{ID: "q1", Date: time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC), Radar: models.Radar{models.QualitySpeed: 40}},
		{ID: "q3", Date: time.Date(2026, 7, 10, 0, 0, 0, 0, time.UTC), Radar: models.Radar{models.QualitySpeed: 80}},
		{ID: "q2", Date: time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC), Radar: models.Radar{models.QualitySpeed: 60}},
	}

	radar, ok := snapshot.LatestRadar(results)
	require.True(t, ok)
	assert.Equal(t, 80, radar[models.QualitySpeed])
	assert.Equal(t, []string{"q1", "q3", "q2"}, []string{results[0].ID, results[1].ID, results[2].ID})
}

func TestLatest_TieTakesFirst(t *testing.T) {
	d := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	r, ok := snapshot.Latest([]models.FitnessTestResult{{ID: "a", Date: d}, {ID: "b", Date: d}})
	require.True(t, ok)
	assert.Equal(t, "a", r.ID)
}
