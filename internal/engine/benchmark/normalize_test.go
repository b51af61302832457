package benchmark_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rope-coach/internal/engine/benchmark"
	"rope-coach/internal/models"
)

var now = time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)

func gender(g models.Gender) *models.Gender { return &g }

func bornYearsAgo(years int) *time.Time {
	// запас в несколько дней, чтобы приближение 365 дней не сдвигало возраст
	t := now.Add(-time.Duration(years)*365*24*time.Hour - 10*24*time.Hour)
	return &t
}

func TestNormalizeAt_WorkedExample(t *testing.T) {
	bands := []models.Benchmark{{Quality: models.QualitySpeed, AgeMin: 8, AgeMax: 10, Min: 50, Max: 150}}
	student := &models.Student{ID: "s1", Birth: bornYearsAgo(9)}

	assert.Equal(t, 50, benchmark.NormalizeAt(100, models.QualitySpeed, bands, student, now))
}

func TestNormalizeAt_NonFinite(t *testing.T) {
	bands := []models.Benchmark{{Quality: models.QualitySpeed, AgeMin: 0, AgeMax: 99, Min: 0, Max: 10}}
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		assert.Equal(t, 0, benchmark.NormalizeAt(v, models.QualitySpeed, bands, nil, now))
	}
}

func TestNormalizeAt_Bounds(t *testing.T) {
	bands := []models.Benchmark{{Quality: models.QualityPower, AgeMin: 4, AgeMax: 18, Min: 20, Max: 80}}
	values := []float64{-1e9, -5, 0, 19.99, 20, 35, 50, 79, 80, 81, 1e9, math.MaxFloat64, -math.MaxFloat64}
	for _, v := range values {
		got := benchmark.NormalizeAt(v, models.QualityPower, bands, nil, now)
		assert.GreaterOrEqual(t, got, 0, "value %v", v)
		assert.LessOrEqual(t, got, 100, "value %v", v)
	}
	assert.Equal(t, 0, benchmark.NormalizeAt(-5, models.QualityPower, bands, nil, now))
	assert.Equal(t, 100, benchmark.NormalizeAt(1e9, models.QualityPower, bands, nil, now))
}

func TestNormalizeAt_Monotonic(t *testing.T) {
	bands := []models.Benchmark{{Quality: models.QualityEndurance, AgeMin: 4, AgeMax: 18, Min: 10, Max: 70}}
	prev := -1
	for v := -20.0; v <= 100; v += 0.7 {
		got := benchmark.NormalizeAt(v, models.QualityEndurance, bands, nil, now)
		require.GreaterOrEqual(t, got, prev, "value %v", v)
		prev = got
	}
}

func TestNormalizeAt_DegenerateBand(t *testing.T) {
	bands := []models.Benchmark{{Quality: models.QualityCore, AgeMin: 4, AgeMax: 18, Min: 30, Max: 30}}
	for _, v := range []float64{0, 29, 30, 31, 1000} {
		assert.Equal(t, 0, benchmark.NormalizeAt(v, models.QualityCore, bands, nil, now))
	}
}

func TestNormalizeAt_FallbackBand(t *testing.T) {
	bands := []models.Benchmark{{Quality: models.QualitySpeed, AgeMin: 4, AgeMax: 18, Min: 0, Max: 10}}

	assert.Equal(t, 42, benchmark.NormalizeAt(42, models.QualityBalance, bands, nil, now))
	assert.Equal(t, 100, benchmark.NormalizeAt(150, models.QualityBalance, nil, nil, now))

	_, ok := benchmark.FindBand(models.QualityBalance, bands, nil, now)
	assert.False(t, ok)
}

func TestFindBand_AgeAndGender(t *testing.T) {
	bands := []models.Benchmark{
		{ID: "young", Quality: models.QualitySpeed, AgeMin: 4, AgeMax: 7, Min: 0, Max: 50},
		{ID: "girls", Quality: models.QualitySpeed, AgeMin: 8, AgeMax: 10, Gender: gender(models.GenderFemale), Min: 0, Max: 80},
		{ID: "boys", Quality: models.QualitySpeed, AgeMin: 8, AgeMax: 10, Gender: gender(models.GenderMale), Min: 0, Max: 90},
		{ID: "any", Quality: models.QualitySpeed, AgeMin: 8, AgeMax: 10, Min: 0, Max: 100},
	}

	tests := []struct {
		name    string
		student *models.Student
		want    string
	}{
		{"no student takes first quality match", nil, "young"},
		{"no birth skips age filter", &models.Student{Gender: gender(models.GenderMale)}, "young"},
		{"girl of nine", &models.Student{Birth: bornYearsAgo(9), Gender: gender(models.GenderFemale)}, "girls"},
		{"boy of nine", &models.Student{Birth: bornYearsAgo(9), Gender: gender(models.GenderMale)}, "boys"},
		{"unknown gender matches first band", &models.Student{Birth: bornYearsAgo(9)}, "girls"},
		{"age clamped to four", &models.Student{Birth: bornYearsAgo(1)}, "young"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			band, ok := benchmark.FindBand(models.QualitySpeed, bands, tt.student, now)
			require.True(t, ok)
			assert.Equal(t, tt.want, band.ID)
		})
	}
}

func TestAge(t *testing.T) {
	_, ok := benchmark.Age(nil, now)
	assert.False(t, ok)

	_, ok = benchmark.Age(&models.Student{}, now)
	assert.False(t, ok)

	age, ok := benchmark.Age(&models.Student{Birth: bornYearsAgo(12)}, now)
	require.True(t, ok)
	assert.Equal(t, 12, age)

	future := now.AddDate(1, 0, 0)
	age, ok = benchmark.Age(&models.Student{Birth: &future}, now)
	require.True(t, ok)
	assert.Equal(t, benchmark.MinAge, age)
}

func TestRadar(t *testing.T) {
	items := []models.FitnessTestItem{
		{ID: "jump30", Quality: models.QualitySpeed, Unit: models.UnitCount},
		{ID: "plank", Quality: models.QualityCore, Unit: models.UnitSec},
	}
	bands := []models.Benchmark{{Quality: models.QualitySpeed, AgeMin: 4, AgeMax: 99, Min: 50, Max: 150}}
	values := []models.TestValue{
		{ItemID: "jump30", Value: 100},
		{ItemID: "plank", Value: 64},
		{ItemID: "missing", Value: 10},
	}

	radar := benchmark.Radar(values, items, bands, nil, now)
	assert.Equal(t, models.Radar{models.QualitySpeed: 50, models.QualityCore: 64}, radar)
}
