package benchmark

import (
	"time"

	"rope-coach/internal/models"
)

// Radar переводит значения теста в баллы по осям качеств. Значения неизвестных
// пунктов пропускаются; при повторе качества побеждает последнее значение.
func Radar(values []models.TestValue, items []models.FitnessTestItem, benchmarks []models.Benchmark, student *models.Student, now time.Time) models.Radar {
	byID := make(map[string]models.FitnessTestItem, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}

	radar := make(models.Radar)
	for _, v := range values {
		item, ok := byID[v.ItemID]
		if !ok {
			continue
		}
		radar[item.Quality] = NormalizeAt(v.Value, item.Quality, benchmarks, student, now)
	}
	return radar
}
