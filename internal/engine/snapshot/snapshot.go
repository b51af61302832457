// Package snapshot выбирает последний срез фитнес-тестирования.
package snapshot

import (
	"rope-coach/internal/models"
)

// Latest возвращает результат с максимальной датой. При равных датах
// побеждает первый встреченный. Входной срез не меняется.
func Latest(results []models.FitnessTestResult) (models.FitnessTestResult, bool) {
	if len(results) == 0 {
		return models.FitnessTestResult{}, false
	}
	latest := 0
	for i := 1; i < len(results); i++ {
		if results[i].Date.After(results[latest].Date) {
			latest = i
		}
	}
	return results[latest], true
}

// LatestRadar - радар последнего результата; ok=false для пустого набора.
func LatestRadar(results []models.FitnessTestResult) (models.Radar, bool) {
	r, ok := Latest(results)
	if !ok {
		return nil, false
	}
	return r.Radar, true
}
