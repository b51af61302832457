// Package benchmark приводит сырые результаты фитнес-тестов к шкале 0..100
// по возрастным и гендерным нормативам.
package benchmark

import (
	"math"
	"time"

	"rope-coach/internal/models"
)

const (
	// MinAge защищает от отрицательного и неправдоподобного возраста при битой дате рождения
	MinAge = 4

	yearApprox = 365 * 24 * time.Hour
)

// fallback - неявный норматив, когда подходящего нет: значение уже в шкале 0..100
var fallback = models.Benchmark{Min: 0, Max: 100}

// Normalize считает балл относительно текущего времени.
func Normalize(value float64, quality models.Quality, benchmarks []models.Benchmark, student *models.Student) int {
	return NormalizeAt(value, quality, benchmarks, student, time.Now())
}

// NormalizeAt returns round(clamp((value-min)/(max-min), 0, 1) * 100).
// Non-finite values and zero-width bands score 0.
func NormalizeAt(value float64, quality models.Quality, benchmarks []models.Benchmark, student *models.Student, now time.Time) int {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0
	}
	band, _ := FindBand(quality, benchmarks, student, now)
	return score(value, band.Min, band.Max)
}

// FindBand возвращает первый подходящий норматив. ok=false означает,
// что использован неявный диапазон 0..100.
func FindBand(quality models.Quality, benchmarks []models.Benchmark, student *models.Student, now time.Time) (models.Benchmark, bool) {
	age, knownAge := Age(student, now)
	for _, b := range benchmarks {
		if b.Quality != quality {
			continue
		}
		if knownAge && (age < b.AgeMin || age > b.AgeMax) {
			continue
		}
		if student != nil && student.Gender != nil && b.Gender != nil && *student.Gender != *b.Gender {
			continue
		}
		return b, true
	}
	return fallback, false
}

// Age - полных лет по приближению 365 дней в году, не меньше MinAge.
// Без даты рождения возраст неизвестен.
func Age(student *models.Student, now time.Time) (int, bool) {
	if student == nil || student.Birth == nil {
		return 0, false
	}
	years := int(math.Floor(float64(now.Sub(*student.Birth)) / float64(yearApprox)))
	if years < MinAge {
		years = MinAge
	}
	return years, true
}

func score(value, lo, hi float64) int {
	if hi == lo {
		return 0
	}
	ratio := (value - lo) / (hi - lo)
	if math.IsNaN(ratio) {
		return 0
	}
	ratio = math.Max(0, math.Min(1, ratio))
	return int(math.Round(ratio * 100))
}
