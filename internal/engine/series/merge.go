package series

import (
	"fmt"

	"rope-coach/internal/models"
)

func speedKey(r models.SpeedRecord) string {
	return fmt.Sprintf("%s-%s-%d", r.StudentID, r.Mode, r.Window)
}

// MergeSpeed накладывает новые замеры на текущие: на каждую тройку
// (студент, режим, окно) остаётся последний замер на месте первого появления.
func MergeSpeed(current, incoming []models.SpeedRecord) []models.SpeedRecord {
	merged := make([]models.SpeedRecord, 0, len(current)+len(incoming))
	index := make(map[string]int)
	for _, batch := range [][]models.SpeedRecord{current, incoming} {
		for _, r := range batch {
			k := speedKey(r)
			if i, ok := index[k]; ok {
				merged[i] = r
				continue
			}
			index[k] = len(merged)
			merged = append(merged, r)
		}
	}
	return merged
}

// MergeAttempts - upsert попыток по ID с сохранением порядка первого появления.
func MergeAttempts(current, incoming []models.SkillAttempt) []models.SkillAttempt {
	merged := make([]models.SkillAttempt, 0, len(current)+len(incoming))
	index := make(map[string]int)
	for _, batch := range [][]models.SkillAttempt{current, incoming} {
		for _, a := range batch {
			if i, ok := index[a.ID]; ok {
				merged[i] = a
				continue
			}
			index[a.ID] = len(merged)
			merged = append(merged, a)
		}
	}
	return merged
}
