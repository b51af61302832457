package series

import (
	"fmt"

	"rope-coach/internal/models"
)

const (
	MaxHighlights = 3
	// HighlightReps - с этого числа повторов рекорд считается «хайлайтом»
	HighlightReps = 150
)

// Highlights формирует до трёх хайлайтов занятия: сначала лучший результат
// каждого студента по скорости (в порядке первого появления), затем сданные
// элементы. Записи с неизвестным студентом или элементом пропускаются.
func Highlights(speed []models.SpeedRecord, attempts []models.SkillAttempt, students []models.Student, moves []models.RankMove) []string {
	names := make(map[string]string, len(students))
	for _, s := range students {
		names[s.ID] = s.Name
	}
	moveNames := make(map[string]string, len(moves))
	for _, m := range moves {
		moveNames[m.ID] = m.Name
	}

	var order []string
	best := make(map[string]int)
	for _, r := range speed {
		prev, ok := best[r.StudentID]
		if !ok {
			order = append(order, r.StudentID)
			prev = 0
		}
		if r.Reps > prev {
			prev = r.Reps
		}
		best[r.StudentID] = prev
	}

	highlights := make([]string, 0, MaxHighlights)
	for _, id := range order {
		name, ok := names[id]
		if !ok {
			continue
		}
		reps := best[id]
		kind := "new record"
		if reps >= HighlightReps {
			kind = "new highlight"
		}
		highlights = append(highlights, fmt.Sprintf("%s %d reps, %s!", name, reps, kind))
	}

	for _, a := range attempts {
		if !a.Passed {
			continue
		}
		name, ok := names[a.StudentID]
		if !ok {
			continue
		}
		move, ok := moveNames[a.MoveID]
		if !ok {
			continue
		}
		highlights = append(highlights, fmt.Sprintf("%s passed %s", name, move))
	}

	if len(highlights) > MaxHighlights {
		highlights = highlights[:MaxHighlights]
	}
	return highlights
}
