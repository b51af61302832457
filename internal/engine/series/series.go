// Package series строит временные ряды по истории сессий: скорость прыжков
// и накопительные очки пути воина.
package series

import (
	"sort"
	"time"

	"rope-coach/internal/models"
)

type Point struct {
	Date  time.Time `json:"date"`
	Score int       `json:"score"`
}

// Speed возвращает каждый скоростной замер с нужным режимом и окном
// (и студентом, если studentID не пустой) как точку (дата сессии, повторы).
// Точки отсортированы по дате, при равных датах сохраняется исходный порядок.
// Дубликаты не убираются: это забота того, кто собирает замеры сессии.
func Speed(sessions []models.SessionRecord, mode models.JumpMode, window models.WindowSec, studentID string) []Point {
	points := make([]Point, 0)
	for _, s := range sessions {
		for _, r := range s.Speed {
			if r.Mode != mode || r.Window != window {
				continue
			}
			if studentID != "" && r.StudentID != studentID {
				continue
			}
			points = append(points, Point{Date: s.Date, Score: r.Reps})
		}
	}
	sort.SliceStable(points, func(i, j int) bool { return points[i].Date.Before(points[j].Date) })
	return points
}

// Progression - накопительная сумма очков за сданные элементы, одна точка на
// каждую сессию в порядке дат. Ряд не убывает; неизвестные элементы дают 0.
// Входной срез не переупорядочивается.
func Progression(sessions []models.SessionRecord, nodes []models.WarriorPathNode, studentID string) []Point {
	ordered := make([]*models.SessionRecord, len(sessions))
	for i := range sessions {
		ordered[i] = &sessions[i]
	}
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Date.Before(ordered[j].Date) })

	points := NodePoints(nodes)
	progress := make([]Point, 0, len(ordered))
	total := 0
	for _, s := range ordered {
		for _, a := range s.Freestyle {
			if !a.Passed {
				continue
			}
			if studentID != "" && a.StudentID != studentID {
				continue
			}
			total += points[a.MoveID]
		}
		progress = append(progress, Point{Date: s.Date, Score: total})
	}
	return progress
}

// NodePoints сопоставляет элементу очки ступени пути воина. Элемент ищется
// среди MoveIDs ступеней (первая ступень побеждает), затем по ID самой ступени.
// Отрицательные очки считаются нулём, иначе прогресс мог бы убывать.
func NodePoints(nodes []models.WarriorPathNode) map[string]int {
	points := make(map[string]int)
	for _, n := range nodes {
		if _, ok := points[n.ID]; !ok {
			points[n.ID] = max(0, n.Points)
		}
	}
	byMove := make(map[string]int)
	for _, n := range nodes {
		for _, moveID := range n.MoveIDs {
			if _, ok := byMove[moveID]; !ok {
				byMove[moveID] = max(0, n.Points)
			}
		}
	}
	for moveID, p := range byMove {
		points[moveID] = p
	}
	return points
}
