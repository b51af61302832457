package models

import (
	"time"
)

type AttendanceItem struct {
	StudentID string `json:"student_id"`
	Present   bool   `json:"present"`
	Remark    string `json:"remark,omitempty"`
}

type SpeedRecord struct {
	ID        string    `json:"id"`
	StudentID string    `json:"student_id"`
	Mode      JumpMode  `json:"mode"`
	Window    WindowSec `json:"window"`
	Reps      int       `json:"reps"`
}

// SkillAttempt - попытка сдать элемент фристайла
type SkillAttempt struct {
	ID        string `json:"id"`
	StudentID string `json:"student_id"`
	MoveID    string `json:"move_id"`
	Passed    bool   `json:"passed"`
	Note      string `json:"note,omitempty"`
}

type TrainingNote struct {
	ID        string   `json:"id"`
	StudentID string   `json:"student_id"`
	Rating    *int     `json:"rating,omitempty"`
	Comments  string   `json:"comments,omitempty"`
	Tags      []string `json:"tags,omitempty"`
}

type ConsumeOverride struct {
	StudentID string  `json:"student_id"`
	Consume   float64 `json:"consume"`
}

type (
	AttendanceList = JSONList[AttendanceItem]
	SpeedList      = JSONList[SpeedRecord]
	AttemptList    = JSONList[SkillAttempt]
	NoteList       = JSONList[TrainingNote]
	OverrideList   = JSONList[ConsumeOverride]
)

// DefaultLessonConsume списывается с каждого присутствующего, если тренер не указал иное
const DefaultLessonConsume = 1.0

// SessionRecord - одно занятие группы. Создаётся открытым, закрывается один раз.
type SessionRecord struct {
	ID               string         `db:"id" json:"id"`
	ClassID          string         `db:"class_id" json:"class_id"`
	Date             time.Time      `db:"date" json:"date"`
	TemplateID       *string        `db:"template_id" json:"template_id,omitempty"`
	Attendance       AttendanceList `db:"attendance" json:"attendance"`
	Speed            SpeedList      `db:"speed" json:"speed"`
	Freestyle        AttemptList    `db:"freestyle" json:"freestyle"`
	Notes            NoteList       `db:"notes" json:"notes"`
	Closed           bool           `db:"closed" json:"closed"`
	LessonConsume    *float64       `db:"lesson_consume" json:"lesson_consume,omitempty"`
	ConsumeOverrides OverrideList   `db:"consume_overrides" json:"consume_overrides,omitempty"`
	Highlights       Tags           `db:"highlights" json:"highlights,omitempty"`
}

// AttendanceFor возвращает первую запись посещаемости студента
func (s *SessionRecord) AttendanceFor(studentID string) (AttendanceItem, bool) {
	for _, a := range s.Attendance {
		if a.StudentID == studentID {
			return a, true
		}
	}
	return AttendanceItem{}, false
}

// ChargeFor - сколько занятий списывается со студента за эту сессию,
// без учёта посещаемости и статуса закрытия.
func (s *SessionRecord) ChargeFor(studentID string) float64 {
	for _, o := range s.ConsumeOverrides {
		if o.StudentID == studentID {
			return o.Consume
		}
	}
	if s.LessonConsume != nil {
		return *s.LessonConsume
	}
	return DefaultLessonConsume
}

// HasStudent - есть ли у студента запись посещаемости в этой сессии
func (s *SessionRecord) HasStudent(studentID string) bool {
	_, ok := s.AttendanceFor(studentID)
	return ok
}
