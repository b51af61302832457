package models

import (
	"time"
)

type Guardian struct {
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
}

type Student struct {
	ID            string     `db:"id" json:"id"`
	Name          string     `db:"name" json:"name"`
	Gender        *Gender    `db:"gender" json:"gender,omitempty"`
	Birth         *time.Time `db:"birth" json:"birth,omitempty"`
	GuardianName  string     `db:"guardian_name" json:"guardian_name,omitempty"`
	GuardianPhone string     `db:"guardian_phone" json:"guardian_phone,omitempty"`
	JoinDate      *time.Time `db:"join_date" json:"join_date,omitempty"`
	CurrentRank   *int       `db:"current_rank" json:"current_rank,omitempty"`
	Tags          Tags       `db:"tags" json:"tags,omitempty"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
}

type Tags = JSONList[string]

func (s *Student) Guardian() Guardian {
	return Guardian{Name: s.GuardianName, Phone: s.GuardianPhone}
}

// RankExamRecord - результат экзамена на следующий ранг
type RankExamRecord struct {
	ID        string    `db:"id" json:"id"`
	StudentID string    `db:"student_id" json:"student_id"`
	Date      time.Time `db:"date" json:"date"`
	FromRank  int       `db:"from_rank" json:"from_rank"`
	ToRank    int       `db:"to_rank" json:"to_rank"`
	Passed    bool      `db:"passed" json:"passed"`
	Notes     string    `db:"notes" json:"notes,omitempty"`
}
