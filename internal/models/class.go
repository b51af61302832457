package models

import "time"

type ClassEntity struct {
	ID         string  `db:"id" json:"id"`
	Name       string  `db:"name" json:"name"`
	CoachName  string  `db:"coach_name" json:"coach_name"`
	Schedule   string  `db:"schedule" json:"schedule,omitempty"`
	TemplateID *string `db:"template_id" json:"template_id,omitempty"`
	StudentIDs Tags    `db:"student_ids" json:"student_ids"`
}

type TemplateBlock struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Period      Period    `json:"period"`
	DurationMin int       `json:"duration_min,omitempty"`
	RankMoveIDs []string  `json:"rank_move_ids,omitempty"`
	Qualities   []Quality `json:"qualities,omitempty"`
	GameIDs     []string  `json:"game_ids,omitempty"`
	Notes       string    `json:"notes,omitempty"`
}

type TrainingTemplate struct {
	ID        string                  `db:"id" json:"id"`
	Name      string                  `db:"name" json:"name"`
	Period    Period                  `db:"period" json:"period"`
	Weeks     *int                    `db:"weeks" json:"weeks,omitempty"`
	Blocks    JSONList[TemplateBlock] `db:"blocks" json:"blocks"`
	CreatedAt time.Time               `db:"created_at" json:"created_at"`
}
