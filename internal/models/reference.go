package models

// WarriorPathNode - ступень пути воина: пройденные элементы приносят очки
type WarriorPathNode struct {
	ID      string `db:"id" json:"id"`
	Rank    int    `db:"rank" json:"rank"`
	Title   string `db:"title" json:"title"`
	MoveIDs Tags   `db:"move_ids" json:"move_ids"`
	Points  int    `db:"points" json:"points"`
}

type RankMove struct {
	ID          string `db:"id" json:"id"`
	Rank        int    `db:"rank" json:"rank"`
	Name        string `db:"name" json:"name"`
	Tags        Tags   `db:"tags" json:"tags,omitempty"`
	Description string `db:"description" json:"description,omitempty"`
	Criteria    string `db:"criteria" json:"criteria,omitempty"`
}
