package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

type FitnessTestItem struct {
	ID      string  `db:"id" json:"id"`
	Name    string  `db:"name" json:"name"`
	Quality Quality `db:"quality" json:"quality"`
	Unit    Unit    `db:"unit" json:"unit"`
}

type TestValue struct {
	ItemID string  `json:"item_id"`
	Value  float64 `json:"value"`
}

type TestValues = JSONList[TestValue]

// Radar - нормализованные баллы 0..100 по качествам
type Radar map[Quality]int

func (r Radar) Value() (driver.Value, error) {
	if r == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(map[Quality]int(r))
}

func (r *Radar) Scan(src any) error {
	b, err := jsonBytes(src)
	if err != nil {
		return err
	}
	if len(b) == 0 {
		*r = nil
		return nil
	}
	m := make(map[Quality]int)
	if err := json.Unmarshal(b, &m); err != nil {
		return fmt.Errorf("decode radar: %w", err)
	}
	*r = m
	return nil
}

type FitnessTestResult struct {
	ID        string     `db:"id" json:"id"`
	StudentID string     `db:"student_id" json:"student_id"`
	Quarter   string     `db:"quarter" json:"quarter"`
	Date      time.Time  `db:"date" json:"date"`
	Items     TestValues `db:"items" json:"items"`
	Radar     Radar      `db:"radar" json:"radar"`
}

// Benchmark - возрастной/гендерный норматив для нормализации результата теста
type Benchmark struct {
	ID      string  `db:"id" json:"id"`
	Quality Quality `db:"quality" json:"quality"`
	AgeMin  int     `db:"age_min" json:"age_min"`
	AgeMax  int     `db:"age_max" json:"age_max"`
	Gender  *Gender `db:"gender" json:"gender,omitempty"`
	Unit    Unit    `db:"unit" json:"unit"`
	P25     float64 `db:"p25" json:"p25"`
	P50     float64 `db:"p50" json:"p50"`
	P75     float64 `db:"p75" json:"p75"`
	Min     float64 `db:"min" json:"min"`
	Max     float64 `db:"max" json:"max"`
}
