package models

import "time"

// LessonPackage - покупка пакета занятий. После создания не меняется.
type LessonPackage struct {
	ID               string    `db:"id" json:"id"`
	StudentID        string    `db:"student_id" json:"student_id"`
	PurchasedLessons float64   `db:"purchased_lessons" json:"purchased_lessons"`
	Price            float64   `db:"price" json:"price"`
	UnitPrice        *float64  `db:"unit_price" json:"unit_price,omitempty"`
	PurchasedAt      time.Time `db:"purchased_at" json:"purchased_at"`
	Remark           string    `db:"remark" json:"remark,omitempty"`
}

type PaymentRecord struct {
	ID        string        `db:"id" json:"id"`
	StudentID string        `db:"student_id" json:"student_id"`
	PackageID string        `db:"package_id" json:"package_id"`
	Amount    float64       `db:"amount" json:"amount"`
	Method    PaymentMethod `db:"method" json:"method,omitempty"`
	PaidAt    time.Time     `db:"paid_at" json:"paid_at"`
}

// LessonWallet никогда не хранится, всегда пересчитывается из истории
type LessonWallet struct {
	StudentID      string  `json:"student_id"`
	TotalPurchased float64 `json:"total_purchased"`
	TotalConsumed  float64 `json:"total_consumed"`
	Remaining      float64 `json:"remaining"`
}
