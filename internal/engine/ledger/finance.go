package ledger

import (
	"sort"

	"rope-coach/internal/models"
)

// DefaultRenewalThreshold - остаток, при котором студенту пора продлевать пакет
const DefaultRenewalThreshold = 3.0

type Totals struct {
	Purchased float64 `json:"purchased"`
	Consumed  float64 `json:"consumed"`
	Remaining float64 `json:"remaining"`
	Revenue   float64 `json:"revenue"`
}

type MonthRevenue struct {
	Month  string  `json:"month"` // YYYY-MM
	Amount float64 `json:"amount"`
}

// Distribution - сколько студентов в каждой корзине остатка
type Distribution struct {
	Small  int `json:"small"`  // <= 5
	Medium int `json:"medium"` // 6..10
	Large  int `json:"large"`  // > 10
}

type Summary struct {
	Totals       Totals                `json:"totals"`
	Monthly      []MonthRevenue        `json:"monthly"`
	Distribution Distribution          `json:"distribution"`
	Renewals     []models.LessonWallet `json:"renewals"`
}

// Summarize собирает сводку для финансового дашборда.
func Summarize(wallets []models.LessonWallet, payments []models.PaymentRecord, renewalThreshold float64) Summary {
	return Summary{
		Totals:       SumTotals(wallets, payments),
		Monthly:      MonthlyRevenue(payments),
		Distribution: Distribute(wallets),
		Renewals:     DueForRenewal(wallets, renewalThreshold),
	}
}

func SumTotals(wallets []models.LessonWallet, payments []models.PaymentRecord) Totals {
	var t Totals
	for _, w := range wallets {
		t.Purchased += w.TotalPurchased
		t.Consumed += w.TotalConsumed
		t.Remaining += w.Remaining
	}
	for _, p := range payments {
		t.Revenue += p.Amount
	}
	return t
}

// MonthlyRevenue группирует платежи по месяцу оплаты (UTC), по возрастанию месяца.
func MonthlyRevenue(payments []models.PaymentRecord) []MonthRevenue {
	byMonth := make(map[string]float64)
	for _, p := range payments {
		byMonth[p.PaidAt.UTC().Format("2006-01")] += p.Amount
	}

	months := make([]MonthRevenue, 0, len(byMonth))
	for m, amount := range byMonth {
		months = append(months, MonthRevenue{Month: m, Amount: amount})
	}
	sort.Slice(months, func(i, j int) bool { return months[i].Month < months[j].Month })
	return months
}

func Distribute(wallets []models.LessonWallet) Distribution {
	var d Distribution
	for _, w := range wallets {
		switch {
		case w.Remaining <= 5:
			d.Small++
		case w.Remaining <= 10:
			d.Medium++
		default:
			d.Large++
		}
	}
	return d
}

// DueForRenewal оставляет кошельки с остатком не выше порога, в исходном порядке.
func DueForRenewal(wallets []models.LessonWallet, threshold float64) []models.LessonWallet {
	due := make([]models.LessonWallet, 0)
	for _, w := range wallets {
		if w.Remaining <= threshold {
			due = append(due, w)
		}
	}
	return due
}
