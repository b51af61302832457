// Package ledger считает баланс занятий студента: купленные пакеты минус
// списания за закрытые сессии. Баланс нигде не хранится и всегда
// пересчитывается из полной истории, поэтому повторное закрытие и
// сохранение сессии не приводит к двойному списанию.
package ledger

import (
	"rope-coach/internal/models"
)

// WalletFor считает баланс одного студента.
func WalletFor(studentID string, packages []models.LessonPackage, sessions []models.SessionRecord) models.LessonWallet {
	var purchased float64
	for _, p := range packages {
		if p.StudentID == studentID {
			purchased += p.PurchasedLessons
		}
	}

	var consumed float64
	for i := range sessions {
		consumed += Charge(&sessions[i], studentID)
	}

	return models.LessonWallet{
		StudentID:      studentID,
		TotalPurchased: purchased,
		TotalConsumed:  consumed,
		Remaining:      purchased - consumed,
	}
}

// Charge - списание со студента за одну сессию. Открытая сессия и
// отсутствие (или запись present=false) дают 0.
func Charge(session *models.SessionRecord, studentID string) float64 {
	if !session.Closed {
		return 0
	}
	a, ok := session.AttendanceFor(studentID)
	if !ok || !a.Present {
		return 0
	}
	return session.ChargeFor(studentID)
}

// Wallets считает балансы всех перечисленных студентов за один проход по сессиям.
// Результат совпадает с WalletFor для каждого студента и идёт в порядке studentIDs.
func Wallets(studentIDs []string, packages []models.LessonPackage, sessions []models.SessionRecord) []models.LessonWallet {
	purchased := make(map[string]float64, len(studentIDs))
	consumed := make(map[string]float64, len(studentIDs))
	for _, id := range studentIDs {
		purchased[id] = 0
		consumed[id] = 0
	}

	for _, p := range packages {
		if _, ok := purchased[p.StudentID]; ok {
			purchased[p.StudentID] += p.PurchasedLessons
		}
	}

	for i := range sessions {
		s := &sessions[i]
		if !s.Closed {
			continue
		}
		// только первая запись студента в сессии считается
		seen := make(map[string]struct{}, len(s.Attendance))
		for _, a := range s.Attendance {
			if _, dup := seen[a.StudentID]; dup {
				continue
			}
			seen[a.StudentID] = struct{}{}
			if !a.Present {
				continue
			}
			if _, ok := consumed[a.StudentID]; !ok {
				continue
			}
			consumed[a.StudentID] += s.ChargeFor(a.StudentID)
		}
	}

	wallets := make([]models.LessonWallet, 0, len(studentIDs))
	for _, id := range studentIDs {
		wallets = append(wallets, models.LessonWallet{
			StudentID:      id,
			TotalPurchased: purchased[id],
			TotalConsumed:  consumed[id],
			Remaining:      purchased[id] - consumed[id],
		})
	}
	return wallets
}
