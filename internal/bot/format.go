package bot

import (
	"fmt"
	"strconv"
	"strings"

	"rope-coach/internal/engine/ledger"
	"rope-coach/internal/models"
	"rope-coach/internal/service"
)

func formatLessons(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatWallet(w models.LessonWallet) string {
	return fmt.Sprintf("🎫 %s: куплено %s, списано %s, осталось *%s*",
		w.StudentID,
		formatLessons(w.TotalPurchased),
		formatLessons(w.TotalConsumed),
		formatLessons(w.Remaining),
	)
}

func formatFinance(s ledger.Summary) string {
	var sb strings.Builder
	sb.WriteString("📊 *Финансы*\n\n")
	fmt.Fprintf(&sb, "Куплено занятий: %s\n", formatLessons(s.Totals.Purchased))
	fmt.Fprintf(&sb, "Списано: %s\n", formatLessons(s.Totals.Consumed))
	fmt.Fprintf(&sb, "Осталось: %s\n", formatLessons(s.Totals.Remaining))
	fmt.Fprintf(&sb, "Выручка: %.2f\n", s.Totals.Revenue)

	if len(s.Monthly) > 0 {
		sb.WriteString("\n*По месяцам:*\n")
		for _, m := range s.Monthly {
			fmt.Fprintf(&sb, "%s: %.2f\n", m.Month, m.Amount)
		}
	}

	sb.WriteString("\n*Остатки:*\n")
	fmt.Fprintf(&sb, "≤5: %d, 6-10: %d, >10: %d\n", s.Distribution.Small, s.Distribution.Medium, s.Distribution.Large)

	if len(s.Renewals) > 0 {
		fmt.Fprintf(&sb, "\n🔔 Пора продлить: %d\n", len(s.Renewals))
	}
	return sb.String()
}

func formatReport(r *service.StudentReport) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "📈 *%s*\n\n", r.Student.Name)
	if r.Student.CurrentRank != nil {
		fmt.Fprintf(&sb, "Ранг: %d\n", *r.Student.CurrentRank)
	}
	fmt.Fprintf(&sb, "Занятий в выборке: %d\n", r.Sessions)

	if n := len(r.Single30); n > 0 {
		fmt.Fprintf(&sb, "30с одинарные: %d (замеров %d)\n", r.Single30[n-1].Score, n)
	}
	if n := len(r.Double30); n > 0 {
		fmt.Fprintf(&sb, "30с двойные: %d (замеров %d)\n", r.Double30[n-1].Score, n)
	}
	if n := len(r.Progression); n > 0 {
		fmt.Fprintf(&sb, "Очки пути воина: %d\n", r.Progression[n-1].Score)
	}

	if len(r.Radar) > 0 {
		sb.WriteString("\n*Радар:*\n")
		for _, q := range models.AllQualities {
			if v, ok := r.Radar[q]; ok {
				fmt.Fprintf(&sb, "%s: %d\n", q, v)
			}
		}
	}

	sb.WriteString("\n")
	sb.WriteString(formatWallet(r.Wallet))
	return sb.String()
}

func formatDraft(s *models.SessionRecord) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "📋 *Занятие %s* (%s)\n\n", s.ClassID, s.Date.Format("02.01.2006"))

	present := 0
	for _, a := range s.Attendance {
		mark := "✅"
		if !a.Present {
			mark = "❌"
		} else {
			present++
		}
		fmt.Fprintf(&sb, "%s %s (списание %s)\n", mark, a.StudentID, formatLessons(s.ChargeFor(a.StudentID)))
	}
	fmt.Fprintf(&sb, "\nПрисутствуют: %d из %d\n", present, len(s.Attendance))

	if len(s.Speed) > 0 {
		sb.WriteString("\n*Скорость:*\n")
		for _, r := range s.Speed {
			fmt.Fprintf(&sb, "%s %s %dс: %d\n", r.StudentID, r.Mode, r.Window, r.Reps)
		}
	}
	if len(s.Freestyle) > 0 {
		sb.WriteString("\n*Фристайл:*\n")
		for _, a := range s.Freestyle {
			mark := "✗"
			if a.Passed {
				mark = "✓"
			}
			fmt.Fprintf(&sb, "%s %s %s\n", mark, a.StudentID, a.MoveID)
		}
	}
	return sb.String()
}

func formatClose(res *service.CloseResult) string {
	var sb strings.Builder
	sb.WriteString("✅ *Занятие закрыто*\n")

	if len(res.Session.Highlights) > 0 {
		sb.WriteString("\n🏆 ")
		sb.WriteString(strings.Join(res.Session.Highlights, "\n🏆 "))
		sb.WriteString("\n")
	}

	if len(res.Wallets) > 0 {
		sb.WriteString("\n")
		for _, w := range res.Wallets {
			sb.WriteString(formatWallet(w))
			sb.WriteString("\n")
		}
	}

	if len(res.LowBalance) > 0 {
		ids := make([]string, len(res.LowBalance))
		for i, w := range res.LowBalance {
			ids[i] = w.StudentID
		}
		fmt.Fprintf(&sb, "\n🔔 Пора продлить: %s\n", strings.Join(ids, ", "))
	}
	return sb.String()
}
