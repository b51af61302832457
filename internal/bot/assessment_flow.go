package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"rope-coach/internal/models"
)

func (b *Bot) handleTest(ctx context.Context, chatID int64, args []string) {
	if len(args) < 3 {
		b.sendUsage(chatID, "/test <ученик> <упражнение> <значение> [квартал]")
		return
	}
	value, err := strconv.ParseFloat(args[2], 64)
	if err != nil {
		b.sendError(chatID, "❌ Значение должно быть числом")
		return
	}
	quarter := ""
	if len(args) > 3 {
		quarter = args[3]
	}

	result, err := b.AssessmentService.RecordTest(ctx, args[0], args[1], value, quarter)
	if err != nil {
		b.replyError(chatID, err)
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "✅ Тест %s записан\n", result.Quarter)
	for _, q := range models.AllQualities {
		if score, ok := result.Radar[q]; ok {
			fmt.Fprintf(&sb, "%s: %d\n", q, score)
		}
	}
	b.sendMessage(chatID, sb.String())
}

func (b *Bot) handleRankExam(ctx context.Context, chatID int64, args []string) {
	if len(args) < 2 || (args[1] != "pass" && args[1] != "fail") {
		b.sendUsage(chatID, "/rank <ученик> <pass|fail> [заметка]")
		return
	}
	passed := args[1] == "pass"
	notes := strings.Join(args[2:], " ")

	exam, err := b.StudentService.RecordRankExam(ctx, args[0], passed, notes)
	if err != nil {
		b.replyError(chatID, err)
		return
	}
	if exam.Passed {
		b.sendMessage(chatID, fmt.Sprintf("🥋 Экзамен сдан: ранг %d → %d", exam.FromRank, exam.ToRank))
		return
	}
	b.sendMessage(chatID, fmt.Sprintf("📝 Экзамен на ранг %d не сдан", exam.ToRank))
}
