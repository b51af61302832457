package bot

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"rope-coach/internal/models"
)

// handleTemplates показывает список шаблонов или блоки одного шаблона
func (b *Bot) handleTemplates(ctx context.Context, chatID int64, args []string) {
	if len(args) == 1 {
		tpl, err := b.TemplateService.GetByID(ctx, args[0])
		if err != nil {
			b.replyError(chatID, err)
			return
		}
		b.sendMarkdown(chatID, formatTemplate(tpl), nil)
		return
	}

	templates, err := b.TemplateService.GetAll(ctx)
	if err != nil {
		b.replyError(chatID, err)
		return
	}
	if len(templates) == 0 {
		b.sendMessage(chatID, "📭 Шаблонов пока нет")
		return
	}

	var sb strings.Builder
	sb.WriteString("📚 *Шаблоны тренировок:*\n\n")
	for i, t := range templates {
		fmt.Fprintf(&sb, "%d. %s [%s] - блоков: %d (/templates %s)\n", i+1, t.Name, t.Period, len(t.Blocks), t.ID)
	}
	b.sendMarkdown(chatID, sb.String(), nil)
}

// sendSessionPlan отправляет план занятия по шаблону группы, если он задан
func (b *Bot) sendSessionPlan(ctx context.Context, chatID int64, session *models.SessionRecord) {
	if session.TemplateID == nil {
		return
	}
	tpl, err := b.TemplateService.GetByID(ctx, *session.TemplateID)
	if err != nil {
		b.log.Debug("шаблон группы недоступен", zap.Error(err))
		return
	}
	b.sendMarkdown(chatID, formatTemplate(tpl), nil)
}

func formatTemplate(t *models.TrainingTemplate) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "📚 *%s* [%s]", t.Name, t.Period)
	if t.Weeks != nil {
		fmt.Fprintf(&sb, ", недель: %d", *t.Weeks)
	}
	sb.WriteString("\n\n")
	for i, block := range t.Blocks {
		fmt.Fprintf(&sb, "%d. %s", i+1, block.Title)
		if block.DurationMin > 0 {
			fmt.Fprintf(&sb, " (%d мин)", block.DurationMin)
		}
		if block.Period != models.PeriodAll {
			fmt.Fprintf(&sb, " [%s]", block.Period)
		}
		sb.WriteString("\n")
		if len(block.Qualities) > 0 {
			qualities := make([]string, len(block.Qualities))
			for j, q := range block.Qualities {
				qualities[j] = string(q)
			}
			fmt.Fprintf(&sb, "   качества: %s\n", strings.Join(qualities, ", "))
		}
		if len(block.RankMoveIDs) > 0 {
			fmt.Fprintf(&sb, "   элементы: %s\n", strings.Join(block.RankMoveIDs, ", "))
		}
		if block.Notes != "" {
			fmt.Fprintf(&sb, "   %s\n", block.Notes)
		}
	}
	return sb.String()
}
