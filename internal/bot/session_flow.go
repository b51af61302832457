package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"rope-coach/internal/models"
)

func (b *Bot) handleClasses(ctx context.Context, chatID int64) {
	classes, err := b.SessionService.GetClasses(ctx)
	if err != nil {
		b.replyError(chatID, err)
		return
	}
	if len(classes) == 0 {
		b.sendMessage(chatID, "📭 Групп пока нет")
		return
	}

	var sb strings.Builder
	sb.WriteString("👥 *Группы:*\n\n")
	for i, c := range classes {
		fmt.Fprintf(&sb, "%d. %s (%s) - учеников: %d\n", i+1, c.Name, c.ID, len(c.StudentIDs))
	}
	b.sendMarkdown(chatID, sb.String(), createClassesKeyboard(classes))
}

func (b *Bot) handleStartSession(ctx context.Context, chatID int64, args []string) {
	if len(args) == 0 {
		b.handleClasses(ctx, chatID)
		return
	}
	if open, err := b.hasOpenDraft(ctx, chatID); err != nil {
		b.replyError(chatID, err)
		return
	} else if open {
		b.replyError(chatID, models.ErrSessionAlreadyOpen)
		return
	}

	date := time.Now()
	if len(args) > 1 {
		d, err := time.Parse("2006-01-02", args[1])
		if err != nil {
			b.sendError(chatID, "❌ Дата в формате ГГГГ-ММ-ДД")
			return
		}
		date = d
	}

	session, err := b.SessionService.Start(ctx, args[0], date)
	if err != nil {
		b.replyError(chatID, err)
		return
	}
	b.setState(chatID, func(s *UserSession) {
		s.State = StateDrafting
		s.DraftSessionID = session.ID
		s.DraftClassID = session.ClassID
	})
	b.sendMarkdown(chatID, formatDraft(session), createDraftKeyboard())
	b.sendSessionPlan(ctx, chatID, session)
}

// draftID возвращает открытый черновик чата или отвечает, что его нет
func (b *Bot) draftID(chatID int64) (string, bool) {
	id := b.snapshot(chatID).DraftSessionID
	if id == "" {
		b.replyError(chatID, models.ErrNoOpenSession)
		return "", false
	}
	return id, true
}

// hasOpenDraft проверяет, что черновик чата всё ещё открыт; закрытый в другом месте забывается
func (b *Bot) hasOpenDraft(ctx context.Context, chatID int64) (bool, error) {
	id := b.snapshot(chatID).DraftSessionID
	if id == "" {
		return false, nil
	}
	session, err := b.SessionService.GetByID(ctx, id)
	if errors.Is(err, models.ErrSessionNotFound) {
		b.resetSession(chatID)
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if session.Closed {
		b.resetSession(chatID)
		return false, nil
	}
	return true, nil
}

// draftError отвечает на ошибку правки черновика; если занятия больше нет или оно закрыто, чат выходит из черновика
func (b *Bot) draftError(chatID int64, err error) {
	if errors.Is(err, models.ErrSessionClosed) || errors.Is(err, models.ErrSessionNotFound) {
		b.resetSession(chatID)
		b.replyError(chatID, err)
		b.sendMarkdown(chatID, "Черновик сброшен, начните новое занятие через /start", createMainKeyboard())
		return
	}
	b.replyError(chatID, err)
}

func (b *Bot) handleShowDraft(ctx context.Context, chatID int64) {
	id, ok := b.draftID(chatID)
	if !ok {
		return
	}
	session, err := b.SessionService.GetByID(ctx, id)
	if err != nil {
		b.draftError(chatID, err)
		return
	}
	b.sendMarkdown(chatID, formatDraft(session), createDraftKeyboard())
}

func (b *Bot) handlePresence(ctx context.Context, chatID int64, args []string, present bool) {
	id, ok := b.draftID(chatID)
	if !ok {
		return
	}
	if len(args) != 1 {
		b.sendUsage(chatID, "/absent <ученик> или /present <ученик>")
		return
	}
	if _, err := b.SessionService.SetPresence(ctx, id, args[0], present); err != nil {
		b.draftError(chatID, err)
		return
	}
	if present {
		b.sendMessage(chatID, "✅ "+args[0]+" присутствует")
		return
	}
	b.sendMessage(chatID, "❌ "+args[0]+" отсутствует")
}

func (b *Bot) handleConsume(ctx context.Context, chatID int64, args []string) {
	id, ok := b.draftID(chatID)
	if !ok {
		return
	}
	if len(args) != 1 {
		b.sendUsage(chatID, "/consume <n>")
		return
	}
	consume, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		b.sendError(chatID, "❌ Списание должно быть числом")
		return
	}
	if _, err := b.SessionService.SetLessonConsume(ctx, id, consume); err != nil {
		b.draftError(chatID, err)
		return
	}
	b.sendMessage(chatID, "✅ Списание по умолчанию: "+formatLessons(consume))
}

func (b *Bot) handleOverride(ctx context.Context, chatID int64, args []string) {
	id, ok := b.draftID(chatID)
	if !ok {
		return
	}
	if len(args) != 2 {
		b.sendUsage(chatID, "/override <ученик> <n>")
		return
	}
	consume, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		b.sendError(chatID, "❌ Списание должно быть числом")
		return
	}
	if _, err := b.SessionService.SetOverride(ctx, id, args[0], consume); err != nil {
		b.draftError(chatID, err)
		return
	}
	b.sendMessage(chatID, fmt.Sprintf("✅ %s: списание %s", args[0], formatLessons(consume)))
}

func (b *Bot) handleSpeed(ctx context.Context, chatID int64, args []string) {
	id, ok := b.draftID(chatID)
	if !ok {
		return
	}
	if len(args) != 4 {
		b.sendUsage(chatID, "/speed <ученик> <single|double> <окно> <повторы>")
		return
	}
	mode, err := models.ParseJumpMode(args[1])
	if err != nil {
		b.replyError(chatID, err)
		return
	}
	seconds, err := strconv.Atoi(args[2])
	if err != nil {
		b.sendError(chatID, "❌ Окно должно быть числом секунд")
		return
	}
	window, err := models.ParseWindow(seconds)
	if err != nil {
		b.replyError(chatID, err)
		return
	}
	reps, err := strconv.Atoi(args[3])
	if err != nil {
		b.sendError(chatID, "❌ Повторы должны быть числом")
		return
	}

	if _, err := b.SessionService.RecordSpeed(ctx, id, args[0], mode, window, reps); err != nil {
		b.draftError(chatID, err)
		return
	}
	b.sendMessage(chatID, fmt.Sprintf("⏱ %s %s %dс: %d", args[0], mode, window, reps))
}

func (b *Bot) handleAttempt(ctx context.Context, chatID int64, args []string, passed bool) {
	id, ok := b.draftID(chatID)
	if !ok {
		return
	}
	if len(args) != 2 {
		b.sendUsage(chatID, "/pass <ученик> <элемент> или /fail <ученик> <элемент>")
		return
	}
	if _, err := b.SessionService.RecordAttempt(ctx, id, args[0], args[1], passed); err != nil {
		b.draftError(chatID, err)
		return
	}
	if passed {
		b.sendMessage(chatID, fmt.Sprintf("✓ %s сдал %s", args[0], args[1]))
		return
	}
	b.sendMessage(chatID, fmt.Sprintf("✗ %s не сдал %s", args[0], args[1]))
}

func (b *Bot) handleNote(ctx context.Context, chatID int64, args []string) {
	id, ok := b.draftID(chatID)
	if !ok {
		return
	}
	if len(args) < 2 {
		b.sendUsage(chatID, "/note <ученик> <текст>")
		return
	}
	if _, err := b.SessionService.AddNote(ctx, id, args[0], strings.Join(args[1:], " ")); err != nil {
		b.draftError(chatID, err)
		return
	}
	b.sendMessage(chatID, "📝 Заметка сохранена")
}

func (b *Bot) handleCloseRequest(ctx context.Context, chatID int64) {
	id, ok := b.draftID(chatID)
	if !ok {
		return
	}
	session, err := b.SessionService.GetByID(ctx, id)
	if err != nil {
		b.draftError(chatID, err)
		return
	}
	if session.Closed {
		b.draftError(chatID, models.ErrSessionClosed)
		return
	}
	b.setState(chatID, func(s *UserSession) { s.State = StateConfirmingClose })
	b.sendMarkdown(chatID, formatDraft(session)+"\nЗакрыть занятие и списать занятия?", createConfirmKeyboard())
}

func (b *Bot) handleCloseConfirmation(ctx context.Context, chatID int64, text string) {
	if text != btnConfirm {
		b.setState(chatID, func(s *UserSession) { s.State = StateDrafting })
		b.sendMarkdown(chatID, "↩️ Черновик остаётся открытым", createDraftKeyboard())
		return
	}

	id := b.snapshot(chatID).DraftSessionID
	res, err := b.SessionService.Close(ctx, id)
	if err != nil {
		b.setState(chatID, func(s *UserSession) { s.State = StateDrafting })
		b.draftError(chatID, err)
		return
	}
	b.resetSession(chatID)
	b.sendMarkdown(chatID, formatClose(res), createMainKeyboard())
}
