package bot

import (
	"context"
	"errors"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
	"go.uber.org/zap"

	"rope-coach/internal/models"
)

const helpText = `🪢 *Тренерский бот*

Баланс и финансы:
/wallet <ученик> - остаток занятий
/renewals - кому пора продлевать
/finance - сводка по оплатам
/buy <ученик> <занятий> <сумма> [способ] - продать пакет
/report <ученик> - прогресс ученика

Занятие:
/start <группа> [ГГГГ-ММ-ДД] - открыть черновик
/absent <ученик>, /present <ученик>
/consume <n> - списание по умолчанию
/override <ученик> <n> - списание для ученика
/speed <ученик> <single|double> <окно> <повторы>
/pass <ученик> <элемент>, /fail <ученик> <элемент>
/note <ученик> <текст>
/close - закрыть занятие

Тесты:
/test <ученик> <упражнение> <значение> [квартал]
/rank <ученик> <pass|fail> [заметка]

/templates [шаблон] - шаблоны тренировок
/dashboard [ученик] - ссылка на веб-отчёт`

// Обработка сообщения здесь
func (b *Bot) handleMessage(ctx context.Context, message *tgbotapi.Message) {
	if message.From == nil || message.Chat == nil {
		return
	}
	chatID := message.Chat.ID
	b.log.Debug("сообщение",
		zap.String("from", message.From.UserName),
		zap.String("text", message.Text),
	)

	if !b.isAdmin(int64(message.From.ID)) {
		b.sendError(chatID, "❌ Эта функция доступна только тренерам")
		return
	}

	// Проверяем состояние ПРЕЖДЕ обработки команд
	session := b.snapshot(chatID)
	if session.State == StateConfirmingClose && !message.IsCommand() {
		b.handleCloseConfirmation(ctx, chatID, message.Text)
		return
	}

	if message.IsCommand() {
		args := strings.Fields(message.CommandArguments())
		switch message.Command() {
		case "help":
			b.sendMarkdown(chatID, helpText, createMainKeyboard())
		case "wallet":
			b.handleWallet(ctx, chatID, args)
		case "renewals":
			b.handleRenewals(ctx, chatID)
		case "finance":
			b.handleFinance(ctx, chatID)
		case "buy":
			b.handleBuy(ctx, chatID, args)
		case "report":
			b.handleReport(ctx, chatID, args)
		case "start":
			b.handleStartSession(ctx, chatID, args)
		case "absent":
			b.handlePresence(ctx, chatID, args, false)
		case "present":
			b.handlePresence(ctx, chatID, args, true)
		case "consume":
			b.handleConsume(ctx, chatID, args)
		case "override":
			b.handleOverride(ctx, chatID, args)
		case "speed":
			b.handleSpeed(ctx, chatID, args)
		case "pass":
			b.handleAttempt(ctx, chatID, args, true)
		case "fail":
			b.handleAttempt(ctx, chatID, args, false)
		case "note":
			b.handleNote(ctx, chatID, args)
		case "close":
			b.handleCloseRequest(ctx, chatID)
		case "test":
			b.handleTest(ctx, chatID, args)
		case "rank":
			b.handleRankExam(ctx, chatID, args)
		case "templates":
			b.handleTemplates(ctx, chatID, args)
		case "dashboard":
			b.handleDashboard(chatID, args)
		default:
			b.sendMarkdown(chatID, helpText, createMainKeyboard())
		}
		return
	}

	switch message.Text {
	case btnRenewals:
		b.handleRenewals(ctx, chatID)
	case btnFinance:
		b.handleFinance(ctx, chatID)
	case btnClasses:
		b.handleClasses(ctx, chatID)
	case btnDraft:
		b.handleShowDraft(ctx, chatID)
	case btnClose:
		b.handleCloseRequest(ctx, chatID)
	default:
		b.sendMarkdown(chatID, helpText, createMainKeyboard())
	}
}

func (b *Bot) isAdmin(userID int64) bool {
	if len(b.admins) == 0 {
		return true
	}
	return b.admins[userID]
}

func (b *Bot) send(c tgbotapi.Chattable) {
	if _, err := b.sender.Send(c); err != nil {
		b.log.Error("ошибка отправки сообщения", zap.Error(err))
	}
}

func (b *Bot) sendMessage(chatID int64, text string) {
	b.send(tgbotapi.NewMessage(chatID, text))
}

func (b *Bot) sendMarkdown(chatID int64, text string, keyboard interface{}) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = "Markdown"
	if keyboard != nil {
		msg.ReplyMarkup = keyboard
	}
	b.send(msg)
}

func (b *Bot) sendError(chatID int64, text string) {
	b.sendMessage(chatID, text)
}

func (b *Bot) sendUsage(chatID int64, usage string) {
	b.sendMessage(chatID, "Использование: "+usage)
}

// replyError переводит ошибку сервиса в сообщение тренеру
func (b *Bot) replyError(chatID int64, err error) {
	switch {
	case errors.Is(err, models.ErrStudentNotFound):
		b.sendError(chatID, "❌ Ученик не найден")
	case errors.Is(err, models.ErrClassNotFound):
		b.sendError(chatID, "❌ Группа не найдена")
	case errors.Is(err, models.ErrSessionNotFound):
		b.sendError(chatID, "❌ Занятие не найдено")
	case errors.Is(err, models.ErrSessionClosed):
		b.sendError(chatID, "❌ Занятие уже закрыто")
	case errors.Is(err, models.ErrNoOpenSession):
		b.sendError(chatID, "❌ Нет открытого занятия. Начните с /start <группа>")
	case errors.Is(err, models.ErrSessionAlreadyOpen):
		b.sendError(chatID, "❌ Уже открыт черновик. Закройте его через /close")
	case errors.Is(err, models.ErrTemplateNotFound):
		b.sendError(chatID, "❌ Шаблон не найден")
	case errors.Is(err, models.ErrTestItemNotFound):
		b.sendError(chatID, "❌ Упражнение не найдено")
	case errors.Is(err, models.ErrUnknownJumpMode):
		b.sendError(chatID, "❌ Режим: single или double")
	case errors.Is(err, models.ErrUnknownWindow):
		b.sendError(chatID, "❌ Окно: 10, 20, 30 или 60 секунд")
	case errors.Is(err, models.ErrUnknownPaymentMethod):
		b.sendError(chatID, "❌ Способ оплаты: cash, wechat, alipay, card, other")
	case errors.Is(err, models.ErrInvalidLessons):
		b.sendError(chatID, "❌ Количество занятий должно быть больше нуля")
	case errors.Is(err, models.ErrInvalidConsume):
		b.sendError(chatID, "❌ Списание не может быть отрицательным")
	case errors.Is(err, models.ErrInvalidReps):
		b.sendError(chatID, "❌ Повторы не могут быть отрицательными")
	default:
		b.log.Error("ошибка обработки команды", zap.Int64("chat_id", chatID), zap.Error(err))
		b.sendError(chatID, "❌ Ошибка при выполнении запроса")
	}
}
