package bot

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
)

// handleDashboard отправляет ссылку на JSON-отчёт ученика в HTTP API
func (b *Bot) handleDashboard(chatID int64, args []string) {
	if b.webBaseURL == "" {
		b.sendMessage(chatID, "Веб-доступ не настроен (HTTP_PUBLIC_URL)")
		return
	}

	url := fmt.Sprintf("%s/api/finance", b.webBaseURL)
	title := "📊 Открыть финансы"
	if len(args) == 1 {
		url = fmt.Sprintf("%s/api/students/%s/report", b.webBaseURL, args[0])
		title = "📈 Открыть отчёт"
	}

	keyboard := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL(title, url),
		),
	)

	msg := tgbotapi.NewMessage(chatID, "Нажмите кнопку ниже:\n\n"+
		"<i>Если кнопка не работает, откройте ссылку в браузере:</i>\n"+
		fmt.Sprintf("<code>%s</code>", url))
	msg.ParseMode = "HTML"
	msg.ReplyMarkup = keyboard
	b.send(msg)
}
