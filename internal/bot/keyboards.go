package bot

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"

	"rope-coach/internal/models"
)

const (
	btnClasses  = "👥 Группы"
	btnRenewals = "🔔 Продления"
	btnFinance  = "📊 Финансы"
	btnDraft    = "📋 Черновик"
	btnClose    = "✅ Закрыть занятие"
	btnConfirm  = "✅ Да"
	btnCancel   = "❌ Отмена"
)

func createMainKeyboard() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnClasses),
			tgbotapi.NewKeyboardButton(btnRenewals),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnFinance),
		),
	)
}

func createDraftKeyboard() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnDraft),
			tgbotapi.NewKeyboardButton(btnClose),
		),
	)
}

func createConfirmKeyboard() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnConfirm),
			tgbotapi.NewKeyboardButton(btnCancel),
		),
	)
}

// createClassesKeyboard - кнопка на группу отправляет /start <id>
func createClassesKeyboard(classes []models.ClassEntity) tgbotapi.ReplyKeyboardMarkup {
	var rows [][]tgbotapi.KeyboardButton

	for _, class := range classes {
		btn := tgbotapi.NewKeyboardButton("/start " + class.ID)
		rows = append(rows, tgbotapi.NewKeyboardButtonRow(btn))
	}

	cancelBtn := tgbotapi.NewKeyboardButton(btnCancel)
	rows = append(rows, tgbotapi.NewKeyboardButtonRow(cancelBtn))

	return tgbotapi.NewReplyKeyboard(rows...)
}
