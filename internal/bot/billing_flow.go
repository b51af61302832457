package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"rope-coach/internal/models"
	"rope-coach/internal/service"
)

func (b *Bot) handleWallet(ctx context.Context, chatID int64, args []string) {
	if len(args) != 1 {
		b.sendUsage(chatID, "/wallet <ученик>")
		return
	}
	wallet, err := b.BillingService.GetWallet(ctx, args[0])
	if err != nil {
		b.replyError(chatID, err)
		return
	}
	b.sendMarkdown(chatID, formatWallet(wallet), nil)
}

func (b *Bot) handleRenewals(ctx context.Context, chatID int64) {
	due, err := b.BillingService.GetRenewals(ctx)
	if err != nil {
		b.replyError(chatID, err)
		return
	}
	if len(due) == 0 {
		b.sendMessage(chatID, "🎉 Продлевать пока некому")
		return
	}

	var sb strings.Builder
	sb.WriteString("🔔 *Пора продлить:*\n\n")
	for i, w := range due {
		fmt.Fprintf(&sb, "%d. %s - осталось %s\n", i+1, w.StudentID, formatLessons(w.Remaining))
	}
	b.sendMarkdown(chatID, sb.String(), nil)
}

func (b *Bot) handleFinance(ctx context.Context, chatID int64) {
	summary, err := b.BillingService.GetFinance(ctx)
	if err != nil {
		b.replyError(chatID, err)
		return
	}
	b.sendMarkdown(chatID, formatFinance(summary), nil)
}

func (b *Bot) handleBuy(ctx context.Context, chatID int64, args []string) {
	if len(args) < 3 {
		b.sendUsage(chatID, "/buy <ученик> <занятий> <сумма> [cash|wechat|alipay|card|other] [комментарий]")
		return
	}
	lessons, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		b.sendError(chatID, "❌ Количество занятий должно быть числом")
		return
	}
	price, err := strconv.ParseFloat(args[2], 64)
	if err != nil {
		b.sendError(chatID, "❌ Сумма должна быть числом")
		return
	}
	req := service.BuyRequest{StudentID: args[0], Lessons: lessons, Price: price}
	if len(args) > 3 {
		method, err := models.ParsePaymentMethod(args[3])
		if err != nil {
			b.replyError(chatID, err)
			return
		}
		req.Method = method
	}
	if len(args) > 4 {
		req.Remark = strings.Join(args[4:], " ")
	}

	pkg, _, err := b.BillingService.BuyPackage(ctx, req)
	if err != nil {
		b.replyError(chatID, err)
		return
	}
	wallet, err := b.BillingService.GetWallet(ctx, req.StudentID)
	if err != nil {
		b.replyError(chatID, err)
		return
	}
	b.sendMarkdown(chatID, fmt.Sprintf("✅ Пакет на %s занятий записан\n\n%s",
		formatLessons(pkg.PurchasedLessons), formatWallet(wallet)), nil)
}

func (b *Bot) handleReport(ctx context.Context, chatID int64, args []string) {
	if len(args) != 1 {
		b.sendUsage(chatID, "/report <ученик>")
		return
	}
	report, err := b.ReportService.GetStudentReport(ctx, args[0])
	if err != nil {
		b.replyError(chatID, err)
		return
	}
	b.sendMarkdown(chatID, formatReport(report), nil)
}
