package bot

import (
	"context"
	"fmt"
	"strings"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"rope-coach/internal/models/config"
	"rope-coach/internal/service"
)

// sender - то, что бот отправляет в Telegram; в тестах подменяется
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type Deps struct {
	fx.In

	Config            *config.Config
	Log               *zap.Logger
	StudentService    service.StudentService
	BillingService    service.BillingService
	SessionService    service.SessionService
	AssessmentService service.AssessmentService
	ReportService     service.ReportService
	TemplateService   service.TemplateService
}

type Bot struct {
	api    *tgbotapi.BotAPI
	sender sender
	log    *zap.Logger

	StudentService    service.StudentService
	BillingService    service.BillingService
	SessionService    service.SessionService
	AssessmentService service.AssessmentService
	ReportService     service.ReportService
	TemplateService   service.TemplateService

	webBaseURL   string
	admins       map[int64]bool
	userSessions map[int64]*UserSession // chatID -> session
	mu           sync.RWMutex
}

func NewBot(deps Deps) (*Bot, error) {
	cfg := deps.Config.Bot
	if cfg.Token == "" {
		return nil, fmt.Errorf("BOT_TOKEN не установлен в конфигурации")
	}

	api, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot API: %w", err)
	}
	api.Debug = cfg.Debug

	b := newBot(api, deps)
	b.api = api

	b.log.Info("бот инициализирован",
		zap.String("username", api.Self.UserName),
		zap.Bool("debug", cfg.Debug),
		zap.Int64s("admins", cfg.AdminIDs),
	)
	if len(cfg.AdminIDs) == 0 {
		b.log.Warn("ADMIN_IDS пуст: команды доступны всем")
	}
	return b, nil
}

func newBot(s sender, deps Deps) *Bot {
	admins := make(map[int64]bool, len(deps.Config.Bot.AdminIDs))
	for _, id := range deps.Config.Bot.AdminIDs {
		admins[id] = true
	}
	return &Bot{
		sender:            s,
		log:               deps.Log.Named("bot"),
		StudentService:    deps.StudentService,
		BillingService:    deps.BillingService,
		SessionService:    deps.SessionService,
		AssessmentService: deps.AssessmentService,
		ReportService:     deps.ReportService,
		TemplateService:   deps.TemplateService,
		webBaseURL:        strings.TrimRight(deps.Config.HTTP.PublicURL, "/"),
		admins:            admins,
		userSessions:      make(map[int64]*UserSession),
	}
}

// Start читает обновления, пока не отменён ctx или не вызван Stop
func (b *Bot) Start(ctx context.Context) error {
	b.log.Info("авторизован", zap.String("username", b.api.Self.UserName))

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates, err := b.api.GetUpdatesChan(u)
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil {
				continue
			}
			go b.handleMessage(ctx, update.Message)
		}
	}
}

func (b *Bot) Stop() {
	if b.api != nil {
		b.api.StopReceivingUpdates()
	}
}
