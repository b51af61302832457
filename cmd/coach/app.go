package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"rope-coach/internal/bot"
	"rope-coach/internal/events"
	"rope-coach/internal/models/config"
	"rope-coach/internal/repository/assessment"
	"rope-coach/internal/repository/billing"
	"rope-coach/internal/repository/class"
	"rope-coach/internal/repository/reference"
	"rope-coach/internal/repository/session"
	"rope-coach/internal/repository/student"
	"rope-coach/internal/repository/template"
	assessment_service "rope-coach/internal/service/assessment"
	billing_service "rope-coach/internal/service/billing"
	report_service "rope-coach/internal/service/report"
	session_service "rope-coach/internal/service/session"
	student_service "rope-coach/internal/service/student"
	template_service "rope-coach/internal/service/template"
	"rope-coach/internal/web"
	"rope-coach/pkg/logger"
	"rope-coach/pkg/monitoring"

	database "rope-coach/pkg"
)

func newApp() *fx.App {
	return fx.New(
		fx.Provide(
			loadConfig,
			logger.New,
			newDatabase,
			newPublisher,

			student.NewStudentRepository,
			class.NewClassRepository,
			template.NewTemplateRepository,
			session.NewSessionRepository,
			billing.NewBillingRepository,
			reference.NewReferenceRepository,
			assessment.NewAssessmentRepository,

			student_service.NewStudentService,
			billing_service.NewBillingService,
			session_service.NewSessionService,
			assessment_service.NewAssessmentService,
			report_service.NewReportService,
			template_service.NewTemplateService,

			bot.NewBot,
			web.NewHandler,
			newHTTPServer,
		),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log.Named("fx")}
		}),
		fx.Invoke(
			monitoring.Init,
			runBot,
			runHTTPServer,
		),
	)
}

func loadConfig() (*config.Config, error) {
	if err := config.Load(); err != nil {
		return nil, err
	}
	return config.AppConfig, nil
}

func newDatabase(lc fx.Lifecycle, cfg *config.Config, log *zap.Logger) (*sqlx.DB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := database.NewPostgres(ctx, cfg.Database, log)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.StopHook(db.Close))
	return db, nil
}

func newPublisher(lc fx.Lifecycle, cfg *config.Config, log *zap.Logger) (events.Publisher, error) {
	publisher, err := events.NewPublisher(cfg.NATS.URL, log)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.StopHook(publisher.Close))
	return publisher, nil
}

// runBot запускает цикл обновлений в горутине; падение бота останавливает приложение
func runBot(lc fx.Lifecycle, shutdowner fx.Shutdowner, b *bot.Bot, log *zap.Logger) {
	ctx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				if err := b.Start(ctx); err != nil {
					log.Error("❌ Ошибка работы бота", zap.Error(err))
					shutdowner.Shutdown(fx.ExitCode(1))
				}
			}()
			return nil
		},
		OnStop: func(context.Context) error {
			cancel()
			b.Stop()
			return nil
		},
	})
}

func newHTTPServer(cfg *config.Config, h *web.Handler) *http.Server {
	return &http.Server{
		Addr:              cfg.HTTP.Addr(),
		Handler:           h.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}
}

func runHTTPServer(lc fx.Lifecycle, shutdowner fx.Shutdowner, srv *http.Server, log *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return err
			}
			log.Info("🌐 HTTP API запущен", zap.String("addr", srv.Addr))
			go func() {
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("❌ Ошибка HTTP сервера", zap.Error(err))
					shutdowner.Shutdown(fx.ExitCode(1))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})
}
