package main

import (
	"context"
	"fmt"
	"os"
	"time"

	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"rope-coach/internal/models/config"
	"rope-coach/migrations"
	"rope-coach/pkg/logger"

	database "rope-coach/pkg"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		if err := migrate(); err != nil {
			fmt.Fprintf(os.Stderr, "❌ Ошибка миграции: %v\n", err)
			os.Exit(1)
		}
		return
	}

	newApp().Run()
}

// migrate применяет все миграции и завершает работу
func migrate() error {
	if err := config.Load(); err != nil {
		return err
	}
	cfg := config.AppConfig

	log, err := logger.New(cfg)
	if err != nil {
		return err
	}
	defer log.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	db, err := database.NewPostgres(ctx, cfg.Database, log)
	if err != nil {
		return err
	}
	defer db.Close()

	log.Info("🚀 Применение миграций", zap.String("env", cfg.Environment))
	if err := migrations.Up(ctx, db.DB); err != nil {
		return err
	}
	log.Info("✅ Миграции применены")
	return nil
}
