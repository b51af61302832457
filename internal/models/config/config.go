package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// AppConfig глобальная конфигурация приложения
var AppConfig *Config

// Config основной конфиг
type Config struct {
	Environment string `env:"APP_ENV" envDefault:"development"`
	Bot         BotConfig
	Database    DatabaseConfig
	HTTP        HTTPConfig
	NATS        NATSConfig
	Log         LogConfig
	Billing     BillingConfig
}

type BotConfig struct {
	Token    string  `env:"BOT_TOKEN"`
	Debug    bool    `env:"BOT_DEBUG"`
	AdminIDs []int64 `env:"ADMIN_IDS" envSeparator:","` // ID тренеров, которым доступны команды
}

// HTTPConfig - API без авторизации, поэтому по умолчанию слушает только localhost;
// наружу его публикуют через прокси с проверкой доступа
type HTTPConfig struct {
	Host string `env:"HTTP_HOST" envDefault:"127.0.0.1"`
	Port string `env:"HTTP_PORT" envDefault:"8080"`
	// PublicURL - внешний адрес API для ссылок из бота
	PublicURL string `env:"HTTP_PUBLIC_URL"`
}

// NATSConfig - пустой URL отключает публикацию событий
type NATSConfig struct {
	URL string `env:"NATS_URL"`
}

type LogConfig struct {
	Level string `env:"LOG_LEVEL" envDefault:"info"`
	File  string `env:"LOG_FILE" envDefault:"logs/coach.log"`
}

type BillingConfig struct {
	RenewalThreshold float64 `env:"RENEWAL_THRESHOLD" envDefault:"3"`
}

func (c HTTPConfig) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// Load загружает конфигурацию: сначала .env (если есть), затем переменные окружения
func Load() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	cfg.Database.SSLMode = getSSLMode(cfg.Environment)

	AppConfig = cfg
	return validate()
}

// validate проверяет обязательные параметры
func validate() error {
	var errs []string

	if AppConfig.Bot.Token == "" {
		errs = append(errs, "BOT_TOKEN is required")
	}

	if AppConfig.Database.Username == "" {
		errs = append(errs, "DB_USER is required")
	}

	if AppConfig.Database.Password == "" && AppConfig.IsProduction() {
		errs = append(errs, "DB_PASSWORD is required in production")
	}

	if AppConfig.Billing.RenewalThreshold < 0 {
		errs = append(errs, "RENEWAL_THRESHOLD must not be negative")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed: %s", strings.Join(errs, ", "))
	}

	return nil
}
