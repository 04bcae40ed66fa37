package config

import (
	"os"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds application configuration loaded from environment variables.
type Config struct {
	BotToken     string `envconfig:"BOT_TOKEN"`
	BotTokenFile string `envconfig:"BOT_TOKEN_FILE" default:".telegram_token"`

	DBPath      string `envconfig:"DB_PATH" default:"./data/reminders.db"`
	DefaultTZ   string `envconfig:"DEFAULT_TZ" default:"Asia/Bangkok"`
	DefaultLang string `envconfig:"DEFAULT_LANG" default:"ru"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"` // debug|info|warn|error
	HTTPAddr    string `envconfig:"HTTP_ADDR" default:":8080"`

	AuditLogPath string `envconfig:"AUDIT_LOG_PATH" default:""`
	AdminUserID  int64  `envconfig:"ADMIN_USER_ID" default:"0"`

	RepeatInterval  time.Duration `envconfig:"REPEAT_INTERVAL" default:"5m"`
	DeliveryWorkers int           `envconfig:"DELIVERY_WORKERS" default:"5"`
}

// Load reads environment variables into Config. When BOT_TOKEN is unset the
// token file is tried as a fallback.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return cfg, err
	}
	if cfg.BotToken == "" && cfg.BotTokenFile != "" {
		if b, err := os.ReadFile(cfg.BotTokenFile); err == nil {
			cfg.BotToken = strings.TrimSpace(string(b))
		}
	}
	return cfg, nil
}
