package main

import (
	"context"
	"errors"
	"os"

	"go.uber.org/zap"

	"github.com/tombelial666/reminderBot/internal/app"
	"github.com/tombelial666/reminderBot/internal/config"
	"github.com/tombelial666/reminderBot/internal/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// No logger yet; exit immediately.
		_, _ = os.Stderr.WriteString("config error: " + err.Error() + "\n")
		os.Exit(2)
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		_, _ = os.Stderr.WriteString("logger init error: " + err.Error() + "\n")
		os.Exit(2)
	}
	// Ensure logger flush; ignore sync error (common on some platforms).
	defer func() { _ = log.Sync() }()

	// The restart directive wipes state and asks for a fresh bootstrap, so
	// the app runs in a loop until a real shutdown or failure.
	for {
		application, err := app.New(cfg, log)
		if err != nil {
			log.Fatal("app init failed", zap.Error(err))
		}
		err = application.Run(context.Background())
		if errors.Is(err, app.ErrRestart) {
			log.Info("reinitializing after restart directive")
			continue
		}
		if err != nil {
			log.Fatal("app run failed", zap.Error(err))
		}
		return
	}
}
