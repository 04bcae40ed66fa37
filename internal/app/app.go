// Package app assembles the bot: storage, scheduler, transport and the
// health endpoint, tied together by one errgroup.
package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/tombelial666/reminderBot/internal/audit"
	"github.com/tombelial666/reminderBot/internal/config"
	"github.com/tombelial666/reminderBot/internal/i18n"
	"github.com/tombelial666/reminderBot/internal/scheduler"
	"github.com/tombelial666/reminderBot/internal/store"
	"github.com/tombelial666/reminderBot/internal/telegram"
	"github.com/tombelial666/reminderBot/internal/timeparse"
	"github.com/tombelial666/reminderBot/internal/tz"
)

// ErrRestart signals that /botrestart asked for a clean re-initialization.
// The caller is expected to build a fresh App and run it again.
var ErrRestart = errors.New("restart requested")

type App struct {
	cfg     config.Config
	log     *zap.Logger
	bot     *tgbotapi.BotAPI
	httpSrv *http.Server

	restartCh chan struct{}
}

func New(cfg config.Config, log *zap.Logger) (*App, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, err
	}
	bot.Debug = false

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      mux,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	}

	return &App{
		cfg:       cfg,
		log:       log,
		bot:       bot,
		httpSrv:   srv,
		restartCh: make(chan struct{}, 1),
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	a.log.Info("starting reminder bot",
		zap.String("http", a.cfg.HTTPAddr),
		zap.String("db", a.cfg.DBPath),
	)

	repo, err := store.OpenSQLite(ctx, a.cfg.DBPath, store.Defaults{
		TZ:   a.cfg.DefaultTZ,
		Lang: a.cfg.DefaultLang,
	})
	if err != nil {
		return err
	}
	defer func() { _ = repo.Close() }()
	a.log.Info("sqlite ready")

	aud := audit.New(a.cfg.AuditLogPath)
	defer aud.Sync()

	loc := i18n.New(a.cfg.DefaultLang)
	zones := tz.NewResolver(tz.NewOfflineCities())

	router := telegram.NewRouter(a.bot, a.log, aud, repo, loc, zones, timeparse.New(),
		telegram.Options{
			DefaultTZ:   a.cfg.DefaultTZ,
			DefaultLang: a.cfg.DefaultLang,
			AdminUserID: a.cfg.AdminUserID,
		},
		a.requestRestart,
	)

	engine := scheduler.New(repo, a.log, router, scheduler.Options{
		RepeatInterval: a.cfg.RepeatInterval,
		Workers:        a.cfg.DeliveryWorkers,
		LatePrefix:     func(lang string) string { return loc.T(lang, "late_prefix") },
	})
	router.BindEngine(engine)
	defer engine.Stop()
	defer router.Shutdown()

	// Rebuild timers from durable state before taking traffic.
	if err := engine.Reconcile(ctx); err != nil {
		return err
	}

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updCh := a.bot.GetUpdatesChan(u)
	defer a.bot.StopReceivingUpdates()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := a.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.httpSrv.Shutdown(shCtx); err != nil {
			a.log.Warn("http server shutdown error", zap.Error(err))
		}
		return nil
	})

	g.Go(func() error {
		for {
			select {
			case <-gctx.Done():
				return nil
			case <-a.restartCh:
				a.log.Info("restart requested, draining")
				return ErrRestart
			case upd := <-updCh:
				router.HandleUpdate(gctx, upd)
			}
		}
	})

	err = g.Wait()
	a.log.Info("stopped")
	return err
}

// requestRestart is handed to the transport; /botrestart calls it after
// wiping state.
func (a *App) requestRestart() {
	select {
	case a.restartCh <- struct{}{}:
	default:
	}
}
