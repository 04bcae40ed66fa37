// Package telegram is the bot transport: it maps updates to engine and store
// operations and renders every reply through the i18n bundles.
package telegram

import (
	"context"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/tombelial666/reminderBot/internal/audit"
	"github.com/tombelial666/reminderBot/internal/domain"
	"github.com/tombelial666/reminderBot/internal/i18n"
	"github.com/tombelial666/reminderBot/internal/scheduler"
	"github.com/tombelial666/reminderBot/internal/store"
	"github.com/tombelial666/reminderBot/internal/timeparse"
	"github.com/tombelial666/reminderBot/internal/tz"
)

// Options configure the router.
type Options struct {
	DefaultTZ   string
	DefaultLang string
	// AdminUserID gates /botrestart. Zero disables the command.
	AdminUserID int64
}

// Router wires Telegram updates to handlers and holds the in-memory menu
// position per chat. It also satisfies scheduler.Sender.
type Router struct {
	bot    *tgbotapi.BotAPI
	log    *zap.Logger
	audit  *audit.Logger
	repo   store.Repo
	engine *scheduler.Engine
	loc    *i18n.Localizer
	zones  *tz.Resolver
	when   *timeparse.Parser
	opts   Options

	nav *navState
	// restart is invoked after /botrestart wipes state; the app layer
	// decides what a restart means.
	restart func()
	done    chan struct{}
}

func NewRouter(
	bot *tgbotapi.BotAPI,
	log *zap.Logger,
	aud *audit.Logger,
	repo store.Repo,
	loc *i18n.Localizer,
	zones *tz.Resolver,
	when *timeparse.Parser,
	opts Options,
	restart func(),
) *Router {
	if restart == nil {
		restart = func() {}
	}
	return &Router{
		bot:     bot,
		log:     log,
		audit:   aud,
		repo:    repo,
		loc:     loc,
		zones:   zones,
		when:    when,
		opts:    opts,
		nav:     newNavState(),
		restart: restart,
		done:    make(chan struct{}),
	}
}

// BindEngine attaches the scheduler after construction. The router is the
// engine's Sender, so the two are built in sequence and bound here before
// any update is handled.
func (r *Router) BindEngine(e *scheduler.Engine) {
	r.engine = e
}

// Shutdown stops background watch loops. Idempotent is not required; the app
// calls it exactly once.
func (r *Router) Shutdown() {
	close(r.done)
}

// HandleUpdate routes a single update. Handler errors never escape: every
// failure ends as a localized message to the user and a log entry.
func (r *Router) HandleUpdate(ctx context.Context, upd tgbotapi.Update) {
	if upd.Message != nil {
		msg := upd.Message
		chatID := msg.Chat.ID
		userID := chatID
		if msg.From != nil {
			userID = msg.From.ID
		}

		if msg.IsCommand() {
			args := strings.TrimSpace(msg.CommandArguments())
			switch msg.Command() {
			case "start", "help":
				r.handleHelp(ctx, chatID, userID)
			case "menu":
				r.handleMenu(ctx, chatID, userID)
			case "in":
				r.handleIn(ctx, chatID, userID, args)
			case "at":
				r.handleAt(ctx, chatID, userID, args)
			case "list":
				r.handleList(ctx, chatID, userID)
			case "cancel":
				r.handleCancel(ctx, chatID, userID, args)
			case "snooze":
				r.handleSnooze(ctx, chatID, userID, args)
			case "tz":
				r.handleTZ(ctx, chatID, userID, args)
			case "lang":
				r.handleLang(ctx, chatID, userID, args)
			case "watch":
				r.handleWatch(ctx, chatID, userID, args)
			case "botrestart":
				r.handleRestart(ctx, chatID, userID)
			default:
				r.handleHelp(ctx, chatID, userID)
			}
			return
		}

		r.handleFreeForm(ctx, chatID, userID, strings.TrimSpace(msg.Text))
		return
	}

	if upd.CallbackQuery != nil {
		r.handleCallback(ctx, upd.CallbackQuery)
	}
}

// SendReminder delivers a reminder with its acknowledge/snooze keyboard.
// Implements scheduler.Sender.
func (r *Router) SendReminder(chatID, reminderID int64, text string, silent bool) error {
	lang := r.langFor(chatID, reminderID)

	msg := tgbotapi.NewMessage(chatID, "⏰ "+text)
	msg.DisableNotification = silent
	msg.ReplyMarkup = snoozeKeyboard(r.loc, lang, reminderID)
	_, err := r.bot.Send(msg)
	return err
}

// langFor resolves the reminder owner's language for delivery rendering.
func (r *Router) langFor(chatID, reminderID int64) string {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	rem, err := r.repo.GetByID(ctx, reminderID)
	if err != nil {
		return r.opts.DefaultLang
	}
	prefs, err := r.repo.GetPrefs(ctx, chatID, rem.UserID)
	if err != nil {
		return r.opts.DefaultLang
	}
	return prefs.Lang
}

// prefs loads the user's preferences, falling back to configured defaults
// so a storage hiccup degrades rendering instead of failing the command.
func (r *Router) prefs(ctx context.Context, chatID, userID int64) domain.UserPrefs {
	p, err := r.repo.GetPrefs(ctx, chatID, userID)
	if err != nil {
		r.log.Warn("prefs lookup failed", zap.Int64("chat_id", chatID), zap.Error(err))
		return domain.UserPrefs{
			ChatID: chatID, UserID: userID,
			TZ: r.opts.DefaultTZ, Lang: r.opts.DefaultLang,
			Sound: true, Melody: "default",
		}
	}
	return p
}

func (r *Router) sendText(chatID int64, text string) {
	if _, err := r.bot.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		r.log.Error("send failed", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

func (r *Router) answerCallback(id, text string) {
	if _, err := r.bot.Request(tgbotapi.NewCallback(id, text)); err != nil {
		r.log.Warn("answer callback failed", zap.Error(err))
	}
}

// localFormat renders a UTC instant in the user's zone.
func (r *Router) localFormat(t time.Time, tzName string) string {
	loc, err := r.zones.Resolve(tzName)
	if err != nil {
		loc = time.UTC
	}
	return t.In(loc).Format("2006-01-02 15:04")
}
