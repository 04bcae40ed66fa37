package telegram

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/tombelial666/reminderBot/internal/domain"
	"github.com/tombelial666/reminderBot/internal/timeparse"
	"github.com/tombelial666/reminderBot/internal/tz"
)

const listLimit = 25

var localClockRe = regexp.MustCompile(`^([01]?\d|2[0-3]):([0-5]\d)$`)

// parseInArgs validates "/in <duration> <text>" arguments.
func parseInArgs(args string) (time.Duration, string, error) {
	d, rest, ok := domain.ParseDurationPrefix(args)
	if !ok {
		return 0, "", domain.ErrParseFailure
	}
	if rest == "" {
		return 0, "", domain.ErrEmptyText
	}
	if d <= 0 {
		return 0, "", domain.ErrTimeAlreadyPassed
	}
	return d, rest, nil
}

// parseAtArgs validates "/at <datetime> <text>" arguments against the
// user's zone.
func (r *Router) parseAtArgs(args string, loc *time.Location, nowUTC time.Time) (time.Time, string, error) {
	due, span, ok := r.when.ParseAbsolute(args, loc, nowUTC)
	if !ok {
		return time.Time{}, "", domain.ErrParseFailure
	}
	text := timeparse.StripSpan(args, span)
	if text == "" {
		return time.Time{}, "", domain.ErrEmptyText
	}
	if !due.After(nowUTC) {
		return time.Time{}, "", domain.ErrTimeAlreadyPassed
	}
	return due, text, nil
}

// inputErrKey maps a validation error to its message key; parse failures
// take the command-specific fallback.
func inputErrKey(err error, parseKey string) string {
	switch {
	case errors.Is(err, domain.ErrEmptyText):
		return "empty_text"
	case errors.Is(err, domain.ErrTimeAlreadyPassed):
		return "time_passed"
	default:
		return parseKey
	}
}

// --- Commands ---

func (r *Router) handleHelp(ctx context.Context, chatID, userID int64) {
	p := r.prefs(ctx, chatID, userID)
	msg := tgbotapi.NewMessage(chatID, r.loc.T(p.Lang, "help", "tz", p.TZ, "lang", p.Lang))
	msg.ReplyMarkup = mainMenuKeyboard(r.loc, p.Lang)
	if _, err := r.bot.Send(msg); err != nil {
		r.log.Error("send help failed", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

func (r *Router) handleMenu(ctx context.Context, chatID, userID int64) {
	p := r.prefs(ctx, chatID, userID)
	r.nav.with(chatID, func(n *navStack) { n.Reset() })
	msg := tgbotapi.NewMessage(chatID, r.loc.T(p.Lang, "choose_action"))
	msg.ReplyMarkup = mainMenuKeyboard(r.loc, p.Lang)
	if _, err := r.bot.Send(msg); err != nil {
		r.log.Error("send menu failed", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

func (r *Router) handleIn(ctx context.Context, chatID, userID int64, args string) {
	p := r.prefs(ctx, chatID, userID)
	if args == "" {
		r.nav.with(chatID, func(n *navStack) { n.Push(StateInMinutes) })
		msg := tgbotapi.NewMessage(chatID, r.loc.T(p.Lang, "choose_in_min"))
		msg.ReplyMarkup = minutesKeyboard(r.loc, p.Lang)
		_, _ = r.bot.Send(msg)
		return
	}

	d, rest, err := parseInArgs(args)
	if err != nil {
		r.sendText(chatID, r.loc.T(p.Lang, inputErrKey(err, "need_duration")))
		return
	}

	due := time.Now().UTC().Add(d)
	id, err := r.createReminder(ctx, chatID, userID, rest, due, p.TZ)
	if err != nil {
		r.log.Error("create reminder failed", zap.Int64("chat_id", chatID), zap.Error(err))
		r.sendText(chatID, r.loc.T(p.Lang, "error"))
		return
	}
	r.sendText(chatID, r.loc.T(p.Lang, "in_ok",
		"delta", domain.FormatDelta(p.Lang, d),
		"when_local", r.localFormat(due, p.TZ),
		"tz", p.TZ,
		"rid", strconv.FormatInt(id, 10),
	))
}

func (r *Router) handleAt(ctx context.Context, chatID, userID int64, args string) {
	p := r.prefs(ctx, chatID, userID)
	if args == "" {
		r.sendText(chatID, r.loc.T(p.Lang, "at_need"))
		return
	}

	loc, err := r.zones.Resolve(p.TZ)
	if err != nil {
		loc = time.UTC
	}
	now := time.Now().UTC()
	due, text, err := r.parseAtArgs(args, loc, now)
	if err != nil {
		key := inputErrKey(err, "at_unparsed")
		if key == "empty_text" {
			key = "at_empty"
		} else if key == "time_passed" {
			key = "at_past"
		}
		r.sendText(chatID, r.loc.T(p.Lang, key))
		return
	}

	id, err := r.createReminder(ctx, chatID, userID, text, due, p.TZ)
	if err != nil {
		r.log.Error("create reminder failed", zap.Int64("chat_id", chatID), zap.Error(err))
		r.sendText(chatID, r.loc.T(p.Lang, "error"))
		return
	}
	r.sendText(chatID, r.loc.T(p.Lang, "at_ok",
		"when_local", r.localFormat(due, p.TZ),
		"tz", p.TZ,
		"delta", domain.FormatDelta(p.Lang, due.Sub(now)),
		"rid", strconv.FormatInt(id, 10),
	))
}

// createReminder persists the row first, then arms the timer. That ordering
// is what lets a crash in between recover through reconciliation.
func (r *Router) createReminder(ctx context.Context, chatID, userID int64, text string, dueUTC time.Time, tzName string) (int64, error) {
	id, err := r.repo.Create(ctx, chatID, userID, text, dueUTC, tzName)
	if err != nil {
		return 0, err
	}
	r.engine.Arm(id, chatID, text, dueUTC)
	r.audit.Event(chatID, userID, "remind_create",
		zap.Int64("rid", id),
		zap.Time("due_utc", dueUTC),
	)
	return id, nil
}

func (r *Router) handleList(ctx context.Context, chatID, userID int64) {
	p := r.prefs(ctx, chatID, userID)
	text, _ := r.listText(ctx, chatID, userID, p.Lang, p.TZ)
	r.sendText(chatID, text)
}

// listText renders the active reminders and reports whether any exist.
func (r *Router) listText(ctx context.Context, chatID, userID int64, lang, tzName string) (string, bool) {
	rems, err := r.repo.ListActive(ctx, chatID, userID, listLimit)
	if err != nil {
		r.log.Error("list failed", zap.Int64("chat_id", chatID), zap.Error(err))
		return r.loc.T(lang, "error"), false
	}
	if len(rems) == 0 {
		return r.loc.T(lang, "list_empty"), false
	}
	var b strings.Builder
	b.WriteString(r.loc.T(lang, "list_header", "tz", tzName))
	for _, rem := range rems {
		fmt.Fprintf(&b, "\n• #%d  %s  %s", rem.ID, r.localFormat(rem.DueAtUTC, tzName), rem.Text)
	}
	return b.String(), true
}

func (r *Router) handleCancel(ctx context.Context, chatID, userID int64, args string) {
	p := r.prefs(ctx, chatID, userID)
	if args == "" {
		r.sendText(chatID, r.loc.T(p.Lang, "cancel_need"))
		return
	}
	id, err := strconv.ParseInt(args, 10, 64)
	if err != nil {
		r.sendText(chatID, r.loc.T(p.Lang, "cancel_nan"))
		return
	}
	ok, err := r.engine.Cancel(ctx, id, userID)
	if err != nil {
		r.log.Error("cancel failed", zap.Int64("rid", id), zap.Error(err))
		r.sendText(chatID, r.loc.T(p.Lang, "error"))
		return
	}
	if !ok {
		r.sendText(chatID, r.loc.T(p.Lang, "cancel_not_found"))
		return
	}
	r.audit.Event(chatID, userID, "remind_cancel", zap.Int64("rid", id))
	r.sendText(chatID, r.loc.T(p.Lang, "cancel_ok", "rid", strconv.FormatInt(id, 10)))
}

func (r *Router) handleSnooze(ctx context.Context, chatID, userID int64, args string) {
	p := r.prefs(ctx, chatID, userID)
	parts := strings.SplitN(args, " ", 2)
	if len(parts) < 2 {
		r.sendText(chatID, r.loc.T(p.Lang, "snooze_need"))
		return
	}
	id, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		r.sendText(chatID, r.loc.T(p.Lang, "cancel_nan"))
		return
	}
	d, _, ok := domain.ParseDurationPrefix(strings.TrimSpace(parts[1]))
	if !ok {
		r.sendText(chatID, r.loc.T(p.Lang, "snooze_need"))
		return
	}
	r.snooze(ctx, chatID, userID, id, d, p.Lang, p.TZ)
}

// snooze runs the reschedule and renders the outcome; shared by the command
// and the inline keyboard.
func (r *Router) snooze(ctx context.Context, chatID, userID, id int64, d time.Duration, lang, tzName string) {
	newDue, err := r.engine.Snooze(ctx, id, userID, d)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		r.sendText(chatID, r.loc.T(lang, "cancel_not_found"))
		return
	case errors.Is(err, domain.ErrTimeAlreadyPassed):
		r.sendText(chatID, r.loc.T(lang, "time_passed"))
		return
	case err != nil:
		r.log.Error("snooze failed", zap.Int64("rid", id), zap.Error(err))
		r.sendText(chatID, r.loc.T(lang, "error"))
		return
	}
	r.audit.Event(chatID, userID, "remind_snooze",
		zap.Int64("rid", id),
		zap.Duration("extra", d),
	)
	r.sendText(chatID, r.loc.T(lang, "snooze_ok",
		"when_local", r.localFormat(newDue, tzName),
		"tz", tzName,
		"delta", domain.FormatDelta(lang, d),
		"rid", strconv.FormatInt(id, 10),
	))
}

func (r *Router) handleTZ(ctx context.Context, chatID, userID int64, args string) {
	p := r.prefs(ctx, chatID, userID)
	if args == "" {
		r.nav.with(chatID, func(n *navStack) { n.Push(StateTZ) })
		msg := tgbotapi.NewMessage(chatID, r.loc.T(p.Lang, "tz_show", "tz", p.TZ))
		msg.ReplyMarkup = tzKeyboard(r.loc, p.Lang)
		_, _ = r.bot.Send(msg)
		return
	}

	var canonical string
	if m := localClockRe.FindStringSubmatch(args); m != nil {
		hh, _ := strconv.Atoi(m[1])
		mm, _ := strconv.Atoi(m[2])
		canonical = tz.DeriveOffsetFromLocalClock(hh, mm, time.Now().UTC())
	} else {
		var err error
		canonical, err = r.zones.Canonical(args)
		if err != nil {
			r.sendText(chatID, r.loc.T(p.Lang, "tz_bad"))
			return
		}
	}
	r.saveTZ(ctx, chatID, userID, canonical, p.Lang)
}

func (r *Router) saveTZ(ctx context.Context, chatID, userID int64, canonical, lang string) {
	if err := r.repo.SetTZ(ctx, chatID, userID, canonical); err != nil {
		r.log.Error("set tz failed", zap.Int64("chat_id", chatID), zap.Error(err))
		r.sendText(chatID, r.loc.T(lang, "error"))
		return
	}
	r.audit.Event(chatID, userID, "set_tz", zap.String("tz", canonical))
	r.sendText(chatID, r.loc.T(lang, "tz_ok", "tz", canonical))
}

func (r *Router) handleLang(ctx context.Context, chatID, userID int64, args string) {
	p := r.prefs(ctx, chatID, userID)
	if args == "" {
		r.sendText(chatID, r.loc.T(p.Lang, "lang_show", "lang", p.Lang))
		return
	}
	lang := strings.ToLower(args)
	if !r.loc.Supported(lang) {
		r.sendText(chatID, r.loc.T(p.Lang, "lang_bad"))
		return
	}
	if err := r.repo.SetLang(ctx, chatID, userID, lang); err != nil {
		r.log.Error("set lang failed", zap.Int64("chat_id", chatID), zap.Error(err))
		r.sendText(chatID, r.loc.T(p.Lang, "error"))
		return
	}
	r.audit.Event(chatID, userID, "set_lang", zap.String("lang", lang))
	// Confirm in the language just chosen.
	r.sendText(chatID, r.loc.T(lang, "lang_ok", "lang", lang))
}

func (r *Router) handleWatch(ctx context.Context, chatID, userID int64, args string) {
	p := r.prefs(ctx, chatID, userID)
	if args == "" {
		rems, err := r.repo.ListActive(ctx, chatID, userID, listLimit)
		if err != nil {
			r.log.Error("list failed", zap.Int64("chat_id", chatID), zap.Error(err))
			r.sendText(chatID, r.loc.T(p.Lang, "error"))
			return
		}
		if len(rems) == 0 {
			r.sendText(chatID, r.loc.T(p.Lang, "list_empty"))
			return
		}
		r.nav.with(chatID, func(n *navStack) { n.Push(StateWatchPick) })
		msg := tgbotapi.NewMessage(chatID, r.loc.T(p.Lang, "choose_watch"))
		msg.ReplyMarkup = reminderPickKeyboard(r.loc, p.Lang, cbWatchPrefix, rems)
		_, _ = r.bot.Send(msg)
		return
	}
	id, err := strconv.ParseInt(args, 10, 64)
	if err != nil {
		r.sendText(chatID, r.loc.T(p.Lang, "cancel_nan"))
		return
	}
	r.startWatch(ctx, chatID, userID, id)
}

// startWatch posts a countdown message for a reminder and keeps editing it
// once a minute until the reminder fires or leaves the scheduled state.
func (r *Router) startWatch(ctx context.Context, chatID, userID, id int64) {
	p := r.prefs(ctx, chatID, userID)
	rem, err := r.repo.GetByID(ctx, id)
	if err != nil || rem.Status != domain.StatusScheduled || rem.UserID != userID {
		r.sendText(chatID, r.loc.T(p.Lang, "cancel_not_found"))
		return
	}

	sent, err := r.bot.Send(tgbotapi.NewMessage(chatID, r.watchLine(p.Lang, p.TZ, rem)))
	if err != nil {
		r.log.Error("watch send failed", zap.Int64("rid", id), zap.Error(err))
		return
	}
	r.audit.Event(chatID, userID, "watch", zap.Int64("rid", id))

	go r.watchLoop(chatID, id, sent.MessageID, p.Lang, p.TZ)
}

func (r *Router) watchLoop(chatID, id int64, messageID int, lang, tzName string) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-r.done:
			return
		case <-ticker.C:
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		rem, err := r.repo.GetByID(ctx, id)
		cancel()
		if err != nil {
			return
		}

		text := r.watchLine(lang, tzName, rem)
		finished := rem.Status != domain.StatusScheduled || !rem.DueAtUTC.After(time.Now().UTC())
		if finished {
			text = r.loc.T(lang, "watch_fired", "rid", strconv.FormatInt(id, 10))
		}
		edit := tgbotapi.NewEditMessageText(chatID, messageID, text)
		if _, err := r.bot.Request(edit); err != nil {
			r.log.Warn("watch edit failed", zap.Int64("rid", id), zap.Error(err))
		}
		if finished {
			return
		}
	}
}

func (r *Router) watchLine(lang, tzName string, rem *domain.Reminder) string {
	return r.loc.T(lang, "watch_line",
		"rid", strconv.FormatInt(rem.ID, 10),
		"when_local", r.localFormat(rem.DueAtUTC, tzName),
		"tz", tzName,
		"delta", domain.FormatDelta(lang, time.Until(rem.DueAtUTC)),
	)
}

// handleRestart wipes all durable state and defers to the app layer to
// re-exec. Gated to the configured admin.
func (r *Router) handleRestart(ctx context.Context, chatID, userID int64) {
	if r.opts.AdminUserID == 0 || userID != r.opts.AdminUserID {
		return
	}
	r.engine.Stop()
	if err := r.repo.Wipe(ctx); err != nil {
		r.log.Error("wipe failed", zap.Error(err))
		r.sendText(chatID, r.loc.T(r.opts.DefaultLang, "error"))
		return
	}
	r.audit.Event(chatID, userID, "restart")
	r.sendText(chatID, "♻️")
	r.restart()
}

// --- Free-form input (pending conversational flows) ---

func (r *Router) handleFreeForm(ctx context.Context, chatID, userID int64, text string) {
	var kind string
	var arg int
	r.nav.with(chatID, func(n *navStack) { kind, arg = n.Pending() })
	if kind == pendingNone || text == "" {
		return
	}

	p := r.prefs(ctx, chatID, userID)
	switch kind {
	case pendingCity:
		canonical, err := r.zones.Canonical(text)
		if err != nil {
			// Keep the pending flow alive so the user can retry.
			r.sendText(chatID, r.loc.T(p.Lang, "tz_bad")+"\n"+r.loc.T(p.Lang, "enter_city"))
			return
		}
		r.clearPending(chatID)
		r.saveTZ(ctx, chatID, userID, canonical, p.Lang)

	case pendingLocalTime:
		m := localClockRe.FindStringSubmatch(text)
		if m == nil {
			r.sendText(chatID, r.loc.T(p.Lang, "enter_local_time"))
			return
		}
		hh, _ := strconv.Atoi(m[1])
		mm, _ := strconv.Atoi(m[2])
		r.clearPending(chatID)
		r.saveTZ(ctx, chatID, userID, tz.DeriveOffsetFromLocalClock(hh, mm, time.Now().UTC()), p.Lang)

	case pendingInText:
		r.clearPending(chatID)
		d := time.Duration(arg) * time.Minute
		due := time.Now().UTC().Add(d)
		id, err := r.createReminder(ctx, chatID, userID, text, due, p.TZ)
		if err != nil {
			r.log.Error("create reminder failed", zap.Int64("chat_id", chatID), zap.Error(err))
			r.sendText(chatID, r.loc.T(p.Lang, "error"))
			return
		}
		r.sendText(chatID, r.loc.T(p.Lang, "in_ok",
			"delta", domain.FormatDelta(p.Lang, d),
			"when_local", r.localFormat(due, p.TZ),
			"tz", p.TZ,
			"rid", strconv.FormatInt(id, 10),
		))
	}
}

func (r *Router) clearPending(chatID int64) {
	r.nav.with(chatID, func(n *navStack) { n.ClearPending() })
}

// --- Callback queries ---

func (r *Router) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	if cb.Message == nil {
		r.answerCallback(cb.ID, "")
		return
	}
	chatID := cb.Message.Chat.ID
	userID := cb.From.ID
	msgID := cb.Message.MessageID
	data := cb.Data
	p := r.prefs(ctx, chatID, userID)

	switch {
	case data == cbBack:
		var st State
		r.nav.with(chatID, func(n *navStack) { st = n.Back() })
		r.answerCallback(cb.ID, "")
		r.renderState(ctx, chatID, userID, msgID, st)

	case strings.HasPrefix(data, cbMenuPrefix):
		st := State(strings.TrimPrefix(data, cbMenuPrefix))
		r.nav.with(chatID, func(n *navStack) { n.Push(st) })
		r.answerCallback(cb.ID, "")
		r.renderState(ctx, chatID, userID, msgID, st)

	case strings.HasPrefix(data, cbLangPrefix):
		lang := strings.TrimPrefix(data, cbLangPrefix)
		if !r.loc.Supported(lang) {
			r.answerCallback(cb.ID, r.loc.T(p.Lang, "lang_bad"))
			return
		}
		if err := r.repo.SetLang(ctx, chatID, userID, lang); err != nil {
			r.log.Error("set lang failed", zap.Error(err))
			r.answerCallback(cb.ID, r.loc.T(p.Lang, "error"))
			return
		}
		r.audit.Event(chatID, userID, "set_lang", zap.String("lang", lang))
		r.answerCallback(cb.ID, r.loc.T(lang, "lang_ok", "lang", lang))
		r.renderState(ctx, chatID, userID, msgID, StateLang)

	case data == cbTZCity:
		r.nav.with(chatID, func(n *navStack) { n.SetPending(pendingCity, 0) })
		r.answerCallback(cb.ID, "")
		r.editText(chatID, msgID, r.loc.T(p.Lang, "enter_city"))

	case data == cbTZLocal:
		r.nav.with(chatID, func(n *navStack) { n.SetPending(pendingLocalTime, 0) })
		r.answerCallback(cb.ID, "")
		r.editText(chatID, msgID, r.loc.T(p.Lang, "enter_local_time"))

	case strings.HasPrefix(data, cbTZPrefix):
		name := strings.TrimPrefix(data, cbTZPrefix)
		canonical, err := r.zones.Canonical(name)
		if err != nil {
			r.answerCallback(cb.ID, r.loc.T(p.Lang, "tz_bad"))
			return
		}
		if err := r.repo.SetTZ(ctx, chatID, userID, canonical); err != nil {
			r.log.Error("set tz failed", zap.Error(err))
			r.answerCallback(cb.ID, r.loc.T(p.Lang, "error"))
			return
		}
		r.audit.Event(chatID, userID, "set_tz", zap.String("tz", canonical))
		r.answerCallback(cb.ID, r.loc.T(p.Lang, "tz_ok", "tz", canonical))

	case strings.HasPrefix(data, cbSoundPrefix):
		on := strings.TrimPrefix(data, cbSoundPrefix) == "on"
		if err := r.repo.SetSound(ctx, chatID, userID, on); err != nil {
			r.log.Error("set sound failed", zap.Error(err))
			r.answerCallback(cb.ID, r.loc.T(p.Lang, "error"))
			return
		}
		r.audit.Event(chatID, userID, "set_sound", zap.Bool("on", on))
		key := "sound_off"
		if on {
			key = "sound_on"
		}
		r.answerCallback(cb.ID, r.loc.T(p.Lang, key))

	case strings.HasPrefix(data, cbMelodyPrefix):
		m := strings.TrimPrefix(data, cbMelodyPrefix)
		if err := r.repo.SetMelody(ctx, chatID, userID, m); err != nil {
			r.log.Error("set melody failed", zap.Error(err))
			r.answerCallback(cb.ID, r.loc.T(p.Lang, "error"))
			return
		}
		r.audit.Event(chatID, userID, "set_melody", zap.String("melody", m))
		r.answerCallback(cb.ID, r.loc.T(p.Lang, "melody_saved", "name", r.loc.T(p.Lang, "melody_"+m)))

	case strings.HasPrefix(data, cbInMinPrefix):
		mins, err := strconv.Atoi(strings.TrimPrefix(data, cbInMinPrefix))
		if err != nil || mins <= 0 {
			r.answerCallback(cb.ID, "")
			return
		}
		r.nav.with(chatID, func(n *navStack) { n.SetPending(pendingInText, mins) })
		r.answerCallback(cb.ID, "")
		r.editText(chatID, msgID, r.loc.T(p.Lang, "enter_text"))

	case strings.HasPrefix(data, cbDonePrefix):
		id, err := strconv.ParseInt(strings.TrimPrefix(data, cbDonePrefix), 10, 64)
		if err != nil {
			r.answerCallback(cb.ID, "")
			return
		}
		if err := r.engine.Acknowledge(ctx, id); err != nil {
			r.log.Error("acknowledge failed", zap.Int64("rid", id), zap.Error(err))
			r.answerCallback(cb.ID, r.loc.T(p.Lang, "error"))
			return
		}
		r.audit.Event(chatID, userID, "remind_ack", zap.Int64("rid", id))
		r.answerCallback(cb.ID, "✅")

	case strings.HasPrefix(data, cbSnoozePrefix):
		parts := strings.Split(strings.TrimPrefix(data, cbSnoozePrefix), ":")
		if len(parts) != 2 {
			r.answerCallback(cb.ID, "")
			return
		}
		id, err1 := strconv.ParseInt(parts[0], 10, 64)
		mins, err2 := strconv.Atoi(parts[1])
		if err1 != nil || err2 != nil {
			r.answerCallback(cb.ID, "")
			return
		}
		r.answerCallback(cb.ID, "")
		r.snooze(ctx, chatID, userID, id, time.Duration(mins)*time.Minute, p.Lang, p.TZ)

	case strings.HasPrefix(data, cbCancelPrefix):
		id, err := strconv.ParseInt(strings.TrimPrefix(data, cbCancelPrefix), 10, 64)
		if err != nil {
			r.answerCallback(cb.ID, "")
			return
		}
		ok, err := r.engine.Cancel(ctx, id, userID)
		if err != nil {
			r.log.Error("cancel failed", zap.Int64("rid", id), zap.Error(err))
			r.answerCallback(cb.ID, r.loc.T(p.Lang, "error"))
			return
		}
		if !ok {
			r.answerCallback(cb.ID, r.loc.T(p.Lang, "cancel_not_found"))
			return
		}
		r.audit.Event(chatID, userID, "remind_cancel", zap.Int64("rid", id))
		r.answerCallback(cb.ID, r.loc.T(p.Lang, "cancel_ok", "rid", strconv.FormatInt(id, 10)))
		r.renderState(ctx, chatID, userID, msgID, StateCancelPick)

	case strings.HasPrefix(data, cbWatchPrefix):
		id, err := strconv.ParseInt(strings.TrimPrefix(data, cbWatchPrefix), 10, 64)
		if err != nil {
			r.answerCallback(cb.ID, "")
			return
		}
		r.answerCallback(cb.ID, "")
		r.startWatch(ctx, chatID, userID, id)

	default:
		r.answerCallback(cb.ID, "")
	}
}

// renderState redraws the menu message for the given screen.
func (r *Router) renderState(ctx context.Context, chatID, userID int64, msgID int, st State) {
	p := r.prefs(ctx, chatID, userID)

	var text string
	var kb tgbotapi.InlineKeyboardMarkup
	switch st {
	case StateTools:
		text, kb = r.loc.T(p.Lang, "choose_action"), toolsKeyboard(r.loc, p.Lang)
	case StateLang:
		text, kb = r.loc.T(p.Lang, "choose_lang"), langKeyboard(r.loc, p.Lang)
	case StateTZ:
		text, kb = r.loc.T(p.Lang, "choose_tz"), tzKeyboard(r.loc, p.Lang)
	case StateSound:
		text, kb = r.loc.T(p.Lang, "choose_sound"), soundKeyboard(r.loc, p.Lang)
	case StateMelody:
		text, kb = r.loc.T(p.Lang, "choose_melody"), melodyKeyboard(r.loc, p.Lang)
	case StateInMinutes:
		text, kb = r.loc.T(p.Lang, "choose_in_min"), minutesKeyboard(r.loc, p.Lang)
	case StateCancelPick:
		rems, err := r.repo.ListActive(ctx, chatID, userID, listLimit)
		if err != nil {
			r.log.Error("list failed", zap.Error(err))
			return
		}
		if len(rems) == 0 {
			text = r.loc.T(p.Lang, "list_empty")
			kb = tgbotapi.NewInlineKeyboardMarkup(backRow(r.loc, p.Lang))
			break
		}
		text, kb = r.loc.T(p.Lang, "choose_cancel"), reminderPickKeyboard(r.loc, p.Lang, cbCancelPrefix, rems)
	case StateWatchPick:
		rems, err := r.repo.ListActive(ctx, chatID, userID, listLimit)
		if err != nil {
			r.log.Error("list failed", zap.Error(err))
			return
		}
		if len(rems) == 0 {
			text = r.loc.T(p.Lang, "list_empty")
			kb = tgbotapi.NewInlineKeyboardMarkup(backRow(r.loc, p.Lang))
			break
		}
		text, kb = r.loc.T(p.Lang, "choose_watch"), reminderPickKeyboard(r.loc, p.Lang, cbWatchPrefix, rems)
	case StateList:
		text, _ = r.listText(ctx, chatID, userID, p.Lang, p.TZ)
		kb = tgbotapi.NewInlineKeyboardMarkup(backRow(r.loc, p.Lang))
	default: // StateRoot
		text, kb = r.loc.T(p.Lang, "choose_action"), mainMenuKeyboard(r.loc, p.Lang)
	}

	edit := tgbotapi.NewEditMessageTextAndMarkup(chatID, msgID, text, kb)
	if _, err := r.bot.Request(edit); err != nil {
		r.log.Warn("menu edit failed", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

func (r *Router) editText(chatID int64, msgID int, text string) {
	if _, err := r.bot.Request(tgbotapi.NewEditMessageText(chatID, msgID, text)); err != nil {
		r.log.Warn("edit failed", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}
