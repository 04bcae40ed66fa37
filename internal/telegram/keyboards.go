package telegram

import (
	"fmt"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/tombelial666/reminderBot/internal/domain"
	"github.com/tombelial666/reminderBot/internal/i18n"
)

// Callback data prefixes. Navigation goes through "menu:"; everything else
// carries the action payload directly.
const (
	cbMenuPrefix   = "menu:"
	cbBack         = "menu:back"
	cbLangPrefix   = "lang:"
	cbTZPrefix     = "tz:"
	cbTZCity       = "tz:city"
	cbTZLocal      = "tz:local"
	cbSoundPrefix  = "sound:"
	cbMelodyPrefix = "melody:"
	cbDonePrefix   = "done:"
	cbSnoozePrefix = "snooze_do:"
	cbCancelPrefix = "cancel_do:"
	cbWatchPrefix  = "watch_do:"
	cbInMinPrefix  = "in_min:"
)

var tzPresets = []string{
	"Europe/Moscow",
	"Europe/London",
	"Asia/Bangkok",
	"Asia/Tokyo",
	"America/New_York",
	"UTC",
}

var melodies = []string{"default", "bell", "chime", "ding"}

func btn(label, data string) tgbotapi.InlineKeyboardButton {
	return tgbotapi.NewInlineKeyboardButtonData(label, data)
}

func backRow(loc *i18n.Localizer, lang string) []tgbotapi.InlineKeyboardButton {
	return tgbotapi.NewInlineKeyboardRow(btn(loc.T(lang, "btn_back"), cbBack))
}

func mainMenuKeyboard(loc *i18n.Localizer, lang string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			btn(loc.T(lang, "btn_insert_in"), cbMenuPrefix+string(StateInMinutes)),
			btn(loc.T(lang, "btn_list"), "menu:list"),
		),
		tgbotapi.NewInlineKeyboardRow(
			btn(loc.T(lang, "btn_cancel"), cbMenuPrefix+string(StateCancelPick)),
			btn(loc.T(lang, "btn_watch"), cbMenuPrefix+string(StateWatchPick)),
		),
		tgbotapi.NewInlineKeyboardRow(
			btn(loc.T(lang, "btn_tools"), cbMenuPrefix+string(StateTools)),
		),
	)
}

func toolsKeyboard(loc *i18n.Localizer, lang string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			btn(loc.T(lang, "btn_tz"), cbMenuPrefix+string(StateTZ)),
			btn(loc.T(lang, "btn_lang"), cbMenuPrefix+string(StateLang)),
		),
		tgbotapi.NewInlineKeyboardRow(
			btn(loc.T(lang, "btn_sound"), cbMenuPrefix+string(StateSound)),
			btn(loc.T(lang, "btn_melody"), cbMenuPrefix+string(StateMelody)),
		),
		backRow(loc, lang),
	)
}

func langKeyboard(loc *i18n.Localizer, lang string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			btn("Русский", cbLangPrefix+"ru"),
			btn("English", cbLangPrefix+"en"),
			btn("ไทย", cbLangPrefix+"th"),
		),
		backRow(loc, lang),
	)
}

func tzKeyboard(loc *i18n.Localizer, lang string) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(tzPresets)/2+2)
	for i := 0; i < len(tzPresets); i += 2 {
		row := []tgbotapi.InlineKeyboardButton{btn(tzPresets[i], cbTZPrefix+tzPresets[i])}
		if i+1 < len(tzPresets) {
			row = append(row, btn(tzPresets[i+1], cbTZPrefix+tzPresets[i+1]))
		}
		rows = append(rows, row)
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		btn("🏙", cbTZCity),
		btn("🕐 HH:MM", cbTZLocal),
	))
	rows = append(rows, backRow(loc, lang))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func soundKeyboard(loc *i18n.Localizer, lang string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			btn(loc.T(lang, "sound_on"), cbSoundPrefix+"on"),
			btn(loc.T(lang, "sound_off"), cbSoundPrefix+"off"),
		),
		backRow(loc, lang),
	)
}

func melodyKeyboard(loc *i18n.Localizer, lang string) tgbotapi.InlineKeyboardMarkup {
	row := make([]tgbotapi.InlineKeyboardButton, 0, len(melodies))
	for _, m := range melodies {
		row = append(row, btn(loc.T(lang, "melody_"+m), cbMelodyPrefix+m))
	}
	return tgbotapi.NewInlineKeyboardMarkup(row, backRow(loc, lang))
}

// minutesKeyboard offers 5..60 minutes in steps of 5, four per row.
func minutesKeyboard(loc *i18n.Localizer, lang string) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	var row []tgbotapi.InlineKeyboardButton
	for m := 5; m <= 60; m += 5 {
		row = append(row, btn(strconv.Itoa(m), cbInMinPrefix+strconv.Itoa(m)))
		if len(row) == 4 {
			rows = append(rows, row)
			row = nil
		}
	}
	rows = append(rows, backRow(loc, lang))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// reminderPickKeyboard lists active reminders one per row, each button
// carrying prefix+id. Labels are truncated to keep buttons readable.
func reminderPickKeyboard(loc *i18n.Localizer, lang, prefix string, rems []domain.Reminder) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(rems)+1)
	for _, rem := range rems {
		label := fmt.Sprintf("#%d %s", rem.ID, truncate(rem.Text, 32))
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			btn(label, prefix+strconv.FormatInt(rem.ID, 10)),
		))
	}
	rows = append(rows, backRow(loc, lang))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// snoozeKeyboard is attached to every delivered reminder: acknowledge stops
// the repeat cycle, the +N buttons postpone it.
func snoozeKeyboard(loc *i18n.Localizer, lang string, id int64) tgbotapi.InlineKeyboardMarkup {
	sid := strconv.FormatInt(id, 10)
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			btn(loc.T(lang, "btn_done"), cbDonePrefix+sid),
		),
		tgbotapi.NewInlineKeyboardRow(
			btn(loc.T(lang, "snooze_15"), cbSnoozePrefix+sid+":15"),
			btn(loc.T(lang, "snooze_30"), cbSnoozePrefix+sid+":30"),
			btn(loc.T(lang, "snooze_60"), cbSnoozePrefix+sid+":60"),
		),
	)
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}
