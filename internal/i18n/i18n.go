// Package i18n holds the UI string bundles (ru/en/th). Bundles are plain
// data injected into constructors; there is no process-wide mutable state.
package i18n

import "strings"

// Localizer resolves message keys against per-language bundles, falling back
// to the default language and finally to the key itself.
type Localizer struct {
	bundles     map[string]map[string]string
	defaultLang string
}

func New(defaultLang string) *Localizer {
	if _, ok := bundles[defaultLang]; !ok {
		defaultLang = "en"
	}
	return &Localizer{bundles: bundles, defaultLang: defaultLang}
}

// Supported reports whether lang has a bundle.
func (l *Localizer) Supported(lang string) bool {
	_, ok := l.bundles[lang]
	return ok
}

// DefaultLang returns the fallback language tag.
func (l *Localizer) DefaultLang() string {
	return l.defaultLang
}

// T renders the message for key in lang, substituting {name} placeholders
// from args given as name/value pairs.
func (l *Localizer) T(lang, key string, args ...string) string {
	b, ok := l.bundles[lang]
	if !ok {
		b = l.bundles[l.defaultLang]
	}
	msg, ok := b[key]
	if !ok {
		if msg, ok = l.bundles[l.defaultLang][key]; !ok {
			return key
		}
	}
	if len(args) < 2 {
		return msg
	}
	pairs := make([]string, 0, len(args))
	for i := 0; i+1 < len(args); i += 2 {
		pairs = append(pairs, "{"+args[i]+"}", args[i+1])
	}
	return strings.NewReplacer(pairs...).Replace(msg)
}

var bundles = map[string]map[string]string{
	"en": {
		"help": "Hi! I'm a reminder bot.\n\n" +
			"/in <duration> <text> — remind after a period.\n" +
			"Ex.: /in 10m drink water; /in 2h 15m send report.\n\n" +
			"/at <datetime> <text> — remind at a specific time.\n" +
			"Ex.: /at tomorrow 9:30 buy bread; /at 2026-12-31 23:00 celebrate.\n\n" +
			"/list — show active reminders.\n" +
			"/cancel <id> — cancel by ID.\n" +
			"/snooze <id> <duration> — postpone an active reminder.\n" +
			"/tz [Region/City] — show/set timezone.\n" +
			"/lang [ru|th|en] — show/set language.\n\n" +
			"Timezone: {tz}\nLanguage: {lang}",
		"need_duration":    "Provide duration and text. E.g. /in 20m drink water",
		"empty_text":       "Empty reminder text. Add text after duration.",
		"time_passed":      "Time already passed. Use duration > 0.",
		"in_ok":            "Ok, will remind in {delta} at {when_local} ({tz}).\nID: {rid}",
		"at_need":          "Provide datetime and text. E.g. /at tomorrow 9:00 buy bread",
		"at_unparsed":      "Couldn't parse date/time. Examples: 'tomorrow 9:30', '2026-12-31 23:00'",
		"at_empty":         "Empty reminder text. Add text after datetime.",
		"at_past":          "That time is in the past. Use a future moment.",
		"at_ok":            "Ok, will remind {when_local} ({tz}) — in {delta}.\nID: {rid}",
		"list_empty":       "No active reminders.",
		"list_header":      "Active reminders (TZ {tz}):",
		"cancel_need":      "Provide ID: /cancel <id>",
		"cancel_nan":       "ID must be a number: /cancel 123",
		"cancel_ok":        "Canceled reminder ID {rid}.",
		"cancel_not_found": "No active reminder with that ID (or already done/canceled).",
		"snooze_need":      "Usage: /snooze <id> <duration>",
		"snooze_ok":        "Snoozed to {when_local} ({tz}) — in {delta}. ID: {rid}",
		"tz_show":          "Current timezone: {tz}\nSet: /tz Region/City, /tz HH:MM or your city name",
		"tz_bad":           "Invalid timezone. Example: Europe/Moscow",
		"tz_ok":            "Timezone set to: {tz}",
		"lang_show":        "Current language: {lang}\nSet: /lang ru | th | en",
		"lang_bad":         "Supported: ru, th, en",
		"lang_ok":          "Language set: {lang}",
		"error":            "Internal error. Please try again later.",
		"late_prefix":      "(Late) ",
		"enter_city":       "Type your city (EN/RU/TH): e.g., London, Москва, กรุงเทพฯ",
		"enter_local_time": "Enter your local time as HH:MM (e.g., 09:30)",
		"choose_action":    "Choose an action:",
		"choose_lang":      "Choose language:",
		"choose_tz":        "Choose timezone:",
		"choose_sound":     "Choose notification sound:",
		"choose_melody":    "Choose notification melody:",
		"choose_cancel":    "Choose a reminder to cancel:",
		"choose_watch":     "Choose a reminder to watch:",
		"choose_in_min":    "In how many minutes (step 5):",
		"enter_text":       "Type the reminder text and send it",
		"sound_on":         "🔔 Sound on",
		"sound_off":        "🔕 Silent",
		"melody_default":   "Default",
		"melody_bell":      "Bell",
		"melody_chime":     "Chime",
		"melody_ding":      "Ding",
		"melody_saved":     "Melody saved: {name}",
		"btn_list":         "List",
		"btn_watch":        "Watch",
		"btn_cancel":       "Cancel",
		"btn_tz":           "Timezone",
		"btn_lang":         "Language",
		"btn_back":         "Back",
		"btn_tools":        "Tools",
		"btn_sound":        "Sound",
		"btn_melody":       "Melody",
		"btn_done":         "Mark as read",
		"btn_insert_in":    "Insert /in",
		"btn_insert_at":    "Insert /at",
		"snooze_15":        "+15m",
		"snooze_30":        "+30m",
		"snooze_60":        "+60m",
		"watch_line":       "⏳ ID {rid}: {when_local} ({tz}) — {delta}",
		"watch_fired":      "⏰ ID {rid} is due.",
	},
	"ru": {
		"help": "Привет! Я бот-напоминальщик.\n\n" +
			"/in <длительность> <текст> — напомнить через период.\n" +
			"Напр.: /in 20m выпить воду; /in 2ч 15м отчёт.\n\n" +
			"/at <дата/время> <текст> — напомнить в момент.\n" +
			"Напр.: /at завтра 9:30 купить хлеб.\n\n" +
			"/list — активные напоминания.\n" +
			"/cancel <id> — отменить.\n" +
			"/snooze <id> <длительность> — отложить.\n" +
			"/tz [Region/City] — часовой пояс.\n" +
			"/lang [ru|th|en] — язык.\n\n" +
			"Часовой пояс: {tz}\nЯзык: {lang}",
		"need_duration":    "Укажите длительность и текст. Например: /in 20m выпить воду",
		"empty_text":       "Пустой текст напоминания. Добавьте текст после длительности.",
		"time_passed":      "Время уже прошло. Укажите длительность больше нуля.",
		"in_ok":            "Ок, напомню через {delta} в {when_local} ({tz}).\nID: {rid}",
		"at_need":          "Укажите дату/время и текст. Например: /at завтра 9:00 купить хлеб",
		"at_unparsed":      "Не смог понять дату/время. Примеры: 'завтра 9:30', '2026-12-31 23:00'",
		"at_empty":         "Пустой текст напоминания. Добавьте текст после даты/времени.",
		"at_past":          "Это время уже прошло. Укажите будущий момент.",
		"at_ok":            "Ок, напомню {when_local} ({tz}) — через {delta}.\nID: {rid}",
		"list_empty":       "Активных напоминаний нет.",
		"list_header":      "Активные напоминания (TZ {tz}):",
		"cancel_need":      "Укажите ID: /cancel <id>",
		"cancel_nan":       "ID должен быть числом: /cancel 123",
		"cancel_ok":        "Отменено напоминание ID {rid}.",
		"cancel_not_found": "Не найдено активное напоминание с таким ID (или уже выполнено/отменено).",
		"snooze_need":      "Укажите: /snooze <id> <длительность>",
		"snooze_ok":        "Отложено до {when_local} ({tz}) — через {delta}. ID: {rid}",
		"tz_show":          "Текущий часовой пояс: {tz}\nУстановить: /tz Region/City, /tz ЧЧ:ММ или название города",
		"tz_bad":           "Некорректный часовой пояс. Пример: Europe/Moscow",
		"tz_ok":            "Часовой пояс установлен: {tz}",
		"lang_show":        "Текущий язык: {lang}\nУстановить: /lang ru | th | en",
		"lang_bad":         "Поддерживаются только: ru, th, en",
		"lang_ok":          "Язык установлен: {lang}",
		"error":            "Произошла внутренняя ошибка. Попробуйте позже.",
		"late_prefix":      "(Отложенное сообщение из-за перезапуска бота. Приносим извинения) ",
		"enter_city":       "Введите свой город (на англ./рус./тай): например, Moscow, Москва, Bangkok",
		"enter_local_time": "Введите ваше локальное время в формате ЧЧ:ММ (например, 09:30)",
		"choose_action":    "Выберите действие:",
		"choose_lang":      "Выберите язык:",
		"choose_tz":        "Выберите часовой пояс:",
		"choose_sound":     "Выберите режим звука уведомлений:",
		"choose_melody":    "Выберите мелодию уведомления:",
		"choose_cancel":    "Выберите напоминание для отмены:",
		"choose_watch":     "Выберите напоминание для наблюдения:",
		"choose_in_min":    "Через сколько минут (шаг 5):",
		"enter_text":       "Введите текст напоминания и просто отправьте сообщением",
		"sound_on":         "🔔 Со звуком",
		"sound_off":        "🔕 Без звука",
		"melody_default":   "Стандартная",
		"melody_bell":      "Колокол",
		"melody_chime":     "Перезвон",
		"melody_ding":      "Дзынь",
		"melody_saved":     "Мелодия сохранена: {name}",
		"btn_list":         "Список",
		"btn_watch":        "Наблюдать",
		"btn_cancel":       "Отменить",
		"btn_tz":           "Часовой пояс",
		"btn_lang":         "Язык",
		"btn_back":         "Назад",
		"btn_tools":        "Инструменты",
		"btn_sound":        "Звук",
		"btn_melody":       "Мелодия",
		"btn_done":         "Отметить прочитанным",
		"btn_insert_in":    "Вставить /in",
		"btn_insert_at":    "Вставить /at",
		"snooze_15":        "+15м",
		"snooze_30":        "+30м",
		"snooze_60":        "+60м",
		"watch_line":       "⏳ ID {rid}: {when_local} ({tz}) — {delta}",
		"watch_fired":      "⏰ ID {rid}: время пришло.",
	},
	"th": {
		"help": "สวัสดี! ฉันคือบอทเตือนความจำ\n\n" +
			"/in <ระยะเวลา> <ข้อความ> — เตือนภายในเวลา\n" +
			"เช่น: /in 10m ดื่มน้ำ\n\n" +
			"/at <วันเวลา> <ข้อความ> — เตือนในเวลาที่กำหนด\n" +
			"เช่น: /at 2026-12-31 23:00 อวยพร\n\n" +
			"/list — แสดงการเตือนที่ใช้งานอยู่\n" +
			"/cancel <id> — ยกเลิกตาม ID\n" +
			"/snooze <id> <ระยะเวลา> — เลื่อนการเตือน\n" +
			"/tz [Region/City] — โซนเวลา\n" +
			"/lang [ru|th|en] — ภาษา\n\n" +
			"โซนเวลา: {tz}\nภาษา: {lang}",
		"need_duration":    "กรุณาระบุระยะเวลาและข้อความ เช่น /in 20m ดื่มน้ำ",
		"empty_text":       "ไม่มีข้อความ โปรดเพิ่มข้อความหลังระยะเวลา",
		"time_passed":      "เวลาผ่านไปแล้ว โปรดระบุระยะเวลามากกว่า 0",
		"in_ok":            "ตกลง จะเตือนใน {delta} เวลา {when_local} ({tz})\nID: {rid}",
		"at_need":          "กรุณาระบุวันเวลาและข้อความ เช่น /at 2026-12-31 23:00 อวยพร",
		"at_unparsed":      "ไม่สามารถอ่านวันเวลาได้ เช่น 'tomorrow 9:30', '2026-12-31 23:00'",
		"at_empty":         "ไม่มีข้อความ โปรดเพิ่มข้อความหลังวันเวลา",
		"at_past":          "เวลานั้นผ่านมาแล้ว โปรดระบุเวลาในอนาคต",
		"at_ok":            "ตกลง จะเตือน {when_local} ({tz}) — ภายใน {delta}\nID: {rid}",
		"list_empty":       "ยังไม่มีการเตือนที่ใช้งาน",
		"list_header":      "การเตือนที่ใช้งานอยู่ (TZ {tz}):",
		"cancel_need":      "โปรดระบุ ID: /cancel <id>",
		"cancel_nan":       "ID ต้องเป็นตัวเลข: /cancel 123",
		"cancel_ok":        "ยกเลิกการเตือน ID {rid} แล้ว",
		"cancel_not_found": "ไม่พบการเตือนที่ใช้งานด้วย ID นี้",
		"snooze_need":      "โปรดระบุ: /snooze <id> <ระยะเวลา>",
		"snooze_ok":        "เลื่อนไปถึง {when_local} ({tz}) — ภายใน {delta} ID: {rid}",
		"tz_show":          "โซนเวลา: {tz}\nตั้งค่า: /tz Region/City หรือชื่อเมือง",
		"tz_bad":           "โซนเวลาไม่ถูกต้อง ตัวอย่าง: Europe/Moscow",
		"tz_ok":            "ตั้งค่าโซนเวลาเป็น {tz}",
		"lang_show":        "ภาษาปัจจุบัน: {lang}\nตั้งค่า: /lang ru | th | en",
		"lang_bad":         "รองรับเฉพาะ: ru, th, en",
		"lang_ok":          "ตั้งค่าภาษาเป็น {lang}",
		"error":            "เกิดข้อผิดพลาดภายใน ลองใหม่ภายหลัง",
		"late_prefix":      "(ข้อความล่าช้าจากการรีสตาร์ทบอท ขออภัย) ",
		"enter_city":       "พิมพ์ชื่อเมืองของคุณ (EN/RU/TH): เช่น Bangkok, กรุงเทพฯ, Moscow",
		"enter_local_time": "กรอกเวลาท้องถิ่นของคุณเป็น HH:MM (เช่น 09:30)",
		"choose_action":    "เลือกการทำงาน:",
		"choose_lang":      "เลือกภาษา:",
		"choose_tz":        "เลือกโซนเวลา:",
		"choose_sound":     "เลือกโหมดเสียงแจ้งเตือน:",
		"choose_melody":    "เลือกเสียงแจ้งเตือน:",
		"choose_cancel":    "เลือกการเตือนเพื่อยกเลิก:",
		"choose_watch":     "เลือกการเตือนเพื่อเฝ้าดู:",
		"choose_in_min":    "ภายในกี่นาที (ทุก 5 นาที):",
		"enter_text":       "พิมพ์ข้อความเตือนแล้วส่งมาได้เลย",
		"sound_on":         "🔔 มีเสียง",
		"sound_off":        "🔕 ไม่มีเสียง",
		"melody_default":   "ค่าเริ่มต้น",
		"melody_bell":      "ระฆัง",
		"melody_chime":     "กระดิ่งหลายจังหวะ",
		"melody_ding":      "ติ๊ง",
		"melody_saved":     "บันทึกเสียงแล้ว: {name}",
		"btn_list":         "รายการ",
		"btn_watch":        "ติดตาม",
		"btn_cancel":       "ยกเลิก",
		"btn_tz":           "โซนเวลา",
		"btn_lang":         "ภาษา",
		"btn_back":         "กลับ",
		"btn_tools":        "เครื่องมือ",
		"btn_sound":        "เสียงแจ้งเตือน",
		"btn_melody":       "เสียงเรียกเข้า",
		"btn_done":         "อ่านแล้ว",
		"btn_insert_in":    "แทรก /in",
		"btn_insert_at":    "แทรก /at",
		"snooze_15":        "+15น",
		"snooze_30":        "+30น",
		"snooze_60":        "+60น",
		"watch_line":       "⏳ ID {rid}: {when_local} ({tz}) — {delta}",
		"watch_fired":      "⏰ ถึงเวลา ID {rid} แล้ว",
	},
}
