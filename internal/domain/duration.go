package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// leadingMarkerRe strips words like "in 10m" / "через 10м" so the duration
// tokens start the string.
var leadingMarkerRe = regexp.MustCompile(`(?i)^(in|через|อีก|ใน)\s+`)

// durTokenRe matches one <integer><unit> token at the start of the string.
// The unit may carry a trailing dot ("мин."). The unit class includes
// combining marks: Thai units like นาที and ชั่วโมง carry nonspacing vowel
// and tone marks that letters alone would cut off.
var durTokenRe = regexp.MustCompile(`^(\d+)\s*([\p{L}\p{M}]+\.?)`)

// connectors may join duration tokens: "2h and 15m", "2ч и 15м".
var connectors = []string{"и", "and", "และ"}

const (
	day   = 24 * time.Hour
	week  = 7 * day
	month = 30 * day  // documented approximation
	year  = 365 * day // documented approximation
)

// unitTable maps unit tokens (en/ru/th) to the duration of one unit.
var unitTable = map[string]time.Duration{
	// seconds
	"s": time.Second, "sec": time.Second, "secs": time.Second,
	"second": time.Second, "seconds": time.Second,
	"с": time.Second, "сек": time.Second, "секунда": time.Second,
	"секунды": time.Second, "секунд": time.Second,
	"วินาที": time.Second, "วิ": time.Second, "ว": time.Second,
	// minutes
	"m": time.Minute, "min": time.Minute, "mins": time.Minute,
	"minute": time.Minute, "minutes": time.Minute,
	"м": time.Minute, "мин": time.Minute, "минута": time.Minute,
	"минуты": time.Minute, "минут": time.Minute,
	"นาที": time.Minute, "น": time.Minute,
	// hours
	"h": time.Hour, "hr": time.Hour, "hour": time.Hour, "hours": time.Hour,
	"ч": time.Hour, "час": time.Hour, "часа": time.Hour, "часов": time.Hour,
	"ชั่วโมง": time.Hour, "ชม": time.Hour, "ช": time.Hour,
	// days
	"d": day, "day": day, "days": day,
	"д": day, "день": day, "дня": day, "дней": day,
	"วัน": day,
	// weeks
	"w": week, "wk": week, "week": week, "weeks": week,
	"н": week, "нед": week, "неделя": week, "недели": week, "недель": week,
	"สัปดาห์": week,
	// months (approximate)
	"mo": month, "mon": month, "month": month, "months": month,
	"мес": month, "месяц": month, "месяца": month, "месяцев": month,
	"เดือน": month,
	// years (approximate)
	"y": year, "yr": year, "year": year, "years": year,
	"г": year, "год": year, "года": year, "лет": year,
	"ปี": year,
}

// ParseDurationPrefix parses one or more <integer><unit> tokens at the start
// of text, optionally joined by connectors, and returns the summed duration
// plus the remaining text (the reminder body). ok is false when no duration
// token is found.
func ParseDurationPrefix(text string) (time.Duration, string, bool) {
	s := strings.TrimSpace(text)
	if s == "" {
		return 0, "", false
	}
	s = leadingMarkerRe.ReplaceAllString(s, "")

	var total time.Duration
	rest := s
	for {
		m := durTokenRe.FindStringSubmatch(rest)
		if m == nil {
			break
		}
		unit := strings.ToLower(strings.TrimSuffix(m[2], "."))
		per, known := unitTable[unit]
		if !known {
			break
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			break
		}
		total += time.Duration(n) * per
		rest = skipConnector(strings.TrimSpace(rest[len(m[0]):]))
	}

	if total <= 0 {
		return 0, strings.TrimSpace(text), false
	}
	return total, rest, true
}

// skipConnector drops a single leading connector word or comma.
func skipConnector(s string) string {
	if strings.HasPrefix(s, ",") {
		return strings.TrimSpace(s[1:])
	}
	i := strings.IndexFunc(s, unicode.IsSpace)
	if i < 0 {
		return s
	}
	head := s[:i]
	for _, c := range connectors {
		if strings.EqualFold(head, c) {
			return strings.TrimSpace(s[i:])
		}
	}
	return s
}

// FormatDelta renders a duration briefly in the user's language, e.g.
// "1d 2h 5m" / "1д 2ч 5м". Seconds appear only for sub-minute deltas.
func FormatDelta(lang string, d time.Duration) string {
	if d < 0 {
		d = -d
	}
	total := int(d.Seconds())
	days := total / 86400
	hours := total % 86400 / 3600
	minutes := total % 3600 / 60
	seconds := total % 60

	var du, hu, mu, su, zero string
	switch lang {
	case "ru":
		du, hu, mu, su, zero = "д", "ч", "м", "с", "0с"
	case "th":
		du, hu, mu, su, zero = " วัน", " ชม", " น", " วิ", "0 วิ"
	default:
		du, hu, mu, su, zero = "d", "h", "m", "s", "0s"
	}

	var parts []string
	if days > 0 {
		parts = append(parts, fmt.Sprintf("%d%s", days, du))
	}
	if hours > 0 {
		parts = append(parts, fmt.Sprintf("%d%s", hours, hu))
	}
	if minutes > 0 {
		parts = append(parts, fmt.Sprintf("%d%s", minutes, mu))
	}
	if len(parts) == 0 && seconds > 0 {
		parts = append(parts, fmt.Sprintf("%d%s", seconds, su))
	}
	if len(parts) == 0 {
		return zero
	}
	return strings.Join(parts, " ")
}
