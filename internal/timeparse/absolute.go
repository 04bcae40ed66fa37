// Package timeparse turns free-form calendar/clock phrases into UTC instants.
// Language-specific recognition is delegated to github.com/olebedev/when;
// this package owns zone normalization and the prefer-future policy.
package timeparse

import (
	"regexp"
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
	"github.com/olebedev/when/rules/ru"
)

// dateTokenRe detects date-bearing words inside a recognized span: day
// words, weekdays, month names (en/ru) and digit-dated forms. A span that
// names a date is taken literally; only bare clock phrases prefer the
// future.
var dateTokenRe = regexp.MustCompile(`(?i)(` +
	`today|tomorrow|yesterday|tonight` +
	`|monday|tuesday|wednesday|thursday|friday|saturday|sunday` +
	`|january|february|march|april|may|june|july|august|september|october|november|december` +
	`|сегодня|завтра|послезавтра|вчера|позавчера` +
	`|понедельник|вторник|сред[ау]|четверг|пятниц|суббот|воскресень` +
	`|январ|феврал|март|апрел|ма[йя]|июн|июл|август|сентябр|октябр|ноябр|декабр` +
	`|\d{1,2}[./]\d{1,2}|\d{4}-\d{1,2}` +
	`)`)

// Span is the half-open byte range of the input consumed by the recognizer.
type Span struct {
	Start int
	End   int
}

// Parser recognizes date/time phrases in English and Russian.
type Parser struct {
	w *when.Parser
}

func New() *Parser {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(ru.All...)
	w.Add(common.All...)
	return &Parser{w: w}
}

// ParseAbsolute interprets text against nowUTC seen through the caller's
// zone. The result is returned in UTC together with the consumed span.
// Clock-only phrases that resolve to a moment earlier the same day roll
// forward by one day (prefer-future). Phrases that name a date (yesterday,
// a weekday, an explicit day) are taken literally even when past; the
// caller decides whether a past instant is acceptable.
func (p *Parser) ParseAbsolute(text string, loc *time.Location, nowUTC time.Time) (time.Time, Span, bool) {
	base := nowUTC.In(loc)
	r, err := p.w.Parse(text, base)
	if err != nil || r == nil {
		return time.Time{}, Span{}, false
	}

	t := r.Time.In(loc)
	if !t.After(base) && base.Sub(t) < 24*time.Hour && !dateTokenRe.MatchString(r.Text) {
		t = t.Add(24 * time.Hour)
	}

	return t.UTC(), Span{Start: r.Index, End: r.Index + len(r.Text)}, true
}

// StripSpan removes the consumed span from text and trims leftover
// punctuation, recovering the reminder body.
func StripSpan(text string, s Span) string {
	if s.Start < 0 || s.End > len(text) || s.Start > s.End {
		return strings.TrimSpace(text)
	}
	rest := text[:s.Start] + text[s.End:]
	return strings.Trim(rest, " \t\n,.;:-")
}
