package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestT_Placeholders(t *testing.T) {
	l := New("en")
	got := l.T("en", "tz_ok", "tz", "Europe/Moscow")
	assert.Equal(t, "Timezone set to: Europe/Moscow", got)
}

func TestT_FallbackToDefaultLang(t *testing.T) {
	l := New("en")
	assert.Equal(t, l.T("en", "error"), l.T("de", "error"))
}

func TestT_UnknownKeyReturnsKey(t *testing.T) {
	l := New("en")
	assert.Equal(t, "no_such_key", l.T("en", "no_such_key"))
}

func TestSupported(t *testing.T) {
	l := New("ru")
	assert.True(t, l.Supported("ru"))
	assert.True(t, l.Supported("th"))
	assert.False(t, l.Supported("fr"))
	assert.Equal(t, "ru", l.DefaultLang())
}
