// Package audit writes one JSON line per user-visible action to a dedicated
// file, separate from the operational log.
package audit

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger records audit events. A nil-safe no-op logger is returned when no
// path is configured or the sink cannot be opened.
type Logger struct {
	l *zap.Logger
}

// New opens the audit sink at path. An empty path disables auditing.
// Sink failures disable auditing rather than blocking startup.
func New(path string) *Logger {
	if path == "" {
		return &Logger{l: zap.NewNop()}
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return &Logger{l: zap.NewNop()}
	}

	enc := zapcore.NewJSONEncoder(zapcore.EncoderConfig{
		TimeKey:        "ts",
		MessageKey:     "action",
		LevelKey:       zapcore.OmitKey,
		NameKey:        zapcore.OmitKey,
		CallerKey:      zapcore.OmitKey,
		StacktraceKey:  zapcore.OmitKey,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.SecondsDurationEncoder,
	})
	core := zapcore.NewCore(enc, zapcore.AddSync(f), zapcore.InfoLevel)
	return &Logger{l: zap.New(core)}
}

// Event records one action scoped to a (chat, user) pair.
func (a *Logger) Event(chatID, userID int64, action string, fields ...zap.Field) {
	if a == nil || a.l == nil {
		return
	}
	base := []zap.Field{
		zap.Int64("chat_id", chatID),
		zap.Int64("user_id", userID),
	}
	a.l.Info(action, append(base, fields...)...)
}

// Sync flushes buffered events.
func (a *Logger) Sync() {
	if a != nil && a.l != nil {
		_ = a.l.Sync()
	}
}
