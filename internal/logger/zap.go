package logger

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ZapLogger backs the Logger facade with a zap production logger.
type ZapLogger struct {
	z *zap.Logger
}

// NewZapLogger builds a production zap logger at the given level
// (debug, info, warn, error). An empty level defaults to info.
func NewZapLogger(level string) (*ZapLogger, error) {
	lvl := zapcore.InfoLevel
	if s := strings.ToLower(strings.TrimSpace(level)); s != "" {
		if err := lvl.UnmarshalText([]byte(s)); err != nil {
			return nil, fmt.Errorf("parse log level %q: %w", level, err)
		}
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	z, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return nil, fmt.Errorf("build zap logger: %w", err)
	}
	return &ZapLogger{z: z}, nil
}

// Sync flushes buffered log entries.
func (l *ZapLogger) Sync() error { return l.z.Sync() }

func (l *ZapLogger) DebugObj(msg, event string, fields map[string]any) {
	l.z.Debug(msg, zapFields(event, fields)...)
}

func (l *ZapLogger) InfoObj(msg, event string, fields map[string]any) {
	l.z.Info(msg, zapFields(event, fields)...)
}

func (l *ZapLogger) WarnObj(msg, event string, fields map[string]any) {
	l.z.Warn(msg, zapFields(event, fields)...)
}

func (l *ZapLogger) ErrorObj(msg, event string, fields map[string]any) {
	l.z.Error(msg, zapFields(event, fields)...)
}

func zapFields(event string, fields map[string]any) []zap.Field {
	out := make([]zap.Field, 0, len(fields)+1)
	out = append(out, zap.String("event", event))
	for k, v := range fields {
		out = append(out, zap.Any(k, v))
	}
	return out
}
