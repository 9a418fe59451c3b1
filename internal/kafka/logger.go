package kafka

import (
	"context"
	"log/slog"

	"github.com/twmb/franz-go/pkg/kgo"
)

// Logger provides the kgo.Logger interface on top of an slog.Logger.
type Logger struct {
	sl *slog.Logger
}

func newKLogger(sl *slog.Logger) *Logger {
	return &Logger{sl.With("component", "kafka")}
}

// Level reports the most verbose kgo level the slog handler accepts.
func (l *Logger) Level() kgo.LogLevel {
	ctx := context.Background()
	for _, level := range []kgo.LogLevel{kgo.LogLevelDebug, kgo.LogLevelInfo, kgo.LogLevelWarn, kgo.LogLevelError} {
		if l.sl.Enabled(ctx, kgoToSlogLevel(level)) {
			return level
		}
	}
	return kgo.LogLevelNone
}

func (l *Logger) Log(level kgo.LogLevel, msg string, keyvals ...any) {
	l.sl.Log(context.Background(), kgoToSlogLevel(level), msg, keyvals...)
}

func kgoToSlogLevel(level kgo.LogLevel) slog.Level {
	switch level {
	case kgo.LogLevelError:
		return slog.LevelError
	case kgo.LogLevelWarn:
		return slog.LevelWarn
	case kgo.LogLevelDebug:
		return slog.LevelDebug
	default:
		return slog.LevelInfo
	}
}
