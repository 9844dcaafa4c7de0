// Package logger wraps gookit/slog behind a minimal interface so the
// rest of the application does not depend on a concrete logger. The
// TUI owns the terminal, so file output is the default sink.
package logger

import (
	"github.com/gookit/slog"
	"github.com/gookit/slog/handler"
)

// Logger is the minimal logging surface used across the application.
type Logger interface {
	Debug(args ...any)
	Info(args ...any)
	Warn(args ...any)
	Error(args ...any)
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// Log is the global logger instance. It defaults to a console logger
// at info level until InitFile is called.
var Log Logger = NewLogger("info")

// NewLogger creates a console logger at the given level.
func NewLogger(level string) Logger {
	h := handler.NewConsoleHandler(levelsUpTo(level))
	h.SetFormatter(jsonFormatter())
	return slog.NewWithHandlers(h)
}

// InitFile points the global logger at a file. Failing to open the
// file leaves the console logger in place and returns the error.
func InitFile(path, level string) error {
	h, err := handler.NewFileHandler(path, handler.WithLogLevels(levelsUpTo(level)))
	if err != nil {
		return err
	}
	h.SetFormatter(jsonFormatter())
	Log = slog.NewWithHandlers(h)
	return nil
}

func levelsUpTo(level string) slog.Levels {
	logLevel := slog.LevelByName(level)
	var levels slog.Levels
	for _, lv := range slog.AllLevels {
		if lv <= logLevel {
			levels = append(levels, lv)
		}
	}
	return levels
}

func jsonFormatter() *slog.JSONFormatter {
	return slog.NewJSONFormatter(func(f *slog.JSONFormatter) {
		f.Fields = []string{
			slog.FieldKeyDatetime,
			slog.FieldKeyLevel,
			slog.FieldKeyMessage,
		}
		f.TimeFormat = "2006-01-02T15:04:05"
	})
}
