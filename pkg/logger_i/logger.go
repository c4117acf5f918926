package logger_i

import (
	"context"
	"io"
	"log/slog"
	"os"
)

type Logger struct {
	inner *slog.Logger
}

type Options struct {
	IsProd bool
	Level  slog.Level
	//defaults to stdout, the mcp server needs stderr since stdout carries the protocol
	Writer io.Writer
}

func Init(opts Options) {
	handlerOptions := &slog.HandlerOptions{
		Level: opts.Level,
	}
	w := opts.Writer
	if w == nil {
		w = os.Stdout
	}

	var handler slog.Handler
	if opts.IsProd {
		handler = slog.NewJSONHandler(w, handlerOptions)
	} else {
		handler = slog.NewTextHandler(w, handlerOptions)
	}
	slog.SetDefault(slog.New(handler))
}

func NewLogger(section string) *Logger {
	return &Logger{
		inner: slog.Default().With("component", section),
	}
}

func (l *Logger) Info(msg string, args ...any) {
	l.inner.Info(msg, args...)
}

func (l *Logger) Error(msg string, args ...any) {
	l.log(slog.LevelError, msg, args...)
}

func (l *Logger) Warn(msg string, args ...any) {
	l.log(slog.LevelWarn, msg, args...)
}

func (l *Logger) Debug(msg string, args ...any) {
	l.log(slog.LevelDebug, msg, args...)
}

func (l *Logger) log(level slog.Level, msg string, args ...any) {
	if !l.inner.Enabled(context.Background(), level) {
		return
	}
	l.inner.Log(context.Background(), level, msg, args...)
}

func (l *Logger) With(args ...any) *Logger {
	return &Logger{
		inner: l.inner.With(args...),
	}
}
