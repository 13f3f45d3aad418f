// vlog/vlog.go
// Copyright(c) 2026 sectortiles contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package vlog provides the structured logger used throughout the
// conversion pipeline: a slog.Logger backed by a rotated JSON log file plus
// a warning-and-above text stream to stderr.
package vlog

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime/debug"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger wraps a *slog.Logger with nil-receiver-tolerant convenience
// methods, matching the calling convention used throughout the pipeline
// (components may be passed a *Logger that is nil in tests).
type Logger struct {
	*slog.Logger
	LogFile string
}

// New creates a Logger that writes JSON records to a rotated file under dir
// (or os.Stderr only, if dir is empty) and mirrors WARN-and-above records to
// stderr as text.
func New(dir string, level string) *Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}

	var fileWriter io.Writer
	logFile := ""
	if dir != "" {
		logFile = filepath.Join(dir, "sectortiles.log")
		fileWriter = &lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    64, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
		}
	}

	h := newMultiHandler(fileWriter, os.Stderr, lvl)
	l := &Logger{Logger: slog.New(h), LogFile: logFile}
	l.Info("logger started", "goVersion", goVersion())
	return l
}

func goVersion() string {
	if bi, ok := debug.ReadBuildInfo(); ok {
		return bi.GoVersion
	}
	return "unknown"
}

func (l *Logger) With(args ...interface{}) *Logger {
	if l == nil {
		return nil
	}
	return &Logger{Logger: l.Logger.With(args...), LogFile: l.LogFile}
}

func (l *Logger) Debug(msg string, args ...interface{}) {
	if l == nil {
		return
	}
	args = append([]interface{}{slog.Any("callstack", Callstack(nil))}, args...)
	l.Logger.Debug(msg, args...)
}

func (l *Logger) Debugf(format string, args ...interface{}) {
	if l == nil {
		return
	}
	l.Logger.Debug(fmt.Sprintf(format, args...), slog.Any("callstack", Callstack(nil)))
}

func (l *Logger) Info(msg string, args ...interface{}) {
	if l == nil {
		return
	}
	args = append([]interface{}{slog.Any("callstack", Callstack(nil))}, args...)
	l.Logger.Info(msg, args...)
}

func (l *Logger) Infof(format string, args ...interface{}) {
	if l == nil {
		return
	}
	l.Logger.Info(fmt.Sprintf(format, args...), slog.Any("callstack", Callstack(nil)))
}

func (l *Logger) Warn(msg string, args ...interface{}) {
	if l == nil {
		return
	}
	args = append([]interface{}{slog.Any("callstack", Callstack(nil))}, args...)
	l.Logger.Warn(msg, args...)
}

func (l *Logger) Warnf(format string, args ...interface{}) {
	if l == nil {
		return
	}
	l.Logger.Warn(fmt.Sprintf(format, args...), slog.Any("callstack", Callstack(nil)))
}

func (l *Logger) Error(msg string, args ...interface{}) {
	if l == nil {
		return
	}
	args = append([]interface{}{slog.Any("callstack", Callstack(nil))}, args...)
	l.Logger.Error(msg, args...)
}

func (l *Logger) Errorf(format string, args ...interface{}) {
	if l == nil {
		return
	}
	l.Logger.Error(fmt.Sprintf(format, args...), slog.Any("callstack", Callstack(nil)))
}

// multiHandler fans a record out to a JSON file handler and a text stderr
// handler filtered to WARN and above.
type multiHandler struct {
	file  slog.Handler
	text  slog.Handler
	level slog.Level
}

func newMultiHandler(fileWriter io.Writer, stderr io.Writer, level slog.Level) *multiHandler {
	h := &multiHandler{text: slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelWarn}), level: level}
	if fileWriter != nil {
		h.file = slog.NewJSONHandler(fileWriter, &slog.HandlerOptions{Level: level})
	}
	return h
}

func (h *multiHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level || level >= slog.LevelWarn
}

func (h *multiHandler) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	if h.file != nil && h.file.Enabled(ctx, r.Level) {
		if err := h.file.Handle(ctx, r); err != nil {
			errs = append(errs, err)
		}
	}
	if h.text.Enabled(ctx, r.Level) {
		if err := h.text.Handle(ctx, r); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return errs[0]
	}
	return nil
}

func (h *multiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	n := *h
	if h.file != nil {
		n.file = h.file.WithAttrs(attrs)
	}
	n.text = h.text.WithAttrs(attrs)
	return &n
}

func (h *multiHandler) WithGroup(name string) slog.Handler {
	n := *h
	if h.file != nil {
		n.file = h.file.WithGroup(name)
	}
	n.text = h.text.WithGroup(name)
	return &n
}
