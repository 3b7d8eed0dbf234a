package utils

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"
)

// Logger provides structured, leveled logging throughout the application.
// Console output is colored; the optional log file receives the same
// messages in plain text.
type Logger struct {
	info  *log.Logger
	warn  *log.Logger
	err   *log.Logger
	debug *log.Logger

	file    *log.Logger
	logFile *os.File
}

// NewLogger creates a new Logger writing to stdout/stderr only.
func NewLogger() *Logger {
	flags := 0
	return &Logger{
		info:  log.New(os.Stdout, "", flags),
		warn:  log.New(os.Stdout, "", flags),
		err:   log.New(os.Stderr, "", flags),
		debug: log.New(os.Stdout, "", flags),
	}
}

// NewFileLogger creates a Logger that mirrors every message to an
// append-only log file in addition to the console.
func NewFileLogger(path string) (*Logger, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("logger: create log dir: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("logger: open log file %q: %w", path, err)
	}

	l := NewLogger()
	l.file = log.New(f, "", 0)
	l.logFile = f
	return l, nil
}

// Close closes the underlying log file, if any.
func (l *Logger) Close() error {
	if l.logFile == nil {
		return nil
	}
	return l.logFile.Close()
}

func (l *Logger) timestamp() string {
	return time.Now().Format("2006-01-02 15:04:05")
}

func (l *Logger) Info(format string, args ...any) {
	ts := l.timestamp()
	l.info.Printf(fmt.Sprintf("[%s] \033[32mINFO\033[0m  %s\n", ts, format), args...)
	if l.file != nil {
		l.file.Printf(fmt.Sprintf("[%s] INFO  %s\n", ts, format), args...)
	}
}

func (l *Logger) Warn(format string, args ...any) {
	ts := l.timestamp()
	l.warn.Printf(fmt.Sprintf("[%s] \033[33mWARN\033[0m  %s\n", ts, format), args...)
	if l.file != nil {
		l.file.Printf(fmt.Sprintf("[%s] WARN  %s\n", ts, format), args...)
	}
}

func (l *Logger) Error(format string, args ...any) {
	ts := l.timestamp()
	l.err.Printf(fmt.Sprintf("[%s] \033[31mERROR\033[0m %s\n", ts, format), args...)
	if l.file != nil {
		l.file.Printf(fmt.Sprintf("[%s] ERROR %s\n", ts, format), args...)
	}
}

func (l *Logger) Debug(format string, args ...any) {
	ts := l.timestamp()
	l.debug.Printf(fmt.Sprintf("[%s] \033[36mDEBUG\033[0m %s\n", ts, format), args...)
	if l.file != nil {
		l.file.Printf(fmt.Sprintf("[%s] DEBUG %s\n", ts, format), args...)
	}
}
