// Package jsonlog provides a small leveled logger that writes one JSON
// object per line.
package jsonlog

import (
	"encoding/json"
	"io"
	"os"
	"runtime/debug"
	"sync"
	"time"
)

type Level int8

const (
	LevelInfo Level = iota
	LevelError
	LevelFatal
)

func (l Level) String() string {
	switch l {
	case LevelInfo:
		return "INFO"
	case LevelError:
		return "ERROR"
	case LevelFatal:
		return "FATAL"
	default:
		return ""
	}
}

type Logger struct {
	out      io.Writer
	minLevel Level
	mu       sync.Mutex
}

func New(out io.Writer, minLevel Level) *Logger {
	return &Logger{out: out, minLevel: minLevel}
}

func (l *Logger) PrintInfo(message string) {
	l.print(LevelInfo, message, "")
}

func (l *Logger) PrintError(err error) {
	l.print(LevelError, err.Error(), string(debug.Stack()))
}

func (l *Logger) PrintFatal(err error) {
	l.print(LevelFatal, err.Error(), string(debug.Stack()))
	os.Exit(1)
}

func (l *Logger) print(level Level, message, trace string) {
	if level < l.minLevel {
		return
	}

	entry := struct {
		Level   string `json:"level"`
		Time    string `json:"time"`
		Message string `json:"message"`
		Trace   string `json:"trace,omitempty"`
	}{
		Level:   level.String(),
		Time:    time.Now().UTC().Format(time.RFC3339),
		Message: message,
	}
	if level >= LevelError {
		entry.Trace = trace
	}

	line, err := json.Marshal(entry)
	if err != nil {
		line = []byte(LevelError.String() + ": unable to marshal log message: " + err.Error())
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.out.Write(append(line, '\n'))
}

// Write implements io.Writer so the logger can back http.Server.ErrorLog.
func (l *Logger) Write(message []byte) (n int, err error) {
	l.print(LevelError, string(message), "")
	return len(message), nil
}
