// Package logger is a small leveled logger with file rotation, an in-memory
// history for the TUI log overlay and live subscriptions for the WebSocket
// stream.
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

// LogLevel represents the severity level of a log message.
type LogLevel string

const (
	Debug LogLevel = "DEBUG"
	Info  LogLevel = "INFO"
	Warn  LogLevel = "WARN"
	Error LogLevel = "ERROR"
)

// historySize is the number of entries kept for Tail.
const historySize = 500

func levelPriority(level LogLevel) int {
	switch level {
	case Debug:
		return 0
	case Info:
		return 1
	case Warn:
		return 2
	case Error:
		return 3
	default:
		return 1
	}
}

// LogEntry is a single log message.
type LogEntry struct {
	Timestamp string   `json:"timestamp"`
	Level     LogLevel `json:"level"`
	Message   string   `json:"message"`
}

func (e LogEntry) String() string {
	return fmt.Sprintf("%s [%s] %s", e.Timestamp, e.Level, e.Message)
}

var (
	mu         sync.Mutex
	minLevel   = Info
	listeners  []chan LogEntry
	history    = make([]LogEntry, 0, historySize)
	fileLogger *lumberjack.Logger
	out        = log.New(os.Stderr, "", 0)
)

// SetLevel sets the minimum log level. Valid values: "debug", "info", "warn",
// "error". Anything else selects info.
func SetLevel(level string) {
	mu.Lock()
	defer mu.Unlock()
	switch level {
	case "debug":
		minLevel = Debug
	case "warn":
		minLevel = Warn
	case "error":
		minLevel = Error
	default:
		minLevel = Info
	}
}

// Level returns the current minimum level.
func Level() LogLevel {
	mu.Lock()
	defer mu.Unlock()
	return minLevel
}

// Init directs output to a rotated log file at path. With console set the
// output is also written to stderr; the TUI leaves it unset because it owns
// the terminal. An empty path with console unset discards output, keeping
// only the in-memory history.
func Init(path string, console bool) error {
	mu.Lock()
	defer mu.Unlock()

	if fileLogger != nil {
		_ = fileLogger.Close()
		fileLogger = nil
	}

	var writers []io.Writer
	if console {
		writers = append(writers, os.Stderr)
	}
	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
			return fmt.Errorf("create log dir: %w", err)
		}
		fileLogger = &lumberjack.Logger{
			Filename:   path,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
		}
		writers = append(writers, fileLogger)
	}

	switch len(writers) {
	case 0:
		out.SetOutput(io.Discard)
	case 1:
		out.SetOutput(writers[0])
	default:
		out.SetOutput(io.MultiWriter(writers...))
	}
	return nil
}

// Close flushes and closes the log file, if any.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if fileLogger == nil {
		return nil
	}
	err := fileLogger.Close()
	fileLogger = nil
	out.SetOutput(os.Stderr)
	return err
}

// Path returns the active log file, or "" when logging to the console only.
func Path() string {
	mu.Lock()
	defer mu.Unlock()
	if fileLogger == nil {
		return ""
	}
	return fileLogger.Filename
}

// Subscribe returns a channel that receives every subsequent entry.
func Subscribe() chan LogEntry {
	mu.Lock()
	defer mu.Unlock()
	ch := make(chan LogEntry, 100)
	listeners = append(listeners, ch)
	return ch
}

// Unsubscribe removes a listener channel and closes it.
func Unsubscribe(ch chan LogEntry) {
	mu.Lock()
	defer mu.Unlock()
	for i, l := range listeners {
		if l == ch {
			listeners = append(listeners[:i], listeners[i+1:]...)
			close(ch)
			break
		}
	}
}

// Tail returns up to n of the most recent entries, oldest first.
func Tail(n int) []LogEntry {
	mu.Lock()
	defer mu.Unlock()
	if n <= 0 {
		return nil
	}
	if n > len(history) {
		n = len(history)
	}
	dup := make([]LogEntry, n)
	copy(dup, history[len(history)-n:])
	return dup
}

// Log writes a formatted message at level to the output, the history and
// every subscriber.
func Log(level LogLevel, format string, v ...interface{}) {
	mu.Lock()
	defer mu.Unlock()

	if levelPriority(level) < levelPriority(minLevel) {
		return
	}

	entry := LogEntry{
		Timestamp: time.Now().Format(time.RFC3339),
		Level:     level,
		Message:   fmt.Sprintf(format, v...),
	}
	out.Print(entry.String())

	if len(history) == historySize {
		copy(history, history[1:])
		history = history[:historySize-1]
	}
	history = append(history, entry)

	for _, ch := range listeners {
		select {
		case ch <- entry:
		default:
		}
	}
}

// Infof logs a formatted message at INFO level.
func Infof(format string, v ...interface{}) {
	Log(Info, format, v...)
}

// Errorf logs a formatted message at ERROR level.
func Errorf(format string, v ...interface{}) {
	Log(Error, format, v...)
}

// Debugf logs a formatted message at DEBUG level.
func Debugf(format string, v ...interface{}) {
	Log(Debug, format, v...)
}

// Warnf logs a formatted message at WARN level.
func Warnf(format string, v ...interface{}) {
	Log(Warn, format, v...)
}
