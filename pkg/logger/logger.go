package logger

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"
)

// ANSI color codes for console output
const (
	ColorReset        = "\033[0m"
	ColorCyan         = "\033[36m"
	ColorGreen        = "\033[32m"
	ColorBrightRed    = "\033[91m"
	ColorBrightYellow = "\033[93m"
	ColorBrightGray   = "\033[90m"
)

// Column widths for aligned console output
const (
	ServiceNameWidth = 20
	LogLevelWidth    = 7 // icons add +2
)

// Level is the minimum severity a logger writes
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelFatal
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	case LevelFatal:
		return "FATAL"
	}
	return "UNKNOWN"
}

// ParseLevel maps a configured level name to a Level. Empty means INFO.
func ParseLevel(s string) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return LevelDebug, nil
	case "", "INFO":
		return LevelInfo, nil
	case "WARN", "WARNING":
		return LevelWarn, nil
	case "ERROR":
		return LevelError, nil
	case "FATAL":
		return LevelFatal, nil
	}
	return LevelInfo, fmt.Errorf("unknown log level %q", s)
}

// LogEntry represents a single log entry
type LogEntry struct {
	Time    time.Time
	Level   string
	Message string
	Fields  map[string]string
}

// Logger provides leveled console logging with streaming support
type Logger struct {
	serviceName string
	version     string

	mu             sync.RWMutex
	out            io.Writer
	level          Level
	subscribers    []chan LogEntry
	colorEnabled   bool
	disableConsole bool
}

// New creates a new logger instance writing to stdout at INFO
func New(serviceName, version string) *Logger {
	return &Logger{
		serviceName:  serviceName,
		version:      version,
		out:          os.Stdout,
		level:        LevelInfo,
		subscribers:  make([]chan LogEntry, 0),
		colorEnabled: isTerminal(),
	}
}

// isTerminal checks if we're outputting to a terminal (for color support)
func isTerminal() bool {
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	fileInfo, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}

// SetLevel changes the minimum level written
func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	l.level = level
	l.mu.Unlock()
}

// Level returns the minimum level written
func (l *Logger) Level() Level {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.level
}

// SetOutput redirects console output. Color is turned off for non-terminals.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	l.out = w
	l.colorEnabled = w == os.Stdout && isTerminal()
	l.mu.Unlock()
}

// Version returns the version the logger was created with
func (l *Logger) Version() string {
	return l.version
}

func (l *Logger) colorFor(level Level) string {
	if !l.colorEnabled {
		return ""
	}
	switch level {
	case LevelDebug:
		return ColorBrightGray
	case LevelInfo:
		return ColorGreen
	case LevelWarn:
		return ColorBrightYellow
	case LevelError, LevelFatal:
		return ColorBrightRed
	}
	return ColorReset
}

// formatServiceName truncates and pads service name for consistent column width
func formatServiceName(serviceName string) string {
	if len(serviceName) > ServiceNameWidth {
		return serviceName[:ServiceNameWidth-1] + "…"
	}
	return fmt.Sprintf("%-*s", ServiceNameWidth, serviceName)
}

// formatLogLevel pads log level and adds a visual indicator
func formatLogLevel(level Level) string {
	s := level.String()
	switch level {
	case LevelError, LevelFatal:
		s = "✗ " + s
	case LevelWarn:
		s = "⚠ " + s
	case LevelInfo:
		s = "ℹ " + s
	case LevelDebug:
		s = "◦ " + s
	}
	return fmt.Sprintf("%-*s", LogLevelWidth+2, s)
}

func formatFields(fields map[string]string) string {
	if len(fields) == 0 {
		return ""
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		b.WriteString(" ")
		b.WriteString(k)
		b.WriteString("=")
		b.WriteString(fields[k])
	}
	return b.String()
}

// Subscribe returns a channel to receive log entries
func (l *Logger) Subscribe() <-chan LogEntry {
	ch := make(chan LogEntry, 100)

	l.mu.Lock()
	l.subscribers = append(l.subscribers, ch)
	l.mu.Unlock()

	return ch
}

// DisableConsoleOutput stops console output; subscribers still receive entries
func (l *Logger) DisableConsoleOutput() {
	l.mu.Lock()
	l.disableConsole = true
	l.mu.Unlock()
}

// EnableConsoleOutput enables console output (default behavior)
func (l *Logger) EnableConsoleOutput() {
	l.mu.Lock()
	l.disableConsole = false
	l.mu.Unlock()
}

func (l *Logger) log(level Level, message string, fields map[string]string) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if level < l.level {
		return
	}

	now := time.Now()
	entry := LogEntry{
		Time:    now,
		Level:   level.String(),
		Message: message,
		Fields:  fields,
	}

	if !l.disableConsole && l.out != nil {
		timestamp := now.Format("2006-01-02 15:04:05.000")

		color := l.colorFor(level)
		cyan, reset := "", ""
		if l.colorEnabled {
			cyan, reset = ColorCyan, ColorReset
		}

		fmt.Fprintf(l.out, "%s[%s] [%s] [%s%s%s] %s%s%s\n",
			cyan, timestamp, formatServiceName(l.serviceName), color, formatLogLevel(level), reset,
			message, formatFields(fields), reset)
	}

	for _, ch := range l.subscribers {
		select {
		case ch <- entry:
		default:
			// Skip if channel is full
		}
	}
}

// Debug logs a debug message with optional formatting
func (l *Logger) Debug(message string, args ...interface{}) {
	l.log(LevelDebug, sprintf(message, args), nil)
}

// Debugf logs a formatted debug message
func (l *Logger) Debugf(format string, args ...interface{}) {
	l.log(LevelDebug, fmt.Sprintf(format, args...), nil)
}

// Info logs an info message with optional formatting
func (l *Logger) Info(message string, args ...interface{}) {
	l.log(LevelInfo, sprintf(message, args), nil)
}

// Infof logs a formatted info message
func (l *Logger) Infof(format string, args ...interface{}) {
	l.log(LevelInfo, fmt.Sprintf(format, args...), nil)
}

// Warn logs a warning message with optional formatting
func (l *Logger) Warn(message string, args ...interface{}) {
	l.log(LevelWarn, sprintf(message, args), nil)
}

// Warnf logs a formatted warning message
func (l *Logger) Warnf(format string, args ...interface{}) {
	l.log(LevelWarn, fmt.Sprintf(format, args...), nil)
}

// Error logs an error message with optional formatting
func (l *Logger) Error(message string, args ...interface{}) {
	l.log(LevelError, sprintf(message, args), nil)
}

// Errorf logs a formatted error message
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.log(LevelError, fmt.Sprintf(format, args...), nil)
}

// Fatal logs a fatal message and exits
func (l *Logger) Fatal(message string) {
	l.log(LevelFatal, message, nil)
	os.Exit(1)
}

// Fatalf logs a formatted fatal message and exits
func (l *Logger) Fatalf(format string, args ...interface{}) {
	l.log(LevelFatal, fmt.Sprintf(format, args...), nil)
	os.Exit(1)
}

func sprintf(message string, args []interface{}) string {
	if len(args) == 0 {
		return message
	}
	return fmt.Sprintf(message, args...)
}

// WithFields returns a context that attaches fields to every message
func (l *Logger) WithFields(fields map[string]string) *LogContext {
	return &LogContext{
		logger: l,
		fields: fields,
	}
}

// LogContext provides field-based logging
type LogContext struct {
	logger *Logger
	fields map[string]string
}

// With returns a copy of the context with one more field
func (c *LogContext) With(key, value string) *LogContext {
	fields := make(map[string]string, len(c.fields)+1)
	for k, v := range c.fields {
		fields[k] = v
	}
	fields[key] = value
	return &LogContext{logger: c.logger, fields: fields}
}

func (c *LogContext) Debug(message string) {
	c.logger.log(LevelDebug, message, c.fields)
}

func (c *LogContext) Info(message string) {
	c.logger.log(LevelInfo, message, c.fields)
}

func (c *LogContext) Warn(message string) {
	c.logger.log(LevelWarn, message, c.fields)
}

func (c *LogContext) Error(message string) {
	c.logger.log(LevelError, message, c.fields)
}
