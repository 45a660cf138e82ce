// Package logger writes categorised log lines: coloured to the terminal and
// as JSON to a daily file under logs/.
package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
)

type LogLevel int

const (
	DEBUG LogLevel = iota
	INFO
	WARN
	ERROR
)

type LogEntry struct {
	Timestamp string `json:"timestamp"`
	Level     string `json:"level"`
	Category  string `json:"category"`
	Message   string `json:"message"`
	File      string `json:"file,omitempty"`
	Line      int    `json:"line,omitempty"`
}

// Logger is safe for concurrent use.
type Logger struct {
	mu           sync.Mutex
	terminal     io.Writer
	file         io.Writer
	closer       io.Closer
	colorEnabled bool
}

// New opens logs/<name>-YYYY-MM-DD.log under dir (appending) and echoes
// every entry to stdout.
func New(dir, name string) (*Logger, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	fileName := filepath.Join(dir, fmt.Sprintf("%s-%s.log", name, time.Now().Format("2006-01-02")))
	f, err := os.OpenFile(fileName, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o666)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	l := &Logger{terminal: color.Output, file: f, closer: f, colorEnabled: !color.NoColor}
	l.Info("LOGGER", fmt.Sprintf("Log file: %s", fileName))
	return l, nil
}

// NewWriter returns a logger that writes only JSON lines to w.
func NewWriter(w io.Writer) *Logger {
	return &Logger{file: w}
}

// Nop discards everything.
func Nop() *Logger {
	return &Logger{}
}

func (l *Logger) log(level LogLevel, category, message string) {
	_, file, line, ok := runtime.Caller(2)
	if ok {
		file = filepath.Base(file)
	} else {
		file, line = "", 0
	}
	entry := LogEntry{
		Timestamp: time.Now().UTC().Format("2006-01-02T15:04:05.000Z"),
		Level:     levelToString(level),
		Category:  strings.ToUpper(category),
		Message:   message,
		File:      file,
		Line:      line,
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.terminal != nil {
		fmt.Fprint(l.terminal, l.formatTerminalOutput(entry))
	}
	if l.file != nil {
		bs, _ := json.Marshal(entry)
		_, _ = l.file.Write(append(bs, '\n'))
	}
}

func (l *Logger) formatTerminalOutput(entry LogEntry) string {
	if !l.colorEnabled {
		return fmt.Sprintf("%s %-5s [%-10s] %s\n", entry.Timestamp[11:19], entry.Level, entry.Category, entry.Message)
	}
	fg := color.FgWhite
	switch entry.Level {
	case "DEBUG":
		fg = color.FgCyan
	case "INFO":
		fg = color.FgGreen
	case "WARN":
		fg = color.FgYellow
	case "ERROR":
		fg = color.FgRed
	}

	timeStr := color.New(color.FgBlue).Sprint(entry.Timestamp[11:19])
	levelStr := color.New(fg).Sprintf("%-5s", entry.Level)
	categoryStr := color.New(fg, color.Bold).Sprintf("[%-10s]", entry.Category)
	if entry.File != "" && entry.Line > 0 {
		fileInfo := color.New(color.FgMagenta).Sprintf(" (%s:%d)", entry.File, entry.Line)
		return fmt.Sprintf("%s %s %s %s%s\n", timeStr, levelStr, categoryStr, entry.Message, fileInfo)
	}
	return fmt.Sprintf("%s %s %s %s\n", timeStr, levelStr, categoryStr, entry.Message)
}

func levelToString(level LogLevel) string {
	switch level {
	case DEBUG:
		return "DEBUG"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	default:
		return "INFO"
	}
}

func (l *Logger) Debug(category, message string) { l.log(DEBUG, category, message) }
func (l *Logger) Info(category, message string)  { l.log(INFO, category, message) }
func (l *Logger) Warn(category, message string)  { l.log(WARN, category, message) }
func (l *Logger) Error(category, message string) { l.log(ERROR, category, message) }

// Specialised helpers, one per component.

func (l *Logger) LogAPI(method, path string, status int, duration time.Duration) {
	l.log(INFO, "API", fmt.Sprintf("%s %s - %d (%s)", method, path, status, duration))
}

func (l *Logger) LogBooking(action, slot, message string) {
	l.log(INFO, "BOOKING", fmt.Sprintf("[%s] %s - %s", action, slot, message))
}

func (l *Logger) LogSession(action, slot, message string) {
	l.log(INFO, "SESSION", fmt.Sprintf("[%s] %s - %s", action, slot, message))
}

func (l *Logger) LogWeather(kind, query, message string) {
	l.log(INFO, "WEATHER", fmt.Sprintf("[%s] %s - %s", kind, query, message))
}

func (l *Logger) LogQueue(action, queue, message string) {
	l.log(INFO, "QUEUE", fmt.Sprintf("[%s] %s - %s", action, queue, message))
}

// Close closes the log file, if there is one.
func (l *Logger) Close() error {
	if l.closer == nil {
		return nil
	}
	l.Info("LOGGER", "Closing log file")
	return l.closer.Close()
}
