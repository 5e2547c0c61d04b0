// Package logger provides a logger abstraction for writing log messages in
// configurable formats to different outputs, such as a console or plain text
// file.
package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"sync"
	"time"

	"golang.org/x/term"
)

const (
	nocolor   = "0"
	red       = "31"
	green     = "38;5;48"
	yellow    = "33"
	gray      = "38;5;251"
	lightgray = "38;5;243"
	cyan      = "1;36"
)

const DateFormat = "2006-01-02 15:04:05"

var windowsColors bool

// Logger represents a logger that outputs to a buffer.
type Logger interface {
	Debug(format string, v ...any)
	Error(format string, v ...any)
	Fatal(format string, v ...any)
	Notice(format string, v ...any)
	Warn(format string, v ...any)
	Info(format string, v ...any)

	WithFields(fields ...Field) Logger
	SetLevel(level Level)
	Level() Level
}

// Printer takes a log line and does something with it, e.g. prints it.
type Printer interface {
	Print(level Level, msg string, fields Fields)
}

// ConsoleLogger is a Logger that sends log lines to a Printer.
type ConsoleLogger struct {
	level   Level
	exitFn  func(int)
	fields  Fields
	printer Printer
}

// NewConsoleLogger returns a new ConsoleLogger with the given printer and
// exit function. The default level is NOTICE.
func NewConsoleLogger(printer Printer, exitFn func(int)) Logger {
	return &ConsoleLogger{
		level:   NOTICE,
		printer: printer,
		exitFn:  exitFn,
	}
}

// WithFields returns a copy of the logger with the provided fields
func (l *ConsoleLogger) WithFields(fields ...Field) Logger {
	clone := *l
	clone.fields = append(append(Fields{}, l.fields...), fields...)
	return &clone
}

// SetLevel sets the level for the logger
func (l *ConsoleLogger) SetLevel(level Level) {
	l.level = level
}

// Level returns the current level
func (l *ConsoleLogger) Level() Level {
	return l.level
}

func (l *ConsoleLogger) Debug(format string, v ...any) {
	if l.level == DEBUG {
		l.printer.Print(DEBUG, fmt.Sprintf(format, v...), l.fields)
	}
}

func (l *ConsoleLogger) Error(format string, v ...any) {
	if l.level <= ERROR {
		l.printer.Print(ERROR, fmt.Sprintf(format, v...), l.fields)
	}
}

func (l *ConsoleLogger) Fatal(format string, v ...any) {
	l.printer.Print(FATAL, fmt.Sprintf(format, v...), l.fields)
	l.exitFn(1)
}

func (l *ConsoleLogger) Notice(format string, v ...any) {
	if l.level <= NOTICE {
		l.printer.Print(NOTICE, fmt.Sprintf(format, v...), l.fields)
	}
}

func (l *ConsoleLogger) Info(format string, v ...any) {
	if l.level <= INFO {
		l.printer.Print(INFO, fmt.Sprintf(format, v...), l.fields)
	}
}

func (l *ConsoleLogger) Warn(format string, v ...any) {
	if l.level <= WARN {
		l.printer.Print(WARN, fmt.Sprintf(format, v...), l.fields)
	}
}

// TextPrinter prints human readable lines, optionally coloured.
type TextPrinter struct {
	Colors bool
	Writer io.Writer

	mu sync.Mutex
}

func NewTextPrinter(w io.Writer) *TextPrinter {
	return &TextPrinter{
		Writer: w,
		Colors: ColorsSupported(),
	}
}

func (p *TextPrinter) Print(level Level, msg string, fields Fields) {
	now := time.Now().Format(DateFormat)

	var line strings.Builder

	if p.Colors {
		levelColor := green
		messageColor := nocolor
		fieldColor := lightgray

		switch level {
		case DEBUG:
			levelColor = gray
			messageColor = gray
		case NOTICE:
			levelColor = cyan
		case WARN:
			levelColor = yellow
		case ERROR, FATAL:
			levelColor = red
			messageColor = red
		}

		fmt.Fprintf(&line, "\x1b[%sm%s %-6s\x1b[0m \x1b[%sm%s\x1b[0m", levelColor, now, level, messageColor, msg)
		for _, field := range fields {
			fmt.Fprintf(&line, " \x1b[%sm%s=\x1b[0m%s", fieldColor, field.Key(), field.String())
		}
	} else {
		fmt.Fprintf(&line, "%s %-6s %s", now, level, msg)
		for _, field := range fields {
			fmt.Fprintf(&line, " %s=%s", field.Key(), field.String())
		}
	}

	line.WriteString("\n")

	// Make sure we're only outputting a line one at a time
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprint(p.Writer, line.String())
}

// JSONPrinter prints one JSON object per line.
type JSONPrinter struct {
	Writer io.Writer

	mu sync.Mutex
}

func NewJSONPrinter(w io.Writer) *JSONPrinter {
	return &JSONPrinter{
		Writer: w,
	}
}

func (p *JSONPrinter) Print(level Level, msg string, fields Fields) {
	line := map[string]string{
		"ts":    time.Now().Format(time.RFC3339),
		"level": level.String(),
		"msg":   msg,
	}
	for _, field := range fields {
		line[field.Key()] = field.String()
	}

	// json.Marshal sorts map keys, which keeps output stable
	b, err := json.Marshal(line)
	if err != nil {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.Writer, "%s\n", b)
}

// ColorsSupported reports whether log lines written to stderr can be coloured.
func ColorsSupported() bool {
	// Color support for windows is set in init
	if runtime.GOOS == "windows" && !windowsColors {
		return false
	}

	// Colors can only be shown if stderr is a terminal
	return term.IsTerminal(int(os.Stderr.Fd()))
}

// Discard is a logger that throws away everything.
var Discard = NewConsoleLogger(NewTextPrinter(io.Discard), os.Exit)
