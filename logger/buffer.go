package logger

import (
	"fmt"
	"strings"
	"sync"
)

// Buffer is a Logger that records messages instead of printing them, for
// tests. Loggers returned by WithFields record into the same Buffer, with
// their fields appended as " key=value".
type Buffer struct {
	Messages []string

	mu     *sync.Mutex
	root   *Buffer
	fields Fields
}

// NewBuffer creates a new Buffer with Messages slice initialized.
// This makes it simpler to assert empty []string when no log messages
// have been sent; otherwise Messages would be nil.
func NewBuffer() *Buffer {
	b := &Buffer{
		Messages: make([]string, 0),
		mu:       &sync.Mutex{},
	}
	b.root = b
	return b
}

func (b *Buffer) record(level Level, format string, v ...any) {
	var line strings.Builder
	fmt.Fprintf(&line, "[%s] ", strings.ToLower(level.String()))
	fmt.Fprintf(&line, format, v...)
	for _, field := range b.fields {
		fmt.Fprintf(&line, " %s=%s", field.Key(), field.String())
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.root.Messages = append(b.root.Messages, line.String())
}

func (b *Buffer) Debug(format string, v ...any)  { b.record(DEBUG, format, v...) }
func (b *Buffer) Error(format string, v ...any)  { b.record(ERROR, format, v...) }
func (b *Buffer) Fatal(format string, v ...any)  { b.record(FATAL, format, v...) }
func (b *Buffer) Notice(format string, v ...any) { b.record(NOTICE, format, v...) }
func (b *Buffer) Warn(format string, v ...any)   { b.record(WARN, format, v...) }
func (b *Buffer) Info(format string, v ...any)   { b.record(INFO, format, v...) }

func (b *Buffer) WithFields(fields ...Field) Logger {
	return &Buffer{
		mu:     b.mu,
		root:   b.root,
		fields: append(append(Fields{}, b.fields...), fields...),
	}
}

func (b *Buffer) SetLevel(level Level) {}

// Level is always DEBUG, so callers that check the level before building
// debug output still log it.
func (b *Buffer) Level() Level {
	return DEBUG
}
