package logger

import (
	"fmt"
	"strings"
)

type Level int

const (
	DEBUG Level = iota
	NOTICE
	INFO
	WARN
	ERROR
	FATAL
)

var levelNames = []string{
	"DEBUG",
	"NOTICE",
	"INFO",
	"WARN",
	"ERROR",
	"FATAL",
}

// LevelFromString takes a string and returns a Level
func LevelFromString(s string) (Level, error) {
	for i, name := range levelNames {
		if strings.EqualFold(name, s) {
			return Level(i), nil
		}
	}
	return -1, fmt.Errorf("invalid log level: %q", s)
}

// String returns the string representation of a logging level.
func (l Level) String() string {
	if l < 0 || int(l) >= len(levelNames) {
		return fmt.Sprintf("Level(%d)", int(l))
	}
	return levelNames[l]
}
