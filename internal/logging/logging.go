// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package logging builds the logrus logger shared by the CLI and its components.
package logging

import (
	"io"
	"strings"

	"github.com/sirupsen/logrus"
)

// ParseLevel maps a level name to a logrus level. Unknown or empty names
// fall back to warn.
func ParseLevel(name string) logrus.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return logrus.DebugLevel
	case "info":
		return logrus.InfoLevel
	case "warn", "warning":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	default:
		return logrus.WarnLevel
	}
}

// New returns a text logger writing to w at the named level.
func New(level string, w io.Writer) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetLevel(ParseLevel(level))
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	return logger
}

// Discard returns a logger that drops everything.
func Discard() *logrus.Logger {
	return New("error", io.Discard)
}
