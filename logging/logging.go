// Package logging configures the application logger.
package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Setup returns a logger writing to stdout, JSON-formatted for production or
// human-readable text otherwise.
func Setup(level logrus.Level, jsonOutput bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	logger.SetLevel(level)
	if jsonOutput {
		logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
		})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}
	return logger
}

// ParseLevel converts a level name to a logrus level, defaulting to info.
func ParseLevel(name string) logrus.Level {
	level, err := logrus.ParseLevel(name)
	if err != nil {
		return logrus.InfoLevel
	}
	return level
}
