package logging

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestSetupFormatters(t *testing.T) {
	jsonLogger := Setup(logrus.DebugLevel, true)
	assert.Equal(t, logrus.DebugLevel, jsonLogger.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, jsonLogger.Formatter)

	textLogger := Setup(logrus.WarnLevel, false)
	assert.Equal(t, logrus.WarnLevel, textLogger.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, textLogger.Formatter)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, logrus.DebugLevel, ParseLevel("debug"))
	assert.Equal(t, logrus.ErrorLevel, ParseLevel("ERROR"))
	assert.Equal(t, logrus.InfoLevel, ParseLevel("not-a-level"))
	assert.Equal(t, logrus.InfoLevel, ParseLevel(""))
}
