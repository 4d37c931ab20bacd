package logger

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestInitLevels(t *testing.T) {
	testCases := []struct {
		level    string
		expected logrus.Level
	}{
		{level: "debug", expected: logrus.DebugLevel},
		{level: "info", expected: logrus.InfoLevel},
		{level: "warn", expected: logrus.WarnLevel},
		{level: "error", expected: logrus.ErrorLevel},
		{level: "", expected: logrus.InfoLevel},
		{level: "chatty", expected: logrus.InfoLevel},
	}

	for _, tc := range testCases {
		t.Run(tc.level, func(t *testing.T) {
			Init(tc.level)
			assert.Equal(t, tc.expected, GetLogger().GetLevel())
			assert.IsType(t, &logrus.JSONFormatter{}, GetLogger().Formatter)
		})
	}
}
