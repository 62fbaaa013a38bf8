package logging

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

func SetupLogging() *logrus.Logger {
	return SetupLoggingWithOutput(os.Stderr, logrus.InfoLevel)
}

// SetupLoggingWithOutput builds the JSON logger used across the console. Logs go to
// stderr by default so they never interleave with rendered command output on stdout.
func SetupLoggingWithOutput(out io.Writer, level logrus.Level) *logrus.Logger {
	logger := logrus.Logger{
		Formatter: &logrus.JSONFormatter{
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyLevel: "loglevel",
			},
		},
		Out:   out,
		Level: level,
		Hooks: make(logrus.LevelHooks),
	}

	return &logger
}

// ParseLevel falls back to info for unknown level names.
func ParseLevel(name string) logrus.Level {
	level, err := logrus.ParseLevel(name)
	if err != nil {
		return logrus.InfoLevel
	}
	return level
}
