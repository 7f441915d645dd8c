package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// OutputRouterHook sends user entries to one writer and operational
// entries to another, each with its own formatter.
type OutputRouterHook struct {
	UserFormatter logrus.Formatter
	OpFormatter   logrus.Formatter
	UserWriter    io.Writer
	OpWriter      io.Writer
}

// NewOutputRouterHook creates a hook routing user logs to stdout and
// operational logs to stderr.
func NewOutputRouterHook() *OutputRouterHook {
	return &OutputRouterHook{
		UserFormatter: &CLIFormatter{DisableLevel: true},
		OpFormatter:   &CLIFormatter{},
		UserWriter:    os.Stdout,
		OpWriter:      os.Stderr,
	}
}

// Levels implements logrus.Hook; the router sees every entry.
func (h *OutputRouterHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

// Fire implements logrus.Hook.
func (h *OutputRouterHook) Fire(entry *logrus.Entry) error {
	formatter := h.OpFormatter
	writer := h.OpWriter
	if logType, _ := entry.Data["log_type"].(string); logType == string(UserLog) {
		formatter = h.UserFormatter
		writer = h.UserWriter
	}

	line, err := formatter.Format(entry)
	if err != nil {
		return err
	}
	_, err = writer.Write(line)
	return err
}
