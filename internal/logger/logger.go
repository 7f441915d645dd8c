// Package logger provides the CLI's logging layer on top of logrus.
// Messages are split into two channels: user-facing progress lines on
// stdout and operational detail on stderr, routed by a logrus hook.
package logger

import (
	"io"
	"os"
	"sync"

	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
)

// LogType tags an entry for routing by the output hook.
type LogType string

const (
	UserLog LogType = "user"
	OpLog   LogType = "op"
)

var (
	// User carries clean progress messages for the terminal (stdout).
	User *UserLogger
	// Op carries detailed operational logs (stderr).
	Op *OpLogger

	log  *logrus.Logger
	once sync.Once
)

func init() {
	getLogger()
	User = &UserLogger{logger: log}
	Op = &OpLogger{logger: log}
}

// getLogger returns the shared logrus instance, initializing it with
// defaults on first use.
func getLogger() *logrus.Logger {
	once.Do(func() {
		log = logrus.New()
		log.SetOutput(io.Discard)
		log.SetLevel(logrus.InfoLevel)
		log.AddHook(NewOutputRouterHook())
	})
	return log
}

// Setup configures level, format and routing from the CLI flags.
// LOG_MODE (quiet|verbose|debug) and LOG_FORMAT (json|text) environment
// variables override the flags.
func Setup(verbose bool, jsonLogs bool, quiet bool) {
	switch os.Getenv("LOG_MODE") {
	case "quiet":
		quiet, verbose = true, false
	case "verbose", "debug":
		verbose, quiet = true, false
	}
	switch os.Getenv("LOG_FORMAT") {
	case "json":
		jsonLogs = true
	case "text":
		jsonLogs = false
	}

	l := getLogger()

	level := logrus.InfoLevel
	if quiet {
		level = logrus.ErrorLevel
	} else if verbose {
		level = logrus.DebugLevel
	}
	l.SetLevel(level)
	l.SetOutput(io.Discard) // all output goes through the routing hook
	l.Hooks = make(logrus.LevelHooks)

	hook := NewOutputRouterHook()
	if jsonLogs {
		hook.UserFormatter = &logrus.JSONFormatter{}
		hook.OpFormatter = &logrus.JSONFormatter{}
	} else {
		hook.UserFormatter = &CLIFormatter{
			DisableLevel:  true,
			DisableColors: !isatty.IsTerminal(os.Stdout.Fd()),
		}
		hook.OpFormatter = &CLIFormatter{
			DisableLevel:  false,
			DisableColors: !isatty.IsTerminal(os.Stderr.Fd()),
		}
	}
	l.AddHook(hook)

	User = &UserLogger{logger: l}
	Op = &OpLogger{logger: l}
}

// UserLogger writes progress lines meant for the person running the CLI.
type UserLogger struct {
	logger *logrus.Logger
}

func (u *UserLogger) entry() *logrus.Entry {
	return u.logger.WithField("log_type", string(UserLog))
}

func (u *UserLogger) Info(msg string)                          { u.entry().Info(msg) }
func (u *UserLogger) Infof(format string, args ...interface{}) { u.entry().Infof(format, args...) }

func (u *UserLogger) Warnf(format string, args ...interface{})  { u.entry().Warnf(format, args...) }
func (u *UserLogger) Errorf(format string, args ...interface{}) { u.entry().Errorf(format, args...) }

// Starting announces the beginning of a pipeline run.
func (u *UserLogger) Startingf(format string, args ...interface{}) {
	u.entry().Infof("[STARTING] "+format, args...)
}

// Successf reports a completed task or run.
func (u *UserLogger) Successf(format string, args ...interface{}) {
	u.entry().Infof("[SUCCESS] "+format, args...)
}

// Blockedf reports a task that declined to run due to unmet dependencies.
func (u *UserLogger) Blockedf(format string, args ...interface{}) {
	u.entry().Infof("[BLOCKED] "+format, args...)
}

// OpLogger writes detailed operational logs.
type OpLogger struct {
	logger *logrus.Logger
}

func (o *OpLogger) entry() *logrus.Entry {
	return o.logger.WithField("log_type", string(OpLog))
}

func (o *OpLogger) Debugf(format string, args ...interface{}) { o.entry().Debugf(format, args...) }
func (o *OpLogger) Infof(format string, args ...interface{})  { o.entry().Infof(format, args...) }
func (o *OpLogger) Warnf(format string, args ...interface{})  { o.entry().Warnf(format, args...) }
func (o *OpLogger) Errorf(format string, args ...interface{}) { o.entry().Errorf(format, args...) }

// WithFields attaches structured fields to an operational entry.
func (o *OpLogger) WithFields(fields map[string]interface{}) *logrus.Entry {
	return o.entry().WithFields(fields)
}
