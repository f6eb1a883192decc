package log

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/sirupsen/logrus"
)

// Verbose controls whether debug messages are being printed.
var Verbose bool

// Spinner is shown while sqcfg waits on a subprocess, e.g. the libc probe.
var Spinner = spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))

var logger = newLogger(os.Stderr)

func newLogger(out io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(out)
	l.SetLevel(logrus.DebugLevel)
	l.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp:       true,
		DisableLevelTruncation: true,
		PadLevelText:           true,
	})
	return l
}

// SetOutput redirects all log messages to `out`.
func SetOutput(out io.Writer) {
	logger.SetOutput(out)
}

func format(f string, a ...interface{}) string {
	return strings.TrimSuffix(fmt.Sprintf(f, a...), "\n")
}

// Log prints a formatted message.
func Log(f string, a ...interface{}) {
	logger.Info(format(f, a...))
}

// Debug prints a formatted debug message if verbose output is selected.
func Debug(f string, a ...interface{}) {
	if Verbose {
		logger.Debug(format(f, a...))
	}
}

// Success prints a formatted success message.
func Success(f string, a ...interface{}) {
	logger.WithField("status", "ok").Info(format(f, a...))
}

// Warning prints a formatted warning.
func Warning(f string, a ...interface{}) {
	logger.Warn(format(f, a...))
}

// Error prints a formatted error message.
func Error(f string, a ...interface{}) {
	logger.Error(format(f, a...))
}

// Fatal prints a formatted error message and terminates the program.
func Fatal(f string, a ...interface{}) {
	Error(f, a...)
	logger.Error("A fatal error occured. Exiting...")
	os.Exit(1)
}
