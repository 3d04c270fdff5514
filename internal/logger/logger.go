// Package logger provides the compositor's package-level structured logger.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

var (
	Logger        *log.Logger
	currentWriter io.Writer = os.Stderr
	forwarder     func(level, message string) // forwards lines to attached "log" subcommand clients
)

func init() {
	Logger = log.New(os.Stderr)
	Logger.SetLevel(log.InfoLevel)

	if logLevel := os.Getenv("LOG_LEVEL"); logLevel != "" {
		SetLevel(logLevel)
	}
}

// SetForwarder registers a callback invoked on every logged line. No
// package in this module installs one.
func SetForwarder(fn func(level, message string)) {
	forwarder = fn
}

func forward(level, message string) {
	if forwarder != nil {
		forwarder(level, message)
	}
}

func Info(msg interface{}, keyvals ...interface{}) {
	Logger.Info(msg, keyvals...)
	forward("INFO", fmt.Sprintf("%v", msg))
}

func Debug(msg interface{}, keyvals ...interface{}) {
	Logger.Debug(msg, keyvals...)
	if Logger.GetLevel() <= log.DebugLevel {
		forward("DEBUG", fmt.Sprintf("%v", msg))
	}
}

func Warn(msg interface{}, keyvals ...interface{}) {
	Logger.Warn(msg, keyvals...)
	forward("WARN", fmt.Sprintf("%v", msg))
}

func Error(msg interface{}, keyvals ...interface{}) {
	Logger.Error(msg, keyvals...)
	forward("ERROR", fmt.Sprintf("%v", msg))
}

func Fatal(msg interface{}, keyvals ...interface{}) {
	Logger.Fatal(msg, keyvals...)
	forward("FATAL", fmt.Sprintf("%v", msg))
}

func Infof(format string, args ...interface{}) {
	Logger.Infof(format, args...)
	forward("INFO", fmt.Sprintf(format, args...))
}

func Debugf(format string, args ...interface{}) {
	Logger.Debugf(format, args...)
	if Logger.GetLevel() <= log.DebugLevel {
		forward("DEBUG", fmt.Sprintf(format, args...))
	}
}

func Warnf(format string, args ...interface{}) {
	Logger.Warnf(format, args...)
	forward("WARN", fmt.Sprintf(format, args...))
}

func Errorf(format string, args ...interface{}) {
	Logger.Errorf(format, args...)
	forward("ERROR", fmt.Sprintf(format, args...))
}

func Fatalf(format string, args ...interface{}) {
	Logger.Fatalf(format, args...)
	forward("FATAL", fmt.Sprintf(format, args...))
}

// SetLevel sets the log level from a string. This is the implementation
// behind both jay_compositor's set_log_level request and the
// "jayctl set-log-level" subcommand.
func SetLevel(level string) {
	switch strings.ToUpper(level) {
	case "TRACE": // charmbracelet/log has no trace level; the most verbose one it has is debug
		Logger.SetLevel(log.DebugLevel)
	case "DEBUG":
		Logger.SetLevel(log.DebugLevel)
	case "INFO":
		Logger.SetLevel(log.InfoLevel)
	case "WARN", "WARNING":
		Logger.SetLevel(log.WarnLevel)
	case "ERROR":
		Logger.SetLevel(log.ErrorLevel)
	case "FATAL":
		Logger.SetLevel(log.FatalLevel)
	}
}

// SetOutput redirects the logger to a different writer, preserving level.
func SetOutput(w io.Writer) {
	currentWriter = w
	level := Logger.GetLevel()
	Logger = log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
	})
	Logger.SetLevel(level)
}

// SetPrefix sets a prefix for subsequent log lines, preserving level.
func SetPrefix(prefix string) {
	level := Logger.GetLevel()
	Logger = log.NewWithOptions(currentWriter, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Prefix:          prefix,
	})
	Logger.SetLevel(level)
}

// SetupFileLogging points both the package logger and the charmbracelet/log
// default logger at a log file under the XDG state directory, returning the
// open file so the caller can close it on shutdown. This backs
// jay_compositor's get_log_file request: the returned path is what gets
// handed back to the requesting client.
func SetupFileLogging(prefix string) (*os.File, error) {
	stateDir := os.Getenv("XDG_STATE_HOME")
	if stateDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		stateDir = filepath.Join(home, ".local", "state")
	}
	logDir := filepath.Join(stateDir, "jay")
	if err := os.MkdirAll(logDir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	logPath := filepath.Join(logDir, "jay.log")

	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600) //nolint:gosec // logPath is built from trusted env/home
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", logPath, err)
	}

	if _, err := fmt.Fprintf(logFile, "\n%s %s: === new session ===\n",
		time.Now().Format("15:04:05"), prefix); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to write to log file: %v\n", err)
	}

	fileLogger := log.NewWithOptions(logFile, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Prefix:          prefix,
	})
	log.SetDefault(fileLogger)

	savedForwarder := forwarder
	savedLevel := Logger.GetLevel()
	currentWriter = logFile
	Logger = fileLogger
	forwarder = savedForwarder
	Logger.SetLevel(savedLevel)

	return logFile, nil
}

// LogFilePath returns the path SetupFileLogging would use, without opening
// anything — jay_compositor's get_log_file request needs the path even when
// file logging was never enabled for this session.
func LogFilePath() string {
	stateDir := os.Getenv("XDG_STATE_HOME")
	if stateDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		stateDir = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(stateDir, "jay", "jay.log")
}

// Get returns the logger instance.
func Get() *log.Logger {
	return Logger
}
