package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// LevelLogger prints at a fixed logrus level so call sites keep the
// logger.Info.Printf style.
type LevelLogger struct {
	base  *logrus.Logger
	level logrus.Level
}

// Printf logs a formatted message at the logger's level
func (l *LevelLogger) Printf(format string, args ...interface{}) {
	l.base.Logf(l.level, format, args...)
}

// Println logs its arguments at the logger's level
func (l *LevelLogger) Println(args ...interface{}) {
	l.base.Logln(l.level, args...)
}

// WithFields returns a structured entry; log it with the entry's level methods
func (l *LevelLogger) WithFields(fields logrus.Fields) *logrus.Entry {
	return l.base.WithFields(fields)
}

var (
	Info    *LevelLogger
	Warn    *LevelLogger
	Debug   *LevelLogger
	Verbose *LevelLogger
	Error   *LevelLogger
	Always  *LevelLogger // Always logs to file regardless of log level

	// Log is the leveled logrus logger behind Info/Warn/Debug/Verbose
	Log *logrus.Logger

	logFile *os.File
)

func init() {
	// Usable before Init: quiet except for errors.
	setup(logrus.ErrorLevel, io.Discard, os.Stderr)
}

func Init() error {
	return InitWithLevel("info")
}

func InitWithLevel(logLevel string) error {
	return InitWithConfig(logLevel, "optionsim.log", false)
}

// InitWithConfig opens logFilePath for appending and routes all loggers to it.
// Errors are mirrored to stderr, and everything to stdout when console is set.
func InitWithConfig(logLevel, logFilePath string, console bool) error {
	f, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return err
	}
	if logFile != nil {
		logFile.Close()
	}
	logFile = f

	var out io.Writer = f
	if console {
		out = io.MultiWriter(os.Stdout, f)
	}
	setup(ParseLevel(logLevel), out, io.MultiWriter(os.Stderr, f))
	Always = &LevelLogger{base: newLogrus(f, logrus.TraceLevel), level: logrus.InfoLevel}
	return nil
}

// InitWithWriter routes every logger to w, used by tests and CLI tools
func InitWithWriter(logLevel string, w io.Writer) {
	setup(ParseLevel(logLevel), w, w)
}

// ParseLevel maps the configured level names onto logrus levels.
// Unknown names fall back to info.
func ParseLevel(logLevel string) logrus.Level {
	switch strings.ToLower(logLevel) {
	case "error":
		return logrus.ErrorLevel
	case "warn", "warning":
		return logrus.WarnLevel
	case "debug":
		return logrus.DebugLevel
	case "verbose", "trace":
		return logrus.TraceLevel
	default:
		return logrus.InfoLevel
	}
}

func setup(level logrus.Level, out, errOut io.Writer) {
	Log = newLogrus(out, level)
	errLog := newLogrus(errOut, logrus.ErrorLevel)

	Info = &LevelLogger{base: Log, level: logrus.InfoLevel}
	Warn = &LevelLogger{base: Log, level: logrus.WarnLevel}
	Debug = &LevelLogger{base: Log, level: logrus.DebugLevel}
	Verbose = &LevelLogger{base: Log, level: logrus.TraceLevel}
	Error = &LevelLogger{base: errLog, level: logrus.ErrorLevel}
	Always = &LevelLogger{base: newLogrus(out, logrus.TraceLevel), level: logrus.InfoLevel}
}

func newLogrus(out io.Writer, level logrus.Level) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(out)
	l.SetLevel(level)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	return l
}

// Close flushes and closes the log file opened by InitWithConfig
func Close() error {
	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	return err
}
