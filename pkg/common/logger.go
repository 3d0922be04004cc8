package common

import (
	"fmt"

	"github.com/andersfylling/disgord"
	"github.com/andersfylling/disgord/constant"
	"github.com/andersfylling/disgord/logger"
	"go.uber.org/zap"
)

// Logger wraps a zap logger with the variadic API used throughout the bot.
type Logger struct {
	instance *zap.Logger
}

// NewLogger builds the bot logger. Output goes to stderr and is appended to logFile.
func NewLogger(logFile string, debug bool) (*Logger, error) {
	conf := zap.NewProductionConfig()
	conf.OutputPaths = []string{"stderr"}
	conf.ErrorOutputPaths = []string{"stderr"}
	if logFile != "" {
		conf.OutputPaths = append(conf.OutputPaths, logFile)
		conf.ErrorOutputPaths = append(conf.ErrorOutputPaths, logFile)
	}

	if debug {
		conf.Development = true
		conf.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}

	instance, err := conf.Build(zap.AddCallerSkip(1))
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	return &Logger{instance: instance}, nil
}

// NopLogger returns a logger that discards everything.
func NopLogger() *Logger {
	return &Logger{instance: zap.NewNop()}
}

// With returns a child logger that adds fields to every entry.
func (l *Logger) With(fields ...zap.Field) *Logger {
	return &Logger{instance: l.instance.With(fields...)}
}

// DisgordLogger returns a clone of the logger for Disgord's internal logging.
func (l *Logger) DisgordLogger() *logger.LoggerZap {
	return disgord.DefaultLoggerWithInstance(l.instance.With(
		zap.String("lib", constant.Name),
		zap.String("ver", constant.Version)))
}

// Sync flushes any buffered log entries.
func (l *Logger) Sync() error {
	return l.instance.Sync()
}

// getMessage is a slightly modified version of DisGord's logging wrapper for zap.
func (l *Logger) getMessage(v ...interface{}) string {
	var message string
	for i := range v {
		var str string
		switch t := v[i].(type) {
		case string:
			str = t
		case error:
			str = t.Error()
		default:
			str = fmt.Sprint(v[i])
		}

		if message != "" {
			message += " " + str
		} else {
			message = str
		}
	}

	return message
}

// Debug logs a message at DebugLevel.
func (l *Logger) Debug(v ...interface{}) {
	l.instance.Debug(l.getMessage(v...))
}

// Info logs a message at InfoLevel.
func (l *Logger) Info(v ...interface{}) {
	l.instance.Info(l.getMessage(v...))
}

// Warn logs a message at WarnLevel.
func (l *Logger) Warn(v ...interface{}) {
	l.instance.Warn(l.getMessage(v...))
}

// Error logs a message at ErrorLevel.
func (l *Logger) Error(v ...interface{}) {
	l.instance.Error(l.getMessage(v...))
}

// Fatal logs a message at FatalLevel, flushes any buffered log entries and calls os.Exit(1).
func (l *Logger) Fatal(v ...interface{}) {
	defer l.instance.Sync()
	l.instance.Fatal(l.getMessage(v...))
}
