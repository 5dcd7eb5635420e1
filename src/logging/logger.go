// Package logging provides the leveled log helpers shared by the viewer and the CLIs.
package logging

import (
	"io"
	"os"
	"strings"
	"sync/atomic"

	"github.com/rs/zerolog"
)

// LogLevel represents severity.
type LogLevel int32

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

var levelNames = map[string]LogLevel{
	"debug":   LevelDebug,
	"info":    LevelInfo,
	"warn":    LevelWarn,
	"warning": LevelWarn,
	"error":   LevelError,
}

var currentLevel int32 = int32(LevelInfo)

var baseLogger = newLogger(os.Stderr)

func newLogger(w io.Writer) zerolog.Logger {
	cw := zerolog.ConsoleWriter{Out: w, NoColor: true, TimeFormat: "2006/01/02 15:04:05.000000"}
	return zerolog.New(cw).With().Timestamp().Logger()
}

// SetOutput redirects all log output to w.
func SetOutput(w io.Writer) { baseLogger = newLogger(w) }

// SetLogLevel parses and sets the global log level. Unknown names are ignored.
func SetLogLevel(s string) {
	l, ok := levelNames[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return
	}
	atomic.StoreInt32(&currentLevel, int32(l))
}

func getLevel() LogLevel { return LogLevel(atomic.LoadInt32(&currentLevel)) }

// GetLogLevel returns the current global log level.
func GetLogLevel() LogLevel { return getLevel() }

func logf(l LogLevel, format string, args ...interface{}) {
	if getLevel() > l {
		return
	}
	var ev *zerolog.Event
	switch l {
	case LevelDebug:
		ev = baseLogger.Debug()
	case LevelWarn:
		ev = baseLogger.Warn()
	case LevelError:
		ev = baseLogger.Error()
	default:
		ev = baseLogger.Info()
	}
	// A message without args is logged verbatim so literal % characters survive.
	if len(args) == 0 {
		ev.Msg(format)
		return
	}
	ev.Msgf(format, args...)
}

func Debugf(format string, a ...interface{}) { logf(LevelDebug, format, a...) }
func Infof(format string, a ...interface{})  { logf(LevelInfo, format, a...) }
func Warnf(format string, a ...interface{})  { logf(LevelWarn, format, a...) }
func Errorf(format string, a ...interface{}) { logf(LevelError, format, a...) }
