package kafunk

import (
	"io"
	"log"
)

// StdLogger is the interface used internally for logging; a *log.Logger
// satisfies it.
type StdLogger interface {
	Print(v ...interface{})
	Printf(format string, v ...interface{})
	Println(v ...interface{})
}

// Logger receives this package's log messages. By default it is a
// *log.Logger writing to io.Discard, but you can set it to any
// implementation you like, including a *log.Logger, to see them.
//
// LoggerInfo, LoggerWarn, and LoggerError let callers route different log
// levels to different destinations; while one is nil, its level goes to
// Logger.
var (
	Logger      StdLogger = log.New(io.Discard, "[kafunk] ", log.LstdFlags)
	LoggerInfo  StdLogger
	LoggerWarn  StdLogger
	LoggerError StdLogger
)

func levelLogger(l StdLogger) StdLogger {
	if l != nil {
		return l
	}
	return Logger
}

func logInfof(format string, v ...interface{})  { levelLogger(LoggerInfo).Printf(format, v...) }
func logWarnf(format string, v ...interface{})  { levelLogger(LoggerWarn).Printf(format, v...) }
func logErrorf(format string, v ...interface{}) { levelLogger(LoggerError).Printf(format, v...) }
