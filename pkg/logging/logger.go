package logging

import (
	"log"
	"os"
	"strings"
)

// Log levels in increasing order of severity.
const (
	LevelDebug = iota
	LevelInfo
	LevelWarn
	LevelError
)

var (
	DebugLogger *log.Logger
	InfoLogger  *log.Logger
	WarnLogger  *log.Logger
	ErrorLogger *log.Logger

	minLevel = LevelInfo
)

// InitLogging initializes logging with the given minimum level
// (debug, info, warn, error)
func InitLogging(level string) {
	minLevel = parseLevel(level)

	DebugLogger = log.New(os.Stdout, "DEBUG: ", log.Ldate|log.Ltime|log.Lshortfile)
	InfoLogger = log.New(os.Stdout, "INFO: ", log.Ldate|log.Ltime|log.Lshortfile)
	WarnLogger = log.New(os.Stdout, "WARN: ", log.Ldate|log.Ltime|log.Lshortfile)
	ErrorLogger = log.New(os.Stderr, "ERROR: ", log.Ldate|log.Ltime|log.Lshortfile)
}

func parseLevel(level string) int {
	switch strings.ToLower(level) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// Debugf logs debug level messages
func Debugf(format string, v ...interface{}) {
	if DebugLogger != nil && minLevel <= LevelDebug {
		DebugLogger.Printf(format, v...)
	}
}

// Infof logs info level messages
func Infof(format string, v ...interface{}) {
	if InfoLogger != nil && minLevel <= LevelInfo {
		InfoLogger.Printf(format, v...)
	}
}

// Warnf logs warn level messages
func Warnf(format string, v ...interface{}) {
	if WarnLogger != nil && minLevel <= LevelWarn {
		WarnLogger.Printf(format, v...)
	}
}

// Errorf logs error level messages
func Errorf(format string, v ...interface{}) {
	if ErrorLogger != nil && minLevel <= LevelError {
		ErrorLogger.Printf(format, v...)
	}
}
