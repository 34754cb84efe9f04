package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync/atomic"
)

var (
	InfoLogger  *log.Logger
	ErrorLogger *log.Logger
	DebugLogger *log.Logger
	WarnLogger  *log.Logger

	debugEnabled atomic.Bool
)

func init() {
	InfoLogger = log.New(os.Stdout, "INFO: ", log.Ldate|log.Ltime|log.Lshortfile)
	ErrorLogger = log.New(os.Stderr, "ERROR: ", log.Ldate|log.Ltime|log.Lshortfile)
	DebugLogger = log.New(os.Stdout, "DEBUG: ", log.Ldate|log.Ltime|log.Lshortfile)
	WarnLogger = log.New(os.Stdout, "WARN: ", log.Ldate|log.Ltime|log.Lshortfile)
	debugEnabled.Store(os.Getenv("ENVIRONMENT") == "development")
}

// SetEnvironment enables debug output in development.
func SetEnvironment(environment string) {
	debugEnabled.Store(environment == "development")
}

// SetOutput redirects every level, mostly for tests.
func SetOutput(w io.Writer) {
	InfoLogger.SetOutput(w)
	ErrorLogger.SetOutput(w)
	DebugLogger.SetOutput(w)
	WarnLogger.SetOutput(w)
}

func Info(format string, v ...interface{}) {
	InfoLogger.Output(2, fmt.Sprintf(format, v...))
}

func Error(format string, v ...interface{}) {
	ErrorLogger.Output(2, fmt.Sprintf(format, v...))
}

func Debug(format string, v ...interface{}) {
	if debugEnabled.Load() {
		DebugLogger.Output(2, fmt.Sprintf(format, v...))
	}
}

func Warn(format string, v ...interface{}) {
	WarnLogger.Output(2, fmt.Sprintf(format, v...))
}
