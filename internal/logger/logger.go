package logger

import (
	"fmt"
	"log"
	"os"
)

var (
	debugEnabled = false
	debugLogger  = log.New(os.Stdout, "DEBUG: ", log.Ldate|log.Ltime|log.Lshortfile)
	infoLogger   = log.New(os.Stdout, "INFO: ", log.Ldate|log.Ltime)
	errorLogger  = log.New(os.Stderr, "ERROR: ", log.Ldate|log.Ltime|log.Lshortfile)
)

// Init configures the package loggers and enables debug output when
// requested.
func Init(debug bool) {
	debugEnabled = debug
	if debugEnabled {
		Debug("Debug logging enabled")
	}
}

// SetOutput redirects all log output, e.g. to a file while a TUI owns
// the terminal.
func SetOutput(f *os.File) {
	debugLogger.SetOutput(f)
	infoLogger.SetOutput(f)
	errorLogger.SetOutput(f)
}

// Debug logs a debug message if debug mode is enabled.
func Debug(format string, v ...interface{}) {
	if debugEnabled {
		debugLogger.Output(2, fmt.Sprintf(format, v...))
	}
}

// Info logs an info message.
func Info(format string, v ...interface{}) {
	infoLogger.Output(2, fmt.Sprintf(format, v...))
}

// Error logs an error message.
func Error(format string, v ...interface{}) {
	errorLogger.Output(2, fmt.Sprintf(format, v...))
}
