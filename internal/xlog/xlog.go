// Package xlog provides nil-safe logging helpers, so that library code can
// emit progress messages only when the caller supplied a logger.
//
// The Logger interface is satisfied by *log.Logger.
package xlog

import "fmt"

// Logger is the interface the package requires. The log.Logger type supports it.
type Logger interface {
	Output(calldepth int, s string) error
}

// Printf prints the arguments using the format string. If the logger argument
// is nil nothing will be printed.
func Printf(l Logger, format string, v ...interface{}) {
	if l != nil {
		l.Output(2, fmt.Sprintf(format, v...))
	}
}

// Println prints the arguments and adds a newline. If the logger argument is
// nil nothing will be printed.
func Println(l Logger, v ...interface{}) {
	if l != nil {
		l.Output(2, fmt.Sprintln(v...))
	}
}
