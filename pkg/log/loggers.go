package log

import (
	"fmt"
	"os"
)

// Info prints to the info logger in the manner of fmt.Print.
func Info(v ...interface{}) {
	_ = info.Output(2, fmt.Sprint(v...))
}

// Infof prints to the info logger in the manner of fmt.Printf.
func Infof(format string, v ...interface{}) {
	_ = info.Output(2, fmt.Sprintf(format, v...))
}

// Warn prints to the warn logger in the manner of fmt.Print.
func Warn(v ...interface{}) {
	_ = warn.Output(2, fmt.Sprint(v...))
}

// Warnf prints to the warn logger in the manner of fmt.Printf.
func Warnf(format string, v ...interface{}) {
	_ = warn.Output(2, fmt.Sprintf(format, v...))
}

// Debug prints to the debug logger in the manner of fmt.Print.
func Debug(v ...interface{}) {
	_ = debug.Output(2, fmt.Sprint(v...))
}

// Debugf prints to the debug logger in the manner of fmt.Printf.
func Debugf(format string, v ...interface{}) {
	_ = debug.Output(2, fmt.Sprintf(format, v...))
}

// Perff prints to the performance logger in the manner of fmt.Printf.
func Perff(format string, v ...interface{}) {
	_ = perf.Output(2, fmt.Sprintf(format, v...))
}

// Fatal prints to the fatal logger in the manner of fmt.Print, then exits
// with a non-zero status.
func Fatal(v ...interface{}) {
	_ = fatal.Output(2, fmt.Sprint(v...))
	os.Exit(1)
}

// Fatalf prints to the fatal logger in the manner of fmt.Printf, then exits
// with a non-zero status.
func Fatalf(format string, v ...interface{}) {
	_ = fatal.Output(2, fmt.Sprintf(format, v...))
	os.Exit(1)
}
