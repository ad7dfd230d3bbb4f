// Package log implements overlay-clock's format for logging different types
// of logs. This extends the already-powerful standard library and provides
// only the necessary features without using external dependencies.
// Provides info, warn, debug, fatal, and performance loggers. The debug and
// performance loggers are discarded unless enabled with SetVerbose.
package log

import (
	"fmt"
	"io"
	"log"
	"os"
)

// The prefix labels for each of the loggers
const (
	infoLabel  = "INFO"
	warnLabel  = "WARN"
	debugLabel = "DBUG"
	fatalLabel = "FATL"
	perfLabel  = "PERF"
)

// ANSI foreground text color codes
const (
	brightRed     = "91"
	brightGreen   = "92"
	brightYellow  = "93"
	brightMagenta = "95"
	brightWhite   = "97"
)

var (
	info  = log.New(os.Stderr, infoLabel+" ", log.LstdFlags)
	warn  = log.New(os.Stderr, warnLabel+" ", log.LstdFlags)
	debug = log.New(io.Discard, debugLabel+" ", log.LstdFlags|log.Lmicroseconds)
	fatal = log.New(os.Stderr, fatalLabel+" ", log.LstdFlags|log.Lshortfile)
	perf  = log.New(io.Discard, perfLabel+" ", log.LstdFlags|log.Lmicroseconds)
)

// SetVerbose routes the debug and performance loggers to the given writer,
// or back to discard when out is nil.
func SetVerbose(out io.Writer) {
	if out == nil {
		out = io.Discard
	}
	debug.SetOutput(out)
	perf.SetOutput(out)
}

func SetColorized(toggle bool) {
	setColorized(toggle, info, brightWhite, infoLabel)
	setColorized(toggle, warn, brightYellow, warnLabel)
	setColorized(toggle, debug, brightMagenta, debugLabel)
	setColorized(toggle, fatal, brightRed, fatalLabel)
	setColorized(toggle, perf, brightGreen, perfLabel)
}

func setColorized(toggle bool, l *log.Logger, color, label string) {
	if !toggle {
		l.SetPrefix(label + " ")
		return
	}
	prefix := fmt.Sprintf("\033[%vm%v\033[0m ", color, label)
	l.SetPrefix(prefix)
}

// ConstErr is a string type implementing error, for declaring sentinel
// errors as constants.
type ConstErr string

func (e ConstErr) Error() string {
	return string(e)
}
