package logging

import (
	"fmt"
	"io"
	"os"
)

var (
	verbose bool
	output  io.Writer = os.Stderr
)

// DebugEnabled returns true if debug mode is enabled via the TASKS_DEBUG environment
// variable or the verbose flag
func DebugEnabled() bool {
	return verbose || os.Getenv("TASKS_DEBUG") != ""
}

// SetVerbose turns debug output on regardless of TASKS_DEBUG
func SetVerbose(v bool) {
	verbose = v
}

// SetOutput redirects debug output. A nil writer restores stderr.
func SetOutput(w io.Writer) {
	if w == nil {
		w = os.Stderr
	}
	output = w
}

// Debugf prints a formatted debug message only if debug mode is enabled
func Debugf(format string, args ...interface{}) {
	if DebugEnabled() {
		fmt.Fprintf(output, "debug: "+format, args...)
	}
}

// Debugln prints a debug message followed by a newline only if debug mode is enabled
func Debugln(args ...interface{}) {
	if DebugEnabled() {
		fmt.Fprintln(output, append([]interface{}{"debug:"}, args...)...)
	}
}
