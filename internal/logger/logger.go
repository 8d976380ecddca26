// Package logger provides verbose logging for inkmark.
// Debug, Info and Warn messages are printed to stderr only when verbose
// mode is enabled via the --verbose flag. Errors are always printed.
//
// Messages take optional key/value pairs which are appended as key=value.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

var (
	mu      sync.RWMutex
	verbose bool
	output  io.Writer = os.Stderr
)

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput sets the output writer for logs.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

// Debug prints a message if verbose mode is enabled.
func Debug(msg string, keysAndValues ...any) {
	logIfVerbose("DEBUG", msg, keysAndValues)
}

// Info prints an informational message if verbose mode is enabled.
func Info(msg string, keysAndValues ...any) {
	logIfVerbose("INFO", msg, keysAndValues)
}

// Warn prints a warning message if verbose mode is enabled.
func Warn(msg string, keysAndValues ...any) {
	logIfVerbose("WARN", msg, keysAndValues)
}

// Error prints an error message regardless of verbose mode.
func Error(msg string, keysAndValues ...any) {
	mu.RLock()
	defer mu.RUnlock()
	write("ERROR", msg, keysAndValues)
}

// Section prints a section header if verbose mode is enabled.
func Section(name string) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose {
		fmt.Fprintf(output, "\n=== %s ===\n", name)
	}
}

func logIfVerbose(level, msg string, kv []any) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose {
		write(level, msg, kv)
	}
}

// write formats one line (caller must hold the read lock).
func write(level, msg string, kv []any) {
	var b strings.Builder
	b.WriteString("[")
	b.WriteString(level)
	b.WriteString("] ")
	b.WriteString(msg)
	for i := 0; i < len(kv); i += 2 {
		if i+1 < len(kv) {
			fmt.Fprintf(&b, " %v=%v", kv[i], kv[i+1])
		} else {
			fmt.Fprintf(&b, " %v=(missing)", kv[i])
		}
	}
	b.WriteString("\n")
	io.WriteString(output, b.String()) //nolint:errcheck
}
