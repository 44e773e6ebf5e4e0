/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package logger provides a configurable logger that can be silenced for the
// MCP stdio server.
package logger

import (
	"io"
	"log"
	"os"
	"sync"
)

var (
	mu sync.Mutex
	// Default logs to stderr. Set to io.Discard for silent mode (MCP).
	output io.Writer = os.Stderr
	logger           = log.New(output, "", 0)
	debug  bool
)

// SetOutput configures the logger output destination.
// Use io.Discard to silence all logging.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
	logger = log.New(output, "", 0)
}

// SetDebug enables or disables Debug messages.
func SetDebug(enabled bool) {
	mu.Lock()
	defer mu.Unlock()
	debug = enabled
}

func current() (*log.Logger, bool) {
	mu.Lock()
	defer mu.Unlock()
	return logger, debug
}

// Error logs an error message.
func Error(format string, args ...any) {
	l, _ := current()
	l.Printf("error: "+format, args...)
}

// Warn logs a warning message.
func Warn(format string, args ...any) {
	l, _ := current()
	l.Printf("warning: "+format, args...)
}

// Info logs an informational message.
func Info(format string, args ...any) {
	l, _ := current()
	l.Printf(format, args...)
}

// Debug logs a debug message when debug output is enabled.
func Debug(format string, args ...any) {
	l, on := current()
	if !on {
		return
	}
	l.Printf("debug: "+format, args...)
}
