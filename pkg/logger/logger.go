// Package logger provides the logging interface used across chime
// components. Implementations log to the console or discard output; a
// recording implementation is provided for tests.
package logger

import (
	"fmt"
	"log"
	"sync"
)

// Logger is the logging contract accepted by daemon components.
type Logger interface {
	// Info logs an informational message (e.g. "alarm scheduled").
	Info(format string, args ...any)

	// Warning logs a non-fatal problem (e.g. "playback failed").
	Warning(format string, args ...any)

	// Error logs a failure (e.g. "store write failed").
	Error(format string, args ...any)
}

// StandardLogger wraps a stdlib *log.Logger for console output.
type StandardLogger struct {
	l *log.Logger
}

// NewStandardLogger wraps the given *log.Logger. If l is nil the default
// logger is used.
func NewStandardLogger(l *log.Logger) *StandardLogger {
	if l == nil {
		l = log.Default()
	}
	return &StandardLogger{l: l}
}

func (s *StandardLogger) Info(format string, args ...any) {
	s.l.Printf("[INFO] "+format, args...)
}

func (s *StandardLogger) Warning(format string, args ...any) {
	s.l.Printf("[WARNING] "+format, args...)
}

func (s *StandardLogger) Error(format string, args ...any) {
	s.l.Printf("[ERROR] "+format, args...)
}

// NopLogger discards all messages.
type NopLogger struct{}

func NewNopLogger() *NopLogger { return &NopLogger{} }

func (NopLogger) Info(string, ...any)    {}
func (NopLogger) Warning(string, ...any) {}
func (NopLogger) Error(string, ...any)   {}

// MockLogger records log calls for verification in tests.
type MockLogger struct {
	mu           sync.Mutex
	InfoCalls    []string
	WarningCalls []string
	ErrorCalls   []string
}

func NewMockLogger() *MockLogger { return &MockLogger{} }

func (m *MockLogger) Info(format string, args ...any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.InfoCalls = append(m.InfoCalls, sprintf(format, args...))
}

func (m *MockLogger) Warning(format string, args ...any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.WarningCalls = append(m.WarningCalls, sprintf(format, args...))
}

func (m *MockLogger) Error(format string, args ...any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ErrorCalls = append(m.ErrorCalls, sprintf(format, args...))
}

// Errors returns a copy of the recorded error messages.
func (m *MockLogger) Errors() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.ErrorCalls))
	copy(out, m.ErrorCalls)
	return out
}

func sprintf(format string, args ...any) string {
	if len(args) == 0 {
		return format
	}
	return fmt.Sprintf(format, args...)
}

var (
	_ Logger = (*StandardLogger)(nil)
	_ Logger = (*NopLogger)(nil)
	_ Logger = (*MockLogger)(nil)
)
