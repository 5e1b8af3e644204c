package mocks

import (
	"fmt"
	"sync"

	"github.com/user/bannerkit/pkg/ports"
)

// Logger records formatted messages per level.
type Logger struct {
	mu sync.Mutex

	Debugs []string
	Infos  []string
	Warns  []string
	Errors []string
}

// NewLogger creates a recording logger.
func NewLogger() *Logger {
	return &Logger{}
}

func (l *Logger) record(dst *[]string, msg string, args []interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	*dst = append(*dst, fmt.Sprintf(msg, args...))
}

func (l *Logger) Debug(msg string, args ...interface{}) { l.record(&l.Debugs, msg, args) }
func (l *Logger) Info(msg string, args ...interface{})  { l.record(&l.Infos, msg, args) }
func (l *Logger) Warn(msg string, args ...interface{})  { l.record(&l.Warns, msg, args) }
func (l *Logger) Error(msg string, args ...interface{}) { l.record(&l.Errors, msg, args) }

// WithComponent returns the same logger so records stay in one place.
func (l *Logger) WithComponent(component string) ports.Logger {
	return l
}

// WarnCount returns the number of warnings logged.
func (l *Logger) WarnCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.Warns)
}

var _ ports.Logger = (*Logger)(nil)
