package logger

import (
	"strings"
	"sync"

	"github.com/rs/zerolog"

	corelogger "github.com/ashishpoonia369/EVs/core/logger"
)

// Logger mirrors the core logger interface.
type Logger = corelogger.Logger

// NopLogger mirrors the core no-op logger.
type NopLogger = corelogger.NopLogger

var (
	levelMu sync.RWMutex
	level   = zerolog.InfoLevel
)

// SetLevel changes the minimum level of loggers created afterwards. Unknown
// names keep the current level and return false.
func SetLevel(name string) bool {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(name)))
	if err != nil || name == "" {
		return false
	}
	levelMu.Lock()
	level = lvl
	levelMu.Unlock()
	return true
}

func currentLevel() zerolog.Level {
	levelMu.RLock()
	defer levelMu.RUnlock()
	return level
}

// New returns a Logger for the given component. The output format is chosen
// from the APP_ENV variable.
func New(component string) Logger {
	return NewZerologLogger(component)
}

// OrNop returns l, or a NopLogger when l is nil.
func OrNop(l Logger) Logger { return corelogger.OrNop(l) }
