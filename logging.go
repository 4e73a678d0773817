package fatkit

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// Handle teardown has no caller-accessible return channel, so release
// failures are routed to this logger instead of being propagated.
var (
	loggerMu sync.RWMutex
	log      logrus.FieldLogger = logrus.StandardLogger()
)

// SetLogger replaces the logger used for release-failure diagnostics.
// Passing nil restores the standard logrus logger.
func SetLogger(l logrus.FieldLogger) {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	if l == nil {
		l = logrus.StandardLogger()
	}
	log = l
}

func logger() logrus.FieldLogger {
	loggerMu.RLock()
	defer loggerMu.RUnlock()
	return log
}
