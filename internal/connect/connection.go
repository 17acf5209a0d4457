package connect

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/dgraph-io/badger"
)

// OpenBadger opens (creating if needed) the badger database under dir.
func OpenBadger(dir string, logger *slog.Logger) (*badger.DB, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create session dir: %v", err)
	}

	opts := badger.DefaultOptions(dir).WithLogger(badgerLogger{logger})
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open session store: %v", err)
	}
	return db, nil
}

func CloseBadger(db *badger.DB) error {
	if db == nil {
		return nil
	}
	if err := db.Close(); err != nil {
		return fmt.Errorf("failed to close session store: %v", err)
	}
	return nil
}

// badgerLogger routes badger's printf-style logging into slog. Badger is
// chatty at info level, so everything below warnings goes to debug.
type badgerLogger struct {
	logger *slog.Logger
}

func (l badgerLogger) Errorf(format string, args ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, args...), "component", "badger")
}

func (l badgerLogger) Warningf(format string, args ...interface{}) {
	l.logger.Warn(fmt.Sprintf(format, args...), "component", "badger")
}

func (l badgerLogger) Infof(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...), "component", "badger")
}

func (l badgerLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...), "component", "badger")
}
