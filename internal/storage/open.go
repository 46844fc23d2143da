package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"

	sqliteFileName = "progress.db"
)

// Open creates the durable store selected by backend inside dir.
func Open(backend, dir string) (KeyValueStore, error) {
	switch backend {
	case BackendFile, "":
		return NewFileStore(dir)
	case BackendSQLite:
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("error creating storage directory: %w", err)
		}
		return NewSQLiteStore(filepath.Join(dir, sqliteFileName))
	}
	return nil, fmt.Errorf("unknown storage backend %q", backend)
}

// OpenOrMemory is Open that falls back to a MemoryStore. Progress then lives
// only as long as the program does.
func OpenOrMemory(backend, dir string, log *zap.Logger) KeyValueStore {
	kv, err := Open(backend, dir)
	if err != nil {
		log.Warn("Storage unavailable, progress will not survive restart",
			zap.String("backend", backend), zap.String("dir", dir), zap.Error(err))
		return NewMemoryStore()
	}
	log.Debug("Storage opened", zap.String("backend", backend), zap.String("dir", dir))
	return kv
}
