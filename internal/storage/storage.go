// Package storage keeps small JSON documents under fixed keys, the way a
// browser keeps values in local storage. Reads never fail from the caller's
// point of view and writes are best effort: problems go to the log and the
// in-memory state of the program stays authoritative.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// Keys of the two progress records.
const (
	KeyReviewed  = "adv382j-reviewed"
	KeyFavorites = "adv382j-favorites"
)

// ErrNotFound is returned by a KeyValueStore when nothing is stored under a key.
var ErrNotFound = errors.New("key not found")

// KeyValueStore is a synchronous byte store.
type KeyValueStore interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Close() error
}

// Adapter serializes values into a KeyValueStore and reports failures to a
// diagnostic logger instead of the caller.
type Adapter struct {
	kv  KeyValueStore
	log *zap.Logger
}

func NewAdapter(kv KeyValueStore, log *zap.Logger) *Adapter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Adapter{kv: kv, log: log}
}

// Load returns the value stored under key, or def when the value is absent,
// cannot be read or cannot be decoded.
func Load[T any](a *Adapter, key string, def T) T {
	data, err := a.kv.Get(key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			a.log.Debug("Nothing stored, using default", zap.String("key", key))
		} else {
			a.log.Warn("Unable to read stored value, using default", zap.String("key", key), zap.Error(err))
		}
		return def
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		a.log.Warn("Stored value is corrupt, using default", zap.String("key", key), zap.Error(err))
		return def
	}
	return v
}

// Save writes value under key. Failures are logged and otherwise ignored.
func (a *Adapter) Save(key string, value any) {
	if err := a.save(key, value); err != nil {
		a.log.Error("Unable to persist value", zap.String("key", key), zap.Error(err))
	}
}

func (a *Adapter) save(key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("unable to encode value: %w", err)
	}
	if err := a.kv.Set(key, data); err != nil {
		return fmt.Errorf("unable to write value: %w", err)
	}
	return nil
}

func (a *Adapter) Close() error {
	return a.kv.Close()
}
