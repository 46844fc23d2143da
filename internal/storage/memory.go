package storage

import "maps"

// MemoryStore keeps values in a map. It is used when no durable store can be
// opened and in tests, where ReadErr and WriteErr simulate a broken backend.
type MemoryStore struct {
	data map[string][]byte

	ReadErr  error
	WriteErr error
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

func (m *MemoryStore) Get(key string) ([]byte, error) {
	if m.ReadErr != nil {
		return nil, m.ReadErr
	}
	v, ok := m.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

func (m *MemoryStore) Set(key string, value []byte) error {
	if m.WriteErr != nil {
		return m.WriteErr
	}
	m.data[key] = append([]byte(nil), value...)
	return nil
}

func (m *MemoryStore) Close() error { return nil }

// Snapshot returns a copy of everything stored.
func (m *MemoryStore) Snapshot() map[string][]byte {
	return maps.Clone(m.data)
}
