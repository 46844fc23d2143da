package progress

import (
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"studyguide/internal/storage"
)

func newStore(t *testing.T, kv storage.KeyValueStore) *Store {
	t.Helper()
	return NewStore(storage.NewAdapter(kv, zap.NewNop()))
}

func TestToggleReviewed_TwiceRestoresValue(t *testing.T) {
	s := newStore(t, storage.NewMemoryStore())

	before := s.Reviewed("ch2-persuasion")
	assert.True(t, s.ToggleReviewed("ch2-persuasion"))
	assert.False(t, s.ToggleReviewed("ch2-persuasion"))
	assert.Equal(t, before, s.Reviewed("ch2-persuasion"))
}

func TestToggleFavorite_SurvivesReload(t *testing.T) {
	kv := storage.NewMemoryStore()
	s := newStore(t, kv)
	s.ToggleFavorite("ch2-coercion")

	reloaded := newStore(t, kv)
	assert.True(t, reloaded.Favorited("ch2-coercion"))
	assert.False(t, reloaded.Reviewed("ch2-coercion"))
}

func TestToggle_SurvivesReloadOnDisk(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "progress")
	for _, backend := range []string{storage.BackendFile, storage.BackendSQLite} {
		t.Run(backend, func(t *testing.T) {
			kv, err := storage.Open(backend, filepath.Join(dir, backend))
			require.NoError(t, err)
			s := newStore(t, kv)
			s.ToggleFavorite("ch2-coercion")
			s.ToggleReviewed("ch4-sjt")
			require.NoError(t, kv.Close())

			kv, err = storage.Open(backend, filepath.Join(dir, backend))
			require.NoError(t, err)
			defer kv.Close()
			s = newStore(t, kv)
			assert.True(t, s.Favorited("ch2-coercion"))
			assert.True(t, s.Reviewed("ch4-sjt"))
		})
	}
}

func TestUnknownIDIsFalse(t *testing.T) {
	s := newStore(t, storage.NewMemoryStore())
	assert.False(t, s.Reviewed("nonexistent-id"))
	assert.False(t, s.Favorited("nonexistent-id"))
}

func TestToggleIsPersistedImmediately(t *testing.T) {
	kv := storage.NewMemoryStore()
	s := newStore(t, kv)

	s.ToggleReviewed("a")
	s.ToggleReviewed("b")
	s.ToggleReviewed("b")

	var stored map[string]bool
	require.NoError(t, json.Unmarshal(kv.Snapshot()[storage.KeyReviewed], &stored))
	assert.Equal(t, map[string]bool{"a": true, "b": false}, stored)
	assert.NotContains(t, kv.Snapshot(), storage.KeyFavorites)
}

func TestCounts(t *testing.T) {
	s := newStore(t, storage.NewMemoryStore())
	for _, id := range []string{"a", "b", "c", "d"} {
		s.ToggleFavorite(id)
	}
	s.ToggleFavorite("d")
	s.ToggleReviewed("a")

	assert.Equal(t, Counts{Reviewed: 1, Favorited: 3}, s.Counts())
}

func TestUnknownKeysAreRetained(t *testing.T) {
	kv := storage.NewMemoryStore()
	require.NoError(t, kv.Set(storage.KeyReviewed, []byte(`{"retired-term":true,"ch2-self":false}`)))

	s := newStore(t, kv)
	s.ToggleReviewed("ch2-coercion")

	var stored map[string]bool
	require.NoError(t, json.Unmarshal(kv.Snapshot()[storage.KeyReviewed], &stored))
	assert.Equal(t, map[string]bool{"retired-term": true, "ch2-self": false, "ch2-coercion": true}, stored)
	assert.Equal(t, []string{"ch2-coercion", "retired-term"}, s.ReviewedIDs())
}

func TestCorruptOrNullStorageStartsEmpty(t *testing.T) {
	kv := storage.NewMemoryStore()
	require.NoError(t, kv.Set(storage.KeyReviewed, []byte(`null`)))
	require.NoError(t, kv.Set(storage.KeyFavorites, []byte(`["not","a","map"]`)))

	s := newStore(t, kv)
	assert.Equal(t, Counts{}, s.Counts())
	assert.True(t, s.ToggleReviewed("x"))
	assert.True(t, s.ToggleFavorite("x"))
}

func TestWriteFailureKeepsMemoryState(t *testing.T) {
	kv := storage.NewMemoryStore()
	kv.WriteErr = errors.New("quota exceeded")
	s := newStore(t, kv)

	assert.True(t, s.ToggleFavorite("ch2-coercion"))
	assert.True(t, s.Favorited("ch2-coercion"))
	assert.Equal(t, 1, s.Counts().Favorited)
}

func TestIDsAreSorted(t *testing.T) {
	s := newStore(t, storage.NewMemoryStore())
	for _, id := range []string{"mor-bidim", "ch2-coercion", "ch10-hsm"} {
		s.ToggleFavorite(id)
	}
	assert.Equal(t, []string{"ch10-hsm", "ch2-coercion", "mor-bidim"}, s.FavoritedIDs())
	assert.Empty(t, s.ReviewedIDs())
	assert.NotNil(t, s.ReviewedIDs())
}
