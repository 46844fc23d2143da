package progress

import (
	"maps"
	"slices"

	"studyguide/internal/model"
	"studyguide/internal/storage"
)

type Counts struct {
	Reviewed  int
	Favorited int
}

// Store holds the reviewed and favorited flags of every term. It is the only
// state that survives a restart; each toggle is written out before it returns.
// Ids that do not belong to any known term are kept untouched.
type Store struct {
	storage   *storage.Adapter
	reviewed  model.ProgressMap
	favorited model.ProgressMap
}

// NewStore loads both mappings, starting empty when nothing usable is stored.
func NewStore(adapter *storage.Adapter) *Store {
	s := &Store{
		storage:   adapter,
		reviewed:  storage.Load(adapter, storage.KeyReviewed, model.ProgressMap{}),
		favorited: storage.Load(adapter, storage.KeyFavorites, model.ProgressMap{}),
	}
	// a stored JSON null decodes into a nil map
	if s.reviewed == nil {
		s.reviewed = model.ProgressMap{}
	}
	if s.favorited == nil {
		s.favorited = model.ProgressMap{}
	}
	return s
}

func (s *Store) Reviewed(id string) bool { return s.reviewed[id] }

func (s *Store) Favorited(id string) bool { return s.favorited[id] }

// ToggleReviewed flips the reviewed flag of id, persists and returns the new value.
func (s *Store) ToggleReviewed(id string) bool {
	return toggle(s.reviewed, id, func(m model.ProgressMap) { s.storage.Save(storage.KeyReviewed, m) })
}

// ToggleFavorite flips the favorited flag of id, persists and returns the new value.
func (s *Store) ToggleFavorite(id string) bool {
	return toggle(s.favorited, id, func(m model.ProgressMap) { s.storage.Save(storage.KeyFavorites, m) })
}

func toggle(m model.ProgressMap, id string, persist func(model.ProgressMap)) bool {
	v := !m[id]
	m[id] = v
	persist(m)
	return v
}

func (s *Store) Counts() Counts {
	return Counts{Reviewed: countTrue(s.reviewed), Favorited: countTrue(s.favorited)}
}

// ReviewedIDs returns the sorted ids whose reviewed flag is set.
func (s *Store) ReviewedIDs() []string { return trueIDs(s.reviewed) }

// FavoritedIDs returns the sorted ids whose favorited flag is set.
func (s *Store) FavoritedIDs() []string { return trueIDs(s.favorited) }

func countTrue(m model.ProgressMap) int {
	n := 0
	for _, v := range m {
		if v {
			n++
		}
	}
	return n
}

func trueIDs(m model.ProgressMap) []string {
	ids := make([]string, 0, len(m))
	for _, id := range slices.Sorted(maps.Keys(m)) {
		if m[id] {
			ids = append(ids, id)
		}
	}
	return ids
}
