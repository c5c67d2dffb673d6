package service

import (
	"iter"
	"maps"

	"microreg/registry/domain"
)

// entryStore maps identity keys to records. It does no locking: the Registry
// holds its mutex around every call, including iteration over all().
type entryStore struct {
	entries map[domain.Key]domain.Record
}

func newEntryStore() *entryStore {
	return &entryStore{entries: make(map[domain.Key]domain.Record)}
}

// upsert stores record under key and reports whether key was absent.
// Records are replaced whole, so readers never see a partial record.
func (s *entryStore) upsert(key domain.Key, record domain.Record) bool {
	_, exists := s.entries[key]
	s.entries[key] = record
	return !exists
}

// remove deletes key and reports whether it was present. Removing an absent key is a no-op.
func (s *entryStore) remove(key domain.Key) bool {
	_, exists := s.entries[key]
	delete(s.entries, key)
	return exists
}

// all yields the records present when iteration runs, in no particular order.
func (s *entryStore) all() iter.Seq[domain.Record] {
	return maps.Values(s.entries)
}

func (s *entryStore) len() int {
	return len(s.entries)
}

func (s *entryStore) reset() {
	clear(s.entries)
}
