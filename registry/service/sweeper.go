package service

import (
	"time"

	"microreg/registry/domain"
)

// sweep removes every record whose age at now is at least ttl and returns the removed records.
func sweep(store *entryStore, ttl time.Duration, now time.Time) []domain.Record {
	var expired []domain.Record
	for record := range store.all() {
		if now.Sub(record.LastSeen) >= ttl {
			expired = append(expired, record)
		}
	}
	for _, record := range expired {
		store.remove(record.Key())
	}
	return expired
}
