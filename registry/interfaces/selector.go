package interfaces

import "microreg/registry/domain"

// Selector picks one record among matching candidates.
type Selector interface {
	// Select returns one of candidates, or entity_not_found when candidates is empty.
	Select(candidates []domain.Record) (domain.Record, error)
}
