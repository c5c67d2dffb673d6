package service

import (
	"math/rand/v2"

	"microreg/apierror"
	"microreg/helpers"
	"microreg/registry/domain"
)

// randomSelector implements interfaces.Selector with an independent uniform draw per call.
type randomSelector struct {
	intN func(n int) int
}

// NewRandomSelector creates a selector drawing indexes with math/rand/v2.
func NewRandomSelector() *randomSelector {
	return NewRandomSelectorWithSource(rand.IntN)
}

// NewRandomSelectorWithSource creates a selector drawing indexes with intN, which must
// return a value in [0, n). Panics on nil intN.
func NewRandomSelectorWithSource(intN func(n int) int) *randomSelector {
	return &randomSelector{intN: helpers.NilPanic(intN, "service.selector.go: intN is required")}
}

func (s *randomSelector) Select(candidates []domain.Record) (domain.Record, error) {
	if len(candidates) == 0 {
		return domain.Record{}, apierror.NewEntityNotFoundError("no live instance matches", nil)
	}
	return candidates[s.intN(len(candidates))], nil
}
