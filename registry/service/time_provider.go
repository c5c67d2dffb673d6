package service

import (
	"time"

	"microreg/helpers"
)

// timeProvider implements interfaces.TimeProvider through an injected now func.
type timeProvider struct {
	now func() time.Time
}

// NewTimeProvider creates a TimeProvider returning now(). Panics on nil now.
func NewTimeProvider(now func() time.Time) *timeProvider {
	return &timeProvider{now: helpers.NilPanic(now, "service.time_provider.go: now is required")}
}

func (t *timeProvider) Now() time.Time {
	return t.now()
}
