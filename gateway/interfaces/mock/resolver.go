package mock

import (
	"context"
	"sync"

	"microreg/gateway/interfaces"
	"microreg/registryclient"
)

var _ interfaces.Resolver = &ResolverMock{}

// ResolverMock is a function-field stub of interfaces.Resolver. An unset FindFunc returns
// registryclient.ErrNotFound.
type ResolverMock struct {
	FindFunc func(ctx context.Context, name, constraint string) (registryclient.Instance, error)

	mu    sync.Mutex
	calls []FindCall
}

// FindCall records the arguments of one Find call.
type FindCall struct {
	Name       string
	Constraint string
}

func (m *ResolverMock) Find(ctx context.Context, name, constraint string) (registryclient.Instance, error) {
	m.mu.Lock()
	m.calls = append(m.calls, FindCall{Name: name, Constraint: constraint})
	m.mu.Unlock()
	if m.FindFunc == nil {
		return registryclient.Instance{}, registryclient.ErrNotFound
	}
	return m.FindFunc(ctx, name, constraint)
}

// FindCalls returns a copy of the recorded Find calls.
func (m *ResolverMock) FindCalls() []FindCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]FindCall, len(m.calls))
	copy(out, m.calls)
	return out
}
