package mock

import (
	"context"
	"sync"

	"microreg/catalog/domain"
	"microreg/catalog/interfaces"
)

var _ interfaces.ItemStore = &ItemStoreMock{}

// ItemStoreMock is a function-field stub of interfaces.ItemStore. Unset funcs return zero values.
type ItemStoreMock struct {
	ListFunc   func(ctx context.Context) ([]domain.Item, error)
	GetFunc    func(ctx context.Context, id string) (domain.Item, error)
	CreateFunc func(ctx context.Context, item domain.Item) error
	UpdateFunc func(ctx context.Context, item domain.Item) error
	DeleteFunc func(ctx context.Context, id string) error

	mu    sync.Mutex
	calls map[string]int
}

func (m *ItemStoreMock) record(method string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.calls == nil {
		m.calls = make(map[string]int)
	}
	m.calls[method]++
}

// Calls returns how many times method was invoked.
func (m *ItemStoreMock) Calls(method string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[method]
}

func (m *ItemStoreMock) List(ctx context.Context) ([]domain.Item, error) {
	m.record("List")
	if m.ListFunc == nil {
		return nil, nil
	}
	return m.ListFunc(ctx)
}

func (m *ItemStoreMock) Get(ctx context.Context, id string) (domain.Item, error) {
	m.record("Get")
	if m.GetFunc == nil {
		return domain.Item{}, nil
	}
	return m.GetFunc(ctx, id)
}

func (m *ItemStoreMock) Create(ctx context.Context, item domain.Item) error {
	m.record("Create")
	if m.CreateFunc == nil {
		return nil
	}
	return m.CreateFunc(ctx, item)
}

func (m *ItemStoreMock) Update(ctx context.Context, item domain.Item) error {
	m.record("Update")
	if m.UpdateFunc == nil {
		return nil
	}
	return m.UpdateFunc(ctx, item)
}

func (m *ItemStoreMock) Delete(ctx context.Context, id string) error {
	m.record("Delete")
	if m.DeleteFunc == nil {
		return nil
	}
	return m.DeleteFunc(ctx, id)
}
