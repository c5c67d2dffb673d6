package mock

import (
	"sync"

	"microreg/registry/domain"
	"microreg/registry/interfaces"
)

var _ interfaces.Registry = &RegistryMock{}

// RegistryMock is a function-field stub of interfaces.Registry. Unset funcs return zero values.
type RegistryMock struct {
	RegisterFunc   func(name, version, address string, port int) (domain.Key, error)
	UnregisterFunc func(name, version, address string, port int) domain.Key
	GetFunc        func(name, constraint string) (domain.Record, error)
	ListFunc       func() ([]domain.Record, error)

	mu    sync.Mutex
	calls map[string]int
}

func (m *RegistryMock) record(method string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.calls == nil {
		m.calls = make(map[string]int)
	}
	m.calls[method]++
}

// Calls returns how many times method was invoked.
func (m *RegistryMock) Calls(method string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[method]
}

func (m *RegistryMock) Register(name, version, address string, port int) (domain.Key, error) {
	m.record("Register")
	if m.RegisterFunc == nil {
		return domain.Key{}, nil
	}
	return m.RegisterFunc(name, version, address, port)
}

func (m *RegistryMock) Unregister(name, version, address string, port int) domain.Key {
	m.record("Unregister")
	if m.UnregisterFunc == nil {
		return domain.Key{}
	}
	return m.UnregisterFunc(name, version, address, port)
}

func (m *RegistryMock) Get(name, constraint string) (domain.Record, error) {
	m.record("Get")
	if m.GetFunc == nil {
		return domain.Record{}, nil
	}
	return m.GetFunc(name, constraint)
}

func (m *RegistryMock) List() ([]domain.Record, error) {
	m.record("List")
	if m.ListFunc == nil {
		return nil, nil
	}
	return m.ListFunc()
}
