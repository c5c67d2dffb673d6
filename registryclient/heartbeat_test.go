package registryclient

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/go-kit/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingRegistrar records the order of calls it receives.
type recordingRegistrar struct {
	mu            sync.Mutex
	calls         []string
	registerErr   error
	unregisterErr error
}

func (r *recordingRegistrar) Register(ctx context.Context, reg Registration) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, "register")
	return reg.Name, r.registerErr
}

func (r *recordingRegistrar) Unregister(ctx context.Context, reg Registration) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, "unregister")
	return reg.Name, r.unregisterErr
}

func (r *recordingRegistrar) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

func (r *recordingRegistrar) count(call string) int {
	n := 0
	for _, c := range r.snapshot() {
		if c == call {
			n++
		}
	}
	return n
}

var testRegistration = Registration{Name: "catalog", Version: "1.0.0", Port: 8080}

func TestNewHeartbeat_Panics(t *testing.T) {
	assert.Panics(t, func() { NewHeartbeat(nil, testRegistration, time.Second, log.NewNopLogger()) })
	assert.Panics(t, func() { NewHeartbeat(&recordingRegistrar{}, testRegistration, time.Second, nil) })
}

func TestNewHeartbeat_DefaultInterval(t *testing.T) {
	h := NewHeartbeat(&recordingRegistrar{}, testRegistration, 0, log.NewNopLogger())
	assert.Equal(t, DefaultHeartbeatInterval, h.interval)
}

func TestHeartbeat_RegistersImmediately(t *testing.T) {
	registrar := &recordingRegistrar{}
	h := NewHeartbeat(registrar, testRegistration, time.Hour, log.NewNopLogger())

	h.Start(context.Background())
	assert.Equal(t, []string{"register"}, registrar.snapshot())

	require.NoError(t, h.Stop(context.Background()))
	assert.Equal(t, []string{"register", "unregister"}, registrar.snapshot())
}

func TestHeartbeat_RefreshesOnInterval(t *testing.T) {
	registrar := &recordingRegistrar{}
	h := NewHeartbeat(registrar, testRegistration, 10*time.Millisecond, log.NewNopLogger())

	h.Start(context.Background())
	require.Eventually(t, func() bool {
		return registrar.count("register") >= 3
	}, 2*time.Second, 5*time.Millisecond)
	require.NoError(t, h.Stop(context.Background()))
}

func TestHeartbeat_FailuresAreNotFatal(t *testing.T) {
	registrar := &recordingRegistrar{registerErr: ErrRegistryUnavailable}
	h := NewHeartbeat(registrar, testRegistration, 10*time.Millisecond, log.NewNopLogger())

	h.Start(context.Background())
	require.Eventually(t, func() bool {
		return registrar.count("register") >= 3
	}, 2*time.Second, 5*time.Millisecond)
	require.NoError(t, h.Stop(context.Background()))
}

func TestHeartbeat_StopOrdering(t *testing.T) {
	registrar := &recordingRegistrar{}
	h := NewHeartbeat(registrar, testRegistration, time.Millisecond, log.NewNopLogger())

	h.Start(context.Background())
	require.Eventually(t, func() bool {
		return registrar.count("register") >= 5
	}, 2*time.Second, time.Millisecond)

	require.NoError(t, h.Stop(context.Background()))
	calls := registrar.snapshot()
	require.NotEmpty(t, calls)
	assert.Equal(t, "unregister", calls[len(calls)-1])

	// no late beat after the final unregister
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, calls, registrar.snapshot())
	assert.Equal(t, 1, registrar.count("unregister"))
}

func TestHeartbeat_StopIsOnce(t *testing.T) {
	registrar := &recordingRegistrar{unregisterErr: errors.New("connection refused")}
	h := NewHeartbeat(registrar, testRegistration, time.Hour, log.NewNopLogger())
	h.Start(context.Background())

	err := h.Stop(context.Background())
	require.Error(t, err)
	assert.Equal(t, err, h.Stop(context.Background()))
	assert.Equal(t, 1, registrar.count("unregister"))
}

func TestHeartbeat_StopWithoutStart(t *testing.T) {
	registrar := &recordingRegistrar{}
	h := NewHeartbeat(registrar, testRegistration, time.Hour, log.NewNopLogger())

	require.NoError(t, h.Stop(context.Background()))
	h.Start(context.Background())
	assert.Equal(t, []string{"unregister"}, registrar.snapshot())
}

func TestHeartbeat_StartTwice(t *testing.T) {
	registrar := &recordingRegistrar{}
	h := NewHeartbeat(registrar, testRegistration, time.Hour, log.NewNopLogger())

	h.Start(context.Background())
	h.Start(context.Background())
	assert.Equal(t, 1, registrar.count("register"))
	require.NoError(t, h.Stop(context.Background()))
}

func TestHeartbeat_ParentContextCancelStopsTicker(t *testing.T) {
	registrar := &recordingRegistrar{}
	h := NewHeartbeat(registrar, testRegistration, time.Millisecond, log.NewNopLogger())

	ctx, cancel := context.WithCancel(context.Background())
	h.Start(ctx)
	cancel()

	require.NoError(t, h.Stop(context.Background()))
	assert.Equal(t, 1, registrar.count("unregister"))
}
