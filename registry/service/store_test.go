package service

import (
	"slices"
	"testing"
	"time"

	"microreg/registry/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRecord(name, version string, port int, lastSeen time.Time) domain.Record {
	return domain.Record{Name: name, Version: version, Address: "127.0.0.1", Port: port, LastSeen: lastSeen}
}

func TestEntryStore_Upsert(t *testing.T) {
	s := newEntryStore()
	t0 := time.Unix(1000, 0)
	r := testRecord("catalog", "1.0.0", 8080, t0)

	assert.True(t, s.upsert(r.Key(), r))
	assert.Equal(t, 1, s.len())

	r.LastSeen = t0.Add(time.Second)
	assert.False(t, s.upsert(r.Key(), r))
	assert.Equal(t, 1, s.len())

	all := slices.Collect(s.all())
	require.Len(t, all, 1)
	assert.Equal(t, t0.Add(time.Second), all[0].LastSeen)
}

func TestEntryStore_Remove(t *testing.T) {
	s := newEntryStore()
	r := testRecord("catalog", "1.0.0", 8080, time.Unix(1000, 0))
	s.upsert(r.Key(), r)

	assert.True(t, s.remove(r.Key()))
	assert.False(t, s.remove(r.Key()))
	assert.Equal(t, 0, s.len())
}

func TestEntryStore_KeysDoNotCollide(t *testing.T) {
	s := newEntryStore()
	// concatenated these would both read "ab1.0.01.2.3.480"
	a := domain.Record{Name: "ab", Version: "1.0.0", Address: "1.2.3.4", Port: 80}
	b := domain.Record{Name: "a", Version: "b1.0.0", Address: "1.2.3.4", Port: 80}

	assert.True(t, s.upsert(a.Key(), a))
	assert.True(t, s.upsert(b.Key(), b))
	assert.Equal(t, 2, s.len())
}

func TestEntryStore_Reset(t *testing.T) {
	s := newEntryStore()
	for port := 8080; port < 8085; port++ {
		r := testRecord("catalog", "1.0.0", port, time.Unix(1000, 0))
		s.upsert(r.Key(), r)
	}
	s.reset()
	assert.Equal(t, 0, s.len())
	assert.Empty(t, slices.Collect(s.all()))
}
