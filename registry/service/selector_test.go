package service

import (
	"testing"
	"time"

	"microreg/apierror"
	"microreg/registry/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomSelector_Empty(t *testing.T) {
	_, err := NewRandomSelector().Select(nil)
	require.Error(t, err)
	assert.True(t, apierror.IsEntityNotFoundError(err))
}

func TestRandomSelector_UsesSource(t *testing.T) {
	t0 := time.Unix(1000, 0)
	candidates := []domain.Record{
		testRecord("catalog", "1.0.0", 8080, t0),
		testRecord("catalog", "1.0.0", 8081, t0),
		testRecord("catalog", "1.0.0", 8082, t0),
	}
	var gotN int
	s := NewRandomSelectorWithSource(func(n int) int {
		gotN = n
		return 2
	})

	r, err := s.Select(candidates)
	require.NoError(t, err)
	assert.Equal(t, 3, gotN)
	assert.Equal(t, 8082, r.Port)
}

func TestRandomSelector_Distribution(t *testing.T) {
	t0 := time.Unix(1000, 0)
	candidates := []domain.Record{
		testRecord("catalog", "1.0.0", 8080, t0),
		testRecord("catalog", "1.0.0", 8081, t0),
		testRecord("catalog", "1.0.0", 8082, t0),
	}
	s := NewRandomSelector()

	const draws = 3000
	counts := make(map[int]int)
	for range draws {
		r, err := s.Select(candidates)
		require.NoError(t, err)
		counts[r.Port]++
	}

	require.Len(t, counts, len(candidates))
	for port, n := range counts {
		// expected 1000 each; bounds are far outside any plausible deviation
		assert.InDelta(t, draws/len(candidates), n, 250, "port %d", port)
	}
}

func TestNewRandomSelectorWithSource_NilPanics(t *testing.T) {
	assert.Panics(t, func() { NewRandomSelectorWithSource(nil) })
}
