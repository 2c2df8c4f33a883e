package notify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShow_ReplacesExisting(t *testing.T) {
	s := NewStore(time.Minute)

	first := s.Show("v1", Info, "Login functionality will be implemented soon!")
	second := s.Show("v1", Error, "Please enter a search term")

	got, ok := s.Current("v1")
	require.True(t, ok)
	assert.Equal(t, second, got)
	assert.NotEqual(t, first.ID, got.ID)
}

func TestCurrent_PerVisitor(t *testing.T) {
	s := NewStore(time.Minute)
	s.Show("v1", Success, "one")

	_, ok := s.Current("v2")
	assert.False(t, ok)
}

func TestCurrent_Expires(t *testing.T) {
	s := NewStore(5 * time.Second)
	clock := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return clock }

	a := s.Show("v1", Success, "Thank you for registering! We will contact you soon.")
	assert.Equal(t, clock.Add(5*time.Second), a.ExpiresAt)

	clock = clock.Add(4 * time.Second)
	_, ok := s.Current("v1")
	assert.True(t, ok)

	clock = clock.Add(time.Second)
	_, ok = s.Current("v1")
	assert.False(t, ok)
}

func TestDismiss(t *testing.T) {
	s := NewStore(time.Minute)
	old := s.Show("v1", Info, "old")
	cur := s.Show("v1", Info, "new")

	assert.False(t, s.Dismiss("v1", old.ID), "stale id must not clear the newer alert")
	assert.True(t, s.Dismiss("v1", cur.ID))

	_, ok := s.Current("v1")
	assert.False(t, ok)
	assert.False(t, s.Dismiss("v1", cur.ID))
}

func TestShow_AnonymousNotStored(t *testing.T) {
	s := NewStore(0)
	assert.Equal(t, DefaultTTL, s.TTL())

	a := s.Show("", Error, "x")
	assert.NotEmpty(t, a.ID)
	assert.Equal(t, 0, s.cache.ItemCount())
}
