package session

import (
	"testing"

	"cod-fraud-system/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeenIPSet(t *testing.T) {
	set := NewSeenIPSet()

	ok, err := set.Contains("1.1.1.1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, set.Add("1.1.1.1"))
	require.NoError(t, set.Add("1.1.1.1"))

	ok, err = set.Contains("1.1.1.1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 1, set.Len())
}

func TestStore_CreateAndGet(t *testing.T) {
	store := NewStore()
	queue := []models.Order{{OrderID: 1}, {OrderID: 2}}

	s, err := store.Create("abc", queue, NewSeenIPSet())
	require.NoError(t, err)

	got, err := store.Get("abc")
	require.NoError(t, err)
	assert.Same(t, s, got)

	_, err = store.Create("abc", nil, NewSeenIPSet())
	assert.ErrorIs(t, err, ErrSessionExists)

	_, err = store.Get("missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.Equal(t, 1, store.Count())
}

func TestSession_QueueAndRecord(t *testing.T) {
	store := NewStore()
	s, err := store.Create("q", []models.Order{{OrderID: 1}, {OrderID: 2}}, NewSeenIPSet())
	require.NoError(t, err)

	first, ok := s.Next()
	require.True(t, ok)
	assert.Equal(t, int64(1), first.OrderID)
	s.Record(&models.Verdict{Flagged: true})

	second, ok := s.Next()
	require.True(t, ok)
	assert.Equal(t, int64(2), second.OrderID)
	s.Record(&models.Verdict{Flagged: false})

	_, ok = s.Next()
	assert.False(t, ok)

	snap := s.Snapshot()
	assert.Equal(t, "q", snap.SessionID)
	assert.Equal(t, 0, snap.Pending)
	assert.Equal(t, 2, snap.Processed)
	assert.Equal(t, 1, snap.FlaggedCount)
}
