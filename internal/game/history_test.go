package game

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryMonotonicIDs(t *testing.T) {
	e := newTestEnv(t, nil)

	for i := 1; i <= 3; i++ {
		entry, err := e.history.Record(EntryAddVP, VPPayload{Faction: "france", Delta: 1}, "gm", "add_vp", true, nil)
		require.NoError(t, err)
		assert.Equal(t, i, entry.ID)
	}

	t.Run("counter survives reopen", func(t *testing.T) {
		reopened, err := NewHistoryManager(e.store)
		require.NoError(t, err)
		entry, err := reopened.Record(EntryAddVP, nil, "gm", "add_vp", true, nil)
		require.NoError(t, err)
		assert.Equal(t, 4, entry.ID)
	})
}

func TestHistoryRecordsFailures(t *testing.T) {
	e := newTestEnv(t, nil)

	entry, err := e.history.Record(EntryExcommunicate, RulerPayload{Ruler: "suleiman"},
		"gm", "excommunicate", false, errors.New("ruler suleiman cannot be excommunicated"))
	require.NoError(t, err)
	assert.False(t, entry.Success)
	assert.Contains(t, entry.Error, "cannot be excommunicated")

	// The audit trail keeps failures; lookups still find them.
	got, err := e.history.Get(entry.ID)
	require.NoError(t, err)
	assert.False(t, got.Success)

	// Last skips failures; they are not undo candidates.
	_, err = e.history.Last()
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestHistoryGetAndLast(t *testing.T) {
	e := newTestEnv(t, nil)

	t.Run("empty log", func(t *testing.T) {
		_, err := e.history.Get(1)
		assert.ErrorIs(t, err, ErrNotFound)
		_, err = e.history.Last()
		assert.ErrorIs(t, err, ErrNotFound)
	})

	first, err := e.history.Record(EntryAddVP, nil, "gm", "add_vp", true, nil)
	require.NoError(t, err)
	second, err := e.history.Record(EntryAddVP, nil, "gm", "add_vp", true, nil)
	require.NoError(t, err)

	last, err := e.history.Last()
	require.NoError(t, err)
	assert.Equal(t, second.ID, last.ID)

	t.Run("undone entries drop out", func(t *testing.T) {
		require.NoError(t, e.history.MarkUndone(second.ID))

		_, err := e.history.Get(second.ID)
		assert.ErrorIs(t, err, ErrNotFound)

		last, err := e.history.Last()
		require.NoError(t, err)
		assert.Equal(t, first.ID, last.ID)
	})

	t.Run("list keeps everything", func(t *testing.T) {
		entries, err := e.history.List()
		require.NoError(t, err)
		assert.Len(t, entries, 2)
		assert.True(t, entries[1].Undone)
	})
}
