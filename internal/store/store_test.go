package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeID(t *testing.T) {
	assert.Equal(t, "henry_viii", NormalizeID("Henry VIII"))
	assert.Equal(t, "istanbul", NormalizeID(" Istanbul "))
	assert.Equal(t, "bay_of_biscay", NormalizeID("Bay of Biscay"))
}

func TestGameManagerCreateLoadList(t *testing.T) {
	games := NewGameManager(t.TempDir())

	st, err := games.Create("Test Game")
	require.NoError(t, err)
	require.NotNil(t, st)

	// Every kind subtree is created up front.
	for _, kind := range kinds {
		info, err := os.Stat(filepath.Join(st.Root(), string(kind)))
		require.NoError(t, err, "missing subtree %s", kind)
		assert.True(t, info.IsDir())
	}

	t.Run("create twice fails", func(t *testing.T) {
		_, err := games.Create("test game")
		assert.Error(t, err)
	})

	t.Run("load existing", func(t *testing.T) {
		st2, err := games.Load("test_game")
		require.NoError(t, err)
		assert.Equal(t, st.Root(), st2.Root())
	})

	t.Run("load missing", func(t *testing.T) {
		_, err := games.Load("nope")
		assert.Error(t, err)
	})

	t.Run("list", func(t *testing.T) {
		ids, err := games.List()
		require.NoError(t, err)
		assert.Equal(t, []string{"test_game"}, ids)
	})
}

func TestStoreReadWrite(t *testing.T) {
	games := NewGameManager(t.TempDir())
	st, err := games.Create("g")
	require.NoError(t, err)

	type doc struct {
		Name          string `json:"name"`
		VictoryPoints int    `json:"victory_points"`
	}

	require.NoError(t, st.Write(KindFaction, "France", &doc{Name: "france", VictoryPoints: 3}))

	var got doc
	require.NoError(t, st.Read(KindFaction, "FRANCE", &got))
	assert.Equal(t, "france", got.Name)
	assert.Equal(t, 3, got.VictoryPoints)

	t.Run("missing document", func(t *testing.T) {
		err := st.Read(KindFaction, "england", &got)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("exists", func(t *testing.T) {
		assert.True(t, st.Exists(KindFaction, "france"))
		assert.False(t, st.Exists(KindFaction, "england"))
	})

	t.Run("list is sorted", func(t *testing.T) {
		require.NoError(t, st.Write(KindFaction, "austria", &doc{Name: "austria"}))
		ids, err := st.List(KindFaction)
		require.NoError(t, err)
		assert.Equal(t, []string{"austria", "france"}, ids)
	})

	t.Run("schema rejects corrupt document", func(t *testing.T) {
		// A faction without a name violates the schema.
		path := filepath.Join(st.Root(), string(KindFaction), "broken.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"victory_points": -1}`), 0644))
		err := st.Read(KindFaction, "broken", &got)
		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrNotFound)
	})
}
