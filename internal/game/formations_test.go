package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormationAddRemoveScenario(t *testing.T) {
	e := newTestEnv(t, nil)

	// Place 5 regulars and 3 cavalry for the Ottomans in Istanbul.
	sp, err := e.formations.Add("istanbul", "ottoman", 5, 3, nil)
	require.NoError(t, err)
	require.Len(t, sp.Formations, 1)
	assert.Equal(t, 5, sp.Formations[0].Regulars)
	assert.Equal(t, 3, sp.Formations[0].Cavalry)
	assert.Zero(t, sp.Formations[0].Mercenaries, "the cavalry power never fields mercenaries")

	// Adding again merges into the same entry.
	sp, err = e.formations.Add("istanbul", "ottoman", 2, 0, nil)
	require.NoError(t, err)
	require.Len(t, sp.Formations, 1)
	assert.Equal(t, 7, sp.Formations[0].Regulars)

	// Removing everything deletes the entry; no empty formation persists.
	sp, err = e.formations.Remove("istanbul", "ottoman", 7, 3, nil)
	require.NoError(t, err)
	assert.Empty(t, sp.Formations)

	persisted := e.mustSpace(t, "istanbul")
	assert.Empty(t, persisted.Formations)
}

func TestFormationSecondaryKindPerPower(t *testing.T) {
	e := newTestEnv(t, nil)

	sp, err := e.formations.Add("paris", "france", 2, 4, nil)
	require.NoError(t, err)
	assert.Equal(t, 4, sp.Formations[0].Mercenaries)
	assert.Zero(t, sp.Formations[0].Cavalry)
}

func TestFormationRemoveInsufficient(t *testing.T) {
	e := newTestEnv(t, nil)

	_, err := e.formations.Add("istanbul", "ottoman", 2, 1, nil)
	require.NoError(t, err)

	_, err = e.formations.Remove("istanbul", "ottoman", 3, 0, nil)
	assert.ErrorIs(t, err, ErrExhausted)

	// The failed removal changed nothing.
	sp := e.mustSpace(t, "istanbul")
	assert.Equal(t, 2, sp.Formations[0].Regulars)
}

func TestFormationRemoveUnknownPower(t *testing.T) {
	e := newTestEnv(t, nil)
	_, err := e.formations.Remove("istanbul", "france", 1, 0, nil)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFormationNegativeCounts(t *testing.T) {
	e := newTestEnv(t, nil)
	_, err := e.formations.Add("istanbul", "ottoman", -1, 0, nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = e.formations.Add("istanbul", "burgundy", 1, 0, nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestFormationLeaders(t *testing.T) {
	e := newTestEnv(t, nil)

	t.Run("attach and detach", func(t *testing.T) {
		sp, err := e.formations.Add("istanbul", "ottoman", 1, 0, []string{"ibrahim_pasha"})
		require.NoError(t, err)
		assert.Equal(t, []string{"ibrahim_pasha"}, sp.Formations[0].Leaders)

		sp, err = e.formations.Remove("istanbul", "ottoman", 0, 0, []string{"ibrahim_pasha"})
		require.NoError(t, err)
		assert.Empty(t, sp.Formations[0].Leaders)
	})

	t.Run("wrong faction", func(t *testing.T) {
		_, err := e.formations.Add("istanbul", "ottoman", 1, 0, []string{"montmorency"})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("naval leader needs a port", func(t *testing.T) {
		// Barbarossa may join at the Istanbul port but not inland.
		_, err := e.formations.Add("istanbul", "ottoman", 0, 0, []string{"barbarossa"})
		assert.NoError(t, err)

		_, err = e.formations.Add("paris", "ottoman", 1, 0, []string{"barbarossa"})
		assert.ErrorIs(t, err, ErrIneligible)
	})

	t.Run("captured leader is barred", func(t *testing.T) {
		require.NoError(t, e.factions.CaptureLeader("france", "ibrahim_pasha", e.leaders))
		_, err := e.formations.Add("istanbul", "ottoman", 1, 0, []string{"ibrahim_pasha"})
		assert.ErrorIs(t, err, ErrIneligible)
	})
}

func TestHasEnemyFormations(t *testing.T) {
	e := newTestEnv(t, nil)

	_, err := e.formations.Add("istanbul", "ottoman", 2, 0, nil)
	require.NoError(t, err)

	hostile, err := e.formations.HasEnemyFormations("istanbul", "france")
	require.NoError(t, err)
	assert.True(t, hostile)

	// Allies do not count as enemies.
	require.NoError(t, e.diplomacy.DeclareAlliance("france", "ottoman"))
	hostile, err = e.formations.HasEnemyFormations("istanbul", "france")
	require.NoError(t, err)
	assert.False(t, hostile)

	// A power's own formation is never an enemy.
	hostile, err = e.formations.HasEnemyFormations("istanbul", "ottoman")
	require.NoError(t, err)
	assert.False(t, hostile)
}
