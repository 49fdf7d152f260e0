package data

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoaderEmbeddedFallback(t *testing.T) {
	// Initialize loader with NO external directories.
	l := NewLoader(nil)

	set, err := l.LoadSet()
	require.NoError(t, err, "embedded defaults should always load")

	assert.Len(t, set.Factions, 10)
	assert.NotEmpty(t, set.Spaces)
	assert.NotEmpty(t, set.SeaZones)
	assert.NotEmpty(t, set.Rulers)
	assert.NotEmpty(t, set.Cards)
	assert.NotEmpty(t, set.Actions)
}

func TestLoaderSetupForces(t *testing.T) {
	l := NewLoader(nil)
	set, err := l.LoadSet()
	require.NoError(t, err)

	var istanbul *SpaceRecord
	for i := range set.Spaces {
		if set.Spaces[i].Name == "istanbul" {
			istanbul = &set.Spaces[i]
			break
		}
	}
	require.NotNil(t, istanbul, "istanbul must be part of the default map")

	assert.Equal(t, "ottoman", istanbul.HomePower)
	assert.True(t, istanbul.Port)
	require.NotEmpty(t, istanbul.Formations)
	assert.Equal(t, "ottoman", istanbul.Formations[0].Power)
	assert.Zero(t, istanbul.Formations[0].Mercenaries, "the cavalry power fields no mercenaries")

	sp := istanbul.ToGame()
	assert.Equal(t, "ottoman", sp.Controller())
}

func TestLoaderSuccessionRulersPresent(t *testing.T) {
	l := NewLoader(nil)
	set, err := l.LoadSet()
	require.NoError(t, err)

	byName := make(map[string]RulerRecord)
	for _, r := range set.Rulers {
		byName[r.Name] = r
	}

	for _, name := range []string{"henry_viii", "edward_vi", "mary_i", "elizabeth_i", "suleiman", "selim_ii", "charles_v", "philip_ii"} {
		_, ok := byName[name]
		assert.True(t, ok, "ruler %s missing from defaults", name)
	}
	assert.True(t, byName["henry_viii"].Current)
	assert.False(t, byName["edward_vi"].Current)
}

func TestLoadActions(t *testing.T) {
	l := NewLoader(nil)
	defs, err := l.LoadActions()
	require.NoError(t, err)
	require.NotEmpty(t, defs)

	ids := make(map[string]bool)
	for _, d := range defs {
		ids[d.ID] = true
	}
	assert.True(t, ids["raise_regulars"])
	assert.True(t, ids["piracy"])
}
