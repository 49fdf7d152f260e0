package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddSquadronPortAndZone(t *testing.T) {
	e := newTestEnv(t, nil)

	require.NoError(t, e.naval.AddSquadron("istanbul", "ottoman", 2, nil))
	sp := e.mustSpace(t, "istanbul")
	require.Len(t, sp.Squadrons, 1)
	assert.Equal(t, 2, sp.Squadrons[0].Corsairs, "the corsair power counts corsairs, not squadrons")
	assert.Zero(t, sp.Squadrons[0].Squadrons)

	require.NoError(t, e.naval.AddSquadron("aegean_sea", "france", 3, nil))
	z, err := e.seazones.Get("aegean_sea")
	require.NoError(t, err)
	require.Len(t, z.Squadrons, 1)
	assert.Equal(t, 3, z.Squadrons[0].Squadrons)

	t.Run("inland space rejected", func(t *testing.T) {
		err := e.naval.AddSquadron("paris", "france", 1, nil)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("unknown power", func(t *testing.T) {
		err := e.naval.AddSquadron("istanbul", "burgundy", 1, nil)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestSquadronLoans(t *testing.T) {
	e := newTestEnv(t, nil)

	t.Run("lender must be allied", func(t *testing.T) {
		err := e.naval.AddSquadron("aegean_sea", "france", 1, []Loan{{Power: "venice", Count: 2}})
		assert.ErrorIs(t, err, ErrIneligible)
	})

	require.NoError(t, e.diplomacy.DeclareAlliance("france", "venice"))
	require.NoError(t, e.naval.AddSquadron("aegean_sea", "france", 1, []Loan{{Power: "venice", Count: 2}}))

	// A second loan from the same lender merges.
	require.NoError(t, e.naval.AddSquadron("aegean_sea", "france", 0, []Loan{{Power: "venice", Count: 1}}))

	z, err := e.seazones.Get("aegean_sea")
	require.NoError(t, err)
	require.Len(t, z.Squadrons, 1)
	require.Len(t, z.Squadrons[0].Loans, 1)
	assert.Equal(t, 3, z.Squadrons[0].Loans[0].Count)

	t.Run("over-repayment", func(t *testing.T) {
		err := e.naval.RemoveSquadron("aegean_sea", "france", 0, []Loan{{Power: "venice", Count: 5}})
		assert.ErrorIs(t, err, ErrExhausted)
	})

	t.Run("repaid loan is dropped", func(t *testing.T) {
		require.NoError(t, e.naval.RemoveSquadron("aegean_sea", "france", 0, []Loan{{Power: "venice", Count: 3}}))
		z, err := e.seazones.Get("aegean_sea")
		require.NoError(t, err)
		require.Len(t, z.Squadrons, 1)
		assert.Empty(t, z.Squadrons[0].Loans)
	})

	t.Run("empty entry is deleted", func(t *testing.T) {
		require.NoError(t, e.naval.RemoveSquadron("aegean_sea", "france", 1, nil))
		z, err := e.seazones.Get("aegean_sea")
		require.NoError(t, err)
		assert.Empty(t, z.Squadrons)
	})
}

func TestRemoveSquadronErrors(t *testing.T) {
	e := newTestEnv(t, nil)

	err := e.naval.RemoveSquadron("aegean_sea", "france", 1, nil)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, e.naval.AddSquadron("aegean_sea", "france", 1, nil))
	err = e.naval.RemoveSquadron("aegean_sea", "france", 2, nil)
	assert.ErrorIs(t, err, ErrExhausted)
}

func TestSetPiracyToken(t *testing.T) {
	e := newTestEnv(t, nil)

	t.Run("needs corsairs present", func(t *testing.T) {
		err := e.naval.SetPiracyToken("aegean_sea", true)
		assert.ErrorIs(t, err, ErrIneligible)
	})

	require.NoError(t, e.naval.AddSquadron("aegean_sea", "ottoman", 1, nil))
	require.NoError(t, e.naval.SetPiracyToken("aegean_sea", true))

	z, err := e.seazones.Get("aegean_sea")
	require.NoError(t, err)
	assert.True(t, z.PiracyToken)

	t.Run("already set", func(t *testing.T) {
		err := e.naval.SetPiracyToken("aegean_sea", true)
		assert.ErrorIs(t, err, ErrConflict)
	})

	t.Run("clearing needs no corsairs", func(t *testing.T) {
		require.NoError(t, e.naval.RemoveSquadron("aegean_sea", "ottoman", 1, nil))
		require.NoError(t, e.naval.SetPiracyToken("aegean_sea", false))
	})
}
