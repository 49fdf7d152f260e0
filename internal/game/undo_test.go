package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUndoAddVP(t *testing.T) {
	e := newTestEnv(t, nil)

	_, err := e.factions.AddVP("france", 3)
	require.NoError(t, err)
	entry, err := e.history.Record(EntryAddVP, VPPayload{Faction: "france", Delta: 3}, "gm", "add_vp", true, nil)
	require.NoError(t, err)

	require.NoError(t, e.undo.Undo(entry.ID))

	f := e.mustFaction(t, "france")
	assert.Zero(t, f.VictoryPoints)

	t.Run("undo twice fails", func(t *testing.T) {
		err := e.undo.Undo(entry.ID)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestUndoFormationRoundTrip(t *testing.T) {
	e := newTestEnv(t, nil)

	_, err := e.formations.Add("istanbul", "ottoman", 4, 2, []string{"ibrahim_pasha"})
	require.NoError(t, err)
	entry, err := e.history.Record(EntryAddFormation,
		FormationPayload{Space: "istanbul", Power: "ottoman", Regulars: 4, Secondary: 2, Leaders: []string{"ibrahim_pasha"}},
		"alice", "add_formation", true, nil)
	require.NoError(t, err)

	require.NoError(t, e.undo.Undo(entry.ID))
	sp := e.mustSpace(t, "istanbul")
	assert.Empty(t, sp.Formations)
}

func TestUndoCreditsSpentCP(t *testing.T) {
	e := newTestEnv(t, testActionDefs())
	require.NoError(t, e.cards.SaveStatus(&Status{AvailableCP: 5}))

	_, err := e.actions.Spend("raise_regulars", "france")
	require.NoError(t, err)
	_, err = e.formations.Add("paris", "france", 1, 0, nil)
	require.NoError(t, err)
	entry, err := e.history.Record(EntryAddFormation,
		FormationPayload{Space: "paris", Power: "france", Regulars: 1, CP: 2},
		"dave", "add_formation", true, nil)
	require.NoError(t, err)

	require.NoError(t, e.undo.Undo(entry.ID))

	st, err := e.cards.Status()
	require.NoError(t, err)
	assert.Equal(t, 5, st.AvailableCP, "the spent CP comes back with the undo")
}

func TestUndoDeclareWarRestoresAlliance(t *testing.T) {
	e := newTestEnv(t, nil)

	require.NoError(t, e.diplomacy.DeclareAlliance("france", "ottoman"))
	require.NoError(t, e.diplomacy.DeclareWar("france", "ottoman"))
	entry, err := e.history.Record(EntryDeclareWar,
		DiplomacyPayload{Power1: "france", Power2: "ottoman", DissolvedAlliance: true},
		"dave", "declare_war", true, nil)
	require.NoError(t, err)

	require.NoError(t, e.undo.Undo(entry.ID))

	f := e.mustFaction(t, "france")
	assert.False(t, f.IsAtWarWith("ottoman"))
	assert.True(t, f.IsAlliedWith("ottoman"), "the alliance the war dissolved comes back")
}

func TestUndoLockedAllianceBypassesRules(t *testing.T) {
	e := newTestEnv(t, nil)

	// Hungary's alliance cannot be dissolved by the regular path, but
	// undoing its formation must still work.
	require.NoError(t, e.diplomacy.DeclareAlliance("hungary", "hapsburg"))
	entry, err := e.history.Record(EntryDeclareAlliance,
		DiplomacyPayload{Power1: "hungary", Power2: "hapsburg"}, "bob", "declare_alliance", true, nil)
	require.NoError(t, err)

	require.NoError(t, e.undo.Undo(entry.ID))
	h := e.mustFaction(t, "hungary")
	assert.Empty(t, h.Allies)
}

func TestUndoShuffleRestoresSnapshot(t *testing.T) {
	e := newTestEnv(t, nil)
	seedDeck(t, e)

	before, err := e.cards.ShuffleForTurn(0)
	require.NoError(t, err)
	snapshot := *before

	_, err = e.cards.ShuffleForTurn(1)
	require.NoError(t, err)
	entry, err := e.history.Record(EntryShuffleDeck,
		ShufflePayload{Turn: 1, Prev: snapshot}, "gm", "shuffle", true, nil)
	require.NoError(t, err)

	require.NoError(t, e.undo.Undo(entry.ID))
	st, err := e.cards.Status()
	require.NoError(t, err)
	assert.Equal(t, snapshot.Deck, st.Deck)
	assert.Zero(t, st.Turn)
}

func TestUndoDrawCards(t *testing.T) {
	e := newTestEnv(t, nil)
	seedDeck(t, e)
	_, err := e.cards.ShuffleForTurn(0)
	require.NoError(t, err)

	drawn, err := e.cards.Draw("england", 2)
	require.NoError(t, err)
	entry, err := e.history.Record(EntryDrawCards,
		DrawPayload{Faction: "england", Cards: drawn}, "carol", "draw_cards", true, nil)
	require.NoError(t, err)

	require.NoError(t, e.undo.Undo(entry.ID))

	f := e.mustFaction(t, "england")
	assert.Empty(t, f.Hand)
	st, err := e.cards.Status()
	require.NoError(t, err)
	assert.Equal(t, drawn, st.Deck[:2], "drawn cards return to the deck front in order")
}

func TestUndoFailedEntry(t *testing.T) {
	e := newTestEnv(t, nil)

	entry, err := e.history.Record(EntryExcommunicate, RulerPayload{Ruler: "suleiman"},
		"gm", "excommunicate", false, ErrIneligible)
	require.NoError(t, err)

	err = e.undo.Undo(entry.ID)
	assert.ErrorIs(t, err, ErrUndo)
}

func TestVerifyCoverage(t *testing.T) {
	e := newTestEnv(t, nil)

	require.NoError(t, e.undo.VerifyCoverage())

	_, err := e.history.Record(EntryType("teleport_army"), nil, "gm", "teleport_army", true, nil)
	require.NoError(t, err)

	err = e.undo.VerifyCoverage()
	assert.ErrorIs(t, err, ErrUndo)
	assert.Contains(t, err.Error(), "teleport_army")
}

func TestUndoLast(t *testing.T) {
	e := newTestEnv(t, nil)

	_, err := e.factions.AddVP("england", 1)
	require.NoError(t, err)
	_, err = e.history.Record(EntryAddVP, VPPayload{Faction: "england", Delta: 1}, "gm", "add_vp", true, nil)
	require.NoError(t, err)

	_, err = e.factions.AddVP("england", 2)
	require.NoError(t, err)
	second, err := e.history.Record(EntryAddVP, VPPayload{Faction: "england", Delta: 2}, "gm", "add_vp", true, nil)
	require.NoError(t, err)

	id, err := e.undo.UndoLast()
	require.NoError(t, err)
	assert.Equal(t, second.ID, id)

	f := e.mustFaction(t, "england")
	assert.Equal(t, 1, f.VictoryPoints)

	// A second undo-last steps back to the first entry.
	_, err = e.undo.UndoLast()
	require.NoError(t, err)
	f = e.mustFaction(t, "england")
	assert.Zero(t, f.VictoryPoints)
}
