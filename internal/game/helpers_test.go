package game

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mikyjpeg/asynchis/internal/rules"
	"github.com/mikyjpeg/asynchis/internal/store"
)

// testEnv wires the full manager graph over a throwaway game store with a
// small seeded board.
type testEnv struct {
	store      *store.Store
	factions   *FactionManager
	spaces     *SpaceManager
	seazones   *SeaZoneManager
	leaders    *LeaderManager
	rulers     *RulerManager
	formations *FormationManager
	naval      *NavalManager
	diplomacy  *DiplomacyManager
	cards      *CardManager
	actions    *ActionsManager
	history    *HistoryManager
	undo       *UndoManager
}

func newTestEnv(t *testing.T, defs []ActionDef) *testEnv {
	t.Helper()

	games := store.NewGameManager(t.TempDir())
	st, err := games.Create("test")
	require.NoError(t, err)

	eval, err := rules.NewEvaluator()
	require.NoError(t, err)

	e := &testEnv{store: st}
	e.factions = NewFactionManager(st)
	e.spaces = NewSpaceManager(st)
	e.seazones = NewSeaZoneManager(st)
	e.leaders = NewLeaderManager(st)
	e.rulers = NewRulerManager(st, e.factions, e.spaces)
	e.formations = NewFormationManager(e.spaces, e.factions, e.leaders)
	e.naval = NewNavalManager(e.spaces, e.seazones, e.factions)
	e.diplomacy = NewDiplomacyManager(e.factions)
	e.cards = NewCardManager(st, e.factions, e.rulers, eval, rand.New(rand.NewSource(7)))
	e.actions = NewActionsManager(defs, e.factions, e.cards, eval)

	e.history, err = NewHistoryManager(st)
	require.NoError(t, err)
	e.undo = NewUndoManager(e.history, e.factions, e.spaces, e.seazones,
		e.leaders, e.rulers, e.formations, e.naval, e.diplomacy, e.cards, e.actions)

	e.seed(t)
	return e
}

func (e *testEnv) seed(t *testing.T) {
	t.Helper()

	factions := []*Faction{
		{Name: "ottoman", Controller: "alice", Active: true, CardsPerTurn: 5},
		{Name: "hapsburg", Controller: "bob", Active: true, CardsPerTurn: 5},
		{Name: "england", Controller: "carol", Active: true, CardsPerTurn: 4},
		{Name: "france", Controller: "dave", Active: true, CardsPerTurn: 4},
		{Name: "papacy", Controller: "erin", Active: true, CardsPerTurn: 4},
		{Name: "protestant", Controller: "frank", Active: true, CardsPerTurn: 4},
		{Name: "genoa"},
		{Name: "hungary"},
		{Name: "scotland"},
		{Name: "venice"},
	}
	for _, f := range factions {
		require.NoError(t, e.factions.Save(f))
	}

	spaces := []*Space{
		{Name: "istanbul", Type: SpaceCapital, HomePower: "ottoman", Religion: ReligionCatholic, Port: true},
		{Name: "paris", Type: SpaceCapital, HomePower: "france", Religion: ReligionCatholic},
		{Name: "london", Type: SpaceCapital, HomePower: "england", Religion: ReligionCatholic, Port: true},
		{Name: "wittenberg", Type: SpaceKey, HomePower: "protestant", Religion: ReligionProtestant},
		{Name: "rome", Type: SpaceCapital, HomePower: "papacy", Religion: ReligionCatholic},
	}
	for _, sp := range spaces {
		require.NoError(t, e.spaces.Save(sp))
	}

	require.NoError(t, e.seazones.Save(&SeaZone{Name: "aegean_sea", Ports: []string{"istanbul"}}))

	leaders := []*Leader{
		{Name: "ibrahim_pasha", Faction: "ottoman", Type: LeaderArmy, Active: true},
		{Name: "barbarossa", Faction: "ottoman", Type: LeaderNavy, Active: true},
		{Name: "montmorency", Faction: "france", Type: LeaderArmy, Active: true},
	}
	for _, l := range leaders {
		require.NoError(t, e.leaders.Save(l))
	}

	rulers := []*Ruler{
		{Name: "suleiman", Faction: "ottoman", IsCurrent: true},
		{Name: "henry_viii", Faction: "england", IsCurrent: true},
		{Name: "edward_vi", Faction: "england"},
		{Name: "mary_i", Faction: "england"},
		{Name: "francis_i", Faction: "france", IsCurrent: true, CardBonus: 1},
		{Name: "henry_ii", Faction: "france"},
		{Name: "leo_x", Faction: "papacy", IsCurrent: true},
	}
	for _, r := range rulers {
		require.NoError(t, e.rulers.Save(r))
	}
}

func (e *testEnv) saveCards(t *testing.T, cards ...*Card) {
	t.Helper()
	for _, c := range cards {
		require.NoError(t, e.store.Write(store.KindCard, c.ID, c))
	}
}

func (e *testEnv) mustFaction(t *testing.T, name string) *Faction {
	t.Helper()
	f, err := e.factions.Get(name)
	require.NoError(t, err)
	return f
}

func (e *testEnv) mustSpace(t *testing.T, name string) *Space {
	t.Helper()
	sp, err := e.spaces.Get(name)
	require.NoError(t, err)
	return sp
}
