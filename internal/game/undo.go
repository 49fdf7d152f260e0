package game

import (
	"encoding/json"
	"fmt"
	"sort"
)

// undoHandler builds and applies the inverse of one recorded entry.
type undoHandler func(m *UndoManager, entry *HistoryEntry) error

// UndoManager reverts logged commands. Dispatch is a static type to
// handler map; coverage over the recorded history is verified when a game
// session opens, so an entry type without a handler aborts startup
// instead of surfacing mid-game.
//
// Handlers reuse the manager operations where the inverse is itself a
// legal move, and write documents directly where a rule gate checks
// conditions that may have drifted since the original command. Undoing a
// move must never be blocked by eligibility rules the original already
// passed.
type UndoManager struct {
	history    *HistoryManager
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

	handlers map[EntryType]undoHandler
}

func NewUndoManager(
	history *HistoryManager,
	factions *FactionManager,
	spaces *SpaceManager,
	seazones *SeaZoneManager,
	leaders *LeaderManager,
	rulers *RulerManager,
	formations *FormationManager,
	naval *NavalManager,
	diplomacy *DiplomacyManager,
	cards *CardManager,
	actions *ActionsManager,
) *UndoManager {
	m := &UndoManager{
		history:    history,
		factions:   factions,
		spaces:     spaces,
		seazones:   seazones,
		leaders:    leaders,
		rulers:     rulers,
		formations: formations,
		naval:      naval,
		diplomacy:  diplomacy,
		cards:      cards,
		actions:    actions,
	}
	m.handlers = map[EntryType]undoHandler{
		EntryAddFormation:          undoAddFormation,
		EntryRemoveFormation:       undoRemoveFormation,
		EntryAddSquadron:           undoAddSquadron,
		EntryRemoveSquadron:        undoRemoveSquadron,
		EntrySetPiracyToken:        undoSetPiracyToken,
		EntryDeclareWar:            undoDeclareWar,
		EntryMakePeace:             undoMakePeace,
		EntryDeclareAlliance:       undoDeclareAlliance,
		EntryRemoveAlliance:        undoRemoveAlliance,
		EntryExcommunicate:         undoExcommunicate,
		EntryRemoveExcommunication: undoRemoveExcommunication,
		EntryChangeRuler:           undoChangeRuler,
		EntryAddVP:                 undoAddVP,
		EntryGrantBonusVP:          undoGrantBonusVP,
		EntrySetControl:            undoSetControl,
		EntrySetReligion:           undoSetReligion,
		EntrySetSiege:              undoSetSiege,
		EntrySetJesuitUniversity:   undoSetJesuitUniversity,
		EntryCaptureLeader:         undoCaptureLeader,
		EntryReleaseLeader:         undoReleaseLeader,
		EntryBindController:        undoControllerChange,
		EntryUnbindController:      undoControllerChange,
		EntryShuffleDeck:           undoShuffleDeck,
		EntryDrawCards:             undoDrawCards,
		EntryDiscardCard:           undoDiscardCard,
		EntryPlayCard:              undoPlayCard,
	}
	return m
}

// Handles reports whether an entry type has a registered handler.
func (m *UndoManager) Handles(t EntryType) bool {
	_, ok := m.handlers[t]
	return ok
}

// VerifyCoverage walks the game's full history and fails if any recorded
// entry type lacks a handler. Called once at session open.
func (m *UndoManager) VerifyCoverage() error {
	entries, err := m.history.List()
	if err != nil {
		return err
	}

	missing := make(map[EntryType]bool)
	for _, entry := range entries {
		if !m.Handles(entry.Type) {
			missing[entry.Type] = true
		}
	}
	if len(missing) == 0 {
		return nil
	}

	var types []string
	for t := range missing {
		types = append(types, string(t))
	}
	sort.Strings(types)
	return fmt.Errorf("history contains entry types with no undo handler: %v: %w", types, ErrUndo)
}

// Undo reverts the entry with the given id and marks it undone. Only
// successful entries can be undone; failed attempts changed nothing.
func (m *UndoManager) Undo(id int) error {
	entry, err := m.history.Get(id)
	if err != nil {
		return err
	}
	if !entry.Success {
		return fmt.Errorf("entry %d recorded a failed command, nothing to undo: %w", id, ErrUndo)
	}

	handler, ok := m.handlers[entry.Type]
	if !ok {
		return fmt.Errorf("no undo handler for entry type %s: %w", entry.Type, ErrUndo)
	}
	if err := handler(m, entry); err != nil {
		return fmt.Errorf("undo of entry %d (%s): %v: %w", id, entry.Type, err, ErrUndo)
	}

	// All payloads share the "cp" key; credit back whatever was spent.
	var spend struct {
		CP int `json:"cp"`
	}
	if len(entry.Payload) > 0 {
		if err := json.Unmarshal(entry.Payload, &spend); err == nil && spend.CP > 0 {
			if err := m.actions.Credit(spend.CP); err != nil {
				return fmt.Errorf("undo of entry %d: crediting %d CP: %v: %w", id, spend.CP, err, ErrUndo)
			}
		}
	}

	return m.history.MarkUndone(id)
}

// UndoLast reverts the most recent entry that is still standing.
func (m *UndoManager) UndoLast() (int, error) {
	entry, err := m.history.Last()
	if err != nil {
		return 0, err
	}
	return entry.ID, m.Undo(entry.ID)
}

func decode[P any](entry *HistoryEntry) (P, error) {
	var p P
	if err := json.Unmarshal(entry.Payload, &p); err != nil {
		return p, fmt.Errorf("failed to decode %s payload: %w", entry.Type, err)
	}
	return p, nil
}

func undoAddFormation(m *UndoManager, entry *HistoryEntry) error {
	p, err := decode[FormationPayload](entry)
	if err != nil {
		return err
	}
	_, err = m.formations.Remove(p.Space, p.Power, p.Regulars, p.Secondary, p.Leaders)
	return err
}

func undoRemoveFormation(m *UndoManager, entry *HistoryEntry) error {
	p, err := decode[FormationPayload](entry)
	if err != nil {
		return err
	}
	_, err = m.formations.Add(p.Space, p.Power, p.Regulars, p.Secondary, p.Leaders)
	return err
}

func undoAddSquadron(m *UndoManager, entry *HistoryEntry) error {
	p, err := decode[SquadronPayload](entry)
	if err != nil {
		return err
	}
	return m.naval.RemoveSquadron(p.Location, p.Power, p.Count, p.Loans)
}

func undoRemoveSquadron(m *UndoManager, entry *HistoryEntry) error {
	p, err := decode[SquadronPayload](entry)
	if err != nil {
		return err
	}
	return m.naval.AddSquadron(p.Location, p.Power, p.Count, p.Loans)
}

// undoSetPiracyToken writes the zone directly: re-placing an undone
// removal must not depend on corsairs still being present.
func undoSetPiracyToken(m *UndoManager, entry *HistoryEntry) error {
	p, err := decode[PiracyPayload](entry)
	if err != nil {
		return err
	}
	z, err := m.seazones.Get(p.Zone)
	if err != nil {
		return err
	}
	z.PiracyToken = !p.Value
	return m.seazones.Save(z)
}

func undoDeclareWar(m *UndoManager, entry *HistoryEntry) error {
	p, err := decode[DiplomacyPayload](entry)
	if err != nil {
		return err
	}
	f1, err := m.factions.Get(p.Power1)
	if err != nil {
		return err
	}
	f2, err := m.factions.Get(p.Power2)
	if err != nil {
		return err
	}
	f1.AtWarWith = without(f1.AtWarWith, f2.Name)
	f2.AtWarWith = without(f2.AtWarWith, f1.Name)
	if p.DissolvedAlliance {
		f1.Allies = union(f1.Allies, f2.Name)
		f2.Allies = union(f2.Allies, f1.Name)
	}
	if err := m.factions.Save(f1); err != nil {
		return err
	}
	return m.factions.Save(f2)
}

func undoMakePeace(m *UndoManager, entry *HistoryEntry) error {
	p, err := decode[DiplomacyPayload](entry)
	if err != nil {
		return err
	}
	return m.diplomacy.DeclareWar(p.Power1, p.Power2)
}

// undoDeclareAlliance removes the alliance directly; locked alliances
// would block the regular dissolution path.
func undoDeclareAlliance(m *UndoManager, entry *HistoryEntry) error {
	p, err := decode[DiplomacyPayload](entry)
	if err != nil {
		return err
	}
	f1, err := m.factions.Get(p.Power1)
	if err != nil {
		return err
	}
	f2, err := m.factions.Get(p.Power2)
	if err != nil {
		return err
	}
	f1.Allies = without(f1.Allies, f2.Name)
	f2.Allies = without(f2.Allies, f1.Name)
	if err := m.factions.Save(f1); err != nil {
		return err
	}
	return m.factions.Save(f2)
}

// undoRemoveAlliance restores the alliance directly; eligibility held when
// it was formed and is not re-litigated here.
func undoRemoveAlliance(m *UndoManager, entry *HistoryEntry) error {
	p, err := decode[DiplomacyPayload](entry)
	if err != nil {
		return err
	}
	f1, err := m.factions.Get(p.Power1)
	if err != nil {
		return err
	}
	f2, err := m.factions.Get(p.Power2)
	if err != nil {
		return err
	}
	f1.Allies = union(f1.Allies, f2.Name)
	f2.Allies = union(f2.Allies, f1.Name)
	if err := m.factions.Save(f1); err != nil {
		return err
	}
	return m.factions.Save(f2)
}

func undoExcommunicate(m *UndoManager, entry *HistoryEntry) error {
	p, err := decode[RulerPayload](entry)
	if err != nil {
		return err
	}
	return m.rulers.RemoveExcommunication(p.Ruler)
}

// undoRemoveExcommunication restores the flag directly; the original
// eligibility conditions may no longer hold and must not block the undo.
func undoRemoveExcommunication(m *UndoManager, entry *HistoryEntry) error {
	p, err := decode[RulerPayload](entry)
	if err != nil {
		return err
	}
	r, err := m.rulers.Get(p.Ruler)
	if err != nil {
		return err
	}
	f, err := m.factions.Get(r.Faction)
	if err != nil {
		return err
	}
	r.Excommunicated = true
	f.CardModifier--
	if err := m.rulers.Save(r); err != nil {
		return err
	}
	return m.factions.Save(f)
}

func undoChangeRuler(m *UndoManager, entry *HistoryEntry) error {
	p, err := decode[SuccessionPayload](entry)
	if err != nil {
		return err
	}
	prev, err := m.rulers.Get(p.Prev)
	if err != nil {
		return err
	}
	next, err := m.rulers.Get(p.Next)
	if err != nil {
		return err
	}
	next.IsCurrent = false
	prev.IsCurrent = true
	if err := m.rulers.Save(next); err != nil {
		return err
	}
	return m.rulers.Save(prev)
}

func undoAddVP(m *UndoManager, entry *HistoryEntry) error {
	p, err := decode[VPPayload](entry)
	if err != nil {
		return err
	}
	_, err = m.factions.AddVP(p.Faction, -p.Delta)
	return err
}

func undoGrantBonusVP(m *UndoManager, entry *HistoryEntry) error {
	p, err := decode[BonusVPPayload](entry)
	if err != nil {
		return err
	}
	return m.factions.GrantBonusVP(p.Faction, p.Key, p.PrevVP)
}

func undoSetControl(m *UndoManager, entry *HistoryEntry) error {
	p, err := decode[ControlPayload](entry)
	if err != nil {
		return err
	}
	sp, err := m.spaces.Get(p.Space)
	if err != nil {
		return err
	}
	sp.ControllingPower = p.Prev
	return m.spaces.Save(sp)
}

func undoSetReligion(m *UndoManager, entry *HistoryEntry) error {
	p, err := decode[ReligionPayload](entry)
	if err != nil {
		return err
	}
	_, err = m.spaces.SetReligion(p.Space, p.Prev)
	return err
}

func undoSetSiege(m *UndoManager, entry *HistoryEntry) error {
	p, err := decode[SpaceFlagPayload](entry)
	if err != nil {
		return err
	}
	return m.spaces.SetSiege(p.Space, !p.Value)
}

func undoSetJesuitUniversity(m *UndoManager, entry *HistoryEntry) error {
	p, err := decode[SpaceFlagPayload](entry)
	if err != nil {
		return err
	}
	return m.spaces.SetJesuitUniversity(p.Space, !p.Value)
}

func undoCaptureLeader(m *UndoManager, entry *HistoryEntry) error {
	p, err := decode[LeaderPayload](entry)
	if err != nil {
		return err
	}
	return m.factions.ReleaseLeader(p.Faction, p.Leader, m.leaders)
}

func undoReleaseLeader(m *UndoManager, entry *HistoryEntry) error {
	p, err := decode[LeaderPayload](entry)
	if err != nil {
		return err
	}
	return m.factions.CaptureLeader(p.Faction, p.Leader, m.leaders)
}

// undoControllerChange restores the prior binding for both bind and unbind.
func undoControllerChange(m *UndoManager, entry *HistoryEntry) error {
	p, err := decode[ControllerPayload](entry)
	if err != nil {
		return err
	}
	f, err := m.factions.Get(p.Faction)
	if err != nil {
		return err
	}
	f.Controller = p.PrevUser
	f.Active = p.PrevActive
	return m.factions.Save(f)
}

// undoShuffleDeck restores the snapshot of the status document taken just
// before the shuffle. The shuffled order itself is not invertible.
func undoShuffleDeck(m *UndoManager, entry *HistoryEntry) error {
	p, err := decode[ShufflePayload](entry)
	if err != nil {
		return err
	}
	prev := p.Prev
	return m.cards.SaveStatus(&prev)
}

func undoDrawCards(m *UndoManager, entry *HistoryEntry) error {
	p, err := decode[DrawPayload](entry)
	if err != nil {
		return err
	}
	f, err := m.factions.Get(p.Faction)
	if err != nil {
		return err
	}
	for _, id := range p.Cards {
		if !contains(f.Hand, id) {
			return fmt.Errorf("card %s is no longer in %s's hand", id, f.Name)
		}
		f.Hand = without(f.Hand, id)
	}
	st, err := m.cards.Status()
	if err != nil {
		return err
	}
	st.Deck = append(append([]string(nil), p.Cards...), st.Deck...)
	if err := m.cards.SaveStatus(st); err != nil {
		return err
	}
	return m.factions.Save(f)
}

func undoDiscardCard(m *UndoManager, entry *HistoryEntry) error {
	p, err := decode[DiscardPayload](entry)
	if err != nil {
		return err
	}
	st, err := m.cards.Status()
	if err != nil {
		return err
	}
	if contains(st.Removed, p.Card) {
		st.Removed = without(st.Removed, p.Card)
	} else if contains(st.Discard, p.Card) {
		st.Discard = without(st.Discard, p.Card)
	} else {
		return fmt.Errorf("card %s is in neither the discard nor the removed pile", p.Card)
	}

	if p.Faction != "" {
		f, err := m.factions.Get(p.Faction)
		if err != nil {
			return err
		}
		f.Hand = append(f.Hand, p.Card)
		if err := m.factions.Save(f); err != nil {
			return err
		}
	} else {
		st.Deck = append([]string{p.Card}, st.Deck...)
	}
	if p.WasActive {
		st.ActiveCard = p.Card
		st.AvailableCP = p.PrevCP
	}
	return m.cards.SaveStatus(st)
}

func undoPlayCard(m *UndoManager, entry *HistoryEntry) error {
	p, err := decode[PlayPayload](entry)
	if err != nil {
		return err
	}
	st, err := m.cards.Status()
	if err != nil {
		return err
	}
	if st.ActiveCard != p.Card {
		return fmt.Errorf("card %s is no longer the active impulse", p.Card)
	}
	st.ActiveCard = ""
	st.AvailableCP = 0

	if p.Faction != "" {
		st.ActivePlayer = p.PrevActivePlayer
		f, err := m.factions.Get(p.Faction)
		if err != nil {
			return err
		}
		f.Hand = append(f.Hand, p.Card)
		if err := m.factions.Save(f); err != nil {
			return err
		}
	} else {
		st.Deck = append([]string{p.Card}, st.Deck...)
	}
	return m.cards.SaveStatus(st)
}
