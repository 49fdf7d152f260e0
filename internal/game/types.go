// Package game implements the authoritative game-state engine: the typed
// entity managers, the resource-accounting gate, the card deck, and the
// command history with its undo dispatch. All state lives in a per-game
// document store; every manager takes the store handle explicitly.
package game

import (
	"encoding/json"
	"time"
)

// Religion marks the confessional state of a space or electorate.
type Religion string

const (
	ReligionCatholic   Religion = "catholic"
	ReligionProtestant Religion = "protestant"
)

// Faction is one playable side's document.
type Faction struct {
	Name           string         `json:"name"`
	Controller     string         `json:"controller,omitempty"`
	Active         bool           `json:"active"`
	VictoryPoints  int            `json:"victory_points"`
	Hand           []string       `json:"hand,omitempty"`
	CardModifier   int            `json:"card_modifier"`
	CardsPerTurn   int            `json:"cards_per_turn"`
	Allies         []string       `json:"allies,omitempty"`
	AtWarWith      []string       `json:"at_war_with,omitempty"`
	CaptiveLeaders []string       `json:"captive_leaders,omitempty"`
	BonusVP        map[string]int `json:"bonus_vp,omitempty"`
}

// IsAlliedWith reports whether the faction's alliance set contains other.
func (f *Faction) IsAlliedWith(other string) bool {
	return contains(f.Allies, other)
}

// IsAtWarWith reports whether the faction's war set contains other.
func (f *Faction) IsAtWarWith(other string) bool {
	return contains(f.AtWarWith, other)
}

// TotalVP is the faction's victory point score including the bonus ledger.
func (f *Faction) TotalVP() int {
	total := f.VictoryPoints
	for _, v := range f.BonusVP {
		total += v
	}
	return total
}

// SpaceType classifies a map space.
type SpaceType string

const (
	SpacePlain    SpaceType = "plain"
	SpaceKey      SpaceType = "key"
	SpaceFortress SpaceType = "fortress"
	SpaceCapital  SpaceType = "capital"
)

// Formation is one power's land force inside a space. Exactly one of
// Mercenaries or Cavalry is populated, decided by the secondary-unit table.
type Formation struct {
	Power       string   `json:"power"`
	Regulars    int      `json:"regulars"`
	Mercenaries int      `json:"mercenaries,omitempty"`
	Cavalry     int      `json:"cavalry,omitempty"`
	Leaders     []string `json:"leaders,omitempty"`
}

// Secondary returns whichever of the two secondary counts is in use.
func (f *Formation) Secondary() int {
	if f.Cavalry > 0 {
		return f.Cavalry
	}
	return f.Mercenaries
}

// Empty reports whether the formation holds no troops and no leaders.
func (f *Formation) Empty() bool {
	return f.Regulars == 0 && f.Mercenaries == 0 && f.Cavalry == 0 && len(f.Leaders) == 0
}

// Loan is a block of squadrons lent to another power's squadron entry.
type Loan struct {
	Power string `json:"power"`
	Count int    `json:"count"`
}

// Squadron is one power's naval force inside a space or sea zone. The
// corsair power fields corsairs; everyone else fields squadrons.
type Squadron struct {
	Power     string `json:"power"`
	Squadrons int    `json:"squadrons,omitempty"`
	Corsairs  int    `json:"corsairs,omitempty"`
	Loans     []Loan `json:"loans,omitempty"`
}

// Empty reports whether the squadron entry holds nothing of its own and no loans.
func (s *Squadron) Empty() bool {
	return s.Squadrons == 0 && s.Corsairs == 0 && len(s.Loans) == 0
}

// Space is one map location's document.
type Space struct {
	Name             string      `json:"name"`
	Type             SpaceType   `json:"type"`
	HomePower        string      `json:"home_power"`
	ControllingPower string      `json:"controlling_power,omitempty"`
	Religion         Religion    `json:"religion,omitempty"`
	UnderSiege       bool        `json:"under_siege,omitempty"`
	Port             bool        `json:"port,omitempty"`
	JesuitUniversity bool        `json:"jesuit_university,omitempty"`
	Reformers        []string    `json:"reformers,omitempty"`
	Formations       []Formation `json:"formations,omitempty"`
	Squadrons        []Squadron  `json:"squadrons,omitempty"`
}

// Controller resolves the controlling power, defaulting to the home power.
func (s *Space) Controller() string {
	if s.ControllingPower != "" {
		return s.ControllingPower
	}
	return s.HomePower
}

// SeaZone is one sea area's document.
type SeaZone struct {
	Name        string     `json:"name"`
	Adjacent    []string   `json:"adjacent,omitempty"`
	Ports       []string   `json:"ports,omitempty"`
	Squadrons   []Squadron `json:"squadrons,omitempty"`
	PiracyToken bool       `json:"piracy_token,omitempty"`
}

// LeaderType separates land commanders from admirals.
type LeaderType string

const (
	LeaderArmy LeaderType = "army"
	LeaderNavy LeaderType = "navy"
)

// Leader is a named commander's document.
type Leader struct {
	Name         string     `json:"name"`
	Faction      string     `json:"faction"`
	Type         LeaderType `json:"type"`
	Active       bool       `json:"active"`
	Captured     bool       `json:"captured,omitempty"`
	BattleRating int        `json:"battle_rating"`
	CommandValue int        `json:"command_value"`
}

// Ruler is a faction head-of-state document. At most one ruler per faction
// carries IsCurrent at any time.
type Ruler struct {
	Name           string `json:"name"`
	Faction        string `json:"faction"`
	IsCurrent      bool   `json:"is_current"`
	Excommunicated bool   `json:"excommunicated,omitempty"`
	BattleRating   int    `json:"battle_rating"`
	CommandRating  int    `json:"command_rating"`
	AdminRating    int    `json:"admin_rating"`
	CardBonus      int    `json:"card_bonus,omitempty"`
}

// Reformer is a religious figure tied to a space.
type Reformer struct {
	Name   string `json:"name"`
	Space  string `json:"space,omitempty"`
	Active bool   `json:"active"`
}

// Debater is a theological debater document.
type Debater struct {
	Name      string `json:"name"`
	Power     string `json:"power,omitempty"`
	Committed bool   `json:"committed,omitempty"`
	Burned    bool   `json:"burned,omitempty"`
}

// Electorate is one imperial electorate's document.
type Electorate struct {
	Name     string   `json:"name"`
	Religion Religion `json:"religion,omitempty"`
	Regulars int      `json:"regulars"`
}

// Card is immutable reference data for one deck card.
type Card struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Cost           int    `json:"cost"`
	Turn           int    `json:"turn"` // 0 means playable any turn
	Mandatory      bool   `json:"mandatory,omitempty"`
	Response       bool   `json:"response,omitempty"`
	Combat         bool   `json:"combat,omitempty"`
	RemoveAfterUse bool   `json:"remove_after_use,omitempty"`
	Condition      string `json:"condition,omitempty"` // CEL unlock condition
}

// Status is the per-game deck and impulse document.
type Status struct {
	Turn         int      `json:"turn"`
	Deck         []string `json:"deck,omitempty"`
	Discard      []string `json:"discard,omitempty"`
	Removed      []string `json:"removed,omitempty"`
	ActiveCard   string   `json:"active_card,omitempty"`
	AvailableCP  int      `json:"available_cp"`
	ActivePlayer string   `json:"active_player,omitempty"`
	Flags        []string `json:"flags,omitempty"`
}

// HasFlag reports whether a game-history flag has been set.
func (s *Status) HasFlag(flag string) bool {
	return contains(s.Flags, flag)
}

// EntryType discriminates command history payloads.
type EntryType string

// HistoryEntry is one logged mutation attempt. Entries are append-only and
// sequentially numbered per game; the undone flag is the only field ever
// mutated after creation.
type HistoryEntry struct {
	ID        int             `json:"id"`
	Timestamp time.Time       `json:"timestamp"`
	Actor     string          `json:"actor,omitempty"`
	Command   string          `json:"command,omitempty"`
	Type      EntryType       `json:"type"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	Success   bool            `json:"success"`
	Error     string          `json:"error,omitempty"`
	Undone    bool            `json:"undone,omitempty"`
}

// contains reports slice membership for string sets stored as slices.
func contains(set []string, s string) bool {
	for _, v := range set {
		if v == s {
			return true
		}
	}
	return false
}

// without returns set minus s, preserving order.
func without(set []string, s string) []string {
	out := set[:0:0]
	for _, v := range set {
		if v != s {
			out = append(out, v)
		}
	}
	return out
}

// union appends s to set if absent.
func union(set []string, s string) []string {
	if contains(set, s) {
		return set
	}
	return append(set, s)
}
