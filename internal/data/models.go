package data

import "github.com/mikyjpeg/asynchis/internal/game"

// Records are the YAML shape of the read-only reference data. They carry
// only the fields an author sets; seeding converts them into full game
// documents with runtime fields at their zero values.

// FactionRecord describes one playable power.
type FactionRecord struct {
	Name         string `yaml:"name"`
	CardsPerTurn int    `yaml:"cards_per_turn"`
}

func (r FactionRecord) ToGame() *game.Faction {
	return &game.Faction{
		Name:         r.Name,
		CardsPerTurn: r.CardsPerTurn,
	}
}

// FormationRecord is a starting land force in a space.
type FormationRecord struct {
	Power       string   `yaml:"power"`
	Regulars    int      `yaml:"regulars"`
	Mercenaries int      `yaml:"mercenaries"`
	Cavalry     int      `yaml:"cavalry"`
	Leaders     []string `yaml:"leaders"`
}

// SquadronRecord is a starting naval force in a space or sea zone.
type SquadronRecord struct {
	Power     string `yaml:"power"`
	Squadrons int    `yaml:"squadrons"`
	Corsairs  int    `yaml:"corsairs"`
}

// SpaceRecord describes one map space and its setup forces.
type SpaceRecord struct {
	Name       string            `yaml:"name"`
	Type       string            `yaml:"type"`
	HomePower  string            `yaml:"home_power"`
	Religion   string            `yaml:"religion"`
	Port       bool              `yaml:"port"`
	Reformers  []string          `yaml:"reformers"`
	Formations []FormationRecord `yaml:"formations"`
	Squadrons  []SquadronRecord  `yaml:"squadrons"`
}

func (r SpaceRecord) ToGame() *game.Space {
	sp := &game.Space{
		Name:      r.Name,
		Type:      game.SpaceType(r.Type),
		HomePower: r.HomePower,
		Religion:  game.Religion(r.Religion),
		Port:      r.Port,
		Reformers: r.Reformers,
	}
	for _, f := range r.Formations {
		sp.Formations = append(sp.Formations, game.Formation{
			Power:       f.Power,
			Regulars:    f.Regulars,
			Mercenaries: f.Mercenaries,
			Cavalry:     f.Cavalry,
			Leaders:     f.Leaders,
		})
	}
	for _, s := range r.Squadrons {
		sp.Squadrons = append(sp.Squadrons, game.Squadron{
			Power:     s.Power,
			Squadrons: s.Squadrons,
			Corsairs:  s.Corsairs,
		})
	}
	return sp
}

// SeaZoneRecord describes one sea area.
type SeaZoneRecord struct {
	Name      string           `yaml:"name"`
	Adjacent  []string         `yaml:"adjacent"`
	Ports     []string         `yaml:"ports"`
	Squadrons []SquadronRecord `yaml:"squadrons"`
}

func (r SeaZoneRecord) ToGame() *game.SeaZone {
	z := &game.SeaZone{
		Name:     r.Name,
		Adjacent: r.Adjacent,
		Ports:    r.Ports,
	}
	for _, s := range r.Squadrons {
		z.Squadrons = append(z.Squadrons, game.Squadron{
			Power:     s.Power,
			Squadrons: s.Squadrons,
			Corsairs:  s.Corsairs,
		})
	}
	return z
}

// RulerRecord describes one head of state.
type RulerRecord struct {
	Name          string `yaml:"name"`
	Faction       string `yaml:"faction"`
	Current       bool   `yaml:"current"`
	BattleRating  int    `yaml:"battle_rating"`
	CommandRating int    `yaml:"command_rating"`
	AdminRating   int    `yaml:"admin_rating"`
	CardBonus     int    `yaml:"card_bonus"`
}

func (r RulerRecord) ToGame() *game.Ruler {
	return &game.Ruler{
		Name:          r.Name,
		Faction:       r.Faction,
		IsCurrent:     r.Current,
		BattleRating:  r.BattleRating,
		CommandRating: r.CommandRating,
		AdminRating:   r.AdminRating,
		CardBonus:     r.CardBonus,
	}
}

// LeaderRecord describes one army or navy commander.
type LeaderRecord struct {
	Name         string `yaml:"name"`
	Faction      string `yaml:"faction"`
	Type         string `yaml:"type"`
	Active       bool   `yaml:"active"`
	BattleRating int    `yaml:"battle_rating"`
	CommandValue int    `yaml:"command_value"`
}

func (r LeaderRecord) ToGame() *game.Leader {
	return &game.Leader{
		Name:         r.Name,
		Faction:      r.Faction,
		Type:         game.LeaderType(r.Type),
		Active:       r.Active,
		BattleRating: r.BattleRating,
		CommandValue: r.CommandValue,
	}
}

// ReformerRecord describes one religious reformer.
type ReformerRecord struct {
	Name   string `yaml:"name"`
	Space  string `yaml:"space"`
	Active bool   `yaml:"active"`
}

func (r ReformerRecord) ToGame() *game.Reformer {
	return &game.Reformer{Name: r.Name, Space: r.Space, Active: r.Active}
}

// DebaterRecord describes one theological debater.
type DebaterRecord struct {
	Name  string `yaml:"name"`
	Power string `yaml:"power"`
}

func (r DebaterRecord) ToGame() *game.Debater {
	return &game.Debater{Name: r.Name, Power: r.Power}
}

// ElectorateRecord describes one imperial electorate.
type ElectorateRecord struct {
	Name     string `yaml:"name"`
	Religion string `yaml:"religion"`
	Regulars int    `yaml:"regulars"`
}

func (r ElectorateRecord) ToGame() *game.Electorate {
	return &game.Electorate{
		Name:     r.Name,
		Religion: game.Religion(r.Religion),
		Regulars: r.Regulars,
	}
}

// CardRecord describes one deck card.
type CardRecord struct {
	ID             string `yaml:"id"`
	Name           string `yaml:"name"`
	Cost           int    `yaml:"cost"`
	Turn           int    `yaml:"turn"`
	Mandatory      bool   `yaml:"mandatory"`
	Response       bool   `yaml:"response"`
	Combat         bool   `yaml:"combat"`
	RemoveAfterUse bool   `yaml:"remove_after_use"`
	Condition      string `yaml:"condition"`
}

func (r CardRecord) ToGame() *game.Card {
	return &game.Card{
		ID:             r.ID,
		Name:           r.Name,
		Cost:           r.Cost,
		Turn:           r.Turn,
		Mandatory:      r.Mandatory,
		Response:       r.Response,
		Combat:         r.Combat,
		RemoveAfterUse: r.RemoveAfterUse,
		Condition:      r.Condition,
	}
}
