package game

import (
	"fmt"

	"github.com/mikyjpeg/asynchis/internal/rules"
)

// DiplomacyManager mutates alliance and war relationships across pairs of
// factions. Both documents are written for every change; the pair-wise
// double write is serialized by the store's per-game lock but is still not
// atomic if the process dies between the two writes.
type DiplomacyManager struct {
	factions *FactionManager
}

func NewDiplomacyManager(factions *FactionManager) *DiplomacyManager {
	return &DiplomacyManager{factions: factions}
}

func (m *DiplomacyManager) pair(p1, p2 string) (*Faction, *Faction, error) {
	if p1 == p2 {
		return nil, nil, fmt.Errorf("a power cannot target itself: %w", ErrInvalidInput)
	}
	f1, err := m.factions.Get(p1)
	if err != nil {
		return nil, nil, err
	}
	f2, err := m.factions.Get(p2)
	if err != nil {
		return nil, nil, err
	}
	return f1, f2, nil
}

func (m *DiplomacyManager) saveBoth(f1, f2 *Faction) error {
	if err := m.factions.Save(f1); err != nil {
		return err
	}
	return m.factions.Save(f2)
}

// DeclareWar puts two factions at war and dissolves any alliance between
// them; a faction can never be allied with and at war with the same power.
func (m *DiplomacyManager) DeclareWar(p1, p2 string) error {
	f1, f2, err := m.pair(p1, p2)
	if err != nil {
		return err
	}
	if f1.IsAtWarWith(f2.Name) {
		return fmt.Errorf("%s and %s are already at war: %w", f1.Name, f2.Name, ErrConflict)
	}

	f1.Allies = without(f1.Allies, f2.Name)
	f2.Allies = without(f2.Allies, f1.Name)
	f1.AtWarWith = union(f1.AtWarWith, f2.Name)
	f2.AtWarWith = union(f2.AtWarWith, f1.Name)
	return m.saveBoth(f1, f2)
}

// MakePeace ends a war between two factions.
func (m *DiplomacyManager) MakePeace(p1, p2 string) error {
	f1, f2, err := m.pair(p1, p2)
	if err != nil {
		return err
	}
	if !f1.IsAtWarWith(f2.Name) {
		return fmt.Errorf("%s and %s are not at war: %w", f1.Name, f2.Name, ErrConflict)
	}

	f1.AtWarWith = without(f1.AtWarWith, f2.Name)
	f2.AtWarWith = without(f2.AtWarWith, f1.Name)
	return m.saveBoth(f1, f2)
}

// DeclareAlliance forms an alliance. Eligibility is checked against the
// static diplomacy rules at formation time only; it is not re-validated
// continuously afterwards.
func (m *DiplomacyManager) DeclareAlliance(p1, p2 string) error {
	f1, f2, err := m.pair(p1, p2)
	if err != nil {
		return err
	}
	if f1.IsAlliedWith(f2.Name) {
		return fmt.Errorf("%s and %s are already allied: %w", f1.Name, f2.Name, ErrConflict)
	}
	if f1.IsAtWarWith(f2.Name) {
		return fmt.Errorf("%s and %s are at war: %w", f1.Name, f2.Name, ErrIneligible)
	}
	if !rules.CanAlly(rules.Power(f1.Name), rules.Power(f2.Name)) {
		return fmt.Errorf("%s may not ally with %s: %w", f1.Name, f2.Name, ErrIneligible)
	}

	f1.Allies = union(f1.Allies, f2.Name)
	f2.Allies = union(f2.Allies, f1.Name)
	return m.saveBoth(f1, f2)
}

// RemoveAlliance dissolves an existing alliance, unless one of the powers'
// rules make the alliance binding.
func (m *DiplomacyManager) RemoveAlliance(p1, p2 string) error {
	f1, f2, err := m.pair(p1, p2)
	if err != nil {
		return err
	}
	if !f1.IsAlliedWith(f2.Name) {
		return fmt.Errorf("%s and %s are not allied: %w", f1.Name, f2.Name, ErrConflict)
	}
	if !rules.CanBreakAlliance(rules.Power(f1.Name), rules.Power(f2.Name)) {
		return fmt.Errorf("the alliance between %s and %s cannot be dissolved unilaterally: %w", f1.Name, f2.Name, ErrIneligible)
	}

	f1.Allies = without(f1.Allies, f2.Name)
	f2.Allies = without(f2.Allies, f1.Name)
	return m.saveBoth(f1, f2)
}
