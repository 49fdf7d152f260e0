package game

import (
	"errors"
	"fmt"

	"github.com/mikyjpeg/asynchis/internal/rules"
	"github.com/mikyjpeg/asynchis/internal/store"
)

// RulerManager owns ruler documents and the excommunication and succession
// logic built on them.
type RulerManager struct {
	store    *store.Store
	factions *FactionManager
	spaces   *SpaceManager
}

func NewRulerManager(s *store.Store, factions *FactionManager, spaces *SpaceManager) *RulerManager {
	return &RulerManager{store: s, factions: factions, spaces: spaces}
}

// Get loads a ruler by name.
func (m *RulerManager) Get(name string) (*Ruler, error) {
	var r Ruler
	if err := m.store.Read(store.KindRuler, name, &r); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("ruler %s: %w", store.NormalizeID(name), ErrNotFound)
		}
		return nil, err
	}
	return &r, nil
}

// Save persists a ruler document.
func (m *RulerManager) Save(r *Ruler) error {
	return m.store.Write(store.KindRuler, r.Name, r)
}

// List returns every ruler id in the game.
func (m *RulerManager) List() ([]string, error) {
	return m.store.List(store.KindRuler)
}

// CurrentRuler finds the sitting ruler of a faction.
func (m *RulerManager) CurrentRuler(faction string) (*Ruler, error) {
	ids, err := m.List()
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		r, err := m.Get(id)
		if err != nil {
			return nil, err
		}
		if r.Faction == faction && r.IsCurrent {
			return r, nil
		}
	}
	return nil, fmt.Errorf("faction %s has no current ruler: %w", faction, ErrNotFound)
}

// CanBeExcommunicated checks the full precondition set: the ruler must be
// on the excommunicable list, must be sitting, and at least one of the
// eligibility conditions must hold — the territorial-religion exception,
// alliance with the protector power, or war with the antagonist power.
func (m *RulerManager) CanBeExcommunicated(name string) error {
	r, err := m.Get(name)
	if err != nil {
		return err
	}
	if !rules.Excommunicable(r.Name) {
		return fmt.Errorf("ruler %s cannot be excommunicated: %w", r.Name, ErrIneligible)
	}
	if !r.IsCurrent {
		return fmt.Errorf("ruler %s is not the sitting ruler of %s: %w", r.Name, r.Faction, ErrIneligible)
	}

	f, err := m.factions.Get(r.Faction)
	if err != nil {
		return err
	}

	if r.Name == rules.ReligionExceptionRuler {
		home, err := m.spaces.HomeSpacesOf(f.Name)
		if err != nil {
			return err
		}
		for _, sp := range home {
			if sp.Religion == ReligionProtestant && sp.Controller() == f.Name {
				return nil
			}
		}
	}
	if f.IsAlliedWith(string(rules.ProtectorPower)) {
		return nil
	}
	if f.IsAtWarWith(string(rules.AntagonistPower)) {
		return nil
	}
	return fmt.Errorf("no excommunication condition holds for %s: %w", r.Name, ErrIneligible)
}

// Excommunicate sets the flag and lowers the faction's card draw by one.
func (m *RulerManager) Excommunicate(name string) error {
	if err := m.CanBeExcommunicated(name); err != nil {
		return err
	}
	r, err := m.Get(name)
	if err != nil {
		return err
	}
	if r.Excommunicated {
		return fmt.Errorf("ruler %s is already excommunicated: %w", r.Name, ErrConflict)
	}

	f, err := m.factions.Get(r.Faction)
	if err != nil {
		return err
	}
	r.Excommunicated = true
	f.CardModifier--
	if err := m.Save(r); err != nil {
		return err
	}
	return m.factions.Save(f)
}

// RemoveExcommunication clears the flag and restores the card draw.
func (m *RulerManager) RemoveExcommunication(name string) error {
	r, err := m.Get(name)
	if err != nil {
		return err
	}
	if !r.Excommunicated {
		return fmt.Errorf("ruler %s is not excommunicated: %w", r.Name, ErrConflict)
	}

	f, err := m.factions.Get(r.Faction)
	if err != nil {
		return err
	}
	r.Excommunicated = false
	f.CardModifier++
	if err := m.Save(r); err != nil {
		return err
	}
	return m.factions.Save(f)
}

// ChangeRuler advances a faction along the succession graph: the sitting
// ruler steps down and the named successor takes over.
func (m *RulerManager) ChangeRuler(faction string) (prev, next *Ruler, err error) {
	current, err := m.CurrentRuler(faction)
	if err != nil {
		return nil, nil, err
	}

	successorName, ok := rules.Successor(rules.Power(faction), current.Name)
	if !ok {
		return nil, nil, fmt.Errorf("no succession path from %s for %s: %w", current.Name, faction, ErrNotFound)
	}

	successor, err := m.Get(successorName)
	if err != nil {
		return nil, nil, err
	}

	current.IsCurrent = false
	successor.IsCurrent = true
	if err := m.Save(current); err != nil {
		return nil, nil, err
	}
	if err := m.Save(successor); err != nil {
		return nil, nil, err
	}
	return current, successor, nil
}
