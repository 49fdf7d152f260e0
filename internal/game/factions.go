package game

import (
	"errors"
	"fmt"

	"github.com/mikyjpeg/asynchis/internal/store"
)

// FactionManager owns read/write access to faction documents.
type FactionManager struct {
	store *store.Store
}

// NewFactionManager binds a manager to one game's store.
func NewFactionManager(s *store.Store) *FactionManager {
	return &FactionManager{store: s}
}

// Get loads a faction by power name.
func (m *FactionManager) Get(name string) (*Faction, error) {
	var f Faction
	if err := m.store.Read(store.KindFaction, name, &f); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("faction %s: %w", store.NormalizeID(name), ErrNotFound)
		}
		return nil, err
	}
	return &f, nil
}

// Save persists a faction document.
func (m *FactionManager) Save(f *Faction) error {
	return m.store.Write(store.KindFaction, f.Name, f)
}

// List returns every faction id in the game.
func (m *FactionManager) List() ([]string, error) {
	return m.store.List(store.KindFaction)
}

// BindController attaches a controlling user to a faction and activates it.
func (m *FactionManager) BindController(name, user string) error {
	f, err := m.Get(name)
	if err != nil {
		return err
	}
	f.Controller = user
	f.Active = true
	return m.Save(f)
}

// UnbindController detaches the controlling user and deactivates the faction.
func (m *FactionManager) UnbindController(name string) error {
	f, err := m.Get(name)
	if err != nil {
		return err
	}
	f.Controller = ""
	f.Active = false
	return m.Save(f)
}

// AddVP adjusts a faction's victory points by delta, which may be negative.
// The total never drops below zero.
func (m *FactionManager) AddVP(name string, delta int) (int, error) {
	f, err := m.Get(name)
	if err != nil {
		return 0, err
	}
	next := f.VictoryPoints + delta
	if next < 0 {
		return 0, fmt.Errorf("victory points cannot go below zero (%d%+d): %w", f.VictoryPoints, delta, ErrInvalidInput)
	}
	f.VictoryPoints = next
	if err := m.Save(f); err != nil {
		return 0, err
	}
	return next, nil
}

// GrantBonusVP records a keyed bonus-VP grant on the faction's ledger.
// Granting zero removes the key.
func (m *FactionManager) GrantBonusVP(name, key string, vp int) error {
	f, err := m.Get(name)
	if err != nil {
		return err
	}
	if f.BonusVP == nil {
		f.BonusVP = make(map[string]int)
	}
	if vp == 0 {
		delete(f.BonusVP, key)
	} else {
		f.BonusVP[key] = vp
	}
	return m.Save(f)
}

// CaptureLeader adds a leader to the faction's captive list and marks the
// leader document captured.
func (m *FactionManager) CaptureLeader(name, leaderID string, leaders *LeaderManager) error {
	l, err := leaders.Get(leaderID)
	if err != nil {
		return err
	}
	if l.Captured {
		return fmt.Errorf("leader %s is already captured: %w", l.Name, ErrConflict)
	}

	f, err := m.Get(name)
	if err != nil {
		return err
	}
	l.Captured = true
	if err := leaders.Save(l); err != nil {
		return err
	}
	f.CaptiveLeaders = union(f.CaptiveLeaders, l.Name)
	return m.Save(f)
}

// ReleaseLeader removes a leader from the faction's captive list and clears
// the captured flag.
func (m *FactionManager) ReleaseLeader(name, leaderID string, leaders *LeaderManager) error {
	f, err := m.Get(name)
	if err != nil {
		return err
	}
	l, err := leaders.Get(leaderID)
	if err != nil {
		return err
	}
	if !contains(f.CaptiveLeaders, l.Name) {
		return fmt.Errorf("leader %s is not held by %s: %w", l.Name, f.Name, ErrConflict)
	}
	l.Captured = false
	if err := leaders.Save(l); err != nil {
		return err
	}
	f.CaptiveLeaders = without(f.CaptiveLeaders, l.Name)
	return m.Save(f)
}
