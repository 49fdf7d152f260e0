package game

import (
	"errors"
	"fmt"

	"github.com/mikyjpeg/asynchis/internal/store"
)

// SpaceManager owns read/write access to space documents.
type SpaceManager struct {
	store *store.Store
}

func NewSpaceManager(s *store.Store) *SpaceManager {
	return &SpaceManager{store: s}
}

// Get loads a space by name.
func (m *SpaceManager) Get(name string) (*Space, error) {
	var sp Space
	if err := m.store.Read(store.KindSpace, name, &sp); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("space %s: %w", store.NormalizeID(name), ErrNotFound)
		}
		return nil, err
	}
	return &sp, nil
}

// Save persists a space document.
func (m *SpaceManager) Save(sp *Space) error {
	return m.store.Write(store.KindSpace, sp.Name, sp)
}

// List returns every space id in the game.
func (m *SpaceManager) List() ([]string, error) {
	return m.store.List(store.KindSpace)
}

// SetControl changes the controlling power of a space. Passing the home
// power resets the document to default control.
func (m *SpaceManager) SetControl(name, power string) (prev string, err error) {
	sp, err := m.Get(name)
	if err != nil {
		return "", err
	}
	prev = sp.ControllingPower
	if power == sp.HomePower {
		sp.ControllingPower = ""
	} else {
		sp.ControllingPower = power
	}
	return prev, m.Save(sp)
}

// SetReligion flips the confessional state of a space.
func (m *SpaceManager) SetReligion(name string, r Religion) (prev Religion, err error) {
	sp, err := m.Get(name)
	if err != nil {
		return "", err
	}
	if sp.Religion == "" {
		return "", fmt.Errorf("space %s has no religious state: %w", sp.Name, ErrInvalidInput)
	}
	prev = sp.Religion
	sp.Religion = r
	return prev, m.Save(sp)
}

// SetSiege raises or lifts the siege flag.
func (m *SpaceManager) SetSiege(name string, besieged bool) error {
	sp, err := m.Get(name)
	if err != nil {
		return err
	}
	if sp.UnderSiege == besieged {
		return fmt.Errorf("space %s siege flag already %v: %w", sp.Name, besieged, ErrConflict)
	}
	sp.UnderSiege = besieged
	return m.Save(sp)
}

// SetJesuitUniversity founds or removes the Jesuit university marker.
func (m *SpaceManager) SetJesuitUniversity(name string, founded bool) error {
	sp, err := m.Get(name)
	if err != nil {
		return err
	}
	if sp.JesuitUniversity == founded {
		return fmt.Errorf("space %s jesuit university already %v: %w", sp.Name, founded, ErrConflict)
	}
	sp.JesuitUniversity = founded
	return m.Save(sp)
}

// HomeSpacesOf returns the spaces whose home power is the given faction.
func (m *SpaceManager) HomeSpacesOf(power string) ([]*Space, error) {
	ids, err := m.List()
	if err != nil {
		return nil, err
	}
	var out []*Space
	for _, id := range ids {
		sp, err := m.Get(id)
		if err != nil {
			return nil, err
		}
		if sp.HomePower == power {
			out = append(out, sp)
		}
	}
	return out, nil
}
