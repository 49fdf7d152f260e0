package game

import (
	"errors"
	"fmt"

	"github.com/mikyjpeg/asynchis/internal/store"
)

// The remaining entity kinds share the same thin accessor shape: load,
// validate presence, save. They are split from the richer managers so each
// manager file carries only its own invariants.

// SeaZoneManager owns sea zone documents.
type SeaZoneManager struct {
	store *store.Store
}

func NewSeaZoneManager(s *store.Store) *SeaZoneManager {
	return &SeaZoneManager{store: s}
}

func (m *SeaZoneManager) Get(name string) (*SeaZone, error) {
	var z SeaZone
	if err := m.store.Read(store.KindSeaZone, name, &z); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("sea zone %s: %w", store.NormalizeID(name), ErrNotFound)
		}
		return nil, err
	}
	return &z, nil
}

func (m *SeaZoneManager) Save(z *SeaZone) error {
	return m.store.Write(store.KindSeaZone, z.Name, z)
}

func (m *SeaZoneManager) List() ([]string, error) {
	return m.store.List(store.KindSeaZone)
}

// LeaderManager owns leader documents.
type LeaderManager struct {
	store *store.Store
}

func NewLeaderManager(s *store.Store) *LeaderManager {
	return &LeaderManager{store: s}
}

func (m *LeaderManager) Get(name string) (*Leader, error) {
	var l Leader
	if err := m.store.Read(store.KindLeader, name, &l); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("leader %s: %w", store.NormalizeID(name), ErrNotFound)
		}
		return nil, err
	}
	return &l, nil
}

func (m *LeaderManager) Save(l *Leader) error {
	return m.store.Write(store.KindLeader, l.Name, l)
}

func (m *LeaderManager) List() ([]string, error) {
	return m.store.List(store.KindLeader)
}

// ReformerManager owns reformer documents.
type ReformerManager struct {
	store *store.Store
}

func NewReformerManager(s *store.Store) *ReformerManager {
	return &ReformerManager{store: s}
}

func (m *ReformerManager) Get(name string) (*Reformer, error) {
	var r Reformer
	if err := m.store.Read(store.KindReformer, name, &r); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("reformer %s: %w", store.NormalizeID(name), ErrNotFound)
		}
		return nil, err
	}
	return &r, nil
}

func (m *ReformerManager) Save(r *Reformer) error {
	return m.store.Write(store.KindReformer, r.Name, r)
}

func (m *ReformerManager) List() ([]string, error) {
	return m.store.List(store.KindReformer)
}

// DebaterManager owns debater documents.
type DebaterManager struct {
	store *store.Store
}

func NewDebaterManager(s *store.Store) *DebaterManager {
	return &DebaterManager{store: s}
}

func (m *DebaterManager) Get(name string) (*Debater, error) {
	var d Debater
	if err := m.store.Read(store.KindDebater, name, &d); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("debater %s: %w", store.NormalizeID(name), ErrNotFound)
		}
		return nil, err
	}
	return &d, nil
}

func (m *DebaterManager) Save(d *Debater) error {
	return m.store.Write(store.KindDebater, d.Name, d)
}

func (m *DebaterManager) List() ([]string, error) {
	return m.store.List(store.KindDebater)
}

// ElectorateManager owns electorate documents.
type ElectorateManager struct {
	store *store.Store
}

func NewElectorateManager(s *store.Store) *ElectorateManager {
	return &ElectorateManager{store: s}
}

func (m *ElectorateManager) Get(name string) (*Electorate, error) {
	var e Electorate
	if err := m.store.Read(store.KindElectorate, name, &e); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("electorate %s: %w", store.NormalizeID(name), ErrNotFound)
		}
		return nil, err
	}
	return &e, nil
}

func (m *ElectorateManager) Save(e *Electorate) error {
	return m.store.Write(store.KindElectorate, e.Name, e)
}

func (m *ElectorateManager) List() ([]string, error) {
	return m.store.List(store.KindElectorate)
}
