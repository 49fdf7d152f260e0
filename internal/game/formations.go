package game

import (
	"fmt"

	"github.com/mikyjpeg/asynchis/internal/rules"
	"github.com/mikyjpeg/asynchis/internal/store"
)

// FormationManager maintains the land-force entries embedded in spaces.
// The one invariant it defends everywhere: at most one formation per power
// per space, and a formation with nothing left in it is removed, never
// persisted empty.
type FormationManager struct {
	spaces   *SpaceManager
	factions *FactionManager
	leaders  *LeaderManager
}

func NewFormationManager(spaces *SpaceManager, factions *FactionManager, leaders *LeaderManager) *FormationManager {
	return &FormationManager{spaces: spaces, factions: factions, leaders: leaders}
}

// Add places troops and leaders for a power into a space, merging into the
// power's existing formation if one is present. The secondary count is
// cavalry for the cavalry-using power and mercenaries for everyone else;
// the distinction is decided here, once, by the unit table.
func (m *FormationManager) Add(spaceName, power string, regulars, secondary int, leaderIDs []string) (*Space, error) {
	if regulars < 0 || secondary < 0 {
		return nil, fmt.Errorf("troop counts must be non-negative: %w", ErrInvalidInput)
	}
	if !rules.Known(rules.Power(power)) {
		return nil, fmt.Errorf("unknown power %s: %w", power, ErrInvalidInput)
	}

	sp, err := m.spaces.Get(spaceName)
	if err != nil {
		return nil, err
	}

	for _, id := range leaderIDs {
		if err := m.checkLeader(id, power, sp); err != nil {
			return nil, err
		}
	}

	entry := m.findFormation(sp, power)
	if entry == nil {
		sp.Formations = append(sp.Formations, Formation{Power: power})
		entry = &sp.Formations[len(sp.Formations)-1]
	}

	entry.Regulars += regulars
	if rules.SecondaryUnit(rules.Power(power)) == rules.UnitCavalry {
		entry.Cavalry += secondary
	} else {
		entry.Mercenaries += secondary
	}
	for _, id := range leaderIDs {
		entry.Leaders = union(entry.Leaders, store.NormalizeID(id))
	}

	if err := m.spaces.Save(sp); err != nil {
		return nil, err
	}
	return sp, nil
}

// Remove takes troops and the named leaders out of a power's formation.
// If the formation ends up with zero troops and zero leaders, the entry is
// deleted entirely.
func (m *FormationManager) Remove(spaceName, power string, regulars, secondary int, leaderIDs []string) (*Space, error) {
	if regulars < 0 || secondary < 0 {
		return nil, fmt.Errorf("troop counts must be non-negative: %w", ErrInvalidInput)
	}

	sp, err := m.spaces.Get(spaceName)
	if err != nil {
		return nil, err
	}

	entry := m.findFormation(sp, power)
	if entry == nil {
		return nil, fmt.Errorf("%s has no formation in %s: %w", power, sp.Name, ErrNotFound)
	}

	if entry.Regulars < regulars || entry.Secondary() < secondary {
		return nil, fmt.Errorf("insufficient troops in %s: have %d/%d, remove %d/%d: %w",
			sp.Name, entry.Regulars, entry.Secondary(), regulars, secondary, ErrExhausted)
	}
	for _, id := range leaderIDs {
		if !contains(entry.Leaders, store.NormalizeID(id)) {
			return nil, fmt.Errorf("leader %s is not in %s's formation at %s: %w", id, power, sp.Name, ErrNotFound)
		}
	}

	entry.Regulars -= regulars
	if rules.SecondaryUnit(rules.Power(power)) == rules.UnitCavalry {
		entry.Cavalry -= secondary
	} else {
		entry.Mercenaries -= secondary
	}
	for _, id := range leaderIDs {
		entry.Leaders = without(entry.Leaders, store.NormalizeID(id))
	}

	if entry.Empty() {
		m.deleteFormation(sp, power)
	}

	if err := m.spaces.Save(sp); err != nil {
		return nil, err
	}
	return sp, nil
}

// HasEnemyFormations reports whether the space holds a formation belonging
// to a power that is neither the given power nor one of its current allies.
func (m *FormationManager) HasEnemyFormations(spaceName, power string) (bool, error) {
	sp, err := m.spaces.Get(spaceName)
	if err != nil {
		return false, err
	}
	f, err := m.factions.Get(power)
	if err != nil {
		return false, err
	}

	for _, entry := range sp.Formations {
		if entry.Power == power {
			continue
		}
		if !f.IsAlliedWith(entry.Power) {
			return true, nil
		}
	}
	return false, nil
}

// checkLeader validates a leader for attachment: owned by the power,
// active, not captured, and admirals only where the space has a port.
func (m *FormationManager) checkLeader(id, power string, sp *Space) error {
	l, err := m.leaders.Get(id)
	if err != nil {
		return err
	}
	if l.Faction != power {
		return fmt.Errorf("leader %s belongs to %s, not %s: %w", l.Name, l.Faction, power, ErrInvalidInput)
	}
	if !l.Active {
		return fmt.Errorf("leader %s is not active: %w", l.Name, ErrIneligible)
	}
	if l.Captured {
		return fmt.Errorf("leader %s is captured: %w", l.Name, ErrIneligible)
	}
	if l.Type == LeaderNavy && !sp.Port {
		return fmt.Errorf("naval leader %s needs a port, %s has none: %w", l.Name, sp.Name, ErrIneligible)
	}
	return nil
}

func (m *FormationManager) findFormation(sp *Space, power string) *Formation {
	for i := range sp.Formations {
		if sp.Formations[i].Power == power {
			return &sp.Formations[i]
		}
	}
	return nil
}

func (m *FormationManager) deleteFormation(sp *Space, power string) {
	out := sp.Formations[:0]
	for _, entry := range sp.Formations {
		if entry.Power != power {
			out = append(out, entry)
		}
	}
	sp.Formations = out
}
