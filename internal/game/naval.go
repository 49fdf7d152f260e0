package game

import (
	"errors"
	"fmt"

	"github.com/mikyjpeg/asynchis/internal/rules"
)

// NavalManager mirrors the formation manager for squadron entries, which
// may live in a port space or a sea zone. It also keeps the loan
// sub-ledger: squadrons lent by allied powers into another power's entry.
type NavalManager struct {
	spaces   *SpaceManager
	seazones *SeaZoneManager
	factions *FactionManager
}

func NewNavalManager(spaces *SpaceManager, seazones *SeaZoneManager, factions *FactionManager) *NavalManager {
	return &NavalManager{spaces: spaces, seazones: seazones, factions: factions}
}

// AddSquadron places naval units for a power at a location. The count is
// corsairs for the corsair power and squadrons for everyone else. Each loan
// merges into an existing loan from the same lender; lenders must be allied
// with the receiving power when the loan is added.
func (m *NavalManager) AddSquadron(location, power string, count int, loans []Loan) error {
	if count < 0 {
		return fmt.Errorf("squadron count must be non-negative: %w", ErrInvalidInput)
	}
	if !rules.Known(rules.Power(power)) {
		return fmt.Errorf("unknown power %s: %w", power, ErrInvalidInput)
	}

	if len(loans) > 0 {
		borrower, err := m.factions.Get(power)
		if err != nil {
			return err
		}
		for _, loan := range loans {
			if loan.Count < 0 {
				return fmt.Errorf("loan count must be non-negative: %w", ErrInvalidInput)
			}
			if !borrower.IsAlliedWith(loan.Power) {
				return fmt.Errorf("%s is not allied with %s, cannot lend squadrons: %w", loan.Power, power, ErrIneligible)
			}
		}
	}

	squads, save, err := m.resolve(location)
	if err != nil {
		return err
	}

	entry := findSquadron(squads, power)
	if entry == nil {
		*squads = append(*squads, Squadron{Power: power})
		entry = &(*squads)[len(*squads)-1]
	}

	if rules.Power(power) == rules.CorsairPower {
		entry.Corsairs += count
	} else {
		entry.Squadrons += count
	}
	for _, loan := range loans {
		merged := false
		for i := range entry.Loans {
			if entry.Loans[i].Power == loan.Power {
				entry.Loans[i].Count += loan.Count
				merged = true
				break
			}
		}
		if !merged {
			entry.Loans = append(entry.Loans, loan)
		}
	}

	return save()
}

// RemoveSquadron takes naval units and loan reductions out of a power's
// entry. An entry with zero own units and no loans left is deleted.
func (m *NavalManager) RemoveSquadron(location, power string, count int, loans []Loan) error {
	if count < 0 {
		return fmt.Errorf("squadron count must be non-negative: %w", ErrInvalidInput)
	}

	squads, save, err := m.resolve(location)
	if err != nil {
		return err
	}

	entry := findSquadron(squads, power)
	if entry == nil {
		return fmt.Errorf("%s has no squadron at %s: %w", power, location, ErrNotFound)
	}

	if rules.Power(power) == rules.CorsairPower {
		if entry.Corsairs < count {
			return fmt.Errorf("insufficient corsairs at %s: have %d, remove %d: %w", location, entry.Corsairs, count, ErrExhausted)
		}
		entry.Corsairs -= count
	} else {
		if entry.Squadrons < count {
			return fmt.Errorf("insufficient squadrons at %s: have %d, remove %d: %w", location, entry.Squadrons, count, ErrExhausted)
		}
		entry.Squadrons -= count
	}

	for _, loan := range loans {
		reduced := false
		for i := range entry.Loans {
			if entry.Loans[i].Power != loan.Power {
				continue
			}
			if entry.Loans[i].Count < loan.Count {
				return fmt.Errorf("insufficient loaned squadrons from %s at %s: have %d, remove %d: %w",
					loan.Power, location, entry.Loans[i].Count, loan.Count, ErrExhausted)
			}
			entry.Loans[i].Count -= loan.Count
			reduced = true
			break
		}
		if !reduced {
			return fmt.Errorf("no loan from %s at %s: %w", loan.Power, location, ErrNotFound)
		}
	}

	// Drop fully repaid loans, then the entry itself if nothing remains.
	kept := entry.Loans[:0]
	for _, loan := range entry.Loans {
		if loan.Count > 0 {
			kept = append(kept, loan)
		}
	}
	entry.Loans = kept
	if entry.Empty() {
		deleteSquadron(squads, power)
	}

	return save()
}

// SetPiracyToken places or clears the piracy marker on a sea zone. Placing
// requires the corsair power to have corsairs present in the zone.
func (m *NavalManager) SetPiracyToken(zone string, set bool) error {
	z, err := m.seazones.Get(zone)
	if err != nil {
		return err
	}
	if z.PiracyToken == set {
		return fmt.Errorf("piracy token in %s already %v: %w", z.Name, set, ErrConflict)
	}
	if set {
		entry := findSquadron(&z.Squadrons, string(rules.CorsairPower))
		if entry == nil || entry.Corsairs == 0 {
			return fmt.Errorf("no corsairs present in %s: %w", z.Name, ErrIneligible)
		}
	}
	z.PiracyToken = set
	return m.seazones.Save(z)
}

// resolve locates the squadron list for either a port space or a sea zone
// and returns a save closure writing the right document back.
func (m *NavalManager) resolve(location string) (*[]Squadron, func() error, error) {
	sp, err := m.spaces.Get(location)
	if err == nil {
		if !sp.Port {
			return nil, nil, fmt.Errorf("space %s has no port: %w", sp.Name, ErrInvalidInput)
		}
		return &sp.Squadrons, func() error { return m.spaces.Save(sp) }, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, nil, err
	}

	z, err := m.seazones.Get(location)
	if err != nil {
		return nil, nil, err
	}
	return &z.Squadrons, func() error { return m.seazones.Save(z) }, nil
}

func findSquadron(squads *[]Squadron, power string) *Squadron {
	for i := range *squads {
		if (*squads)[i].Power == power {
			return &(*squads)[i]
		}
	}
	return nil
}

func deleteSquadron(squads *[]Squadron, power string) {
	out := (*squads)[:0]
	for _, entry := range *squads {
		if entry.Power != power {
			out = append(out, entry)
		}
	}
	*squads = out
}
