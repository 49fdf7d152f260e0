package game

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/mikyjpeg/asynchis/internal/rules"
	"github.com/mikyjpeg/asynchis/internal/store"
)

// StatusDocID is the fixed id of the single per-game status document.
const StatusDocID = "current"

// CardManager builds and shuffles the draw pile per turn and services
// per-faction draws, discards and card plays.
type CardManager struct {
	store    *store.Store
	factions *FactionManager
	rulers   *RulerManager
	eval     *rules.Evaluator
	rng      *rand.Rand
}

// NewCardManager binds the deck engine to one game. A nil rng gets a
// time-seeded source; tests inject a fixed seed.
func NewCardManager(s *store.Store, factions *FactionManager, rulers *RulerManager, eval *rules.Evaluator, rng *rand.Rand) *CardManager {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &CardManager{store: s, factions: factions, rulers: rulers, eval: eval, rng: rng}
}

// Status loads the per-game deck and impulse document.
func (m *CardManager) Status() (*Status, error) {
	var st Status
	if err := m.store.Read(store.KindStatus, StatusDocID, &st); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return &Status{}, nil
		}
		return nil, err
	}
	return &st, nil
}

// SaveStatus persists the deck and impulse document.
func (m *CardManager) SaveStatus(st *Status) error {
	return m.store.Write(store.KindStatus, StatusDocID, st)
}

// GetCard loads one card's reference data.
func (m *CardManager) GetCard(id string) (*Card, error) {
	var c Card
	if err := m.store.Read(store.KindCard, id, &c); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("card %s: %w", store.NormalizeID(id), ErrNotFound)
		}
		return nil, err
	}
	return &c, nil
}

// ListCards returns every card id in the game's reference set.
func (m *CardManager) ListCards() ([]string, error) {
	return m.store.List(store.KindCard)
}

// ShuffleForTurn rebuilds and shuffles the draw pile for a turn. Turn 0
// deals only any-turn cards. Later turns union the current draw pile, the
// whole discard pile, the cards that become eligible this turn, and any
// conditional cards whose unlock condition now holds and that are not
// already sitting in some pile. Discard and removed piles are reset and
// the impulse pointer cleared.
func (m *CardManager) ShuffleForTurn(turn int) (*Status, error) {
	if turn < 0 {
		return nil, fmt.Errorf("turn must be non-negative: %w", ErrInvalidInput)
	}

	st, err := m.Status()
	if err != nil {
		return nil, err
	}

	ids, err := m.ListCards()
	if err != nil {
		return nil, err
	}

	inPlay := make(map[string]bool)
	for _, id := range st.Deck {
		inPlay[id] = true
	}
	for _, id := range st.Discard {
		inPlay[id] = true
	}
	for _, id := range st.Removed {
		inPlay[id] = true
	}

	var pile []string
	seen := make(map[string]bool)
	include := func(id string) {
		if !seen[id] {
			seen[id] = true
			pile = append(pile, id)
		}
	}

	if turn == 0 {
		for _, id := range ids {
			c, err := m.GetCard(id)
			if err != nil {
				return nil, err
			}
			if c.Turn == 0 && c.Condition == "" {
				include(c.ID)
			}
		}
	} else {
		for _, id := range st.Deck {
			include(id)
		}
		for _, id := range st.Discard {
			include(id)
		}
		for _, id := range ids {
			c, err := m.GetCard(id)
			if err != nil {
				return nil, err
			}
			if c.Condition != "" {
				if inPlay[c.ID] {
					continue
				}
				unlocked, err := m.eval.EvalBool(c.Condition, map[string]any{
					"turn":     int64(turn),
					"flags":    st.Flags,
					"metadata": map[string]any{},
				})
				if err != nil {
					return nil, fmt.Errorf("card %s unlock condition: %w", c.ID, err)
				}
				if unlocked {
					include(c.ID)
				}
				continue
			}
			if c.Turn == turn {
				include(c.ID)
			}
		}
	}

	// Uniform Fisher-Yates shuffle.
	for i := len(pile) - 1; i > 0; i-- {
		j := m.rng.Intn(i + 1)
		pile[i], pile[j] = pile[j], pile[i]
	}

	st.Turn = turn
	st.Deck = pile
	st.Discard = nil
	st.Removed = nil
	st.ActiveCard = ""
	st.AvailableCP = 0
	if err := m.SaveStatus(st); err != nil {
		return nil, err
	}
	return st, nil
}

// DrawCount computes a faction's per-turn draw: base rate plus the card
// modifier plus the sitting ruler's card bonus, never below zero.
func (m *CardManager) DrawCount(faction string) (int, error) {
	f, err := m.factions.Get(faction)
	if err != nil {
		return 0, err
	}
	count := f.CardsPerTurn + f.CardModifier

	ruler, err := m.rulers.CurrentRuler(f.Name)
	if err == nil {
		count += ruler.CardBonus
	} else if !errors.Is(err, ErrNotFound) {
		return 0, err
	}

	if count < 0 {
		count = 0
	}
	return count, nil
}

// Draw removes count ids from the front of the draw pile, in order, and
// appends them to the faction's hand.
func (m *CardManager) Draw(faction string, count int) ([]string, error) {
	if count < 0 {
		return nil, fmt.Errorf("draw count must be non-negative: %w", ErrInvalidInput)
	}

	st, err := m.Status()
	if err != nil {
		return nil, err
	}
	if len(st.Deck) < count {
		return nil, fmt.Errorf("deck holds %d cards, cannot draw %d: %w", len(st.Deck), count, ErrExhausted)
	}

	f, err := m.factions.Get(faction)
	if err != nil {
		return nil, err
	}

	drawn := append([]string(nil), st.Deck[:count]...)
	st.Deck = st.Deck[count:]
	f.Hand = append(f.Hand, drawn...)

	if err := m.SaveStatus(st); err != nil {
		return nil, err
	}
	if err := m.factions.Save(f); err != nil {
		return nil, err
	}
	return drawn, nil
}

// Discard moves a card out of the deck or a faction's hand into the
// discard pile, or into the removed pile when the card is single-use.
func (m *CardManager) Discard(cardID string) error {
	c, err := m.GetCard(cardID)
	if err != nil {
		return err
	}

	st, err := m.Status()
	if err != nil {
		return err
	}

	// A played card sits outside every pile while it is the active
	// impulse, so only non-active cards need pulling.
	if st.ActiveCard == c.ID {
		st.ActiveCard = ""
		st.AvailableCP = 0
	} else if err := m.pull(st, c.ID); err != nil {
		return err
	}
	if c.RemoveAfterUse {
		st.Removed = append(st.Removed, c.ID)
	} else {
		st.Discard = append(st.Discard, c.ID)
	}
	return m.SaveStatus(st)
}

// PlayCard plays a card as the current impulse: the card leaves its pile,
// the impulse budget becomes the card's cost, and — when played from a
// faction's hand — that faction becomes the active player.
func (m *CardManager) PlayCard(cardID, faction string) error {
	c, err := m.GetCard(cardID)
	if err != nil {
		return err
	}

	st, err := m.Status()
	if err != nil {
		return err
	}
	if st.ActiveCard != "" {
		return fmt.Errorf("card %s is already the active impulse: %w", st.ActiveCard, ErrConflict)
	}

	if faction != "" {
		f, err := m.factions.Get(faction)
		if err != nil {
			return err
		}
		if !contains(f.Hand, c.ID) {
			return fmt.Errorf("card %s is not in %s's hand: %w", c.ID, f.Name, ErrNotFound)
		}
		f.Hand = without(f.Hand, c.ID)
		if err := m.factions.Save(f); err != nil {
			return err
		}
		st.ActivePlayer = f.Name
	} else {
		if err := m.pull(st, c.ID); err != nil {
			return err
		}
	}

	st.ActiveCard = c.ID
	st.AvailableCP = c.Cost
	return m.SaveStatus(st)
}

// pull removes a card id from whichever status pile currently holds it.
func (m *CardManager) pull(st *Status, cardID string) error {
	for _, pile := range []*[]string{&st.Deck, &st.Discard} {
		if contains(*pile, cardID) {
			*pile = without(*pile, cardID)
			return nil
		}
	}
	// Hands are per-faction documents; check them before giving up.
	factions, err := m.factions.List()
	if err != nil {
		return err
	}
	for _, name := range factions {
		f, err := m.factions.Get(name)
		if err != nil {
			return err
		}
		if contains(f.Hand, cardID) {
			f.Hand = without(f.Hand, cardID)
			return m.factions.Save(f)
		}
	}
	return fmt.Errorf("card %s is not in any pile: %w", cardID, ErrNotFound)
}
