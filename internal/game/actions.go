package game

import (
	"fmt"

	"github.com/mikyjpeg/asynchis/internal/rules"
)

// ActionDef is the static definition of one gameplay action: who may take
// it and what it costs. Definitions are reference data loaded once per
// session, not per-game documents.
type ActionDef struct {
	ID        string         `yaml:"id" json:"id"`
	Name      string         `yaml:"name" json:"name"`
	Cost      int            `yaml:"cost" json:"cost"`
	Costs     map[string]int `yaml:"costs,omitempty" json:"costs,omitempty"`
	Factions  []string       `yaml:"factions,omitempty" json:"factions,omitempty"`
	Condition string         `yaml:"condition,omitempty" json:"condition,omitempty"`
}

// ActionsManager is the single legality and cost gate. Every mutating
// action passes through Spend before it may touch formation, naval or
// space state.
type ActionsManager struct {
	defs     map[string]ActionDef
	factions *FactionManager
	cards    *CardManager
	eval     *rules.Evaluator
}

func NewActionsManager(defs []ActionDef, factions *FactionManager, cards *CardManager, eval *rules.Evaluator) *ActionsManager {
	byID := make(map[string]ActionDef, len(defs))
	for _, d := range defs {
		byID[d.ID] = d
	}
	return &ActionsManager{defs: byID, factions: factions, cards: cards, eval: eval}
}

// Definition returns the static definition of an action.
func (m *ActionsManager) Definition(actionID string) (ActionDef, error) {
	d, ok := m.defs[actionID]
	if !ok {
		return ActionDef{}, fmt.Errorf("unknown action %s: %w", actionID, ErrNotFound)
	}
	return d, nil
}

// Validate confirms the faction may take the action: the action must
// exist, the faction must be enumerated as eligible, must have a bound
// controller, and any eligibility condition must hold.
func (m *ActionsManager) Validate(actionID, faction string) error {
	d, err := m.Definition(actionID)
	if err != nil {
		return err
	}

	f, err := m.factions.Get(faction)
	if err != nil {
		return err
	}
	if len(d.Factions) > 0 && !contains(d.Factions, f.Name) {
		return fmt.Errorf("%s may not perform %s: %w", f.Name, d.ID, ErrIneligible)
	}
	if f.Controller == "" {
		return fmt.Errorf("faction %s has no bound controller: %w", f.Name, ErrIneligible)
	}

	if d.Condition != "" {
		st, err := m.cards.Status()
		if err != nil {
			return err
		}
		ok, err := m.eval.EvalBool(d.Condition, map[string]any{
			"faction": map[string]any{
				"name":           f.Name,
				"active":         f.Active,
				"victory_points": int64(f.VictoryPoints),
				"allies":         f.Allies,
				"at_war_with":    f.AtWarWith,
			},
			"turn":     int64(st.Turn),
			"flags":    st.Flags,
			"metadata": map[string]any{},
		})
		if err != nil {
			return fmt.Errorf("action %s condition: %w", d.ID, err)
		}
		if !ok {
			return fmt.Errorf("%s does not meet the conditions for %s: %w", f.Name, d.ID, ErrIneligible)
		}
	}
	return nil
}

// Cost returns the action's CP cost for a faction, defaulting to 1 when
// the definition leaves it unspecified.
func (m *ActionsManager) Cost(actionID, faction string) (int, error) {
	d, err := m.Definition(actionID)
	if err != nil {
		return 0, err
	}
	if c, ok := d.Costs[faction]; ok {
		return c, nil
	}
	if d.Cost > 0 {
		return d.Cost, nil
	}
	return 1, nil
}

// Spend re-validates and deducts the action's cost from the current
// impulse budget, returning the remaining balance. The budget never goes
// negative; an unaffordable action fails instead.
func (m *ActionsManager) Spend(actionID, faction string) (int, error) {
	if err := m.Validate(actionID, faction); err != nil {
		return 0, err
	}
	cost, err := m.Cost(actionID, faction)
	if err != nil {
		return 0, err
	}

	st, err := m.cards.Status()
	if err != nil {
		return 0, err
	}
	if st.AvailableCP < cost {
		return 0, fmt.Errorf("action %s costs %d CP, %d available: %w", actionID, cost, st.AvailableCP, ErrExhausted)
	}
	st.AvailableCP -= cost
	if err := m.cards.SaveStatus(st); err != nil {
		return 0, err
	}
	return st.AvailableCP, nil
}

// Credit returns CP to the current impulse budget. Undo handlers use it to
// give back what Spend deducted.
func (m *ActionsManager) Credit(amount int) error {
	if amount < 0 {
		return fmt.Errorf("credit must be non-negative: %w", ErrInvalidInput)
	}
	st, err := m.cards.Status()
	if err != nil {
		return err
	}
	st.AvailableCP += amount
	return m.cards.SaveStatus(st)
}
