// Package session binds one game to its store and managers and runs the
// command pipeline: validate, charge command points, mutate, record
// history. Callers hand in opaque Commands; the session decides which
// manager acts and what gets logged.
package session

import (
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/mikyjpeg/asynchis/internal/data"
	"github.com/mikyjpeg/asynchis/internal/game"
	"github.com/mikyjpeg/asynchis/internal/rules"
	"github.com/mikyjpeg/asynchis/internal/store"
)

// Command is one request from a caller: who acts, for which faction, and
// what they want done. Params are op-specific.
type Command struct {
	Actor   string
	Faction string
	Op      string
	Params  map[string]any
}

// Result pairs the recorded history entry with a printable message.
type Result struct {
	Entry   *game.HistoryEntry
	Message string
}

// Session manages the cohesive loop of taking commands, executing them
// against the managers, and recording every attempt in the history log.
type Session struct {
	gameID string
	store  *store.Store
	loader *data.Loader
	log    *slog.Logger

	factions    *game.FactionManager
	spaces      *game.SpaceManager
	seazones    *game.SeaZoneManager
	leaders     *game.LeaderManager
	reformers   *game.ReformerManager
	debaters    *game.DebaterManager
	electorates *game.ElectorateManager
	rulers      *game.RulerManager
	formations  *game.FormationManager
	naval       *game.NavalManager
	diplomacy   *game.DiplomacyManager
	cards       *game.CardManager
	actions     *game.ActionsManager
	history     *game.HistoryManager
	undo        *game.UndoManager

	ops map[string]opDef
}

// opDef ties an operation name to its history entry type and handler.
type opDef struct {
	entry   game.EntryType
	handler func(s *Session, c Command, p params, cp int) (any, string, error)
}

// Open loads a game and wires the full manager graph. It fails fast when
// the recorded history contains entry types the undo manager cannot
// revert.
func Open(games *store.GameManager, gameID string, dataDirs []string, rng *rand.Rand, logger *slog.Logger) (*Session, error) {
	st, err := games.Load(gameID)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}

	eval, err := rules.NewEvaluator()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize rules evaluator: %w", err)
	}

	loader := data.NewLoader(dataDirs)
	defs, err := loader.LoadActions()
	if err != nil {
		return nil, fmt.Errorf("failed to load action definitions: %w", err)
	}

	s := &Session{
		gameID: gameID,
		store:  st,
		loader: loader,
		log:    logger.With("game", gameID),
	}

	s.factions = game.NewFactionManager(st)
	s.spaces = game.NewSpaceManager(st)
	s.seazones = game.NewSeaZoneManager(st)
	s.leaders = game.NewLeaderManager(st)
	s.reformers = game.NewReformerManager(st)
	s.debaters = game.NewDebaterManager(st)
	s.electorates = game.NewElectorateManager(st)
	s.rulers = game.NewRulerManager(st, s.factions, s.spaces)
	s.formations = game.NewFormationManager(s.spaces, s.factions, s.leaders)
	s.naval = game.NewNavalManager(s.spaces, s.seazones, s.factions)
	s.diplomacy = game.NewDiplomacyManager(s.factions)
	s.cards = game.NewCardManager(st, s.factions, s.rulers, eval, rng)
	s.actions = game.NewActionsManager(defs, s.factions, s.cards, eval)

	s.history, err = game.NewHistoryManager(st)
	if err != nil {
		return nil, fmt.Errorf("failed to open command history: %w", err)
	}
	s.undo = game.NewUndoManager(s.history, s.factions, s.spaces, s.seazones,
		s.leaders, s.rulers, s.formations, s.naval, s.diplomacy, s.cards, s.actions)
	if err := s.undo.VerifyCoverage(); err != nil {
		return nil, err
	}

	s.ops = opTable()
	s.log.Info("session opened")
	return s, nil
}

// GameID returns the bound game id.
func (s *Session) GameID() string { return s.gameID }

// Factions exposes the faction manager for read access.
func (s *Session) Factions() *game.FactionManager { return s.factions }

// Spaces exposes the space manager for read access.
func (s *Session) Spaces() *game.SpaceManager { return s.spaces }

// SeaZones exposes the sea zone manager for read access.
func (s *Session) SeaZones() *game.SeaZoneManager { return s.seazones }

// Status returns the current deck and impulse document.
func (s *Session) Status() (*game.Status, error) { return s.cards.Status() }

// History returns all recorded entries in id order.
func (s *Session) History() ([]*game.HistoryEntry, error) { return s.history.List() }

// Execute runs one command end to end under the game's lock. Every
// attempt is recorded, failures included; the returned Result always
// carries the logged entry when recording succeeded.
func (s *Session) Execute(c Command) (*Result, error) {
	def, ok := s.ops[c.Op]
	if !ok {
		return nil, fmt.Errorf("unknown operation %s: %w", c.Op, game.ErrUnsupported)
	}

	s.store.Lock()
	defer s.store.Unlock()

	p := params(c.Params)

	// The action param routes the command through the CP gate before any
	// state changes; setup and admin commands omit it.
	cp := 0
	var opErr error
	var payload any
	var message string

	if action := p.str("action"); action != "" {
		cost, err := s.actions.Cost(action, c.Faction)
		if err == nil {
			_, err = s.actions.Spend(action, c.Faction)
		}
		if err != nil {
			opErr = err
		} else {
			cp = cost
		}
	}

	if opErr == nil {
		payload, message, opErr = def.handler(s, c, p, cp)
		if opErr != nil && cp > 0 {
			// The mutation failed after the charge went through; give the
			// CP straight back.
			if cerr := s.actions.Credit(cp); cerr != nil {
				s.log.Error("failed to refund CP after failed command", "op", c.Op, "cp", cp, "err", cerr)
			}
		}
	}
	if payload == nil {
		payload = c.Params
	}

	entry, recErr := s.history.Record(def.entry, payload, c.Actor, c.Op, opErr == nil, opErr)
	if recErr != nil {
		return nil, fmt.Errorf("failed to record history entry: %w", recErr)
	}

	if opErr != nil {
		s.log.Warn("command failed", "op", c.Op, "faction", c.Faction, "entry", entry.ID, "err", opErr)
		return &Result{Entry: entry}, opErr
	}
	s.log.Info("command executed", "op", c.Op, "faction", c.Faction, "entry", entry.ID)
	return &Result{Entry: entry, Message: message}, nil
}

// Undo reverts one history entry by id.
func (s *Session) Undo(id int) error {
	s.store.Lock()
	defer s.store.Unlock()
	if err := s.undo.Undo(id); err != nil {
		s.log.Warn("undo failed", "entry", id, "err", err)
		return err
	}
	s.log.Info("entry undone", "entry", id)
	return nil
}

// UndoLast reverts the most recent standing entry and returns its id.
func (s *Session) UndoLast() (int, error) {
	s.store.Lock()
	defer s.store.Unlock()
	id, err := s.undo.UndoLast()
	if err != nil {
		s.log.Warn("undo failed", "entry", id, "err", err)
		return id, err
	}
	s.log.Info("entry undone", "entry", id)
	return id, nil
}
