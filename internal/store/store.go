// Package store implements the per-game document store. Every entity is a
// single JSON file under the game's directory tree, keyed by a normalized
// id. The store offers read/write/list primitives only; all game semantics
// live in the managers built on top of it.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// Kind names an entity subtree within a game directory.
type Kind string

const (
	KindFaction    Kind = "factions"
	KindSpace      Kind = "spaces"
	KindSeaZone    Kind = "seazones"
	KindRuler      Kind = "rulers"
	KindLeader     Kind = "leaders"
	KindReformer   Kind = "reformers"
	KindDebater    Kind = "debaters"
	KindElectorate Kind = "electorates"
	KindCard       Kind = "cards"
	KindStatus     Kind = "status"
	KindHistory    Kind = "command_history"
)

// kinds lists every subtree created for a new game.
var kinds = []Kind{
	KindFaction, KindSpace, KindSeaZone, KindRuler, KindLeader,
	KindReformer, KindDebater, KindElectorate, KindCard, KindStatus,
	KindHistory,
}

// ErrNotFound is returned when the requested document does not exist.
var ErrNotFound = fmt.Errorf("document not found")

// Store is a handle to one game instance's document tree. All mutating
// callers must hold the store's lock for the full read-modify-write cycle;
// the session layer does this around every command.
type Store struct {
	root string
	mu   *sync.Mutex
}

// NormalizeID lowercases an id and replaces spaces with underscores so
// lookups are insensitive to how the caller spelled the name.
func NormalizeID(id string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(id)), " ", "_")
}

// Lock acquires the game instance's mutation lock.
func (s *Store) Lock() { s.mu.Lock() }

// Unlock releases the game instance's mutation lock.
func (s *Store) Unlock() { s.mu.Unlock() }

// Root returns the game directory this store is bound to.
func (s *Store) Root() string { return s.root }

func (s *Store) path(kind Kind, id string) string {
	return filepath.Join(s.root, string(kind), NormalizeID(id)+".json")
}

// Read loads and decodes the document kind/id into v. The raw document is
// validated against the kind's schema before decoding; a document that does
// not validate aborts the current operation but never the process.
func (s *Store) Read(kind Kind, id string, v any) error {
	raw, err := os.ReadFile(s.path(kind, id))
	if os.IsNotExist(err) {
		return fmt.Errorf("%s/%s: %w", kind, NormalizeID(id), ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to read %s/%s: %w", kind, id, err)
	}

	if err := validate(kind, raw); err != nil {
		return fmt.Errorf("corrupt document %s/%s: %w", kind, id, err)
	}

	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("failed to decode %s/%s: %w", kind, id, err)
	}
	return nil
}

// Write marshals v and atomically replaces the document kind/id.
func (s *Store) Write(kind Kind, id string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s/%s: %w", kind, id, err)
	}

	path := s.path(kind, id)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create %s subtree: %w", kind, err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write %s/%s: %w", kind, id, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to commit %s/%s: %w", kind, id, err)
	}
	return nil
}

// Exists reports whether the document kind/id is present.
func (s *Store) Exists(kind Kind, id string) bool {
	_, err := os.Stat(s.path(kind, id))
	return err == nil
}

// List returns the sorted ids of every document of the given kind.
func (s *Store) List(kind Kind) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(s.root, string(kind)))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", kind, err)
	}

	var ids []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		ids = append(ids, strings.TrimSuffix(name, ".json"))
	}
	sort.Strings(ids)
	return ids, nil
}
