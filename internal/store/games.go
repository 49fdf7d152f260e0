package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// GameManager maps game ids to document trees under a common root directory
// and hands out Store handles. Handles for the same game id share one
// mutation lock, which serializes commands per game instance.
type GameManager struct {
	GamesDir string

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewGameManager returns a manager rooted at the given games directory.
func NewGameManager(gamesDir string) *GameManager {
	return &GameManager{
		GamesDir: gamesDir,
		locks:    make(map[string]*sync.Mutex),
	}
}

func (g *GameManager) gamePath(gameID string) string {
	return filepath.Join(g.GamesDir, NormalizeID(gameID))
}

func (g *GameManager) lockFor(gameID string) *sync.Mutex {
	g.mu.Lock()
	defer g.mu.Unlock()
	id := NormalizeID(gameID)
	if l, ok := g.locks[id]; ok {
		return l
	}
	l := &sync.Mutex{}
	g.locks[id] = l
	return l
}

// Create builds the standard subtree layout for a new game instance.
func (g *GameManager) Create(gameID string) (*Store, error) {
	path := g.gamePath(gameID)
	if _, err := os.Stat(path); err == nil {
		return nil, fmt.Errorf("game %s already exists", NormalizeID(gameID))
	}

	for _, kind := range kinds {
		dir := filepath.Join(path, string(kind))
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return &Store{root: path, mu: g.lockFor(gameID)}, nil
}

// Load opens the document tree of an existing game instance.
func (g *GameManager) Load(gameID string) (*Store, error) {
	path := g.gamePath(gameID)
	if stat, err := os.Stat(path); err != nil || !stat.IsDir() {
		return nil, fmt.Errorf("game directory not found: %s", path)
	}
	return &Store{root: path, mu: g.lockFor(gameID)}, nil
}

// List returns the ids of every game instance under the games directory.
func (g *GameManager) List() ([]string, error) {
	entries, err := os.ReadDir(g.GamesDir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}

	var ids []string
	for _, e := range entries {
		if e.IsDir() {
			ids = append(ids, e.Name())
		}
	}
	sort.Strings(ids)
	return ids, nil
}
