package game

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/mikyjpeg/asynchis/internal/store"
)

// HistoryManager keeps the append-only command history: one document per
// entry, sequentially numbered. The next id is computed once when the
// manager is opened and incremented in memory afterwards; the manager's
// own lock serializes the increment-and-append sequence so concurrent
// writers can never mint duplicate ids.
type HistoryManager struct {
	store *store.Store

	mu     sync.Mutex
	nextID int
}

// NewHistoryManager opens the history of one game, scanning existing
// entries a single time to seed the id counter.
func NewHistoryManager(s *store.Store) (*HistoryManager, error) {
	h := &HistoryManager{store: s, nextID: 1}

	ids, err := s.List(store.KindHistory)
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		n, err := strconv.Atoi(id)
		if err != nil {
			continue
		}
		if n >= h.nextID {
			h.nextID = n + 1
		}
	}
	return h, nil
}

func historyDocID(id int) string {
	return fmt.Sprintf("%06d", id)
}

// Record appends a new entry with the next monotonic id. Failed attempts
// are recorded too; the log is the audit trail, not just the undo source.
func (h *HistoryManager) Record(entryType EntryType, payload any, actor, command string, success bool, opErr error) (*HistoryEntry, error) {
	var raw json.RawMessage
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal history payload: %w", err)
		}
		raw = data
	}

	entry := &HistoryEntry{
		Timestamp: time.Now().UTC(),
		Actor:     actor,
		Command:   command,
		Type:      entryType,
		Payload:   raw,
		Success:   success,
	}
	if opErr != nil {
		entry.Error = opErr.Error()
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	entry.ID = h.nextID
	if err := h.store.Write(store.KindHistory, historyDocID(entry.ID), entry); err != nil {
		return nil, err
	}
	h.nextID++
	return entry, nil
}

// Get loads a history entry by id. Entries already undone are treated as
// gone for lookup purposes.
func (h *HistoryManager) Get(id int) (*HistoryEntry, error) {
	var entry HistoryEntry
	if err := h.store.Read(store.KindHistory, historyDocID(id), &entry); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("history entry %d: %w", id, ErrNotFound)
		}
		return nil, err
	}
	if entry.Undone {
		return nil, fmt.Errorf("history entry %d is already undone: %w", id, ErrNotFound)
	}
	return &entry, nil
}

// Last returns the most recent successful entry that has not been
// undone. Failed attempts are skipped; they changed nothing.
func (h *HistoryManager) Last() (*HistoryEntry, error) {
	h.mu.Lock()
	last := h.nextID - 1
	h.mu.Unlock()

	for id := last; id >= 1; id-- {
		entry, err := h.Get(id)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				continue
			}
			return nil, err
		}
		if !entry.Success {
			continue
		}
		return entry, nil
	}
	return nil, fmt.Errorf("history is empty: %w", ErrNotFound)
}

// List returns all entries in id order, including failed and undone ones.
func (h *HistoryManager) List() ([]*HistoryEntry, error) {
	ids, err := h.store.List(store.KindHistory)
	if err != nil {
		return nil, err
	}
	var entries []*HistoryEntry
	for _, id := range ids {
		var entry HistoryEntry
		if err := h.store.Read(store.KindHistory, id, &entry); err != nil {
			return nil, err
		}
		entries = append(entries, &entry)
	}
	return entries, nil
}

// MarkUndone flips the undone flag on an entry. This is the only mutation
// the log permits, and it happens at most once per entry.
func (h *HistoryManager) MarkUndone(id int) error {
	entry, err := h.Get(id)
	if err != nil {
		return err
	}
	entry.Undone = true
	return h.store.Write(store.KindHistory, historyDocID(id), entry)
}
