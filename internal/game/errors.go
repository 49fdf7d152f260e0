package game

import "errors"

// The engine's error taxonomy. Every failure a manager returns wraps one of
// these sentinels so callers can classify without string matching. All are
// recoverable at the calling layer; only unreadable store documents abort
// an operation outright.
var (
	// ErrNotFound covers absent entities, actions, rulers and cards.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput covers malformed counts, wrong power for a restricted
	// unit type, and self-referential diplomacy.
	ErrInvalidInput = errors.New("invalid input")

	// ErrIneligible covers actions not permitted for a faction or state,
	// unmet excommunication preconditions, and alliance rule violations.
	ErrIneligible = errors.New("not eligible")

	// ErrExhausted covers insufficient CP, troops, squadrons or cards.
	ErrExhausted = errors.New("insufficient resources")

	// ErrConflict covers duplicate state such as "already allied".
	ErrConflict = errors.New("conflicting state")

	// ErrUnsupported covers operations with no registered handler.
	ErrUnsupported = errors.New("unsupported operation")

	// ErrUndo wraps any failure of an undo request, so callers can tell
	// "your undo failed" apart from "your original command failed".
	ErrUndo = errors.New("undo failed")
)
