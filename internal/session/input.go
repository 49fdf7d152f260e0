package session

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mikyjpeg/asynchis/internal/game"
)

// params wraps a command's parameter map with typed accessors. Values may
// arrive as native Go types or as strings parsed from a command line.
type params map[string]any

func (p params) has(key string) bool {
	_, ok := p[key]
	return ok
}

func (p params) str(key string) string {
	switch v := p[key].(type) {
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	default:
		return ""
	}
}

func (p params) num(key string) int {
	switch v := p[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	case string:
		n, _ := strconv.Atoi(v)
		return n
	default:
		return 0
	}
}

func (p params) boolean(key string) bool {
	switch v := p[key].(type) {
	case bool:
		return v
	case string:
		b, _ := strconv.ParseBool(v)
		return b
	default:
		return false
	}
}

func (p params) list(key string) []string {
	switch v := p[key].(type) {
	case []string:
		return v
	case []any:
		var out []string
		for _, e := range v {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case string:
		if v == "" {
			return nil
		}
		return strings.Split(v, ",")
	default:
		return nil
	}
}

// loans parses a loan list given as "lender:count" pairs, e.g.
// "venice:2,genoa:1".
func (p params) loans(key string) ([]game.Loan, error) {
	raw := p.list(key)
	var out []game.Loan
	for _, item := range raw {
		parts := strings.SplitN(item, ":", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("malformed loan %q, want lender:count: %w", item, game.ErrInvalidInput)
		}
		count, err := strconv.Atoi(parts[1])
		if err != nil {
			return nil, fmt.Errorf("malformed loan count in %q: %w", item, game.ErrInvalidInput)
		}
		out = append(out, game.Loan{Power: parts[0], Count: count})
	}
	return out, nil
}

// ParseInput turns one REPL line into a Command. The grammar is the op
// name followed by key=value pairs:
//
//	add_formation space=istanbul power=ottoman regulars=5 secondary=3
//	declare_war target=france action=declare_war
//
// The actor and faction come from the surrounding client context, not the
// line itself.
func ParseInput(line, actor, faction string) (Command, error) {
	fields := strings.Fields(strings.TrimSpace(line))
	if len(fields) == 0 {
		return Command{}, fmt.Errorf("empty command: %w", game.ErrInvalidInput)
	}

	cmd := Command{
		Actor:   actor,
		Faction: faction,
		Op:      fields[0],
		Params:  map[string]any{},
	}
	for _, field := range fields[1:] {
		key, value, ok := strings.Cut(field, "=")
		if !ok || key == "" {
			return Command{}, fmt.Errorf("malformed parameter %q, want key=value: %w", field, game.ErrInvalidInput)
		}
		cmd.Params[key] = value
	}
	return cmd, nil
}
