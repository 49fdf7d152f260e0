package data

import (
	"bytes"
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/mikyjpeg/asynchis/internal/game"
)

//go:embed defaults/*.yaml
var defaults embed.FS

// Loader reads the read-only reference data layer. External data
// directories are searched in order; the embedded default set is the
// final fallback, so a bare install always has a complete dataset.
type Loader struct {
	dataDirs []string
}

// NewLoader initializes a loader with the given data directory fallback hierarchy.
func NewLoader(dataDirs []string) *Loader {
	return &Loader{dataDirs: dataDirs}
}

// Set is one complete reference dataset.
type Set struct {
	Factions    []FactionRecord
	Spaces      []SpaceRecord
	SeaZones    []SeaZoneRecord
	Rulers      []RulerRecord
	Leaders     []LeaderRecord
	Reformers   []ReformerRecord
	Debaters    []DebaterRecord
	Electorates []ElectorateRecord
	Cards       []CardRecord
	Actions     []game.ActionDef
}

// Count returns the number of documents seeding this set will write.
func (s *Set) Count() int {
	return len(s.Factions) + len(s.Spaces) + len(s.SeaZones) + len(s.Rulers) +
		len(s.Leaders) + len(s.Reformers) + len(s.Debaters) + len(s.Electorates) +
		len(s.Cards) + 1 // trailing status document
}

// LoadSet reads the full dataset, one YAML file per entity kind.
func (l *Loader) LoadSet() (*Set, error) {
	set := &Set{}
	files := []struct {
		ref    string
		target any
	}{
		{"factions.yaml", &set.Factions},
		{"spaces.yaml", &set.Spaces},
		{"seazones.yaml", &set.SeaZones},
		{"rulers.yaml", &set.Rulers},
		{"leaders.yaml", &set.Leaders},
		{"reformers.yaml", &set.Reformers},
		{"debaters.yaml", &set.Debaters},
		{"electorates.yaml", &set.Electorates},
		{"cards.yaml", &set.Cards},
		{"actions.yaml", &set.Actions},
	}
	for _, f := range files {
		if err := l.load(f.ref, f.target); err != nil {
			return nil, err
		}
	}
	return set, nil
}

// LoadActions reads only the action definitions; sessions need these even
// when no new game is being seeded.
func (l *Loader) LoadActions() ([]game.ActionDef, error) {
	var defs []game.ActionDef
	if err := l.load("actions.yaml", &defs); err != nil {
		return nil, err
	}
	return defs, nil
}

func (l *Loader) load(ref string, target any) error {
	for _, dir := range l.dataDirs {
		path := filepath.Join(dir, ref)
		f, err := os.Open(path)
		if err != nil {
			continue
		}
		defer f.Close()
		if err := yaml.NewDecoder(f).Decode(target); err != nil {
			return fmt.Errorf("failed to decode yaml reference %s: %w", ref, err)
		}
		return nil
	}

	raw, err := defaults.ReadFile(filepath.Join("defaults", ref))
	if err != nil {
		return fmt.Errorf("could not find reference %s in any data directory or the embedded defaults", ref)
	}
	if err := yaml.NewDecoder(bytes.NewReader(raw)).Decode(target); err != nil {
		return fmt.Errorf("failed to decode embedded reference %s: %w", ref, err)
	}
	return nil
}
