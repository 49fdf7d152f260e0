package store

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schemas/*.json
var schemaFS embed.FS

// schemaFiles maps entity kinds to their document schema. Kinds without an
// entry are stored unvalidated.
var schemaFiles = map[Kind]string{
	KindFaction:    "schemas/faction.json",
	KindSpace:      "schemas/space.json",
	KindSeaZone:    "schemas/seazone.json",
	KindRuler:      "schemas/ruler.json",
	KindLeader:     "schemas/leader.json",
	KindReformer:   "schemas/person.json",
	KindDebater:    "schemas/person.json",
	KindElectorate: "schemas/electorate.json",
	KindCard:       "schemas/card.json",
	KindStatus:     "schemas/status.json",
	KindHistory:    "schemas/history_entry.json",
}

var (
	schemaOnce sync.Once
	schemas    map[Kind]*jsonschema.Schema
	schemaErr  error
)

func compileSchemas() {
	compiler := jsonschema.NewCompiler()
	schemas = make(map[Kind]*jsonschema.Schema, len(schemaFiles))
	for kind, file := range schemaFiles {
		src, err := schemaFS.ReadFile(file)
		if err != nil {
			schemaErr = fmt.Errorf("missing embedded schema %s: %w", file, err)
			return
		}
		if err := compiler.AddResource(file, bytes.NewReader(src)); err != nil {
			schemaErr = fmt.Errorf("invalid schema %s: %w", file, err)
			return
		}
		s, err := compiler.Compile(file)
		if err != nil {
			schemaErr = fmt.Errorf("failed to compile schema %s: %w", file, err)
			return
		}
		schemas[kind] = s
	}
}

// validate checks a raw document against its kind's schema.
func validate(kind Kind, raw []byte) error {
	schemaOnce.Do(compileSchemas)
	if schemaErr != nil {
		return schemaErr
	}
	s, ok := schemas[kind]
	if !ok {
		return nil
	}

	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("not valid JSON: %w", err)
	}
	if err := s.Validate(doc); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}
