// Descriptor loading — JSON files checked against an embedded schema
// before decoding, so malformed descriptors fail at load time with a
// schema path rather than as odd behavior mid-simulation.
package material

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const schemaJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["id"],
  "properties": {
    "id": {"type": "string", "minLength": 1},
    "name": {"type": "string"},
    "physics": {
      "type": "object",
      "properties": {
        "mass": {"type": "number", "exclusiveMinimum": 0},
        "friction": {"type": "number", "minimum": 0, "maximum": 1},
        "bounce": {"type": "number", "minimum": 0}
      },
      "additionalProperties": false
    },
    "needs": {
      "type": "object",
      "properties": {
        "resources": {
          "type": "array",
          "items": {
            "type": "object",
            "required": ["id", "depletionRate", "criticalThreshold"],
            "properties": {
              "id": {"type": "string", "minLength": 1},
              "depletionRate": {"type": "number", "minimum": 0},
              "criticalThreshold": {"type": "number", "minimum": 0, "maximum": 1},
              "initialLevel": {"type": "number", "minimum": 0, "maximum": 1},
              "emotionalImpact": {"$ref": "#/$defs/emotionDelta"}
            }
          }
        }
      }
    },
    "ontology": {
      "type": "object",
      "properties": {
        "emotionBaseline": {"$ref": "#/$defs/emotionDelta"}
      }
    },
    "triggers": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["key", "op", "effect"],
        "properties": {
          "key": {"type": "string", "minLength": 1},
          "op": {"enum": ["gt", "lt", "eq"]},
          "value": {"type": "number"},
          "match": {"type": "string"},
          "effect": {"$ref": "#/$defs/emotionDelta"}
        }
      }
    }
  },
  "$defs": {
    "emotionDelta": {
      "type": "object",
      "properties": {
        "valence": {"type": "number", "minimum": -2, "maximum": 2},
        "arousal": {"type": "number", "minimum": -1, "maximum": 1},
        "dominance": {"type": "number", "minimum": -1, "maximum": 1}
      },
      "additionalProperties": false
    }
  }
}`

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		c := jsonschema.NewCompiler()
		if err := c.AddResource("material.schema.json", strings.NewReader(schemaJSON)); err != nil {
			schemaErr = err
			return
		}
		schema, schemaErr = c.Compile("material.schema.json")
	})
	return schema, schemaErr
}

// Parse decodes and validates a single descriptor from JSON bytes.
func Parse(raw []byte) (*Descriptor, error) {
	sch, err := compiledSchema()
	if err != nil {
		return nil, fmt.Errorf("material schema: %w", err)
	}

	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil, fmt.Errorf("material: %w", err)
	}
	if err := sch.Validate(generic); err != nil {
		return nil, fmt.Errorf("material: %w", err)
	}

	var d Descriptor
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("material: %w", err)
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return &d, nil
}

// LoadFile reads and parses one descriptor file.
func LoadFile(path string) (*Descriptor, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	d, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// LoadDir loads every *.json descriptor under dir into a registry,
// in lexical order.
func LoadDir(dir string) (Map, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".json") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	m := make(Map, len(names))
	for _, name := range names {
		d, err := LoadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		if _, dup := m[d.ID]; dup {
			return nil, fmt.Errorf("%s: duplicate material id %q", name, d.ID)
		}
		m[d.ID] = d
	}
	return m, nil
}
