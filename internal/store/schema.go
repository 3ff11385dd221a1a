package store

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// JSON schemas for the persisted tracker exports. Validation runs on both
// save and load: the database accepts nothing malformed, and a database
// edited by hand cannot hand a broken state to a tracker restore.

var bktSnapshotSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"default_params": bktParamsSchema,
		"records": map[string]any{
			"type": "object",
			"additionalProperties": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"skill_id":    map[string]any{"type": "string"},
					"topic_id":    map[string]any{"type": "string"},
					"subtopic_id": map[string]any{"type": "string"},
					"mastery":     map[string]any{"type": "number", "minimum": 0, "maximum": 1},
					"params":      bktParamsSchema,
					"attempts":    map[string]any{"type": "integer", "minimum": 0},
					"correct":     map[string]any{"type": "integer", "minimum": 0},
					"streak":      map[string]any{"type": "integer", "minimum": 0},
					"best_streak": map[string]any{"type": "integer", "minimum": 0},
					"response_history": map[string]any{
						"type":     "array",
						"items":    map[string]any{"type": "boolean"},
						"maxItems": 20,
					},
					"mastery_history": map[string]any{
						"type":     "array",
						"items":    map[string]any{"type": "number", "minimum": 0, "maximum": 1},
						"maxItems": 20,
					},
					"last_updated": map[string]any{"type": "string"},
				},
				"required": []any{"skill_id", "topic_id", "mastery", "params", "attempts", "correct"},
			},
		},
	},
	"required": []any{"default_params", "records"},
}

var bktParamsSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"p_l0": map[string]any{"type": "number", "minimum": 0, "maximum": 1},
		"p_t":  map[string]any{"type": "number", "minimum": 0, "maximum": 1},
		"p_g":  map[string]any{"type": "number", "minimum": 0, "maximum": 1},
		"p_s":  map[string]any{"type": "number", "minimum": 0, "maximum": 1},
	},
	"required": []any{"p_l0", "p_t", "p_g", "p_s"},
}

var emaSnapshotSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"alpha": map[string]any{"type": "number", "exclusiveMinimum": 0, "exclusiveMaximum": 1},
		"records": map[string]any{
			"type": "object",
			"additionalProperties": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"topic_id":      map[string]any{"type": "string"},
					"subtopic_id":   map[string]any{"type": "string"},
					"mastery_score": map[string]any{"type": "number", "minimum": 0, "maximum": 1},
					"attempts":      map[string]any{"type": "integer", "minimum": 0},
					"correct":       map[string]any{"type": "integer", "minimum": 0},
					"streak":        map[string]any{"type": "integer", "minimum": 0},
					"best_streak":   map[string]any{"type": "integer", "minimum": 0},
					"history": map[string]any{
						"type":     "array",
						"items":    map[string]any{"type": "number"},
						"maxItems": 20,
					},
					"last_updated": map[string]any{"type": "string"},
				},
				"required": []any{"topic_id", "mastery_score", "attempts", "correct"},
			},
		},
	},
	"required": []any{"alpha", "records"},
}

var snapshotSchemas = map[string]map[string]any{
	TrackerBKT: bktSnapshotSchema,
	TrackerEMA: emaSnapshotSchema,
}

// compiledSchemas caches compiled schemas by tracker kind.
var compiledSchemas sync.Map // map[string]*jsonschema.Schema

// ValidateSnapshot checks raw tracker-export JSON against the schema for the
// tracker kind.
func ValidateSnapshot(tracker string, raw json.RawMessage) error {
	def, ok := snapshotSchemas[tracker]
	if !ok {
		return fmt.Errorf("unknown tracker kind %q", tracker)
	}

	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	compiled, err := compiledSchema(tracker, def)
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}

	if err := compiled.Validate(parsed); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}

// compiledSchema returns a cached compiled schema or compiles and caches it.
func compiledSchema(name string, def map[string]any) (*jsonschema.Schema, error) {
	if cached, ok := compiledSchemas.Load(name); ok {
		return cached.(*jsonschema.Schema), nil
	}

	// The jsonschema library expects a parsed JSON value (any), not raw
	// bytes or Go maps with typed values. Round-trip through JSON first.
	defBytes, err := json.Marshal(def)
	if err != nil {
		return nil, fmt.Errorf("marshal schema definition: %w", err)
	}
	var defParsed any
	if err := json.Unmarshal(defBytes, &defParsed); err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	schemaURL := fmt.Sprintf("schema://%s-snapshot.json", name)
	if err := c.AddResource(schemaURL, defParsed); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}

	compiled, err := c.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}

	compiledSchemas.Store(name, compiled)
	return compiled, nil
}
