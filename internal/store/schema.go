package store

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// documentSchema describes the persisted document shape. Collections may
// be absent (treated as empty on load), but present collections must
// have the right structure; anything else counts as corrupt and the
// loader falls back to an empty document.
var documentSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"users": map[string]any{
			"type": "object",
			"additionalProperties": map[string]any{
				"type":     "object",
				"required": []any{"id", "name", "level"},
				"properties": map[string]any{
					"id":    map[string]any{"type": "string"},
					"name":  map[string]any{"type": "string"},
					"level": map[string]any{"type": "string"},
					"interests": map[string]any{
						"type":  "array",
						"items": map[string]any{"type": "string"},
					},
					"registered_at": map[string]any{"type": "string"},
				},
			},
		},
		"plans": map[string]any{
			"type": "object",
			"additionalProperties": map[string]any{
				"type":     "object",
				"required": []any{"id", "user_id", "topic"},
				"properties": map[string]any{
					"id":       map[string]any{"type": "string"},
					"user_id":  map[string]any{"type": "string"},
					"topic":    map[string]any{"type": "string"},
					"progress": map[string]any{"type": "number", "minimum": 0, "maximum": 100},
					"objectives": map[string]any{
						"type":  "array",
						"items": map[string]any{"type": "string"},
					},
					"resources": map[string]any{
						"type":  "array",
						"items": map[string]any{"type": "string"},
					},
				},
			},
		},
		"sessions": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":     "object",
				"required": []any{"plan_id", "duration", "satisfaction", "recorded_at"},
				"properties": map[string]any{
					"plan_id":      map[string]any{"type": "string"},
					"duration":     map[string]any{"type": "integer", "exclusiveMinimum": 0},
					"satisfaction": map[string]any{"type": "number", "minimum": 0, "maximum": 10},
					"recorded_at":  map[string]any{"type": "string"},
					"notes":        map[string]any{"type": "string"},
				},
			},
		},
		"points": map[string]any{
			"type":                 "object",
			"additionalProperties": map[string]any{"type": "integer", "minimum": 0},
		},
		"achievements": map[string]any{
			"type": "object",
			"additionalProperties": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
		},
		"streaks": map[string]any{
			"type": "object",
			"additionalProperties": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"current":     map[string]any{"type": "integer", "minimum": 0},
					"max":         map[string]any{"type": "integer", "minimum": 0},
					"last_active": map[string]any{"type": "string"},
				},
			},
		},
	},
}

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

// validateDocument checks raw JSON against the document schema.
func validateDocument(raw []byte) error {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	schema, err := getCompiledSchema()
	if err != nil {
		return fmt.Errorf("compile document schema: %w", err)
	}
	if err := schema.Validate(parsed); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}

func getCompiledSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		// The jsonschema library expects a parsed JSON value, not raw
		// bytes. Marshal then unmarshal for a clean representation.
		defBytes, err := json.Marshal(documentSchema)
		if err != nil {
			compileErr = err
			return
		}
		var defParsed any
		if err := json.Unmarshal(defBytes, &defParsed); err != nil {
			compileErr = err
			return
		}

		c := jsonschema.NewCompiler()
		const schemaURL = "schema://studyquest-document.json"
		if err := c.AddResource(schemaURL, defParsed); err != nil {
			compileErr = err
			return
		}
		compiledSchema, compileErr = c.Compile(schemaURL)
	})
	return compiledSchema, compileErr
}
