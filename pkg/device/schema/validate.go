// Package schema validates free-form JSON state payloads against JSON
// Schema documents before they are translated into wire commands.
package schema

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// LightStateSchema constrains the body of a per-light state change.
const LightStateSchema = `{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type": "object",
	"properties": {
		"state": {"type": "string", "enum": ["ON", "OFF", "TOGGLE"]}
	},
	"required": ["state"],
	"additionalProperties": false
}`

// GroupStateSchema constrains the body of an all-lights state change.
// TOGGLE is absent: the firmware has no ALL_TOGGLE command.
const GroupStateSchema = `{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type": "object",
	"properties": {
		"state": {"type": "string", "enum": ["ON", "OFF"]}
	},
	"required": ["state"],
	"additionalProperties": false
}`

// Validator compiles and caches JSON Schema documents keyed by their
// raw text.
type Validator struct {
	mu    sync.RWMutex
	cache map[string]*jsonschema.Schema
}

// NewValidator returns a Validator with an empty cache.
func NewValidator() *Validator {
	return &Validator{cache: make(map[string]*jsonschema.Schema)}
}

// Validate checks payload against schemaDoc. An empty or null schema
// skips validation. Returns nil when the payload is valid.
func (v *Validator) Validate(schemaDoc json.RawMessage, payload map[string]any) error {
	if len(schemaDoc) == 0 || string(schemaDoc) == "{}" || string(schemaDoc) == "null" {
		return nil
	}

	compiled, err := v.compile(schemaDoc)
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	return compiled.Validate(payload)
}

func (v *Validator) compile(schemaDoc json.RawMessage) (*jsonschema.Schema, error) {
	key := string(schemaDoc)

	v.mu.RLock()
	compiled, ok := v.cache[key]
	v.mu.RUnlock()
	if ok {
		return compiled, nil
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	if compiled, ok := v.cache[key]; ok {
		return compiled, nil
	}

	var doc any
	if err := json.Unmarshal(schemaDoc, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal schema: %w", err)
	}

	c := jsonschema.NewCompiler()
	if err := c.AddResource("schema.json", doc); err != nil {
		return nil, err
	}
	compiled, err := c.Compile("schema.json")
	if err != nil {
		return nil, err
	}

	v.cache[key] = compiled
	return compiled, nil
}
