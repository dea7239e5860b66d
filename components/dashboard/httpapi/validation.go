package httpapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// ErrInvalidPayload wraps request bodies that fail decoding or schema validation.
var ErrInvalidPayload = errors.New("httpapi: invalid payload")

// Payload schema names.
const (
	SchemaMetric        = "metric"
	SchemaNotifications = "notifications"
	SchemaRefresh       = "refresh"
)

var payloadSchemas = map[string]string{
	SchemaMetric: `{
		"type": "object",
		"required": ["metric"],
		"properties": {
			"metric": {"type": "string", "minLength": 1}
		}
	}`,
	SchemaNotifications: `{
		"type": "object",
		"properties": {
			"visible": {"type": "boolean"}
		},
		"additionalProperties": false
	}`,
	SchemaRefresh: `{
		"type": "object",
		"properties": {
			"reason": {"type": "string", "enum": ["tick", "manual"]}
		},
		"additionalProperties": false
	}`,
}

// PayloadValidator compiles request schemas once and validates raw bodies.
type PayloadValidator struct {
	mu       sync.RWMutex
	compiled map[string]*jsonschema.Schema
}

// NewPayloadValidator builds a validator backed by jsonschema v5.
func NewPayloadValidator() *PayloadValidator {
	return &PayloadValidator{compiled: make(map[string]*jsonschema.Schema)}
}

// Decode validates body against the named schema and unmarshals it into dst.
// An empty body is treated as an empty object.
func (v *PayloadValidator) Decode(name string, body []byte, dst any) error {
	if len(bytes.TrimSpace(body)) == 0 {
		body = []byte("{}")
	}
	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	schema, err := v.schemaFor(name)
	if err != nil {
		return err
	}
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	return nil
}

func (v *PayloadValidator) schemaFor(name string) (*jsonschema.Schema, error) {
	v.mu.RLock()
	schema, ok := v.compiled[name]
	v.mu.RUnlock()
	if ok {
		return schema, nil
	}
	raw, ok := payloadSchemas[name]
	if !ok {
		return nil, fmt.Errorf("httpapi: unknown schema %s", name)
	}
	compiler := jsonschema.NewCompiler()
	resource := name + ".json"
	if err := compiler.AddResource(resource, strings.NewReader(raw)); err != nil {
		return nil, fmt.Errorf("httpapi: load schema %s: %w", name, err)
	}
	compiled, err := compiler.Compile(resource)
	if err != nil {
		return nil, fmt.Errorf("httpapi: compile schema %s: %w", name, err)
	}
	v.mu.Lock()
	v.compiled[name] = compiled
	v.mu.Unlock()
	return compiled, nil
}
