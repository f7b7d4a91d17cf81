package api

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/jsonschema-go/jsonschema"
)

// DefaultLoginSchemaPath is the schema of a successful login response
const DefaultLoginSchemaPath = "resources/schema/login_response_schema.json"

// Schema is a resolved JSON schema ready for validation
type Schema struct {
	resolved *jsonschema.Resolved
}

// ParseSchema - parses and resolves a JSON schema document
func ParseSchema(data []byte) (*Schema, error) {
	var s jsonschema.Schema
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse schema: %w", err)
	}
	resolved, err := s.Resolve(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve schema: %w", err)
	}
	return &Schema{resolved: resolved}, nil
}

// LoadSchema - reads a schema document from disk
func LoadSchema(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema %s: %w", path, err)
	}
	return ParseSchema(data)
}

// Validate - checks a JSON document against the schema
func (s *Schema) Validate(body []byte) error {
	var instance any
	if err := json.Unmarshal(body, &instance); err != nil {
		return fmt.Errorf("response is not valid JSON: %w", err)
	}
	if err := s.resolved.Validate(instance); err != nil {
		return fmt.Errorf("response does not match schema: %w", err)
	}
	return nil
}
