package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Schema defines the JSON structure expected from the model.
type Schema struct {
	// Name identifies this schema (used as the schema name for OpenAI and
	// as the resource URL when compiling). Kebab-case, e.g. "learning-path".
	Name string

	// Description is a human-readable description of what this schema
	// represents. Sent to the model to guide generation.
	Description string

	// Definition is the JSON Schema definition as a map.
	Definition map[string]any

	once     sync.Once
	compiled *jsonschema.Schema
	err      error
}

// Validate checks raw JSON against the schema. It returns
// *ErrInvalidResponse when the content is not JSON or does not conform.
// A nil Schema accepts anything.
func (s *Schema) Validate(raw json.RawMessage) error {
	if s == nil {
		return nil
	}

	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return &ErrInvalidResponse{
			Content: raw,
			Err:     fmt.Errorf("invalid JSON: %w", err),
		}
	}

	compiled, err := s.compile()
	if err != nil {
		return &ErrInvalidResponse{
			Content: raw,
			Err:     fmt.Errorf("compile schema %q: %w", s.Name, err),
		}
	}

	if err := compiled.Validate(parsed); err != nil {
		return &ErrInvalidResponse{
			Content: raw,
			Err:     fmt.Errorf("schema validation failed: %w", err),
		}
	}
	return nil
}

// compile builds the jsonschema validator once per Schema value.
func (s *Schema) compile() (*jsonschema.Schema, error) {
	s.once.Do(func() {
		// jsonschema wants a decoded JSON value, not Go maps with typed
		// slices, so round-trip the definition.
		defBytes, err := json.Marshal(s.Definition)
		if err != nil {
			s.err = fmt.Errorf("marshal schema definition: %w", err)
			return
		}
		var doc any
		if err := json.Unmarshal(defBytes, &doc); err != nil {
			s.err = fmt.Errorf("parse schema definition: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		url := fmt.Sprintf("schema://%s.json", s.Name)
		if err := c.AddResource(url, doc); err != nil {
			s.err = fmt.Errorf("add resource: %w", err)
			return
		}
		s.compiled, s.err = c.Compile(url)
	})
	return s.compiled, s.err
}

// checkContent applies the shared post-processing every provider performs:
// empty replies become ErrEmptyResponse, schema replies are validated.
func checkContent(req Request, content json.RawMessage) error {
	if len(bytes.TrimSpace(content)) == 0 {
		return ErrEmptyResponse
	}
	return req.Schema.Validate(content)
}
