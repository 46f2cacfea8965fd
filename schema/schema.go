// Package schema provides fluent builders for the JSON Schema objects
// used as tool parameter definitions.
//
// Example:
//
//	params := schema.Object().
//	    Field("location", schema.String().Desc("City name").Required()).
//	    Field("unit", schema.String().Enum("celsius", "fahrenheit")).
//	    MustBuild()
package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
)

// Builder is the interface implemented by all schema builders.
type Builder interface {
	// Build serializes the schema to json.RawMessage.
	// Returns an error if the schema is invalid.
	Build() (json.RawMessage, error)

	// MustBuild is like Build but panics on error.
	MustBuild() json.RawMessage

	// schema returns the internal representation for composition.
	schema() *node
}

// node is the internal representation of a JSON Schema.
type node struct {
	Type        string `json:"type,omitempty"`
	Description string `json:"description,omitempty"`
	Enum        []any  `json:"enum,omitempty"`
	Default     any    `json:"default,omitempty"`

	// String constraints
	MinLength *int   `json:"minLength,omitempty"`
	MaxLength *int   `json:"maxLength,omitempty"`
	Pattern   string `json:"pattern,omitempty"`

	// Numeric constraints
	Minimum *float64 `json:"minimum,omitempty"`
	Maximum *float64 `json:"maximum,omitempty"`

	// Array constraints
	Items    *node `json:"items,omitempty"`
	MinItems *int  `json:"minItems,omitempty"`
	MaxItems *int  `json:"maxItems,omitempty"`

	// Object constraints
	Properties           map[string]*node `json:"properties,omitempty"`
	Required             []string         `json:"required,omitempty"`
	AdditionalProperties *bool            `json:"additionalProperties,omitempty"`
}

// Sentinel errors for schema validation.
var (
	// ErrInvalidRange is returned when min exceeds max.
	ErrInvalidRange = errors.New("schema: minimum exceeds maximum")

	// ErrInvalidPattern is returned when a regex pattern is invalid.
	ErrInvalidPattern = errors.New("schema: invalid regex pattern")

	// ErrNilItems is returned when an array has no items schema.
	ErrNilItems = errors.New("schema: array requires items schema")
)

// validate checks the schema for internal consistency.
func (n *node) validate() error {
	switch n.Type {
	case "string":
		if n.MinLength != nil && n.MaxLength != nil && *n.MinLength > *n.MaxLength {
			return ErrInvalidRange
		}
		if n.Pattern != "" {
			if _, err := regexp.Compile(n.Pattern); err != nil {
				return fmt.Errorf("%w: %q", ErrInvalidPattern, n.Pattern)
			}
		}

	case "integer", "number":
		if n.Minimum != nil && n.Maximum != nil && *n.Minimum > *n.Maximum {
			return ErrInvalidRange
		}

	case "array":
		if n.Items == nil {
			return ErrNilItems
		}
		if n.MinItems != nil && n.MaxItems != nil && *n.MinItems > *n.MaxItems {
			return ErrInvalidRange
		}
		if err := n.Items.validate(); err != nil {
			return err
		}

	case "object":
		for name, prop := range n.Properties {
			if err := prop.validate(); err != nil {
				return fmt.Errorf("field %q: %w", name, err)
			}
		}
	}

	return nil
}

func (n *node) build() (json.RawMessage, error) {
	if err := n.validate(); err != nil {
		return nil, err
	}
	return json.Marshal(n)
}

func mustBuild(n *node) json.RawMessage {
	data, err := n.build()
	if err != nil {
		panic(err)
	}
	return data
}

// RequiredField wraps a builder whose field is required in the
// enclosing object.
type RequiredField struct {
	builder Builder
}

func ptr[T any](v T) *T {
	return &v
}
