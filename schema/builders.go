package schema

import (
	"encoding/json"
	"fmt"
)

// Object creates a new object schema builder.
func Object() *ObjectBuilder {
	return &ObjectBuilder{
		node: &node{
			Type:       "object",
			Properties: make(map[string]*node),
		},
	}
}

// ObjectBuilder constructs object type schemas.
type ObjectBuilder struct {
	node *node
}

// Desc sets the description for the object itself.
func (b *ObjectBuilder) Desc(description string) *ObjectBuilder {
	b.node.Description = description
	return b
}

// Field adds a field with its schema.
// The field argument can be a Builder or a *RequiredField.
func (b *ObjectBuilder) Field(name string, field any) *ObjectBuilder {
	switch f := field.(type) {
	case *RequiredField:
		b.node.Properties[name] = f.builder.schema()
		b.addRequired(name)
	case Builder:
		b.node.Properties[name] = f.schema()
	default:
		panic(fmt.Sprintf("schema: Field %q requires a Builder or *RequiredField, got %T", name, field))
	}
	return b
}

// addRequired adds a field to the required list without duplicates.
func (b *ObjectBuilder) addRequired(name string) {
	for _, r := range b.node.Required {
		if r == name {
			return
		}
	}
	b.node.Required = append(b.node.Required, name)
}

// AdditionalProperties controls whether extra properties are allowed.
func (b *ObjectBuilder) AdditionalProperties(allowed bool) *ObjectBuilder {
	b.node.AdditionalProperties = ptr(allowed)
	return b
}

// Required marks this object as required when nested in another object.
func (b *ObjectBuilder) Required() *RequiredField {
	return &RequiredField{builder: b}
}

// Build serializes the schema to json.RawMessage.
func (b *ObjectBuilder) Build() (json.RawMessage, error) { return b.node.build() }

// MustBuild is like Build but panics on error.
func (b *ObjectBuilder) MustBuild() json.RawMessage { return mustBuild(b.node) }

func (b *ObjectBuilder) schema() *node { return b.node }

// String creates a new string schema builder.
func String() *StringBuilder {
	return &StringBuilder{node: &node{Type: "string"}}
}

// StringBuilder constructs string type schemas.
type StringBuilder struct {
	node *node
}

// Desc sets the description for this field.
func (b *StringBuilder) Desc(description string) *StringBuilder {
	b.node.Description = description
	return b
}

// Enum restricts the value to one of the provided options.
func (b *StringBuilder) Enum(values ...string) *StringBuilder {
	b.node.Enum = make([]any, len(values))
	for i, v := range values {
		b.node.Enum[i] = v
	}
	return b
}

// MinLength sets the minimum string length.
func (b *StringBuilder) MinLength(n int) *StringBuilder {
	b.node.MinLength = ptr(n)
	return b
}

// MaxLength sets the maximum string length.
func (b *StringBuilder) MaxLength(n int) *StringBuilder {
	b.node.MaxLength = ptr(n)
	return b
}

// Pattern sets a regex pattern the string must match.
func (b *StringBuilder) Pattern(regex string) *StringBuilder {
	b.node.Pattern = regex
	return b
}

// Default sets the default value.
func (b *StringBuilder) Default(value string) *StringBuilder {
	b.node.Default = value
	return b
}

// Required marks this field as required when used in an object.
func (b *StringBuilder) Required() *RequiredField {
	return &RequiredField{builder: b}
}

// Build serializes the schema to json.RawMessage.
func (b *StringBuilder) Build() (json.RawMessage, error) { return b.node.build() }

// MustBuild is like Build but panics on error.
func (b *StringBuilder) MustBuild() json.RawMessage { return mustBuild(b.node) }

func (b *StringBuilder) schema() *node { return b.node }

// Number creates a new number schema builder.
func Number() *NumberBuilder {
	return &NumberBuilder{node: &node{Type: "number"}}
}

// Integer creates a new integer schema builder.
func Integer() *NumberBuilder {
	return &NumberBuilder{node: &node{Type: "integer"}}
}

// NumberBuilder constructs number and integer type schemas.
type NumberBuilder struct {
	node *node
}

// Desc sets the description for this field.
func (b *NumberBuilder) Desc(description string) *NumberBuilder {
	b.node.Description = description
	return b
}

// Min sets the minimum value.
func (b *NumberBuilder) Min(v float64) *NumberBuilder {
	b.node.Minimum = ptr(v)
	return b
}

// Max sets the maximum value.
func (b *NumberBuilder) Max(v float64) *NumberBuilder {
	b.node.Maximum = ptr(v)
	return b
}

// Default sets the default value.
func (b *NumberBuilder) Default(v float64) *NumberBuilder {
	b.node.Default = v
	return b
}

// Required marks this field as required when used in an object.
func (b *NumberBuilder) Required() *RequiredField {
	return &RequiredField{builder: b}
}

// Build serializes the schema to json.RawMessage.
func (b *NumberBuilder) Build() (json.RawMessage, error) { return b.node.build() }

// MustBuild is like Build but panics on error.
func (b *NumberBuilder) MustBuild() json.RawMessage { return mustBuild(b.node) }

func (b *NumberBuilder) schema() *node { return b.node }

// Boolean creates a new boolean schema builder.
func Boolean() *BooleanBuilder {
	return &BooleanBuilder{node: &node{Type: "boolean"}}
}

// BooleanBuilder constructs boolean type schemas.
type BooleanBuilder struct {
	node *node
}

// Desc sets the description for this field.
func (b *BooleanBuilder) Desc(description string) *BooleanBuilder {
	b.node.Description = description
	return b
}

// Default sets the default value.
func (b *BooleanBuilder) Default(v bool) *BooleanBuilder {
	b.node.Default = v
	return b
}

// Required marks this field as required when used in an object.
func (b *BooleanBuilder) Required() *RequiredField {
	return &RequiredField{builder: b}
}

// Build serializes the schema to json.RawMessage.
func (b *BooleanBuilder) Build() (json.RawMessage, error) { return b.node.build() }

// MustBuild is like Build but panics on error.
func (b *BooleanBuilder) MustBuild() json.RawMessage { return mustBuild(b.node) }

func (b *BooleanBuilder) schema() *node { return b.node }

// Array creates a new array schema builder with the given items schema.
func Array(items Builder) *ArrayBuilder {
	b := &ArrayBuilder{node: &node{Type: "array"}}
	if items != nil {
		b.node.Items = items.schema()
	}
	return b
}

// ArrayBuilder constructs array type schemas.
type ArrayBuilder struct {
	node *node
}

// Desc sets the description for this field.
func (b *ArrayBuilder) Desc(description string) *ArrayBuilder {
	b.node.Description = description
	return b
}

// MinItems sets the minimum number of items.
func (b *ArrayBuilder) MinItems(n int) *ArrayBuilder {
	b.node.MinItems = ptr(n)
	return b
}

// MaxItems sets the maximum number of items.
func (b *ArrayBuilder) MaxItems(n int) *ArrayBuilder {
	b.node.MaxItems = ptr(n)
	return b
}

// Required marks this field as required when used in an object.
func (b *ArrayBuilder) Required() *RequiredField {
	return &RequiredField{builder: b}
}

// Build serializes the schema to json.RawMessage.
func (b *ArrayBuilder) Build() (json.RawMessage, error) { return b.node.build() }

// MustBuild is like Build but panics on error.
func (b *ArrayBuilder) MustBuild() json.RawMessage { return mustBuild(b.node) }

func (b *ArrayBuilder) schema() *node { return b.node }
