package family

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/alexisbeaulieu97/stylekit/pkg/props"
)

// Field kinds accepted in a context declaration.
const (
	KindEnum    = "enum"
	KindBoolean = "boolean"
	KindNumber  = "number"
	KindString  = "string"
	KindLiteral = "literal"
)

// Family is a YAML document describing prop contexts, styled components, slot composites and
// example render trees.
type Family struct {
	Version     string      `yaml:"version" validate:"required,semver"`
	Name        string      `yaml:"name" validate:"required,family_name"`
	Description string      `yaml:"description,omitempty"`
	Contexts    Contexts    `yaml:"contexts,omitempty" validate:"omitempty,dive"`
	Components  []Component `yaml:"components" validate:"required,min=1,dive"`
	Composites  []Composite `yaml:"composites,omitempty" validate:"omitempty,dive"`
	Examples    []Example   `yaml:"examples,omitempty" validate:"omitempty,dive"`
}

// Contexts keeps context declarations in document order.
type Contexts []Context

// Context is a named prop vocabulary. Fields keep document order so enum defaults and
// definition order are stable.
type Context struct {
	Name   string      `validate:"required,identifier"`
	Fields []FieldSpec `validate:"required,min=1,dive"`
}

// FieldSpec declares one prop of a context.
type FieldSpec struct {
	Name    string `validate:"required,identifier"`
	Kind    string `validate:"required,oneof=enum boolean number string literal"`
	Values  []any
	Literal any
}

// Component declares a styled component.
type Component struct {
	Name            string         `yaml:"name" validate:"required,component_name"`
	Target          string         `yaml:"target" validate:"required"`
	Context         string         `yaml:"context,omitempty"`
	Base            string         `yaml:"base,omitempty"`
	Variants        []VariantSpec  `yaml:"variants,omitempty" validate:"omitempty,dive"`
	DefaultVariants map[string]any `yaml:"default_variants,omitempty"`
	Compound        []CompoundSpec `yaml:"compound_variants,omitempty" validate:"omitempty,dive"`
	StyleOnly       []string       `yaml:"style_only,omitempty"`
	DefaultProps    map[string]any `yaml:"default_props,omitempty"`
}

// VariantSpec is a lookup variant (classes) or a pattern variant whose class is computed by
// substituting the prop value for {value}.
type VariantSpec struct {
	Name    string            `yaml:"name" validate:"required,identifier"`
	Classes map[string]string `yaml:"classes,omitempty"`
	Pattern string            `yaml:"pattern,omitempty"`
}

// CompoundSpec declares a compound variant rule.
type CompoundSpec struct {
	When      map[string]any `yaml:"when"`
	Class     string         `yaml:"class,omitempty"`
	DefaultTo map[string]any `yaml:"default_to,omitempty"`
}

// Composite binds a frame component to named slot components.
type Composite struct {
	Name    string            `yaml:"name" validate:"required,component_name"`
	Frame   string            `yaml:"frame" validate:"required"`
	Context string            `yaml:"context,omitempty"`
	Slots   map[string]string `yaml:"slots" validate:"required,min=1,dive,keys,component_name,endkeys,required"`
}

// Example is a named render tree.
type Example struct {
	Name        string   `yaml:"name" validate:"required,family_name"`
	Description string   `yaml:"description,omitempty"`
	Root        NodeSpec `yaml:"root"`
}

// NodeSpec is one node of an example tree. Exactly one of Component, Slot, Tag or Text is set.
// Slot is either "Name", resolved against the nearest enclosing composite, or "Composite.Name".
type NodeSpec struct {
	Component string         `yaml:"component,omitempty"`
	Slot      string         `yaml:"slot,omitempty"`
	Tag       string         `yaml:"tag,omitempty"`
	Text      string         `yaml:"text,omitempty"`
	Props     map[string]any `yaml:"props,omitempty"`
	Children  []NodeSpec     `yaml:"children,omitempty"`
}

// UnmarshalYAML decodes the contexts mapping while keeping its key order.
func (c *Contexts) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: contexts must be a mapping", value.Line)
	}

	out := make(Contexts, 0, len(value.Content)/2)
	for i := 0; i+1 < len(value.Content); i += 2 {
		key, body := value.Content[i], value.Content[i+1]
		ctx := Context{Name: key.Value}
		if body.Kind != yaml.MappingNode {
			return fmt.Errorf("line %d: context %q must be a mapping of fields", body.Line, key.Value)
		}
		for j := 0; j+1 < len(body.Content); j += 2 {
			field, err := decodeField(body.Content[j], body.Content[j+1])
			if err != nil {
				return err
			}
			ctx.Fields = append(ctx.Fields, field)
		}
		out = append(out, ctx)
	}

	*c = out
	return nil
}

func decodeField(key, value *yaml.Node) (FieldSpec, error) {
	field := FieldSpec{Name: key.Value}
	switch value.Kind {
	case yaml.SequenceNode:
		field.Kind = KindEnum
		if err := value.Decode(&field.Values); err != nil {
			return FieldSpec{}, err
		}
	case yaml.ScalarNode:
		field.Kind = value.Value
	case yaml.MappingNode:
		var literal struct {
			Literal *any `yaml:"literal"`
		}
		if err := value.Decode(&literal); err != nil {
			return FieldSpec{}, err
		}
		if literal.Literal == nil {
			return FieldSpec{}, fmt.Errorf("line %d: field %q mapping must contain literal", value.Line, key.Value)
		}
		field.Kind = KindLiteral
		field.Literal = *literal.Literal
	default:
		return FieldSpec{}, fmt.Errorf("line %d: field %q has an unsupported declaration", value.Line, key.Value)
	}
	return field, nil
}

// Domain returns the props domain the field declares.
func (f FieldSpec) Domain() props.Domain {
	switch f.Kind {
	case KindBoolean:
		return props.Bool
	case KindNumber:
		return props.Number
	case KindString:
		return props.String
	case KindLiteral:
		return props.Literal(f.Literal)
	default:
		return props.OneOf(f.Values...)
	}
}

// Lookup returns the named context.
func (c Contexts) Lookup(name string) (Context, bool) {
	for _, ctx := range c {
		if ctx.Name == name {
			return ctx, true
		}
	}
	return Context{}, false
}

// Field returns the named field of the context.
func (c Context) Field(name string) (FieldSpec, bool) {
	for _, f := range c.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldSpec{}, false
}

// Kind describes what a node spec renders.
func (n NodeSpec) Kind() string {
	switch {
	case n.Component != "":
		return "component"
	case n.Slot != "":
		return "slot"
	case n.Tag != "":
		return "tag"
	default:
		return "text"
	}
}

// HasVariant reports whether the component declares a variant named name.
func (c Component) HasVariant(name string) bool {
	for _, v := range c.Variants {
		if v.Name == name {
			return true
		}
	}
	return false
}
