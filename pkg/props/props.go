// Package props declares the variant vocabulary shared by a family of styled components.
//
// A Definition lists prop names with their allowed value domain, derives a default-value record
// from those domains, and carries an opaque Identity. Components that should exchange variant
// state through slots must be built from the same Definition value; two Definitions with equal
// fields are still different contexts.
package props

import (
	"fmt"
	"reflect"

	"github.com/google/uuid"

	"github.com/alexisbeaulieu97/stylekit/pkg/variant"
)

// Kind enumerates the supported domains.
type Kind int

const (
	KindOneOf Kind = iota
	KindBool
	KindNumber
	KindString
	KindLiteral
)

func (k Kind) String() string {
	switch k {
	case KindOneOf:
		return "one_of"
	case KindBool:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindLiteral:
		return "literal"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Domain describes the values a prop accepts.
type Domain struct {
	kind   Kind
	values []any
}

// OneOf accepts one of the given literals; the first is the default.
func OneOf(values ...any) Domain {
	cp := make([]any, len(values))
	copy(cp, values)
	return Domain{kind: KindOneOf, values: cp}
}

// Literal accepts exactly v.
func Literal(v any) Domain {
	return Domain{kind: KindLiteral, values: []any{v}}
}

var (
	// Bool accepts true or false and defaults to false.
	Bool = Domain{kind: KindBool}
	// Number accepts any numeric value and defaults to 0.
	Number = Domain{kind: KindNumber}
	// String accepts any string and defaults to "".
	String = Domain{kind: KindString}
)

// Kind returns the domain kind.
func (d Domain) Kind() Kind {
	return d.kind
}

// Values returns a copy of the enumerated values (OneOf) or the literal (Literal).
func (d Domain) Values() []any {
	out := make([]any, len(d.values))
	copy(out, d.values)
	return out
}

// Default returns the implicit default for the domain. An empty OneOf has no default.
func (d Domain) Default() any {
	switch d.kind {
	case KindBool:
		return false
	case KindNumber:
		return 0
	case KindString:
		return ""
	default:
		if len(d.values) == 0 {
			return nil
		}
		return d.values[0]
	}
}

// Accepts reports whether value belongs to the domain. Booleans and their "true"/"false" string
// forms are interchangeable, matching how variant lookups normalise them.
func (d Domain) Accepts(value any) bool {
	if value == nil {
		return false
	}
	switch d.kind {
	case KindBool:
		switch v := value.(type) {
		case bool:
			return true
		case string:
			return v == "true" || v == "false"
		}
		return false
	case KindNumber:
		switch reflect.ValueOf(value).Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
			reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
			reflect.Float32, reflect.Float64:
			return true
		}
		return false
	case KindString:
		_, ok := value.(string)
		return ok
	default:
		key, _ := variant.Key(value)
		for _, candidate := range d.values {
			if ck, ok := variant.Key(candidate); ok && ck == key {
				return true
			}
		}
		return false
	}
}

// Field binds a prop name to its domain.
type Field struct {
	Name   string
	Domain Domain
}

// F is shorthand for Field{Name: name, Domain: domain}.
func F(name string, domain Domain) Field {
	return Field{Name: name, Domain: domain}
}

// Identity is the opaque token compared when deciding slot propagation.
type Identity struct {
	id uuid.UUID
}

// IsZero reports whether the identity is unset.
func (i Identity) IsZero() bool {
	return i.id == uuid.Nil
}

func (i Identity) String() string {
	return i.id.String()
}

// Definition is an ordered prop vocabulary with a unique identity.
type Definition struct {
	fields   []Field
	index    map[string]int
	defaults variant.Props
	identity Identity
}

// Define builds a Definition. A repeated name replaces the earlier field in place.
func Define(fields ...Field) *Definition {
	d := &Definition{
		fields:   make([]Field, 0, len(fields)),
		index:    make(map[string]int, len(fields)),
		defaults: make(variant.Props, len(fields)),
		identity: Identity{id: uuid.New()},
	}
	for _, f := range fields {
		if i, ok := d.index[f.Name]; ok {
			d.fields[i] = f
		} else {
			d.index[f.Name] = len(d.fields)
			d.fields = append(d.fields, f)
		}
	}
	for _, f := range d.fields {
		if def := f.Domain.Default(); def != nil {
			d.defaults[f.Name] = def
		}
	}
	return d
}

// Identity returns the definition's identity token.
func (d *Definition) Identity() Identity {
	if d == nil {
		return Identity{}
	}
	return d.identity
}

// Defaults returns a fresh copy of the default-value record.
func (d *Definition) Defaults() variant.Props {
	if d == nil {
		return variant.Props{}
	}
	return d.defaults.Clone()
}

// Names returns the declared prop names in declaration order.
func (d *Definition) Names() []string {
	if d == nil {
		return nil
	}
	names := make([]string, len(d.fields))
	for i, f := range d.fields {
		names[i] = f.Name
	}
	return names
}

// Fields returns a copy of the declared fields.
func (d *Definition) Fields() []Field {
	if d == nil {
		return nil
	}
	out := make([]Field, len(d.fields))
	copy(out, d.fields)
	return out
}

// Domain returns the domain declared for name.
func (d *Definition) Domain(name string) (Domain, bool) {
	if d == nil {
		return Domain{}, false
	}
	i, ok := d.index[name]
	if !ok {
		return Domain{}, false
	}
	return d.fields[i].Domain, true
}

// Validate reports whether value is acceptable for name. Undeclared names are rejected.
func (d *Definition) Validate(name string, value any) bool {
	domain, ok := d.Domain(name)
	if !ok {
		return false
	}
	return domain.Accepts(value)
}

// SameContext reports whether a and b are the same non-nil definition by identity.
func SameContext(a, b *Definition) bool {
	if a == nil || b == nil {
		return false
	}
	return a.identity == b.identity
}
