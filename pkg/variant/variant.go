// Package variant models variant tables and resolves them into class strings.
//
// A Table maps variant names to either a lookup of value keys to class fragments or a function
// computing the fragment. Evaluate combines incoming props, default variants and compound rules
// into one merged class string for a single render.
package variant

import (
	"fmt"
	"strconv"
)

// Props is a bag of prop values keyed by prop name. A missing key and a nil value are both
// treated as "not supplied".
type Props map[string]any

// Value returns the prop value for name and whether it was supplied.
func (p Props) Value(name string) (any, bool) {
	if p == nil {
		return nil, false
	}
	v, ok := p[name]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// Clone returns a shallow copy of the props. A nil receiver yields an empty, non-nil map.
func (p Props) Clone() Props {
	out := make(Props, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Merge layers each of the supplied prop sets over a copy of p, later sets winning.
func (p Props) Merge(layers ...Props) Props {
	out := p.Clone()
	for _, layer := range layers {
		for k, v := range layer {
			out[k] = v
		}
	}
	return out
}

// Without returns a copy of p with the named keys removed.
func (p Props) Without(names ...string) Props {
	out := p.Clone()
	for _, name := range names {
		delete(out, name)
	}
	return out
}

// Func computes a class fragment for a variant value. value is nil when the variant resolved to
// nothing; props are the props the engine was invoked with.
type Func func(value any, props Props, table Table) string

// Variant is a single named entry of a Table. Exactly one of Classes or Fn is used; Fn wins when
// both are set.
type Variant struct {
	Name    string
	Classes map[string]string
	Fn      Func
}

// IsFunc reports whether the variant computes its fragment.
func (v Variant) IsFunc() bool {
	return v.Fn != nil
}

// Classes builds a lookup variant.
func Classes(name string, classes map[string]string) Variant {
	return Variant{Name: name, Classes: classes}
}

// Computed builds a function variant.
func Computed(name string, fn Func) Variant {
	return Variant{Name: name, Fn: fn}
}

// Table is an ordered, immutable set of variants. Iteration order is declaration order.
type Table struct {
	variants []Variant
	index    map[string]int
}

// NewTable builds a table from variants in declaration order. A repeated name replaces the
// earlier entry in place, keeping the position of its first declaration.
func NewTable(variants ...Variant) Table {
	t := Table{
		variants: make([]Variant, 0, len(variants)),
		index:    make(map[string]int, len(variants)),
	}
	for _, v := range variants {
		if i, ok := t.index[v.Name]; ok {
			t.variants[i] = v
			continue
		}
		t.index[v.Name] = len(t.variants)
		t.variants = append(t.variants, v)
	}
	return t
}

// Len returns the number of variants.
func (t Table) Len() int {
	return len(t.variants)
}

// Has reports whether name is a variant of the table.
func (t Table) Has(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Get returns the variant registered under name.
func (t Table) Get(name string) (Variant, bool) {
	i, ok := t.index[name]
	if !ok {
		return Variant{}, false
	}
	return t.variants[i], true
}

// Names returns the variant names in declaration order.
func (t Table) Names() []string {
	names := make([]string, len(t.variants))
	for i, v := range t.variants {
		names[i] = v.Name
	}
	return names
}

// Variants returns a copy of the variants in declaration order.
func (t Table) Variants() []Variant {
	out := make([]Variant, len(t.variants))
	copy(out, t.variants)
	return out
}

// Compound is an override applied when every selector entry in When matches the resolved
// variant values. DefaultTo replaces default-variant fallback for lookups performed after the
// rule won.
//
// Selector values are compared through Key, so besides booleans matching their "true"/"false"
// strings, a number matches its decimal string form (2 matches "2").
type Compound struct {
	When      Props
	Class     string
	DefaultTo Props
}

// Precision is the number of selector keys; more specific rules outrank less specific ones.
func (c Compound) Precision() int {
	return len(c.When)
}

// Key normalises a variant value into the string used for table lookups and selector
// comparison. Booleans become "true"/"false"; numbers use their shortest decimal form. The second
// result is false for nil.
func Key(value any) (string, bool) {
	switch v := value.(type) {
	case nil:
		return "", false
	case string:
		return v, true
	case bool:
		return strconv.FormatBool(v), true
	case int:
		return strconv.Itoa(v), true
	case int8:
		return strconv.FormatInt(int64(v), 10), true
	case int16:
		return strconv.FormatInt(int64(v), 10), true
	case int32:
		return strconv.FormatInt(int64(v), 10), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case uint:
		return strconv.FormatUint(uint64(v), 10), true
	case uint8:
		return strconv.FormatUint(uint64(v), 10), true
	case uint16:
		return strconv.FormatUint(uint64(v), 10), true
	case uint32:
		return strconv.FormatUint(uint64(v), 10), true
	case uint64:
		return strconv.FormatUint(v, 10), true
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case fmt.Stringer:
		return v.String(), true
	default:
		return fmt.Sprint(v), true
	}
}
