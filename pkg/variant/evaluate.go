package variant

import (
	"strings"

	"github.com/alexisbeaulieu97/stylekit/pkg/classmerge"
)

// ClassNameProp is the prop carrying caller-supplied classes.
const ClassNameProp = "className"

// Fragment records the class fragment one variant contributed to a render.
type Fragment struct {
	Variant string
	Value   any
	Class   string
}

// Trace describes how a class string was assembled.
type Trace struct {
	Base      string
	ClassName string
	Fragments []Fragment
	// Compound is the index of the winning compound rule, or -1 when none matched.
	Compound      int
	CompoundClass string
	Class         string
}

// Evaluate computes the merged class string for one render using classmerge.Merge.
func Evaluate(props Props, table Table, defaults Props, rules []Compound, base string) string {
	return EvaluateWith(classmerge.Merge, props, table, defaults, rules, base)
}

// EvaluateWith is Evaluate with an explicit merge strategy.
func EvaluateWith(merge classmerge.MergeFunc, props Props, table Table, defaults Props, rules []Compound, base string) string {
	return Explain(merge, props, table, defaults, rules, base).Class
}

// Explain evaluates like EvaluateWith and returns the intermediate fragments alongside the result.
func Explain(merge classmerge.MergeFunc, props Props, table Table, defaults Props, rules []Compound, base string) Trace {
	if merge == nil {
		merge = classmerge.Merge
	}

	r := resolver{props: props, defaults: defaults}
	trace := Trace{Base: base, Compound: -1}
	if cn, ok := props.Value(ClassNameProp); ok {
		trace.ClassName, _ = Key(cn)
	}

	trace.Compound = r.matchCompound(rules)
	if trace.Compound >= 0 {
		winner := rules[trace.Compound]
		trace.CompoundClass = strings.TrimSpace(winner.Class)
		r.compoundDefaults = winner.DefaultTo
	}

	classNames := []string{base, trace.ClassName}
	for _, v := range table.variants {
		value := r.value(v.Name, true)
		var class string
		if v.Fn != nil {
			class = strings.TrimSpace(v.Fn(value, props, table))
		} else if key, ok := Key(value); ok {
			class = strings.TrimSpace(v.Classes[key])
		}
		trace.Fragments = append(trace.Fragments, Fragment{Variant: v.Name, Value: value, Class: class})
		classNames = append(classNames, class)
	}
	classNames = append(classNames, trace.CompoundClass)

	nonEmpty := classNames[:0]
	for _, c := range classNames {
		if c != "" {
			nonEmpty = append(nonEmpty, c)
		}
	}
	trace.Class = merge(nonEmpty...)
	return trace
}

type resolver struct {
	props            Props
	defaults         Props
	compoundDefaults Props
}

// value resolves name from explicit props, then the winning compound rule's DefaultTo when
// useCompoundDefaults is set, then the default variants.
func (r resolver) value(name string, useCompoundDefaults bool) any {
	if v, ok := r.props.Value(name); ok {
		return v
	}
	if useCompoundDefaults {
		if v, ok := r.compoundDefaults.Value(name); ok {
			return v
		}
	}
	v, _ := r.defaults.Value(name)
	return v
}

// matchCompound returns the index of the most precise matching rule; ties go to the later rule.
func (r resolver) matchCompound(rules []Compound) int {
	winner := -1
	best := 0
	for i, rule := range rules {
		if !r.matches(rule.When) {
			continue
		}
		if p := rule.Precision(); p >= best {
			winner = i
			best = p
		}
	}
	return winner
}

func (r resolver) matches(selector Props) bool {
	for name, want := range selector {
		if !sameValue(r.value(name, false), want) {
			return false
		}
	}
	return true
}

func sameValue(got, want any) bool {
	gk, gok := Key(got)
	wk, wok := Key(want)
	if !gok || !wok {
		return gok == wok
	}
	return gk == wk
}
