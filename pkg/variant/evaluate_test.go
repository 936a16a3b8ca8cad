package variant

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/stylekit/pkg/classmerge"
)

func buttonTable() Table {
	return NewTable(
		Classes("variant", map[string]string{"primary": "bg-blue-600 text-white", "secondary": "bg-gray-100 text-gray-900"}),
		Classes("size", map[string]string{"sm": "text-sm px-2", "md": "text-base px-4", "lg": "text-lg px-6"}),
		Classes("disabled", map[string]string{"true": "opacity-50 cursor-not-allowed", "false": "cursor-pointer"}),
	)
}

func TestEvaluateScenarioSingleVariant(t *testing.T) {
	t.Parallel()

	table := NewTable(Classes("size", map[string]string{"sm": "text-sm", "lg": "text-lg"}))
	got := Evaluate(Props{"size": "lg"}, table, nil, nil, "rounded")
	require.Equal(t, "rounded text-lg", got)
}

func TestEvaluateIsPure(t *testing.T) {
	t.Parallel()

	table := buttonTable()
	props := Props{"variant": "primary", "size": "sm", "disabled": true}
	defaults := Props{"size": "md"}
	rules := []Compound{{When: Props{"variant": "primary", "disabled": true}, Class: "ring-0"}}

	first := Evaluate(props, table, defaults, rules, "inline-flex")
	for i := 0; i < 5; i++ {
		require.Equal(t, first, Evaluate(props, table, defaults, rules, "inline-flex"))
	}
}

func TestEvaluateCompoundPrecision(t *testing.T) {
	t.Parallel()

	table := buttonTable()
	twoKey := Compound{When: Props{"variant": "primary", "size": "md"}, Class: "highlight"}
	oneKey := Compound{When: Props{"variant": "primary"}, Class: "one-key"}
	props := Props{"variant": "primary", "size": "md"}

	for _, rules := range [][]Compound{{oneKey, twoKey}, {twoKey, oneKey}} {
		got := Evaluate(props, table, nil, rules, "")
		assert.True(t, strings.HasSuffix(got, "highlight"), got)
		assert.NotContains(t, got, "one-key")
	}
}

func TestEvaluateCompoundTieGoesToLaterRule(t *testing.T) {
	t.Parallel()

	rules := []Compound{
		{When: Props{"variant": "primary"}, Class: "first"},
		{When: Props{"size": "md"}, Class: "second"},
	}
	got := Evaluate(Props{"variant": "primary", "size": "md"}, buttonTable(), nil, rules, "")
	assert.Contains(t, got, "second")
	assert.NotContains(t, got, "first")
}

func TestEvaluateEmptySelectorMatchesUntilOutranked(t *testing.T) {
	t.Parallel()

	rules := []Compound{
		{When: Props{"variant": "primary"}, Class: "specific"},
		{Class: "catch-all"},
	}
	got := Evaluate(Props{"variant": "primary"}, buttonTable(), nil, rules, "")
	assert.Contains(t, got, "specific")
	assert.NotContains(t, got, "catch-all")

	got = Evaluate(Props{"variant": "secondary"}, buttonTable(), nil, rules, "")
	assert.Contains(t, got, "catch-all")
}

func TestEvaluateDefaultFallback(t *testing.T) {
	t.Parallel()

	table := buttonTable()
	defaults := Props{"variant": "secondary", "size": "md"}

	implicit := Evaluate(Props{}, table, defaults, nil, "btn")
	explicit := Evaluate(Props{"variant": "secondary", "size": "md"}, table, defaults, nil, "btn")
	require.Equal(t, explicit, implicit)
	require.Equal(t, "btn bg-gray-100 text-gray-900 text-base px-4", implicit)
}

func TestEvaluateNilPropTreatedAsOmitted(t *testing.T) {
	t.Parallel()

	got := Evaluate(Props{"size": nil}, buttonTable(), Props{"size": "sm"}, nil, "")
	require.Equal(t, "text-sm px-2", got)
}

func TestEvaluateDefaultToScoping(t *testing.T) {
	t.Parallel()

	table := NewTable(
		Classes("tone", map[string]string{"calm": "text-gray-500", "loud": "text-red-600"}),
		Classes("size", map[string]string{"sm": "text-sm", "lg": "text-lg"}),
	)
	rules := []Compound{{When: Props{"size": "lg"}, Class: "tracking-tight", DefaultTo: Props{"tone": "loud"}}}
	defaults := Props{"tone": "calm"}

	t.Run("applies to later lookups", func(t *testing.T) {
		got := Evaluate(Props{"size": "lg"}, table, defaults, rules, "")
		assert.Contains(t, got, "text-red-600")
		assert.NotContains(t, got, "text-gray-500")
	})

	t.Run("never overrides explicit props", func(t *testing.T) {
		got := Evaluate(Props{"size": "lg", "tone": "calm"}, table, defaults, rules, "")
		assert.Contains(t, got, "text-gray-500")
		assert.NotContains(t, got, "text-red-600")
	})

	t.Run("ignored when rule does not win", func(t *testing.T) {
		got := Evaluate(Props{"size": "sm"}, table, defaults, rules, "")
		assert.Contains(t, got, "text-gray-500")
	})

	t.Run("not used while matching selectors", func(t *testing.T) {
		selfRef := []Compound{
			{When: Props{"size": "lg"}, DefaultTo: Props{"tone": "loud"}},
			{When: Props{"size": "lg", "tone": "loud"}, Class: "should-not-match"},
		}
		got := Evaluate(Props{"size": "lg"}, table, defaults, selfRef, "")
		assert.NotContains(t, got, "should-not-match")
	})
}

func TestEvaluateBooleanNormalisation(t *testing.T) {
	t.Parallel()

	table := buttonTable()
	rules := []Compound{{When: Props{"disabled": true}, Class: "pointer-events-none"}}

	for _, pair := range [][2]any{{true, "true"}, {false, "false"}} {
		fromBool := Evaluate(Props{"disabled": pair[0]}, table, nil, rules, "")
		fromString := Evaluate(Props{"disabled": pair[1]}, table, nil, rules, "")
		require.Equal(t, fromBool, fromString)
	}

	stringSelector := []Compound{{When: Props{"disabled": "true"}, Class: "pointer-events-none"}}
	require.Equal(t,
		Evaluate(Props{"disabled": true}, table, nil, rules, ""),
		Evaluate(Props{"disabled": true}, table, nil, stringSelector, ""))
}

func TestEvaluateUnknownAndMissingEntries(t *testing.T) {
	t.Parallel()

	got := Evaluate(Props{"size": "xxl", "unknown": "x"}, buttonTable(), nil, nil, "base")
	require.Equal(t, "base", got)
}

func TestEvaluateClassNameSeeded(t *testing.T) {
	t.Parallel()

	got := Evaluate(Props{"className": "shadow", "size": "sm"}, buttonTable(), nil, nil, "rounded")
	require.Equal(t, "rounded shadow text-sm px-2", got)
}

func TestEvaluateFunctionVariant(t *testing.T) {
	t.Parallel()

	var seenTable Table
	table := NewTable(
		Computed("gap", func(value any, props Props, tbl Table) string {
			seenTable = tbl
			if value == nil {
				return ""
			}
			key, _ := Key(value)
			return "  gap-" + key + "  "
		}),
		Classes("size", map[string]string{"sm": "text-sm"}),
	)

	got := Evaluate(Props{"gap": 4, "size": "sm"}, table, nil, nil, "flex")
	require.Equal(t, "flex gap-4 text-sm", got)
	require.Equal(t, []string{"gap", "size"}, seenTable.Names())

	require.Equal(t, "flex", Evaluate(Props{}, table, nil, nil, "flex"))
}

func TestEvaluateCompoundClassAppendedLast(t *testing.T) {
	t.Parallel()

	rules := []Compound{{When: Props{"size": "sm"}, Class: "text-xl"}}
	got := Evaluate(Props{"size": "sm"}, buttonTable(), nil, rules, "")
	require.Equal(t, "px-2 text-xl", got)
}

func TestExplainReportsWinner(t *testing.T) {
	t.Parallel()

	rules := []Compound{
		{When: Props{"variant": "primary"}, Class: "a"},
		{When: Props{"variant": "primary", "size": "lg"}, Class: "b"},
	}
	trace := Explain(nil, Props{"variant": "primary", "size": "lg"}, buttonTable(), nil, rules, "x")
	require.Equal(t, 1, trace.Compound)
	require.Equal(t, "b", trace.CompoundClass)
	require.Len(t, trace.Fragments, 3)
	require.Equal(t, "size", trace.Fragments[1].Variant)
	require.Equal(t, "text-lg px-6", trace.Fragments[1].Class)

	none := Explain(classmerge.Join, Props{}, buttonTable(), nil, rules, "x")
	require.Equal(t, -1, none.Compound)
	require.Equal(t, "x", none.Class)
}

func TestEvaluateWithCustomMerge(t *testing.T) {
	t.Parallel()

	got := EvaluateWith(classmerge.Join, Props{"size": "sm"}, buttonTable(), nil, nil, "text-lg")
	require.Equal(t, "text-lg text-sm px-2", got)
}

func TestEvaluateNumericSelectorMatchesStringForm(t *testing.T) {
	t.Parallel()

	table := NewTable(Classes("cols", map[string]string{"2": "grid-cols-2", "3": "grid-cols-3"}))
	rules := []Compound{{When: Props{"cols": "2"}, Class: "gap-2"}}

	require.Equal(t, "grid-cols-2 gap-2", Evaluate(Props{"cols": 2}, table, nil, rules, ""))
	require.Equal(t, "grid-cols-3", Evaluate(Props{"cols": 3}, table, nil, rules, ""))
}
