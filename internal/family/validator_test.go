package family

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	stylekiterrors "github.com/alexisbeaulieu97/stylekit/pkg/errors"
)

func validFamily() *Family {
	return &Family{
		Version: "1.0.0",
		Name:    "card",
		Contexts: Contexts{
			{Name: "card", Fields: []FieldSpec{
				{Name: "size", Kind: KindEnum, Values: []any{"md", "lg"}},
				{Name: "elevated", Kind: KindBoolean},
			}},
		},
		Components: []Component{
			{
				Name:    "CardFrame",
				Target:  "div",
				Context: "card",
				Variants: []VariantSpec{
					{Name: "size", Classes: map[string]string{"md": "p-4", "lg": "p-6"}},
					{Name: "elevated", Classes: map[string]string{"true": "shadow"}},
				},
			},
			{
				Name:    "CardTitle",
				Target:  "h3",
				Context: "card",
				Variants: []VariantSpec{
					{Name: "size", Classes: map[string]string{"md": "text-base", "lg": "text-xl"}},
				},
			},
		},
		Composites: []Composite{
			{Name: "Card", Frame: "CardFrame", Context: "card", Slots: map[string]string{"Title": "CardTitle"}},
		},
		Examples: []Example{
			{Name: "basic", Root: NodeSpec{Component: "Card", Children: []NodeSpec{{Slot: "Title"}}}},
		},
	}
}

func TestValidateAcceptsValidFamily(t *testing.T) {
	t.Parallel()

	require.NoError(t, Validate(validFamily()))
}

func TestValidateRejects(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		mutate func(f *Family)
		field  string
		msg    string
	}{
		{
			name:   "bad version",
			mutate: func(f *Family) { f.Version = "beta" },
			field:  "family.version",
			msg:    "semver",
		},
		{
			name:   "lowercase component name",
			mutate: func(f *Family) { f.Components[0].Name = "frame" },
			field:  "family.components[0].name",
			msg:    "component_name",
		},
		{
			name:   "unknown field kind",
			mutate: func(f *Family) { f.Contexts[0].Fields[1].Kind = "colour" },
			field:  "family.contexts[0].fields[1].kind",
			msg:    "oneof",
		},
		{
			name:   "empty enum",
			mutate: func(f *Family) { f.Contexts[0].Fields[0].Values = nil },
			field:  "contexts.card.size",
			msg:    "at least one value",
		},
		{
			name: "duplicate context",
			mutate: func(f *Family) {
				f.Contexts = append(f.Contexts, Context{Name: "card", Fields: []FieldSpec{{Name: "x", Kind: KindString}}})
			},
			field: "contexts[1].name",
			msg:   "duplicate context",
		},
		{
			name:   "duplicate component",
			mutate: func(f *Family) { f.Composites[0].Name = "CardFrame" },
			field:  "composites[0].name",
			msg:    "duplicate component name",
		},
		{
			name:   "unknown target",
			mutate: func(f *Family) { f.Components[1].Target = "Missing" },
			field:  "components[1].target",
			msg:    `unknown target "Missing"`,
		},
		{
			name:   "composite target",
			mutate: func(f *Family) { f.Components[1].Target = "Card" },
			field:  "components[1].target",
			msg:    "is a composite",
		},
		{
			name:   "unknown context",
			mutate: func(f *Family) { f.Components[0].Context = "panel" },
			field:  "components[0].context",
			msg:    `unknown context "panel"`,
		},
		{
			name: "duplicate variant",
			mutate: func(f *Family) {
				f.Components[1].Variants = append(f.Components[1].Variants, VariantSpec{Name: "size", Pattern: "w-{value}"})
			},
			field: "components[1].variants[1].name",
			msg:   "duplicate variant",
		},
		{
			name: "classes and pattern",
			mutate: func(f *Family) {
				f.Components[1].Variants[0].Pattern = "text-{value}"
			},
			field: "components[1].variants[0]",
			msg:   "mutually exclusive",
		},
		{
			name: "pattern without placeholder",
			mutate: func(f *Family) {
				f.Components[1].Variants[0] = VariantSpec{Name: "size", Pattern: "text-lg"}
			},
			field: "components[1].variants[0].pattern",
			msg:   "{value}",
		},
		{
			name:   "unknown default variant",
			mutate: func(f *Family) { f.Components[0].DefaultVariants = map[string]any{"tone": "loud"} },
			field:  "components[0].default_variants",
			msg:    `"tone" is not a variant of CardFrame`,
		},
		{
			name:   "default outside domain",
			mutate: func(f *Family) { f.Components[0].DefaultVariants = map[string]any{"size": "xl"} },
			field:  "components[0].default_variants",
			msg:    "outside the enum domain of card.size",
		},
		{
			name: "compound selector outside domain",
			mutate: func(f *Family) {
				f.Components[0].Compound = []CompoundSpec{{When: map[string]any{"elevated": "sometimes"}, Class: "ring"}}
			},
			field: "components[0].compound_variants[0].when",
			msg:   "outside the boolean domain",
		},
		{
			name: "unknown default_to",
			mutate: func(f *Family) {
				f.Components[0].Compound = []CompoundSpec{{When: map[string]any{"size": "lg"}, DefaultTo: map[string]any{"tone": "x"}}}
			},
			field: "components[0].compound_variants[0].default_to",
			msg:   "not a variant",
		},
		{
			name:   "unknown style only",
			mutate: func(f *Family) { f.Components[0].StyleOnly = []string{"tone"} },
			field:  "components[0].style_only",
			msg:    "not a variant",
		},
		{
			name: "target cycle",
			mutate: func(f *Family) {
				f.Components[0].Target = "CardTitle"
				f.Components[1].Target = "CardFrame"
			},
			field: "components",
			msg:   "target cycle detected: CardFrame -> CardTitle -> CardFrame",
		},
		{
			name:   "unknown frame",
			mutate: func(f *Family) { f.Composites[0].Frame = "Panel" },
			field:  "composites[0].frame",
			msg:    `unknown component "Panel"`,
		},
		{
			name:   "unknown slot component",
			mutate: func(f *Family) { f.Composites[0].Slots["Icon"] = "CardIcon" },
			field:  "composites[0].slots.Icon",
			msg:    `unknown component "CardIcon"`,
		},
		{
			name:   "slot outside composite",
			mutate: func(f *Family) { f.Examples[0].Root = NodeSpec{Slot: "Title"} },
			field:  "examples[0].root.slot",
			msg:    "not inside a composite",
		},
		{
			name: "unknown qualified slot",
			mutate: func(f *Family) {
				f.Examples[0].Root.Children = []NodeSpec{{Slot: "Card.Footer"}}
			},
			field: "examples[0].root.children[0].slot",
			msg:   `has no slot "Footer"`,
		},
		{
			name: "node with two kinds",
			mutate: func(f *Family) {
				f.Examples[0].Root.Children = []NodeSpec{{Tag: "p", Text: "hi"}}
			},
			field: "examples[0].root.children[0]",
			msg:   "exactly one of",
		},
		{
			name: "text with children",
			mutate: func(f *Family) {
				f.Examples[0].Root.Children = []NodeSpec{{Text: "hi", Children: []NodeSpec{{Text: "x"}}}}
			},
			field: "examples[0].root.children[0]",
			msg:   "no props or children",
		},
		{
			name:   "duplicate example",
			mutate: func(f *Family) { f.Examples = append(f.Examples, f.Examples[0]) },
			field:  "examples[1].name",
			msg:    "duplicate example",
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			fam := validFamily()
			tc.mutate(fam)

			err := Validate(fam)
			require.Error(t, err)

			var validationErr *stylekiterrors.ValidationError
			require.True(t, errors.As(err, &validationErr), "expected ValidationError, got %T", err)
			require.Equal(t, tc.field, validationErr.Field)
			require.Contains(t, validationErr.Message, tc.msg)
		})
	}
}

func TestValidateNil(t *testing.T) {
	t.Parallel()

	require.Error(t, Validate(nil))
}

func TestDetectCycle(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		components []Component
		want       []string
	}{
		{
			name:       "tags only",
			components: []Component{{Name: "A", Target: "div"}, {Name: "B", Target: "span"}},
		},
		{
			name:       "chain",
			components: []Component{{Name: "A", Target: "B"}, {Name: "B", Target: "C"}, {Name: "C", Target: "div"}},
		},
		{
			name:       "self reference",
			components: []Component{{Name: "A", Target: "A"}},
			want:       []string{"A", "A"},
		},
		{
			name:       "loop behind chain",
			components: []Component{{Name: "A", Target: "B"}, {Name: "B", Target: "C"}, {Name: "C", Target: "B"}},
			want:       []string{"B", "C", "B"},
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tc.want, detectCycle(tc.components))
		})
	}
}
