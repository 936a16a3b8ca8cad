package family

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	stylekiterrors "github.com/alexisbeaulieu97/stylekit/pkg/errors"
	"github.com/alexisbeaulieu97/stylekit/pkg/styled"
)

func loadLibrary(t *testing.T) *Library {
	t.Helper()

	fam, err := Load(filepath.Join("testdata", "card.yaml"))
	require.NoError(t, err)

	lib, err := Build(fam, Options{})
	require.NoError(t, err)
	return lib
}

func expandExample(t *testing.T, lib *Library, name string) *styled.Element {
	t.Helper()

	node, err := lib.Example(name)
	require.NoError(t, err)

	out, err := styled.Expand(styled.DefaultContext(), node)
	require.NoError(t, err)

	el, ok := out.(*styled.Element)
	require.True(t, ok, "expected *Element, got %T", out)
	return el
}

func TestBuildLibrary(t *testing.T) {
	t.Parallel()

	lib := loadLibrary(t)
	require.Equal(t, "card", lib.Name())
	require.Equal(t, []string{"CardFrame", "CardTitle", "CardIcon", "Badge", "LinkBadge", "Card"}, lib.ComponentNames())
	require.Equal(t, []string{"large", "plain"}, lib.ExampleNames())

	def, ok := lib.Definition("card")
	require.True(t, ok)
	require.Equal(t, []string{"size", "elevated", "gap"}, def.Names())

	title, ok := lib.Styled("CardTitle")
	require.True(t, ok)
	require.Same(t, def, title.Context())
	require.Equal(t, styled.Props{"size": "md"}, title.DefaultVariants())

	card, ok := lib.Composite("Card")
	require.True(t, ok)
	require.Equal(t, "StyledSlots(CardFrame)", card.DisplayName())
	require.True(t, card.Slot("Title").Propagates())
	require.False(t, card.Slot("Badge").Propagates())

	_, ok = lib.Component("Card")
	require.True(t, ok)
	_, ok = lib.Component("Missing")
	require.False(t, ok)
}

func TestBuildLargeExample(t *testing.T) {
	t.Parallel()

	root := expandExample(t, loadLibrary(t), "large")
	require.Equal(t, "div", root.Tag)
	require.Equal(t, styled.Props{
		"role":      "region",
		"className": "rounded border p-6 shadow-lg gap-2 ring-2",
	}, root.Props)
	require.Len(t, root.Children, 3)

	icon := root.Children[0].(*styled.Element)
	require.Equal(t, "span", icon.Tag)
	require.Equal(t, "h-6", icon.ClassName())

	title := root.Children[1].(*styled.Element)
	require.Equal(t, "h3", title.Tag)
	require.Equal(t, "font-semibold text-xl", title.ClassName())
	require.Equal(t, []styled.Node{styled.Text("Quarterly report")}, title.Children)

	badge := root.Children[2].(*styled.Element)
	require.Equal(t, "inline-flex rounded-full text-xs", badge.ClassName())
}

func TestBuildPlainExample(t *testing.T) {
	t.Parallel()

	root := expandExample(t, loadLibrary(t), "plain")
	require.Equal(t, "section", root.Tag)

	badge := root.Children[0].(*styled.Element)
	require.Equal(t, "inline-flex rounded-full text-base uppercase", badge.ClassName())
}

func TestBuildComponentTarget(t *testing.T) {
	t.Parallel()

	lib := loadLibrary(t)
	link, ok := lib.Component("LinkBadge")
	require.True(t, ok)

	out, err := styled.Expand(styled.DefaultContext(), styled.El(link, styled.Props{"size": "lg"}))
	require.NoError(t, err)
	require.Equal(t, "inline-flex rounded-full text-base underline", out.(*styled.Element).ClassName())
}

func TestBuildPatternVariant(t *testing.T) {
	t.Parallel()

	frame, ok := loadLibrary(t).Styled("CardFrame")
	require.True(t, ok)

	require.Equal(t, "rounded border p-4 shadow-none gap-4", frame.ClassName(styled.Props{"gap": 4}))
	require.Equal(t, "rounded border p-4 shadow-none gap-0", frame.ClassName(nil))
	require.Equal(t, "rounded border p-4 shadow-none gap-1.5", frame.ClassName(styled.Props{"gap": 1.5}))
}

func TestBuildUnknownExample(t *testing.T) {
	t.Parallel()

	_, err := loadLibrary(t).Example("missing")
	require.Error(t, err)

	var renderErr *stylekiterrors.RenderError
	require.True(t, errors.As(err, &renderErr))
}

func TestBuildRejectsInvalidFamily(t *testing.T) {
	t.Parallel()

	fam := validFamily()
	fam.Components[0].StyleOnly = []string{"tone"}

	_, err := Build(fam, Options{})
	require.Error(t, err)
}
