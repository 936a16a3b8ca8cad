package render

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/stylekit/pkg/styled"
	"github.com/alexisbeaulieu97/stylekit/pkg/variant"
)

func TestParseFormat(t *testing.T) {
	t.Parallel()

	f, err := ParseFormat(" HTML ")
	require.NoError(t, err)
	require.Equal(t, FormatHTML, f)

	f, err = ParseFormat("tree")
	require.NoError(t, err)
	require.Equal(t, FormatTree, f)

	_, err = ParseFormat("json")
	require.Error(t, err)
}

func TestWriteExpandsWithFormatAdapter(t *testing.T) {
	t.Parallel()

	button := styled.Button.Styled("rounded", styled.Config{
		Variants:        variant.NewTable(variant.Classes("size", map[string]string{"sm": "px-2", "lg": "px-4"})),
		DefaultVariants: styled.Props{"size": "sm"},
	})
	tree := styled.El(button, styled.Props{"size": "lg", "type": "submit"}, styled.Text("Save"))

	var htmlOut bytes.Buffer
	ctx := styled.NewRenderContext(FormatHTML.Adapter())
	require.NoError(t, Write(ctx, &htmlOut, FormatHTML, tree, Options{}))
	require.Equal(t, `<button class="rounded px-4" type="submit">Save</button>`, htmlOut.String())

	var treeOut bytes.Buffer
	ctx = styled.NewRenderContext(FormatTree.Adapter())
	require.NoError(t, Write(ctx, &treeOut, FormatTree, tree, Options{}))
	require.Equal(t, "<button> rounded px-4 type=submit\n└── \"Save\"\n", treeOut.String())
}

func TestWritePropagatesExpandErrors(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := Write(styled.DefaultContext(), &buf, FormatHTML, styled.El(nil, nil), Options{})
	require.Error(t, err)
}

func TestTitle(t *testing.T) {
	t.Parallel()

	require.Equal(t, "Large Card", Title("large-card"))
	require.Equal(t, "Card V2", Title("card_v2"))
	require.Equal(t, "Card", Title("card"))
}
