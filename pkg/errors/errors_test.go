package errors

import (
	stdErrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseErrorWrapsUnderlying(t *testing.T) {
	t.Parallel()

	underlying := fmt.Errorf("unexpected token")
	err := NewParseError("family.yaml", 12, underlying)

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	require.Equal(t, "family.yaml", parseErr.Path)
	require.Equal(t, 12, parseErr.Line)
	require.True(t, stdErrors.Is(err, underlying))
	require.Equal(t, "parse error: family.yaml:12: unexpected token", err.Error())
}

func TestValidationErrorCarriesField(t *testing.T) {
	t.Parallel()

	err := NewValidationError("components[1].context", "references unknown context \"card\"", nil)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Equal(t, "components[1].context", validationErr.Field)
	require.Contains(t, validationErr.Message, "unknown context")
	require.Equal(t, "validation error: unknown", NewValidationError("", "unknown", nil).Error())
}

func TestWithPath(t *testing.T) {
	t.Parallel()

	err := WithPath(NewValidationError("name", "is required", nil), "card.yaml")
	require.Equal(t, "validation error: card.yaml: name: is required", err.Error())

	wrapped := WithPath(fmt.Errorf("build: %w", err), "other.yaml")
	require.Equal(t, "build: validation error: card.yaml: name: is required", wrapped.Error())

	require.Equal(t, "validation error: card.yaml: broken", WithPath(NewValidationError("", "broken", nil), "card.yaml").Error())

	plain := stdErrors.New("boom")
	require.Same(t, plain, WithPath(plain, "card.yaml"))
}

func TestRenderErrorIncludesComponent(t *testing.T) {
	t.Parallel()

	underlying := stdErrors.New("depth exceeded")
	err := NewRenderError("Card", "expand", underlying)

	var renderErr *RenderError
	require.ErrorAs(t, err, &renderErr)
	require.Equal(t, "Card", renderErr.Component)
	require.True(t, stdErrors.Is(err, underlying))
	require.Equal(t, "render error [Card]: expand: depth exceeded", err.Error())
	require.Equal(t, "render error: boom", NewRenderError("", "", stdErrors.New("boom")).Error())
}

func TestNilReceivers(t *testing.T) {
	t.Parallel()

	var p *ParseError
	var v *ValidationError
	var r *RenderError
	require.Empty(t, p.Error())
	require.Empty(t, v.Error())
	require.Empty(t, r.Error())
	require.NoError(t, r.Unwrap())
}
