package fetch

import (
	"testing"

	"github.com/russolsen/transit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransit_RoundTripKeywords(t *testing.T) {
	w := DefaultTransitWriter()
	r := DefaultTransitReader()

	text, err := w.Write([]any{transit.Keyword("alpha"), transit.Keyword("beta")})
	require.NoError(t, err)

	decoded, err := r.Read(text)
	require.NoError(t, err)

	values, ok := decoded.([]any)
	require.True(t, ok, "expected a slice, got %T", decoded)
	require.Len(t, values, 2)
	assert.Equal(t, transit.Keyword("alpha"), values[0])
	assert.Equal(t, transit.Keyword("beta"), values[1])
}

func TestTransit_RoundTripSets(t *testing.T) {
	w := DefaultTransitWriter()
	r := DefaultTransitReader()

	text, err := w.Write(transit.NewSet([]any{int64(1), int64(2), int64(3)}))
	require.NoError(t, err)

	decoded, err := r.Read(text)
	require.NoError(t, err)

	set, ok := decoded.(*transit.Set)
	require.True(t, ok, "expected a transit set, got %T", decoded)
	assert.Len(t, set.Contents, 3)
}

func TestTransit_RoundTripScalars(t *testing.T) {
	w := DefaultTransitWriter()
	r := DefaultTransitReader()

	text, err := w.Write([]any{int64(42), "plain", true})
	require.NoError(t, err)

	decoded, err := r.Read(text)
	require.NoError(t, err)

	values, ok := decoded.([]any)
	require.True(t, ok)
	assert.Equal(t, []any{int64(42), "plain", true}, values)
}

func TestTransit_SharedDefaults(t *testing.T) {
	assert.Equal(t, DefaultTransitWriter(), DefaultTransitWriter(),
		"default writer is a shared instance")
	assert.Equal(t, DefaultTransitReader(), DefaultTransitReader())
}

func TestTransit_VerboseWriter(t *testing.T) {
	w := NewTransitWriter(true)

	text, err := w.Write(map[any]any{transit.Keyword("k"): "v"})

	require.NoError(t, err)
	assert.NotEmpty(t, text)
}
