package busbar_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/berlivn/eriflex-api/internal/domain"
	"github.com/berlivn/eriflex-api/internal/domain/busbar"
)

func TestParsePoles(t *testing.T) {
	for in, want := range map[string]int{"Bi": 2, "Three": 3, "Four": 4, "6": 6, " 3 ": 3} {
		got, err := busbar.ParsePoles(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	for _, in := range []string{"", "Two", "-1", "0"} {
		_, err := busbar.ParsePoles(in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, in)
	}
}

func TestParsePerPhase(t *testing.T) {
	n, err := busbar.ParsePerPhase("2 Busbars")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = busbar.ParsePerPhase("1")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, err = busbar.ParsePerPhase("Busbar")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = busbar.ParsePerPhase("  ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestParseDimension(t *testing.T) {
	n, err := busbar.ParseDimension("width", "63.0")
	require.NoError(t, err)
	assert.Equal(t, 63, n)
	_, err = busbar.ParseDimension("width", "abc")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestNormalizePerPhase(t *testing.T) {
	assert.Equal(t, 4, busbar.NormalizePerPhase(5))
	assert.Equal(t, 4, busbar.NormalizePerPhase(4))
	assert.Equal(t, 1, busbar.NormalizePerPhase(1))
}

func TestSpacing(t *testing.T) {
	n, ok := busbar.FirstSpacing("34, 50,70")
	assert.True(t, ok)
	assert.Equal(t, 34, n)

	_, ok = busbar.FirstSpacing("var,50")
	assert.False(t, ok)

	assert.Equal(t, 40, busbar.Amini("40"))
	assert.Equal(t, busbar.DefaultAmini, busbar.Amini(""))
	assert.Equal(t, busbar.DefaultAmini, busbar.Amini("n/a, 40"))
}
