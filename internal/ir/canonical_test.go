package ir

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Canonical JSON Tests
// =============================================================================

func TestMarshalCanonicalSortsObjectKeys(t *testing.T) {
	data, err := MarshalCanonical(map[string]any{
		"zebra": 1,
		"alpha": 2,
		"mango": 3,
	})
	require.NoError(t, err)
	assert.Equal(t, `{"alpha":2,"mango":3,"zebra":1}`, string(data))
}

func TestMarshalCanonicalDeterministic(t *testing.T) {
	value := map[string]any{
		"timelines": []any{
			map[string]any{"provider": "raf", "container": ".stage"},
		},
		"version": 1,
	}

	first, err := MarshalCanonical(value)
	require.NoError(t, err)
	second, err := MarshalCanonical(value)
	require.NoError(t, err)

	assert.Equal(t, first, second, "same value must produce byte-identical JSON")
}

func TestMarshalCanonicalNoHTMLEscaping(t *testing.T) {
	data, err := MarshalCanonical("a < b && c > d")
	require.NoError(t, err)
	assert.Equal(t, `"a < b && c > d"`, string(data))
}

func TestMarshalCanonicalEscapesControlCharacters(t *testing.T) {
	data, err := MarshalCanonical("line1\nline2\t\"quoted\"")
	require.NoError(t, err)
	assert.Equal(t, `"line1\nline2\t\"quoted\""`, string(data))
}

func TestMarshalCanonicalNFCNormalization(t *testing.T) {
	// "e" + combining acute accent normalizes to the precomposed form.
	data, err := MarshalCanonical("café")
	require.NoError(t, err)
	assert.Equal(t, "\"café\"", string(data))
}

func TestMarshalCanonicalIntegralFloat(t *testing.T) {
	data, err := MarshalCanonical(5.0)
	require.NoError(t, err)
	assert.Equal(t, "5", string(data))
}

func TestMarshalCanonicalFractionalFloat(t *testing.T) {
	data, err := MarshalCanonical(1.5)
	require.NoError(t, err)
	assert.Equal(t, "1.5", string(data))
}

func TestMarshalCanonicalNaNFails(t *testing.T) {
	_, err := MarshalCanonical(map[string]any{
		"duration": map[string]any{"start": math.NaN()},
	})
	require.Error(t, err)

	var nonFinite *NonFiniteError
	require.ErrorAs(t, err, &nonFinite)
	assert.Equal(t, "$.duration.start", nonFinite.Path)
}

func TestMarshalCanonicalInfinityPathInArray(t *testing.T) {
	_, err := MarshalCanonical(map[string]any{
		"actions": []any{map[string]any{"end": math.Inf(1)}},
	})
	var nonFinite *NonFiniteError
	require.ErrorAs(t, err, &nonFinite)
	assert.Equal(t, "$.actions[0].end", nonFinite.Path)
}

func TestMarshalCanonicalNullForbidden(t *testing.T) {
	_, err := MarshalCanonical(map[string]any{"x": nil})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "null")
}

func TestMarshalCanonicalEmptyContainers(t *testing.T) {
	data, err := MarshalCanonical(map[string]any{"items": []any{}})
	require.NoError(t, err)
	assert.Equal(t, `{"items":[]}`, string(data))
}
