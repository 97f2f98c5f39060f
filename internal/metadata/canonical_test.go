package metadata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalCanonical(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  string
	}{
		{
			name:  "keys sorted",
			input: map[string]any{"b": 1, "a": 2},
			want:  `{"a":2,"b":1}`,
		},
		{
			name:  "no html escaping",
			input: map[string]any{"x": "<b>&</b>"},
			want:  `{"x":"<b>&</b>"}`,
		},
		{
			name:  "nested structures",
			input: map[string]any{"list": []any{"a", true, nil}},
			want:  `{"list":["a",true,null]}`,
		},
		{
			name:  "whole float prints as integer",
			input: map[string]any{"version": 2.0},
			want:  `{"version":2}`,
		},
		{
			name:  "fractional float",
			input: map[string]any{"scale": 1.5},
			want:  `{"scale":1.5}`,
		},
		{
			name:  "empty map",
			input: map[string]any{},
			want:  `{}`,
		},
		{
			name:  "nil map",
			input: map[string]any(nil),
			want:  `{}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MarshalCanonical(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestMarshalCanonicalNFC(t *testing.T) {
	// e + combining acute (NFD) must normalize to the composed form.
	decomposed := "café"
	composed := "café"

	a, err := MarshalCanonical(decomposed)
	require.NoError(t, err)
	b, err := MarshalCanonical(composed)
	require.NoError(t, err)
	assert.Equal(t, string(b), string(a))
}

func TestUTF16KeyOrdering(t *testing.T) {
	// U+FF01 (FULLWIDTH EXCLAMATION MARK) is a single UTF-16 unit
	// 0xFF01; U+10000 encodes as surrogates starting 0xD800. In
	// UTF-16 order the surrogate pair sorts first; byte-wise UTF-8
	// would say otherwise.
	obj := map[string]any{
		"！":     1,
		"\U00010000": 2,
	}
	got, err := MarshalCanonical(obj)
	require.NoError(t, err)
	want := "{\"\U00010000\":2,\"！\":1}"
	assert.Equal(t, want, string(got))
}

func TestMarshalCanonicalRejectsNonFinite(t *testing.T) {
	_, err := MarshalCanonical(map[string]any{"x": nan()})
	require.Error(t, err)
}

func nan() float64 {
	z := 0.0
	return z / z
}

func TestLineSeparatorsNotEscaped(t *testing.T) {
	got, err := MarshalCanonical("a b c")
	require.NoError(t, err)
	assert.Equal(t, "\"a b c\"", string(got))
}

func TestLiteralBackslashU2028Stays(t *testing.T) {
	// A literal backslash followed by "u2028" is not the character.
	got, err := MarshalCanonical("a\\u2028b")
	require.NoError(t, err)
	assert.Equal(t, `"a\\u2028b"`, string(got))
}
