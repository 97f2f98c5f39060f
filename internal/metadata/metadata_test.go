package metadata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/restitch/restitch/internal/doctree"
)

func TestChanged(t *testing.T) {
	tests := []struct {
		name     string
		original doctree.Meta
		xformed  doctree.Meta
		want     bool
	}{
		{
			name:     "identical maps",
			original: doctree.Meta{"title": "Doc", "draft": true},
			xformed:  doctree.Meta{"draft": true, "title": "Doc"},
			want:     false,
		},
		{
			name:     "value changed",
			original: doctree.Meta{"title": "Doc"},
			xformed:  doctree.Meta{"title": "Doc v2"},
			want:     true,
		},
		{
			name:     "key added",
			original: doctree.Meta{"title": "Doc"},
			xformed:  doctree.Meta{"title": "Doc", "date": "2026-01-01"},
			want:     true,
		},
		{
			name:     "nil vs empty",
			original: nil,
			xformed:  doctree.Meta{},
			want:     false,
		},
		{
			name:     "int vs whole float",
			original: doctree.Meta{"version": int64(2)},
			xformed:  doctree.Meta{"version": 2.0},
			want:     false,
		},
		{
			name:     "nested list reordered",
			original: doctree.Meta{"tags": []any{"a", "b"}},
			xformed:  doctree.Meta{"tags": []any{"b", "a"}},
			want:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Changed(tt.original, tt.xformed))
		})
	}
}

func TestDigestStable(t *testing.T) {
	meta := doctree.Meta{"title": "Doc", "params": map[string]any{"n": int64(3)}}

	d1, err := Digest(meta)
	require.NoError(t, err)
	d2, err := Digest(doctree.Meta{"params": map[string]any{"n": int64(3)}, "title": "Doc"})
	require.NoError(t, err)

	assert.Equal(t, d1, d2, "digest must not depend on key insertion order")
	assert.Len(t, d1, 64)
}

func TestParseFrontMatter(t *testing.T) {
	meta, err := ParseFrontMatter([]byte("title: Hello\ntags:\n  - a\n  - b\n"))
	require.NoError(t, err)
	assert.Equal(t, "Hello", meta["title"])
	assert.Equal(t, []any{"a", "b"}, meta["tags"])
}

func TestParseFrontMatterEmpty(t *testing.T) {
	meta, err := ParseFrontMatter([]byte("  \n"))
	require.NoError(t, err)
	assert.Nil(t, meta)
}

func TestParseFrontMatterInvalid(t *testing.T) {
	_, err := ParseFrontMatter([]byte(":\n  - ]["))
	require.Error(t, err)
}

func TestValidateSchema(t *testing.T) {
	schema := []byte(`
title:  string
draft?: bool
`)

	t.Run("valid metadata", func(t *testing.T) {
		err := ValidateSchema(doctree.Meta{"title": "Doc", "draft": false}, schema, "meta.cue")
		assert.NoError(t, err)
	})

	t.Run("wrong type", func(t *testing.T) {
		err := ValidateSchema(doctree.Meta{"title": int64(7)}, schema, "meta.cue")
		require.Error(t, err)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.NotEmpty(t, verr.Issues)
	})

	t.Run("broken schema", func(t *testing.T) {
		err := ValidateSchema(doctree.Meta{"title": "x"}, []byte("title: {"), "broken.cue")
		assert.Error(t, err)
	})
}
