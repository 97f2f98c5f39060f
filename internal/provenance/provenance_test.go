package provenance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEqual(t *testing.T) {
	base := NewDirect("doc.qmd", 10, 40)

	tests := []struct {
		name string
		a, b Provenance
		want bool
	}{
		{
			name: "identical direct spans",
			a:    NewDirect("doc.qmd", 0, 5),
			b:    NewDirect("doc.qmd", 0, 5),
			want: true,
		},
		{
			name: "different source ids",
			a:    NewDirect("a.qmd", 0, 5),
			b:    NewDirect("b.qmd", 0, 5),
			want: false,
		},
		{
			name: "derived with equal parents",
			a:    &Derived{Parent: base, Start: 2, End: 8},
			b:    &Derived{Parent: NewDirect("doc.qmd", 10, 40), Start: 2, End: 8},
			want: true,
		},
		{
			name: "derived vs direct",
			a:    &Derived{Parent: base, Start: 2, End: 8},
			b:    NewDirect("doc.qmd", 12, 18),
			want: false,
		},
		{
			name: "composite piece mismatch",
			a: &Composite{Pieces: []Piece{
				{Source: base, Offset: 0, Length: 4},
			}},
			b: &Composite{Pieces: []Piece{
				{Source: base, Offset: 0, Length: 5},
			}},
			want: false,
		},
		{
			name: "stage markers",
			a:    NewStage("shortcode-expand", 3),
			b:    NewStage("shortcode-expand", 3),
			want: true,
		},
		{
			name: "nil both sides",
			a:    nil,
			b:    nil,
			want: true,
		},
		{
			name: "nil one side",
			a:    base,
			b:    nil,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Equal(tt.a, tt.b))
			assert.Equal(t, tt.want, Equal(tt.b, tt.a), "Equal must be symmetric")
		})
	}
}

func TestResolve(t *testing.T) {
	base := NewDirect("doc.qmd", 100, 200)

	t.Run("direct offsets into the span", func(t *testing.T) {
		loc, ok := Resolve(base, 7)
		require.True(t, ok)
		assert.Equal(t, "doc.qmd", loc.SourceID)
		assert.Equal(t, 107, loc.Offset)
	})

	t.Run("derived chains through the parent", func(t *testing.T) {
		d := &Derived{Parent: base, Start: 20, End: 50}
		loc, ok := Resolve(d, 5)
		require.True(t, ok)
		assert.Equal(t, 125, loc.Offset)
	})

	t.Run("composite picks the covering piece", func(t *testing.T) {
		c := &Composite{Pieces: []Piece{
			{Source: NewDirect("a.qmd", 0, 10), Offset: 0, Length: 10},
			{Source: NewDirect("b.qmd", 50, 60), Offset: 10, Length: 10},
		}}
		loc, ok := Resolve(c, 13)
		require.True(t, ok)
		assert.Equal(t, "b.qmd", loc.SourceID)
		assert.Equal(t, 53, loc.Offset)
	})

	t.Run("composite offset past all pieces", func(t *testing.T) {
		c := &Composite{Pieces: []Piece{
			{Source: base, Offset: 0, Length: 4},
		}}
		_, ok := Resolve(c, 9)
		assert.False(t, ok)
	})

	t.Run("stage never resolves", func(t *testing.T) {
		_, ok := Resolve(NewStage("include", 1), 0)
		assert.False(t, ok)
	})
}

func TestJSONRoundTrip(t *testing.T) {
	nested := &Derived{
		Parent: &Composite{Pieces: []Piece{
			{Source: NewDirect("doc.qmd", 0, 12), Offset: 0, Length: 12},
			{Source: NewStage("include", 4), Offset: 12, Length: 30},
		}},
		Start: 3,
		End:   9,
	}

	data, err := Marshal(nested)
	require.NoError(t, err)

	got, err := Unmarshal(data)
	require.NoError(t, err)
	assert.True(t, Equal(nested, got))
}

func TestUnmarshalRejectsUnknownKind(t *testing.T) {
	_, err := Unmarshal([]byte(`{"kind":"telepathy"}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "telepathy")
}

func TestMarshalNil(t *testing.T) {
	data, err := Marshal(nil)
	require.NoError(t, err)
	assert.Equal(t, "null", string(data))

	p, err := Unmarshal(data)
	require.NoError(t, err)
	assert.Nil(t, p)
}
