package mapped

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlice(t *testing.T) {
	text := Identity("abcdef").Slice(2, 5)

	require.Equal(t, "cde", text.Value())
	got, ok := text.Map(0)
	require.True(t, ok)
	assert.Equal(t, 2, got)
}

func TestLines(t *testing.T) {
	doc := Identity("one\ntwo\r\nthree")

	t.Run("terminators cut", func(t *testing.T) {
		lines := doc.Lines(false)
		require.Len(t, lines, 3)
		assert.Equal(t, "one", lines[0].Value())
		assert.Equal(t, "two", lines[1].Value())
		assert.Equal(t, "three", lines[2].Value())

		got, ok := lines[1].Map(0)
		require.True(t, ok)
		assert.Equal(t, 4, got, "'t' of two sits at offset 4 of the document")

		got, ok = lines[2].Map(0)
		require.True(t, ok)
		assert.Equal(t, 9, got)
	})

	t.Run("terminators kept", func(t *testing.T) {
		lines := doc.Lines(true)
		require.Len(t, lines, 3)
		assert.Equal(t, "one\n", lines[0].Value())
		assert.Equal(t, "two\r\n", lines[1].Value())
		assert.Equal(t, "three", lines[2].Value())
	})
}

func TestLinesEdgeShapes(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{name: "trailing terminator yields no empty line", text: "a\nb\n", want: []string{"a", "b"}},
		{name: "empty text is one empty line", text: "", want: []string{""}},
		{name: "single terminator", text: "\n", want: []string{""}},
		{name: "blank interior line", text: "a\n\nb", want: []string{"a", "", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines := Identity(tt.text).Lines(false)
			values := make([]string, len(lines))
			for i, ln := range lines {
				values[i] = ln.Value()
			}
			assert.Equal(t, tt.want, values)
		})
	}
}

func TestLinesReassemble(t *testing.T) {
	doc := Identity("alpha\r\nbeta\ngamma\n")

	joined := Concat(doc.Lines(true)...)
	assert.Equal(t, doc.Value(), joined.Value())

	for offset := 0; offset < joined.Len(); offset++ {
		got, ok := joined.Map(offset)
		require.True(t, ok, "offset %d", offset)
		assert.Equal(t, offset, got)
	}
}

func TestTrimSpace(t *testing.T) {
	text := Identity("  \thello \n").TrimSpace()

	require.Equal(t, "hello", text.Value())
	got, ok := text.Map(0)
	require.True(t, ok)
	assert.Equal(t, 3, got)

	assert.Equal(t, "", Identity(" \t\r\n").TrimSpace().Value())
	assert.Equal(t, "a b", Identity("a b").TrimSpace().Value())
}

func TestNormalizeNewlines(t *testing.T) {
	text := Identity("a\r\nb\r\nc").NormalizeNewlines()

	require.Equal(t, "a\nb\nc", text.Value())
	require.Equal(t, "a\r\nb\r\nc", text.Original())

	tests := []struct {
		offset int
		want   int
	}{
		{offset: 0, want: 0},
		{offset: 1, want: 2},
		{offset: 2, want: 3},
		{offset: 3, want: 5},
		{offset: 4, want: 6},
	}
	for _, tt := range tests {
		got, ok := text.Map(tt.offset)
		require.True(t, ok, "Map(%d): normalization must not lose provenance", tt.offset)
		assert.Equal(t, tt.want, got, "Map(%d)", tt.offset)
	}
}

func TestNormalizeNewlinesUntouchedText(t *testing.T) {
	text := Identity("a\nb\rc")
	normalized := text.NormalizeNewlines()

	assert.Equal(t, text.Value(), normalized.Value(), "lone terminators stay as they are")
}

func TestNormalizeNewlinesMatchesStringsReplacer(t *testing.T) {
	inputs := []string{
		"\r\n",
		"\r\n\r\n",
		"x\r\n",
		"\r\nx",
		"a\rb\r\nc\nd",
		"no terminators at all",
	}
	for _, in := range inputs {
		got := Identity(in).NormalizeNewlines()
		assert.Equal(t, strings.ReplaceAll(in, "\r\n", "\n"), got.Value(), "input %q", in)
	}
}
