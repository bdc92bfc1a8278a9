package diagnostics

import (
	"strings"

	"github.com/rivo/uniseg"

	"github.com/foliopress/folio/pkg/textpos"
)

// Excerpt renders the line of text containing pos followed by a caret line
// marking the column. The caret offset is computed from grapheme display
// widths, and tabs in the prefix are copied through verbatim, so the caret
// lands under the right cell however the terminal expands them.
func Excerpt(text string, pos textpos.Position) string {
	ix := textpos.NewIndex(text)
	pos = ix.Clamp(pos)
	start, end := ix.LineBounds(pos.Line)
	line := text[start:end]
	prefix := line[:pos.Column]

	var pad strings.Builder
	g := uniseg.NewGraphemes(prefix)
	for g.Next() {
		s := g.Str()
		if s == "\t" {
			pad.WriteByte('\t')
			continue
		}
		for i := 0; i < uniseg.StringWidth(s); i++ {
			pad.WriteByte(' ')
		}
	}
	return line + "\n" + pad.String() + "^"
}

// Format renders d for terminal display, attaching a source excerpt when
// the diagnostic is positioned and source holds the original document.
func Format(d Diagnostic, source string) string {
	if !d.Positioned || source == "" {
		return d.Error()
	}
	excerpt := Excerpt(source, d.Pos)
	return d.Error() + "\n  " + strings.ReplaceAll(excerpt, "\n", "\n  ")
}
