package mapped

import (
	"fmt"

	"github.com/foliopress/folio/pkg/textpos"
)

// LineMapper reports original-document line and column positions for
// offsets in a derived Text. The line index over Original is built once at
// construction and shared by every lookup, so keep one LineMapper per Text
// rather than rebuilding per query.
type LineMapper struct {
	text  Text
	index *textpos.Index
}

// NewLineMapper builds the original-text line index for t.
func NewLineMapper(t Text) *LineMapper {
	return &LineMapper{text: t, index: textpos.NewIndex(t.Original())}
}

// Position converts a derived offset to the original position of the
// nearest mapped byte at or before it, per MapClosest. An offset with no
// reachable provenance at all means the Text was assembled from nothing
// but literals up to that point; that is a bug in the construction, and
// Position panics rather than invent a location. Callers holding Texts of
// unknown shape should probe with MapClosest first.
func (lm *LineMapper) Position(offset int) textpos.Position {
	orig, ok := lm.text.MapClosest(offset)
	if !ok {
		panic(fmt.Sprintf("mapped: offset %d has no provenance to resolve a line for", offset))
	}
	return lm.index.Position(orig)
}
