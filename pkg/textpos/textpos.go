// Package textpos converts byte offsets in a text into line and column
// positions and back.
//
// An Index is built once by scanning the text for line terminators and is
// immutable afterwards, so lookups are a single binary search and a
// subtraction. Lines and columns are both zero-based; rendering for humans
// goes through Position.String, which prints one-based. A "\r\n" pair and a
// bare "\n" each count as a single terminator; a lone "\r" does not end a
// line.
package textpos

import (
	"fmt"
	"strings"

	"github.com/foliopress/folio/internal/glb"
)

// Position is a zero-based (line, column) pair. Column is a byte offset
// from the start of the line, not a rune or display column.
type Position struct {
	Line   int
	Column int
}

// String renders the position one-based, the way compilers and editors
// print locations.
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line+1, p.Column+1)
}

// Index answers offset-to-position and position-to-offset queries for one
// fixed text. The zero value is not usable; construct with NewIndex.
type Index struct {
	text string
	// starts holds the starting offset of every line, in increasing order,
	// followed by a sentinel equal to len(text) that bounds the last line.
	starts []int
}

// NewIndex scans text and records every line start.
func NewIndex(text string) *Index {
	starts := []int{0}
	for i := 0; ; {
		j := strings.IndexByte(text[i:], '\n')
		if j < 0 {
			break
		}
		i += j + 1
		starts = append(starts, i)
	}
	starts = append(starts, len(text))
	return &Index{text: text, starts: starts}
}

// LineCount returns the number of lines in the text. The empty text has one
// line; a text ending in a terminator has an empty final line.
func (ix *Index) LineCount() int {
	return len(ix.starts) - 1
}

// Len returns the length of the indexed text in bytes.
func (ix *Index) Len() int {
	return len(ix.text)
}

// Position returns the line and column containing offset. Any offset in
// [0, Len()] resolves; Len() itself belongs to the final line. Offsets
// outside that range are a caller error and clamp to the nearest endpoint.
func (ix *Index) Position(offset int) Position {
	if offset > len(ix.text) {
		offset = len(ix.text)
	}
	line, ok := glb.Ints(ix.starts[:len(ix.starts)-1], offset)
	if !ok {
		return Position{}
	}
	return Position{Line: line, Column: offset - ix.starts[line]}
}

// Offset is the inverse of Position: it returns the byte offset of p.
// The line must be in [0, LineCount()) and the column must not run past the
// end of the line, terminator included; violating either panics.
func (ix *Index) Offset(p Position) int {
	if p.Line < 0 || p.Line >= ix.LineCount() {
		panic(fmt.Sprintf("textpos: line %d out of range [0, %d)", p.Line, ix.LineCount()))
	}
	start := ix.starts[p.Line]
	if p.Column < 0 || start+p.Column > ix.starts[p.Line+1] {
		panic(fmt.Sprintf("textpos: column %d out of range on line %d", p.Column, p.Line))
	}
	return start + p.Column
}

// Clamp confines p to a position Offset accepts: the line is clamped into
// [0, LineCount()) and the column into the line's content. Use it on
// positions read from external tool output before trusting them.
func (ix *Index) Clamp(p Position) Position {
	if p.Line < 0 {
		p.Line = 0
	}
	if p.Line >= ix.LineCount() {
		p.Line = ix.LineCount() - 1
	}
	start, end := ix.LineBounds(p.Line)
	if p.Column < 0 {
		p.Column = 0
	}
	if p.Column > end-start {
		p.Column = end - start
	}
	return p
}

// LineBounds returns the half-open [start, end) byte range of line's
// content, excluding the terminator. line must be in [0, LineCount()).
func (ix *Index) LineBounds(line int) (start, end int) {
	start = ix.starts[line]
	end = ix.starts[line+1]
	if end > start && ix.text[end-1] == '\n' {
		end--
		if end > start && ix.text[end-1] == '\r' {
			end--
		}
	}
	return start, end
}

// Line returns the content of line without its terminator.
func (ix *Index) Line(line int) string {
	start, end := ix.LineBounds(line)
	return ix.text[start:end]
}
