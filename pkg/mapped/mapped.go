// Package mapped implements provenance-tracking strings for the folio
// toolchain.
//
// Rendering a document means slicing it apart, rewriting pieces, and
// splicing the results back together; when a downstream tool then reports
// "error at line 12" against text it was handed, that position is
// meaningless to the author. A Text remembers, for every byte of a derived
// string, which byte of the original document it came from, so positions
// survive any chain of extraction, splicing, and concatenation.
//
// Texts are immutable values: every constructor returns a new Text and no
// method mutates its receiver, so Texts may be shared freely across
// goroutines without synchronization. Derivation chains are resolved at
// query time, one layer per Derive; code that stacks many layers over the
// same source should prefer Concat, which routes queries to its parts
// without adding a layer.
package mapped

import (
	"fmt"
	"strings"

	"github.com/foliopress/folio/internal/glb"
)

// Piece is one ordered constituent of a derived Text: either a literal
// fragment with no provenance, or a half-open [start, end) byte range
// copied from the source.
type Piece struct {
	lit     string
	start   int
	end     int
	isRange bool
}

// Lit returns a literal piece. Offsets inside it do not map back to the
// original text.
func Lit(s string) Piece {
	return Piece{lit: s}
}

// Range returns a piece copying bytes [start, end) of the source the Text
// is built over. Bounds outside the source panic at construction.
func Range(start, end int) Piece {
	return Piece{start: start, end: end, isRange: true}
}

// segment records where one piece landed in the owning value. Segments are
// ordered by offset, contiguous, and cover the value exactly; they are
// built once at construction and never modified.
type segment struct {
	offset  int // start within the owning Text's value
	length  int
	start   int // [start, end) in the immediate source when sourced is true
	end     int
	sourced bool
}

func segmentOffset(s segment) int { return s.offset }

// Text is an immutable string carrying provenance. Value is the derived
// text; Original is the root text the derivation chain started from. The
// zero value is an empty Text with nothing to map.
type Text struct {
	value    string
	original string

	// Piece-built Texts resolve offsets through segments, then through
	// source when the pieces indexed another Text rather than a raw string.
	segments []segment
	source   *Text

	// Concatenations route offsets to parts via the starts table instead.
	parts  []Text
	starts []int
}

// New builds a Text over a raw source string. The value is the
// concatenation of the pieces in order; Original is source itself.
func New(source string, pieces ...Piece) Text {
	value, segs := build(source, pieces)
	return Text{value: value, original: source, segments: segs}
}

// Derive builds a Text whose range pieces index source.Value(). The
// result's Original is source.Original(), not the intermediate value, so
// any depth of derivation still resolves to the root document.
func Derive(source Text, pieces ...Piece) Text {
	value, segs := build(source.value, pieces)
	src := source
	return Text{value: value, original: source.original, segments: segs, source: &src}
}

// Identity wraps a plain string in a Text whose value and original are both
// s and whose mapping is the identity over [0, len(s)).
func Identity(s string) Text {
	return Text{
		value:    s,
		original: s,
		segments: []segment{{length: len(s), end: len(s), sourced: true}},
	}
}

// Concat joins Texts into one Text that routes every query to the part
// owning the offset. All parts must derive from the same original; Concat
// does not check this, and the result reports the first part's Original.
// Concat panics when called with no parts.
func Concat(parts ...Text) Text {
	if len(parts) == 0 {
		panic("mapped: Concat of zero Texts")
	}
	var sb strings.Builder
	starts := make([]int, len(parts))
	ps := make([]Text, len(parts))
	for i, p := range parts {
		starts[i] = sb.Len()
		sb.WriteString(p.value)
		ps[i] = p
	}
	return Text{
		value:    sb.String(),
		original: ps[0].original,
		parts:    ps,
		starts:   starts,
	}
}

func build(source string, pieces []Piece) (string, []segment) {
	var sb strings.Builder
	segs := make([]segment, 0, len(pieces))
	for _, p := range pieces {
		var frag string
		seg := segment{offset: sb.Len()}
		if p.isRange {
			if p.start < 0 || p.end < p.start || p.end > len(source) {
				panic(fmt.Sprintf("mapped: range [%d, %d) outside source of length %d", p.start, p.end, len(source)))
			}
			frag = source[p.start:p.end]
			seg.start, seg.end, seg.sourced = p.start, p.end, true
		} else {
			frag = p.lit
		}
		seg.length = len(frag)
		segs = append(segs, seg)
		sb.WriteString(frag)
	}
	return sb.String(), segs
}

// Value returns the derived text.
func (t Text) Value() string { return t.value }

// Original returns the root text at the bottom of the derivation chain.
func (t Text) Original() string { return t.original }

// Len returns len(t.Value()).
func (t Text) Len() int { return len(t.value) }

// Map translates an offset in the derived text into the offset of the same
// byte in the original text. It reports false for offsets inside literal
// pieces, for offsets whose provenance is lost at any stage of the chain,
// and for offsets outside [0, Len()).
func (t Text) Map(offset int) (int, bool) {
	if t.parts != nil {
		i, ok := glb.Ints(t.starts, offset)
		if !ok {
			return 0, false
		}
		return t.parts[i].Map(offset - t.starts[i])
	}
	local, ok := t.mapLocal(offset)
	if !ok {
		return 0, false
	}
	if t.source != nil {
		return t.source.Map(local)
	}
	return local, true
}

// MapClosest translates an offset in the derived text into the original
// offset of the nearest mapped byte at or before it. Wherever Map succeeds,
// MapClosest returns the same offset; inside literal pieces it falls back
// to the last byte of the closest preceding sourced piece. It reports false
// only when no sourced byte exists at or before the offset anywhere in the
// chain.
func (t Text) MapClosest(offset int) (int, bool) {
	if t.parts != nil {
		i, ok := glb.Ints(t.starts, offset)
		if !ok {
			return 0, false
		}
		return t.parts[i].MapClosest(offset - t.starts[i])
	}
	local, ok := t.mapClosestLocal(offset)
	if !ok {
		return 0, false
	}
	if t.source != nil {
		return t.source.MapClosest(local)
	}
	return local, true
}

// mapLocal resolves offset against the segment table, yielding an offset in
// the immediate source.
func (t Text) mapLocal(offset int) (int, bool) {
	i, ok := glb.Search(t.segments, segmentOffset, offset)
	if !ok {
		return 0, false
	}
	seg := t.segments[i]
	if !seg.sourced || offset-seg.offset >= seg.length {
		return 0, false
	}
	return seg.start + (offset - seg.offset), true
}

// mapClosestLocal is mapLocal with the left-biased fallback: when the
// owning segment has no provenance at offset, the answer is the final byte
// of the nearest preceding sourced segment.
func (t Text) mapClosestLocal(offset int) (int, bool) {
	i, ok := glb.Search(t.segments, segmentOffset, offset)
	if !ok {
		return 0, false
	}
	if seg := t.segments[i]; seg.sourced && offset-seg.offset < seg.length {
		return seg.start + (offset - seg.offset), true
	}
	for ; i >= 0; i-- {
		// Zero-length sourced segments have no final byte to snap to.
		if seg := t.segments[i]; seg.sourced && seg.length > 0 {
			return seg.end - 1, true
		}
	}
	return 0, false
}
