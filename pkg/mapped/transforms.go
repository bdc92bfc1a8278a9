package mapped

import "strings"

// Slice returns the [start, end) substring of t with provenance intact.
func (t Text) Slice(start, end int) Text {
	return Derive(t, Range(start, end))
}

// Lines splits t into one Text per line, treating "\r\n" and "\n" as one
// terminator. With keepEnds the terminator stays attached to its line;
// otherwise it is cut, along with the "\r" of a "\r\n" pair. The split
// introduces no literal pieces, so every line keeps full provenance. A text
// ending in a terminator yields no trailing empty line; the empty text
// yields a single empty line.
func (t Text) Lines(keepEnds bool) []Text {
	var lines []Text
	v := t.value
	start := 0
	for i := 0; i < len(v); i++ {
		if v[i] != '\n' {
			continue
		}
		end := i + 1
		cut := i
		if cut > start && v[cut-1] == '\r' {
			cut--
		}
		if keepEnds {
			cut = end
		}
		lines = append(lines, t.Slice(start, cut))
		start = end
	}
	if start < len(v) || len(lines) == 0 {
		lines = append(lines, t.Slice(start, len(v)))
	}
	return lines
}

// TrimSpace trims ASCII spaces, tabs, and line terminators from both ends,
// keeping provenance for what remains.
func (t Text) TrimSpace() Text {
	start, end := 0, len(t.value)
	for start < end && isSpace(t.value[start]) {
		start++
	}
	for end > start && isSpace(t.value[end-1]) {
		end--
	}
	return t.Slice(start, end)
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

// NormalizeNewlines rewrites every "\r\n" to "\n". The surviving "\n" keeps
// its mapping and the "\r" is dropped, so the result carries no literal
// pieces. A Text without "\r\n" is returned unchanged.
func (t Text) NormalizeNewlines() Text {
	if !strings.Contains(t.value, "\r\n") {
		return t
	}
	var pieces []Piece
	start := 0
	for i := 0; i+1 < len(t.value); i++ {
		if t.value[i] == '\r' && t.value[i+1] == '\n' {
			if i > start {
				pieces = append(pieces, Range(start, i))
			}
			start = i + 1
		}
	}
	pieces = append(pieces, Range(start, len(t.value)))
	return Derive(t, pieces...)
}
