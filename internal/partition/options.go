package partition

import (
	"strings"

	"github.com/foliopress/folio/pkg/mapped"
)

// commentPrefixes maps a cell language to the comment leader its option
// lines use. Languages not listed comment with "#".
var commentPrefixes = map[string]string{
	"r":          "#",
	"python":     "#",
	"julia":      "#",
	"bash":       "#",
	"sh":         "#",
	"awk":        "#",
	"perl":       "#",
	"ruby":       "#",
	"stan":       "#",
	"octave":     "#",
	"coffee":     "#",
	"powershell": "#",
	"js":         "//",
	"javascript": "//",
	"typescript": "//",
	"ojs":        "//",
	"node":       "//",
	"d3":         "//",
	"java":       "//",
	"groovy":     "//",
	"scala":      "//",
	"cpp":        "//",
	"cc":         "//",
	"go":         "//",
	"dot":        "//",
	"sql":        "--",
	"mysql":      "--",
	"psql":       "--",
	"lua":        "--",
	"haskell":    "--",
	"matlab":     "%",
	"tikz":       "%",
	"fortran":    "!",
}

func optionPrefix(language string) string {
	if p, ok := commentPrefixes[strings.ToLower(language)]; ok {
		return p + "|"
	}
	return "#|"
}

// Options splits the leading option comment block off a code cell. The
// returned yaml Text holds the option lines with their comment leader
// stripped but their terminators kept, so it parses as multi-line YAML
// while every byte still maps into the original document. body is the rest
// of the cell. ok reports whether any option lines were present; markdown
// cells never have options.
func (c Cell) Options() (yaml, body mapped.Text, ok bool) {
	if c.Kind != KindCode {
		return mapped.Text{}, c.Source, false
	}

	prefix := optionPrefix(c.Language)
	v := c.Source.Value()

	var pieces []mapped.Text
	bodyStart := 0
	for _, sp := range scanLines(v) {
		content := v[sp.start:sp.content]
		if !strings.HasPrefix(content, prefix) {
			break
		}
		rest := content[len(prefix):]
		if rest != "" && rest[0] != ' ' {
			break
		}
		cut := sp.start + len(prefix)
		if rest != "" {
			cut++
		}
		pieces = append(pieces, c.Source.Slice(cut, sp.end))
		bodyStart = sp.end
	}

	if len(pieces) == 0 {
		return mapped.Text{}, c.Source, false
	}
	return mapped.Concat(pieces...), c.Source.Slice(bodyStart, c.Source.Len()), true
}
