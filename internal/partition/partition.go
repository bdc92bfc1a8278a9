// Package partition splits a source document into YAML front matter,
// executable code cells, and markdown runs. Every part is a mapped.Text
// sliced from the input, never a copy that forgets where it came from, so
// problems found inside a cell body or an option block still resolve to
// their exact position in the author's file.
//
// The grammar is deliberately small: front matter is a leading "---" block,
// an executable cell is a fenced block whose info string is braced, as in
// "```{python}", and everything else is markdown. Fenced blocks without
// braces stay inside markdown runs, including anything nested in them, so a
// code sample quoting a cell never becomes one.
package partition

import (
	"context"
	"regexp"
	"strings"

	"github.com/foliopress/folio/internal/logging"
	"github.com/foliopress/folio/pkg/mapped"
)

// Kind discriminates the two cell flavors a document breaks into.
type Kind int

const (
	KindMarkdown Kind = iota
	KindCode
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindMarkdown:
		return "markdown"
	case KindCode:
		return "code"
	default:
		return "unknown"
	}
}

// Cell is one run of the document: a markdown stretch or the body of an
// executable code cell. Source for a code cell is the text between the
// fences, terminators kept; the fences themselves belong to no cell.
type Cell struct {
	Kind     Kind
	Language string // fence language, e.g. "python"; empty for markdown
	Info     string // raw info string of the opening fence
	Source   mapped.Text
}

// Partitioned is the result of splitting one document.
type Partitioned struct {
	FrontMatter    mapped.Text // inner YAML, delimiters excluded
	HasFrontMatter bool
	Cells          []Cell
}

type config struct {
	logger logging.Logger
}

// Option adjusts how Partition works.
type Option func(*config)

// WithLogger routes partition debug output to l.
func WithLogger(l logging.Logger) Option {
	return func(c *config) { c.logger = l }
}

var (
	fenceOpenRe = regexp.MustCompile("^( {0,3})(`{3,}|~{3,})(.*)$")
	execInfoRe  = regexp.MustCompile(`^\{\s*([A-Za-z0-9_+-]+)(?:[\s,][^}]*)?\}\s*$`)
	delimRe     = regexp.MustCompile(`^(---|\.\.\.)\s*$`)
)

// lineSpan is one line of the value: [start, end) includes the terminator,
// content stops before it.
type lineSpan struct {
	start   int
	end     int
	content int
}

func scanLines(v string) []lineSpan {
	var spans []lineSpan
	start := 0
	for i := 0; i < len(v); i++ {
		if v[i] != '\n' {
			continue
		}
		content := i
		if content > start && v[content-1] == '\r' {
			content--
		}
		spans = append(spans, lineSpan{start: start, end: i + 1, content: content})
		start = i + 1
	}
	if start < len(v) {
		spans = append(spans, lineSpan{start: start, end: len(v), content: len(v)})
	}
	return spans
}

// Partition splits src into front matter and cells.
func Partition(src mapped.Text, opts ...Option) Partitioned {
	cfg := config{logger: logging.Nop()}
	for _, o := range opts {
		o(&cfg)
	}
	log := cfg.logger.WithComponent("partition")
	ctx := context.Background()

	v := src.Value()
	spans := scanLines(v)

	var out Partitioned
	i := 0

	if len(spans) > 0 && strings.TrimRight(v[spans[0].start:spans[0].content], " ") == "---" {
		for j := 1; j < len(spans); j++ {
			if delimRe.MatchString(v[spans[j].start:spans[j].content]) {
				out.FrontMatter = src.Slice(spans[0].end, spans[j].start)
				out.HasFrontMatter = true
				i = j + 1
				log.Debug(ctx, "front matter detected", "lines", j-1)
				break
			}
		}
		if !out.HasFrontMatter {
			log.Warn(ctx, nil, "unterminated front matter treated as markdown")
		}
	}

	runStart := -1
	flushRun := func(end int) {
		if runStart >= 0 && end > runStart {
			out.Cells = append(out.Cells, Cell{Kind: KindMarkdown, Source: src.Slice(runStart, end)})
		}
		runStart = -1
	}

	var mdFenceChar byte
	var mdFenceLen int
	inMdFence := false

	for ; i < len(spans); i++ {
		sp := spans[i]
		line := v[sp.start:sp.content]

		if inMdFence {
			if closesFence(line, mdFenceChar, mdFenceLen) {
				inMdFence = false
			}
			if runStart < 0 {
				runStart = sp.start
			}
			continue
		}

		m := fenceOpenRe.FindStringSubmatch(line)
		if m == nil {
			if runStart < 0 {
				runStart = sp.start
			}
			continue
		}

		fence := m[2]
		info := strings.TrimSpace(m[3])
		em := execInfoRe.FindStringSubmatch(info)
		if em == nil {
			// A plain fenced block is markdown; swallow it whole so nothing
			// inside can open a cell.
			if runStart < 0 {
				runStart = sp.start
			}
			inMdFence, mdFenceChar, mdFenceLen = true, fence[0], len(fence)
			continue
		}

		flushRun(sp.start)

		language := em[1]
		bodyStart := sp.end
		bodyEnd, next := len(v), len(spans)
		closed := false
		for j := i + 1; j < len(spans); j++ {
			if closesFence(v[spans[j].start:spans[j].content], fence[0], len(fence)) {
				bodyEnd, next = spans[j].start, j+1
				closed = true
				break
			}
		}
		if !closed {
			log.Warn(ctx, nil, "unclosed code cell runs to end of document", "language", language)
		}

		out.Cells = append(out.Cells, Cell{
			Kind:     KindCode,
			Language: language,
			Info:     info,
			Source:   src.Slice(bodyStart, bodyEnd),
		})
		log.Debug(ctx, "code cell", "language", language, "bytes", bodyEnd-bodyStart)

		i = next - 1
	}
	flushRun(len(v))

	return out
}

func closesFence(line string, char byte, n int) bool {
	trimmed := strings.TrimLeft(line, " ")
	if len(line)-len(trimmed) > 3 {
		return false
	}
	count := 0
	for count < len(trimmed) && trimmed[count] == char {
		count++
	}
	if count < n {
		return false
	}
	return strings.TrimRight(trimmed[count:], " ") == ""
}
