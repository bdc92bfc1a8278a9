// Package engine selects the render engine for a partitioned document and
// defines the collaborator surface engine runners implement. Detection is
// pure text analysis; actually running an engine process stays outside this
// module.
package engine

import (
	"context"
	"strings"

	"github.com/foliopress/folio/internal/metadata"
	"github.com/foliopress/folio/internal/partition"
)

// Engine names as they appear under the "engine:" front matter key.
const (
	Markdown = "markdown"
	Jupyter  = "jupyter"
	Knitr    = "knitr"
)

// Result is what one engine run produces: the combined output stream and
// the process exit code. Positions inside Output refer to the text the
// engine was handed, so callers feed it to diagnostics.ParseRemapped with
// that same text to recover document positions.
type Result struct {
	Output   string
	ExitCode int
}

// RunArgs describes a single engine invocation.
type RunArgs struct {
	// Program is the interpreter or wrapper executable to invoke.
	Program string

	// Args are passed to Program verbatim.
	Args []string

	// Input is written to the process on stdin.
	Input string

	// Dir is the working directory; empty means the caller's.
	Dir string
}

// Runner executes engine processes. Implementations live with the caller;
// tests substitute RunnerFunc stubs.
type Runner interface {
	Run(ctx context.Context, args RunArgs) (Result, error)
}

// RunnerFunc adapts a plain function to the Runner interface.
type RunnerFunc func(ctx context.Context, args RunArgs) (Result, error)

// Run implements Runner.
func (f RunnerFunc) Run(ctx context.Context, args RunArgs) (Result, error) {
	return f(ctx, args)
}

var _ Runner = RunnerFunc(nil)

// knitrLanguages are the cell languages the knitr engine claims.
var knitrLanguages = map[string]bool{
	"r": true,
}

// Detect picks the engine for a partitioned document. An explicit engine in
// the front matter always wins, even when metadata flagged it as unknown; a
// jupyter kernel declaration selects jupyter; otherwise the cell languages
// decide. Any R cell selects knitr, any other executable cell selects
// jupyter, and a document without executable cells renders as plain
// markdown.
func Detect(p partition.Partitioned, fm metadata.FrontMatter) string {
	if fm.Engine != "" {
		return fm.Engine
	}
	if fm.Kernel != "" {
		return Jupyter
	}

	hasCode := false
	for _, cell := range p.Cells {
		if cell.Kind != partition.KindCode {
			continue
		}
		hasCode = true
		if knitrLanguages[strings.ToLower(cell.Language)] {
			return Knitr
		}
	}
	if hasCode {
		return Jupyter
	}
	return Markdown
}
