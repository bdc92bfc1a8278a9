package diagnostics

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/foliopress/folio/pkg/mapped"
	"github.com/foliopress/folio/pkg/textpos"
)

// Diagnostic codes attached by the parser and by front matter validation.
const (
	CodeToolOutput = "TOOL_OUTPUT"
	CodeYAMLParse  = "YAML_PARSE"
	CodeYAMLSchema = "YAML_SCHEMA"
)

var (
	// Compiler- and linter-shaped lines: "file:12:3: message" and
	// "file:12: message".
	fileLineColRe = regexp.MustCompile(`^(.+?):(\d+):(\d+):\s*(.+)$`)
	fileLineRe    = regexp.MustCompile(`^(.+?):(\d+):\s*(.+)$`)

	// Position frames whose message arrives on a later line: Python
	// traceback frames and knitr's halt marker.
	pythonFrameRe = regexp.MustCompile(`^\s*File "(.+)", line (\d+)(?:, in .+)?$`)
	knitrFrameRe  = regexp.MustCompile(`^Quitting from lines (\d+)-(\d+)(?: \(.+\))?$`)

	// Message lines: "NameError: x", "Error in eval(...): ...", bare
	// "Error: ..." and "Warning: ...".
	exceptionRe = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_.]*(?:Error|Exception)):\s*(.+)$`)
	errorRe     = regexp.MustCompile(`^(?:ERROR|Error)(?: in .+?)?:\s*(.+)$`)
	warningRe   = regexp.MustCompile(`^(?:WARNING|Warning)(?: message)?:\s*(.+)$`)
)

// OutputParser extracts diagnostics from the stdout/stderr of rendering
// tools. Positions it reports are zero-based and refer to the text the tool
// was run against; use ParseRemapped to pull them back to the original
// document.
type OutputParser struct{}

// NewOutputParser creates an OutputParser.
func NewOutputParser() *OutputParser {
	return &OutputParser{}
}

// Parse scans output line by line. Frame lines that only carry a position
// (a traceback frame, knitr's "Quitting from lines") are held and merged
// with the first following message line; message lines with no preceding
// frame come out unpositioned.
func (p *OutputParser) Parse(output string) []Diagnostic {
	var out []Diagnostic

	var pending *Diagnostic
	flushInto := func(severity Severity, message, raw string) {
		if pending != nil {
			d := *pending
			d.Severity = severity
			d.Message = message
			d.Raw = raw
			out = append(out, d)
			pending = nil
			return
		}
		out = append(out, Diagnostic{
			Severity: severity,
			Code:     CodeToolOutput,
			Message:  message,
			Raw:      raw,
		})
	}

	for _, raw := range strings.Split(output, "\n") {
		line := strings.TrimSuffix(raw, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		if m := pythonFrameRe.FindStringSubmatch(line); m != nil {
			pending = &Diagnostic{
				Pos:        textpos.Position{Line: atoi(m[2]) - 1},
				Positioned: true,
				Code:       CodeToolOutput,
			}
			continue
		}
		if m := knitrFrameRe.FindStringSubmatch(line); m != nil {
			pending = &Diagnostic{
				Pos:        textpos.Position{Line: atoi(m[1]) - 1},
				Positioned: true,
				Code:       CodeToolOutput,
			}
			continue
		}
		if m := exceptionRe.FindStringSubmatch(line); m != nil {
			flushInto(SeverityError, m[1]+": "+m[2], line)
			continue
		}
		if m := fileLineColRe.FindStringSubmatch(line); m != nil {
			severity, message := sniffSeverity(m[4])
			out = append(out, Diagnostic{
				Pos:        textpos.Position{Line: atoi(m[2]) - 1, Column: atoi(m[3]) - 1},
				Positioned: true,
				Severity:   severity,
				Code:       CodeToolOutput,
				Message:    message,
				Raw:        line,
			})
			continue
		}
		if m := errorRe.FindStringSubmatch(line); m != nil {
			flushInto(SeverityError, m[1], line)
			continue
		}
		if m := warningRe.FindStringSubmatch(line); m != nil {
			flushInto(SeverityWarning, m[1], line)
			continue
		}
		if m := fileLineRe.FindStringSubmatch(line); m != nil {
			severity, message := sniffSeverity(m[3])
			out = append(out, Diagnostic{
				Pos:        textpos.Position{Line: atoi(m[2]) - 1},
				Positioned: true,
				Severity:   severity,
				Code:       CodeToolOutput,
				Message:    message,
				Raw:        line,
			})
			continue
		}
	}

	return out
}

// ParseRemapped parses output and translates every position from the
// derived text the tool saw back into the original document, which is then
// named path. Positions whose provenance is lost, a diagnostic pointing
// into injected literal text with nothing sourced before it, stay on the
// diagnostic but are marked unpositioned.
func (p *OutputParser) ParseRemapped(output string, derived mapped.Text, path string) []Diagnostic {
	diags := p.Parse(output)
	if len(diags) == 0 {
		return diags
	}

	derivedIx := textpos.NewIndex(derived.Value())
	originalIx := textpos.NewIndex(derived.Original())

	for i := range diags {
		diags[i].Path = path
		if !diags[i].Positioned {
			continue
		}
		offset := derivedIx.Offset(derivedIx.Clamp(diags[i].Pos))
		orig, ok := derived.MapClosest(offset)
		if !ok {
			diags[i].Positioned = false
			diags[i].Pos = textpos.Position{}
			continue
		}
		diags[i].Pos = originalIx.Position(orig)
	}

	return diags
}

func sniffSeverity(message string) (Severity, string) {
	switch {
	case strings.HasPrefix(message, "error:"):
		return SeverityError, strings.TrimSpace(strings.TrimPrefix(message, "error:"))
	case strings.HasPrefix(message, "warning:"):
		return SeverityWarning, strings.TrimSpace(strings.TrimPrefix(message, "warning:"))
	case strings.HasPrefix(message, "info:"):
		return SeverityInfo, strings.TrimSpace(strings.TrimPrefix(message, "info:"))
	default:
		return SeverityError, message
	}
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
