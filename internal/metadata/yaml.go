// Package metadata decodes the YAML carried by a document, its front
// matter and its cell option blocks, into typed values. Everything here
// receives mapped text, so any problem a decode turns up is reported at the
// position the YAML occupies in the author's file, not in the stripped
// fragment the parser actually saw.
package metadata

import (
	"fmt"
	"regexp"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/foliopress/folio/internal/diagnostics"
	"github.com/foliopress/folio/pkg/mapped"
	"github.com/foliopress/folio/pkg/textpos"
)

// positioner translates positions inside a YAML fragment back to the
// original document the fragment was extracted from.
type positioner struct {
	src    mapped.Text
	yamlIx *textpos.Index
	origIx *textpos.Index
}

func newPositioner(src mapped.Text) *positioner {
	return &positioner{
		src:    src,
		yamlIx: textpos.NewIndex(src.Value()),
		origIx: textpos.NewIndex(src.Original()),
	}
}

// resolve maps a zero-based position in the fragment to the original
// document. It reports false when the fragment has no provenance there.
func (p *positioner) resolve(at textpos.Position) (textpos.Position, bool) {
	offset := p.yamlIx.Offset(p.yamlIx.Clamp(at))
	orig, ok := p.src.MapClosest(offset)
	if !ok {
		return textpos.Position{}, false
	}
	return p.origIx.Position(orig), true
}

// node maps a yaml.Node's one-based position to the original document.
func (p *positioner) node(n *yaml.Node) (textpos.Position, bool) {
	return p.resolve(textpos.Position{Line: n.Line - 1, Column: n.Column - 1})
}

// decoder accumulates diagnostics while walking a YAML document.
type decoder struct {
	path  string
	pos   *positioner
	diags []diagnostics.Diagnostic
}

func newDecoder(src mapped.Text, path string) *decoder {
	return &decoder{path: path, pos: newPositioner(src)}
}

func (d *decoder) add(n *yaml.Node, severity diagnostics.Severity, code, format string, args ...any) {
	diag := diagnostics.Diagnostic{
		Path:     d.path,
		Severity: severity,
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
	}
	if n != nil {
		if pos, ok := d.pos.node(n); ok {
			diag.Pos = pos
			diag.Positioned = true
		}
	}
	d.diags = append(d.diags, diag)
}

var yamlLineRe = regexp.MustCompile(`line (\d+): (.+)`)

// addParseError converts a yaml.Unmarshal failure into diagnostics. The
// library reports one-based line numbers inside the fragment; each one is
// pulled back to the original document. Errors without a line number come
// out unpositioned.
func (d *decoder) addParseError(err error) {
	matches := yamlLineRe.FindAllStringSubmatch(err.Error(), -1)
	if len(matches) == 0 {
		d.diags = append(d.diags, diagnostics.Diagnostic{
			Path:     d.path,
			Severity: diagnostics.SeverityError,
			Code:     diagnostics.CodeYAMLParse,
			Message:  err.Error(),
		})
		return
	}
	for _, m := range matches {
		line := atoi(m[1]) - 1
		diag := diagnostics.Diagnostic{
			Path:     d.path,
			Severity: diagnostics.SeverityError,
			Code:     diagnostics.CodeYAMLParse,
			Message:  m[2],
		}
		if pos, ok := d.pos.resolve(textpos.Position{Line: line}); ok {
			diag.Pos = pos
			diag.Positioned = true
		}
		d.diags = append(d.diags, diag)
	}
}

// parse unmarshals the fragment into a root node and unwraps the document
// wrapper. A nil return means the fragment was empty or failed to parse;
// failures are already recorded as diagnostics.
func (d *decoder) parse() *yaml.Node {
	var root yaml.Node
	if err := yaml.Unmarshal([]byte(d.pos.src.Value()), &root); err != nil {
		d.addParseError(err)
		return nil
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return nil
	}
	return root.Content[0]
}

// scalarString returns the string form of a scalar node, or reports a
// schema diagnostic naming key when the node is not a scalar.
func (d *decoder) scalarString(key string, n *yaml.Node) (string, bool) {
	if n.Kind != yaml.ScalarNode {
		d.add(n, diagnostics.SeverityError, diagnostics.CodeYAMLSchema, "%s must be a string", key)
		return "", false
	}
	return n.Value, true
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
