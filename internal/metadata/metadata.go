package metadata

import (
	"gopkg.in/yaml.v3"

	"github.com/foliopress/folio/internal/diagnostics"
	"github.com/foliopress/folio/pkg/mapped"
)

// FrontMatter holds the document-level metadata folio understands. Keys it
// does not model end up in Extra, decoded generically.
type FrontMatter struct {
	Title   string
	Authors []string
	Date    string
	Engine  string
	Kernel  string
	Formats []string
	Extra   map[string]any
}

var knownEngines = map[string]bool{
	"markdown": true,
	"jupyter":  true,
	"knitr":    true,
}

// Decode parses front matter YAML. It never fails outright: whatever could
// be decoded is returned, and every problem becomes a diagnostic positioned
// in the original document.
func Decode(src mapped.Text, path string) (FrontMatter, []diagnostics.Diagnostic) {
	var fm FrontMatter
	d := newDecoder(src, path)

	root := d.parse()
	if root == nil {
		return fm, d.diags
	}
	if root.Kind != yaml.MappingNode {
		d.add(root, diagnostics.SeverityError, diagnostics.CodeYAMLSchema,
			"front matter must be a YAML mapping")
		return fm, d.diags
	}

	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], root.Content[i+1]
		switch key.Value {
		case "title":
			if s, ok := d.scalarString("title", value); ok {
				fm.Title = s
			}
		case "date":
			if s, ok := d.scalarString("date", value); ok {
				fm.Date = s
			}
		case "author", "authors":
			fm.Authors = append(fm.Authors, d.decodeAuthors(value)...)
		case "engine":
			if s, ok := d.scalarString("engine", value); ok {
				fm.Engine = s
				if !knownEngines[s] {
					d.add(value, diagnostics.SeverityWarning, diagnostics.CodeYAMLSchema,
						"unknown engine %q", s)
				}
			}
		case "jupyter":
			fm.Kernel = d.decodeKernel(value)
		case "format":
			fm.Formats = d.decodeFormats(value)
		default:
			if fm.Extra == nil {
				fm.Extra = make(map[string]any)
			}
			var v any
			if err := value.Decode(&v); err != nil {
				d.add(value, diagnostics.SeverityError, diagnostics.CodeYAMLSchema,
					"cannot decode %s: %v", key.Value, err)
				continue
			}
			fm.Extra[key.Value] = v
		}
	}

	return fm, d.diags
}

// decodeAuthors accepts a single scalar or a sequence of scalars.
func (d *decoder) decodeAuthors(n *yaml.Node) []string {
	switch n.Kind {
	case yaml.ScalarNode:
		return []string{n.Value}
	case yaml.SequenceNode:
		var authors []string
		for _, item := range n.Content {
			if item.Kind != yaml.ScalarNode {
				d.add(item, diagnostics.SeverityError, diagnostics.CodeYAMLSchema,
					"author entries must be strings")
				continue
			}
			authors = append(authors, item.Value)
		}
		return authors
	default:
		d.add(n, diagnostics.SeverityError, diagnostics.CodeYAMLSchema,
			"author must be a string or a list of strings")
		return nil
	}
}

// decodeKernel accepts "jupyter: python3" or a mapping with a kernelspec.
func (d *decoder) decodeKernel(n *yaml.Node) string {
	switch n.Kind {
	case yaml.ScalarNode:
		return n.Value
	case yaml.MappingNode:
		for i := 0; i+1 < len(n.Content); i += 2 {
			if n.Content[i].Value != "kernelspec" {
				continue
			}
			spec := n.Content[i+1]
			if spec.Kind != yaml.MappingNode {
				break
			}
			for j := 0; j+1 < len(spec.Content); j += 2 {
				if spec.Content[j].Value == "name" && spec.Content[j+1].Kind == yaml.ScalarNode {
					return spec.Content[j+1].Value
				}
			}
		}
		d.add(n, diagnostics.SeverityError, diagnostics.CodeYAMLSchema,
			"jupyter mapping needs a kernelspec name")
		return ""
	default:
		d.add(n, diagnostics.SeverityError, diagnostics.CodeYAMLSchema,
			"jupyter must be a kernel name or a kernelspec mapping")
		return ""
	}
}

// decodeFormats accepts a scalar format name, a sequence of names, or a
// mapping from name to per-format options.
func (d *decoder) decodeFormats(n *yaml.Node) []string {
	switch n.Kind {
	case yaml.ScalarNode:
		return []string{n.Value}
	case yaml.SequenceNode:
		var formats []string
		for _, item := range n.Content {
			if item.Kind != yaml.ScalarNode {
				d.add(item, diagnostics.SeverityError, diagnostics.CodeYAMLSchema,
					"format entries must be strings")
				continue
			}
			formats = append(formats, item.Value)
		}
		return formats
	case yaml.MappingNode:
		var formats []string
		for i := 0; i+1 < len(n.Content); i += 2 {
			formats = append(formats, n.Content[i].Value)
		}
		return formats
	default:
		d.add(n, diagnostics.SeverityError, diagnostics.CodeYAMLSchema,
			"format must be a name, a list, or a mapping")
		return nil
	}
}
