package metadata

import (
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/foliopress/folio/internal/diagnostics"
	"github.com/foliopress/folio/pkg/mapped"
)

// CellOptions holds the per-cell execution options folio understands.
// Boolean fields are nil when the option was not set, so callers can tell
// "unset" from "false". Unmodeled keys land in Extra.
type CellOptions struct {
	Label   string
	Echo    *bool
	Eval    *bool
	Include *bool
	Warning *bool
	Output  *bool
	Extra   map[string]any
}

var boolOptions = map[string]func(*CellOptions, *bool){
	"echo":    func(o *CellOptions, v *bool) { o.Echo = v },
	"eval":    func(o *CellOptions, v *bool) { o.Eval = v },
	"include": func(o *CellOptions, v *bool) { o.Include = v },
	"warning": func(o *CellOptions, v *bool) { o.Warning = v },
	"output":  func(o *CellOptions, v *bool) { o.Output = v },
}

// DecodeOptions parses a cell's option block, the YAML assembled from its
// leading comment lines. Problems are positioned in the original document,
// inside the comment lines the options came from.
func DecodeOptions(src mapped.Text, path string) (CellOptions, []diagnostics.Diagnostic) {
	var opts CellOptions
	d := newDecoder(src, path)

	root := d.parse()
	if root == nil {
		return opts, d.diags
	}
	if root.Kind != yaml.MappingNode {
		d.add(root, diagnostics.SeverityError, diagnostics.CodeYAMLSchema,
			"cell options must be a YAML mapping")
		return opts, d.diags
	}

	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], root.Content[i+1]

		if assign, ok := boolOptions[key.Value]; ok {
			if b, bok := d.scalarBool(key.Value, value); bok {
				assign(&opts, &b)
			}
			continue
		}

		switch key.Value {
		case "label":
			if s, ok := d.scalarString("label", value); ok {
				opts.Label = s
			}
		default:
			if opts.Extra == nil {
				opts.Extra = make(map[string]any)
			}
			var v any
			if err := value.Decode(&v); err != nil {
				d.add(value, diagnostics.SeverityError, diagnostics.CodeYAMLSchema,
					"cannot decode %s: %v", key.Value, err)
				continue
			}
			opts.Extra[key.Value] = v
		}
	}

	return opts, d.diags
}

// scalarBool accepts only true YAML booleans; "yes"/"on" spellings and
// strings are rejected so cells fail loudly instead of silently running.
func (d *decoder) scalarBool(key string, n *yaml.Node) (bool, bool) {
	if n.Kind == yaml.ScalarNode && n.Tag == "!!bool" {
		if b, err := strconv.ParseBool(n.Value); err == nil {
			return b, true
		}
	}
	d.add(n, diagnostics.SeverityError, diagnostics.CodeYAMLSchema,
		"option %q expects true or false, got %q", key, n.Value)
	return false, false
}
