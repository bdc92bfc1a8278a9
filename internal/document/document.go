// Package document loads source documents into the provenance-tracked form
// the rest of the toolchain consumes. Decoding honors UTF-8 and UTF-16 byte
// order marks, and line endings are normalized to "\n" through a mapped
// derivation, so every downstream position still resolves into the decoded
// document exactly as it sits on disk.
package document

import (
	"fmt"
	"os"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/foliopress/folio/pkg/mapped"
)

// Document is one loaded source file.
type Document struct {
	Path string
	// Root is the decoded text, BOM removed, line endings untouched. All
	// positions ultimately resolve into Root.
	Root string
	// Text is the normalized mapped view: Root with "\r\n" collapsed to
	// "\n" and Original() == Root.
	Text mapped.Text
}

// Decode interprets data as UTF-8, or as UTF-16 when a byte order mark says
// so, and builds the document's mapped view.
func Decode(data []byte, path string) (Document, error) {
	decoded, _, err := transform.Bytes(unicode.BOMOverride(unicode.UTF8.NewDecoder()), data)
	if err != nil {
		return Document{}, fmt.Errorf("decoding %s: %w", path, err)
	}
	root := string(decoded)
	return Document{
		Path: path,
		Root: root,
		Text: mapped.Identity(root).NormalizeNewlines(),
	}, nil
}

// Load reads and decodes the file at path.
func Load(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("reading %s: %w", path, err)
	}
	return Decode(data, path)
}
