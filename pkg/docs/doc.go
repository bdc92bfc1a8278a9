// Package docs describes the folio module: a text provenance library for
// document toolchains.
//
// Folio tracks where every byte of a derived string came from. Documents
// are loaded once, then sliced, spliced, and rewritten on their way to
// render engines; when an engine reports a problem at line 12 of the text
// it was handed, folio resolves that position back to the file the author
// actually wrote.
//
// # Key Packages
//
//   - pkg/mapped: the Text value, its Map/MapClosest queries, and the
//     transform combinators (Slice, Lines, TrimSpace, NormalizeNewlines)
//   - pkg/textpos: line/column positions and the line-offset index
//   - internal/partition: splits a document into front matter, markdown,
//     and executable cells, all as mapped text
//   - internal/metadata: validates YAML front matter and cell options,
//     reporting problems at document positions
//   - internal/diagnostics: parses engine output and renders positioned
//     diagnostics with source excerpts
//   - internal/engine: picks the engine for a document and defines the
//     runner interface engine hosts implement
//
// # Quick Start
//
//	doc, err := document.Load("report.qmd")
//	if err != nil {
//		return err
//	}
//	parts := partition.Partition(doc.Text)
//	for _, cell := range parts.Cells {
//		if cell.Kind == partition.KindCode {
//			fmt.Println(cell.Language, cell.Source.Value())
//		}
//	}
//
// # Provenance Model
//
// A mapped.Text is immutable and remembers, per byte, either the source
// range it was copied from or that it was introduced as a literal. Chains
// of derivations compose: a cell body sliced from a document, wrapped with
// an injected prelude, still maps its surviving bytes to the document.
// Map answers exactly; MapClosest answers with the nearest preceding
// source byte, which is what diagnostics want when they point inside
// injected text.
//
// # Concurrency
//
// All core types are immutable after construction and safe for concurrent
// readers without synchronization. The one mutable type, the diagnostics
// Collector, carries its own lock.
package docs
