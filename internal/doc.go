// Package internal contains the toolchain packages built on folio's mapped
// text core.
//
// This package follows Go's internal package convention, making these
// packages unavailable for import by external modules while providing the
// document processing layers of the folio toolchain.
//
// # Package Organization
//
// The internal packages are organized by functional domain:
//
//   - glb: greatest-lower-bound search over sorted offset tables
//   - document: document loading and encoding normalization
//   - partition: front matter and executable cell extraction
//   - metadata: YAML front matter and cell option validation
//   - diagnostics: positioned diagnostics, engine output parsing, excerpts
//   - engine: engine detection and the runner collaborator surface
//   - logging: structured logging shared by the other packages
//
// # Inter-Package Communication
//
// Positions flow through mapped.Text values:
//
//   - Document decodes raw bytes and roots the provenance chain
//   - Partition derives front matter and cell bodies from the document
//   - Metadata reports YAML problems at document positions
//   - Diagnostics remaps engine output through whatever chain produced
//     the text the engine saw
//
// Every layer only ever slices or splices mapped text, so any position any
// layer reports can be resolved to the bytes the author wrote.
//
// # Testing Strategy
//
// Each package includes table-driven unit tests; the mapped core adds
// property tests, fuzz targets, and benchmarks for the hot lookups.
//
// For detailed documentation, see the individual package documentation.
package internal
