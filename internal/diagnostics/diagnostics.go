// Package diagnostics carries problem reports whose positions point into
// the author's document rather than into whatever derived text a tool was
// actually given. Renderer or engine output is parsed with OutputParser,
// remapped through the provenance of the text the tool saw, and collected
// for display with source excerpts.
package diagnostics

import (
	"fmt"
	"sync"

	"github.com/foliopress/folio/pkg/textpos"
)

// Severity grades a diagnostic.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
	SeverityFatal
)

// String returns the string representation of the severity.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityFatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// Diagnostic is one problem report. When Positioned is true, Pos locates
// the problem in the original document named by Path; otherwise the report
// could not be tied to a source position and only Message applies.
type Diagnostic struct {
	Path       string
	Pos        textpos.Position
	Positioned bool
	Severity   Severity
	Code       string
	Message    string
	// Raw preserves the tool output line the diagnostic was parsed from;
	// empty for diagnostics folio produced itself.
	Raw string
}

// Error implements the error interface with the conventional
// "path:line:col: severity: message" shape, one-based.
func (d Diagnostic) Error() string {
	if !d.Positioned {
		if d.Path == "" {
			return fmt.Sprintf("%s: %s", d.Severity, d.Message)
		}
		return fmt.Sprintf("%s: %s: %s", d.Path, d.Severity, d.Message)
	}
	return fmt.Sprintf("%s:%s: %s: %s", d.Path, d.Pos, d.Severity, d.Message)
}

// Collector accumulates diagnostics from concurrent producers.
type Collector struct {
	mu    sync.RWMutex
	diags []Diagnostic
}

// NewCollector creates an empty collector.
func NewCollector() *Collector {
	return &Collector{}
}

// Add appends d.
func (c *Collector) Add(d Diagnostic) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.diags = append(c.diags, d)
}

// AddAll appends every diagnostic in ds.
func (c *Collector) AddAll(ds []Diagnostic) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.diags = append(c.diags, ds...)
}

// All returns a copy of the collected diagnostics in insertion order.
func (c *Collector) All() []Diagnostic {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Diagnostic, len(c.diags))
	copy(out, c.diags)
	return out
}

// ByPath returns a copy of the diagnostics reported against path.
func (c *Collector) ByPath(path string) []Diagnostic {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var out []Diagnostic
	for _, d := range c.diags {
		if d.Path == path {
			out = append(out, d)
		}
	}
	return out
}

// HasErrors reports whether any diagnostic is SeverityError or worse.
func (c *Collector) HasErrors() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, d := range c.diags {
		if d.Severity >= SeverityError {
			return true
		}
	}
	return false
}

// MaxSeverity returns the highest severity collected, and false when the
// collector is empty.
func (c *Collector) MaxSeverity() (Severity, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if len(c.diags) == 0 {
		return SeverityInfo, false
	}
	top := SeverityInfo
	for _, d := range c.diags {
		if d.Severity > top {
			top = d.Severity
		}
	}
	return top, true
}

// Clear removes all collected diagnostics.
func (c *Collector) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.diags = nil
}
