package diagnostics

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foliopress/folio/pkg/textpos"
)

func TestSeverityString(t *testing.T) {
	tests := []struct {
		severity Severity
		want     string
	}{
		{SeverityInfo, "info"},
		{SeverityWarning, "warning"},
		{SeverityError, "error"},
		{SeverityFatal, "fatal"},
		{Severity(99), "unknown"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.severity.String())
	}
}

func TestDiagnosticError(t *testing.T) {
	tests := []struct {
		name string
		diag Diagnostic
		want string
	}{
		{
			name: "positioned",
			diag: Diagnostic{
				Path:       "doc.qmd",
				Pos:        textpos.Position{Line: 4, Column: 2},
				Positioned: true,
				Severity:   SeverityError,
				Message:    "object not found",
			},
			want: "doc.qmd:5:3: error: object not found",
		},
		{
			name: "unpositioned with path",
			diag: Diagnostic{
				Path:     "doc.qmd",
				Severity: SeverityWarning,
				Message:  "slow cell",
			},
			want: "doc.qmd: warning: slow cell",
		},
		{
			name: "bare",
			diag: Diagnostic{
				Severity: SeverityError,
				Message:  "engine exited",
			},
			want: "error: engine exited",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.diag.Error())
		})
	}
}

func TestCollectorConcurrentAdd(t *testing.T) {
	c := NewCollector()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				c.Add(Diagnostic{
					Path:     fmt.Sprintf("doc-%d.qmd", n),
					Severity: SeverityWarning,
					Message:  "w",
				})
			}
		}(i)
	}
	wg.Wait()

	assert.Len(t, c.All(), 200)
	assert.Len(t, c.ByPath("doc-3.qmd"), 20)
	assert.False(t, c.HasErrors())
}

func TestCollectorReturnsCopies(t *testing.T) {
	c := NewCollector()
	c.Add(Diagnostic{Message: "original"})

	got := c.All()
	got[0].Message = "mutated"

	assert.Equal(t, "original", c.All()[0].Message)
}

func TestCollectorSeverityQueries(t *testing.T) {
	c := NewCollector()

	_, found := c.MaxSeverity()
	assert.False(t, found)

	c.Add(Diagnostic{Severity: SeverityInfo})
	c.Add(Diagnostic{Severity: SeverityWarning})
	assert.False(t, c.HasErrors())

	c.Add(Diagnostic{Severity: SeverityError})
	assert.True(t, c.HasErrors())

	top, found := c.MaxSeverity()
	require.True(t, found)
	assert.Equal(t, SeverityError, top)

	c.Clear()
	assert.Empty(t, c.All())
	assert.False(t, c.HasErrors())
}
