package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foliopress/folio/internal/metadata"
	"github.com/foliopress/folio/internal/partition"
	"github.com/foliopress/folio/pkg/mapped"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		fm   metadata.FrontMatter
		want string
	}{
		{
			name: "no executable cells",
			doc:  "# Title\n\nProse only.\n",
			want: Markdown,
		},
		{
			name: "python cell",
			doc:  "```{python}\nx = 1\n```\n",
			want: Jupyter,
		},
		{
			name: "r cell",
			doc:  "```{r}\nplot(x)\n```\n",
			want: Knitr,
		},
		{
			name: "uppercase R fence",
			doc:  "```{R}\nplot(x)\n```\n",
			want: Knitr,
		},
		{
			name: "any r cell claims a mixed document",
			doc:  "```{python}\nx = 1\n```\n\n```{r}\nplot(x)\n```\n",
			want: Knitr,
		},
		{
			name: "plain fences do not count",
			doc:  "```python\nx = 1\n```\n",
			want: Markdown,
		},
		{
			name: "explicit engine wins over cells",
			doc:  "```{python}\nx = 1\n```\n",
			fm:   metadata.FrontMatter{Engine: Markdown},
			want: Markdown,
		},
		{
			name: "unknown explicit engine passes through",
			doc:  "```{python}\nx = 1\n```\n",
			fm:   metadata.FrontMatter{Engine: "julia"},
			want: "julia",
		},
		{
			name: "kernel declaration selects jupyter",
			doc:  "# Prose\n",
			fm:   metadata.FrontMatter{Kernel: "python3"},
			want: Jupyter,
		},
		{
			name: "explicit engine beats kernel",
			doc:  "# Prose\n",
			fm:   metadata.FrontMatter{Engine: Knitr, Kernel: "python3"},
			want: Knitr,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := partition.Partition(mapped.Identity(tt.doc))
			assert.Equal(t, tt.want, Detect(p, tt.fm))
		})
	}
}

func TestRunnerFuncAdapts(t *testing.T) {
	var got RunArgs
	r := RunnerFunc(func(_ context.Context, args RunArgs) (Result, error) {
		got = args
		return Result{Output: "done\n", ExitCode: 0}, nil
	})

	res, err := r.Run(context.Background(), RunArgs{
		Program: "python3",
		Args:    []string{"-"},
		Input:   "print('done')\n",
	})
	require.NoError(t, err)
	assert.Equal(t, "done\n", res.Output)
	assert.Equal(t, 0, res.ExitCode)
	assert.Equal(t, "python3", got.Program)
	assert.Equal(t, []string{"-"}, got.Args)
}

func TestRunnerFuncPropagatesError(t *testing.T) {
	want := errors.New("interpreter not found")
	r := RunnerFunc(func(context.Context, RunArgs) (Result, error) {
		return Result{}, want
	})

	_, err := r.Run(context.Background(), RunArgs{Program: "missing"})
	assert.ErrorIs(t, err, want)
}
