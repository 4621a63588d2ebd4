package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/querydsl/internal/definition"
	"github.com/roach88/querydsl/internal/wire"
)

// RenderResult is the JSON payload of the render command.
type RenderResult struct {
	Name        string          `json:"name"`
	Body        json.RawMessage `json:"body"`
	Fingerprint string          `json:"fingerprint"`
	Skipped     bool            `json:"skipped"`
}

// NewRenderCommand creates the render command.
func NewRenderCommand(rootOpts *RootOptions) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "render <file>",
		Short: "Render a query definition as search request JSON",
		Long: `Render a YAML, JSON or CUE query definition as the request body a
search engine expects.

Examples:
  querydsl render recent_posts.yaml
  querydsl render recent_posts.cue --indent 2
  querydsl render recent_posts.yaml -o body.json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(rootOpts, args[0], output, cmd)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write the rendered body to a file instead of stdout")

	return cmd
}

func runRender(opts *RootOptions, path, output string, cmd *cobra.Command) error {
	f := opts.formatter(cmd)

	doc, compact, err := renderFile(path)
	if err != nil {
		return failLoad(f, path, err)
	}
	body := compact
	if opts.Config.Indent > 0 {
		if body, err = wire.MarshalIndent(doc.Request.WireValue(), opts.Config.Indent); err != nil {
			return f.Fail(ExitCommandError, ErrCodeRender, fmt.Sprintf("failed to render %s", path), err)
		}
	}

	if output != "" {
		if err := os.WriteFile(output, append(body, '\n'), 0644); err != nil {
			return f.Fail(ExitCommandError, ErrCodeWriteFailed, fmt.Sprintf("failed to write %s", output), err)
		}
	}

	if f.IsJSON() {
		return f.Success(RenderResult{
			Name:        doc.Name,
			Body:        body,
			Fingerprint: wire.Fingerprint(wire.DomainRequest, compact),
			Skipped:     doc.Request.ShouldSkip(),
		})
	}
	if output != "" {
		fmt.Fprintf(f.Writer, "wrote %s (%s)\n", output, doc.Name)
		return nil
	}
	fmt.Fprintln(f.Writer, string(body))
	return nil
}

// renderFile loads a definition and renders its request compactly. The
// compact bytes are what fingerprints and the catalog use.
func renderFile(path string) (*definition.Document, []byte, error) {
	doc, err := definition.Load(path)
	if err != nil {
		return nil, nil, err
	}
	body, err := doc.Request.MarshalJSON()
	if err != nil {
		return nil, nil, fmt.Errorf("render %s: %w", doc.Name, err)
	}
	return doc, body, nil
}

// failLoad maps a definition loading error onto an error code.
func failLoad(f *OutputFormatter, path string, err error) error {
	if _, statErr := os.Stat(path); os.IsNotExist(statErr) {
		return f.Fail(ExitCommandError, ErrCodeNotFound, fmt.Sprintf("file not found: %s", path), err)
	}
	var defErr *definition.Error
	if errors.As(err, &defErr) {
		return f.Fail(ExitCommandError, ErrCodeDefinition, fmt.Sprintf("invalid definition %s", path), err)
	}
	return f.Fail(ExitCommandError, ErrCodeRender, fmt.Sprintf("failed to render %s", path), err)
}
