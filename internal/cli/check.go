package cli

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/roach88/querydsl/internal/harness"
)

// CheckOptions holds flags for the check command.
type CheckOptions struct {
	*RootOptions
	Update bool   // regenerate golden files
	Filter string // scenario name filter (glob pattern)
}

// ScenarioResult holds the result of a single scenario execution.
type ScenarioResult struct {
	Name     string             `json:"name"`
	Pass     bool               `json:"pass"`
	Rendered string             `json:"rendered,omitempty"`
	Errors   []string           `json:"errors,omitempty"`
	Diff     []harness.DiffLine `json:"diff,omitempty"`
}

// CheckResult holds the overall check result.
type CheckResult struct {
	Scenarios []ScenarioResult `json:"scenarios"`
	Passed    int              `json:"passed"`
	Failed    int              `json:"failed"`
	Total     int              `json:"total"`
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CheckOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "check <scenario-file-or-dir>",
		Short: "Run conformance scenarios",
		Long: `Run conformance scenarios: build each definition, render it and compare
the result with the scenario's expect JSON. When a golden file exists in
<dir>/golden/<name>.golden the rendered bytes must also match it exactly.

Exit codes:
  0 - All scenarios passed
  1 - One or more scenarios failed
  2 - Command error (invalid paths, etc.)

Examples:
  querydsl check ./scenarios
  querydsl check ./scenarios --filter "term_*"
  querydsl check ./scenarios --update
  querydsl check ./scenarios/term.yaml --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Update, "update", false, "regenerate golden files")
	cmd.Flags().StringVar(&opts.Filter, "filter", "", "filter scenarios by name glob pattern")

	return cmd
}

func runCheck(opts *CheckOptions, path string, cmd *cobra.Command) error {
	f := opts.formatter(cmd)

	info, err := os.Stat(path)
	if err != nil {
		return f.Fail(ExitCommandError, ErrCodeNotFound, fmt.Sprintf("scenario path not found: %s", path), err)
	}

	var scenarios []*harness.Scenario
	goldenDir := filepath.Join(path, "golden")
	if info.IsDir() {
		scenarios, err = harness.LoadScenarios(path)
	} else {
		goldenDir = filepath.Join(filepath.Dir(path), "golden")
		var s *harness.Scenario
		s, err = harness.LoadScenario(path)
		scenarios = []*harness.Scenario{s}
	}
	if err != nil {
		return f.Fail(ExitCommandError, ErrCodeDefinition, "failed to load scenarios", err)
	}

	scenarios, err = filterScenarios(scenarios, opts.Filter)
	if err != nil {
		return f.Fail(ExitCommandError, ErrCodeGeneric, "invalid filter pattern", err)
	}
	if len(scenarios) == 0 {
		return f.Fail(ExitCommandError, ErrCodeNoScenarios, fmt.Sprintf("no scenarios found in %s", path), nil)
	}

	result := CheckResult{
		Scenarios: make([]ScenarioResult, 0, len(scenarios)),
		Total:     len(scenarios),
	}
	for _, s := range scenarios {
		sr := checkScenario(s, goldenDir, opts.Update)
		result.Scenarios = append(result.Scenarios, sr)
		if sr.Pass {
			result.Passed++
		} else {
			result.Failed++
		}
	}

	if f.IsJSON() {
		if err := f.Success(result); err != nil {
			return err
		}
	} else {
		writeCheckText(f.Writer, result)
	}

	if result.Failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d of %d scenarios failed", result.Failed, result.Total))
	}
	return nil
}

func filterScenarios(scenarios []*harness.Scenario, pattern string) ([]*harness.Scenario, error) {
	if pattern == "" {
		return scenarios, nil
	}
	var out []*harness.Scenario
	for _, s := range scenarios {
		matched, err := filepath.Match(pattern, s.Name)
		if err != nil {
			return nil, err
		}
		if matched {
			out = append(out, s)
		}
	}
	return out, nil
}

// checkScenario runs one scenario and compares against its golden file
// when one exists.
func checkScenario(s *harness.Scenario, goldenDir string, update bool) ScenarioResult {
	result, err := harness.Run(s)
	if err != nil {
		return ScenarioResult{
			Name:   s.Name,
			Errors: []string{fmt.Sprintf("execution failed: %v", err)},
		}
	}

	sr := ScenarioResult{
		Name:     s.Name,
		Pass:     result.Pass,
		Rendered: result.Rendered,
		Errors:   result.Errors,
		Diff:     result.Diff,
	}

	goldenPath := filepath.Join(goldenDir, s.Name+".golden")
	if update {
		if err := os.MkdirAll(goldenDir, 0755); err != nil {
			sr.Pass = false
			sr.Errors = append(sr.Errors, fmt.Sprintf("failed to create golden directory: %v", err))
			return sr
		}
		if err := os.WriteFile(goldenPath, []byte(result.Rendered), 0644); err != nil {
			sr.Pass = false
			sr.Errors = append(sr.Errors, fmt.Sprintf("failed to update golden file: %v", err))
		}
		return sr
	}

	golden, err := os.ReadFile(goldenPath)
	if os.IsNotExist(err) {
		return sr
	}
	if err != nil {
		sr.Pass = false
		sr.Errors = append(sr.Errors, fmt.Sprintf("failed to read golden file: %v", err))
		return sr
	}
	if !bytes.Equal(bytes.TrimRight(golden, "\n"), []byte(result.Rendered)) {
		sr.Pass = false
		sr.Errors = append(sr.Errors, "rendered bytes do not match golden file (run with --update to regenerate)")
	}
	return sr
}

func writeCheckText(w io.Writer, result CheckResult) {
	red := color.New(color.FgRed)
	green := color.New(color.FgGreen)

	for _, s := range result.Scenarios {
		if s.Pass {
			green.Fprintf(w, "✓ %s\n", s.Name)
			continue
		}
		red.Fprintf(w, "✗ %s\n", s.Name)
		for _, e := range s.Errors {
			fmt.Fprintf(w, "  %s\n", e)
		}
		for _, line := range s.Diff {
			switch line.Op {
			case harness.DiffDelete:
				red.Fprintf(w, "  %s %s\n", line.Prefix(), line.Text)
			case harness.DiffInsert:
				green.Fprintf(w, "  %s %s\n", line.Prefix(), line.Text)
			default:
				fmt.Fprintf(w, "  %s %s\n", line.Prefix(), line.Text)
			}
		}
	}
	fmt.Fprintf(w, "\n%d passed, %d failed, %d total\n", result.Passed, result.Failed, result.Total)
}
