package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/roach88/querydsl/internal/store"
)

// SaveResult is the JSON payload of the save command.
type SaveResult struct {
	Query      store.SavedQuery `json:"query"`
	Outcome    string           `json:"outcome"`
	Duplicates []string         `json:"duplicates,omitempty"`
}

// NewSaveCommand creates the save command.
func NewSaveCommand(rootOpts *RootOptions) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "save <file>",
		Short: "Render a definition and store it in the catalog",
		Long: `Render a query definition and store the compact body in the catalog
under its name. Saving unchanged output keeps the revision; changed output
bumps it.

Examples:
  querydsl save recent_posts.yaml
  querydsl save recent_posts.yaml --name posts --db catalog.db`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSave(rootOpts, args[0], name, cmd)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "catalog name (defaults to the document name)")

	return cmd
}

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "show <name>",
		Short:         "Print a saved query",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(rootOpts, args[0], cmd)
		},
	}
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "list",
		Short:         "List saved queries",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(rootOpts, cmd)
		},
	}
}

// NewDeleteCommand creates the delete command.
func NewDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "delete <name>",
		Short:         "Delete a saved query",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDelete(rootOpts, args[0], cmd)
		},
	}
}

// openCatalog opens the configured catalog, reporting failures through f.
func openCatalog(opts *RootOptions, f *OutputFormatter) (*store.Store, error) {
	st, err := store.Open(opts.Config.DB)
	if err != nil {
		return nil, f.Fail(ExitCommandError, ErrCodeCatalog, fmt.Sprintf("failed to open catalog %s", opts.Config.DB), err)
	}
	return st, nil
}

// failCatalog maps a catalog error onto an error code.
func failCatalog(f *OutputFormatter, name string, err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return f.Fail(ExitCommandError, ErrCodeQueryNotFound, fmt.Sprintf("no saved query named %q", name), err)
	}
	return f.Fail(ExitCommandError, ErrCodeCatalog, "catalog operation failed", err)
}

func runSave(opts *RootOptions, path, name string, cmd *cobra.Command) error {
	f := opts.formatter(cmd)

	doc, body, err := renderFile(path)
	if err != nil {
		return failLoad(f, path, err)
	}
	if name == "" {
		name = doc.Name
	}

	st, err := openCatalog(opts, f)
	if err != nil {
		return err
	}
	defer st.Close()

	ctx := cmd.Context()
	saved, outcome, err := st.Save(ctx, name, body)
	if err != nil {
		return failCatalog(f, name, err)
	}

	same, err := st.FindByFingerprint(ctx, saved.Fingerprint)
	if err != nil {
		return failCatalog(f, name, err)
	}
	var duplicates []string
	for _, q := range same {
		if q.Name != saved.Name {
			duplicates = append(duplicates, q.Name)
		}
	}
	if len(duplicates) > 0 {
		slog.Warn("saved query renders the same body as other entries", "name", saved.Name, "duplicates", duplicates)
	}

	if f.IsJSON() {
		return f.Success(SaveResult{Query: saved, Outcome: outcome.String(), Duplicates: duplicates})
	}
	fmt.Fprintf(f.Writer, "%s %s (revision %d)\n", outcome, saved.Name, saved.Revision)
	return nil
}

func runShow(opts *RootOptions, name string, cmd *cobra.Command) error {
	f := opts.formatter(cmd)

	st, err := openCatalog(opts, f)
	if err != nil {
		return err
	}
	defer st.Close()

	saved, err := st.Get(cmd.Context(), name)
	if err != nil {
		return failCatalog(f, name, err)
	}

	if f.IsJSON() {
		return f.Success(saved)
	}

	body := saved.Body
	if indent := opts.Config.Indent; indent > 0 {
		// json.Indent only touches whitespace, so number spelling survives.
		var buf bytes.Buffer
		if err := json.Indent(&buf, []byte(body), "", strings.Repeat(" ", indent)); err != nil {
			return f.Fail(ExitCommandError, ErrCodeRender, fmt.Sprintf("stored body for %q is not valid JSON", name), err)
		}
		body = buf.String()
	}
	fmt.Fprintln(f.Writer, body)
	return nil
}

func runList(opts *RootOptions, cmd *cobra.Command) error {
	f := opts.formatter(cmd)

	st, err := openCatalog(opts, f)
	if err != nil {
		return err
	}
	defer st.Close()

	queries, err := st.List(cmd.Context())
	if err != nil {
		return failCatalog(f, "", err)
	}

	if f.IsJSON() {
		return f.Success(queries)
	}
	if len(queries) == 0 {
		fmt.Fprintln(f.Writer, "No saved queries.")
		return nil
	}

	tw := tabwriter.NewWriter(f.Writer, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tREVISION\tFINGERPRINT")
	for _, q := range queries {
		fmt.Fprintf(tw, "%s\t%d\t%s\n", q.Name, q.Revision, shortFingerprint(q.Fingerprint))
	}
	return tw.Flush()
}

func runDelete(opts *RootOptions, name string, cmd *cobra.Command) error {
	f := opts.formatter(cmd)

	st, err := openCatalog(opts, f)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.Delete(cmd.Context(), name); err != nil {
		return failCatalog(f, name, err)
	}

	if f.IsJSON() {
		return f.Success(map[string]string{"deleted": name})
	}
	fmt.Fprintf(f.Writer, "deleted %s\n", name)
	return nil
}

func shortFingerprint(fp string) string {
	if len(fp) > 12 {
		return fp[:12]
	}
	return fp
}
