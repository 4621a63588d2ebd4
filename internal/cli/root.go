package cli

import (
	"log/slog"
	"slices"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	NoColor    bool
	Format     string // "json" | "text"
	ConfigFile string
	DB         string
	Indent     int

	// Config is resolved in PersistentPreRunE and is what commands read.
	Config *Config
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the querydsl CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "querydsl",
		Short: "querydsl - typed search query builder",
		Long: `Build search engine queries from YAML or CUE definitions and render
them as the nested JSON a search engine expects.

Conditions whose values are absent drop out of the rendered query, so a
definition can carry optional filters without templating.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := slog.LevelWarn
			if opts.Verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))

			if opts.NoColor {
				color.NoColor = true
			}

			cfg, err := LoadConfig(cmd, opts.ConfigFile)
			if err != nil {
				formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), ErrWriter: cmd.ErrOrStderr()}
				if !isValidFormat(opts.Format) {
					formatter.Format = DefaultFormat
				}
				return formatter.Fail(ExitCommandError, ErrCodeConfig, "invalid configuration", err)
			}
			opts.Config = cfg
			slog.Debug("configuration resolved", "db", cfg.DB, "indent", cfg.Indent, "format", cfg.Format)
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().BoolVar(&opts.NoColor, "no-color", false, "disable colored output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", DefaultFormat, "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.ConfigFile, "config", "", "config file (default ./querydsl.yaml)")
	cmd.PersistentFlags().StringVar(&opts.DB, "db", DefaultDB, "saved query catalog database")
	cmd.PersistentFlags().IntVar(&opts.Indent, "indent", 0, "indent rendered JSON by this many spaces (0 = compact)")

	// Add subcommands
	cmd.AddCommand(NewRenderCommand(opts))
	cmd.AddCommand(NewCheckCommand(opts))
	cmd.AddCommand(NewSaveCommand(opts))
	cmd.AddCommand(NewShowCommand(opts))
	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewDeleteCommand(opts))

	return cmd
}

// formatter builds the output formatter for a command from the resolved
// configuration.
func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    o.Config.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   o.Verbose,
	}
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	return slices.Contains(ValidFormats, format)
}
