package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/raddict/internal/config"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose      bool
	Format       string   // "json" | "text"
	ConfigPath   string   // optional YAML config
	Dictionaries []string // -d flags, in order
	Database     string   // load journal path, overrides the config

	config *config.Config
	logger *slog.Logger
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the raddict CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "raddict",
		Short: "raddict - RADIUS dictionary loader",
		Long: `Load, inspect and test RADIUS attribute dictionaries.

Dictionaries use the radcli text format: ATTRIBUTE, VALUE, VENDOR,
BEGIN-VENDOR/END-VENDOR and $INCLUDE directives.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Validate format flag
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "path to YAML config file")
	cmd.PersistentFlags().StringArrayVarP(&opts.Dictionaries, "dictionary", "d", nil, "dictionary file to load (repeatable)")
	cmd.PersistentFlags().StringVar(&opts.Database, "db", "", "path to SQLite load journal")

	// Add subcommands
	cmd.AddCommand(NewValidateCommand(opts))
	cmd.AddCommand(NewDumpCommand(opts))
	cmd.AddCommand(NewLookupCommand(opts))
	cmd.AddCommand(NewHistoryCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

// prepare loads the config file once and builds the logger. Commands call
// it first so they also work when constructed without the root command.
func (o *RootOptions) prepare(errOut io.Writer) error {
	if o.config == nil && o.ConfigPath != "" {
		cfg, err := config.Load(o.ConfigPath)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to load config", err)
		}
		o.config = cfg
	}

	if o.logger == nil {
		level := slog.LevelWarn
		if o.config != nil {
			l, err := o.config.Level()
			if err != nil {
				return WrapExitError(ExitCommandError, "invalid config", err)
			}
			level = l
		}
		if o.Verbose {
			level = slog.LevelDebug
		}
		o.logger = slog.New(slog.NewTextHandler(errOut, &slog.HandlerOptions{Level: level}))
	}
	return nil
}

// Logger returns the logger built by prepare, or a discarding logger.
func (o *RootOptions) Logger() *slog.Logger {
	if o.logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return o.logger
}

// dictionaryPaths picks the dictionaries to load: positional args, then -d
// flags, then the config file.
func (o *RootOptions) dictionaryPaths(args []string) []string {
	switch {
	case len(args) > 0:
		return args
	case len(o.Dictionaries) > 0:
		return o.Dictionaries
	case o.config != nil:
		return o.config.Dictionaries
	}
	return nil
}

// journalPath returns --db, then the config journal. Empty means loads are
// not journaled.
func (o *RootOptions) journalPath() string {
	if o.Database != "" {
		return o.Database
	}
	if o.config != nil {
		return o.config.Journal
	}
	return ""
}
