package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid bool `json:"valid"`
	*LoadResult
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [dictionary...]",
		Short: "Load dictionaries and report record counts",
		Long: `Load one or more dictionaries into a single handle and report
how many attributes, values and vendors they define.

Dictionaries are taken from the arguments, then -d flags, then the
config file. $INCLUDE lines are followed relative to the including file.
The first malformed line stops the load.

Exit codes:
  0 - All dictionaries loaded
  1 - A dictionary failed to load
  2 - Command error (no dictionaries, bad config, journal failure)

Examples:
  raddict validate /usr/share/radcli/dictionary
  raddict validate -d dictionary -d dictionary.local --db journal.db
  raddict validate --config raddict.yaml --format json`,
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args, cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, args []string, cmd *cobra.Command) error {
	if err := opts.prepare(cmd.ErrOrStderr()); err != nil {
		return err
	}
	formatter := newFormatter(opts, cmd)

	_, result, err := loadDictionaries(cmd.Context(), opts, formatter, opts.dictionaryPaths(args))
	if err != nil {
		return err
	}

	formatter.VerboseLog("Loaded %d file(s) into %s", len(result.Files), result.DictID)

	if formatter.Format == "json" {
		return formatter.Success(ValidationResult{Valid: true, LoadResult: result})
	}

	w := formatter.Writer
	fmt.Fprintln(w, "✓ Dictionary valid")
	fmt.Fprintf(w, "  Files:      %d\n", len(result.Files))
	fmt.Fprintf(w, "  Attributes: %d\n", result.Stats.Attributes)
	fmt.Fprintf(w, "  Values:     %d\n", result.Stats.Values)
	fmt.Fprintf(w, "  Vendors:    %d\n", result.Stats.Vendors)
	if opts.Verbose {
		for _, f := range result.Files {
			fmt.Fprintf(w, "    %s\n", f)
		}
	}
	return nil
}
