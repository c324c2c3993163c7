package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/raddict/internal/dictionary"
)

// DumpResult is the JSON form of a loaded dictionary.
type DumpResult struct {
	Vendors    []dictionary.Vendor    `json:"vendors"`
	Attributes []dictionary.Attribute `json:"attributes"`
	Values     []dictionary.Value     `json:"values"`
}

// NewDumpCommand creates the dump command.
func NewDumpCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump [dictionary...]",
		Short: "Print the merged dictionary",
		Long: `Load dictionaries and print every record they define.

Text output is a single flattened dictionary (includes expanded,
vendor blocks rewritten as vendor= options) that loads back to the
same lookups. JSON output lists vendors, attributes and values.

Examples:
  raddict dump /usr/share/radcli/dictionary > merged.dict
  raddict dump --config raddict.yaml --format json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(rootOpts, args, cmd)
		},
	}

	return cmd
}

func runDump(opts *RootOptions, args []string, cmd *cobra.Command) error {
	if err := opts.prepare(cmd.ErrOrStderr()); err != nil {
		return err
	}
	formatter := newFormatter(opts, cmd)

	d, _, err := loadDictionaries(cmd.Context(), opts, formatter, opts.dictionaryPaths(args))
	if err != nil {
		return err
	}

	if formatter.Format == "json" {
		return formatter.Success(DumpResult{
			Vendors:    d.Vendors(),
			Attributes: d.Attributes(),
			Values:     d.Values(),
		})
	}

	return dictionary.Format(formatter.Writer, d)
}
