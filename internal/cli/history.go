package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/raddict/internal/store"
)

// DefaultHistoryLimit caps history output unless --limit is given.
const DefaultHistoryLimit = 20

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Limit  int
	Source string // only loads of this path
}

// HistoryResult holds the journal entries shown, newest first.
type HistoryResult struct {
	Loads []store.LoadRecord `json:"loads"`
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List journaled dictionary loads",
		Long: `List entries from the load journal, newest first.

Every validate, dump or lookup run with --db (or a config journal)
records one entry per dictionary path: whether it loaded, the error
code if not, the record counts afterwards and every file it opened.

Examples:
  raddict history --db journal.db
  raddict history --db journal.db --source /usr/share/radcli/dictionary
  raddict history --config raddict.yaml --limit 5 --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(opts, cmd)
		},
	}

	cmd.Flags().IntVar(&opts.Limit, "limit", DefaultHistoryLimit, "maximum entries to show (0 for all)")
	cmd.Flags().StringVar(&opts.Source, "source", "", "only show loads of this dictionary path")

	return cmd
}

func runHistory(opts *HistoryOptions, cmd *cobra.Command) error {
	if err := opts.prepare(cmd.ErrOrStderr()); err != nil {
		return err
	}
	formatter := newFormatter(opts.RootOptions, cmd)

	path := opts.journalPath()
	if path == "" {
		msg := "no journal: pass --db or set journal in the config"
		_ = formatter.Error(ErrCodeJournal, msg, nil)
		return NewExitError(ExitCommandError, msg)
	}

	st, err := store.Open(path)
	if err != nil {
		_ = formatter.Error(ErrCodeJournal, fmt.Sprintf("failed to open journal: %v", err), nil)
		return WrapExitError(ExitCommandError, "failed to open journal", err)
	}
	defer st.Close()

	var loads []store.LoadRecord
	if opts.Source != "" {
		loads, err = st.ReadLoadsBySource(cmd.Context(), opts.Source, opts.Limit)
	} else {
		loads, err = st.ReadLoads(cmd.Context(), opts.Limit)
	}
	if err != nil {
		_ = formatter.Error(ErrCodeJournal, fmt.Sprintf("failed to read journal: %v", err), nil)
		return WrapExitError(ExitCommandError, "failed to read journal", err)
	}

	if formatter.Format == "json" {
		if loads == nil {
			loads = []store.LoadRecord{}
		}
		return formatter.Success(HistoryResult{Loads: loads})
	}

	return outputHistoryText(formatter, loads)
}

func outputHistoryText(formatter *OutputFormatter, loads []store.LoadRecord) error {
	w := formatter.Writer

	if len(loads) == 0 {
		fmt.Fprintln(w, "No loads recorded.")
		return nil
	}

	for _, l := range loads {
		status := "ok"
		if !l.OK {
			status = l.ErrorCode
		}
		fmt.Fprintf(w, "[%d] %s %s %s\n", l.Seq, l.ID, status, l.Source)
		fmt.Fprintf(w, "     attributes=%d values=%d vendors=%d\n",
			l.Stats.Attributes, l.Stats.Values, l.Stats.Vendors)
		if formatter.Verbose {
			if l.ErrorMessage != "" {
				fmt.Fprintf(w, "     error: %s\n", l.ErrorMessage)
			}
			for _, f := range l.Files {
				fmt.Fprintf(w, "     file: %s\n", f)
			}
		}
	}
	return nil
}
