package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/raddict/internal/dictionary"
	"github.com/roach88/raddict/internal/store"
)

// LoadResult describes the dictionary handle built for one command.
type LoadResult struct {
	DictID string           `json:"dict_id"`
	Files  []string         `json:"files"`
	Stats  dictionary.Stats `json:"stats"`

	// Journal holds the IDs of the journal entries written, one per path.
	Journal []string `json:"journal,omitempty"`
}

// LoadFailure is the error detail reported when a dictionary does not load.
type LoadFailure struct {
	Source string `json:"source,omitempty"`
	Line   int    `json:"line,omitempty"`
}

// errLoadFailed marks a failure that has already been reported.
var errLoadFailed = errors.New("dictionary load failed")

// newFormatter builds the output formatter for cmd.
func newFormatter(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   opts.Verbose,
	}
}

// loadDictionaries loads every path, in order, into one new handle. Each
// path is one top-level LoadFile and, when a journal is configured, one
// journal entry. The first failing path stops the load; the handle keeps
// whatever was read before it.
//
// Failures are reported through formatter before returning.
func loadDictionaries(ctx context.Context, opts *RootOptions, formatter *OutputFormatter, paths []string) (*dictionary.Dictionary, *LoadResult, error) {
	if len(paths) == 0 {
		msg := "no dictionary given: pass paths, -d or a config with dictionaries"
		_ = formatter.Error(ErrCodeNoDictionary, msg, nil)
		return nil, nil, NewExitError(ExitCommandError, msg)
	}

	d := dictionary.New(dictionary.WithLogger(opts.Logger()))
	result := &LoadResult{DictID: d.ID()}

	var st *store.Store
	if path := opts.journalPath(); path != "" {
		var err error
		st, err = store.Open(path)
		if err != nil {
			_ = formatter.Error(ErrCodeJournal, fmt.Sprintf("failed to open journal: %v", err), nil)
			return nil, nil, WrapExitError(ExitCommandError, "failed to open journal", err)
		}
		defer st.Close()
	}

	for _, path := range paths {
		formatter.VerboseLog("Loading %s", path)

		before := len(d.Files())
		loadErr := d.LoadFile(path)

		if st != nil {
			rec, err := st.WriteLoad(ctx, store.NewLoadRecord(d, path, before, loadErr))
			if err != nil {
				_ = formatter.Error(ErrCodeJournal, fmt.Sprintf("failed to journal load: %v", err), nil)
				return nil, nil, WrapExitError(ExitCommandError, "failed to journal load", err)
			}
			result.Journal = append(result.Journal, rec.ID)
		}

		if loadErr != nil {
			reportLoadError(formatter, loadErr)
			return d, nil, WrapExitError(ExitFailure, path, errLoadFailed)
		}
	}

	result.Files = d.Files()
	result.Stats = d.Stats()
	return d, result, nil
}

// reportLoadError writes a dictionary error with its code and location.
func reportLoadError(formatter *OutputFormatter, err error) {
	code := string(dictionary.CodeOf(err))
	if code == "" {
		code = ErrCodeGeneric
	}

	var details *LoadFailure
	var de *dictionary.Error
	if errors.As(err, &de) && de.Source != "" {
		details = &LoadFailure{Source: de.Source, Line: de.Line}
	}

	if formatter.Format == "json" {
		_ = formatter.Error(code, err.Error(), details)
		return
	}

	fmt.Fprintln(formatter.Writer, "✗ Load failed")
	fmt.Fprintln(formatter.Writer)
	if details != nil {
		if details.Line > 0 {
			fmt.Fprintf(formatter.Writer, "%s line %d\n", details.Source, details.Line)
		} else {
			fmt.Fprintln(formatter.Writer, details.Source)
		}
	}
	fmt.Fprintf(formatter.Writer, "  %s\n", err)
}
