package cli

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/raddict/internal/store"
)

func TestValidateSampleDictionary(t *testing.T) {
	rootOpts := &RootOptions{Format: "text"}
	out, _, err := execute(t, NewValidateCommand(rootOpts), sampleDictionary)
	require.NoError(t, err)

	assert.Contains(t, out, "✓ Dictionary valid")
	assert.Contains(t, out, "Files:      2")
	assert.Contains(t, out, "Attributes: 11")
	assert.Contains(t, out, "Values:     2")
	assert.Contains(t, out, "Vendors:    1")
}

func TestValidateSampleDictionaryJSON(t *testing.T) {
	rootOpts := &RootOptions{Format: "json"}
	out, _, err := execute(t, NewValidateCommand(rootOpts), sampleDictionary)
	require.NoError(t, err)

	var resp struct {
		Status string           `json:"status"`
		Data   ValidationResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.True(t, resp.Data.Valid)
	require.NotNil(t, resp.Data.LoadResult)
	assert.Equal(t, 11, resp.Data.Stats.Attributes)
	require.Len(t, resp.Data.Files, 2)
	assert.Equal(t, "dictionary.mikrotik", filepath.Base(resp.Data.Files[1]))
	assert.Empty(t, resp.Data.Journal)
}

func TestValidateMultiplePathsShareHandle(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "vendors")
	second := filepath.Join(dir, "attrs")
	require.NoError(t, os.WriteFile(first, []byte("VENDOR Acme 9\n"), 0644))
	require.NoError(t, os.WriteFile(second, []byte("ATTRIBUTE Acme-Thing 1 integer Acme\n"), 0644))

	rootOpts := &RootOptions{Format: "text"}
	out, _, err := execute(t, NewValidateCommand(rootOpts), first, second)
	require.NoError(t, err)
	assert.Contains(t, out, "Attributes: 1")
	assert.Contains(t, out, "Vendors:    1")
}

func TestValidateBrokenDictionary(t *testing.T) {
	rootOpts := &RootOptions{Format: "text"}
	out, stderr, err := execute(t, NewValidateCommand(rootOpts), brokenDictionary)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	assert.Contains(t, out, "✗ Load failed")
	assert.Contains(t, out, "line 2")
	assert.Contains(t, out, "INVALID_TYPE: invalid type bogustype")

	// The dictionary logs the failure once at error level
	assert.Contains(t, stderr, "level=ERROR")
	assert.Contains(t, stderr, "code=INVALID_TYPE")
}

func TestValidateBrokenDictionaryJSON(t *testing.T) {
	rootOpts := &RootOptions{Format: "json"}
	out, _, err := execute(t, NewValidateCommand(rootOpts), brokenDictionary)
	require.Error(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "INVALID_TYPE", resp.Error.Code)

	details, ok := resp.Error.Details.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(2), details["line"])
}

func TestValidateMissingFile(t *testing.T) {
	rootOpts := &RootOptions{Format: "text"}
	out, _, err := execute(t, NewValidateCommand(rootOpts), "/nonexistent/dictionary")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "IO_FAILURE")
}

func TestValidateNoDictionary(t *testing.T) {
	rootOpts := &RootOptions{Format: "text"}
	out, _, err := execute(t, NewValidateCommand(rootOpts))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "E003")
}

func TestValidateFromConfig(t *testing.T) {
	dir := t.TempDir()
	dictPath := filepath.Join(dir, "dictionary")
	require.NoError(t, os.WriteFile(dictPath, []byte("ATTRIBUTE User-Name 1 string\n"), 0644))
	cfgPath := filepath.Join(dir, "raddict.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("dictionaries: [dictionary]\njournal: journal.db\n"), 0644))

	rootOpts := &RootOptions{Format: "text", ConfigPath: cfgPath}
	out, _, err := execute(t, NewValidateCommand(rootOpts))
	require.NoError(t, err)
	assert.Contains(t, out, "Attributes: 1")

	// The config journal received one entry
	st, err := store.Open(filepath.Join(dir, "journal.db"))
	require.NoError(t, err)
	defer st.Close()

	loads, err := st.ReadLoads(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, loads, 1)
	assert.Equal(t, dictPath, loads[0].Source)
	assert.True(t, loads[0].OK)
}

func TestValidateJournalsFailures(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "journal.db")

	rootOpts := &RootOptions{Format: "json", Database: dbPath}
	_, _, err := execute(t, NewValidateCommand(rootOpts), sampleDictionary, brokenDictionary)
	require.Error(t, err)

	st, err := store.Open(dbPath)
	require.NoError(t, err)
	defer st.Close()

	loads, err := st.ReadLoads(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, loads, 2)

	// Newest first
	assert.Equal(t, brokenDictionary, loads[0].Source)
	assert.False(t, loads[0].OK)
	assert.Equal(t, "INVALID_TYPE", loads[0].ErrorCode)
	assert.Equal(t, 12, loads[0].Stats.Attributes)

	assert.Equal(t, sampleDictionary, loads[1].Source)
	assert.True(t, loads[1].OK)
	assert.Len(t, loads[1].Files, 2)
}
