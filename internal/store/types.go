package store

import "github.com/roach88/raddict/internal/dictionary"

// LoadRecord is one journal entry: the outcome of a top-level load.
type LoadRecord struct {
	// ID is assigned by WriteLoad when empty.
	ID string `json:"id"`

	// Seq is the logical order assigned by the database. Ignored on write.
	Seq int64 `json:"seq"`

	// DictID is the ID of the dictionary handle the load ran against.
	DictID string `json:"dict_id"`

	// Source is the path passed to LoadFile, or "memory" for LoadBuffer.
	Source string `json:"source"`

	OK           bool   `json:"ok"`
	ErrorCode    string `json:"error_code,omitempty"`
	ErrorMessage string `json:"error_message,omitempty"`

	// Stats holds the handle's record counts after the load.
	Stats dictionary.Stats `json:"stats"`

	// Files lists every file the load opened, in open order.
	Files []string `json:"files"`
}

// NewLoadRecord builds a journal entry from a finished load.
// filesBefore is len(d.Files()) taken before the load started; only files
// opened after that point are recorded.
func NewLoadRecord(d *dictionary.Dictionary, source string, filesBefore int, loadErr error) LoadRecord {
	rec := LoadRecord{
		DictID: d.ID(),
		Source: source,
		OK:     loadErr == nil,
		Stats:  d.Stats(),
		Files:  []string{},
	}
	if files := d.Files(); len(files) > filesBefore {
		rec.Files = files[filesBefore:]
	}
	if loadErr != nil {
		rec.ErrorCode = string(dictionary.CodeOf(loadErr))
		rec.ErrorMessage = loadErr.Error()
	}
	return rec
}
