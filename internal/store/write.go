package store

import (
	"context"
	"fmt"
)

// WriteLoad appends a load record and its file list in one transaction.
// An empty rec.ID is filled from the store's IDGenerator. Returns the record
// as stored, with ID and Seq set.
func (s *Store) WriteLoad(ctx context.Context, rec LoadRecord) (LoadRecord, error) {
	if rec.ID == "" {
		rec.ID = s.ids.Generate()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return LoadRecord{}, fmt.Errorf("write load: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	result, err := tx.ExecContext(ctx, `
		INSERT INTO loads
		(id, dict_id, source, ok, error_code, error_message, attribute_count, value_count, vendor_count)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		rec.ID,
		rec.DictID,
		rec.Source,
		rec.OK,
		rec.ErrorCode,
		rec.ErrorMessage,
		rec.Stats.Attributes,
		rec.Stats.Values,
		rec.Stats.Vendors,
	)
	if err != nil {
		return LoadRecord{}, fmt.Errorf("write load: insert: %w", err)
	}

	rec.Seq, err = result.LastInsertId()
	if err != nil {
		return LoadRecord{}, fmt.Errorf("write load: last insert id: %w", err)
	}

	for i, path := range rec.Files {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO load_files (load_id, ordinal, path)
			VALUES (?, ?, ?)
		`, rec.ID, i, path)
		if err != nil {
			return LoadRecord{}, fmt.Errorf("write load: insert file %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return LoadRecord{}, fmt.Errorf("write load: commit: %w", err)
	}

	if rec.Files == nil {
		rec.Files = []string{}
	}
	return rec, nil
}
