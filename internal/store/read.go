package store

import (
	"context"
	"database/sql"
	"fmt"
)

const selectLoad = `
	SELECT seq, id, dict_id, source, ok, error_code, error_message,
	       attribute_count, value_count, vendor_count
	FROM loads
`

// ReadLoads returns the most recent loads, newest first.
// limit <= 0 returns every load.
//
// Returns an empty slice (not nil) if the journal is empty.
func (s *Store) ReadLoads(ctx context.Context, limit int) ([]LoadRecord, error) {
	query := selectLoad + ` ORDER BY seq DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	return s.readLoads(ctx, query, args...)
}

// ReadLoadsBySource returns loads of one source path, newest first.
func (s *Store) ReadLoadsBySource(ctx context.Context, source string, limit int) ([]LoadRecord, error) {
	query := selectLoad + ` WHERE source = ? ORDER BY seq DESC`
	args := []any{source}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	return s.readLoads(ctx, query, args...)
}

// ReadLoad retrieves a single load by ID.
// Returns sql.ErrNoRows if not found.
func (s *Store) ReadLoad(ctx context.Context, id string) (LoadRecord, error) {
	row := s.db.QueryRowContext(ctx, selectLoad+` WHERE id = ?`, id)

	rec, err := scanLoad(row)
	if err != nil {
		return LoadRecord{}, err
	}

	rec.Files, err = s.readFiles(ctx, rec.ID)
	if err != nil {
		return LoadRecord{}, err
	}
	return rec, nil
}

func (s *Store) readLoads(ctx context.Context, query string, args ...any) ([]LoadRecord, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query loads: %w", err)
	}
	defer rows.Close()

	loads := []LoadRecord{}
	for rows.Next() {
		rec, err := scanLoad(rows)
		if err != nil {
			return nil, err
		}
		loads = append(loads, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate loads: %w", err)
	}

	// Files are read after the cursor is closed; the pool holds one connection.
	rows.Close()
	for i := range loads {
		loads[i].Files, err = s.readFiles(ctx, loads[i].ID)
		if err != nil {
			return nil, err
		}
	}
	return loads, nil
}

func (s *Store) readFiles(ctx context.Context, loadID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT path FROM load_files
		WHERE load_id = ?
		ORDER BY ordinal ASC
	`, loadID)
	if err != nil {
		return nil, fmt.Errorf("query load files: %w", err)
	}
	defer rows.Close()

	files := []string{}
	for rows.Next() {
		var path string
		if err := rows.Scan(&path); err != nil {
			return nil, fmt.Errorf("scan load file: %w", err)
		}
		files = append(files, path)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate load files: %w", err)
	}
	return files, nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanLoad(row rowScanner) (LoadRecord, error) {
	var rec LoadRecord
	err := row.Scan(
		&rec.Seq,
		&rec.ID,
		&rec.DictID,
		&rec.Source,
		&rec.OK,
		&rec.ErrorCode,
		&rec.ErrorMessage,
		&rec.Stats.Attributes,
		&rec.Stats.Values,
		&rec.Stats.Vendors,
	)
	if err == sql.ErrNoRows {
		return LoadRecord{}, err
	}
	if err != nil {
		return LoadRecord{}, fmt.Errorf("scan load: %w", err)
	}
	return rec, nil
}
