package store

import (
	"context"
	"os"
)

// Stats holds database statistics.
type Stats struct {
	DBPath      string      `json:"db_path"`
	DBSizeBytes int64       `json:"db_size_bytes"`
	Slots       []SlotStats `json:"slots"`
}

// SlotStats holds per-slot details.
type SlotStats struct {
	Name      string `json:"name"`
	Bytes     int    `json:"bytes"`
	Version   int    `json:"version"`
	UpdatedAt string `json:"updated_at"`
}

// Stats returns database statistics.
func (s *SQLiteStore) Stats(ctx context.Context, dbPath string) (*Stats, error) {
	st := &Stats{DBPath: dbPath}

	// DB file size
	if info, err := os.Stat(dbPath); err == nil {
		st.DBSizeBytes = info.Size()
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT name, LENGTH(CAST(doc AS BLOB)), version, updated_at
		FROM slots ORDER BY name`)
	if err != nil {
		return st, err
	}
	defer rows.Close()

	for rows.Next() {
		var sl SlotStats
		if err := rows.Scan(&sl.Name, &sl.Bytes, &sl.Version, &sl.UpdatedAt); err != nil {
			return st, err
		}
		st.Slots = append(st.Slots, sl)
	}

	return st, rows.Err()
}
