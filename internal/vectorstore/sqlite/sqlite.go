package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"ragchat/internal/domain"
	"ragchat/internal/logger"
)

const fragmentsSchema = `
CREATE TABLE IF NOT EXISTS fragments (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    source TEXT NOT NULL,
    chunk TEXT NOT NULL,
    embedding TEXT NOT NULL
);
`

// Store is a durable append-only fragment table backed by a SQLite
// database file. Embeddings are stored in a canonical decimal text
// encoding (see encoding.go) so that a scan reproduces exactly the
// vectors that were written.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database at path and ensures the
// fragments table exists. Use ":memory:" for an ephemeral store.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open vector store %q: %w", path, err)
	}
	// modernc.org/sqlite serializes access per connection; a single
	// connection also serializes our appends.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(fragmentsSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create fragments table: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error { return s.db.Close() }

// Append durably writes one fragment and returns its assigned row ID.
// Each fragment is written in its own implicit transaction, so a failed
// append never shows up in a later scan.
func (s *Store) Append(ctx context.Context, source, text string, embedding []float64) (int64, error) {
	encoded, err := EncodeEmbedding(embedding)
	if err != nil {
		return 0, err
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO fragments(source, chunk, embedding) VALUES(?, ?, ?)`,
		source, text, encoded)
	if err != nil {
		return 0, fmt.Errorf("append fragment for %q: %w", source, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return id, nil
}

// ScanAll materializes every stored fragment in insertion order. Rows
// whose embedding column does not decode are skipped with a log line;
// they cannot take part in a similarity comparison.
func (s *Store) ScanAll(ctx context.Context) ([]domain.Fragment, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, source, chunk, embedding FROM fragments ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("scan fragments: %w", err)
	}
	defer rows.Close()

	var out []domain.Fragment
	for rows.Next() {
		var (
			f       domain.Fragment
			encoded string
		)
		if err := rows.Scan(&f.ID, &f.Source, &f.Text, &encoded); err != nil {
			return nil, err
		}
		vec, err := DecodeEmbedding(encoded)
		if err != nil {
			logger.Error("skipping fragment %d from %q: %v", f.ID, f.Source, err)
			continue
		}
		f.Embedding = vec
		out = append(out, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

var _ domain.VectorStore = (*Store)(nil)
