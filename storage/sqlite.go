package storage

import (
	"context"
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS files (
	path       TEXT PRIMARY KEY,
	content    BLOB NOT NULL,
	updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

// SQLiteFileStorage keeps blobs in a SQLite table keyed by path
type SQLiteFileStorage struct {
	db *sql.DB
}

// NewSQLiteFileStorage opens (or creates) the database at dsn and ensures
// the files table exists. The caller is responsible for calling Close.
func NewSQLiteFileStorage(ctx context.Context, dsn string) (*SQLiteFileStorage, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, errors.Wrapf(err, "[NewSQLiteFileStorage] failed to open database: %s", dsn)
	}

	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "[NewSQLiteFileStorage] failed to create files table")
	}

	return &SQLiteFileStorage{db: db}, nil
}

func (s *SQLiteFileStorage) Close() error {
	return s.db.Close()
}

func (s *SQLiteFileStorage) Write(ctx context.Context, path string, content []byte) error {
	q := `
	INSERT OR REPLACE INTO files (path, content, updated_at)
	VALUES (?, ?, CURRENT_TIMESTAMP);
	`
	if _, err := s.db.ExecContext(ctx, q, path, content); err != nil {
		return errors.Wrapf(err, "[SQLiteFileStorage.Write] failed to store %s", path)
	}
	return nil
}

func (s *SQLiteFileStorage) Read(ctx context.Context, path string) ([]byte, error) {
	q := `SELECT content FROM files WHERE path = ?;`

	var content []byte
	if err := s.db.QueryRowContext(ctx, q, path).Scan(&content); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errors.Wrapf(ErrNotFound, "[SQLiteFileStorage.Read] %s", path)
		}
		return nil, errors.Wrapf(err, "[SQLiteFileStorage.Read] failed to load %s", path)
	}
	return content, nil
}
