package storage

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"

	"github.com/KonyakB/GameOfLife/log"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS files (
	path       TEXT PRIMARY KEY,
	content    BYTEA NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

// PostgresFileStorage keeps blobs in a Postgres table keyed by path
type PostgresFileStorage struct {
	conn *pgx.Conn
}

// NewPostgresFileStorage connects to connStr and ensures the files table
// exists. The caller is responsible for calling Close.
func NewPostgresFileStorage(ctx context.Context, connStr string) (*PostgresFileStorage, error) {
	conn, err := pgx.Connect(ctx, connStr)
	if err != nil {
		return nil, errors.Wrap(err, "[NewPostgresFileStorage] unable to connect to database")
	}

	var username, database string
	err = conn.QueryRow(ctx, "SELECT current_user, current_database()").Scan(&username, &database)
	if err != nil {
		conn.Close(ctx)
		return nil, errors.Wrap(err, "[NewPostgresFileStorage] unable to query database")
	}
	log.Info("Connected to %s as %s", database, username)

	if _, err := conn.Exec(ctx, postgresSchema); err != nil {
		conn.Close(ctx)
		return nil, errors.Wrap(err, "[NewPostgresFileStorage] failed to create files table")
	}

	return &PostgresFileStorage{conn: conn}, nil
}

func (s *PostgresFileStorage) Close(ctx context.Context) error {
	return s.conn.Close(ctx)
}

func (s *PostgresFileStorage) Write(ctx context.Context, path string, content []byte) error {
	q := `
	INSERT INTO files (path, content, updated_at) VALUES ($1, $2, now())
	ON CONFLICT (path) DO UPDATE SET content = $2, updated_at = now();
	`
	if _, err := s.conn.Exec(ctx, q, path, content); err != nil {
		return errors.Wrapf(err, "[PostgresFileStorage.Write] failed to store %s", path)
	}
	return nil
}

func (s *PostgresFileStorage) Read(ctx context.Context, path string) ([]byte, error) {
	var content []byte
	err := s.conn.QueryRow(ctx, "SELECT content FROM files WHERE path = $1", path).Scan(&content)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errors.Wrapf(ErrNotFound, "[PostgresFileStorage.Read] %s", path)
		}
		return nil, errors.Wrapf(err, "[PostgresFileStorage.Read] failed to load %s", path)
	}
	return content, nil
}
