package bookmark

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

const schema = `CREATE TABLE IF NOT EXISTS bookmarks (
	hash TEXT PRIMARY KEY,
	room TEXT NOT NULL
) WITHOUT ROWID`

// DefaultPoolSize is the number of connections an SQLiteStore keeps open
const DefaultPoolSize = 4

// SQLiteStore persists bookmarks in a single table of an sqlite database
type SQLiteStore struct {
	pool   *sqlitex.Pool
	path   string
	logger *slog.Logger
}

// OpenSQLite opens or creates the database at path. The parent directory
// must exist.
func OpenSQLite(path string, logger *slog.Logger) (*SQLiteStore, error) {
	if path == "" {
		return nil, fmt.Errorf("bookmark: sqlite path is required")
	}

	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	pool, err := sqlitex.NewPool(path, sqlitex.PoolOptions{
		PoolSize:    DefaultPoolSize,
		PrepareConn: prepareConnection,
	})
	if err != nil {
		return nil, fmt.Errorf("bookmark: opening %s: %w", path, err)
	}

	logger.Info("bookmark store opened", "path", path)

	return &SQLiteStore{
		pool:   pool,
		path:   path,
		logger: logger,
	}, nil
}

func prepareConnection(conn *sqlite.Conn) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA temp_store=MEMORY",
	}

	for _, pragma := range pragmas {
		if err := sqlitex.ExecuteTransient(conn, pragma, nil); err != nil {
			return fmt.Errorf("bookmark: %s: %w", pragma, err)
		}
	}

	if err := sqlitex.ExecuteTransient(conn, schema, nil); err != nil {
		return fmt.Errorf("bookmark: creating schema: %w", err)
	}

	return nil
}

func (s *SQLiteStore) Put(ctx context.Context, b Bookmark) error {
	conn, err := s.pool.Take(ctx)
	if err != nil {
		return fmt.Errorf("bookmark: take: %w", err)
	}
	defer s.pool.Put(conn)

	return sqlitex.Execute(conn,
		`INSERT INTO bookmarks (hash, room) VALUES (?, ?) ON CONFLICT (hash) DO NOTHING`,
		&sqlitex.ExecOptions{Args: []any{b.Hash, b.Room}},
	)
}

func (s *SQLiteStore) Get(ctx context.Context, hash string) (Bookmark, error) {
	conn, err := s.pool.Take(ctx)
	if err != nil {
		return Bookmark{}, fmt.Errorf("bookmark: take: %w", err)
	}
	defer s.pool.Put(conn)

	found := false
	b := Bookmark{Hash: hash}

	err = sqlitex.Execute(conn,
		`SELECT room FROM bookmarks WHERE hash = ?`,
		&sqlitex.ExecOptions{
			Args: []any{hash},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				b.Room = stmt.ColumnText(0)
				found = true
				return nil
			},
		},
	)
	if err != nil {
		return Bookmark{}, fmt.Errorf("bookmark: looking up %v: %w", hash, err)
	}

	if !found {
		return Bookmark{}, fmt.Errorf("%w: %v", ErrNotFound, hash)
	}

	return b, nil
}

func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	conn, err := s.pool.Take(ctx)
	if err != nil {
		return 0, fmt.Errorf("bookmark: take: %w", err)
	}
	defer s.pool.Put(conn)

	count := 0
	err = sqlitex.Execute(conn,
		`SELECT count(*) FROM bookmarks`,
		&sqlitex.ExecOptions{
			ResultFunc: func(stmt *sqlite.Stmt) error {
				count = stmt.ColumnInt(0)
				return nil
			},
		},
	)

	return count, err
}

func (s *SQLiteStore) Close() error {
	if err := s.pool.Close(); err != nil {
		s.logger.Error("bookmark store close error", "path", s.path, "error", err)
		return fmt.Errorf("bookmark: closing %s: %w", s.path, err)
	}
	s.logger.Info("bookmark store closed", "path", s.path)
	return nil
}
