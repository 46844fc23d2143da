package storage

import (
	"fmt"

	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

const schema = `CREATE TABLE IF NOT EXISTS kv (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
)`

// SQLiteStore keeps all keys in a single table of a SQLite database.
// The connection is not safe for concurrent use.
type SQLiteStore struct {
	conn *sqlite.Conn
}

func NewSQLiteStore(path string) (*SQLiteStore, error) {
	conn, err := sqlite.OpenConn(path, sqlite.OpenReadWrite, sqlite.OpenCreate)
	if err != nil {
		return nil, fmt.Errorf("open database %q: %w", path, err)
	}
	if err := sqlitex.ExecuteTransient(conn, schema, nil); err != nil {
		conn.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &SQLiteStore{conn: conn}, nil
}

func (s *SQLiteStore) Get(key string) ([]byte, error) {
	var (
		value []byte
		found bool
	)
	err := sqlitex.Execute(s.conn, `SELECT value FROM kv WHERE key = ?`,
		&sqlitex.ExecOptions{
			Args: []any{key},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				value = []byte(stmt.ColumnText(0))
				found = true
				return nil
			}})
	if err != nil {
		return nil, fmt.Errorf("select %q: %w", key, err)
	}
	if !found {
		return nil, ErrNotFound
	}
	return value, nil
}

func (s *SQLiteStore) Set(key string, value []byte) error {
	err := sqlitex.Execute(s.conn,
		`INSERT INTO kv (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		&sqlitex.ExecOptions{Args: []any{key, string(value)}})
	if err != nil {
		return fmt.Errorf("upsert %q: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.conn.Close()
}
