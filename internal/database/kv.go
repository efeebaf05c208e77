package database

import (
	"context"
	"database/sql"
)

// KV is a whole-value-replace key-value store over the kv table. It backs
// the expense store's durable persistence: one key, one JSON document.
type KV struct {
	db *sql.DB
}

func NewKV(db *sql.DB) *KV { return &KV{db: db} }

// Get returns the value for key and whether the key exists.
func (s *KV) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// Set replaces the whole value stored under key.
func (s *KV) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
	INSERT INTO kv(key, value) VALUES(?, ?)
	ON CONFLICT(key) DO UPDATE SET value = excluded.value;
	`, key, value)
	return err
}
