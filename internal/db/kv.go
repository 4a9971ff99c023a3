package db

import (
	"database/sql"
	"errors"
	"time"
)

// Get returns the value stored under key, and false if absent
func (db *DB) Get(key string) (string, bool, error) {
	var value string
	err := db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// Set stores value under key, replacing any previous value
func (db *DB) Set(key, value string) error {
	return db.SetMany(map[string]string{key: value})
}

// SetMany stores all entries atomically
func (db *DB) SetMany(entries map[string]string) error {
	now := time.Now()
	return db.Transaction(func(tx *sql.Tx) error {
		for key, value := range entries {
			_, err := tx.Exec(`
				INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
				ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
			`, key, value, now)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete removes the given keys atomically; missing keys are ignored
func (db *DB) Delete(keys ...string) error {
	return db.Transaction(func(tx *sql.Tx) error {
		for _, key := range keys {
			if _, err := tx.Exec(`DELETE FROM kv WHERE key = ?`, key); err != nil {
				return err
			}
		}
		return nil
	})
}
