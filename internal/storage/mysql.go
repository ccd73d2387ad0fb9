package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// MySQLStore persists blobs in a single key-value table.  It is the durable
// backend for deployments that already run MySQL; the schema is created on
// open.
type MySQLStore struct {
	db *sql.DB
}

// OpenMySQL connects to MySQL, verifies the connection and ensures the kv
// table exists.
func OpenMySQL(user, pass, host, port, name string) (*MySQLStore, error) {
	auth := user
	if pass != "" {
		auth = fmt.Sprintf("%s:%s", user, pass)
	}
	// parseTime=true -> DATETIME -> time.Time | loc=UTC keeps times consistent
	dsn := fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
		auth, host, port, name)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}

	const schema = `CREATE TABLE IF NOT EXISTS kv_blobs (
		k VARCHAR(191) NOT NULL PRIMARY KEY,
		v LONGBLOB NOT NULL,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
	)`
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return nil, fmt.Errorf("create kv_blobs: %w", err)
	}
	return &MySQLStore{db: db}, nil
}

func (m *MySQLStore) Get(ctx context.Context, key string) ([]byte, error) {
	var v []byte
	err := m.db.QueryRowContext(ctx, `SELECT v FROM kv_blobs WHERE k = ?`, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("mysql get %s: %w", key, err)
	}
	return v, nil
}

func (m *MySQLStore) Set(ctx context.Context, key string, value []byte) error {
	const q = `INSERT INTO kv_blobs (k, v) VALUES (?, ?) ON DUPLICATE KEY UPDATE v = VALUES(v)`
	if _, err := m.db.ExecContext(ctx, q, key, value); err != nil {
		return fmt.Errorf("mysql set %s: %w", key, err)
	}
	return nil
}

func (m *MySQLStore) Delete(ctx context.Context, key string) error {
	if _, err := m.db.ExecContext(ctx, `DELETE FROM kv_blobs WHERE k = ?`, key); err != nil {
		return fmt.Errorf("mysql delete %s: %w", key, err)
	}
	return nil
}

// Close releases the connection pool.
func (m *MySQLStore) Close() error { return m.db.Close() }
