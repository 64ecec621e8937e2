package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hupe1980/plwah/blobstore"
)

// DefaultTable is the table used when Options.Table is empty.
const DefaultTable = "plwah_blobs"

// Querier is the subset of *pgxpool.Pool, *pgx.Conn and pgx.Tx the store uses.
type Querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Options configures the store.
type Options struct {
	// Table is the blob table name. It is quoted as an identifier.
	Table string
}

// Store implements blobstore.BlobStore on a PostgreSQL table.
type Store struct {
	db    Querier
	table string
	pool  *pgxpool.Pool
}

// NewStore wraps an existing connection, pool or transaction.
func NewStore(db Querier, optFns ...func(o *Options)) *Store {
	opts := Options{Table: DefaultTable}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Table == "" {
		opts.Table = DefaultTable
	}
	return &Store{
		db:    db,
		table: pgx.Identifier{opts.Table}.Sanitize(),
	}
}

// New opens a connection pool for dsn, verifies it and creates the blob
// table if needed. Close releases the pool.
func New(ctx context.Context, dsn string, optFns ...func(o *Options)) (*Store, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: connect: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres: ping: %w", err)
	}

	s := NewStore(pool, optFns...)
	s.pool = pool
	if err := s.EnsureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

// EnsureSchema creates the blob table if it does not exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	q := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (name TEXT PRIMARY KEY, data BYTEA NOT NULL)`, s.table)
	if _, err := s.db.Exec(ctx, q); err != nil {
		return fmt.Errorf("postgres: create table: %w", err)
	}
	return nil
}

// Close releases the pool opened by New. It is a no-op for stores built
// with NewStore.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Get reads a blob.
func (s *Store) Get(ctx context.Context, name string) ([]byte, error) {
	var data []byte
	err := s.db.QueryRow(ctx, fmt.Sprintf(`SELECT data FROM %s WHERE name = $1`, s.table), name).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, blobstore.ErrNotFound
		}
		return nil, err
	}
	if data == nil {
		data = []byte{}
	}
	return data, nil
}

// Put inserts or replaces a blob in a single statement.
func (s *Store) Put(ctx context.Context, name string, data []byte) error {
	if data == nil {
		data = []byte{}
	}
	q := fmt.Sprintf(`INSERT INTO %s (name, data) VALUES ($1, $2)
ON CONFLICT (name) DO UPDATE SET data = EXCLUDED.data`, s.table)
	_, err := s.db.Exec(ctx, q, name, data)
	return err
}

// Delete removes a blob. Deleting a missing blob is not an error.
func (s *Store) Delete(ctx context.Context, name string) error {
	_, err := s.db.Exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE name = $1`, s.table), name)
	return err
}

// List returns all blob names with the given prefix in byte order.
func (s *Store) List(ctx context.Context, prefix string) ([]string, error) {
	q := fmt.Sprintf(`SELECT name FROM %s WHERE starts_with(name, $1) ORDER BY name COLLATE "C"`, s.table)
	rows, err := s.db.Query(ctx, q, prefix)
	if err != nil {
		return nil, err
	}
	names, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, err
	}
	if names == nil {
		names = []string{}
	}
	return names, nil
}
