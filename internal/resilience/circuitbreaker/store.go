package circuitbreaker

import (
	"context"
	"database/sql"
)

// StoreReader runs the read queries of the durable catalog store behind a
// breaker. Writes are guarded by the catalog service, which knows whether a
// failed write-back can be kept in memory.
type StoreReader struct {
	cb *CircuitBreaker
	db *sql.DB
}

func NewStoreReader(db *sql.DB) *StoreReader {
	return NewStoreReaderWithConfig(db, StoreReadConfig())
}

func NewStoreReaderWithConfig(db *sql.DB, cfg Config) *StoreReader {
	return &StoreReader{cb: New(cfg), db: db}
}

// QueryContext fails fast with gobreaker.ErrOpenState while the store is
// considered down.
func (r *StoreReader) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return Run(r.cb, func() (*sql.Rows, error) {
		return r.db.QueryContext(ctx, query, args...)
	})
}

func (r *StoreReader) IsOpen() bool { return r.cb.IsOpen() }
