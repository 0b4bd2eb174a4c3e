// Package storage persists computed results between runs.
package storage

import "context"

// CacheStore is a bucketed key/value store shared by the classification and
// forecast caches. Implementations must be safe for concurrent use: batch
// classification reads and writes from multiple goroutines.
//
// Entries are never invalidated automatically; Clear is the only way to
// empty a bucket.
type CacheStore interface {
	Get(ctx context.Context, bucket, key string) (string, bool, error)
	Put(ctx context.Context, bucket, key, value string) error
	Clear(ctx context.Context, bucket string) error
	Close() error
}
