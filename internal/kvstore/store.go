// Package kvstore defines the asynchronous key-value boundary every
// collection is persisted through: string keys, string values, one entry per
// collection. The store is durable on a single device and not transactional
// across keys.
package kvstore

import "context"

// Store is the persistence boundary.
//
// Get reports (value, true, nil) when the key exists and ("", false, nil)
// when it does not. Any error returned by an implementation wraps
// common.ErrStorage so callers can classify it.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value string) error
	Remove(ctx context.Context, key string) error
}
