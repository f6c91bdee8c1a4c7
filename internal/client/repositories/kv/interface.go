// Package kv is the local key-value store ticketapp keeps all of its data in.
// It plays the part browser local storage plays for a web client: one flat
// namespace of string keys holding text values, with a size quota.
package kv

import (
	"context"
)

// Store is a flat key-value namespace.
//
// Get returns common.ErrorNotFound for a missing key, so an absent item is
// never confused with an empty one. Set fails with common.ErrQuotaExceeded
// when the write would push the total stored size over the quota.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
}
