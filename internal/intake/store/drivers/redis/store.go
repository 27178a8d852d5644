// Package redis stores client records as JSON documents in Redis.
//
// Layout, all keys under a configurable prefix:
//
//	{prefix}:client:{id}            JSON document
//	{prefix}:client:email:{email}   id of the record owning email (SETNX guard)
//	{prefix}:clients:by_submitted   sorted set of ids scored by submitted_at (unix µs)
package redis

import (
	"context"
	"fmt"

	"github.com/aussiebroadwan/intake/internal/intake/store"
	"github.com/redis/go-redis/v9"
)

type Store struct {
	rdb    *redis.Client
	prefix string
}

// NewStore connects using a redis:// URL. prefix namespaces every key,
// playing the role of a database name.
func NewStore(ctx context.Context, url, prefix string) (*Store, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("redis: parse url: %w", err)
	}

	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis: ping: %w", err)
	}

	return NewStoreWithClient(rdb, prefix), nil
}

// NewStoreWithClient wraps an existing client.
func NewStoreWithClient(rdb *redis.Client, prefix string) *Store {
	if prefix == "" {
		prefix = "intake"
	}
	return &Store{rdb: rdb, prefix: prefix}
}

func (s *Store) Clients() store.Clients { return &clientsRepo{rdb: s.rdb, keys: keyspace(s.prefix)} }

// ApplyMigrations is a no-op, documents carry no schema.
func (s *Store) ApplyMigrations() error { return nil }

func (s *Store) Close() error { return s.rdb.Close() }

func (s *Store) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}

type keyspace string

func (k keyspace) client(id string) string   { return string(k) + ":client:" + id }
func (k keyspace) email(email string) string { return string(k) + ":client:email:" + email }
func (k keyspace) bySubmitted() string       { return string(k) + ":clients:by_submitted" }
