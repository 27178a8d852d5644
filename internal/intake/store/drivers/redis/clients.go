package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/aussiebroadwan/intake/internal/intake/domain"
	"github.com/aussiebroadwan/intake/internal/intake/store"
	"github.com/redis/go-redis/v9"
)

type clientDoc struct {
	ID          string    `json:"id"`
	FullName    string    `json:"full_name"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phone_number"`
	SubmittedAt time.Time `json:"submitted_at"`
}

type clientsRepo struct {
	rdb  *redis.Client
	keys keyspace
}

func (r *clientsRepo) GetClientByEmail(ctx context.Context, email string) (domain.Client, error) {
	id, err := r.rdb.Get(ctx, r.keys.email(email)).Result()
	if errors.Is(err, redis.Nil) {
		return domain.Client{}, store.ErrNotFound
	}
	if err != nil {
		return domain.Client{}, err
	}

	raw, err := r.rdb.Get(ctx, r.keys.client(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		// Email claimed but the document write never landed.
		return domain.Client{}, store.ErrNotFound
	}
	if err != nil {
		return domain.Client{}, err
	}
	return decodeClient(raw)
}

func (r *clientsRepo) CreateClient(ctx context.Context, c domain.Client) error {
	doc, err := json.Marshal(clientDoc{
		ID:          c.ID,
		FullName:    c.FullName,
		Email:       c.Email,
		PhoneNumber: c.PhoneNumber,
		SubmittedAt: c.SubmittedAt.UTC(),
	})
	if err != nil {
		return fmt.Errorf("redis: encode client: %w", err)
	}

	// Claim the email first; SETNX is atomic so concurrent duplicates lose here.
	claimed, err := r.rdb.SetNX(ctx, r.keys.email(c.Email), c.ID, 0).Result()
	if err != nil {
		return err
	}
	if !claimed {
		return store.ErrAlreadyExists
	}

	_, err = r.rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Set(ctx, r.keys.client(c.ID), doc, 0)
		p.ZAdd(ctx, r.keys.bySubmitted(), redis.Z{
			Score:  score(c.SubmittedAt),
			Member: c.ID,
		})
		return nil
	})
	if err != nil {
		// Release the claim so the email is not locked by a failed insert.
		_ = r.rdb.Del(context.WithoutCancel(ctx), r.keys.email(c.Email)).Err()
		return err
	}
	return nil
}

func (r *clientsRepo) CountClients(ctx context.Context) (int64, error) {
	return r.rdb.ZCard(ctx, r.keys.bySubmitted()).Result()
}

// CountClientsSince counts on the microsecond score, then settles records
// sharing since's microsecond against their stored nanosecond timestamp.
func (r *clientsRepo) CountClientsSince(ctx context.Context, since time.Time) (int64, error) {
	since = since.UTC()
	lower := strconv.FormatInt(since.UnixMicro(), 10)

	n, err := r.rdb.ZCount(ctx, r.keys.bySubmitted(), lower, "+inf").Result()
	if err != nil || since.Nanosecond()%1000 == 0 {
		return n, err
	}

	early, err := r.countBefore(ctx, lower, since)
	if err != nil {
		return 0, err
	}
	return n - early, nil
}

// countBefore counts records scored exactly at micro whose full timestamp
// precedes since.
func (r *clientsRepo) countBefore(ctx context.Context, micro string, since time.Time) (int64, error) {
	ids, err := r.rdb.ZRangeByScore(ctx, r.keys.bySubmitted(), &redis.ZRangeBy{Min: micro, Max: micro}).Result()
	if err != nil || len(ids) == 0 {
		return 0, err
	}

	docKeys := make([]string, len(ids))
	for i, id := range ids {
		docKeys[i] = r.keys.client(id)
	}
	vals, err := r.rdb.MGet(ctx, docKeys...).Result()
	if err != nil {
		return 0, err
	}

	var early int64
	for i, v := range vals {
		s, ok := v.(string)
		if !ok {
			continue
		}
		c, err := decodeClient([]byte(s))
		if err != nil {
			return 0, fmt.Errorf("redis: client %s: %w", ids[i], err)
		}
		if c.SubmittedAt.Before(since) {
			early++
		}
	}
	return early, nil
}

func (r *clientsRepo) ListClients(ctx context.Context) ([]domain.Client, error) {
	// Equal scores come back in reverse lexical member order, i.e. id descending.
	ids, err := r.rdb.ZRevRange(ctx, r.keys.bySubmitted(), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	out := make([]domain.Client, 0, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	docKeys := make([]string, len(ids))
	for i, id := range ids {
		docKeys[i] = r.keys.client(id)
	}

	vals, err := r.rdb.MGet(ctx, docKeys...).Result()
	if err != nil {
		return nil, err
	}

	for i, v := range vals {
		s, ok := v.(string)
		if !ok {
			// Indexed but missing document; skip rather than fail the listing.
			continue
		}
		c, err := decodeClient([]byte(s))
		if err != nil {
			return nil, fmt.Errorf("redis: client %s: %w", ids[i], err)
		}
		out = append(out, c)
	}
	return out, nil
}

// score uses microseconds so the value stays exact in a float64.
func score(t time.Time) float64 {
	return float64(t.UTC().UnixMicro())
}

func decodeClient(raw []byte) (domain.Client, error) {
	var doc clientDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return domain.Client{}, fmt.Errorf("redis: decode client: %w", err)
	}
	return domain.Client{
		ID:          doc.ID,
		FullName:    doc.FullName,
		Email:       doc.Email,
		PhoneNumber: doc.PhoneNumber,
		SubmittedAt: doc.SubmittedAt.UTC(),
	}, nil
}
