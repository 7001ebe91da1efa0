package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/finbooks/ledger/internal/domain"
)

// ErrCacheMiss is returned when the requested account is not cached.
var ErrCacheMiss = errors.New("account not in cache")

// AccountCache keeps short-lived account snapshots in Redis to absorb read
// traffic. Balances in the cache are best effort; postings invalidate the
// touched accounts so the next read goes back to the store.
type AccountCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewAccountCache creates an AccountCache with the given snapshot TTL.
func NewAccountCache(client *redis.Client, ttl time.Duration) *AccountCache {
	return &AccountCache{
		client: client,
		prefix: "ledger:account:",
		ttl:    ttl,
	}
}

// Get retrieves a cached account snapshot.
func (c *AccountCache) Get(ctx context.Context, id string) (*domain.Account, error) {
	raw, err := c.client.Get(ctx, c.prefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, err
	}

	var account domain.Account
	if err := json.Unmarshal(raw, &account); err != nil {
		return nil, err
	}

	return &account, nil
}

// Set stores an account snapshot.
func (c *AccountCache) Set(ctx context.Context, account *domain.Account) error {
	raw, err := json.Marshal(account)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, c.prefix+account.ID, raw, c.ttl).Err()
}

// Invalidate drops the snapshots of the given accounts.
func (c *AccountCache) Invalidate(ctx context.Context, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = c.prefix + id
	}

	return c.client.Del(ctx, keys...).Err()
}
