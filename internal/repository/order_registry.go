package repository

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/channabasavaballolli/Edu-Pay/internal/domain"
	customError "github.com/channabasavaballolli/Edu-Pay/pkg/errors"
)

const orderKeyPrefix = "edupay:order:"

func orderKey(orderID string) string {
	return orderKeyPrefix + orderID
}

type storedAttempt struct {
	attempt domain.PaymentAttempt
	expires time.Time // zero: never
}

func (s storedAttempt) expired(now time.Time) bool {
	return !s.expires.IsZero() && now.After(s.expires)
}

type memoryOrderRegistry struct {
	mu       sync.Mutex
	attempts map[string]storedAttempt
	ttl      time.Duration
	now      func() time.Time
}

// NewMemoryOrderRegistry keeps attempts in process. Entries lapse after ttl;
// a zero ttl keeps them until the process exits.
func NewMemoryOrderRegistry(ttl time.Duration) OrderRegistry {
	return &memoryOrderRegistry{
		attempts: make(map[string]storedAttempt),
		ttl:      ttl,
		now:      time.Now,
	}
}

func (r *memoryOrderRegistry) Save(ctx context.Context, attempt *domain.PaymentAttempt) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	stored := storedAttempt{attempt: *attempt}
	if r.ttl > 0 {
		for id, s := range r.attempts {
			if s.expired(now) {
				delete(r.attempts, id)
			}
		}
		stored.expires = now.Add(r.ttl)
	}
	r.attempts[attempt.OrderID] = stored
	return nil
}

func (r *memoryOrderRegistry) Get(ctx context.Context, orderID string) (*domain.PaymentAttempt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.attempts[orderID]
	if !ok || stored.expired(r.now()) {
		return nil, customError.WrapOrderNotFound(orderID)
	}
	attempt := stored.attempt
	return &attempt, nil
}

type redisOrderRegistry struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisOrderRegistry stores attempts as JSON under edupay:order:{id}. A
// zero ttl writes keys without expiry.
func NewRedisOrderRegistry(client *redis.Client, ttl time.Duration) OrderRegistry {
	return &redisOrderRegistry{client: client, ttl: ttl}
}

func (r *redisOrderRegistry) Save(ctx context.Context, attempt *domain.PaymentAttempt) error {
	data, err := json.Marshal(attempt)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, orderKey(attempt.OrderID), data, r.ttl).Err()
}

func (r *redisOrderRegistry) Get(ctx context.Context, orderID string) (*domain.PaymentAttempt, error) {
	data, err := r.client.Get(ctx, orderKey(orderID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, customError.WrapOrderNotFound(orderID)
	}
	if err != nil {
		return nil, err
	}

	var attempt domain.PaymentAttempt
	if err := json.Unmarshal(data, &attempt); err != nil {
		return nil, err
	}
	return &attempt, nil
}
