package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jwalitptl/therapy-portal/internal/model"
	"github.com/jwalitptl/therapy-portal/internal/repository"
	"github.com/jwalitptl/therapy-portal/pkg/circuitbreaker"
	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix  = "portal:booking:draft:"
	lockPrefix = "portal:booking:lock:"
)

type Config struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	TTL          time.Duration
}

type draftStore struct {
	client *redis.Client
	cb     *circuitbreaker.CircuitBreaker
	ttl    time.Duration
}

// Connect parses the URL and verifies the connection.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}
	if cfg.PoolSize > 0 {
		opts.PoolSize = cfg.PoolSize
	}
	if cfg.MinIdleConns > 0 {
		opts.MinIdleConns = cfg.MinIdleConns
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}

// NewDraftStore stores drafts as JSON with a sliding TTL.
func NewDraftStore(client *redis.Client, ttl time.Duration) repository.DraftStore {
	return &draftStore{
		client: client,
		cb: circuitbreaker.NewCircuitBreaker(circuitbreaker.Settings{
			Name:        "redis-drafts",
			MaxFailures: 5,
			Timeout:     10 * time.Second,
		}),
		ttl: ttl,
	}
}

func (s *draftStore) Save(ctx context.Context, draft *model.BookingDraft) error {
	data, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("failed to marshal draft: %w", err)
	}
	return s.cb.Execute(func() error {
		if err := s.client.Set(ctx, keyPrefix+draft.ID, data, s.ttl).Err(); err != nil {
			return fmt.Errorf("failed to save draft: %w", err)
		}
		return nil
	})
}

func (s *draftStore) Get(ctx context.Context, id string) (*model.BookingDraft, error) {
	var data []byte
	err := s.cb.Execute(func() error {
		var err error
		data, err = s.client.Get(ctx, keyPrefix+id).Bytes()
		if errors.Is(err, redis.Nil) {
			return repository.ErrDraftNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to get draft: %w", err)
		}
		return nil
	}, isNotFound)
	if err != nil {
		return nil, err
	}

	var draft model.BookingDraft
	if err := json.Unmarshal(data, &draft); err != nil {
		return nil, fmt.Errorf("failed to unmarshal draft: %w", err)
	}
	return &draft, nil
}

func (s *draftStore) Delete(ctx context.Context, id string) error {
	return s.cb.Execute(func() error {
		if err := s.client.Del(ctx, keyPrefix+id).Err(); err != nil {
			return fmt.Errorf("failed to delete draft: %w", err)
		}
		return nil
	})
}

func (s *draftStore) Lock(ctx context.Context, id string, ttl time.Duration) (bool, error) {
	var acquired bool
	err := s.cb.Execute(func() error {
		ok, err := s.client.SetNX(ctx, lockPrefix+id, 1, ttl).Result()
		if err != nil {
			return fmt.Errorf("failed to lock draft: %w", err)
		}
		acquired = ok
		return nil
	})
	return acquired, err
}

func (s *draftStore) Unlock(ctx context.Context, id string) error {
	return s.cb.Execute(func() error {
		if err := s.client.Del(ctx, lockPrefix+id).Err(); err != nil {
			return fmt.Errorf("failed to unlock draft: %w", err)
		}
		return nil
	})
}

func (s *draftStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func isNotFound(err error) bool {
	return errors.Is(err, repository.ErrDraftNotFound)
}
