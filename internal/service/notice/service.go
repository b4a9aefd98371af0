package notice

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/jwalitptl/therapy-portal/internal/model"
)

// DefaultDuration is how long a notice is displayed.
const DefaultDuration = 4000 * time.Millisecond

type Config struct {
	// Retention is how long an undrained notice is kept. It is never
	// shorter than the notice's own display duration.
	Retention time.Duration
}

// Service holds pending notices per browser client.
type Service struct {
	cache     *cache.Cache
	retention time.Duration
	now       func() time.Time
}

func NewService(cfg Config) *Service {
	if cfg.Retention <= 0 {
		cfg.Retention = time.Minute
	}
	return &Service{
		cache:     cache.New(cfg.Retention, 2*cfg.Retention),
		retention: cfg.Retention,
		now:       time.Now,
	}
}

// Push queues a notice for client and returns its ID. A zero duration
// means DefaultDuration.
func (s *Service) Push(client string, typ model.NoticeType, message string, duration time.Duration) string {
	if duration <= 0 {
		duration = DefaultDuration
	}
	if !typ.Valid() {
		typ = model.NoticeInfo
	}

	n := &model.Notice{
		ID:         uuid.NewString(),
		Type:       typ,
		Message:    message,
		DurationMS: duration.Milliseconds(),
		CreatedAt:  s.now(),
	}

	ttl := s.retention
	if duration > ttl {
		ttl = duration
	}
	s.cache.Set(key(client, n.ID), n, ttl)
	return n.ID
}

func (s *Service) Success(client, message string) string {
	return s.Push(client, model.NoticeSuccess, message, 0)
}

func (s *Service) Error(client, message string) string {
	return s.Push(client, model.NoticeError, message, 0)
}

func (s *Service) Warning(client, message string) string {
	return s.Push(client, model.NoticeWarning, message, 0)
}

func (s *Service) Info(client, message string) string {
	return s.Push(client, model.NoticeInfo, message, 0)
}

// Drain returns the client's pending notices oldest first and removes them.
func (s *Service) Drain(client string) []*model.Notice {
	prefix := client + "/"
	out := []*model.Notice{}
	for k, item := range s.cache.Items() {
		if !strings.HasPrefix(k, prefix) {
			continue
		}
		out = append(out, item.Object.(*model.Notice))
		s.cache.Delete(k)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

// Dismiss removes one notice. It reports whether the notice existed.
func (s *Service) Dismiss(client, id string) bool {
	k := key(client, id)
	if _, ok := s.cache.Get(k); !ok {
		return false
	}
	s.cache.Delete(k)
	return true
}

func key(client, id string) string {
	return client + "/" + id
}
