package memory

import (
	"context"
	"time"

	"github.com/jwalitptl/therapy-portal/internal/model"
	"github.com/jwalitptl/therapy-portal/internal/repository"
	"github.com/patrickmn/go-cache"
)

const lockPrefix = "lock:"

type draftStore struct {
	cache *cache.Cache
	ttl   time.Duration
}

// NewDraftStore keeps drafts in process memory. Used when Redis is not
// configured; drafts do not survive a restart.
func NewDraftStore(ttl time.Duration) repository.DraftStore {
	return &draftStore{
		cache: cache.New(ttl, ttl/2),
		ttl:   ttl,
	}
}

func (s *draftStore) Save(_ context.Context, draft *model.BookingDraft) error {
	cp := *draft
	s.cache.Set(draft.ID, &cp, s.ttl)
	return nil
}

func (s *draftStore) Get(_ context.Context, id string) (*model.BookingDraft, error) {
	v, ok := s.cache.Get(id)
	if !ok {
		return nil, repository.ErrDraftNotFound
	}
	cp := *v.(*model.BookingDraft)
	return &cp, nil
}

func (s *draftStore) Delete(_ context.Context, id string) error {
	s.cache.Delete(id)
	return nil
}

func (s *draftStore) Lock(_ context.Context, id string, ttl time.Duration) (bool, error) {
	// Add fails when the key is already present and unexpired.
	if err := s.cache.Add(lockPrefix+id, struct{}{}, ttl); err != nil {
		return false, nil
	}
	return true, nil
}

func (s *draftStore) Unlock(_ context.Context, id string) error {
	s.cache.Delete(lockPrefix + id)
	return nil
}

func (s *draftStore) Ping(context.Context) error {
	return nil
}
