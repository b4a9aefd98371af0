package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jwalitptl/therapy-portal/internal/model"
)

var ErrDraftNotFound = errors.New("booking draft not found")

// All repository interfaces in one file
type (
	// DraftStore keeps booking drafts between requests.
	DraftStore interface {
		Save(ctx context.Context, draft *model.BookingDraft) error
		Get(ctx context.Context, id string) (*model.BookingDraft, error)
		Delete(ctx context.Context, id string) error
		// Lock takes an exclusive, expiring lock on a draft. It reports
		// false when another holder already has it.
		Lock(ctx context.Context, id string, ttl time.Duration) (bool, error)
		Unlock(ctx context.Context, id string) error
		Ping(ctx context.Context) error
	}

	// BookingLedgerRepository records the outcome of every booking submit.
	BookingLedgerRepository interface {
		Record(ctx context.Context, entry *model.LedgerEntry) error
		List(ctx context.Context, filter model.LedgerFilter) ([]*model.LedgerEntry, error)
		Prune(ctx context.Context, outcome model.LedgerOutcome, before time.Time) (int64, error)
		Ping(ctx context.Context) error
	}
)
