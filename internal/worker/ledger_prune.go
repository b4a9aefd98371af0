package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/therapy-portal/internal/model"
	"github.com/jwalitptl/therapy-portal/internal/repository"
)

// LedgerPruneWorker drops completed booking ledger entries past retention.
// Orphaned-patient entries are kept until someone reconciles them.
type LedgerPruneWorker struct {
	repo      repository.BookingLedgerRepository
	retention time.Duration
	interval  time.Duration
	now       func() time.Time
}

func NewLedgerPruneWorker(repo repository.BookingLedgerRepository, retention, interval time.Duration) *LedgerPruneWorker {
	if interval <= 0 {
		interval = 24 * time.Hour
	}
	return &LedgerPruneWorker{
		repo:      repo,
		retention: retention,
		interval:  interval,
		now:       time.Now,
	}
}

// Start blocks until ctx is done, pruning once per interval.
func (w *LedgerPruneWorker) Start(ctx context.Context) {
	if w.retention <= 0 {
		log.Info().Msg("booking ledger retention disabled")
		return
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := w.prune(ctx); err != nil {
				log.Error().Err(err).Msg("booking ledger prune failed")
			}
		}
	}
}

func (w *LedgerPruneWorker) prune(ctx context.Context) error {
	cutoff := w.now().Add(-w.retention)

	rows, err := w.repo.Prune(ctx, model.LedgerOutcomeCompleted, cutoff)
	if err != nil {
		return fmt.Errorf("failed to prune booking ledger: %w", err)
	}

	log.Info().Int64("rows", rows).Time("cutoff", cutoff).Msg("pruned booking ledger")
	return nil
}
