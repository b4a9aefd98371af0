package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/therapy-portal/internal/model"
	"github.com/jwalitptl/therapy-portal/internal/repository"
)

const (
	ledgerTable        = "booking_ledger"
	defaultLedgerLimit = 100
)

type bookingLedgerRepository struct {
	db      *sqlx.DB
	dialect goqu.DialectWrapper
}

func NewBookingLedgerRepository(db *sqlx.DB) repository.BookingLedgerRepository {
	return &bookingLedgerRepository{
		db:      db,
		dialect: goqu.Dialect("postgres"),
	}
}

func (r *bookingLedgerRepository) Record(ctx context.Context, entry *model.LedgerEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO booking_ledger (id, draft_id, patient_id, appointment_id, outcome, error, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.ExecContext(ctx, query,
		entry.ID,
		entry.DraftID,
		entry.PatientID,
		entry.AppointmentID,
		entry.Outcome,
		entry.Error,
		entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to record ledger entry: %w", err)
	}
	return nil
}

func (r *bookingLedgerRepository) List(ctx context.Context, filter model.LedgerFilter) ([]*model.LedgerEntry, error) {
	ds := r.dialect.From(ledgerTable).
		Select("id", "draft_id", "patient_id", "appointment_id", "outcome", "error", "created_at").
		Prepared(true)

	if filter.Outcome != "" {
		ds = ds.Where(goqu.Ex{"outcome": string(filter.Outcome)})
	}
	if filter.DraftID != "" {
		ds = ds.Where(goqu.Ex{"draft_id": filter.DraftID})
	}
	if !filter.Since.IsZero() {
		ds = ds.Where(goqu.C("created_at").Gte(filter.Since))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultLedgerLimit
	}
	ds = ds.Order(goqu.C("created_at").Desc()).Limit(uint(limit))

	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("failed to build ledger query: %w", err)
	}

	entries := []*model.LedgerEntry{}
	if err := r.db.SelectContext(ctx, &entries, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list ledger entries: %w", err)
	}
	return entries, nil
}

// Prune deletes entries with the given outcome created before the cutoff.
func (r *bookingLedgerRepository) Prune(ctx context.Context, outcome model.LedgerOutcome, before time.Time) (int64, error) {
	query, args, err := r.dialect.Delete(ledgerTable).
		Where(
			goqu.Ex{"outcome": string(outcome)},
			goqu.C("created_at").Lt(before),
		).
		Prepared(true).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("failed to build prune query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to prune ledger: %w", err)
	}
	return res.RowsAffected()
}

func (r *bookingLedgerRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
