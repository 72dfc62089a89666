package uow

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"log/slog"
	"time"

	"tablebook/internal/domain/booking"
	"tablebook/internal/domain/timeslot"
	"tablebook/internal/infra/db"
	"tablebook/internal/infra/readstore"
	"tablebook/internal/infra/repository"
	"tablebook/internal/pkg/errs"
	"tablebook/internal/usecase/queries"
	"tablebook/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	pgErrCodeSerializationFailure = "40001"
	pgErrCodeDeadlockDetected     = "40P01"
)

var (
	errTransactionBegin   = errs.New("failed to begin transaction")
	errTransactionCommit  = errs.New("failed to commit transaction")
	errSavepointBegin     = errs.New("failed to begin savepoint")
	errMaxRetriesExceeded = errs.New("transaction failed after max retries")
)

type PostgresUoW struct {
	pool *pgxpool.Pool
}

func NewPostgresUoW(pool *pgxpool.Pool) shared.UnitOfWork {
	return &PostgresUoW{pool: pool}
}

// ReadCommitted prevents dirty reads while allowing concurrent writes
func (u *PostgresUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return u.runInTxWithOptions(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, fn)
}

func (u *PostgresUoW) Reads() shared.CommandReads {
	return &commandReads{dbtx: u.pool}
}

// Avoids defer accumulation in retry loops to prevent connection leaks
func (u *PostgresUoW) runInTxWithOptions(ctx context.Context, options pgx.TxOptions, fn func(ctx context.Context, tx shared.Tx) error) error {
	const maxRetries = 3
	base := 100 * time.Millisecond

	for attempt := 0; attempt <= maxRetries; attempt++ {
		pgxTx, err := u.pool.BeginTx(ctx, options)
		if err != nil {
			return errs.Mark(err, errTransactionBegin)
		}

		tx := &pgTx{dbtx: pgxTx, tx: pgxTx}

		err = fn(ctx, tx)
		if err == nil {
			if err = pgxTx.Commit(ctx); err == nil {
				return nil
			}
			err = errs.Mark(err, errTransactionCommit)
		}

		if rollbackErr := pgxTx.Rollback(ctx); rollbackErr != nil {
			if !errors.Is(rollbackErr, pgx.ErrTxClosed) {
				slog.Warn("rollback failed", "attempt", attempt+1, "error", rollbackErr.Error())
			}
		}

		if !shouldRetry(err, attempt, maxRetries) {
			if attempt == maxRetries {
				slog.Error("transaction failed after max retries",
					"attempts", attempt+1,
					"error", err.Error())
				return errs.Mark(err, errMaxRetriesExceeded)
			}
			return err
		}

		waitTime := calculateBackoff(attempt, base)

		slog.Warn("retrying transaction due to retryable error",
			"attempt", attempt+1,
			"wait_ms", waitTime.Milliseconds(),
			"error", err.Error())

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(waitTime):
		}
	}

	return errMaxRetriesExceeded
}

func shouldRetry(err error, attempt, maxRetries int) bool {
	return isRetryableError(err) && attempt < maxRetries
}

func calculateBackoff(attempt int, base time.Duration) time.Duration {
	waitTime := time.Duration(1<<attempt) * base
	jitter := cryptoRandInt63n(int64(waitTime / 5))
	return waitTime + time.Duration(jitter)
}

func cryptoRandInt63n(n int64) int64 {
	if n <= 0 {
		return 0
	}
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// Fallback to a simple calculation if crypto/rand fails
		return 0
	}
	// Safe conversion: mask high bit to ensure positive int64
	uval := binary.BigEndian.Uint64(buf[:]) & 0x7FFFFFFFFFFFFFFF
	// #nosec G115 -- Intentionally safe conversion after masking
	return int64(uval) % n
}

func isRetryableError(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}

	switch pgErr.Code {
	case pgErrCodeSerializationFailure, pgErrCodeDeadlockDetected:
		return true
	default:
		return false
	}
}

type pgTx struct {
	dbtx db.DBTX
	tx   pgx.Tx

	// Lazy-initialized repositories
	bookingRepo  shared.BookingRepository
	slotRepo     shared.SlotRepository
	userRepo     shared.UserRepository
	commandReads shared.CommandReads
}

// Atomic nests a savepoint via pgx's nested Begin. Postgres aborts the whole
// transaction on any statement error, so a recoverable attempt (such as an
// insert that may hit a unique index) must run here to keep the outer
// transaction alive after a failure.
func (t *pgTx) Atomic(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	sp, err := t.tx.Begin(ctx)
	if err != nil {
		return errs.Mark(err, errSavepointBegin)
	}

	inner := &pgTx{dbtx: sp, tx: sp}
	if err := fn(ctx, inner); err != nil {
		if rbErr := sp.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			slog.Warn("savepoint rollback failed", "error", rbErr.Error())
		}
		return err
	}

	if err := sp.Commit(ctx); err != nil {
		return errs.Mark(err, errTransactionCommit)
	}
	return nil
}

func (t *pgTx) Bookings() shared.BookingRepository {
	if t.bookingRepo == nil {
		t.bookingRepo = repository.NewBookingRepository(t.dbtx)
	}
	return t.bookingRepo
}

func (t *pgTx) Slots() shared.SlotRepository {
	if t.slotRepo == nil {
		t.slotRepo = repository.NewSlotRepository(t.dbtx)
	}
	return t.slotRepo
}

func (t *pgTx) Users() shared.UserRepository {
	if t.userRepo == nil {
		t.userRepo = repository.NewUserRepository(t.dbtx)
	}
	return t.userRepo
}

func (t *pgTx) Reads() shared.CommandReads {
	if t.commandReads == nil {
		t.commandReads = &commandReads{dbtx: t.dbtx}
	}
	return t.commandReads
}

type commandReads struct {
	dbtx db.DBTX

	// Lazy-initialized readstores
	catalogStore *readstore.CatalogReadStore
	bookingStore *readstore.BookingReadStore
}

func (r *commandReads) catalog() *readstore.CatalogReadStore {
	if r.catalogStore == nil {
		r.catalogStore = readstore.NewCatalogReadStore(r.dbtx)
	}
	return r.catalogStore
}

func (r *commandReads) bookings() *readstore.BookingReadStore {
	if r.bookingStore == nil {
		r.bookingStore = readstore.NewBookingReadStore(r.dbtx)
	}
	return r.bookingStore
}

func (r *commandReads) RestaurantByID(ctx context.Context, id uuid.UUID) (*shared.RestaurantSnapshot, error) {
	view, err := r.catalog().FindRestaurantByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return restaurantSnapshot(view)
}

func restaurantSnapshot(view *queries.RestaurantView) (*shared.RestaurantSnapshot, error) {
	opening, err := timeslot.ParseTimeOfDay(view.OpeningTime)
	if err != nil {
		return nil, errs.Wrap(err, "invalid opening time in storage")
	}
	closing, err := timeslot.ParseTimeOfDay(view.ClosingTime)
	if err != nil {
		return nil, errs.Wrap(err, "invalid closing time in storage")
	}
	return &shared.RestaurantSnapshot{
		ID:          view.ID,
		Name:        view.Name,
		Timezone:    view.Timezone,
		OpeningTime: opening,
		ClosingTime: closing,
		TotalSeats:  int(view.TotalSeats),
		IsActive:    view.IsActive,
	}, nil
}

func (r *commandReads) MenuItemsByIDs(ctx context.Context, restaurantID uuid.UUID, ids []uuid.UUID) ([]shared.MenuItemSnapshot, error) {
	views, err := r.catalog().FindMenuItemsByIDs(ctx, restaurantID, ids)
	if err != nil {
		return nil, err
	}

	snapshots := make([]shared.MenuItemSnapshot, 0, len(views))
	for _, view := range views {
		snapshots = append(snapshots, shared.MenuItemSnapshot{
			ID:           view.ID,
			RestaurantID: view.RestaurantID,
			Name:         view.Name,
			PriceCents:   int64(view.PriceCents),
			IsAvailable:  view.IsAvailable,
		})
	}
	return snapshots, nil
}

func (r *commandReads) BookingByID(ctx context.Context, id uuid.UUID) (*shared.BookingSnapshot, error) {
	view, err := r.bookings().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	date, err := timeslot.ParseDate(view.Date)
	if err != nil {
		return nil, errs.Wrap(err, "invalid booking date in storage")
	}
	tod, err := timeslot.ParseTimeOfDay(view.Time)
	if err != nil {
		return nil, errs.Wrap(err, "invalid booking time in storage")
	}

	return &shared.BookingSnapshot{
		ID:           view.ID,
		Reference:    view.Reference,
		UserID:       view.UserID,
		RestaurantID: view.RestaurantID,
		Date:         date,
		Time:         tod,
		PartySize:    int(view.PartySize),
		Status:       booking.Status(view.Status),
	}, nil
}
