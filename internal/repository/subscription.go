package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/mmoldabe-dev/ListingSubscriptions/internal/domain"
)

type SubscriptionInterface interface {
	Create(ctx context.Context, rec domain.SubscriptionRecord) (uuid.UUID, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.SubscriptionRecord, error)
	QueryMostRecent(ctx context.Context, listingID string) (*domain.SubscriptionRecord, error)
	ListByListing(ctx context.Context, listingID string, limit, offset int) ([]domain.SubscriptionRecord, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.StoredStatus) error
}

type SubscriptionRepository struct {
	db  *sql.DB
	log *slog.Logger
}

var _ SubscriptionInterface = (*SubscriptionRepository)(nil)

func NewSubscriptionRepository(db *sql.DB, log *slog.Logger) *SubscriptionRepository {
	return &SubscriptionRepository{
		db:  db,
		log: log.With(slog.String("component", "repository")),
	}
}

const selectColumns = `id, listing_id, owner_id, start_date, end_date, plan_type, amount_paid,
	status, recurring, billing_cycle_days, created_at, updated_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(s scanner) (domain.SubscriptionRecord, error) {
	var rec domain.SubscriptionRecord
	err := s.Scan(
		&rec.ID, &rec.ListingID, &rec.OwnerID,
		&rec.StartDate, &rec.EndDate,
		&rec.PlanType, &rec.AmountPaid, &rec.Status,
		&rec.Recurring, &rec.BillingCycleDays,
		&rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		return rec, err
	}
	if !rec.Status.Valid() {
		return rec, fmt.Errorf("unknown stored status %q for subscription %s", rec.Status, rec.ID)
	}
	rec.StartDate = dateOnly(rec.StartDate)
	rec.EndDate = dateOnly(rec.EndDate)
	return rec, nil
}

// DATE колонки приводим к полуночи UTC того же календарного дня
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Запись подписки
func (r *SubscriptionRepository) Create(ctx context.Context, rec domain.SubscriptionRecord) (uuid.UUID, error) {
	const op = "repository.postgres.Create"

	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}

	query := `INSERT INTO subscriptions(id, listing_id, owner_id, start_date, end_date, plan_type,
		amount_paid, status, recurring, billing_cycle_days)
	VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	RETURNING id`

	var id uuid.UUID
	err := r.db.QueryRowContext(ctx, query,
		rec.ID, rec.ListingID, rec.OwnerID,
		rec.StartDate.Format(domain.DateLayout), rec.EndDate.Format(domain.DateLayout),
		rec.PlanType, rec.AmountPaid, rec.Status, rec.Recurring, rec.BillingCycleDays,
	).Scan(&id)
	if err != nil {
		r.log.Error("failed to create subscription", slog.String("op", op), slog.String("error", err.Error()))
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}

// Вывести подписку по id
func (r *SubscriptionRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.SubscriptionRecord, error) {
	const op = "repository.postgres.GetByID"
	query := `SELECT ` + selectColumns + ` FROM subscriptions WHERE id = $1`

	rec, err := scanRecord(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, domain.ErrNotFound)
		}
		r.log.Error("failed to get subscription",
			slog.String("op", op),
			slog.String("id", id.String()),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &rec, nil
}

// Последняя по created_at подписка объявления, nil если нет ни одной
func (r *SubscriptionRepository) QueryMostRecent(ctx context.Context, listingID string) (*domain.SubscriptionRecord, error) {
	const op = "repository.postgres.QueryMostRecent"
	query := `SELECT ` + selectColumns + ` FROM subscriptions
	WHERE listing_id = $1
	ORDER BY created_at DESC, id DESC
	LIMIT 1`

	rec, err := scanRecord(r.db.QueryRowContext(ctx, query, listingID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.log.Error("failed to query latest subscription",
			slog.String("op", op),
			slog.String("listing_id", listingID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &rec, nil
}

// История подписок объявления, новые сверху
func (r *SubscriptionRepository) ListByListing(ctx context.Context, listingID string, limit, offset int) ([]domain.SubscriptionRecord, error) {
	const op = "repository.postgres.ListByListing"

	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	query := `SELECT ` + selectColumns + ` FROM subscriptions
	WHERE listing_id = $1
	ORDER BY created_at DESC, id DESC
	LIMIT $2 OFFSET $3`

	rows, err := r.db.QueryContext(ctx, query, listingID, limit, offset)
	if err != nil {
		r.log.Error("failed to get list", slog.String("op", op), slog.String("error", err.Error()))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	subs := make([]domain.SubscriptionRecord, 0)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: scan error: %w", op, err)
		}
		subs = append(subs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return subs, nil
}

// Смена статуса одной записи
func (r *SubscriptionRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.StoredStatus) error {
	const op = "repository.postgres.UpdateStatus"
	query := `UPDATE subscriptions SET status = $1, updated_at = NOW() WHERE id = $2`

	res, err := r.db.ExecContext(ctx, query, status, id)
	if err != nil {
		r.log.Error("failed to update status", slog.String("op", op), slog.String("error", err.Error()))
		return fmt.Errorf("%s: %w", op, err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: failed to get rows affected: %w", op, err)
	}
	if rows == 0 {
		return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	}

	r.log.Debug("subscription status updated", slog.String("id", id.String()), slog.String("status", string(status)))
	return nil
}
