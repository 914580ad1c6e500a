package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/mmoldabe-dev/ListingSubscriptions/internal/clock"
	"github.com/mmoldabe-dev/ListingSubscriptions/internal/domain"
	"github.com/mmoldabe-dev/ListingSubscriptions/internal/repository"
)

type StatusResolverInterface interface {
	Resolve(ctx context.Context, listingID string) (Resolution, error)
}

// WriteBack итог ленивой записи expired. Err не nil только если
// попытка была и упала.
type WriteBack struct {
	Attempted bool
	RecordID  uuid.UUID
	Err       error
}

type Resolution struct {
	View      domain.StatusView
	WriteBack WriteBack
}

type StatusResolver struct {
	repo  repository.SubscriptionInterface
	clock clock.Clock
	log   *slog.Logger
}

var _ StatusResolverInterface = (*StatusResolver)(nil)

func NewStatusResolver(repo repository.SubscriptionInterface, c clock.Clock, log *slog.Logger) *StatusResolver {
	return &StatusResolver{
		repo:  repo,
		clock: c,
		log:   log.With(slog.String("component", "service/status")),
	}
}

// ParseListingID listingId непрозрачный, проверяем только что он не пустой
func ParseListingID(raw string) (string, error) {
	id := strings.TrimSpace(raw)
	if id == "" {
		return "", domain.InvalidArgument("listingId is required")
	}
	return id, nil
}

// Resolve отдает текущий статус подписки объявления. Ошибка ленивой записи
// не роняет вызов, она возвращается в Resolution.WriteBack.
func (s *StatusResolver) Resolve(ctx context.Context, listingID string) (Resolution, error) {
	const op = "service.StatusResolver.Resolve"

	id, err := ParseListingID(listingID)
	if err != nil {
		return Resolution{}, fmt.Errorf("%s: %w", op, err)
	}

	rec, err := s.repo.QueryMostRecent(ctx, id)
	if err != nil {
		return Resolution{}, fmt.Errorf("%s: %w: %w", op, domain.ErrStoreUnavailable, err)
	}
	if rec == nil {
		return Resolution{View: domain.NoneView()}, nil
	}

	d := Derive(rec.Status, rec.EndDate, s.clock.Now())
	res := Resolution{View: buildView(rec, d)}

	if d.NeedsWriteBack {
		res.WriteBack = s.expire(ctx, rec)
	}

	return res, nil
}

func (s *StatusResolver) expire(ctx context.Context, rec *domain.SubscriptionRecord) WriteBack {
	wb := WriteBack{Attempted: true, RecordID: rec.ID}
	if err := s.repo.UpdateStatus(ctx, rec.ID, domain.StoredExpired); err != nil {
		wb.Err = err
		return wb
	}
	s.log.Info("subscription expired lazily",
		slog.String("id", rec.ID.String()),
		slog.String("listing_id", rec.ListingID),
	)
	return wb
}

func buildView(rec *domain.SubscriptionRecord, d Derivation) domain.StatusView {
	start := rec.StartDate.Format(domain.DateLayout)
	end := rec.EndDate.Format(domain.DateLayout)
	plan := rec.PlanType
	amount := rec.AmountPaid

	return domain.StatusView{
		Status:        d.Status,
		StartDate:     &start,
		EndDate:       &end,
		DaysRemaining: d.DaysRemaining,
		PlanType:      &plan,
		AmountPaid:    &amount,
	}
}
