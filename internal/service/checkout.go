package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/mmoldabe-dev/ListingSubscriptions/internal/clock"
	"github.com/mmoldabe-dev/ListingSubscriptions/internal/domain"
	"github.com/mmoldabe-dev/ListingSubscriptions/internal/payment"
	"github.com/mmoldabe-dev/ListingSubscriptions/internal/repository"
)

type CheckoutServiceInterface interface {
	Start(ctx context.Context, req domain.CheckoutRequest) (domain.CheckoutResult, error)
	Confirm(ctx context.Context, subscriptionID uuid.UUID) error
	History(ctx context.Context, listingID string, limit, offset int) ([]domain.SubscriptionRecord, error)
}

type CheckoutService struct {
	repo    repository.SubscriptionInterface
	gateway payment.Gateway
	clock   clock.Clock
	log     *slog.Logger
}

var _ CheckoutServiceInterface = (*CheckoutService)(nil)

func NewCheckoutService(repo repository.SubscriptionInterface, gateway payment.Gateway, c clock.Clock, log *slog.Logger) *CheckoutService {
	return &CheckoutService{
		repo:    repo,
		gateway: gateway,
		clock:   c,
		log:     log.With(slog.String("component", "service/checkout")),
	}
}

// Start открывает checkout. Для объявления сначала пишем pending запись,
// guest checkout идет без записи.
func (s *CheckoutService) Start(ctx context.Context, req domain.CheckoutRequest) (domain.CheckoutResult, error) {
	const op = "service.CheckoutService.Start"

	plan, ok := domain.LookupPlan(req.PlanType)
	if !ok {
		return domain.CheckoutResult{}, fmt.Errorf("%s: %q: %w", op, req.PlanType, domain.ErrInvalidPlan)
	}

	if req.Guest() {
		sess, err := s.gateway.CreateSession(ctx, payment.SessionRequest{Plan: plan, Recurring: req.Recurring})
		if err != nil {
			return domain.CheckoutResult{}, fmt.Errorf("%s: %w", op, err)
		}
		return domain.CheckoutResult{SessionID: sess.ID, URL: sess.URL}, nil
	}

	if req.OwnerID == nil || *req.OwnerID == uuid.Nil {
		return domain.CheckoutResult{}, fmt.Errorf("%s: %w", op, domain.InvalidArgument("ownerId is required"))
	}

	listingID, err := ParseListingID(req.ListingID)
	if err != nil {
		return domain.CheckoutResult{}, fmt.Errorf("%s: %w", op, err)
	}

	// день окончания тоже оплачен, поэтому окно BillingCycleDays-1
	start := clock.Today(s.clock)
	rec := domain.SubscriptionRecord{
		ID:               uuid.New(),
		ListingID:        listingID,
		OwnerID:          *req.OwnerID,
		StartDate:        start,
		EndDate:          start.AddDate(0, 0, plan.BillingCycleDays-1),
		PlanType:         plan.Type,
		AmountPaid:       plan.AmountPaid,
		Status:           domain.StoredPending,
		Recurring:        req.Recurring,
		BillingCycleDays: plan.BillingCycleDays,
	}

	id, err := s.repo.Create(ctx, rec)
	if err != nil {
		return domain.CheckoutResult{}, fmt.Errorf("%s: %w: %w", op, domain.ErrStoreUnavailable, err)
	}

	sess, err := s.gateway.CreateSession(ctx, payment.SessionRequest{
		Plan:           plan,
		Recurring:      req.Recurring,
		SubscriptionID: &id,
		ListingID:      listingID,
	})
	if err != nil {
		// запись без сессии никогда не оплатят
		if uerr := s.repo.UpdateStatus(ctx, id, domain.StoredCancelled); uerr != nil {
			s.log.Warn("failed to cancel orphan subscription",
				slog.String("id", id.String()), slog.String("error", uerr.Error()))
		}
		return domain.CheckoutResult{}, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("checkout started",
		slog.String("subscription_id", id.String()),
		slog.String("listing_id", listingID),
		slog.String("plan", string(plan.Type)),
	)

	return domain.CheckoutResult{SessionID: sess.ID, URL: sess.URL, SubscriptionID: &id}, nil
}

// Confirm переводит pending в active после оплаты. Повторный вызов для
// active ничего не делает.
func (s *CheckoutService) Confirm(ctx context.Context, subscriptionID uuid.UUID) error {
	const op = "service.CheckoutService.Confirm"

	rec, err := s.repo.GetByID(ctx, subscriptionID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("%s: %w", op, err)
		}
		return fmt.Errorf("%s: %w: %w", op, domain.ErrStoreUnavailable, err)
	}

	switch rec.Status {
	case domain.StoredActive:
		return nil
	case domain.StoredPending:
	default:
		return fmt.Errorf("%s: %w", op, domain.InvalidArgument("cannot activate "+string(rec.Status)+" subscription"))
	}

	if err := s.repo.UpdateStatus(ctx, rec.ID, domain.StoredActive); err != nil {
		return fmt.Errorf("%s: %w: %w", op, domain.ErrStoreUnavailable, err)
	}

	s.log.Info("subscription activated", slog.String("id", rec.ID.String()))
	return nil
}

func (s *CheckoutService) History(ctx context.Context, listingID string, limit, offset int) ([]domain.SubscriptionRecord, error) {
	const op = "service.CheckoutService.History"

	id, err := ParseListingID(listingID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if limit > 100 {
		limit = 100
	}

	subs, err := s.repo.ListByListing(ctx, id, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, domain.ErrStoreUnavailable, err)
	}
	return subs, nil
}
