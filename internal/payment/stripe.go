package payment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	stripe "github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/checkout/session"
	"github.com/stripe/stripe-go/v82/webhook"

	"github.com/mmoldabe-dev/ListingSubscriptions/internal/domain"
)

const (
	MetaSubscriptionID = "subscription_id"
	MetaListingID      = "listing_id"
	MetaPlanType       = "plan_type"
)

// ErrIgnoredEvent событие webhook которое нам не нужно
var ErrIgnoredEvent = errors.New("payment: event ignored")

type SessionRequest struct {
	Plan           domain.Plan
	Recurring      bool
	SubscriptionID *uuid.UUID
	ListingID      string
}

type Session struct {
	ID  string
	URL string
}

type Gateway interface {
	CreateSession(ctx context.Context, req SessionRequest) (Session, error)
}

type StripeGateway struct {
	webhookSecret string
	successURL    string
	cancelURL     string
	currency      string
	newSession    func(*stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
}

var _ Gateway = (*StripeGateway)(nil)

func NewStripeGateway(apiKey, webhookSecret, successURL, cancelURL, currency string) *StripeGateway {
	stripe.Key = apiKey
	return &StripeGateway{
		webhookSecret: webhookSecret,
		successURL:    successURL,
		cancelURL:     cancelURL,
		currency:      currency,
		newSession:    session.New,
	}
}

// CreateSession открывает Stripe Checkout на сумму плана. Суммы в плане
// в целых долларах, Stripe ждет центы.
func (g *StripeGateway) CreateSession(ctx context.Context, req SessionRequest) (Session, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(g.successURL),
		CancelURL:  stripe.String(g.cancelURL),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(g.currency),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(productName(req.Plan.Type)),
					},
					UnitAmount: stripe.Int64(int64(req.Plan.AmountPaid) * 100),
				},
				Quantity: stripe.Int64(1),
			},
		},
	}
	params.Context = ctx
	params.AddMetadata(MetaPlanType, string(req.Plan.Type))
	if req.SubscriptionID != nil {
		params.AddMetadata(MetaSubscriptionID, req.SubscriptionID.String())
	}
	if req.ListingID != "" {
		params.AddMetadata(MetaListingID, req.ListingID)
	}

	s, err := g.newSession(params)
	if err != nil {
		return Session{}, fmt.Errorf("payment: create checkout session: %w", err)
	}
	return Session{ID: s.ID, URL: s.URL}, nil
}

// ParseCompletedCheckout проверяет подпись и достает subscription_id из
// checkout.session.completed. Остальные события ErrIgnoredEvent.
func (g *StripeGateway) ParseCompletedCheckout(payload []byte, signature string) (uuid.UUID, error) {
	event, err := webhook.ConstructEvent(payload, signature, g.webhookSecret)
	if err != nil {
		return uuid.Nil, fmt.Errorf("payment: webhook signature verification failed: %w", err)
	}

	if event.Type != stripe.EventTypeCheckoutSessionCompleted {
		return uuid.Nil, ErrIgnoredEvent
	}

	var cs stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &cs); err != nil {
		return uuid.Nil, fmt.Errorf("payment: parse checkout session: %w", err)
	}

	raw, ok := cs.Metadata[MetaSubscriptionID]
	if !ok {
		// guest checkout, записи нет
		return uuid.Nil, ErrIgnoredEvent
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("payment: bad subscription_id %q: %w", raw, err)
	}
	return id, nil
}

func productName(p domain.PlanType) string {
	switch p {
	case domain.PlanQuarterly:
		return "Listing visibility, 3 months"
	default:
		return "Listing visibility, 1 month"
	}
}
