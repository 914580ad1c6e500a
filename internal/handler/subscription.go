package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/mmoldabe-dev/ListingSubscriptions/docs"
	"github.com/mmoldabe-dev/ListingSubscriptions/internal/domain"
	"github.com/mmoldabe-dev/ListingSubscriptions/internal/metrics"
	"github.com/mmoldabe-dev/ListingSubscriptions/internal/middleware"
	"github.com/mmoldabe-dev/ListingSubscriptions/internal/payment"
	"github.com/mmoldabe-dev/ListingSubscriptions/internal/service"
)

const maxWebhookBody = 64 << 10

type WebhookParser interface {
	ParseCompletedCheckout(payload []byte, signature string) (uuid.UUID, error)
}

type HandlerSubscription struct {
	resolver service.StatusResolverInterface
	checkout service.CheckoutServiceInterface
	webhooks WebhookParser
	metrics  *metrics.Metrics
	log      *slog.Logger
}

func NewHandlerSubscription(
	resolver service.StatusResolverInterface,
	checkout service.CheckoutServiceInterface,
	webhooks WebhookParser,
	m *metrics.Metrics,
	log *slog.Logger,
) *HandlerSubscription {
	return &HandlerSubscription{
		resolver: resolver,
		checkout: checkout,
		webhooks: webhooks,
		metrics:  m,
		log:      log.With(slog.String("component", "delivery/http")),
	}
}

func (h *HandlerSubscription) SetupRouter() http.Handler {
	mux := http.NewServeMux()

	mux.Handle("POST /subscription-status", middleware.JSONMiddleware(http.HandlerFunc(h.subscriptionStatus)))
	mux.Handle("GET /subscription-status", middleware.JSONMiddleware(http.HandlerFunc(h.subscriptionStatus)))
	mux.Handle("POST /checkout-session", middleware.JSONMiddleware(http.HandlerFunc(h.createCheckoutSession)))
	mux.Handle("POST /webhooks/stripe", middleware.JSONMiddleware(http.HandlerFunc(h.stripeWebhook)))
	mux.Handle("GET /listings/{listingId}/subscriptions", middleware.JSONMiddleware(http.HandlerFunc(h.listingHistory)))
	mux.HandleFunc("OPTIONS /", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	if h.metrics != nil {
		mux.Handle("GET /metrics", h.metrics.Handler())
	}
	mux.Handle("GET /swagger/", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	return middleware.Chain(mux,
		middleware.RecoverMiddleware(h.log),
		middleware.LogginMiddleware(h.log, h.metrics),
		middleware.CORS,
	)
}

type statusRequest struct {
	ListingID string `json:"listingId"`
}

// subscriptionStatus godoc
// @Summary      Current subscription status of a listing
// @Tags         subscriptions
// @Accept       json
// @Produce      json
// @Param        request body statusRequest true "listing"
// @Success      200 {object} domain.StatusView
// @Failure      400 {object} errorResponse
// @Failure      500 {object} errorResponse
// @Router       /subscription-status [post]
func (h *HandlerSubscription) subscriptionStatus(w http.ResponseWriter, r *http.Request) {
	const op = "handler.subscriptionStatus"

	var req statusRequest
	if r.Method == http.MethodGet {
		req.ListingID = r.URL.Query().Get("listingId")
	} else if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		h.log.Error("failed to decode request body", slog.String("error", err.Error()))
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	res, err := h.resolver.Resolve(r.Context(), req.ListingID)
	if err != nil {
		h.writeServiceError(w, op, err)
		return
	}

	if res.WriteBack.Attempted {
		if res.WriteBack.Err != nil {
			h.log.Warn("failed to persist expired status",
				slog.String("op", op),
				slog.String("id", res.WriteBack.RecordID.String()),
				slog.String("error", res.WriteBack.Err.Error()),
			)
		}
		if h.metrics != nil {
			h.metrics.ObserveWriteBack(res.WriteBack.Err)
		}
	}
	if h.metrics != nil {
		h.metrics.ObserveResolution(string(res.View.Status))
	}

	writeJSON(w, http.StatusOK, res.View)
}

// createCheckoutSession godoc
// @Summary      Start a paid visibility checkout
// @Tags         checkout
// @Accept       json
// @Produce      json
// @Param        request body domain.CheckoutRequest true "checkout"
// @Success      200 {object} domain.CheckoutResult
// @Failure      400 {object} errorResponse
// @Failure      500 {object} errorResponse
// @Router       /checkout-session [post]
func (h *HandlerSubscription) createCheckoutSession(w http.ResponseWriter, r *http.Request) {
	const op = "handler.createCheckoutSession"

	var req domain.CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Error("failed to decode request body", slog.String("error", err.Error()))
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	res, err := h.checkout.Start(r.Context(), req)
	if h.metrics != nil {
		h.metrics.ObserveCheckout(string(req.PlanType), err)
	}
	if err != nil {
		h.writeServiceError(w, op, err)
		return
	}

	writeJSON(w, http.StatusOK, res)
}

// stripeWebhook godoc
// @Summary      Stripe payment confirmation
// @Tags         checkout
// @Produce      json
// @Success      200
// @Failure      400 {object} errorResponse
// @Router       /webhooks/stripe [post]
func (h *HandlerSubscription) stripeWebhook(w http.ResponseWriter, r *http.Request) {
	const op = "handler.stripeWebhook"

	payload, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	id, err := h.webhooks.ParseCompletedCheckout(payload, r.Header.Get("Stripe-Signature"))
	if errors.Is(err, payment.ErrIgnoredEvent) {
		writeJSON(w, http.StatusOK, map[string]bool{"received": true})
		return
	}
	if err != nil {
		h.log.Warn("rejected webhook", slog.String("op", op), slog.String("error", err.Error()))
		writeError(w, http.StatusBadRequest, "invalid webhook")
		return
	}

	if err := h.checkout.Confirm(r.Context(), id); err != nil {
		if errors.Is(err, domain.ErrInvalidArgument) {
			// повтор не поможет, stripe не должен ретраить
			h.log.Warn("webhook for non pending subscription",
				slog.String("id", id.String()), slog.String("error", err.Error()))
			writeJSON(w, http.StatusOK, map[string]bool{"received": true})
			return
		}
		h.writeServiceError(w, op, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"received": true})
}

// listingHistory godoc
// @Summary      Subscription history of a listing, newest first
// @Tags         subscriptions
// @Produce      json
// @Param        listingId path string true "listing id"
// @Param        limit query int false "limit"
// @Param        offset query int false "offset"
// @Success      200 {array} domain.SubscriptionRecord
// @Failure      400 {object} errorResponse
// @Router       /listings/{listingId}/subscriptions [get]
func (h *HandlerSubscription) listingHistory(w http.ResponseWriter, r *http.Request) {
	const op = "handler.listingHistory"

	subs, err := h.checkout.History(r.Context(), r.PathValue("listingId"), queryInt(r, "limit", 10), queryInt(r, "offset", 0))
	if err != nil {
		h.writeServiceError(w, op, err)
		return
	}

	writeJSON(w, http.StatusOK, subs)
}
