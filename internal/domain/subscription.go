package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const DateLayout = "2006-01-02"

type PlanType string

const (
	PlanMonthly   PlanType = "monthly"
	PlanQuarterly PlanType = "quarterly"
)

// Plan цена в целых долларах и длина оплаченного окна
type Plan struct {
	Type             PlanType
	AmountPaid       int
	BillingCycleDays int
}

var plans = map[PlanType]Plan{
	PlanMonthly:   {Type: PlanMonthly, AmountPaid: 100, BillingCycleDays: 30},
	PlanQuarterly: {Type: PlanQuarterly, AmountPaid: 175, BillingCycleDays: 90},
}

func LookupPlan(t PlanType) (Plan, bool) {
	p, ok := plans[t]
	return p, ok
}

// StoredStatus то что лежит в таблице
type StoredStatus string

const (
	StoredPending   StoredStatus = "pending"
	StoredActive    StoredStatus = "active"
	StoredCancelled StoredStatus = "cancelled"
	StoredExpired   StoredStatus = "expired"
)

func (s StoredStatus) Valid() bool {
	switch s {
	case StoredPending, StoredActive, StoredCancelled, StoredExpired:
		return true
	}
	return false
}

// ViewStatus то что отдаем наружу
type ViewStatus string

const (
	ViewNone    ViewStatus = "none"
	ViewActive  ViewStatus = "active"
	ViewExpired ViewStatus = "expired"
)

type SubscriptionRecord struct {
	ID               uuid.UUID    `json:"id" db:"id"`
	ListingID        string       `json:"listing_id" db:"listing_id"`
	OwnerID          uuid.UUID    `json:"owner_id" db:"owner_id"`
	StartDate        time.Time    `json:"start_date" db:"start_date"`
	EndDate          time.Time    `json:"end_date" db:"end_date"`
	PlanType         PlanType     `json:"plan_type" db:"plan_type"`
	AmountPaid       int          `json:"amount_paid" db:"amount_paid"`
	Status           StoredStatus `json:"status" db:"status"`
	Recurring        bool         `json:"recurring" db:"recurring"`
	BillingCycleDays int          `json:"billing_cycle_days" db:"billing_cycle_days"`
	CreatedAt        time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time    `json:"updated_at" db:"updated_at"`
}

// StatusView ответ subscription-status. Для none заполнены только
// status и days_remaining.
type StatusView struct {
	Status        ViewStatus `json:"status"`
	StartDate     *string    `json:"start_date,omitempty"`
	EndDate       *string    `json:"end_date,omitempty"`
	DaysRemaining int        `json:"days_remaining"`
	PlanType      *PlanType  `json:"plan_type,omitempty"`
	AmountPaid    *int       `json:"amount_paid,omitempty"`
}

func NoneView() StatusView {
	return StatusView{Status: ViewNone, DaysRemaining: 0}
}

type CheckoutRequest struct {
	ListingID string     `json:"listingId,omitempty"`
	OwnerID   *uuid.UUID `json:"ownerId,omitempty"`
	PlanType  PlanType   `json:"planType"`
	Recurring bool       `json:"recurring"`
}

// Guest checkout без объявления, запись не создаем
func (r CheckoutRequest) Guest() bool {
	return strings.TrimSpace(r.ListingID) == ""
}

type CheckoutResult struct {
	SessionID      string     `json:"sessionId"`
	URL            string     `json:"url"`
	SubscriptionID *uuid.UUID `json:"subscriptionId,omitempty"`
}
