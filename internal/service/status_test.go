package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mmoldabe-dev/ListingSubscriptions/internal/clock"
	"github.com/mmoldabe-dev/ListingSubscriptions/internal/domain"
)

func newRecord(listingID string, status domain.StoredStatus, end time.Time) *domain.SubscriptionRecord {
	return &domain.SubscriptionRecord{
		ID:               uuid.New(),
		ListingID:        listingID,
		OwnerID:          uuid.New(),
		StartDate:        end.AddDate(0, 0, -30),
		EndDate:          end,
		PlanType:         domain.PlanMonthly,
		AmountPaid:       100,
		Status:           status,
		BillingCycleDays: 30,
	}
}

func TestResolveNoRecord(t *testing.T) {
	repo := new(MockSubscriptionRepo)
	listingID := "listing-" + uuid.NewString()
	repo.On("QueryMostRecent", mock.Anything, listingID).Return(nil, nil)

	r := NewStatusResolver(repo, clock.Fixed(time.Now()), discardLogger())
	res, err := r.Resolve(context.Background(), listingID)

	require.NoError(t, err)
	assert.Equal(t, domain.NoneView(), res.View)
	assert.False(t, res.WriteBack.Attempted)
	repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestResolveActiveInWindow(t *testing.T) {
	repo := new(MockSubscriptionRepo)
	listingID := "listing-" + uuid.NewString()
	rec := newRecord(listingID, domain.StoredActive, date(2024, 1, 10))
	repo.On("QueryMostRecent", mock.Anything, listingID).Return(rec, nil)

	r := NewStatusResolver(repo, clock.Fixed(time.Date(2024, 1, 8, 10, 0, 0, 0, time.UTC)), discardLogger())
	res, err := r.Resolve(context.Background(), listingID)

	require.NoError(t, err)
	assert.Equal(t, domain.ViewActive, res.View.Status)
	assert.Equal(t, 2, res.View.DaysRemaining)
	require.NotNil(t, res.View.EndDate)
	assert.Equal(t, "2024-01-10", *res.View.EndDate)
	assert.Equal(t, "2023-12-11", *res.View.StartDate)
	assert.Equal(t, domain.PlanMonthly, *res.View.PlanType)
	assert.Equal(t, 100, *res.View.AmountPaid)
	assert.False(t, res.WriteBack.Attempted)
	repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestResolveActivePastWindowWritesBack(t *testing.T) {
	repo := new(MockSubscriptionRepo)
	listingID := "listing-" + uuid.NewString()
	rec := newRecord(listingID, domain.StoredActive, date(2024, 1, 5))
	repo.On("QueryMostRecent", mock.Anything, listingID).Return(rec, nil)
	repo.On("UpdateStatus", mock.Anything, rec.ID, domain.StoredExpired).Return(nil).Once()

	r := NewStatusResolver(repo, clock.Fixed(date(2024, 1, 8)), discardLogger())
	res, err := r.Resolve(context.Background(), listingID)

	require.NoError(t, err)
	assert.Equal(t, domain.ViewExpired, res.View.Status)
	assert.Equal(t, 0, res.View.DaysRemaining)
	assert.True(t, res.WriteBack.Attempted)
	assert.Equal(t, rec.ID, res.WriteBack.RecordID)
	assert.NoError(t, res.WriteBack.Err)
	repo.AssertExpectations(t)
}

func TestResolveWriteBackFailureIsReportedNotReturned(t *testing.T) {
	repo := new(MockSubscriptionRepo)
	listingID := "listing-" + uuid.NewString()
	rec := newRecord(listingID, domain.StoredActive, date(2024, 1, 5))
	repo.On("QueryMostRecent", mock.Anything, listingID).Return(rec, nil)
	repo.On("UpdateStatus", mock.Anything, rec.ID, domain.StoredExpired).Return(errors.New("read only"))

	r := NewStatusResolver(repo, clock.Fixed(date(2024, 1, 8)), discardLogger())
	res, err := r.Resolve(context.Background(), listingID)

	require.NoError(t, err)
	assert.Equal(t, domain.ViewExpired, res.View.Status)
	assert.True(t, res.WriteBack.Attempted)
	assert.Error(t, res.WriteBack.Err)
}

func TestResolveIsIdempotentAfterExpiry(t *testing.T) {
	repo := new(MockSubscriptionRepo)
	listingID := "listing-" + uuid.NewString()
	rec := newRecord(listingID, domain.StoredActive, date(2024, 1, 5))
	repo.On("QueryMostRecent", mock.Anything, listingID).Return(rec, nil)
	repo.On("UpdateStatus", mock.Anything, rec.ID, domain.StoredExpired).
		Run(func(args mock.Arguments) { rec.Status = domain.StoredExpired }).
		Return(nil).Once()

	r := NewStatusResolver(repo, clock.Fixed(date(2024, 1, 8)), discardLogger())

	first, err := r.Resolve(context.Background(), listingID)
	require.NoError(t, err)
	second, err := r.Resolve(context.Background(), listingID)
	require.NoError(t, err)

	assert.Equal(t, first.View, second.View)
	assert.True(t, first.WriteBack.Attempted)
	assert.False(t, second.WriteBack.Attempted)
	repo.AssertExpectations(t)
}

func TestResolveCancelledIsAlwaysExpired(t *testing.T) {
	repo := new(MockSubscriptionRepo)
	listingID := "listing-" + uuid.NewString()
	rec := newRecord(listingID, domain.StoredCancelled, date(2030, 1, 1))
	repo.On("QueryMostRecent", mock.Anything, listingID).Return(rec, nil)

	r := NewStatusResolver(repo, clock.Fixed(date(2024, 1, 8)), discardLogger())
	res, err := r.Resolve(context.Background(), listingID)

	require.NoError(t, err)
	assert.Equal(t, domain.ViewExpired, res.View.Status)
	assert.False(t, res.WriteBack.Attempted)
}

func TestResolveStoreFailure(t *testing.T) {
	repo := new(MockSubscriptionRepo)
	listingID := "listing-" + uuid.NewString()
	repo.On("QueryMostRecent", mock.Anything, listingID).Return(nil, errors.New("connection reset"))

	r := NewStatusResolver(repo, clock.Fixed(time.Now()), discardLogger())
	_, err := r.Resolve(context.Background(), listingID)

	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
}

func TestResolveInvalidListingID(t *testing.T) {
	repo := new(MockSubscriptionRepo)
	r := NewStatusResolver(repo, clock.Fixed(time.Now()), discardLogger())

	for _, id := range []string{"", "   ", "\t\n"} {
		_, err := r.Resolve(context.Background(), id)
		assert.ErrorIs(t, err, domain.ErrInvalidArgument, id)
	}
	repo.AssertNotCalled(t, "QueryMostRecent", mock.Anything, mock.Anything)
}

func TestResolveOpaqueListingIDWithoutRecord(t *testing.T) {
	repo := new(MockSubscriptionRepo)
	repo.On("QueryMostRecent", mock.Anything, "L1").Return(nil, nil)

	r := NewStatusResolver(repo, clock.Fixed(date(2024, 1, 8)), discardLogger())
	res, err := r.Resolve(context.Background(), " L1 ")

	require.NoError(t, err)
	assert.Equal(t, domain.NoneView(), res.View)
	assert.False(t, res.WriteBack.Attempted)
	repo.AssertExpectations(t)
	repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestResolveActiveOnEndDateStaysActive(t *testing.T) {
	repo := new(MockSubscriptionRepo)
	rec := newRecord("L1", domain.StoredActive, date(2024, 1, 10))
	repo.On("QueryMostRecent", mock.Anything, "L1").Return(rec, nil)

	r := NewStatusResolver(repo, clock.Fixed(time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)), discardLogger())
	res, err := r.Resolve(context.Background(), "L1")

	require.NoError(t, err)
	assert.Equal(t, domain.ViewActive, res.View.Status)
	assert.Equal(t, 1, res.View.DaysRemaining)
	assert.False(t, res.WriteBack.Attempted)
	repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}
