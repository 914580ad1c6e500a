package service

import (
	"context"
	"io"
	"log/slog"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/mmoldabe-dev/ListingSubscriptions/internal/domain"
	"github.com/mmoldabe-dev/ListingSubscriptions/internal/payment"
)

type MockSubscriptionRepo struct {
	mock.Mock
}

func (m *MockSubscriptionRepo) Create(ctx context.Context, rec domain.SubscriptionRecord) (uuid.UUID, error) {
	args := m.Called(ctx, rec)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockSubscriptionRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.SubscriptionRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SubscriptionRecord), args.Error(1)
}

func (m *MockSubscriptionRepo) QueryMostRecent(ctx context.Context, listingID string) (*domain.SubscriptionRecord, error) {
	args := m.Called(ctx, listingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SubscriptionRecord), args.Error(1)
}

func (m *MockSubscriptionRepo) ListByListing(ctx context.Context, listingID string, limit, offset int) ([]domain.SubscriptionRecord, error) {
	args := m.Called(ctx, listingID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SubscriptionRecord), args.Error(1)
}

func (m *MockSubscriptionRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.StoredStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) CreateSession(ctx context.Context, req payment.SessionRequest) (payment.Session, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(payment.Session), args.Error(1)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
