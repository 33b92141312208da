package mocks

import (
	"context"

	"github.com/HarishKumarG/BMS-project/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockBookingService struct {
	mock.Mock
}

func (m *MockBookingService) Book(ctx context.Context, req domain.BookingRequest) (*domain.Booking, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingService) GetBooking(ctx context.Context, id int) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingService) Cancel(ctx context.Context, bookingID int) (*domain.Booking, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingService) MarkBlocked(
	ctx context.Context,
	showID int,
	seatNumbers []string) (*domain.BlockResult, error) {

	args := m.Called(ctx, showID, seatNumbers)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BlockResult), args.Error(1)
}

func (m *MockBookingService) RemoveBlocked(
	ctx context.Context,
	showID int,
	seatNumbers []string) (*domain.UnblockResult, error) {

	args := m.Called(ctx, showID, seatNumbers)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UnblockResult), args.Error(1)
}
