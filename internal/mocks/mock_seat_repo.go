package mocks

import (
	"context"

	"github.com/HarishKumarG/BMS-project/internal/domain"
)

type MockSeatRepo struct {
	GetSeatsByShowFunc func(ctx context.Context, showID int, booked bool) ([]domain.Seat, error)
}

func (m *MockSeatRepo) GetSeatsByShow(ctx context.Context, showID int, booked bool) ([]domain.Seat, error) {
	return m.GetSeatsByShowFunc(ctx, showID, booked)
}
