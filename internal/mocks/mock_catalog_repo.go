package mocks

import (
	"context"

	"github.com/HarishKumarG/BMS-project/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockCatalogRepo struct {
	mock.Mock
	domain.CatalogRepository
}

func (m *MockCatalogRepo) CreateTheatre(ctx context.Context, theatre *domain.Theatre) error {
	args := m.Called(ctx, theatre)
	return args.Error(0)
}

func (m *MockCatalogRepo) GetTheatre(ctx context.Context, id int) (*domain.Theatre, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Theatre), args.Error(1)
}

func (m *MockCatalogRepo) CreateScreen(ctx context.Context, screen *domain.Screen) error {
	args := m.Called(ctx, screen)
	return args.Error(0)
}

func (m *MockCatalogRepo) GetScreen(ctx context.Context, id int) (*domain.Screen, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Screen), args.Error(1)
}

func (m *MockCatalogRepo) CreateMovie(ctx context.Context, movie *domain.Movie) error {
	args := m.Called(ctx, movie)
	return args.Error(0)
}

func (m *MockCatalogRepo) GetMovie(ctx context.Context, id int) (*domain.Movie, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Movie), args.Error(1)
}

func (m *MockCatalogRepo) CreateShow(ctx context.Context, show *domain.Show, seats []domain.Seat) error {
	args := m.Called(ctx, show, seats)
	return args.Error(0)
}

func (m *MockCatalogRepo) GetShow(ctx context.Context, id int) (*domain.Show, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Show), args.Error(1)
}
