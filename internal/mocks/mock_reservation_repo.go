package mocks

import (
	"context"

	"github.com/GitJaack/MoviieBooker/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockReservationRepo struct {
	mock.Mock
	domain.ReservationRepository
}

func (m *MockReservationRepo) Create(ctx context.Context, reservation *domain.Reservation) error {
	args := m.Called(ctx, reservation)
	return args.Error(0)
}

func (m *MockReservationRepo) GetAllByUserId(ctx context.Context, userId int) ([]domain.Reservation, error) {
	args := m.Called(ctx, userId)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Reservation), args.Error(1)
}

func (m *MockReservationRepo) DeleteByIdAndUserId(ctx context.Context, reservationId, userId int) error {
	args := m.Called(ctx, reservationId, userId)
	return args.Error(0)
}
