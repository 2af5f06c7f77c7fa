package handler

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/iliyamo/outdoor-rental/internal/model"
	"github.com/iliyamo/outdoor-rental/internal/service"
)

type mockEngine struct{ mock.Mock }

func (m *mockEngine) CheckConflicts(ctx context.Context, outdoorID uint64, start, end model.Date) ([]model.Reservation, error) {
	args := m.Called(ctx, outdoorID, start, end)
	rs, _ := args.Get(0).([]model.Reservation)
	return rs, args.Error(1)
}

func (m *mockEngine) CreateReservation(ctx context.Context, in service.ReservationInput) (*model.ReservationReceipt, error) {
	args := m.Called(ctx, in)
	r, _ := args.Get(0).(*model.ReservationReceipt)
	return r, args.Error(1)
}

func (m *mockEngine) CancelReservation(ctx context.Context, id uint64) (*model.Reservation, error) {
	args := m.Called(ctx, id)
	r, _ := args.Get(0).(*model.Reservation)
	return r, args.Error(1)
}

func (m *mockEngine) AvailableDates(ctx context.Context, outdoorID uint64, start, end model.Date) (*model.AvailableDates, error) {
	args := m.Called(ctx, outdoorID, start, end)
	r, _ := args.Get(0).(*model.AvailableDates)
	return r, args.Error(1)
}

func (m *mockEngine) OccupancyReport(ctx context.Context, start, end model.Date) (*model.OccupancyReport, error) {
	args := m.Called(ctx, start, end)
	r, _ := args.Get(0).(*model.OccupancyReport)
	return r, args.Error(1)
}

func (m *mockEngine) ListByPeriod(ctx context.Context, start, end model.Date) ([]model.ReservationDetail, error) {
	args := m.Called(ctx, start, end)
	r, _ := args.Get(0).([]model.ReservationDetail)
	return r, args.Error(1)
}

func (m *mockEngine) ListByOutdoor(ctx context.Context, outdoorID uint64) ([]model.Reservation, error) {
	args := m.Called(ctx, outdoorID)
	r, _ := args.Get(0).([]model.Reservation)
	return r, args.Error(1)
}

func (m *mockEngine) PublicCatalog(ctx context.Context, start, end model.Date) ([]model.OutdoorAvailability, error) {
	args := m.Called(ctx, start, end)
	r, _ := args.Get(0).([]model.OutdoorAvailability)
	return r, args.Error(1)
}

type mockRegistry struct{ mock.Mock }

func (m *mockRegistry) List(ctx context.Context, f model.OutdoorFilter) ([]model.Outdoor, error) {
	args := m.Called(ctx, f)
	r, _ := args.Get(0).([]model.Outdoor)
	return r, args.Error(1)
}

func (m *mockRegistry) Get(ctx context.Context, id uint64) (*model.Outdoor, error) {
	args := m.Called(ctx, id)
	r, _ := args.Get(0).(*model.Outdoor)
	return r, args.Error(1)
}

func (m *mockRegistry) Create(ctx context.Context, in service.OutdoorInput) (*model.Outdoor, error) {
	args := m.Called(ctx, in)
	r, _ := args.Get(0).(*model.Outdoor)
	return r, args.Error(1)
}

func (m *mockRegistry) Update(ctx context.Context, id uint64, in service.OutdoorInput) (*model.Outdoor, error) {
	args := m.Called(ctx, id, in)
	r, _ := args.Get(0).(*model.Outdoor)
	return r, args.Error(1)
}

func (m *mockRegistry) Delete(ctx context.Context, id uint64) error {
	return m.Called(ctx, id).Error(0)
}

type mockUsers struct{ mock.Mock }

func (m *mockUsers) Create(ctx context.Context, email, passwordHash, name, role string) (uint64, error) {
	args := m.Called(ctx, email, passwordHash, name, role)
	return args.Get(0).(uint64), args.Error(1)
}

func (m *mockUsers) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	r, _ := args.Get(0).(*model.User)
	return r, args.Error(1)
}

func (m *mockUsers) GetByID(ctx context.Context, id uint64) (*model.User, error) {
	args := m.Called(ctx, id)
	r, _ := args.Get(0).(*model.User)
	return r, args.Error(1)
}

type mockTokens struct{ mock.Mock }

func (m *mockTokens) StoreRefresh(ctx context.Context, userID uint64, tokenHash string, exp time.Time) error {
	return m.Called(ctx, userID, tokenHash, exp).Error(0)
}

func (m *mockTokens) ValidateRefresh(ctx context.Context, tokenHash string) (uint64, error) {
	args := m.Called(ctx, tokenHash)
	return args.Get(0).(uint64), args.Error(1)
}

func (m *mockTokens) RevokeByHash(ctx context.Context, tokenHash string) error {
	return m.Called(ctx, tokenHash).Error(0)
}

func (m *mockTokens) RevokeAllForUser(ctx context.Context, userID uint64) error {
	return m.Called(ctx, userID).Error(0)
}
