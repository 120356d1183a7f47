package mocks

import (
	"context"

	models "github.com/chrisdamba/delaycompanion/internal"
	"github.com/stretchr/testify/mock"
)

type MockAssistService struct {
	mock.Mock
}

func (m *MockAssistService) GetFlight(ctx context.Context, flightID string) (*models.Flight, error) {
	args := m.Called(ctx, flightID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Flight), args.Error(1)
}

func (m *MockAssistService) ListDelayedFlights(ctx context.Context) ([]models.Flight, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Flight), args.Error(1)
}

func (m *MockAssistService) GetRebookingOptions(ctx context.Context, flightID string) ([]models.RebookingOption, error) {
	args := m.Called(ctx, flightID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.RebookingOption), args.Error(1)
}

func (m *MockAssistService) GetPassenger(ctx context.Context, passengerID string) (*models.Passenger, error) {
	args := m.Called(ctx, passengerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Passenger), args.Error(1)
}

func (m *MockAssistService) ListPassengersByFlight(ctx context.Context, flightID string) ([]models.Passenger, error) {
	args := m.Called(ctx, flightID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Passenger), args.Error(1)
}

func (m *MockAssistService) RebookPassenger(ctx context.Context, passengerID string, req *models.RebookRequest) (*models.RebookResponse, error) {
	args := m.Called(ctx, passengerID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RebookResponse), args.Error(1)
}

func (m *MockAssistService) BuildHandoffContext(ctx context.Context, passengerID string) (*models.HandoffContext, error) {
	args := m.Called(ctx, passengerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.HandoffContext), args.Error(1)
}
