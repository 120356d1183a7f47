package ports

import (
	"context"

	models "github.com/chrisdamba/delaycompanion/internal"
)

type FlightRepository interface {
	GetFlight(ctx context.Context, flightID string) (*models.Flight, error)
	ListDelayedFlights(ctx context.Context) ([]models.Flight, error)
	GetRebookingOptions(ctx context.Context, flightID string) ([]models.RebookingOption, error)
}

type PassengerRepository interface {
	GetPassenger(ctx context.Context, passengerID string) (*models.Passenger, error)
	ListPassengersByFlight(ctx context.Context, flightID string) ([]models.Passenger, error)
	RebookPassenger(ctx context.Context, passengerID, newFlightID string, seatPreference *string) (*models.Passenger, error)
}

type AssistService interface {
	GetFlight(ctx context.Context, flightID string) (*models.Flight, error)
	ListDelayedFlights(ctx context.Context) ([]models.Flight, error)
	GetRebookingOptions(ctx context.Context, flightID string) ([]models.RebookingOption, error)
	GetPassenger(ctx context.Context, passengerID string) (*models.Passenger, error)
	ListPassengersByFlight(ctx context.Context, flightID string) ([]models.Passenger, error)
	RebookPassenger(ctx context.Context, passengerID string, req *models.RebookRequest) (*models.RebookResponse, error)
	BuildHandoffContext(ctx context.Context, passengerID string) (*models.HandoffContext, error)
}
