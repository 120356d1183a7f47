package service

import (
	"context"
	"errors"
	"time"

	models "github.com/chrisdamba/delaycompanion/internal"
	"github.com/chrisdamba/delaycompanion/internal/metrics"
	"github.com/chrisdamba/delaycompanion/internal/ports"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type assistService struct {
	flights    ports.FlightRepository
	passengers ports.PassengerRepository
	log        *zap.SugaredLogger
	metrics    *metrics.Metrics
}

func NewAssistService(flights ports.FlightRepository, passengers ports.PassengerRepository, log *zap.SugaredLogger, m *metrics.Metrics) *assistService {
	return &assistService{
		flights:    flights,
		passengers: passengers,
		log:        log,
		metrics:    m,
	}
}

func (s *assistService) GetFlight(ctx context.Context, flightID string) (*models.Flight, error) {
	return s.flights.GetFlight(ctx, flightID)
}

func (s *assistService) ListDelayedFlights(ctx context.Context) ([]models.Flight, error) {
	return s.flights.ListDelayedFlights(ctx)
}

func (s *assistService) GetRebookingOptions(ctx context.Context, flightID string) ([]models.RebookingOption, error) {
	return s.flights.GetRebookingOptions(ctx, flightID)
}

func (s *assistService) GetPassenger(ctx context.Context, passengerID string) (*models.Passenger, error) {
	return s.passengers.GetPassenger(ctx, passengerID)
}

func (s *assistService) ListPassengersByFlight(ctx context.Context, flightID string) ([]models.Passenger, error) {
	return s.passengers.ListPassengersByFlight(ctx, flightID)
}

// RebookPassenger moves the passenger and records the history event, then
// fetches the target flight for confirmation details. The confirmation
// read is not part of the atomic update and may observe a flight that has
// itself changed since. Retrying after a store fault can append a second
// history event; callers that retry need their own idempotency handling.
func (s *assistService) RebookPassenger(ctx context.Context, passengerID string, req *models.RebookRequest) (*models.RebookResponse, error) {
	// Confirm the record exists before mutating anything.
	current, err := s.passengers.GetPassenger(ctx, passengerID)
	if err != nil {
		return nil, err
	}

	passenger, err := s.passengers.RebookPassenger(ctx, passengerID, req.NewFlightID, req.SeatPreference)
	if err != nil {
		return nil, err
	}

	s.metrics.RebookingsTotal.Inc()
	s.log.Infow("passenger rebooked",
		"passenger_id", passenger.PassengerID,
		"old_flight_id", current.FlightID,
		"new_flight_id", passenger.FlightID,
	)

	flight, err := s.flights.GetFlight(ctx, passenger.FlightID)
	if err != nil {
		if !errors.Is(err, models.ErrFlightNotFound) {
			return nil, err
		}
		// The update has been applied; a rebooking target is a
		// reference, not necessarily a full flight record.
		s.log.Warnw("rebooked onto unresolved flight record",
			"passenger_id", passenger.PassengerID,
			"flight_id", passenger.FlightID,
		)
		flight = nil
	}

	return &models.RebookResponse{Passenger: *passenger, Flight: flight}, nil
}

// BuildHandoffContext snapshots one passenger and their current flight
// for call-center handoff. The two reads are independent and take no
// locks; a rebooking landing between them can produce a context for a
// flight the passenger has already left. That staleness window is a
// product decision, not something to patch with a transaction here.
func (s *assistService) BuildHandoffContext(ctx context.Context, passengerID string) (*models.HandoffContext, error) {
	passenger, err := s.passengers.GetPassenger(ctx, passengerID)
	if err != nil {
		return nil, err
	}

	flight, err := s.flights.GetFlight(ctx, passenger.FlightID)
	if err != nil {
		if errors.Is(err, models.ErrFlightNotFound) {
			// Dangling flight reference is a data problem, not a crash.
			s.log.Warnw("passenger references missing flight",
				"passenger_id", passenger.PassengerID,
				"flight_id", passenger.FlightID,
			)
		}
		return nil, err
	}

	s.metrics.HandoffsTotal.Inc()

	return &models.HandoffContext{
		ContextID: uuid.New(),
		Passenger: models.HandoffPassenger{
			ID:          passenger.PassengerID,
			Name:        passenger.Name,
			LoyaltyTier: passenger.LoyaltyTier,
			Seat:        passenger.Seat,
		},
		Flight: models.HandoffFlight{
			ID:                 flight.FlightID,
			Number:             flight.FlightNumber,
			Airline:            flight.Airline,
			Origin:             flight.Origin,
			Destination:        flight.Destination,
			ScheduledDeparture: flight.ScheduledDeparture,
			ScheduledArrival:   flight.ScheduledArrival,
			Status:             flight.Status,
			DelayMinutes:       flight.DelayMinutes,
			DelayReason:        flight.DelayReason,
			Gate:               flight.Gate,
			Terminal:           flight.Terminal,
		},
		RebookingHistory: passenger.RebookingHistory,
		GeneratedAt:      time.Now().UTC(),
	}, nil
}
