package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	models "github.com/chrisdamba/delaycompanion/internal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type DBConn interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error)
}

const flightColumns = `flight_id, flight_number, airline, origin, destination, status,
            scheduled_departure, scheduled_arrival, actual_departure,
            delay_minutes, delay_reason, gate, terminal, rebooking_options`

type FlightRepository struct {
	db DBConn
}

func NewFlightRepository(db DBConn) *FlightRepository {
	return &FlightRepository{db: db}
}

func (r *FlightRepository) GetFlight(ctx context.Context, flightID string) (*models.Flight, error) {
	query := `
        SELECT ` + flightColumns + `
        FROM flights
        WHERE flight_id = $1
    `
	flight, err := scanFlight(r.db.QueryRow(ctx, query, flightID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrFlightNotFound
		}
		return nil, storeError("fetching flight", err)
	}
	return flight, nil
}

// ListDelayedFlights returns every flight currently marked Delayed, in
// store-scan order. Callers must not depend on the ordering.
func (r *FlightRepository) ListDelayedFlights(ctx context.Context) ([]models.Flight, error) {
	query := `
        SELECT ` + flightColumns + `
        FROM flights
        WHERE status = $1
    `
	rows, err := r.db.Query(ctx, query, string(models.StatusDelayed))
	if err != nil {
		return nil, storeError("listing delayed flights", err)
	}
	defer rows.Close()

	flights := []models.Flight{}
	for rows.Next() {
		flight, err := scanFlight(rows)
		if err != nil {
			return nil, storeError("scanning delayed flight", err)
		}
		flights = append(flights, *flight)
	}
	if err = rows.Err(); err != nil {
		return nil, storeError("listing delayed flights", err)
	}
	return flights, nil
}

// GetRebookingOptions returns the ordered options for a flight. A missing
// flight yields an empty slice, not an error; callers that need to tell
// the two cases apart call GetFlight first.
func (r *FlightRepository) GetRebookingOptions(ctx context.Context, flightID string) ([]models.RebookingOption, error) {
	query := `
        SELECT rebooking_options
        FROM flights
        WHERE flight_id = $1
    `
	var raw []byte
	err := r.db.QueryRow(ctx, query, flightID).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []models.RebookingOption{}, nil
		}
		return nil, storeError("fetching rebooking options", err)
	}

	options := []models.RebookingOption{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &options); err != nil {
			return nil, storeError("decoding rebooking options", err)
		}
	}
	return options, nil
}

func scanFlight(row pgx.Row) (*models.Flight, error) {
	var f models.Flight
	var status string
	var delayMinutes *int
	var delayReason, gate, terminal *string
	var options []byte

	err := row.Scan(
		&f.FlightID, &f.FlightNumber, &f.Airline, &f.Origin, &f.Destination, &status,
		&f.ScheduledDeparture, &f.ScheduledArrival, &f.ActualDeparture,
		&delayMinutes, &delayReason, &gate, &terminal, &options,
	)
	if err != nil {
		return nil, err
	}

	f.Status = models.FlightStatus(status)
	if delayMinutes != nil {
		f.DelayMinutes = *delayMinutes
	}
	if delayReason != nil {
		f.DelayReason = models.DelayReason(*delayReason)
	}
	if gate != nil {
		f.Gate = *gate
	}
	if terminal != nil {
		f.Terminal = *terminal
	}
	if len(options) > 0 {
		if err := json.Unmarshal(options, &f.RebookingOptions); err != nil {
			return nil, fmt.Errorf("decoding rebooking options: %w", err)
		}
	}
	return &f, nil
}

// storeError keeps models.ErrStoreUnavailable in the chain so callers can
// branch with errors.Is while still seeing the driver failure.
func storeError(op string, err error) error {
	return fmt.Errorf("%s: %w: %v", op, models.ErrStoreUnavailable, err)
}
