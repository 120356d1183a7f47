package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	models "github.com/chrisdamba/delaycompanion/internal"
	"github.com/jackc/pgx/v5"
)

const passengerColumns = `passenger_id, name, loyalty_tier, flight_id, seat, rebooking_history`

type PassengerRepository struct {
	db DBConn
}

func NewPassengerRepository(db DBConn) *PassengerRepository {
	return &PassengerRepository{db: db}
}

func (r *PassengerRepository) GetPassenger(ctx context.Context, passengerID string) (*models.Passenger, error) {
	query := `
        SELECT ` + passengerColumns + `
        FROM passengers
        WHERE passenger_id = $1
    `
	passenger, err := scanPassenger(r.db.QueryRow(ctx, query, passengerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrPassengerNotFound
		}
		return nil, storeError("fetching passenger", err)
	}
	return passenger, nil
}

func (r *PassengerRepository) ListPassengersByFlight(ctx context.Context, flightID string) ([]models.Passenger, error) {
	query := `
        SELECT ` + passengerColumns + `
        FROM passengers
        WHERE flight_id = $1
    `
	rows, err := r.db.Query(ctx, query, flightID)
	if err != nil {
		return nil, storeError("listing passengers by flight", err)
	}
	defer rows.Close()

	passengers := []models.Passenger{}
	for rows.Next() {
		passenger, err := scanPassenger(rows)
		if err != nil {
			return nil, storeError("scanning passenger", err)
		}
		passengers = append(passengers, *passenger)
	}
	if err = rows.Err(); err != nil {
		return nil, storeError("listing passengers by flight", err)
	}
	return passengers, nil
}

// RebookPassenger moves a passenger to newFlightID and appends one
// history event, as a single UPDATE. The event's old_flight_id is taken
// from the row itself under its row lock, so concurrent rebookings of the
// same passenger serialize at the store and each append one correctly
// chained event; an append is never lost. Not idempotent: identical calls
// append identical-looking events.
//
// seatPreference nil leaves the seat untouched; a non-nil value (empty
// string included) overwrites it.
func (r *PassengerRepository) RebookPassenger(ctx context.Context, passengerID, newFlightID string, seatPreference *string) (*models.Passenger, error) {
	query := `
        UPDATE passengers
        SET flight_id = $2,
            rebooking_history = COALESCE(rebooking_history, '[]'::jsonb) || jsonb_build_array(
                jsonb_build_object(
                    'timestamp', $3::timestamptz,
                    'old_flight_id', flight_id,
                    'new_flight_id', $2::text
                )
            )`
	args := []interface{}{passengerID, newFlightID, time.Now().UTC()}
	if seatPreference != nil {
		query += `,
            seat = $4`
		args = append(args, *seatPreference)
	}
	query += `
        WHERE passenger_id = $1
        RETURNING ` + passengerColumns

	passenger, err := scanPassenger(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrPassengerNotFound
		}
		return nil, storeError("rebooking passenger", err)
	}
	return passenger, nil
}

func scanPassenger(row pgx.Row) (*models.Passenger, error) {
	var p models.Passenger
	var loyalty *string
	var history []byte

	err := row.Scan(&p.PassengerID, &p.Name, &loyalty, &p.FlightID, &p.Seat, &history)
	if err != nil {
		return nil, err
	}

	if loyalty != nil {
		p.LoyaltyTier = *loyalty
	}
	p.RebookingHistory = []models.RebookingEvent{}
	if len(history) > 0 {
		if err := json.Unmarshal(history, &p.RebookingHistory); err != nil {
			return nil, err
		}
	}
	return &p, nil
}
