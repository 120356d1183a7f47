package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	models "github.com/chrisdamba/delaycompanion/internal"
	"github.com/chrisdamba/delaycompanion/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var flightCols = []string{
	"flight_id", "flight_number", "airline", "origin", "destination", "status",
	"scheduled_departure", "scheduled_arrival", "actual_departure",
	"delay_minutes", "delay_reason", "gate", "terminal", "rebooking_options",
}

func setupFlightRepo(t *testing.T) (pgxmock.PgxPoolIface, *repository.FlightRepository) {
	mockDb, err := pgxmock.NewPool()
	require.NoError(t, err)
	return mockDb, repository.NewFlightRepository(mockDb)
}

func intPtr(n int) *int              { return &n }
func strPtr(s string) *string        { return &s }
func timePtr(t time.Time) *time.Time { return &t }

func TestGetFlight(t *testing.T) {
	scheduledDep := time.Date(2025, 6, 10, 14, 30, 0, 0, time.UTC)
	scheduledArr := time.Date(2025, 6, 10, 17, 45, 0, 0, time.UTC)
	actualDep := time.Date(2025, 6, 10, 16, 15, 0, 0, time.UTC)

	t.Run("delayed flight with options", func(t *testing.T) {
		mockDb, repo := setupFlightRepo(t)
		defer mockDb.Close()

		options := []byte(`[{"flight_id":"F200","flight_number":"DL512","departure":"2025-06-10T18:00:00Z","arrival":"2025-06-10T21:10:00Z","original_departure":"2025-06-10T14:30:00Z"}]`)

		mockDb.ExpectQuery(`(?s)SELECT.+FROM flights.+WHERE flight_id = \$1`).
			WithArgs("F100").
			WillReturnRows(pgxmock.NewRows(flightCols).AddRow(
				"F100", "DL490", "Delta", "ATL", "JFK", "Delayed",
				scheduledDep, scheduledArr, timePtr(actualDep),
				intPtr(105), strPtr("Weather"), strPtr("B12"), strPtr("T2"), options,
			))

		flight, err := repo.GetFlight(context.Background(), "F100")
		require.NoError(t, err)
		assert.Equal(t, "F100", flight.FlightID)
		assert.Equal(t, models.StatusDelayed, flight.Status)
		assert.True(t, flight.IsDelayed())
		assert.Equal(t, 105, flight.DelayMinutes)
		assert.Equal(t, models.ReasonWeather, flight.DelayReason)
		require.NotNil(t, flight.ActualDeparture)
		assert.Equal(t, actualDep, *flight.ActualDeparture)
		require.Len(t, flight.RebookingOptions, 1)
		assert.Equal(t, "F200", flight.RebookingOptions[0].FlightID)
		require.NotNil(t, flight.RebookingOptions[0].OriginalDeparture)

		assert.NoError(t, mockDb.ExpectationsWereMet())
	})

	t.Run("on-time flight with null delay fields", func(t *testing.T) {
		mockDb, repo := setupFlightRepo(t)
		defer mockDb.Close()

		mockDb.ExpectQuery(`(?s)SELECT.+FROM flights.+WHERE flight_id = \$1`).
			WithArgs("F200").
			WillReturnRows(pgxmock.NewRows(flightCols).AddRow(
				"F200", "DL512", "Delta", "ATL", "JFK", "OnTime",
				scheduledDep, scheduledArr, nil,
				nil, nil, strPtr("B9"), strPtr("T2"), []byte(`[]`),
			))

		flight, err := repo.GetFlight(context.Background(), "F200")
		require.NoError(t, err)
		assert.Equal(t, models.StatusOnTime, flight.Status)
		assert.False(t, flight.IsDelayed())
		assert.Zero(t, flight.DelayMinutes)
		assert.Nil(t, flight.ActualDeparture)
		assert.Empty(t, flight.RebookingOptions)

		assert.NoError(t, mockDb.ExpectationsWereMet())
	})

	t.Run("missing flight is a typed absence", func(t *testing.T) {
		mockDb, repo := setupFlightRepo(t)
		defer mockDb.Close()

		mockDb.ExpectQuery(`(?s)SELECT.+FROM flights.+WHERE flight_id = \$1`).
			WithArgs("does-not-exist").
			WillReturnError(pgx.ErrNoRows)

		flight, err := repo.GetFlight(context.Background(), "does-not-exist")
		assert.Nil(t, flight)
		assert.ErrorIs(t, err, models.ErrFlightNotFound)
		assert.NotErrorIs(t, err, models.ErrStoreUnavailable)

		assert.NoError(t, mockDb.ExpectationsWereMet())
	})

	t.Run("transport fault maps to store unavailable", func(t *testing.T) {
		mockDb, repo := setupFlightRepo(t)
		defer mockDb.Close()

		mockDb.ExpectQuery(`(?s)SELECT.+FROM flights.+WHERE flight_id = \$1`).
			WithArgs("F100").
			WillReturnError(errors.New("connection refused"))

		flight, err := repo.GetFlight(context.Background(), "F100")
		assert.Nil(t, flight)
		assert.ErrorIs(t, err, models.ErrStoreUnavailable)
		assert.NotErrorIs(t, err, models.ErrFlightNotFound)

		assert.NoError(t, mockDb.ExpectationsWereMet())
	})
}

func TestListDelayedFlights(t *testing.T) {
	scheduledDep := time.Date(2025, 6, 10, 9, 15, 0, 0, time.UTC)
	scheduledArr := time.Date(2025, 6, 10, 12, 5, 0, 0, time.UTC)

	t.Run("returns all delayed flights", func(t *testing.T) {
		mockDb, repo := setupFlightRepo(t)
		defer mockDb.Close()

		rows := pgxmock.NewRows(flightCols).
			AddRow("F100", "DL490", "Delta", "ATL", "JFK", "Delayed",
				scheduledDep, scheduledArr, nil, intPtr(105), strPtr("Weather"), nil, nil, []byte(`[]`)).
			AddRow("F101", "UA212", "United", "ORD", "SFO", "Delayed",
				scheduledDep, scheduledArr, nil, intPtr(80), strPtr("Mechanical"), nil, nil, []byte(`[]`))

		mockDb.ExpectQuery(`(?s)SELECT.+FROM flights.+WHERE status = \$1`).
			WithArgs("Delayed").
			WillReturnRows(rows)

		flights, err := repo.ListDelayedFlights(context.Background())
		require.NoError(t, err)
		require.Len(t, flights, 2)
		for _, f := range flights {
			assert.Equal(t, models.StatusDelayed, f.Status)
		}

		assert.NoError(t, mockDb.ExpectationsWereMet())
	})

	t.Run("no delayed flights yields empty slice", func(t *testing.T) {
		mockDb, repo := setupFlightRepo(t)
		defer mockDb.Close()

		mockDb.ExpectQuery(`(?s)SELECT.+FROM flights.+WHERE status = \$1`).
			WithArgs("Delayed").
			WillReturnRows(pgxmock.NewRows(flightCols))

		flights, err := repo.ListDelayedFlights(context.Background())
		require.NoError(t, err)
		assert.NotNil(t, flights)
		assert.Empty(t, flights)

		assert.NoError(t, mockDb.ExpectationsWereMet())
	})
}

func TestGetRebookingOptions(t *testing.T) {
	t.Run("ordered options preserved", func(t *testing.T) {
		mockDb, repo := setupFlightRepo(t)
		defer mockDb.Close()

		raw := []byte(`[
            {"flight_id":"F200","flight_number":"DL512","departure":"2025-06-10T18:00:00Z","arrival":"2025-06-10T21:10:00Z"},
            {"flight_id":"F201","flight_number":"DL688","departure":"2025-06-10T20:30:00Z","arrival":"2025-06-10T23:40:00Z"}
        ]`)

		mockDb.ExpectQuery(`(?s)SELECT rebooking_options.+FROM flights.+WHERE flight_id = \$1`).
			WithArgs("F100").
			WillReturnRows(pgxmock.NewRows([]string{"rebooking_options"}).AddRow(raw))

		options, err := repo.GetRebookingOptions(context.Background(), "F100")
		require.NoError(t, err)
		require.Len(t, options, 2)
		assert.Equal(t, "F200", options[0].FlightID)
		assert.Equal(t, "F201", options[1].FlightID)

		assert.NoError(t, mockDb.ExpectationsWereMet())
	})

	t.Run("missing flight yields empty options, not an error", func(t *testing.T) {
		mockDb, repo := setupFlightRepo(t)
		defer mockDb.Close()

		mockDb.ExpectQuery(`(?s)SELECT rebooking_options.+FROM flights.+WHERE flight_id = \$1`).
			WithArgs("does-not-exist").
			WillReturnError(pgx.ErrNoRows)

		options, err := repo.GetRebookingOptions(context.Background(), "does-not-exist")
		require.NoError(t, err)
		assert.NotNil(t, options)
		assert.Empty(t, options)

		assert.NoError(t, mockDb.ExpectationsWereMet())
	})
}
