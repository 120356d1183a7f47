package loader

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	models "github.com/chrisdamba/delaycompanion/internal"
	"github.com/chrisdamba/delaycompanion/internal/repository"
)

// Loader provisions the two record collections and bulk-loads CSV data.
// Loads are idempotent: tables are created if absent and rows upserted by
// primary key, so re-running a load replaces records in place.
type Loader struct {
	db repository.DBConn
}

func NewLoader(db repository.DBConn) *Loader {
	return &Loader{db: db}
}

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS flights (
        flight_id TEXT PRIMARY KEY,
        flight_number TEXT NOT NULL,
        airline TEXT NOT NULL,
        origin TEXT NOT NULL,
        destination TEXT NOT NULL,
        status TEXT NOT NULL DEFAULT 'OnTime',
        scheduled_departure TIMESTAMPTZ NOT NULL,
        scheduled_arrival TIMESTAMPTZ NOT NULL,
        actual_departure TIMESTAMPTZ,
        delay_minutes INTEGER,
        delay_reason TEXT,
        gate TEXT,
        terminal TEXT,
        rebooking_options JSONB NOT NULL DEFAULT '[]'::jsonb
    )`,
	`CREATE TABLE IF NOT EXISTS passengers (
        passenger_id TEXT PRIMARY KEY,
        name TEXT NOT NULL,
        loyalty_tier TEXT,
        flight_id TEXT NOT NULL,
        seat TEXT,
        rebooking_history JSONB NOT NULL DEFAULT '[]'::jsonb
    )`,
	`CREATE INDEX IF NOT EXISTS idx_passengers_flight_id ON passengers (flight_id)`,
}

func (l *Loader) CreateSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := l.db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("creating schema: %w", err)
		}
	}
	return nil
}

// LoadFlights reads the flights CSV (rebooking_options column holds
// embedded JSON) and upserts each row. Returns the number of rows loaded.
func (l *Loader) LoadFlights(ctx context.Context, path string) (int, error) {
	rows, header, err := readCSV(path)
	if err != nil {
		return 0, err
	}

	query := `
        INSERT INTO flights (flight_id, flight_number, airline, origin, destination, status,
            scheduled_departure, scheduled_arrival, actual_departure,
            delay_minutes, delay_reason, gate, terminal, rebooking_options)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14::jsonb)
        ON CONFLICT (flight_id) DO UPDATE SET
            flight_number = EXCLUDED.flight_number,
            airline = EXCLUDED.airline,
            origin = EXCLUDED.origin,
            destination = EXCLUDED.destination,
            status = EXCLUDED.status,
            scheduled_departure = EXCLUDED.scheduled_departure,
            scheduled_arrival = EXCLUDED.scheduled_arrival,
            actual_departure = EXCLUDED.actual_departure,
            delay_minutes = EXCLUDED.delay_minutes,
            delay_reason = EXCLUDED.delay_reason,
            gate = EXCLUDED.gate,
            terminal = EXCLUDED.terminal,
            rebooking_options = EXCLUDED.rebooking_options
    `

	loaded := 0
	for i, record := range rows {
		get := fieldReader(header, record)

		flightID := get("flight_id")
		if flightID == "" {
			return loaded, fmt.Errorf("flights row %d: missing flight_id", i+1)
		}

		scheduledDeparture, err := parseTimestamp(get("scheduled_departure"))
		if err != nil {
			return loaded, fmt.Errorf("flights row %d: %w", i+1, err)
		}
		scheduledArrival, err := parseTimestamp(get("scheduled_arrival"))
		if err != nil {
			return loaded, fmt.Errorf("flights row %d: %w", i+1, err)
		}
		actualDeparture, err := parseOptionalTimestamp(get("actual_departure"))
		if err != nil {
			return loaded, fmt.Errorf("flights row %d: %w", i+1, err)
		}

		var delayMinutes *int
		if v := get("delay_minutes"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return loaded, fmt.Errorf("flights row %d: parsing delay_minutes: %w", i+1, err)
			}
			delayMinutes = &n
		}

		optionsJSON := get("rebooking_options")
		if optionsJSON == "" {
			optionsJSON = "[]"
		} else {
			// Validate before writing; a malformed options column should
			// fail the load, not poison reads later.
			var options []models.RebookingOption
			if err := json.Unmarshal([]byte(optionsJSON), &options); err != nil {
				return loaded, fmt.Errorf("flights row %d: parsing rebooking_options: %w", i+1, err)
			}
		}

		_, err = l.db.Exec(ctx, query,
			flightID, get("flight_number"), get("airline"), get("origin"), get("destination"),
			orDefault(get("status"), string(models.StatusOnTime)),
			scheduledDeparture, scheduledArrival, actualDeparture,
			delayMinutes, nilIfEmpty(get("delay_reason")),
			nilIfEmpty(get("gate")), nilIfEmpty(get("terminal")), optionsJSON,
		)
		if err != nil {
			return loaded, fmt.Errorf("flights row %d: %w", i+1, err)
		}
		loaded++
	}
	return loaded, nil
}

// LoadPassengers upserts passenger rows. Histories start empty; rebooking
// is the only writer of that column after load.
func (l *Loader) LoadPassengers(ctx context.Context, path string) (int, error) {
	rows, header, err := readCSV(path)
	if err != nil {
		return 0, err
	}

	query := `
        INSERT INTO passengers (passenger_id, name, loyalty_tier, flight_id, seat, rebooking_history)
        VALUES ($1, $2, $3, $4, $5, '[]'::jsonb)
        ON CONFLICT (passenger_id) DO UPDATE SET
            name = EXCLUDED.name,
            loyalty_tier = EXCLUDED.loyalty_tier,
            flight_id = EXCLUDED.flight_id,
            seat = EXCLUDED.seat
    `

	loaded := 0
	for i, record := range rows {
		get := fieldReader(header, record)

		passengerID := get("passenger_id")
		if passengerID == "" {
			return loaded, fmt.Errorf("passengers row %d: missing passenger_id", i+1)
		}

		_, err = l.db.Exec(ctx, query,
			passengerID, get("name"), nilIfEmpty(get("loyalty_tier")),
			get("flight_id"), nilIfEmpty(get("seat")),
		)
		if err != nil {
			return loaded, fmt.Errorf("passengers row %d: %w", i+1, err)
		}
		loaded++
	}
	return loaded, nil
}

func readCSV(path string) ([][]string, map[string]int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	headerRow, err := reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("reading header of %s: %w", path, err)
	}

	header := make(map[string]int, len(headerRow))
	for i, name := range headerRow {
		header[name] = i
	}

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("reading %s: %w", path, err)
		}
		rows = append(rows, record)
	}
	return rows, header, nil
}

func fieldReader(header map[string]int, record []string) func(string) string {
	return func(name string) string {
		idx, ok := header[name]
		if !ok || idx >= len(record) {
			return ""
		}
		return record[idx]
	}
}

func parseTimestamp(v string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing timestamp %q: %w", v, err)
	}
	return t, nil
}

func parseOptionalTimestamp(v string) (*time.Time, error) {
	if v == "" {
		return nil, nil
	}
	t, err := parseTimestamp(v)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func nilIfEmpty(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
