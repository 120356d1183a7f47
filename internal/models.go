package models

import (
	"time"

	"github.com/google/uuid"
)

type FlightStatus string

const (
	StatusOnTime  FlightStatus = "OnTime"
	StatusDelayed FlightStatus = "Delayed"
)

type DelayReason string

const (
	ReasonWeather             DelayReason = "Weather"
	ReasonMechanical          DelayReason = "Mechanical"
	ReasonCrew                DelayReason = "Crew"
	ReasonAirTrafficControl   DelayReason = "AirTrafficControl"
	ReasonAircraftLateArrival DelayReason = "AircraftLateArrival"
	ReasonSecurity            DelayReason = "Security"
	ReasonOther               DelayReason = "Other"
)

// RebookingOption is an alternative departure offered to passengers on a
// delayed flight. Its FlightID is a target reference only; the target is
// not required to exist as a full flight record of its own.
type RebookingOption struct {
	FlightID          string     `json:"flight_id"`
	FlightNumber      string     `json:"flight_number"`
	Departure         time.Time  `json:"departure"`
	Arrival           time.Time  `json:"arrival"`
	OriginalDeparture *time.Time `json:"original_departure,omitempty"`
}

type Flight struct {
	FlightID           string            `json:"flight_id"`
	FlightNumber       string            `json:"flight_number"`
	Airline            string            `json:"airline"`
	Origin             string            `json:"origin"`
	Destination        string            `json:"destination"`
	Status             FlightStatus      `json:"status"`
	ScheduledDeparture time.Time         `json:"scheduled_departure"`
	ScheduledArrival   time.Time         `json:"scheduled_arrival"`
	ActualDeparture    *time.Time        `json:"actual_departure,omitempty"`
	DelayMinutes       int               `json:"delay_minutes,omitempty"`
	DelayReason        DelayReason       `json:"delay_reason,omitempty"`
	Gate               string            `json:"gate,omitempty"`
	Terminal           string            `json:"terminal,omitempty"`
	RebookingOptions   []RebookingOption `json:"rebooking_options,omitempty"`
}

func (f *Flight) IsDelayed() bool {
	return f.Status == StatusDelayed
}

// RebookingEvent records one flight change. The timestamp is assigned by
// the store at update time, never by the caller.
type RebookingEvent struct {
	Timestamp   time.Time `json:"timestamp"`
	OldFlightID string    `json:"old_flight_id"`
	NewFlightID string    `json:"new_flight_id"`
}

// Passenger is bound to exactly one current flight. RebookingHistory is
// append-only: each event's OldFlightID equals the FlightID the passenger
// held immediately before that event, forming a chain back to the
// original flight.
type Passenger struct {
	PassengerID      string           `json:"passenger_id"`
	Name             string           `json:"name"`
	LoyaltyTier      string           `json:"loyalty_tier,omitempty"`
	FlightID         string           `json:"flight_id"`
	Seat             *string          `json:"seat,omitempty"`
	RebookingHistory []RebookingEvent `json:"rebooking_history"`
}

// RebookRequest is the inbound body for a rebooking. SeatPreference nil
// means "not provided"; a pointer to an empty string is an explicit clear.
type RebookRequest struct {
	NewFlightID    string  `json:"new_flight_id" validate:"required,record_id"`
	SeatPreference *string `json:"seat_preference,omitempty" validate:"omitempty,seat_pref"`
}

// RebookResponse carries the post-update state. Flight is the separately
// fetched confirmation read and may be nil if the target flight record
// does not resolve; the passenger update has still been applied.
type RebookResponse struct {
	Passenger Passenger `json:"passenger"`
	Flight    *Flight   `json:"flight,omitempty"`
}

type DelayedFlightsResponse struct {
	Flights []Flight `json:"flights"`
}

type RebookingOptionsResponse struct {
	FlightID string            `json:"flight_id"`
	Options  []RebookingOption `json:"options"`
}

type FlightPassengersResponse struct {
	FlightID   string      `json:"flight_id"`
	Passengers []Passenger `json:"passengers"`
}

type HandoffPassenger struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	LoyaltyTier string  `json:"loyalty_tier,omitempty"`
	Seat        *string `json:"seat,omitempty"`
}

type HandoffFlight struct {
	ID                 string       `json:"id"`
	Number             string       `json:"number"`
	Airline            string       `json:"airline"`
	Origin             string       `json:"origin"`
	Destination        string       `json:"destination"`
	ScheduledDeparture time.Time    `json:"scheduled_departure"`
	ScheduledArrival   time.Time    `json:"scheduled_arrival"`
	Status             FlightStatus `json:"status"`
	DelayMinutes       int          `json:"delay_minutes,omitempty"`
	DelayReason        DelayReason  `json:"delay_reason,omitempty"`
	Gate               string       `json:"gate,omitempty"`
	Terminal           string       `json:"terminal,omitempty"`
}

// HandoffContext is a flat point-in-time snapshot of one passenger and
// their current flight, prepared for call-center handoff. It is built
// from two independent reads with no snapshot isolation; GeneratedAt is
// the build instant, distinct from any event timestamp.
type HandoffContext struct {
	ContextID        uuid.UUID        `json:"context_id"`
	Passenger        HandoffPassenger `json:"passenger"`
	Flight           HandoffFlight    `json:"flight"`
	RebookingHistory []RebookingEvent `json:"rebooking_history"`
	GeneratedAt      time.Time        `json:"timestamp"`
}
