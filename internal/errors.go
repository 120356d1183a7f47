package models

import "errors"

// Absence of a record is a typed result, distinct from a transport fault.
// ErrStoreUnavailable means the outcome of an in-flight mutation is
// unknown; retrying a rebooking after it risks a duplicate history entry.
var (
	ErrFlightNotFound    = errors.New("flight not found")
	ErrPassengerNotFound = errors.New("passenger not found")
	ErrStoreUnavailable  = errors.New("store unavailable")
)
