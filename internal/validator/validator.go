package validator

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var (
	recordIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,36}$`)
	seatPrefPattern = regexp.MustCompile(`^[A-Za-z0-9 +-]{1,20}$`)
)

type CustomValidator struct {
	validator *validator.Validate
}

func NewCustomValidator() *CustomValidator {
	v := validator.New()
	v.RegisterValidation("record_id", validateRecordID)
	v.RegisterValidation("seat_pref", validateSeatPref)

	return &CustomValidator{validator: v}
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// Record ids (flight_id, passenger_id) are opaque strings assigned at
// bulk load; constrain to the shape the loader accepts.
func validateRecordID(fl validator.FieldLevel) bool {
	return recordIDPattern.MatchString(fl.Field().String())
}

// Seat preferences are free-form ("12A", "Window", "Aisle"). The empty
// string never reaches here; omitempty treats it as an explicit clear.
func validateSeatPref(fl validator.FieldLevel) bool {
	return seatPrefPattern.MatchString(fl.Field().String())
}
