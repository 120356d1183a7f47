package api

import (
	"errors"
	"net/http"

	models "github.com/chrisdamba/delaycompanion/internal"
	"github.com/chrisdamba/delaycompanion/internal/ports"
	"github.com/chrisdamba/delaycompanion/internal/utils"
	"github.com/chrisdamba/delaycompanion/internal/validator"
	"github.com/go-chi/chi/v5"
)

func GetFlightHandler(service ports.AssistService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		flight, err := service.GetFlight(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			ae := getApiError(err)
			utils.RenderResponse(r, w, ae.StatusCode, ae)
			return
		}
		utils.RenderResponse(r, w, http.StatusOK, flight)
	}
}

func ListDelayedFlightsHandler(service ports.AssistService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		flights, err := service.ListDelayedFlights(r.Context())
		if err != nil {
			ae := getApiError(err)
			utils.RenderResponse(r, w, ae.StatusCode, ae)
			return
		}
		utils.RenderResponse(r, w, http.StatusOK, models.DelayedFlightsResponse{Flights: flights})
	}
}

func GetRebookingOptionsHandler(service ports.AssistService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		flightID := chi.URLParam(r, "id")
		options, err := service.GetRebookingOptions(r.Context(), flightID)
		if err != nil {
			ae := getApiError(err)
			utils.RenderResponse(r, w, ae.StatusCode, ae)
			return
		}
		utils.RenderResponse(r, w, http.StatusOK, models.RebookingOptionsResponse{
			FlightID: flightID,
			Options:  options,
		})
	}
}

func ListFlightPassengersHandler(service ports.AssistService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		flightID := chi.URLParam(r, "id")
		passengers, err := service.ListPassengersByFlight(r.Context(), flightID)
		if err != nil {
			ae := getApiError(err)
			utils.RenderResponse(r, w, ae.StatusCode, ae)
			return
		}
		utils.RenderResponse(r, w, http.StatusOK, models.FlightPassengersResponse{
			FlightID:   flightID,
			Passengers: passengers,
		})
	}
}

func GetPassengerHandler(service ports.AssistService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		passenger, err := service.GetPassenger(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			ae := getApiError(err)
			utils.RenderResponse(r, w, ae.StatusCode, ae)
			return
		}
		utils.RenderResponse(r, w, http.StatusOK, passenger)
	}
}

// RebookPassengerHandler applies the rebooking state transition. The
// operation is not idempotent; a client retry after an ambiguous failure
// appends a second history event.
func RebookPassengerHandler(service ports.AssistService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.RebookRequest
		if err := utils.JsonDecodeBody(r, &req); err != nil {
			ae := utils.NewBadRequest("error json decoding body")
			utils.RenderResponse(r, w, ae.StatusCode, ae)
			return
		}

		v := validator.NewCustomValidator()
		if err := v.Validate(req); err != nil {
			ae := utils.NewBadRequest(err.Error())
			utils.RenderResponse(r, w, ae.StatusCode, ae)
			return
		}

		ans, err := service.RebookPassenger(r.Context(), chi.URLParam(r, "id"), &req)
		if err != nil {
			ae := getApiError(err)
			utils.RenderResponse(r, w, ae.StatusCode, ae)
			return
		}
		utils.RenderResponse(r, w, http.StatusOK, ans)
	}
}

func HandoffContextHandler(service ports.AssistService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		handoff, err := service.BuildHandoffContext(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			ae := getApiError(err)
			utils.RenderResponse(r, w, ae.StatusCode, ae)
			return
		}
		utils.RenderResponse(r, w, http.StatusOK, handoff)
	}
}

// NotFound and StoreUnavailable must never collapse into the same
// message: the first is a user-facing absence, the second a retry-later.
func getApiError(err error) utils.ApiError {
	switch {
	case errors.Is(err, models.ErrFlightNotFound), errors.Is(err, models.ErrPassengerNotFound):
		return utils.NewNotFound(err.Error())
	case errors.Is(err, models.ErrStoreUnavailable):
		return utils.NewServiceUnavailable("record store unavailable, try again later")
	default:
		return utils.NewInternalServerError(err.Error())
	}
}
