package app

import (
	"errors"
	"net/http"

	"github.com/HarishKumarG/BMS-project/api"
	"github.com/HarishKumarG/BMS-project/internal/domain"
	"github.com/HarishKumarG/BMS-project/internal/events"
)

func (app *Application) BlockSeats(w http.ResponseWriter, r *http.Request) {
	var input api.BlockSeatsRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	result, err := app.bookings.MarkBlocked(r.Context(), input.ShowId, input.Seats)
	if err != nil {
		var derr *domain.Error
		if errors.Is(err, domain.ErrUnknownSeats) && errors.As(err, &derr) {
			app.unknownSeatsResponse(w, r, derr.Seats)
			return
		}

		app.domainErrorResponse(w, r, err)
		return
	}

	if len(result.BlockedSeats) > 0 {
		app.publish(events.New(events.SeatsBlocked, result.ShowID, result.BlockedSeats))
	}

	resp := api.BlockSeatsResponse{
		ShowId:         result.ShowID,
		BlockedSeats:   nonNil(result.BlockedSeats),
		AlreadyBlocked: nonNil(result.AlreadyBlocked),
		AvailableSeats: result.AvailableSeats,
	}

	err = app.writeJSON(w, http.StatusCreated, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) UnblockSeats(w http.ResponseWriter, r *http.Request) {
	var input api.BlockSeatsRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	result, err := app.bookings.RemoveBlocked(r.Context(), input.ShowId, input.Seats)
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	app.publish(events.New(events.SeatsUnblocked, result.ShowID, result.UnblockedSeats))

	resp := api.UnblockSeatsResponse{
		ShowId:         result.ShowID,
		UnblockedSeats: nonNil(result.UnblockedSeats),
		NotBlocked:     nonNil(result.NotBlocked),
		AvailableSeats: result.AvailableSeats,
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// unknownSeatsResponse keeps the {error, missing_seats} shape clients of the blocking
// endpoint rely on.
func (app *Application) unknownSeatsResponse(w http.ResponseWriter, r *http.Request, missing []string) {
	resp := api.BlockingErrorResponse{
		Error:        "Some seats not found",
		MissingSeats: missing,
	}

	err := app.writeJSON(w, http.StatusBadRequest, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
