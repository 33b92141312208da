package app

import (
	"net/http"

	"github.com/HarishKumarG/BMS-project/api"
	"github.com/HarishKumarG/BMS-project/internal/domain"
	"github.com/HarishKumarG/BMS-project/internal/events"
)

func (app *Application) CreateBooking(w http.ResponseWriter, r *http.Request) {
	principal := app.contextGetPrincipal(r)

	var input api.CreateBookingRequest

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

	booking, err := app.bookings.Book(r.Context(), domain.BookingRequest{
		ShowID:      input.ShowId,
		TheatreID:   input.TheatreId,
		UserID:      principal.UserID,
		SeatNumbers: input.SelectedSeats,
	})
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	app.notifyBooking(principal, events.BookingConfirmed, booking)

	err = app.writeJSON(w, http.StatusCreated, toBookingResponse(booking), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetBooking(w http.ResponseWriter, r *http.Request, bookingId int) {
	principal := app.contextGetPrincipal(r)

	booking, err := app.bookings.GetBooking(r.Context(), bookingId)
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	if !principal.CanAccess(booking.UserID) {
		app.forbiddenResponse(w, r)
		return
	}

	err = app.writeJSON(w, http.StatusOK, toBookingResponse(booking), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// CancelBooking releases the seats of a booking. Ownership is checked on a snapshot read
// before the engine takes the show lock; the engine re-reads the booking under the lock.
func (app *Application) CancelBooking(w http.ResponseWriter, r *http.Request, bookingId int) {
	principal := app.contextGetPrincipal(r)

	existing, err := app.bookings.GetBooking(r.Context(), bookingId)
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	if !principal.CanAccess(existing.UserID) {
		app.forbiddenResponse(w, r)
		return
	}

	booking, err := app.bookings.Cancel(r.Context(), bookingId)
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	app.notifyBooking(principal, events.BookingCancelled, booking)

	err = app.writeJSON(w, http.StatusOK, toBookingResponse(booking), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func toBookingResponse(booking *domain.Booking) api.BookingResponse {
	return api.BookingResponse{
		Id:          booking.ID,
		ShowId:      booking.ShowID,
		TheatreId:   booking.TheatreID,
		UserId:      booking.UserID,
		Nooftickets: booking.NoOfTickets,
		Seats:       domain.SeatNumbers(booking.Seats),
		Price:       booking.Price,
		CreatedAt:   booking.CreatedAt,
	}
}
