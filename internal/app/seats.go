package app

import (
	"context"
	"net/http"

	"github.com/HarishKumarG/BMS-project/api"
	"github.com/HarishKumarG/BMS-project/internal/domain"
)

// GetAvailableSeats lists the seats of a show that can still be booked. The list is served
// from the seat cache when possible; every inventory write invalidates it.
func (app *Application) GetAvailableSeats(
	w http.ResponseWriter,
	r *http.Request,
	params api.GetAvailableSeatsParams) {

	seats, err := app.availableSeats(r.Context(), params.ShowId)
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, toSeatsResponse(params.ShowId, seats), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) availableSeats(ctx context.Context, showID int) ([]domain.Seat, error) {
	if app.seatCache == nil {
		return app.seatRepo.GetSeatsByShow(ctx, showID, false)
	}

	seats, hit, err := app.seatCache.GetAvailable(ctx, showID)
	if err != nil {
		app.logger.Warn("failed to read seat cache", "show_id", showID, "error", err)
	}
	if hit {
		return seats, nil
	}

	// The generation must be read before the store so a write landing in between voids the fill.
	generation, genErr := app.seatCache.Generation(ctx, showID)
	if genErr != nil {
		app.logger.Warn("failed to read seat cache generation", "show_id", showID, "error", genErr)
	}

	seats, err = app.seatRepo.GetSeatsByShow(ctx, showID, false)
	if err != nil {
		return nil, err
	}

	if genErr != nil {
		return seats, nil
	}

	stored, err := app.seatCache.SetAvailable(ctx, showID, generation, seats)
	if err != nil {
		app.logger.Warn("failed to fill seat cache", "show_id", showID, "error", err)
	} else if !stored {
		app.logger.Debug("seat cache fill skipped, show changed during read", "show_id", showID)
	}

	return seats, nil
}

func (app *Application) GetBookedSeats(
	w http.ResponseWriter,
	r *http.Request,
	params api.GetBookedSeatsParams) {

	seats, err := app.seatRepo.GetSeatsByShow(r.Context(), params.ShowId, true)
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, toSeatsResponse(params.ShowId, seats), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func toSeatsResponse(showID int, seats []domain.Seat) api.SeatsResponse {
	resp := api.SeatsResponse{
		ShowId: showID,
		Seats:  make([]api.Seat, len(seats)),
	}

	for i, s := range seats {
		resp.Seats[i] = api.Seat{
			SeatNumber: s.SeatNumber,
			IsBooked:   s.IsBooked,
		}
	}

	return resp
}
