package app

import (
	"fmt"
	"net/http"

	"github.com/HarishKumarG/BMS-project/api"
	"github.com/HarishKumarG/BMS-project/internal/domain"
)

func (app *Application) CreateTheatre(w http.ResponseWriter, r *http.Request) {
	var input api.CreateTheatreRequest

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

	theatre := &domain.Theatre{
		Name:     input.Name,
		Location: input.Location,
		Capacity: input.Capacity,
	}

	err = app.catalogRepo.CreateTheatre(r.Context(), theatre)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.TheatreResponse{
		Id:        theatre.ID,
		Name:      theatre.Name,
		Location:  theatre.Location,
		Capacity:  theatre.Capacity,
		CreatedAt: theatre.CreatedAt,
	}

	err = app.writeJSON(w, http.StatusCreated, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) CreateScreen(w http.ResponseWriter, r *http.Request, theatreId int) {
	var input api.CreateScreenRequest

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

	screen := &domain.Screen{
		TheatreID:    theatreId,
		ScreenNumber: input.ScreenNumber,
	}

	err = app.catalogRepo.CreateScreen(r.Context(), screen)
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	resp := api.ScreenResponse{
		Id:           screen.ID,
		TheatreId:    screen.TheatreID,
		ScreenNumber: screen.ScreenNumber,
	}

	err = app.writeJSON(w, http.StatusCreated, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) CreateMovie(w http.ResponseWriter, r *http.Request) {
	var input api.CreateMovieRequest

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

	movie := &domain.Movie{
		Title:       input.Title,
		Language:    input.Language,
		Genre:       input.Genre,
		Certificate: input.Certificate,
	}

	err = app.catalogRepo.CreateMovie(r.Context(), movie)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.MovieResponse{
		Id:          movie.ID,
		Title:       movie.Title,
		Language:    movie.Language,
		Genre:       movie.Genre,
		Certificate: movie.Certificate,
		CreatedAt:   movie.CreatedAt,
	}

	err = app.writeJSON(w, http.StatusCreated, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// CreateShow schedules a show and generates its seats in the same transaction.
func (app *Application) CreateShow(w http.ResponseWriter, r *http.Request) {
	var input api.CreateShowRequest

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

	theatre, err := app.catalogRepo.GetTheatre(r.Context(), input.TheatreId)
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	_, err = app.catalogRepo.GetMovie(r.Context(), input.MovieId)
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	if input.ScreenId != nil {
		screen, err := app.catalogRepo.GetScreen(r.Context(), *input.ScreenId)
		if err != nil {
			app.domainErrorResponse(w, r, err)
			return
		}

		if screen.TheatreID != theatre.ID {
			app.badRequestResponse(w, r,
				fmt.Errorf("screen %d does not belong to theatre %d", screen.ID, theatre.ID))
			return
		}
	}

	show := &domain.Show{
		MovieID:      input.MovieId,
		TheatreID:    theatre.ID,
		ScreenID:     input.ScreenId,
		ShowNumber:   valueOr(input.ShowNumber, 0),
		ShowTime:     input.ShowTime,
		TicketPrice:  valueOr(input.TicketPrice, domain.DefaultTicketPrice),
		TotalTickets: valueOr(input.TotalTickets, domain.DefaultTotalTickets),
	}

	seats, err := domain.ScheduleShow(show, theatre.Capacity)
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	err = app.catalogRepo.CreateShow(r.Context(), show, seats)
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	app.contextGetLogger(r).Info("show scheduled",
		"show_id", show.ID, "theatre_id", show.TheatreID, "seats", len(seats))

	err = app.writeJSON(w, http.StatusCreated, toShowResponse(show), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetShow(w http.ResponseWriter, r *http.Request, showId int) {
	show, err := app.catalogRepo.GetShow(r.Context(), showId)
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, toShowResponse(show), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func toShowResponse(show *domain.Show) api.ShowResponse {
	return api.ShowResponse{
		Id:             show.ID,
		MovieId:        show.MovieID,
		TheatreId:      show.TheatreID,
		ScreenId:       show.ScreenID,
		ShowNumber:     show.ShowNumber,
		ShowTime:       show.ShowTime,
		TicketPrice:    show.TicketPrice,
		TotalTickets:   show.TotalTickets,
		AvailableSeats: show.AvailableSeats(),
		CreatedAt:      show.CreatedAt,
	}
}

func valueOr[T any](v *T, fallback T) T {
	if v == nil {
		return fallback
	}
	return *v
}
