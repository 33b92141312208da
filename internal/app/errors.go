package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/HarishKumarG/BMS-project/api"
	"github.com/HarishKumarG/BMS-project/internal/domain"
	appvalidator "github.com/HarishKumarG/BMS-project/internal/validator"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
)

const (
	ErrInternalServer     = "The server encountered a problem and could not process your request"
	ErrNotFound           = "The requested resource not found"
	ErrMethodNotAllowed   = "The %s method is not supported for this resource"
	ErrUnauthorizedAccess = "You must be authenticated to access this resource"
	ErrInvalidToken       = "Invalid or missing authentication token"
	ErrForbidden          = "You do not have permission to access this resource"
	ErrFailedValidation   = "One or more fields are invalid"
)

// retryAfterSeconds is sent with 503 responses for a busy show.
const retryAfterSeconds = 1

// statusClientClosedRequest is recorded for requests abandoned by their client.
const statusClientClosedRequest = 499

func (app *Application) logError(r *http.Request, err error) {
	var (
		method = r.Method
		uri    = r.URL.RequestURI()
	)

	app.contextGetLogger(r).Error(err.Error(), "method", method, "uri", uri)
}

// The errorResponse() method is a generic helper for sending JSON-formatted error
// messages to the client with a given status code.
func (app *Application) errorResponse(w http.ResponseWriter, r *http.Request, status int, message string) {
	app.writeErrorResponse(w, r, status, api.ErrorResponse{Message: message}, nil)
}

func (app *Application) writeErrorResponse(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	resp api.ErrorResponse,
	headers http.Header) {

	resp.RequestId = middleware.GetReqID(r.Context())
	resp.Timestamp = time.Now()

	err := app.writeJSON(w, status, resp, headers)
	if err != nil {
		app.logError(r, err)
		w.WriteHeader(500)
	}
}

func (app *Application) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logError(r, err)

	app.errorResponse(w, r, http.StatusInternalServerError, ErrInternalServer)
}

func (app *Application) notFoundResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusNotFound, ErrNotFound)
}

func (app *Application) methodNotAllowedResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusMethodNotAllowed, fmt.Sprintf(ErrMethodNotAllowed, r.Method))
}

func (app *Application) badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.errorResponse(w, r, http.StatusBadRequest, err.Error())
}

func (app *Application) unauthorizedAccessResponse(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	app.errorResponse(w, r, http.StatusUnauthorized, ErrUnauthorizedAccess)
}

func (app *Application) invalidTokenResponse(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token"`)
	app.errorResponse(w, r, http.StatusUnauthorized, ErrInvalidToken)
}

func (app *Application) forbiddenResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusForbidden, ErrForbidden)
}

// paramErrorResponse answers path and query parameters the generated router could not bind.
func (app *Application) paramErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.badRequestResponse(w, r, err)
}

func (app *Application) failedValidationResponse(w http.ResponseWriter, r *http.Request, err error) {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.ValidationErrorResponse{
		Message:          ErrFailedValidation,
		RequestId:        middleware.GetReqID(r.Context()),
		Timestamp:        time.Now(),
		ValidationErrors: make([]api.ValidationError, 0, len(validationErrors)),
	}

	for _, e := range validationErrors {
		resp.ValidationErrors = append(resp.ValidationErrors, api.ValidationError{
			Field: e.Field(),
			Issue: appvalidator.ValidationMessage(e),
		})
	}

	err = app.writeJSON(w, http.StatusUnprocessableEntity, resp, nil)
	if err != nil {
		app.logError(r, err)
		w.WriteHeader(500)
	}
}

// domainErrorResponse maps the error kinds of the booking core to HTTP responses. Errors that
// are not *domain.Error are treated as internal failures.
func (app *Application) domainErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	var derr *domain.Error

	switch {
	case errors.As(err, &derr):
	case errors.Is(err, domain.ErrRecordNotFound):
		app.notFoundResponse(w, r)
		return
	case errors.Is(err, context.Canceled):
		app.clientClosedResponse(w, r, err)
		return
	default:
		app.serverErrorResponse(w, r, err)
		return
	}

	var (
		status  int
		headers http.Header
	)

	switch derr.Kind {
	case domain.KindValidation, domain.KindConflict:
		status = http.StatusBadRequest
	case domain.KindNotFound:
		status = http.StatusNotFound
	case domain.KindBusy:
		status = http.StatusServiceUnavailable
		headers = http.Header{"Retry-After": []string{strconv.Itoa(retryAfterSeconds)}}
	default:
		app.invariantViolationResponse(w, r, err)
		return
	}

	resp := api.ErrorResponse{
		Message: derr.Error(),
		Code:    &derr.Code,
	}
	if len(derr.Seats) > 0 {
		resp.Seats = &derr.Seats
	}

	app.writeErrorResponse(w, r, status, resp, headers)
}

// clientClosedResponse handles a request whose client went away. Nobody reads the body, so only
// the status is written for access logs and metrics.
func (app *Application) clientClosedResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.contextGetLogger(r).Info("client closed request",
		"method", r.Method, "uri", r.URL.RequestURI(), "error", err)

	w.WriteHeader(statusClientClosedRequest)
}

// invariantViolationResponse answers a broken seat counter. Outside production the handler
// panics so the failure cannot go unnoticed; recoverPanic still answers the client.
func (app *Application) invariantViolationResponse(w http.ResponseWriter, r *http.Request, err error) {
	if app.config.Env == "dev" {
		panic(err)
	}

	app.serverErrorResponse(w, r, err)
}
