package app

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/HarishKumarG/BMS-project/internal/domain"
	"github.com/go-chi/chi/v5/middleware"
)

type contextKey string

const principalContextKey = contextKey("principal")

func (app *Application) contextSetPrincipal(r *http.Request, p domain.Principal) *http.Request {
	ctx := context.WithValue(r.Context(), principalContextKey, p)
	return r.WithContext(ctx)
}

// contextGetPrincipal returns the authenticated caller. It must only be called from handlers
// behind the authenticate middleware.
func (app *Application) contextGetPrincipal(r *http.Request) domain.Principal {
	p, ok := r.Context().Value(principalContextKey).(domain.Principal)
	if !ok {
		panic("missing principal value in request context")
	}

	return p
}

func (app *Application) contextGetLogger(r *http.Request) *slog.Logger {
	logger := app.logger.With("request_id", middleware.GetReqID(r.Context()))

	if p, ok := r.Context().Value(principalContextKey).(domain.Principal); ok {
		logger = logger.With("user_id", p.UserID)
	}

	return logger
}
