package app

import (
	"fmt"
	"net/http"
	"slices"

	"github.com/HarishKumarG/BMS-project/api"
	"github.com/HarishKumarG/BMS-project/internal/auth"
)

func (app *Application) recoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				w.Header().Set("Connection", "close")

				app.serverErrorResponse(w, r, fmt.Errorf("%s", err))
			}
		}()

		next.ServeHTTP(w, r)
	})
}

// authenticate enforces the bearer scopes the generated router attaches to secured
// operations. Operations without scopes in their context are public.
func (app *Application) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		scopes, secured := r.Context().Value(api.BearerAuthScopes).([]string)
		if !secured {
			next.ServeHTTP(w, r)
			return
		}

		token, err := auth.BearerToken(r.Header.Get("Authorization"))
		if err != nil {
			app.unauthorizedAccessResponse(w, r)
			return
		}

		principal, err := app.tokens.Verify(token)
		if err != nil {
			app.contextGetLogger(r).Debug("rejected bearer token", "error", err)
			app.invalidTokenResponse(w, r)
			return
		}

		r = app.contextSetPrincipal(r, principal)

		if len(scopes) > 0 && !slices.Contains(scopes, string(principal.Role)) {
			app.contextGetLogger(r).Warn("role not allowed", "role", principal.Role, "allowed", scopes)
			app.forbiddenResponse(w, r)
			return
		}

		next.ServeHTTP(w, r)
	})
}
