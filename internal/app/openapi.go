package app

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/HarishKumarG/BMS-project/api"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/gorillamux"
)

func newOpenAPIRouter() (routers.Router, error) {
	swagger, err := api.GetSwagger()
	if err != nil {
		return nil, err
	}

	// Requests are matched on path only, whatever host the service is reached on.
	swagger.Servers = nil

	return gorillamux.NewRouter(swagger)
}

// validateRequest checks path and query parameters against the OpenAPI document before the
// request reaches a handler. Bodies are left to the struct validator so field errors keep
// their 422 shape, and authentication is left to the authenticate middleware.
func (app *Application) validateRequest(next http.Handler) http.Handler {
	options := &openapi3filter.Options{
		ExcludeRequestBody: true,
		AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		route, pathParams, err := app.openapiRouter.FindRoute(r)
		if err != nil {
			// Unknown paths and methods are answered by the chi router.
			next.ServeHTTP(w, r)
			return
		}

		input := &openapi3filter.RequestValidationInput{
			Request:    r,
			PathParams: pathParams,
			Route:      route,
			Options:    options,
		}

		err = openapi3filter.ValidateRequest(r.Context(), input)
		if err != nil {
			app.badRequestResponse(w, r, requestValidationError(err))
			return
		}

		next.ServeHTTP(w, r)
	})
}

func requestValidationError(err error) error {
	var reqErr *openapi3filter.RequestError
	if !errors.As(err, &reqErr) || reqErr.Parameter == nil {
		return err
	}

	reason := reqErr.Reason
	var schemaErr *openapi3.SchemaError
	if errors.As(reqErr.Err, &schemaErr) {
		reason = schemaErr.Reason
	} else if reason == "" && reqErr.Err != nil {
		reason = reqErr.Err.Error()
	}

	return fmt.Errorf("%s parameter %q is invalid: %s", reqErr.Parameter.In, reqErr.Parameter.Name, reason)
}
