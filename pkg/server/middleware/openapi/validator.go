/*
Copyright 2024-2025 the Unikorn Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package openapi

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/legacy"

	servererrors "github.com/unikorn-cloud/fluenttest/pkg/server/errors"
)

// Validator checks requests and responses against an OpenAPI document.
type Validator struct {
	router routers.Router
}

// NewValidator creates a validator for the given document.
func NewValidator(doc *openapi3.T) (*Validator, error) {
	router, err := legacy.NewRouter(doc)
	if err != nil {
		return nil, fmt.Errorf("creating openapi router: %w", err)
	}

	return &Validator{
		router: router,
	}, nil
}

func (v *Validator) requestInput(r *http.Request) (*openapi3filter.RequestValidationInput, error) {
	route, params, err := v.router.FindRoute(r)
	if err != nil {
		return nil, err
	}

	input := &openapi3filter.RequestValidationInput{
		Request:    r,
		PathParams: params,
		Route:      route,
		Options: &openapi3filter.Options{
			AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
		},
	}

	return input, nil
}

// ValidateRequest checks the request parameters and body.  Route lookup
// failures wrap routers.ErrPathNotFound or routers.ErrMethodNotAllowed.
func (v *Validator) ValidateRequest(r *http.Request) error {
	input, err := v.requestInput(r)
	if err != nil {
		return err
	}

	return openapi3filter.ValidateRequest(r.Context(), input)
}

// ValidateResponse checks the response status, headers and body that were
// returned for the request.
func (v *Validator) ValidateResponse(r *http.Request, status int, header http.Header, body []byte) error {
	requestInput, err := v.requestInput(r)
	if err != nil {
		return err
	}

	input := &openapi3filter.ResponseValidationInput{
		RequestValidationInput: requestInput,
		Status:                 status,
		Header:                 header,
		Options: &openapi3filter.Options{
			IncludeResponseStatus: true,
		},
	}

	input.SetBodyBytes(body)

	return openapi3filter.ValidateResponse(r.Context(), input)
}

// isRouteError checks for route lookup errors, which routers may return as
// new values with the same reason as the sentinel.
func isRouteError(err, target error) bool {
	var routeError *routers.RouteError

	return errors.Is(err, target) || (errors.As(err, &routeError) && routeError.Error() == target.Error())
}

// Middleware rejects requests that do not conform to the schema.
func Middleware(validator *Validator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := validator.ValidateRequest(r); err != nil {
				switch {
				case isRouteError(err, routers.ErrPathNotFound):
					servererrors.HandleError(w, r, servererrors.HTTPNotFound().WithError(err))
				case isRouteError(err, routers.ErrMethodNotAllowed):
					servererrors.HandleError(w, r, servererrors.HTTPMethodNotAllowed().WithError(err))
				default:
					servererrors.HandleError(w, r, servererrors.OAuth2InvalidRequest("request validation failed").WithError(err))
				}

				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
