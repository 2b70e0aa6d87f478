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

package errors

import (
	"errors"
	"net/http"

	"github.com/unikorn-cloud/fluenttest/pkg/openapi"
	"github.com/unikorn-cloud/fluenttest/pkg/server/util"

	"sigs.k8s.io/controller-runtime/pkg/log"
)

// Error wraps ErrRequest with more contextual information that is used to
// propagate and create suitable responses.
type Error struct {
	// status is the HTTP error code.
	status int

	// code us the terse error code to return to the client.
	code openapi.ErrorError

	// description is a verbose description to log/return to the user.
	description string

	// err is set when the originator was an error.  This is only used
	// for logging so as not to leak server internals to the client.
	err error
}

// newError returns a new HTTP error.
func newError(status int, code openapi.ErrorError, description string) *Error {
	return &Error{
		status:      status,
		code:        code,
		description: description,
	}
}

// WithError augments the error with an error from a library.
func (e *Error) WithError(err error) *Error {
	e.err = err

	return e
}

// Unwrap implements Go 1.13 errors.
func (e *Error) Unwrap() error {
	return e.err
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.description
}

// Write returns the error code and description to the client.
func (e *Error) Write(w http.ResponseWriter, r *http.Request) {
	// Log out any detail from the error that shouldn't be
	// reported to the client.  Do it before things can error
	// and return.
	log := log.FromContext(r.Context())

	var details []interface{}

	if e.description != "" {
		details = append(details, "detail", e.description)
	}

	if e.err != nil {
		details = append(details, "error", e.err)
	}

	log.Info("error detail", details...)

	util.WriteJSONResponse(w, r, e.status, &openapi.Error{
		Error:            e.code,
		ErrorDescription: e.description,
	})
}

// HTTPNotFound is raised when the requested resource doesn't exist.
func HTTPNotFound() *Error {
	return newError(http.StatusNotFound, openapi.NotFound, "resource not found")
}

// HTTPMethodNotAllowed is raised when the method is not supported.
func HTTPMethodNotAllowed() *Error {
	return newError(http.StatusMethodNotAllowed, openapi.MethodNotAllowed, "the requested method was not allowed")
}

// OAuth2InvalidRequest indicates a client error.
func OAuth2InvalidRequest(description string) *Error {
	return newError(http.StatusBadRequest, openapi.InvalidRequest, description)
}

// OAuth2ServerError is raised when something unexpected happens.
func OAuth2ServerError(description string) *Error {
	return newError(http.StatusInternalServerError, openapi.ServerError, description)
}

// HandleError is the top level error handler that should be called from all
// path handlers on error.
func HandleError(w http.ResponseWriter, r *http.Request, err error) {
	log := log.FromContext(r.Context())

	var httpError *Error

	if errors.As(err, &httpError) {
		httpError.Write(w, r)

		return
	}

	log.Error(err, "unhandled error")

	OAuth2ServerError("unhandled error").Write(w, r)
}
