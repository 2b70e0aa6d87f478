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

package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-logr/logr"

	"github.com/unikorn-cloud/fluenttest/pkg/openapi"
	"github.com/unikorn-cloud/fluenttest/pkg/server/errors"
	openapimiddleware "github.com/unikorn-cloud/fluenttest/pkg/server/middleware/openapi"
	"github.com/unikorn-cloud/fluenttest/pkg/server/router"

	"sigs.k8s.io/controller-runtime/pkg/log"
)

// New returns the greeting API handler stack.
func New(options *Options, logger logr.Logger) (http.Handler, error) {
	schema, err := openapi.Schema()
	if err != nil {
		return nil, err
	}

	validator, err := openapimiddleware.NewValidator(schema)
	if err != nil {
		return nil, err
	}

	schemaJSON, err := schema.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("marshaling openapi schema: %w", err)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logging(logger))
	r.Use(middleware.Recoverer)

	if options.RequestTimeout > 0 {
		r.Use(middleware.Timeout(options.RequestTimeout))
	}

	r.Get("/openapi.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		if _, err := w.Write(schemaJSON); err != nil {
			log.FromContext(r.Context()).Error(err, "failed to write schema")
		}
	})

	r.Group(func(r chi.Router) {
		if options.ValidateRequests {
			r.Use(openapimiddleware.Middleware(validator))
		}

		router.NewGreeting().Route()(r)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		errors.HandleError(w, r, errors.HTTPNotFound())
	})

	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		errors.HandleError(w, r, errors.HTTPMethodNotAllowed())
	})

	return r, nil
}

// NewHTTPServer wraps the handler in a server configured from the options.
func NewHTTPServer(options *Options, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              options.ListenAddress,
		ReadTimeout:       options.ReadTimeout,
		ReadHeaderTimeout: options.ReadHeaderTimeout,
		WriteTimeout:      options.WriteTimeout,
		Handler:           handler,
	}
}

// logging injects a request scoped logger into the context and logs every
// request once it has been handled.
func logging(logger logr.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestLogger := logger.WithValues("requestID", middleware.GetReqID(r.Context()), "traceparent", r.Header.Get("Traceparent"))

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			start := time.Now()

			next.ServeHTTP(ww, r.WithContext(log.IntoContext(r.Context(), requestLogger)))

			requestLogger.Info("request", "method", r.Method, "path", r.URL.RequestURI(), "status", ww.Status(), "bytes", ww.BytesWritten(), "duration", time.Since(start))
		})
	}
}
