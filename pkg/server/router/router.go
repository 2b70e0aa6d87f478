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

// Package router defines the greeting API as a functional route definition,
// as opposed to the controller in the handler package.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/unikorn-cloud/fluenttest/pkg/greeting"
	"github.com/unikorn-cloud/fluenttest/pkg/server/errors"
	"github.com/unikorn-cloud/fluenttest/pkg/server/util"
)

// Greeting holds the state shared by the routes it defines.
type Greeting struct {
	greeter *greeting.Greeter
}

func NewGreeting() *Greeting {
	return &Greeting{
		greeter: greeting.New(),
	}
}

// Route returns the route definition.  Every call returns a definition
// backed by the same greeter.
func (g *Greeting) Route() func(chi.Router) {
	return func(r chi.Router) {
		r.Get("/greeting", func(w http.ResponseWriter, r *http.Request) {
			params, err := greeting.BindParams(r)
			if err != nil {
				errors.HandleError(w, r, errors.OAuth2InvalidRequest(err.Error()).WithError(err))
				return
			}

			w.Header().Add("Cache-Control", "no-cache")
			util.WriteJSONResponse(w, r, http.StatusOK, g.greeter.Greet(params))
		})

		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			errors.HandleError(w, r, errors.HTTPNotFound())
		})

		r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
			errors.HandleError(w, r, errors.HTTPMethodNotAllowed())
		})
	}
}
