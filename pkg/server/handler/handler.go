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

package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/unikorn-cloud/fluenttest/pkg/greeting"
	"github.com/unikorn-cloud/fluenttest/pkg/server/errors"
	"github.com/unikorn-cloud/fluenttest/pkg/server/util"
)

// Handler is the greeting controller.  Every instance numbers its own
// greetings.
type Handler struct {
	// greeter issues greetings.
	greeter *greeting.Greeter
}

func New() *Handler {
	return &Handler{
		greeter: greeting.New(),
	}
}

// RegisterRoutes mounts the controller's routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/greeting", h.GetGreeting)
}

func (h *Handler) setUncacheable(w http.ResponseWriter) {
	w.Header().Add("Cache-Control", "no-cache")
}

func (h *Handler) GetGreeting(w http.ResponseWriter, r *http.Request) {
	params, err := greeting.BindParams(r)
	if err != nil {
		errors.HandleError(w, r, errors.OAuth2InvalidRequest(err.Error()).WithError(err))
		return
	}

	h.setUncacheable(w)
	util.WriteJSONResponse(w, r, http.StatusOK, h.greeter.Greet(params))
}
