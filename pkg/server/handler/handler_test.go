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

package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/unikorn-cloud/fluenttest/pkg/openapi"
	"github.com/unikorn-cloud/fluenttest/pkg/server/handler"
)

func serve(r http.Handler, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))

	return w
}

// TestGetGreeting ensures the controller numbers its greetings.
func TestGetGreeting(t *testing.T) {
	t.Parallel()

	r := chi.NewRouter()
	handler.New().RegisterRoutes(r)

	w := serve(r, "/greeting?name=Johan")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "no-cache", w.Header().Get("Cache-Control"))
	require.JSONEq(t, `{"id":1,"content":"Hello, Johan!"}`, w.Body.String())

	w = serve(r, "/greeting?name=Erik")
	require.JSONEq(t, `{"id":2,"content":"Hello, Erik!"}`, w.Body.String())
}

// TestGetGreetingInvalid ensures bad names are client errors.
func TestGetGreetingInvalid(t *testing.T) {
	t.Parallel()

	r := chi.NewRouter()
	handler.New().RegisterRoutes(r)

	w := serve(r, "/greeting?name=%01")
	require.Equal(t, http.StatusBadRequest, w.Code)

	var body openapi.Error

	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, openapi.InvalidRequest, body.Error)
	require.Contains(t, body.ErrorDescription, "invalid format for parameter name")
}
