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

//go:generate mockgen -source=interfaces.go -destination=mock/interfaces.go -package=mock

package webtestclient

import (
	"context"

	"github.com/go-chi/chi/v5"
)

// Interface is anything that can execute a test request.
type Interface interface {
	// Execute performs a single request and returns the buffered response.
	Execute(ctx context.Context, request *Request) (*Response, error)
}

// Controller is a handler that registers its own routes, analogous to an
// annotated controller.  Any state it has, e.g. counters, lives in the
// controller instance, so binding the same instance twice shares that state.
type Controller interface {
	RegisterRoutes(r chi.Router)
}

// RouterFunction is a functional route definition.
type RouterFunction func(r chi.Router)

// ControllerFunc adapts a plain function to a Controller.
type ControllerFunc func(r chi.Router)

// RegisterRoutes implements Controller.
func (f ControllerFunc) RegisterRoutes(r chi.Router) {
	f(r)
}
