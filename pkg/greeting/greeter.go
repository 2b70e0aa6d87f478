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

package greeting

import (
	"fmt"
	"net/http"
	"sync/atomic"

	"github.com/oapi-codegen/runtime"

	"github.com/unikorn-cloud/fluenttest/pkg/openapi"

	"k8s.io/utils/ptr"
)

const (
	// DefaultName is who gets greeted when no name is given.
	DefaultName = "World"

	template = "Hello, %s!"
)

// Greeter issues greetings with sequential identifiers, starting at 1.
// It is safe for concurrent use.
type Greeter struct {
	counter atomic.Int64
}

// New returns a new greeter.
func New() *Greeter {
	return &Greeter{}
}

// Greet returns the next greeting.
func (g *Greeter) Greet(params openapi.GetGreetingParams) *openapi.Greeting {
	name := ptr.Deref(params.Name, openapi.GreetingName{Value: DefaultName})

	return &openapi.Greeting{
		Id:      g.counter.Add(1),
		Content: fmt.Sprintf(template, name.Value),
	}
}

// BindParams reads the greeting parameters from a request.
func BindParams(r *http.Request) (openapi.GetGreetingParams, error) {
	var params openapi.GetGreetingParams

	if err := runtime.BindQueryParameter("form", true, false, "name", r.URL.Query(), &params.Name); err != nil {
		return params, fmt.Errorf("invalid format for parameter name: %w", err)
	}

	return params, nil
}
