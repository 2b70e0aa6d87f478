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

package fluent

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"slices"

	"github.com/unikorn-cloud/fluenttest/pkg/webtestclient"
)

// RequestSpecification accumulates request configuration in a Given block.
// Nothing is sent until the When block.  Setting a name twice replaces the
// earlier value.
type RequestSpecification struct {
	ctx         context.Context
	client      webtestclient.Interface
	controllers []webtestclient.Controller
	params      url.Values
	query       url.Values
	form        url.Values
	pathParams  map[string]string
	header      http.Header
	cookies     []*http.Cookie
	body        []byte
	err         error
}

func newRequestSpecification() *RequestSpecification {
	return &RequestSpecification{
		ctx:        context.Background(),
		params:     url.Values{},
		query:      url.Values{},
		form:       url.Values{},
		pathParams: map[string]string{},
		header:     http.Header{},
	}
}

// Context sets the context used for the request.
func (r *RequestSpecification) Context(ctx context.Context) *RequestSpecification {
	r.ctx = ctx
	return r
}

// WebTestClient binds the request to an explicit client, this takes
// precedence over any default client.
func (r *RequestSpecification) WebTestClient(client webtestclient.Interface) *RequestSpecification {
	r.client = client
	return r
}

// StandaloneSetup binds the request to controllers, used only when there is
// neither an explicit nor a default client.
func (r *RequestSpecification) StandaloneSetup(controllers ...webtestclient.Controller) *RequestSpecification {
	r.controllers = controllers
	return r
}

// Param sets a query parameter for GET, HEAD, DELETE and OPTIONS requests
// and a form parameter otherwise.
func (r *RequestSpecification) Param(name string, value Value) *RequestSpecification {
	r.params.Set(name, value.String())
	return r
}

// QueryParam sets a query parameter regardless of method.
func (r *RequestSpecification) QueryParam(name string, value Value) *RequestSpecification {
	r.query.Set(name, value.String())
	return r
}

// FormParam sets a form parameter regardless of method.
func (r *RequestSpecification) FormParam(name string, value Value) *RequestSpecification {
	r.form.Set(name, value.String())
	return r
}

// PathParam sets a named path parameter.
func (r *RequestSpecification) PathParam(name string, value Value) *RequestSpecification {
	r.pathParams[name] = value.String()
	return r
}

func (r *RequestSpecification) Header(name, value string) *RequestSpecification {
	r.header.Set(name, value)
	return r
}

func (r *RequestSpecification) Cookie(name, value string) *RequestSpecification {
	r.cookies = slices.DeleteFunc(r.cookies, func(c *http.Cookie) bool {
		return c.Name == name
	})

	r.cookies = append(r.cookies, &http.Cookie{Name: name, Value: value})

	return r
}

func (r *RequestSpecification) ContentType(value string) *RequestSpecification {
	return r.Header("Content-Type", value)
}

// Body sets the request body.  Byte slices and strings are sent verbatim,
// anything else is encoded as JSON.
func (r *RequestSpecification) Body(body any) *RequestSpecification {
	switch t := body.(type) {
	case []byte:
		r.body = t
	case string:
		r.body = []byte(t)
	default:
		data, err := json.Marshal(body)
		if err != nil {
			r.err = newConfigurationError("unable to encode body: %w", err)
			return r
		}

		r.body = data

		if r.header.Get("Content-Type") == "" {
			r.header.Set("Content-Type", "application/json")
		}
	}

	return r
}

// paramsInQuery is true when untyped parameters belong in the query.
func paramsInQuery(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		return false
	}

	return true
}

// request creates the request to execute.  Positional path parameters fill
// any placeholders not set by name, in order of appearance.
func (r *RequestSpecification) request(method, path string, pathParams []Value) (*webtestclient.Request, error) {
	if r.err != nil {
		return nil, r.err
	}

	request := webtestclient.NewRequest(method, path)

	for name, value := range r.pathParams {
		request.PathParams[name] = value
	}

	positional := pathParams

	for _, name := range webtestclient.Placeholders(path) {
		if _, ok := request.PathParams[name]; ok {
			continue
		}

		if len(positional) == 0 {
			break
		}

		request.PathParams[name] = positional[0].String()
		positional = positional[1:]
	}

	if len(positional) > 0 {
		return nil, newConfigurationError("%d unused positional path parameter(s) for %s", len(positional), path)
	}

	params := request.Form
	if paramsInQuery(method) {
		params = request.Query
	}

	for name, values := range r.params {
		params[name] = slices.Clone(values)
	}

	for name, values := range r.query {
		request.Query[name] = slices.Clone(values)
	}

	for name, values := range r.form {
		request.Form[name] = slices.Clone(values)
	}

	request.Header = r.header.Clone()
	request.Cookies = slices.Clone(r.cookies)
	request.Body = r.body

	return request, nil
}
