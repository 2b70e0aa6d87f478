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
	"net/http"

	"github.com/unikorn-cloud/fluenttest/pkg/webtestclient"
)

// RequestSender dispatches the configured request in a When block.  Only one
// request may be sent per block.
type RequestSender struct {
	scenario *Scenario
	spec     *RequestSpecification

	dispatched bool
	response   *webtestclient.Response
	err        error
}

// resolve picks the client for the request: the explicit client, then the
// scenario's default client, then a client bound to the standalone
// controllers.
func (s *RequestSender) resolve() (webtestclient.Interface, error) {
	if s.spec.client != nil {
		return s.spec.client, nil
	}

	if client, ok := s.scenario.DefaultClient(); ok {
		return client, nil
	}

	if len(s.spec.controllers) > 0 {
		return webtestclient.BindToController(s.spec.controllers...).WithLogger(s.scenario.logger).Build(), nil
	}

	return nil, &ConfigurationError{Err: ErrNoClient}
}

// Request sends a request with an arbitrary method.
func (s *RequestSender) Request(method, path string, pathParams ...Value) (*webtestclient.Response, error) {
	if s.dispatched {
		s.err = newConfigurationError("only one request may be sent per When block, %s %s was not sent", method, path)

		return nil, s.err
	}

	s.dispatched = true

	s.response, s.err = s.dispatch(method, path, pathParams)

	return s.response, s.err
}

func (s *RequestSender) dispatch(method, path string, pathParams []Value) (*webtestclient.Response, error) {
	client, err := s.resolve()
	if err != nil {
		return nil, err
	}

	request, err := s.spec.request(method, path, pathParams)
	if err != nil {
		return nil, err
	}

	s.scenario.logger.V(1).Info("dispatching", "method", method, "path", path)

	return client.Execute(s.spec.ctx, request)
}

func (s *RequestSender) Get(path string, pathParams ...Value) (*webtestclient.Response, error) {
	return s.Request(http.MethodGet, path, pathParams...)
}

func (s *RequestSender) Post(path string, pathParams ...Value) (*webtestclient.Response, error) {
	return s.Request(http.MethodPost, path, pathParams...)
}

func (s *RequestSender) Put(path string, pathParams ...Value) (*webtestclient.Response, error) {
	return s.Request(http.MethodPut, path, pathParams...)
}

func (s *RequestSender) Patch(path string, pathParams ...Value) (*webtestclient.Response, error) {
	return s.Request(http.MethodPatch, path, pathParams...)
}

func (s *RequestSender) Delete(path string, pathParams ...Value) (*webtestclient.Response, error) {
	return s.Request(http.MethodDelete, path, pathParams...)
}

func (s *RequestSender) Head(path string, pathParams ...Value) (*webtestclient.Response, error) {
	return s.Request(http.MethodHead, path, pathParams...)
}

func (s *RequestSender) Options(path string, pathParams ...Value) (*webtestclient.Response, error) {
	return s.Request(http.MethodOptions, path, pathParams...)
}
