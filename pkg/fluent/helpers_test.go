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

package fluent_test

import (
	"context"
	"net/http"

	"github.com/unikorn-cloud/fluenttest/pkg/fluent"
	"github.com/unikorn-cloud/fluenttest/pkg/webtestclient"
)

func jsonResponse(body string) *webtestclient.Response {
	return &webtestclient.Response{
		StatusCode: http.StatusOK,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       []byte(body),
	}
}

// capture records the request and returns a canned response.
func capture(request **webtestclient.Request, response *webtestclient.Response) func(context.Context, *webtestclient.Request) (*webtestclient.Response, error) {
	return func(_ context.Context, r *webtestclient.Request) (*webtestclient.Response, error) {
		*request = r

		return response, nil
	}
}

func get(path string, pathParams ...fluent.Value) func(*fluent.RequestSender) (*webtestclient.Response, error) {
	return func(w *fluent.RequestSender) (*webtestclient.Response, error) {
		return w.Get(path, pathParams...)
	}
}
