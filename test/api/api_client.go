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

package api

import (
	"net/http/httptest"
	"time"

	"github.com/onsi/ginkgo/v2"

	"github.com/unikorn-cloud/fluenttest/pkg/server"
	"github.com/unikorn-cloud/fluenttest/pkg/webtestclient"
)

// serverOptions are used for in process servers, request validation is
// enabled as it is in production.
func serverOptions() *server.Options {
	return &server.Options{
		RequestTimeout:   5 * time.Second,
		ValidateRequests: true,
	}
}

// StartServer starts an in process server if no live deployment is
// configured, and returns the base URL to use.  The server is stopped when
// the spec completes.
func StartServer(config *TestConfig) (string, error) {
	if config.Remote() {
		return config.BaseURL, nil
	}

	handler, err := server.New(serverOptions(), ginkgo.GinkgoLogr.WithName("server"))
	if err != nil {
		return "", err
	}

	s := httptest.NewServer(handler)

	ginkgo.DeferCleanup(s.Close)

	return s.URL, nil
}

// NewAPIClient returns a client bound to the base URL, with logging going
// to the Ginkgo writer.
func NewAPIClient(config *TestConfig, baseURL string) *webtestclient.Client {
	return webtestclient.BindToServer(baseURL).
		WithTimeout(config.RequestTimeout).
		WithLogger(ginkgo.GinkgoLogr.WithName("client")).
		WithRequestLogging(config.LogRequests || config.DebugLogging).
		WithResponseLogging(config.LogResponses || config.DebugLogging).
		Build()
}

// LogTraceContext logs the trace ID of a response so failures can be found
// in server logs.
func LogTraceContext(response *webtestclient.Response) {
	if response == nil || response.TraceParent == "" {
		return
	}

	ginkgo.GinkgoWriter.Printf("trace_id=%s traceparent=%s\n", webtestclient.ExtractTraceID(response.TraceParent), response.TraceParent)
}
