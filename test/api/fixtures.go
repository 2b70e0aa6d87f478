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

//nolint:revive,staticcheck // dot imports are standard for Ginkgo/Gomega test code
package api

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/unikorn-cloud/fluenttest/pkg/fluent"
	"github.com/unikorn-cloud/fluenttest/pkg/webtestclient"
)

// Fixture is everything a spec needs to talk to the greeting API.
type Fixture struct {
	Config    *TestConfig
	BaseURL   string
	Client    *webtestclient.Client
	Endpoints *Endpoints
	// Scenario reports failures to Ginkgo and has no default client.
	Scenario *fluent.Scenario
}

// NewFixture creates the fixture for a spec, tearing it down when the spec
// completes.
func NewFixture() *Fixture {
	config, err := LoadTestConfig()
	Expect(err).NotTo(HaveOccurred())

	baseURL, err := StartServer(config)
	Expect(err).NotTo(HaveOccurred())

	return &Fixture{
		Config:    config,
		BaseURL:   baseURL,
		Client:    NewAPIClient(config, baseURL),
		Endpoints: NewEndpoints(),
		Scenario:  NewScenario(fluent.WithFailHandler(Fail)),
	}
}

// NewScenario creates a scenario logging to Ginkgo whose default client is
// reset when the spec completes, even if it failed.
func NewScenario(options ...fluent.Option) *fluent.Scenario {
	options = append([]fluent.Option{fluent.WithLogger(GinkgoLogr.WithName("scenario"))}, options...)

	scenario := fluent.NewScenario(options...)

	DeferCleanup(scenario.ResetDefaultClient)

	return scenario
}

// Get is a When block that sends a GET request.
func Get(path string, pathParams ...fluent.Value) func(*fluent.RequestSender) (*webtestclient.Response, error) {
	return func(w *fluent.RequestSender) (*webtestclient.Response, error) {
		response, err := w.Get(path, pathParams...)

		LogTraceContext(response)

		return response, err
	}
}
