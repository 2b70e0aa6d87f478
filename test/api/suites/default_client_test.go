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

//nolint:revive,testpackage // dot imports and package naming standard for Ginkgo
package suites

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/unikorn-cloud/fluenttest/pkg/fluent"
	"github.com/unikorn-cloud/fluenttest/pkg/server/handler"
	"github.com/unikorn-cloud/fluenttest/pkg/webtestclient"
	"github.com/unikorn-cloud/fluenttest/test/api"
)

// greet requests a greeting and returns its identifier.
func greet(scenario *fluent.Scenario, block func(*fluent.RequestSpecification)) int {
	id, err := fluent.ExtractPath[int](scenario.Given(block).When(api.Get(fixture.Endpoints.Greeting())), "id")
	Expect(err).NotTo(HaveOccurred())

	return id
}

var _ = Describe("Default Client", func() {
	Context("When resolving the client for a request", func() {
		It("should prefer an explicit client over the default client", func() {
			// Given: a default client and an explicit client bound to different controllers
			// When: I make requests with and without the explicit client
			// Then: each controller only counts its own requests
			defaultClient := webtestclient.BindToController(handler.New()).Build()
			explicitClient := webtestclient.BindToController(handler.New()).Build()

			fixture.Scenario.SetDefaultClient(defaultClient)

			Expect(greet(fixture.Scenario, func(*fluent.RequestSpecification) {})).To(Equal(1))
			Expect(greet(fixture.Scenario, func(g *fluent.RequestSpecification) {
				g.WebTestClient(explicitClient)
			})).To(Equal(1))
			Expect(greet(fixture.Scenario, func(*fluent.RequestSpecification) {})).To(Equal(2))
		})

		It("should prefer the default client over a standalone setup", func() {
			// Given: a default client whose controller has already issued a greeting
			// When: I make a request with a fresh standalone controller
			// Then: the default client's controller handles it
			controller := handler.New()

			fixture.Scenario.SetDefaultClient(webtestclient.BindToController(controller).Build())

			Expect(greet(fixture.Scenario, func(*fluent.RequestSpecification) {})).To(Equal(1))

			Expect(greet(fixture.Scenario, func(g *fluent.RequestSpecification) {
				g.StandaloneSetup(handler.New())
			})).To(Equal(2))
		})

		It("should replace the default client when set again", func() {
			first := handler.New()

			fixture.Scenario.SetDefaultClient(webtestclient.BindToController(first).Build())
			Expect(greet(fixture.Scenario, func(*fluent.RequestSpecification) {})).To(Equal(1))

			fixture.Scenario.SetDefaultClient(webtestclient.BindToController(handler.New()).Build())
			Expect(greet(fixture.Scenario, func(*fluent.RequestSpecification) {})).To(Equal(1))
		})
	})

	Context("When the default client is reset", func() {
		It("should fail with a configuration error", func() {
			// Given: a default client that has been reset
			// When: I make a request without an explicit client
			// Then: a configuration error is raised
			scenario := api.NewScenario()
			scenario.SetDefaultClient(fixture.Client)
			scenario.ResetDefaultClient()

			err := scenario.Given().When(api.Get(fixture.Endpoints.Greeting())).Err()
			Expect(err).To(MatchError(fluent.ErrNoClient))

			var configurationError *fluent.ConfigurationError

			Expect(err).To(BeAssignableToTypeOf(configurationError))
		})

		It("should allow repeated resets", func() {
			scenario := api.NewScenario()

			scenario.ResetDefaultClient()
			scenario.SetDefaultClient(fixture.Client)
			scenario.ResetDefaultClient()
			scenario.ResetDefaultClient()

			_, ok := scenario.DefaultClient()
			Expect(ok).To(BeFalse())
		})
	})

	Context("When using the shared scenario", Serial, func() {
		BeforeEach(func() {
			DeferCleanup(fluent.ResetDefaultClient)
		})

		It("should use the shared default client", func() {
			fluent.SetDefaultClient(webtestclient.BindToController(handler.New()).Build())

			err := fluent.Given(func(g *fluent.RequestSpecification) {
				g.Param("name", fluent.String("Johan"))
			}).When(api.Get(fixture.Endpoints.Greeting())).Then(func(t *fluent.ValidatableResponse) {
				t.Body("id", 1, "content", "Hello, Johan!")
			}).Err()
			Expect(err).NotTo(HaveOccurred())

			fluent.ResetDefaultClient()

			Expect(fluent.Given().When(api.Get(fixture.Endpoints.Greeting())).Err()).To(MatchError(fluent.ErrConfiguration))
		})
	})
})
