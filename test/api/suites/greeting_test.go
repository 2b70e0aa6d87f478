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
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/unikorn-cloud/fluenttest/pkg/fluent"
	"github.com/unikorn-cloud/fluenttest/pkg/openapi"
	"github.com/unikorn-cloud/fluenttest/pkg/server/handler"
	"github.com/unikorn-cloud/fluenttest/pkg/server/router"
	"github.com/unikorn-cloud/fluenttest/pkg/webtestclient"
	"github.com/unikorn-cloud/fluenttest/test/api"
)

var _ = Describe("Greeting", func() {
	Context("When bound to a controller", func() {
		It("should greet with the first identifier", func() {
			// Given: a fresh controller and a name
			// When: I request a greeting
			// Then: the first identifier is issued with the greeting
			client := webtestclient.BindToController(handler.New()).Build()

			fixture.Scenario.Given(func(g *fluent.RequestSpecification) {
				g.WebTestClient(client).Param("name", fluent.String("Johan"))
			}).When(api.Get(fixture.Endpoints.Greeting())).Then(func(t *fluent.ValidatableResponse) {
				t.StatusCode(http.StatusOK).Body("id", 1, "content", "Hello, Johan!")
			})
		})

		It("should greet using a standalone setup", func() {
			fixture.Scenario.Given(func(g *fluent.RequestSpecification) {
				g.StandaloneSetup(handler.New()).Param("name", fluent.String("Johan"))
			}).When(api.Get(fixture.Endpoints.Greeting())).Then(func(t *fluent.ValidatableResponse) {
				t.Body("id", 1, "content", "Hello, Johan!")
			})
		})
	})

	Context("When bound to a router function", func() {
		It("should respond identically to the controller", func() {
			// Given: equivalent controller and router function targets
			// When: I make the same request to each
			// Then: the bodies are identical
			controller := webtestclient.BindToController(handler.New()).Build()
			routerFunction := webtestclient.BindToRouterFunction(router.NewGreeting().Route()).Build()

			bodies := make([]string, 0, 2)

			for _, client := range []webtestclient.Interface{controller, routerFunction} {
				stage := fixture.Scenario.Given(func(g *fluent.RequestSpecification) {
					g.WebTestClient(client).Param("name", fluent.String("Johan"))
				}).When(api.Get(fixture.Endpoints.Greeting())).Then(func(t *fluent.ValidatableResponse) {
					t.Body("id", 1, "content", "Hello, Johan!")
				})

				body, err := fluent.Extract(stage, func(e *fluent.ExtractableResponse) (string, error) {
					return e.AsString(), nil
				})
				Expect(err).NotTo(HaveOccurred())

				bodies = append(bodies, body)
			}

			Expect(bodies[1]).To(MatchJSON(bodies[0]))
		})
	})

	Context("When using the default client", func() {
		It("should issue sequential identifiers in call order", func() {
			// Given: a default client bound to a stateful controller
			// When: I request greetings for Johan then Erik
			// Then: the identifiers are 1 then 2
			fixture.Scenario.SetDefaultClient(webtestclient.BindToController(handler.New()).Build())

			for i, name := range []string{"Johan", "Erik"} {
				stage := fixture.Scenario.Given(func(g *fluent.RequestSpecification) {
					g.Param("name", fluent.String(name))
				}).When(api.Get(fixture.Endpoints.Greeting())).Then(func(t *fluent.ValidatableResponse) {
					t.Body("id", i+1, "content", api.ExpectedGreeting(name))
				})

				id, err := fluent.ExtractPath[int](stage, "id")
				Expect(err).NotTo(HaveOccurred())
				Expect(id).To(Equal(i + 1))
			}
		})
	})

	Context("When talking to a server", func() {
		It("should issue strictly increasing identifiers", func() {
			// Given: a running server that may already have issued greetings
			// When: I request two greetings
			// Then: the second identifier follows the first
			fixture.Scenario.SetDefaultClient(fixture.Client)

			name := api.GenerateTestName()

			first, err := fluent.ExtractPath[int64](fixture.Scenario.Given(func(g *fluent.RequestSpecification) {
				g.Param("name", fluent.String(name))
			}).When(api.Get(fixture.Endpoints.Greeting())).Then(func(t *fluent.ValidatableResponse) {
				t.StatusCode(http.StatusOK).Body("id", BeNumerically(">=", 1), "content", api.ExpectedGreeting(name))
			}), "id")
			Expect(err).NotTo(HaveOccurred())

			second, err := fluent.ExtractPath[int64](fixture.Scenario.Given(func(g *fluent.RequestSpecification) {
				g.Param("name", fluent.String(name))
			}).When(api.Get(fixture.Endpoints.Greeting())), "id")
			Expect(err).NotTo(HaveOccurred())

			Expect(second).To(BeNumerically(">", first))
		})

		It("should greet the world by default", func() {
			fixture.Scenario.Given(func(g *fluent.RequestSpecification) {
				g.WebTestClient(fixture.Client)
			}).When(api.Get(fixture.Endpoints.Greeting())).Then(func(t *fluent.ValidatableResponse) {
				t.StatusCode(http.StatusOK).
					ContentType("application/json").
					Header("Cache-Control", "no-cache").
					Body("content", api.ExpectedGreeting(""))
			})
		})

		It("should conform to the published schema", func() {
			schema, err := openapi.Schema()
			Expect(err).NotTo(HaveOccurred())

			fixture.Scenario.Given(func(g *fluent.RequestSpecification) {
				g.WebTestClient(fixture.Client).Param("name", fluent.String(api.GenerateTestName()))
			}).When(api.Get(fixture.Endpoints.Greeting())).Then(func(t *fluent.ValidatableResponse) {
				t.StatusCode(http.StatusOK).MatchesOpenAPI(schema)
			})
		})

		It("should publish its schema", func() {
			fixture.Scenario.Given(func(g *fluent.RequestSpecification) {
				g.WebTestClient(fixture.Client)
			}).When(api.Get(fixture.Endpoints.OpenAPISpec())).Then(func(t *fluent.ValidatableResponse) {
				t.StatusCode(http.StatusOK).
					Body("openapi", HavePrefix("3."), "$.paths['/greeting'].get.responses['200']", Not(BeNil()))
			})
		})
	})
})
