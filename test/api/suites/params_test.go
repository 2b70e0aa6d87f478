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

	"github.com/unikorn-cloud/fluenttest/pkg/fluent"
	"github.com/unikorn-cloud/fluenttest/pkg/server/handler"
	"github.com/unikorn-cloud/fluenttest/test/api"
)

var _ = Describe("Parameters", func() {
	Context("When configuring request parameters", func() {
		DescribeTable("should send the value verbatim",
			func(value fluent.Value, expected string) {
				// Given: a parameter of any supported type
				// When: I request a greeting
				// Then: the parameter arrives in its string form
				fixture.Scenario.Given(func(g *fluent.RequestSpecification) {
					g.StandaloneSetup(handler.New()).Param("name", value)
				}).When(api.Get(fixture.Endpoints.Greeting())).Then(func(t *fluent.ValidatableResponse) {
					t.Body("content", api.ExpectedGreeting(expected))
				})
			},
			Entry("a string", fluent.String("Johan"), "Johan"),
			Entry("a string with spaces", fluent.String("Johan Svensson"), "Johan Svensson"),
			Entry("a string with leading zeros", fluent.String("007"), "007"),
			Entry("an integer", fluent.Int(7), "7"),
			Entry("zero", fluent.Int(0), "0"),
			Entry("a negative integer", fluent.Int(-42), "-42"),
			Entry("a large integer without grouping", fluent.Int64(1234567890123), "1234567890123"),
			Entry("a boolean", fluent.Bool(true), "true"),
		)

		It("should use the last value for a repeated name", func() {
			fixture.Scenario.Given(func(g *fluent.RequestSpecification) {
				g.StandaloneSetup(handler.New()).
					Param("name", fluent.String("Johan")).
					Param("name", fluent.String("Erik"))
			}).When(api.Get(fixture.Endpoints.Greeting())).Then(func(t *fluent.ValidatableResponse) {
				t.Body("content", "Hello, Erik!")
			})
		})

		It("should send query parameters over the wire", func() {
			fixture.Scenario.Given(func(g *fluent.RequestSpecification) {
				g.WebTestClient(fixture.Client).QueryParam("name", fluent.Int(42))
			}).When(api.Get(fixture.Endpoints.Greeting())).Then(func(t *fluent.ValidatableResponse) {
				t.StatusCode(http.StatusOK).Body("content", "Hello, 42!")
			})
		})
	})
})
