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
	"errors"
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/unikorn-cloud/fluenttest/pkg/fluent"
	"github.com/unikorn-cloud/fluenttest/pkg/openapi"
	"github.com/unikorn-cloud/fluenttest/pkg/server/handler"
	"github.com/unikorn-cloud/fluenttest/pkg/webtestclient"
	"github.com/unikorn-cloud/fluenttest/test/api"
)

var _ = Describe("Error Handling", func() {
	Context("When the request is invalid", func() {
		It("should reject names with control characters", func() {
			// Given: a name containing a control character
			// When: I request a greeting
			// Then: the request is rejected with an OAuth2 style error
			schema, err := openapi.Schema()
			Expect(err).NotTo(HaveOccurred())

			fixture.Scenario.Given(func(g *fluent.RequestSpecification) {
				g.WebTestClient(fixture.Client).Param("name", fluent.String("Jo\x01han"))
			}).When(api.Get(fixture.Endpoints.Greeting())).Then(func(t *fluent.ValidatableResponse) {
				t.StatusCode(http.StatusBadRequest).
					Body("error", string(openapi.InvalidRequest), "error_description", Not(BeEmpty())).
					MatchesOpenAPI(schema)
			})
		})

		It("should reject empty names", func() {
			fixture.Scenario.Given(func(g *fluent.RequestSpecification) {
				g.StandaloneSetup(handler.New()).Param("name", fluent.String(""))
			}).When(api.Get(fixture.Endpoints.Greeting())).Then(func(t *fluent.ValidatableResponse) {
				t.StatusCode(http.StatusBadRequest).Body("error", string(openapi.InvalidRequest))
			})
		})

		It("should report unknown paths", func() {
			fixture.Scenario.Given(func(g *fluent.RequestSpecification) {
				g.WebTestClient(fixture.Client)
			}).When(api.Get(fixture.Endpoints.Missing(), fluent.Int(1))).Then(func(t *fluent.ValidatableResponse) {
				t.StatusCode(http.StatusNotFound).Body("error", string(openapi.NotFound))
			})
		})

		It("should report unsupported methods", func() {
			fixture.Scenario.Given(func(g *fluent.RequestSpecification) {
				g.WebTestClient(fixture.Client).Param("name", fluent.String("Johan"))
			}).When(func(w *fluent.RequestSender) (*webtestclient.Response, error) {
				return w.Post(fixture.Endpoints.Greeting())
			}).Then(func(t *fluent.ValidatableResponse) {
				t.StatusCode(http.StatusMethodNotAllowed).Body("error", string(openapi.MethodNotAllowed))
			})
		})
	})

	Context("When a chain fails", func() {
		It("should report every failed expectation, first failure first", func() {
			// Given: a response that does not meet several expectations
			// When: I verify it
			// Then: every failure is reported with its path, expected and actual values
			scenario := api.NewScenario()

			err := scenario.Given(func(g *fluent.RequestSpecification) {
				g.StandaloneSetup(handler.New()).Param("name", fluent.String("Johan"))
			}).When(api.Get(fixture.Endpoints.Greeting())).Then(func(t *fluent.ValidatableResponse) {
				t.Body("id", 2, "content", "Hello, Erik!")
			}).Err()

			var verificationError *fluent.VerificationError

			Expect(errors.As(err, &verificationError)).To(BeTrue())
			Expect(verificationError.Errors).To(HaveLen(2))
			Expect(verificationError.Errors[0].Error()).To(HavePrefix("JSON path id doesn't match."))
			Expect(verificationError.Errors[1].Error()).To(And(ContainSubstring("Hello, Johan!"), ContainSubstring("Hello, Erik!")))
		})

		It("should report extraction as the wrong type", func() {
			scenario := api.NewScenario()

			stage := scenario.Given(func(g *fluent.RequestSpecification) {
				g.StandaloneSetup(handler.New()).Param("name", fluent.String("Johan"))
			}).When(api.Get(fixture.Endpoints.Greeting())).Then(func(t *fluent.ValidatableResponse) {
				t.Body("content", "Hello, Johan!")
			})

			_, err := fluent.ExtractPath[int](stage, "content")

			var mismatch *fluent.TypeMismatchError

			Expect(errors.As(err, &mismatch)).To(BeTrue())
			Expect(mismatch.Path).To(Equal("content"))
			Expect(mismatch.Actual).To(Equal("Hello, Johan!"))
		})
	})
})
