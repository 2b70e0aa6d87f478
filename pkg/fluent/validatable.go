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
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/onsi/gomega"
	"github.com/onsi/gomega/types"

	openapimiddleware "github.com/unikorn-cloud/fluenttest/pkg/server/middleware/openapi"
	"github.com/unikorn-cloud/fluenttest/pkg/webtestclient"
)

// ValidatableResponse verifies a response in a Then block.  Expectations
// are plain values, compared with gomega.Equal, Gomega matchers or
// ResponseAwareMatchers.  Failures are collected rather than returned
// so that every failure is reported.
type ValidatableResponse struct {
	response *webtestclient.Response
	failures []error
	err      error
}

// Err returns a ConfigurationError for misuse, otherwise a VerificationError
// if any expectations failed.
func (v *ValidatableResponse) Err() error {
	if v.err != nil {
		return v.err
	}

	if len(v.failures) > 0 {
		return &VerificationError{
			Errors: v.failures,
		}
	}

	return nil
}

// Response returns the response being verified.
func (v *ValidatableResponse) Response() *webtestclient.Response {
	return v.response
}

func (v *ValidatableResponse) matcher(expected any) (types.GomegaMatcher, error) {
	switch t := expected.(type) {
	case ResponseAwareMatcher:
		return t.Matcher(v.response)
	case types.GomegaMatcher:
		return t, nil
	case nil:
		return gomega.BeNil(), nil
	}

	return gomega.Equal(expected), nil
}

func (v *ValidatableResponse) assert(subject, path string, actual, expected any) {
	failure := &AssertionError{
		Subject: subject,
		Path:    path,
		Actual:  actual,
	}

	matcher, err := v.matcher(expected)
	if err != nil {
		failure.Message = err.Error()
		failure.Err = err
		v.failures = append(v.failures, failure)

		return
	}

	ok, err := matcher.Match(actual)
	if err != nil {
		failure.Message = err.Error()
		failure.Err = err
		v.failures = append(v.failures, failure)

		return
	}

	if !ok {
		failure.Message = matcher.FailureMessage(actual)
		v.failures = append(v.failures, failure)
	}
}

func (v *ValidatableResponse) body(path string, expected any) {
	subject := "JSON path " + path

	actual, err := v.response.Path(path)
	if err != nil {
		v.failures = append(v.failures, &AssertionError{
			Subject: subject,
			Path:    path,
			Message: err.Error(),
			Err:     err,
		})

		return
	}

	v.assert(subject, path, actual, expected)
}

// Body checks the value at a JSON path.  Further path and expectation pairs
// may follow.
func (v *ValidatableResponse) Body(path string, expected any, additionalPairs ...any) *ValidatableResponse {
	if len(additionalPairs)%2 != 0 {
		v.err = newConfigurationError("body expectations must be path and expectation pairs, got %d additional values", len(additionalPairs))
		return v
	}

	v.body(path, expected)

	for i := 0; i < len(additionalPairs); i += 2 {
		path, ok := additionalPairs[i].(string)
		if !ok {
			v.err = newConfigurationError("body expectation path must be a string, got %T", additionalPairs[i])
			return v
		}

		v.body(path, additionalPairs[i+1])
	}

	return v
}

// BodyMatches checks the whole body as a string.
func (v *ValidatableResponse) BodyMatches(expected any) *ValidatableResponse {
	v.assert("body", "", v.response.String(), expected)
	return v
}

func (v *ValidatableResponse) StatusCode(expected any) *ValidatableResponse {
	v.assert("status code", "", v.response.StatusCode, expected)
	return v
}

func (v *ValidatableResponse) Header(name string, expected any) *ValidatableResponse {
	v.assert("header "+name, name, v.response.Header.Get(name), expected)
	return v
}

func (v *ValidatableResponse) ContentType(expected any) *ValidatableResponse {
	v.assert("content type", "", v.response.ContentType(), expected)
	return v
}

// Cookie checks a cookie's value, the actual value is nil if the cookie
// was not set.
func (v *ValidatableResponse) Cookie(name string, expected any) *ValidatableResponse {
	var actual any

	if cookie, ok := v.response.Cookie(name); ok {
		actual = cookie.Value
	}

	v.assert("cookie "+name, name, actual, expected)

	return v
}

// MatchesOpenAPI checks the response status, headers and body against the
// operation in the document that the request was routed to.
func (v *ValidatableResponse) MatchesOpenAPI(doc *openapi3.T) *ValidatableResponse {
	const subject = "OpenAPI schema"

	fail := func(err error) {
		v.failures = append(v.failures, &AssertionError{
			Subject: subject,
			Message: err.Error(),
			Actual:  v.response.String(),
			Err:     err,
		})
	}

	if v.response.Request == nil {
		fail(newConfigurationError("response has no originating request"))
		return v
	}

	validator, err := openapimiddleware.NewValidator(doc)
	if err != nil {
		fail(err)
		return v
	}

	if err := validator.ValidateResponse(v.response.Request, v.response.StatusCode, v.response.Header, v.response.Body); err != nil {
		fail(err)
	}

	return v
}
