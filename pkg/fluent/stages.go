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
	"github.com/unikorn-cloud/fluenttest/pkg/webtestclient"
)

// stage holds the outcome of a chain so far.  Once err is set every
// subsequent block is skipped.
type stage struct {
	scenario *Scenario
	response *webtestclient.Response
	err      error
}

// Err returns the first error raised by the chain.
func (s *stage) Err() error {
	return s.err
}

// Response returns the response, nil if dispatch failed.
func (s *stage) Response() *webtestclient.Response {
	return s.response
}

func (s *stage) state() *stage {
	return s
}

func (s *stage) fail(err error) {
	s.err = err
	s.scenario.fail(err)
}

// Stage is a chain that has dispatched a request, either a Dispatched or
// a Verified.
type Stage interface {
	Err() error
	Response() *webtestclient.Response

	state() *stage
}

// Specified is a configured request awaiting dispatch.
type Specified struct {
	scenario *Scenario
	spec     *RequestSpecification
}

// When dispatches the request.  The block must send exactly one request.
func (s *Specified) When(block func(*RequestSender) (*webtestclient.Response, error)) *Dispatched {
	sender := &RequestSender{
		scenario: s.scenario,
		spec:     s.spec,
	}

	d := &Dispatched{
		stage: &stage{
			scenario: s.scenario,
		},
	}

	_, err := block(sender)

	switch {
	case !sender.dispatched:
		d.fail(newConfigurationError("no request was sent by the When block"))
	case sender.err != nil:
		d.fail(sender.err)
	case err != nil:
		d.fail(err)
	default:
		d.response = sender.response
	}

	return d
}

// Dispatched is a chain with a response awaiting verification.
type Dispatched struct {
	*stage
}

// Then applies the verification blocks in order.  Every failed expectation is
// collected into a single VerificationError.
func (d *Dispatched) Then(blocks ...func(*ValidatableResponse)) *Verified {
	v := &Verified{
		stage: &stage{
			scenario: d.scenario,
			response: d.response,
			err:      d.err,
		},
	}

	if v.err != nil {
		return v
	}

	validatable := &ValidatableResponse{
		response: d.response,
	}

	for _, block := range blocks {
		block(validatable)
	}

	if err := validatable.Err(); err != nil {
		v.fail(err)
	}

	return v
}

// Verified is a chain whose response has been verified.
type Verified struct {
	*stage
}
