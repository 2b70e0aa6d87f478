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
	"sync"

	"github.com/go-logr/logr"
	"github.com/onsi/gomega/types"

	"github.com/unikorn-cloud/fluenttest/pkg/webtestclient"
)

// Scenario owns the default client used by requests that do not name their
// own.  Create one per test scope and reset it during cleanup.
type Scenario struct {
	lock sync.Mutex

	// client is the default client, nil when unset.
	client webtestclient.Interface

	logger logr.Logger

	// failHandler, when set, is called with the first error of each chain.
	failHandler types.GomegaFailHandler
}

// Option configures a scenario.
type Option func(*Scenario)

// WithLogger logs dispatches and failures.
func WithLogger(logger logr.Logger) Option {
	return func(s *Scenario) {
		s.logger = logger
	}
}

// WithFailHandler reports chain failures, e.g. to ginkgo.Fail.
func WithFailHandler(handler types.GomegaFailHandler) Option {
	return func(s *Scenario) {
		s.failHandler = handler
	}
}

// WithDefaultClient starts the scenario with a default client set.
func WithDefaultClient(client webtestclient.Interface) Option {
	return func(s *Scenario) {
		s.client = client
	}
}

// NewScenario creates a scenario with no default client.
func NewScenario(options ...Option) *Scenario {
	s := &Scenario{
		logger: logr.Discard(),
	}

	for _, o := range options {
		o(s)
	}

	return s
}

// SetDefaultClient replaces any existing default client.
func (s *Scenario) SetDefaultClient(client webtestclient.Interface) {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.client = client
}

// ResetDefaultClient clears the default client.  It may be called any number
// of times.
func (s *Scenario) ResetDefaultClient() {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.client = nil
}

// DefaultClient returns the default client, if set.
func (s *Scenario) DefaultClient() (webtestclient.Interface, bool) {
	s.lock.Lock()
	defer s.lock.Unlock()

	return s.client, s.client != nil
}

// Given starts a chain, applying the configuration blocks in order.
func (s *Scenario) Given(blocks ...func(*RequestSpecification)) *Specified {
	spec := newRequestSpecification()

	for _, block := range blocks {
		block(spec)
	}

	return &Specified{
		scenario: s,
		spec:     spec,
	}
}

// fail reports the first error of a chain to the fail handler.
func (s *Scenario) fail(err error) {
	s.logger.V(1).Info("chain failed", "error", err.Error())

	if s.failHandler != nil {
		// Skip fail, the stage method and the test's call site.
		s.failHandler(err.Error(), 2)
	}
}

// sharedScenario backs the package level functions.  Access is serialized by
// the scenario lock, tests running in parallel should use their own Scenario.
//
//nolint:gochecknoglobals
var sharedScenario = NewScenario()

// Given starts a chain against the shared scenario.
func Given(blocks ...func(*RequestSpecification)) *Specified {
	return sharedScenario.Given(blocks...)
}

// SetDefaultClient sets the shared scenario's default client.
func SetDefaultClient(client webtestclient.Interface) {
	sharedScenario.SetDefaultClient(client)
}

// ResetDefaultClient clears the shared scenario's default client.
func ResetDefaultClient() {
	sharedScenario.ResetDefaultClient()
}

// DefaultClient returns the shared scenario's default client, if set.
func DefaultClient() (webtestclient.Interface, bool) {
	return sharedScenario.DefaultClient()
}
