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

// Package api provides integration test utilities for the greeting API.
//
// # Targets
//
// Suites run against a live deployment when API_BASE_URL is set, otherwise
// an in process server is started for every spec.  In both cases requests go
// over HTTP through the web test client, so the fluent chains exercised here
// are identical to those used against controllers bound in process.
//
// # Scenarios
//
// Every spec gets its own fluent.Scenario whose default client is reset
// during cleanup, whether or not the spec passed.  Failures are reported
// through Ginkgo, so a failed chain aborts the spec at the call site.
package api
