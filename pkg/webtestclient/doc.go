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

// Package webtestclient provides a test client that can be bound to a
// controller, a functional router, an arbitrary handler, or a running
// server.  Bound handlers are exercised in process with a response
// recorder, while servers are reached over HTTP.
//
// Every request carries a W3C trace context so that a failing test can be
// correlated with server side logs, and every response is fully buffered
// so that it can be verified and have values extracted from it any number
// of times without being consumed.
package webtestclient
