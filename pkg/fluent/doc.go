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

// Package fluent provides a Given/When/Then/Extract syntax over the web test
// client.  Each stage returns a type that only exposes the operations valid
// at that point, so a response cannot be verified before it is dispatched:
//
//	id, err := fluent.ExtractPath[int](scenario.Given(func(g *fluent.RequestSpecification) {
//		g.StandaloneSetup(controller).Param("name", fluent.String("Johan"))
//	}).When(func(w *fluent.RequestSender) (*webtestclient.Response, error) {
//		return w.Get("/greeting")
//	}).Then(func(t *fluent.ValidatableResponse) {
//		t.Body("id", 1, "content", "Hello, Johan!")
//	}), "id")
//
// Clients are resolved at dispatch time in the order: explicit client,
// scenario default client, standalone controllers.
package fluent
