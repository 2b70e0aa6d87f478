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

package openapi

// Defines values for ErrorError.
const (
	InvalidRequest   ErrorError = "invalid_request"
	NotFound         ErrorError = "not_found"
	MethodNotAllowed ErrorError = "method_not_allowed"
	ServerError      ErrorError = "server_error"
)

// Greeting A greeting.
type Greeting struct {
	// Content The greeting text.
	Content string `json:"content"`

	// Id Sequential identifier, starting at 1 for each controller.
	Id int64 `json:"id"` //nolint:revive,stylecheck
}

// Error Generic error message.
type Error struct {
	// Error A terse error string.
	Error ErrorError `json:"error"`

	// ErrorDescription Verbose message describing the error.
	ErrorDescription string `json:"error_description"`
}

// ErrorError A terse error string.
type ErrorError string

// NameParameter defines model for nameParameter.
type NameParameter = GreetingName

// GetGreetingParams defines parameters for GetGreeting.
type GetGreetingParams struct {
	// Name Who to greet.
	Name *NameParameter `form:"name,omitempty" json:"name,omitempty"`
}
