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

package webtestclient

import (
	"errors"
)

var (
	// ErrPathParameter is raised when a path template and its parameters
	// do not line up.
	ErrPathParameter = errors.New("path parameter error")

	// ErrInvalidPath is raised when a JSON path expression cannot be parsed.
	ErrInvalidPath = errors.New("invalid path expression")

	// ErrNotJSON is raised when a path is evaluated against a body that
	// cannot be parsed.
	ErrNotJSON = errors.New("response body is not JSON")

	// ErrUnbound is raised when a client has neither a handler nor a server.
	ErrUnbound = errors.New("client is not bound to a handler or server")
)
