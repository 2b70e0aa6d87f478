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
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/onsi/gomega/format"
)

var (
	// ErrConfiguration is matched by every ConfigurationError.
	ErrConfiguration = errors.New("configuration error")

	// ErrNoClient is raised when a request has nowhere to go.
	ErrNoClient = errors.New("no client, default client or standalone setup was configured")
)

// ConfigurationError is raised when a chain is used incorrectly, for
// example dispatching with no resolvable client.
type ConfigurationError struct {
	Err error
}

func newConfigurationError(format string, a ...any) *ConfigurationError {
	return &ConfigurationError{
		Err: fmt.Errorf(format, a...),
	}
}

func (e *ConfigurationError) Error() string {
	return "configuration error: " + e.Err.Error()
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

// AssertionError describes a single failed expectation.
type AssertionError struct {
	// Subject describes what was checked e.g. "JSON path id".
	Subject string
	// Path is the JSON path, header or cookie name, if any.
	Path string
	// Message is the matcher's failure message, containing the
	// expected and actual values.
	Message string
	// Actual is the value the matcher was applied to.
	Actual any
	// Err is set when the expectation could not be evaluated at all.
	Err error
}

func (e *AssertionError) Error() string {
	return e.Subject + " doesn't match.\n" + e.Message
}

func (e *AssertionError) Unwrap() error {
	return e.Err
}

// VerificationError collects every failed expectation from a Then block,
// in the order they were made.
type VerificationError struct {
	Errors []error
}

func (e *VerificationError) Error() string {
	messages := make([]string, len(e.Errors))

	for i, err := range e.Errors {
		messages[i] = err.Error()
	}

	return fmt.Sprintf("%d expectation(s) failed.\n%s", len(e.Errors), strings.Join(messages, "\n"))
}

func (e *VerificationError) Unwrap() []error {
	return e.Errors
}

// TypeMismatchError is raised when an extracted value cannot be represented
// as the requested type.
type TypeMismatchError struct {
	Path   string
	Type   reflect.Type
	Actual any
	Err    error
}

func (e *TypeMismatchError) Error() string {
	message := fmt.Sprintf("cannot extract path %s as %v, actual value\n%s", e.Path, e.Type, format.Object(e.Actual, 1))

	if e.Err != nil {
		message += "\n" + e.Err.Error()
	}

	return message
}

func (e *TypeMismatchError) Unwrap() error {
	return e.Err
}
