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

import (
	"errors"
	"regexp"
)

var ErrInvalidGreetingName = errors.New("invalid name: must be non-empty and must not contain control characters")

var greetingNameValidationRegex = regexp.MustCompile(`^[^\p{Cc}]+$`)

// GreetingName is who is being greeted, it's bound directly from the query.
type GreetingName struct {
	Value string
}

func (n *GreetingName) UnmarshalText(text []byte) error {
	if !greetingNameValidationRegex.Match(text) {
		return ErrInvalidGreetingName
	}

	*n = GreetingName{
		Value: string(text),
	}

	return nil
}

func (n GreetingName) MarshalText() ([]byte, error) {
	return []byte(n.Value), nil
}

// Bind implements runtime.Binder so the name can be bound from a query
// parameter by generated parameter binding code.
func (n *GreetingName) Bind(src string) error {
	return n.UnmarshalText([]byte(src))
}
