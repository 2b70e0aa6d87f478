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
	"strconv"
)

// Value is a request parameter value.  The set of implementations is
// closed, use the constructors below.
type Value interface {
	// String renders the value as sent on the wire.
	String() string

	value()
}

type stringValue string

func (v stringValue) String() string {
	return string(v)
}

func (stringValue) value() {}

type intValue int64

// String renders base 10 with no grouping or padding.
func (v intValue) String() string {
	return strconv.FormatInt(int64(v), 10)
}

func (intValue) value() {}

type boolValue bool

func (v boolValue) String() string {
	return strconv.FormatBool(bool(v))
}

func (boolValue) value() {}

// String sends the value verbatim.
func String(v string) Value {
	return stringValue(v)
}

// Int sends the decimal form of the value.
func Int(v int) Value {
	return intValue(v)
}

// Int64 sends the decimal form of the value.
func Int64(v int64) Value {
	return intValue(v)
}

// Bool sends "true" or "false".
func Bool(v bool) Value {
	return boolValue(v)
}
