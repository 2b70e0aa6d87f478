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
	"bytes"
	"encoding/json"
	"net/http"
	"reflect"

	"github.com/unikorn-cloud/fluenttest/pkg/webtestclient"
)

// ExtractableResponse reads values out of a dispatched response.
type ExtractableResponse struct {
	response *webtestclient.Response
}

// Response returns the underlying response.
func (e *ExtractableResponse) Response() *webtestclient.Response {
	return e.response
}

// Path returns the untyped value at a JSON path.
func (e *ExtractableResponse) Path(path string) (any, error) {
	return e.response.Path(path)
}

func (e *ExtractableResponse) StatusCode() int {
	return e.response.StatusCode
}

func (e *ExtractableResponse) Header(name string) string {
	return e.response.Header.Get(name)
}

func (e *ExtractableResponse) Cookie(name string) (*http.Cookie, bool) {
	return e.response.Cookie(name)
}

func (e *ExtractableResponse) Body() []byte {
	return e.response.Body
}

func (e *ExtractableResponse) AsString() string {
	return e.response.String()
}

// nillable types can represent an absent value.
func nillable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Interface, reflect.Map, reflect.Pointer, reflect.Slice:
		return true
	}

	return false
}

// Path returns the value at a JSON path as the requested type.  Values are
// converted as encoding/json would, so a JSON number cannot be read as
// a string and vice versa.
func Path[T any](e *ExtractableResponse, path string) (T, error) {
	var result T

	value, err := e.Path(path)
	if err != nil {
		return result, err
	}

	if t, ok := value.(T); ok {
		return t, nil
	}

	resultType := reflect.TypeFor[T]()

	mismatch := func(err error) error {
		return &TypeMismatchError{
			Path:   path,
			Type:   resultType,
			Actual: value,
			Err:    err,
		}
	}

	if value == nil {
		if nillable(resultType) {
			return result, nil
		}

		return result, mismatch(nil)
	}

	data, err := json.Marshal(value)
	if err != nil {
		return result, mismatch(err)
	}

	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(&result); err != nil {
		return result, mismatch(err)
	}

	return result, nil
}

// Extract runs the extraction function on the response held by the stage.
// The request is never sent again.  Any earlier error in the chain is
// returned without calling the function.
func Extract[T any](s Stage, extract func(*ExtractableResponse) (T, error)) (T, error) {
	var result T

	state := s.state()

	if state.err != nil {
		return result, state.err
	}

	result, err := extract(&ExtractableResponse{response: state.response})
	if err != nil {
		state.fail(err)

		return result, err
	}

	return result, nil
}

// ExtractPath returns the value at a JSON path as the requested type.
func ExtractPath[T any](s Stage, path string) (T, error) {
	return Extract(s, func(e *ExtractableResponse) (T, error) {
		return Path[T](e, path)
	})
}
