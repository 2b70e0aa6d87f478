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
	"net/http"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

// Response is a fully buffered response.  It is never modified once returned
// by Execute.
type Response struct {
	// StatusCode is the HTTP status code.
	StatusCode int
	// Header contains the response headers.
	Header http.Header
	// Body is the raw response body.
	Body []byte
	// Request is the request that yielded this response.
	Request *http.Request
	// Duration is how long the round trip took.
	Duration time.Duration
	// TraceParent is the W3C trace context sent with the request.
	TraceParent string

	parseOnce sync.Once
	document  *yaml.Node
	parseErr  error
}

// String returns the body as a string.
func (r *Response) String() string {
	return string(r.Body)
}

// ContentType returns the content type header.
func (r *Response) ContentType() string {
	return r.Header.Get("Content-Type")
}

// Cookies parses any Set-Cookie headers.
func (r *Response) Cookies() []*http.Cookie {
	return (&http.Response{Header: r.Header}).Cookies()
}

// Cookie returns the named cookie if set.
func (r *Response) Cookie(name string) (*http.Cookie, bool) {
	for _, cookie := range r.Cookies() {
		if cookie.Name == name {
			return cookie, true
		}
	}

	return nil, false
}

func (r *Response) parse() (*yaml.Node, error) {
	r.parseOnce.Do(func() {
		r.document, r.parseErr = parseDocument(r.Body)
	})

	return r.document, r.parseErr
}

// JSON returns the whole decoded body.
func (r *Response) JSON() (any, error) {
	return r.Path("$")
}

// Path evaluates a JSON path against the body.  Paths may be given in
// shorthand ("store.book[0].author") or as full JSONPath expressions
// ("$.store.book[*].author").  A trailing ".size()" yields the number of
// elements selected.  Definite paths that select nothing return nil.
func (r *Response) Path(path string) (any, error) {
	document, err := r.parse()
	if err != nil {
		return nil, err
	}

	return evaluate(document, path)
}
