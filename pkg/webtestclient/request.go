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
	"bytes"
	"fmt"
	"io"
	"maps"
	"net/http"
	"net/url"
	"regexp"
	"slices"
	"strings"

	"github.com/spjmurray/go-util/pkg/set"
)

// Request is a fully configured test request.
type Request struct {
	// Method is the HTTP method.
	Method string
	// Path is the request path, which may contain {name} placeholders
	// and a literal query string.
	Path string
	// PathParams are substituted into the path placeholders.
	PathParams map[string]string
	// Query parameters are appended to the URL.
	Query url.Values
	// Form parameters are sent as a URL encoded body when no body
	// is set.
	Form url.Values
	// Header are additional request headers.
	Header http.Header
	// Cookies are sent with the request.
	Cookies []*http.Cookie
	// Body is the raw request body.
	Body []byte
}

// NewRequest returns an empty request for the method and path.
func NewRequest(method, path string) *Request {
	return &Request{
		Method:     method,
		Path:       path,
		PathParams: map[string]string{},
		Query:      url.Values{},
		Form:       url.Values{},
		Header:     http.Header{},
	}
}

var placeholderRegex = regexp.MustCompile(`\{([^{}/]+)\}`)

// Placeholders returns the names of all path placeholders in order
// of appearance.
func Placeholders(path string) []string {
	matches := placeholderRegex.FindAllStringSubmatch(path, -1)

	names := make([]string, 0, len(matches))

	for _, match := range matches {
		if !slices.Contains(names, match[1]) {
			names = append(names, match[1])
		}
	}

	return names
}

// expandPath substitutes path parameters into the template.  Every
// placeholder must be provided, and every parameter must be used.
func expandPath(path string, params map[string]string) (string, error) {
	provided := set.New[string](slices.Collect(maps.Keys(params))...)
	used := set.New[string](Placeholders(path)...)

	if missing := slices.Sorted(used.Difference(provided).All()); len(missing) > 0 {
		return "", fmt.Errorf("%w: path %s has unresolved placeholders %s", ErrPathParameter, path, strings.Join(missing, ", "))
	}

	if unused := slices.Sorted(provided.Difference(used).All()); len(unused) > 0 {
		return "", fmt.Errorf("%w: path parameters %s were not used in path %s", ErrPathParameter, strings.Join(unused, ", "), path)
	}

	expanded := placeholderRegex.ReplaceAllStringFunc(path, func(placeholder string) string {
		return url.PathEscape(params[placeholder[1:len(placeholder)-1]])
	})

	return expanded, nil
}

// target returns the path and query string to request, merging any query
// in the path template with the configured query parameters.
func (r *Request) target() (string, error) {
	path, err := expandPath(r.Path, r.PathParams)
	if err != nil {
		return "", err
	}

	u, err := url.Parse(path)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrPathParameter, err)
	}

	query := u.Query()

	for name, values := range r.Query {
		query[name] = values
	}

	u.RawQuery = query.Encode()

	return u.String(), nil
}

// body returns the request body and any implied content type.
func (r *Request) body() (io.Reader, string) {
	if r.Body != nil {
		return bytes.NewReader(r.Body), ""
	}

	if len(r.Form) > 0 {
		return strings.NewReader(r.Form.Encode()), "application/x-www-form-urlencoded"
	}

	return http.NoBody, ""
}
