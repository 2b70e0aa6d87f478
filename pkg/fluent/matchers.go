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
	"fmt"

	"github.com/onsi/gomega"
	"github.com/onsi/gomega/types"

	"github.com/unikorn-cloud/fluenttest/pkg/webtestclient"
)

// ResponseAwareMatcher builds a matcher from the response under test,
// allowing one part of a response to be checked against another.
type ResponseAwareMatcher interface {
	Matcher(response *webtestclient.Response) (types.GomegaMatcher, error)
}

// ResponseAwareMatcherFunc adapts a function to a ResponseAwareMatcher.
type ResponseAwareMatcherFunc func(response *webtestclient.Response) (types.GomegaMatcher, error)

func (f ResponseAwareMatcherFunc) Matcher(response *webtestclient.Response) (types.GomegaMatcher, error) {
	return f(response)
}

// pathMatcher looks up a path and builds a matcher from its value.
func pathMatcher(path string, matcher func(value any) types.GomegaMatcher) ResponseAwareMatcher {
	return ResponseAwareMatcherFunc(func(response *webtestclient.Response) (types.GomegaMatcher, error) {
		value, err := response.Path(path)
		if err != nil {
			return nil, err
		}

		return matcher(value), nil
	})
}

// EqualToPath matches the value at another path in the same response.
func EqualToPath(path string) ResponseAwareMatcher {
	return pathMatcher(path, func(value any) types.GomegaMatcher {
		if value == nil {
			return gomega.BeNil()
		}

		return gomega.Equal(value)
	})
}

// StartsWithPath matches strings prefixed by the value at another path.
func StartsWithPath(path string) ResponseAwareMatcher {
	return pathMatcher(path, func(value any) types.GomegaMatcher {
		return gomega.HavePrefix(fmt.Sprint(value))
	})
}

// EndsWithPath matches strings suffixed by the value at another path.
func EndsWithPath(path string) ResponseAwareMatcher {
	return pathMatcher(path, func(value any) types.GomegaMatcher {
		return gomega.HaveSuffix(fmt.Sprint(value))
	})
}

// ContainsPath matches strings containing the value at another path.
func ContainsPath(path string) ResponseAwareMatcher {
	return pathMatcher(path, func(value any) types.GomegaMatcher {
		return gomega.ContainSubstring(fmt.Sprint(value))
	})
}
