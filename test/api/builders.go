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

package api

import (
	"fmt"

	"github.com/unikorn-cloud/fluenttest/pkg/greeting"

	"k8s.io/apimachinery/pkg/util/rand"
)

func generateRandomName(prefix string) string {
	return fmt.Sprintf("%s-%s", prefix, rand.String(8))
}

// GenerateTestName returns a unique name to greet, so specs sharing a live
// server can tell their greetings apart.
func GenerateTestName() string {
	return generateRandomName("test")
}

// ExpectedGreeting is the content returned for a name, or the default name
// if empty.
func ExpectedGreeting(name string) string {
	if name == "" {
		name = greeting.DefaultName
	}

	return fmt.Sprintf("Hello, %s!", name)
}
