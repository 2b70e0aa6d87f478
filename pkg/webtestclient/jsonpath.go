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
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/vmware-labs/yaml-jsonpath/pkg/yamlpath"

	"gopkg.in/yaml.v3"
)

// sizeSuffix returns the length of whatever the rest of the path selects,
// e.g. "store.book.size()".
const sizeSuffix = "size()"

// quotedNameRegex matches quoted member names, e.g. $['x:y'], whose
// contents never make a path indefinite.
var quotedNameRegex = regexp.MustCompile(`'(?:[^'\\]|\\.)*'|"(?:[^"\\]|\\.)*"`)

// YAML core schema tags for the node tree built from JSON.
const (
	nullTag  = "!!null"
	boolTag  = "!!bool"
	intTag   = "!!int"
	floatTag = "!!float"
	strTag   = "!!str"
	seqTag   = "!!seq"
	mapTag   = "!!map"
)

// parseDocument parses a JSON body into a YAML node tree for path evaluation.
// The body is tokenized with encoding/json, so any valid JSON is accepted,
// key order is preserved and integers stay distinct from floating point.
func parseDocument(body []byte) (*yaml.Node, error) {
	if !json.Valid(body) {
		return nil, ErrNotJSON
	}

	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.UseNumber()

	return decodeNode(decoder)
}

func scalarNode(tag, value string) *yaml.Node {
	return &yaml.Node{
		Kind:  yaml.ScalarNode,
		Tag:   tag,
		Value: value,
	}
}

func decodeNode(decoder *json.Decoder) (*yaml.Node, error) {
	token, err := decoder.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotJSON, err)
	}

	switch t := token.(type) {
	case json.Delim:
		return decodeCollection(decoder, t)
	case string:
		return scalarNode(strTag, t), nil
	case json.Number:
		if _, err := t.Int64(); err == nil {
			return scalarNode(intTag, t.String()), nil
		}

		return scalarNode(floatTag, t.String()), nil
	case bool:
		return scalarNode(boolTag, strconv.FormatBool(t)), nil
	case nil:
		return scalarNode(nullTag, "null"), nil
	}

	return nil, fmt.Errorf("%w: unexpected token %v", ErrNotJSON, token)
}

func decodeCollection(decoder *json.Decoder, delim json.Delim) (*yaml.Node, error) {
	var node *yaml.Node

	switch delim {
	case '{':
		node = &yaml.Node{Kind: yaml.MappingNode, Tag: mapTag}
	case '[':
		node = &yaml.Node{Kind: yaml.SequenceNode, Tag: seqTag}
	default:
		return nil, fmt.Errorf("%w: unexpected delimiter %v", ErrNotJSON, delim)
	}

	for decoder.More() {
		if node.Kind == yaml.MappingNode {
			key, err := decoder.Token()
			if err != nil {
				return nil, fmt.Errorf("%w: %w", ErrNotJSON, err)
			}

			name, ok := key.(string)
			if !ok {
				return nil, fmt.Errorf("%w: unexpected object key %v", ErrNotJSON, key)
			}

			node.Content = append(node.Content, scalarNode(strTag, name))
		}

		value, err := decodeNode(decoder)
		if err != nil {
			return nil, err
		}

		node.Content = append(node.Content, value)
	}

	// Consume the closing delimiter.
	if _, err := decoder.Token(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotJSON, err)
	}

	return node, nil
}

// nodeValue converts a node back into the natural Go types of a JSON
// document: maps, slices, strings, bool, int and float64.
func nodeValue(node *yaml.Node) (any, error) {
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) != 1 {
			return nil, ErrNotJSON
		}

		return nodeValue(node.Content[0])
	case yaml.AliasNode:
		return nodeValue(node.Alias)
	case yaml.MappingNode:
		object := make(map[string]any, len(node.Content)/2)

		for i := 0; i+1 < len(node.Content); i += 2 {
			value, err := nodeValue(node.Content[i+1])
			if err != nil {
				return nil, err
			}

			object[node.Content[i].Value] = value
		}

		return object, nil
	case yaml.SequenceNode:
		array := make([]any, len(node.Content))

		for i := range node.Content {
			value, err := nodeValue(node.Content[i])
			if err != nil {
				return nil, err
			}

			array[i] = value
		}

		return array, nil
	case yaml.ScalarNode:
		return scalarValue(node)
	}

	return nil, fmt.Errorf("%w: unexpected node kind %v", ErrNotJSON, node.Kind)
}

func scalarValue(node *yaml.Node) (any, error) {
	switch node.Tag {
	case nullTag:
		return nil, nil
	case boolTag:
		return node.Value == "true", nil
	case intTag:
		value, err := strconv.ParseInt(node.Value, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrNotJSON, err)
		}

		return int(value), nil
	case floatTag:
		// Out of range values saturate to infinity.
		value, err := strconv.ParseFloat(node.Value, 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return nil, fmt.Errorf("%w: %w", ErrNotJSON, err)
		}

		return value, nil
	}

	return node.Value, nil
}

// normalizePath turns the shorthand "a.b[0]" form into a JSONPath
// expression.
func normalizePath(path string) string {
	path = strings.TrimSpace(path)

	switch {
	case path == "", path == "$":
		return "$"
	case strings.HasPrefix(path, "$"):
		return path
	case strings.HasPrefix(path, "["):
		return "$" + path
	}

	return "$." + path
}

// isDefinite reports whether a path selects at most one node, otherwise
// the result is always a list.  Quoted member names are ignored, and the
// slice, union and filter punctuation only counts inside brackets.
func isDefinite(path string) bool {
	path = quotedNameRegex.ReplaceAllString(path, "''")

	if strings.Contains(path, "..") {
		return false
	}

	depth := 0

	for _, r := range path {
		switch {
		case r == '[':
			depth++
		case r == ']':
			depth--
		case r == '*':
			return false
		case depth > 0 && strings.ContainsRune(":,?", r):
			return false
		}
	}

	return true
}

// evaluate selects a value from the document.
func evaluate(root *yaml.Node, path string) (any, error) {
	trimmed := strings.TrimSpace(path)

	if trimmed == sizeSuffix || strings.HasSuffix(trimmed, "."+sizeSuffix) {
		value, err := evaluate(root, strings.TrimSuffix(strings.TrimSuffix(trimmed, sizeSuffix), "."))
		if err != nil {
			return nil, err
		}

		return size(path, value)
	}

	expression := normalizePath(trimmed)

	compiled, err := yamlpath.NewPath(expression)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidPath, path, err)
	}

	nodes, err := compiled.Find(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidPath, path, err)
	}

	values := make([]any, len(nodes))

	for i, node := range nodes {
		value, err := nodeValue(node)
		if err != nil {
			return nil, fmt.Errorf("decoding %s: %w", path, err)
		}

		values[i] = value
	}

	if !isDefinite(expression) {
		return values, nil
	}

	switch len(values) {
	case 0:
		return nil, nil
	case 1:
		return values[0], nil
	}

	return values, nil
}

func size(path string, value any) (int, error) {
	switch t := value.(type) {
	case []any:
		return len(t), nil
	case map[string]any:
		return len(t), nil
	case string:
		return len(t), nil
	}

	return 0, fmt.Errorf("%w: %s: cannot take the size of %T", ErrInvalidPath, path, value)
}
