/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package parser decodes design token files into token trees and encodes
// them back in the on-disk format.
package parser

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"bennypowers.dev/tokengraph/fs"
	"bennypowers.dev/tokengraph/token"
)

// Parse parses JSON, JSON-with-comments or YAML token data into a group tree.
// Key order of the source document is preserved.
func Parse(data []byte) (*token.Group, error) {
	// Detect format: JSON typically starts with '{' or whitespace then '{'
	// YAML uses indentation-based structure
	if isLikelyJSON(data) {
		cleanJSON := jsonc.ToJSON(data)
		g, err := token.DecodeJSON(cleanJSON)
		if err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
		return g, nil
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if len(root.Content) == 0 {
		return token.NewGroup(), nil
	}
	v, err := nodeValue(root.Content[0])
	if err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	o, ok := v.(*token.Object)
	if !ok {
		return nil, fmt.Errorf("YAML root must be an object: %w", token.ErrInvalidDocument)
	}
	return token.GroupFromObject(o), nil
}

// ParseFile reads and parses a token file.
func ParseFile(filesystem fs.FileSystem, path string) (*token.Group, error) {
	data, err := filesystem.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}
	g, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse file %s: %w", path, err)
	}
	return g, nil
}

// Marshal encodes a token file as two-space indented JSON with a trailing
// newline. HTML characters are written verbatim. Generators byte-compare
// this output, so the layout must stay stable.
func Marshal(g *token.Group) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(g); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// isLikelyJSON checks if data appears to be JSON rather than YAML.
// JSON typically starts with '{' (optionally preceded by whitespace/BOM).
func isLikelyJSON(data []byte) bool {
	for _, b := range data {
		switch b {
		case ' ', '\t', '\n', '\r':
			continue
		case 0xEF, 0xBB, 0xBF: // UTF-8 BOM
			continue
		case '/': // leading comment
			return true
		case '{':
			return true
		default:
			return false
		}
	}
	return false
}

// nodeValue converts a yaml.v3 node into token values, keeping mapping order.
// Numbers become float64 so that JSON and YAML sources compare equal.
func nodeValue(node *yaml.Node) (any, error) {
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return nil, nil
		}
		return nodeValue(node.Content[0])
	case yaml.AliasNode:
		return nodeValue(node.Alias)
	case yaml.MappingNode:
		o := token.NewObject()
		for i := 0; i+1 < len(node.Content); i += 2 {
			v, err := nodeValue(node.Content[i+1])
			if err != nil {
				return nil, err
			}
			o.Set(node.Content[i].Value, v)
		}
		return o, nil
	case yaml.SequenceNode:
		arr := make([]any, 0, len(node.Content))
		for _, child := range node.Content {
			v, err := nodeValue(child)
			if err != nil {
				return nil, err
			}
			arr = append(arr, v)
		}
		return arr, nil
	default:
		var v any
		if err := node.Decode(&v); err != nil {
			return nil, err
		}
		return normalizeNumber(v), nil
	}
}

func normalizeNumber(v any) any {
	switch n := v.(type) {
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case uint64:
		return float64(n)
	default:
		return v
	}
}
