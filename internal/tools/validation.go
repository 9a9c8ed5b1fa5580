// Copyright (C) 2025 Dyne.org foundation
// designed, written and maintained by Denis Roio <jaromil@dyne.org>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package tools

import (
	"fmt"
	"strings"
)

// ValidationRule checks tool arguments and returns an error if invalid.
type ValidationRule func(args map[string]interface{}) error

// ChainValidation runs rules in order until the first error.
func ChainValidation(rules ...ValidationRule) ValidationRule {
	return func(args map[string]interface{}) error {
		for _, rule := range rules {
			if rule == nil {
				continue
			}
			if err := rule(args); err != nil {
				return err
			}
		}
		return nil
	}
}

// RequireStringArg ensures a string argument is present and non-empty.
func RequireStringArg(key, message string) ValidationRule {
	return func(args map[string]interface{}) error {
		value, ok := args[key]
		if !ok || value == nil {
			return fmt.Errorf("%s", message)
		}
		str, ok := value.(string)
		if !ok || strings.TrimSpace(str) == "" {
			return fmt.Errorf("%s", message)
		}
		return nil
	}
}

// RequireRawStringArg ensures an argument is present and is a string. The
// empty string is accepted; tools that reject it do so with their own
// result message rather than a validation error.
func RequireRawStringArg(key, message string) ValidationRule {
	return func(args map[string]interface{}) error {
		value, ok := args[key]
		if !ok || value == nil {
			return fmt.Errorf("%s", message)
		}
		if _, ok := value.(string); !ok {
			return fmt.Errorf("%s", message)
		}
		return nil
	}
}

// RequireStringListArg ensures an argument is a list of strings. An empty
// list is accepted and yields an empty batch result.
func RequireStringListArg(key, message string) ValidationRule {
	return func(args map[string]interface{}) error {
		if _, err := stringListArg(args, key); err != nil {
			return fmt.Errorf("%s", message)
		}
		return nil
	}
}

// RequireFileSpecsArg ensures an argument is a list of {path, content} objects.
func RequireFileSpecsArg(key, message string) ValidationRule {
	return func(args map[string]interface{}) error {
		if _, err := fileSpecsArg(args, key); err != nil {
			return fmt.Errorf("%s", message)
		}
		return nil
	}
}

// stringListArg extracts a list-of-strings argument.
func stringListArg(args map[string]interface{}, key string) ([]string, error) {
	value, ok := args[key]
	if !ok || value == nil {
		return nil, fmt.Errorf("missing %q argument", key)
	}
	switch v := value.(type) {
	case []string:
		return append([]string{}, v...), nil
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			str, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("%q entries must be strings", key)
			}
			out = append(out, str)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%q must be a list of strings", key)
	}
}

// FileSpec is one element of a multi-file write batch.
type FileSpec struct {
	Path    string
	Content string
}

// fileSpecsArg extracts a list of {path, content} objects.
func fileSpecsArg(args map[string]interface{}, key string) ([]FileSpec, error) {
	value, ok := args[key]
	if !ok || value == nil {
		return nil, fmt.Errorf("missing %q argument", key)
	}

	var items []interface{}
	switch v := value.(type) {
	case []interface{}:
		items = v
	case []map[string]interface{}:
		items = make([]interface{}, len(v))
		for i, m := range v {
			items[i] = m
		}
	default:
		return nil, fmt.Errorf("%q must be a list of objects", key)
	}

	specs := make([]FileSpec, 0, len(items))
	for _, item := range items {
		obj, ok := item.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("%q entries must be objects with 'path' and 'content'", key)
		}
		path, ok := obj["path"].(string)
		if !ok {
			return nil, fmt.Errorf("%q entries must carry a string 'path'", key)
		}
		content, ok := obj["content"].(string)
		if !ok {
			return nil, fmt.Errorf("%q entries must carry a string 'content'", key)
		}
		specs = append(specs, FileSpec{Path: path, Content: content})
	}
	return specs, nil
}
