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
	"context"
	"fmt"
	"os"
)

func readFile(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	if err := ensureContext(ctx); err != nil {
		return nil, err
	}

	path := stringArg(args, "path")
	if msg, ok := guardPath(path); !ok {
		return nil, fmt.Errorf("%s", msg)
	}

	content, err := readFileChecked(path)
	if err != nil {
		return nil, err
	}
	return content, nil
}

// readMultipleFiles reads each path independently. A failed entry maps to
// null; sibling entries are unaffected. Duplicate input paths overwrite
// earlier entries for the same key.
func readMultipleFiles(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	if err := ensureContext(ctx); err != nil {
		return nil, err
	}

	pathList, err := stringListArg(args, "paths")
	if err != nil {
		return nil, err
	}

	results := make(map[string]*string, len(pathList))
	for _, path := range pathList {
		if err := ensureContext(ctx); err != nil {
			return nil, err
		}
		if _, ok := guardPath(path); !ok {
			results[path] = nil
			continue
		}
		content, err := readFileChecked(path)
		if err != nil {
			results[path] = nil
			continue
		}
		results[path] = &content
	}
	return results, nil
}

// readFileChecked reads a file after enforcing the size limit.
func readFileChecked(path string) (string, error) {
	limits := getLimits()
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %v", err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("path '%s' is a directory", path)
	}
	if info.Size() > limits.MaxFileSizeBytes {
		return "", fmt.Errorf("file exceeds maximum size of %d bytes", limits.MaxFileSizeBytes)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %v", err)
	}
	return string(content), nil
}
