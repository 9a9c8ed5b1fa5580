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
	"path/filepath"
	"strings"
)

// listError is the distinguishable error payload of list_files: callers
// branch on the result shape instead of an exception.
func listError(msg string) map[string]string {
	return map[string]string{"error": msg}
}

// listFiles enumerates a directory. Flat mode returns the names directly
// contained in it, files and subdirectories alike, in enumeration order.
// Recursive mode walks the subtree depth-first and returns only file
// paths, each joined from the traversal root. An empty directory yields
// an empty list, not an error.
func listFiles(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	if err := ensureContext(ctx); err != nil {
		return nil, err
	}

	path := stringArg(args, "path")
	if msg, ok := guardPath(path); !ok {
		return listError(msg), nil
	}

	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return listError(fmt.Sprintf("Path %s is not a directory", path)), nil
	}

	if boolArg(args, "recursive") {
		return walkFiles(ctx, path)
	}
	return listEntries(path)
}

func listEntries(path string) (interface{}, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return listError(fmt.Sprintf("failed to read directory %s: %v", path, err)), nil
	}

	limits := getLimits()
	if len(entries) > limits.MaxDirectoryEntries {
		return listError(fmt.Sprintf("directory contains more than %d entries", limits.MaxDirectoryEntries)), nil
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	return names, nil
}

func walkFiles(ctx context.Context, root string) (interface{}, error) {
	limits := getLimits()
	files := make([]string, 0)

	err := filepath.Walk(root, func(filePath string, info os.FileInfo, err error) error {
		if ctxErr := ensureContext(ctx); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			return err
		}

		depth, err := depthFromBase(root, filePath)
		if err != nil {
			return err
		}
		if depth > limits.MaxDirectoryDepth {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if info.IsDir() {
			return nil
		}
		if len(files) >= limits.MaxDirectoryEntries {
			return fmt.Errorf("traversal exceeds %d file entries", limits.MaxDirectoryEntries)
		}
		files = append(files, filePath)
		return nil
	})
	if err != nil {
		return listError(fmt.Sprintf("failed to walk directory %s: %v", root, err)), nil
	}
	return files, nil
}

func depthFromBase(basePath, filePath string) (int, error) {
	rel, err := filepath.Rel(basePath, filePath)
	if err != nil {
		return 0, fmt.Errorf("failed to compute relative path: %v", err)
	}
	if rel == "." {
		return 0, nil
	}
	return strings.Count(rel, string(os.PathSeparator)) + 1, nil
}
