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
)

const successResult = "Success"

// writeWholeFile overwrites a file in full, creating missing parent
// directories first. Every outcome is a string: "Success" or the fault's
// description. Filesystem faults never escape as Go errors.
func writeWholeFile(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	if err := ensureContext(ctx); err != nil {
		return nil, err
	}

	path := stringArg(args, "path")
	content := stringArg(args, "content")
	return writeOneFile(path, content), nil
}

// writeMultipleFiles writes each file independently and records a per-path
// outcome. One item's failure never prevents subsequent items from being
// attempted.
func writeMultipleFiles(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	if err := ensureContext(ctx); err != nil {
		return nil, err
	}

	specs, err := fileSpecsArg(args, "files")
	if err != nil {
		return nil, err
	}

	results := make(map[string]string, len(specs))
	for _, spec := range specs {
		if err := ensureContext(ctx); err != nil {
			return nil, err
		}
		results[spec.Path] = writeOneFile(spec.Path, spec.Content)
	}
	return results, nil
}

func writeOneFile(path, content string) string {
	if msg, ok := guardPath(path); !ok {
		return msg
	}

	limits := getLimits()
	if int64(len(content)) > limits.MaxFileSizeBytes {
		return fmt.Sprintf("content exceeds maximum size of %d bytes", limits.MaxFileSizeBytes)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err.Error()
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return err.Error()
	}
	return successResult
}

// createDirectory creates a directory and any missing ancestors. An
// already existing directory counts as success.
func createDirectory(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	if err := ensureContext(ctx); err != nil {
		return nil, err
	}

	path := stringArg(args, "path")
	if msg, ok := guardPath(path); !ok {
		return msg, nil
	}
	if err := os.MkdirAll(path, 0o755); err != nil {
		return err.Error(), nil
	}
	return successResult, nil
}
