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
	"io"
	"os"
	"strings"
)

const emptyMatchResult = "Error: 'match' argument cannot be empty string. Provide correct part of file."

// editFiles replaces exactly the first occurrence of a literal text
// fragment inside an existing file. The match is a plain substring, never
// a pattern; occurrences beyond the first are left untouched. The file is
// rewritten in place: seek to start, write, truncate, so a shorter
// substitute leaves no trailing bytes of the old content.
func editFiles(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	if err := ensureContext(ctx); err != nil {
		return nil, err
	}

	match := stringArg(args, "match")
	if match == "" {
		// Checked before path validation and before any file access.
		return emptyMatchResult, nil
	}

	path := stringArg(args, "path")
	substitute := stringArg(args, "substitute")

	if msg, ok := guardPath(path); !ok {
		return msg, nil
	}

	result, err := editOneFile(path, match, substitute)
	if err != nil {
		return fmt.Sprintf("Error: %v, file not edited", err), nil
	}
	return result, nil
}

func editOneFile(path, match, substitute string) (string, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return "", err
	}
	defer f.Close()

	limits := getLimits()
	info, err := f.Stat()
	if err != nil {
		return "", err
	}
	if info.Size() > limits.MaxFileSizeBytes {
		return "", fmt.Errorf("file exceeds maximum size of %d bytes", limits.MaxFileSizeBytes)
	}

	raw, err := io.ReadAll(f)
	if err != nil {
		return "", err
	}

	content := string(raw)
	if !strings.Contains(content, match) {
		// No write happens; the file stays untouched byte for byte.
		return "Error: match not found in file contents", nil
	}

	updated := strings.Replace(content, match, substitute, 1)
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return "", err
	}
	if _, err := f.WriteString(updated); err != nil {
		return "", err
	}
	if err := f.Truncate(int64(len(updated))); err != nil {
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return successResult, nil
}
