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

// Package paths implements the sandbox boundary every tool path must
// satisfy: absolute form and no parent-directory segments after
// normalization. All path-bearing tools route through Validate before
// touching the filesystem, reads and lists included.
package paths

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// MaxPathLength bounds raw path input before normalization.
const MaxPathLength = 4096

// Validate checks a candidate path against the sandbox rules. It returns
// true with an empty message when the path is acceptable, or false with a
// human-readable message naming the path. Pure function of its input; it
// never touches the filesystem.
func Validate(path string) (bool, string) {
	if err := ValidateRawString(path, MaxPathLength); err != nil {
		return false, fmt.Sprintf("Error: %v", err)
	}

	if !filepath.IsAbs(path) {
		return false, fmt.Sprintf("Error: Path '%s' is not absolute. Only absolute paths are allowed.", path)
	}

	normalized := filepath.Clean(path)
	for _, segment := range strings.Split(normalized, string(filepath.Separator)) {
		if segment == ".." {
			return false, fmt.Sprintf("Error: Path '%s' contains '..' segments which are not allowed.", path)
		}
	}

	return true, ""
}

// ValidateRawString validates raw path input before resolution.
func ValidateRawString(path string, maxLen int) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("path cannot be empty")
	}
	if strings.IndexByte(path, 0) != -1 {
		return fmt.Errorf("path contains null byte")
	}
	if !utf8.ValidString(path) {
		return fmt.Errorf("path is not valid UTF-8")
	}
	if maxLen > 0 && len(path) > maxLen {
		return fmt.Errorf("path exceeds maximum length of %d characters", maxLen)
	}
	return nil
}

// Normalize returns the cleaned form of a path as used by the sandbox
// checks: symbolic segments resolved lexically, trailing separators
// removed.
func Normalize(path string) string {
	return filepath.Clean(path)
}
