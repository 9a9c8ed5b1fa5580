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

	"agentfs/internal/paths"
)

// registerBuiltInTools registers all built-in tools to the registry
func registerBuiltInTools(r *Registry) {
	register := func(tool Tool) {
		if err := r.RegisterTool(tool); err != nil {
			panic(err)
		}
	}

	register(&ToolDefinition{
		NameValue:        "read_file",
		DescriptionValue: "Return contents of file located at specified path",
		ParametersValue: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"path": map[string]interface{}{
					"type":        "string",
					"description": "Path to file you want to read",
				},
			},
			"required": []string{"path"},
		},
		ExecuteFunc:  readFile,
		ValidateFunc: RequireStringArg("path", "missing or invalid 'path' parameter"),
	})

	register(&ToolDefinition{
		NameValue:        "read_multiple_files",
		DescriptionValue: "Read several files at once; failed entries map to null instead of aborting the batch",
		ParametersValue: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"paths": map[string]interface{}{
					"type":        "array",
					"items":       map[string]interface{}{"type": "string"},
					"description": "List of files you want to read",
				},
			},
			"required": []string{"paths"},
		},
		ExecuteFunc:  readMultipleFiles,
		ValidateFunc: RequireStringListArg("paths", "missing or invalid 'paths' parameter"),
	})

	register(&ToolDefinition{
		NameValue:        "write_whole_file",
		DescriptionValue: "Write contents to specified file, overwriting it entirely; prefer edit_files for small changes",
		ParametersValue: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"path": map[string]interface{}{
					"type":        "string",
					"description": "Path to file you want to write",
				},
				"content": map[string]interface{}{
					"type":        "string",
					"description": "Contents you want to write",
				},
			},
			"required": []string{"path", "content"},
		},
		ExecuteFunc: writeWholeFile,
		ValidateFunc: ChainValidation(
			RequireStringArg("path", "missing or invalid 'path' parameter"),
			RequireRawStringArg("content", "missing or invalid 'content' parameter"),
		),
	})

	register(&ToolDefinition{
		NameValue:        "write_multiple_files",
		DescriptionValue: "Write several files at once; each file reports its own Success or error outcome",
		ParametersValue: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"files": map[string]interface{}{
					"type": "array",
					"items": map[string]interface{}{
						"type": "object",
						"properties": map[string]interface{}{
							"path":    map[string]interface{}{"type": "string"},
							"content": map[string]interface{}{"type": "string"},
						},
						"required": []string{"path", "content"},
					},
					"description": "List of files to write, each with 'path' and 'content' keys",
				},
			},
			"required": []string{"files"},
		},
		ExecuteFunc:  writeMultipleFiles,
		ValidateFunc: RequireFileSpecsArg("files", "missing or invalid 'files' parameter"),
	})

	register(&ToolDefinition{
		NameValue:        "edit_files",
		DescriptionValue: "Replace the first occurrence of an exact text fragment in a file; match must not be empty",
		ParametersValue: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"path": map[string]interface{}{
					"type":        "string",
					"description": "Path to file to edit",
				},
				"match": map[string]interface{}{
					"type":        "string",
					"description": "Exact fragment of file text to substitute or delete, with all spaces, tabs and new lines",
				},
				"substitute": map[string]interface{}{
					"type":        "string",
					"description": "The string that must be placed instead of 'match'",
				},
			},
			"required": []string{"path", "match", "substitute"},
		},
		ExecuteFunc: editFiles,
		ValidateFunc: ChainValidation(
			RequireStringArg("path", "missing or invalid 'path' parameter"),
			RequireRawStringArg("match", "missing or invalid 'match' parameter"),
			RequireRawStringArg("substitute", "missing or invalid 'substitute' parameter"),
		),
	})

	register(&ToolDefinition{
		NameValue:        "list_files",
		DescriptionValue: "List files in specified directory, optionally recursing into subdirectories",
		ParametersValue: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"path": map[string]interface{}{
					"type":        "string",
					"description": "Path to directory to list files from",
				},
				"recursive": map[string]interface{}{
					"type":        "boolean",
					"description": "Whether to list files recursively (default: false)",
				},
			},
			"required": []string{"path"},
		},
		ExecuteFunc:  listFiles,
		ValidateFunc: RequireStringArg("path", "missing or invalid 'path' parameter"),
	})

	register(&ToolDefinition{
		NameValue:        "create_directory",
		DescriptionValue: "Create a directory and any missing ancestors at the specified path",
		ParametersValue: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"path": map[string]interface{}{
					"type":        "string",
					"description": "Path to directory you want to create",
				},
			},
			"required": []string{"path"},
		},
		ExecuteFunc:  createDirectory,
		ValidateFunc: RequireStringArg("path", "missing or invalid 'path' parameter"),
	})

	register(&ToolDefinition{
		NameValue:        "run_cli_command",
		DescriptionValue: "Run a CLI command through the shell and return its output or an error message",
		ParametersValue: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"command": map[string]interface{}{
					"type":        "string",
					"description": "CLI command to run",
				},
			},
			"required": []string{"command"},
		},
		ExecuteFunc:  runCLICommand,
		ValidateFunc: RequireRawStringArg("command", "missing or invalid 'command' parameter"),
	})
}

// guardPath routes a candidate path through the sandbox boundary. It
// returns the validator's message on rejection so callers can surface it
// verbatim.
func guardPath(path string) (string, bool) {
	ok, msg := paths.Validate(path)
	if !ok {
		return msg, false
	}
	return "", true
}

func stringArg(args map[string]interface{}, key string) string {
	value, _ := args[key].(string)
	return value
}

func boolArg(args map[string]interface{}, key string) bool {
	value, ok := args[key].(bool)
	return ok && value
}

func ensureContext(ctx context.Context) error {
	if ctx == nil {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}
