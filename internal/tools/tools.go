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

// Package tools implements the agent-facing filesystem and shell toolset:
// batched file reads and writes with per-item failure isolation, an
// exact-match single-occurrence file editor, flat and recursive directory
// listing, and shell command execution. Every tool returns a plain value
// the caller inspects; tool-level faults never escape as Go errors across
// the registry boundary.
package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/sashabaranov/go-openai"
)

// ExecutorFunc is the function signature for tool implementations. The
// returned value is a string, a list of strings, or a string-keyed map,
// matching what the wire boundary can carry.
type ExecutorFunc func(ctx context.Context, args map[string]interface{}) (interface{}, error)

// ToolResult represents the result of a tool execution.
type ToolResult struct {
	Function string
	Result   interface{}
	Error    error
}

// Registry holds all available tools with their implementations.
type Registry struct {
	mu     sync.RWMutex
	tools  map[string]Tool
	logger zerolog.Logger
}

// NewRegistry creates a new tool registry and registers all built-in tools.
func NewRegistry() *Registry {
	return NewRegistryWithLogger(zerolog.Nop())
}

// NewRegistryWithLogger creates a registry that logs tool dispatch.
func NewRegistryWithLogger(logger zerolog.Logger) *Registry {
	r := &Registry{
		tools:  make(map[string]Tool),
		logger: logger,
	}
	registerBuiltInTools(r)
	return r
}

// RegisterTool adds a tool to the registry.
func (r *Registry) RegisterTool(tool Tool) error {
	if strings.TrimSpace(tool.Name()) == "" {
		return fmt.Errorf("tool name cannot be empty")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.tools[tool.Name()]; exists {
		return fmt.Errorf("tool %q already registered", tool.Name())
	}
	r.tools[tool.Name()] = tool
	return nil
}

// GetToolNames returns the names of all registered tools, sorted.
func (r *Registry) GetToolNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// OpenAITools returns the registry as OpenAI function-call definitions.
func (r *Registry) OpenAITools() []openai.Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	defs := make([]openai.Tool, 0, len(r.tools))
	for _, tool := range r.tools {
		defs = append(defs, openai.Tool{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        tool.Name(),
				Description: tool.Description(),
				Parameters:  tool.Parameters(),
			},
		})
	}
	sort.Slice(defs, func(i, j int) bool {
		return defs[i].Function.Name < defs[j].Function.Name
	})
	return defs
}

// Execute runs the specified tool with given arguments.
func (r *Registry) Execute(function string, args map[string]interface{}) *ToolResult {
	return r.ExecuteContext(context.Background(), function, args)
}

// ExecuteContext runs the tool with the provided context.
func (r *Registry) ExecuteContext(ctx context.Context, function string, args map[string]interface{}) *ToolResult {
	result := &ToolResult{
		Function: function,
	}

	tool, exists := r.getTool(function)
	if !exists {
		result.Error = fmt.Errorf("%w: %s", ErrToolNotFound, function)
		result.Result = fmt.Sprintf("Error: Tool '%s' not found. Available tools: %v", function, r.GetToolNames())
		return result
	}

	if err := tool.Validate(args); err != nil {
		result.Error = fmt.Errorf("%w: %v", ErrInvalidArguments, err)
		result.Result = fmt.Sprintf("Error: %v", err)
		return result
	}

	start := time.Now()
	result.Result, result.Error = tool.Execute(ctx, args)
	r.logger.Debug().
		Str("tool", function).
		Dur("duration_ms", time.Since(start)).
		Bool("failed", result.Error != nil).
		Msg("Tool executed")
	return result
}

// ExecuteToolCall executes an OpenAI tool call payload.
func (r *Registry) ExecuteToolCall(ctx context.Context, call openai.ToolCall) *ToolResult {
	args := map[string]interface{}{}
	if call.Function.Arguments != "" {
		if err := json.Unmarshal([]byte(call.Function.Arguments), &args); err != nil {
			return &ToolResult{
				Function: call.Function.Name,
				Error:    fmt.Errorf("%w: %v", ErrInvalidArguments, err),
			}
		}
	}
	name := call.Function.Name
	if name == "" {
		return &ToolResult{
			Function: "unknown_tool",
			Error:    fmt.Errorf("tool call missing function name"),
		}
	}
	return r.ExecuteContext(ctx, name, args)
}

// getTool safely retrieves a tool definition.
func (r *Registry) getTool(name string) (Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tool, ok := r.tools[name]
	return tool, ok
}
