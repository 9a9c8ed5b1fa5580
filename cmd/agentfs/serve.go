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

package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/sashabaranov/go-openai"

	"agentfs/internal/tools"
)

// request is one line of the wire protocol: a tool name with named
// arguments. The serve loop is a thin dispatch boundary; all semantics
// live in the tools package.
type request struct {
	ID        json.RawMessage `json:"id,omitempty"`
	Tool      string          `json:"tool"`
	Arguments json.RawMessage `json:"arguments,omitempty"`
}

// successResponse always carries the result field, even when the result
// is an empty string: absence would be indistinguishable from failure.
type successResponse struct {
	ID     json.RawMessage `json:"id,omitempty"`
	Result interface{}     `json:"result"`
}

type errorResponse struct {
	ID    json.RawMessage `json:"id,omitempty"`
	Error string          `json:"error"`
}

const maxRequestLine = 8 * 1024 * 1024

func runServeMode(logger zerolog.Logger, registry *tools.Registry) {
	if err := serve(logger, registry, os.Stdin, os.Stdout); err != nil {
		logger.Error().Err(err).Msg("Serve loop failed")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// serve reads one JSON request per line and writes one JSON response per
// line. Requests run to completion before the next is read; there is no
// overlap of two operations from this process.
func serve(logger zerolog.Logger, registry *tools.Registry, in io.Reader, out io.Writer) error {
	logger.Debug().Msg("Running in serve mode")

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxRequestLine)
	encoder := json.NewEncoder(out)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(strings.TrimSpace(string(line))) == 0 {
			continue
		}

		start := time.Now()
		resp, failed := handleRequest(context.Background(), registry, line)
		logger.Info().
			Dur("duration_ms", time.Since(start)).
			Bool("failed", failed).
			Msg("Request handled")

		if err := encoder.Encode(resp); err != nil {
			return fmt.Errorf("error writing response: %w", err)
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading input: %w", err)
	}
	return nil
}

// handleRequest dispatches a single request line. Tool-level failures
// ride inside the result value; only protocol faults (malformed JSON,
// unknown tool, invalid arguments) populate the error field.
func handleRequest(ctx context.Context, registry *tools.Registry, line []byte) (interface{}, bool) {
	var req request
	if err := json.Unmarshal(line, &req); err != nil {
		return errorResponse{Error: fmt.Sprintf("malformed request: %v", err)}, true
	}

	call := openai.ToolCall{
		Type: openai.ToolTypeFunction,
		Function: openai.FunctionCall{
			Name:      req.Tool,
			Arguments: string(req.Arguments),
		},
	}

	result := registry.ExecuteToolCall(ctx, call)
	if result.Error != nil {
		msg := result.Error.Error()
		if str, ok := result.Result.(string); ok && str != "" {
			msg = str
		}
		return errorResponse{ID: req.ID, Error: msg}, true
	}
	return successResponse{ID: req.ID, Result: result.Result}, false
}
