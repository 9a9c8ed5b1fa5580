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
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/rs/zerolog"
	"github.com/sashabaranov/go-openai"

	"agentfs/internal/tools"
)

// runREPL drives tools by hand: `name {json-args}` per line. Meant for
// poking at the toolset without a dispatcher on the other end.
func runREPL(logger zerolog.Logger, registry *tools.Registry) {
	rl, err := readline.New("agentfs> ")
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize readline")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer rl.Close()

	fmt.Println("agentfs interactive mode. /tools lists tools, /quit exits.")

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err == io.EOF {
			return
		}
		if err != nil {
			logger.Error().Err(err).Msg("Readline failed")
			return
		}

		line = strings.TrimSpace(line)
		switch {
		case line == "":
			continue
		case line == "/quit" || line == "/exit":
			return
		case line == "/help":
			fmt.Println("usage: <tool_name> {\"arg\": ...}   or /tools, /schema, /quit")
			continue
		case line == "/tools":
			printToolList(registry)
			continue
		case line == "/schema":
			printToolDefinitions(registry)
			continue
		}

		name, argsJSON := splitInvocation(line)
		result := registry.ExecuteToolCall(context.Background(), openai.ToolCall{
			Type: openai.ToolTypeFunction,
			Function: openai.FunctionCall{
				Name:      name,
				Arguments: argsJSON,
			},
		})

		if result.Error != nil {
			if str, ok := result.Result.(string); ok && str != "" {
				fmt.Println(str)
			} else {
				fmt.Printf("Error: %v\n", result.Error)
			}
			continue
		}

		rendered, err := json.MarshalIndent(result.Result, "", "  ")
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			continue
		}
		fmt.Println(string(rendered))
	}
}

func printToolList(registry *tools.Registry) {
	for _, def := range registry.OpenAITools() {
		fmt.Printf("%-22s %s\n", def.Function.Name, def.Function.Description)
	}
}

// splitInvocation separates the tool name from the JSON argument object.
func splitInvocation(line string) (string, string) {
	idx := strings.IndexAny(line, " \t{")
	if idx == -1 {
		return line, ""
	}
	name := strings.TrimSpace(line[:idx])
	rest := strings.TrimSpace(line[idx:])
	if name == "" {
		// Line started with '{'; no tool name given.
		return line, ""
	}
	return name, rest
}
