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

// Package config loads host-side settings for the tool server. The core
// tools run with zero configuration; config only tunes limits, timeouts
// and the shell binary.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"agentfs/internal/tools"
)

// Config represents the application configuration
type Config struct {
	LogFile      string       `json:"log_file,omitempty"`
	Shell        string       `json:"shell,omitempty"`
	ToolLimits   ToolLimits   `json:"tool_limits,omitempty"`
	ToolTimeouts ToolTimeouts `json:"tool_timeouts,omitempty"`
}

// ToolLimits configures resource limits for tool execution.
type ToolLimits struct {
	MaxFileSizeBytes    int64 `json:"max_file_size_bytes,omitempty"`
	MaxDirectoryDepth   int   `json:"max_directory_depth,omitempty"`
	MaxDirectoryEntries int   `json:"max_directory_entries,omitempty"`
}

// ToolTimeouts configures tool execution timeouts. Zero means no timeout.
type ToolTimeouts struct {
	DefaultSeconds int            `json:"default_seconds,omitempty"`
	PerToolSeconds map[string]int `json:"per_tool_seconds,omitempty"`
}

// DefaultConfig returns a config with default values
func DefaultConfig() *Config {
	defaults := tools.DefaultLimits()
	return &Config{
		Shell: "sh",
		ToolLimits: ToolLimits{
			MaxFileSizeBytes:    defaults.MaxFileSizeBytes,
			MaxDirectoryDepth:   defaults.MaxDirectoryDepth,
			MaxDirectoryEntries: defaults.MaxDirectoryEntries,
		},
	}
}

// LoadConfig loads configuration from a JSON file and applies env
// overrides. A missing file is not an error; defaults apply.
func LoadConfig(filepath string) (*Config, error) {
	config := DefaultConfig()

	if _, err := os.Stat(filepath); err == nil {
		data, err := os.ReadFile(filepath)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("invalid config %s: %w", filepath, err)
		}
	}

	if val := os.Getenv("AGENTFS_LOG_FILE"); val != "" {
		config.LogFile = val
	}
	if val := os.Getenv("AGENTFS_SHELL"); val != "" {
		config.Shell = val
	}

	return config, nil
}

// Apply installs the configuration into the tools package globals.
func (c *Config) Apply() {
	tools.ConfigureLimits(tools.Limits{
		MaxFileSizeBytes:    c.ToolLimits.MaxFileSizeBytes,
		MaxDirectoryDepth:   c.ToolLimits.MaxDirectoryDepth,
		MaxDirectoryEntries: c.ToolLimits.MaxDirectoryEntries,
	})
	tools.ConfigureShell(c.Shell)

	timeouts := tools.TimeoutConfig{
		Default: time.Duration(c.ToolTimeouts.DefaultSeconds) * time.Second,
	}
	if len(c.ToolTimeouts.PerToolSeconds) > 0 {
		timeouts.PerTool = make(map[string]time.Duration, len(c.ToolTimeouts.PerToolSeconds))
		for name, seconds := range c.ToolTimeouts.PerToolSeconds {
			timeouts.PerTool[name] = time.Duration(seconds) * time.Second
		}
	}
	tools.ConfigureTimeouts(timeouts)
}
