//go:build !windows

package tools

import (
	"strings"
	"testing"
	"time"
)

func runCommand(t *testing.T, registry *Registry, command string) *ToolResult {
	t.Helper()
	return registry.Execute("run_cli_command", map[string]interface{}{
		"command": command,
	})
}

func TestRunCommandReturnsStdoutVerbatim(t *testing.T) {
	registry := NewRegistry()
	result := runCommand(t, registry, "printf 'hello\\nworld\\n'")
	if result.Error != nil {
		t.Fatalf("expected no error, got: %v", result.Error)
	}
	if result.Result != "hello\nworld\n" {
		t.Fatalf("stdout must be returned verbatim, got %q", result.Result)
	}
}

func TestRunCommandShellSyntax(t *testing.T) {
	registry := NewRegistry()
	// The command string goes to the shell uninterpreted, so chaining works.
	result := runCommand(t, registry, "printf a && printf b")
	if result.Error != nil {
		t.Fatalf("expected no error, got: %v", result.Error)
	}
	if result.Result != "ab" {
		t.Fatalf("expected chained output, got %q", result.Result)
	}
}

func TestRunCommandNonZeroExitReturnsStderr(t *testing.T) {
	registry := NewRegistry()
	result := runCommand(t, registry, "echo oops >&2; exit 3")
	if result.Error != nil {
		t.Fatalf("non-zero exit must not raise, got: %v", result.Error)
	}
	str, ok := result.Result.(string)
	if !ok {
		t.Fatalf("expected string outcome, got %T", result.Result)
	}
	if !strings.HasPrefix(str, "Error: ") {
		t.Fatalf("expected error marker prefix, got %q", str)
	}
	if !strings.Contains(str, "oops") {
		t.Fatalf("expected captured stderr in result, got %q", str)
	}
}

func TestRunCommandEmptyOutput(t *testing.T) {
	registry := NewRegistry()
	result := runCommand(t, registry, "true")
	if result.Error != nil {
		t.Fatalf("expected no error, got: %v", result.Error)
	}
	if result.Result != "" {
		t.Fatalf("expected empty stdout, got %q", result.Result)
	}
}

func TestRunCommandTimeout(t *testing.T) {
	ConfigureTimeouts(TimeoutConfig{
		PerTool: map[string]time.Duration{
			"run_cli_command": 100 * time.Millisecond,
		},
	})
	defer ConfigureTimeouts(DefaultTimeoutConfig())

	registry := NewRegistry()
	start := time.Now()
	result := runCommand(t, registry, "sleep 10")
	if time.Since(start) > 5*time.Second {
		t.Fatal("timed-out command should not run to completion")
	}
	if result.Error != nil {
		t.Fatalf("timeout must surface as a result string, got: %v", result.Error)
	}
	str, _ := result.Result.(string)
	if !strings.Contains(str, "timed out") {
		t.Fatalf("expected timeout message, got %q", str)
	}
}
