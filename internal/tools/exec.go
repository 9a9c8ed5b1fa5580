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
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"sync"
)

var (
	shellMu      sync.RWMutex
	currentShell = "sh"
)

// ConfigureShell sets the shell binary used by run_cli_command.
func ConfigureShell(shell string) {
	shellMu.Lock()
	defer shellMu.Unlock()
	if shell != "" {
		currentShell = shell
	}
}

func getShell() string {
	shellMu.RLock()
	defer shellMu.RUnlock()
	return currentShell
}

// runCLICommand hands the command string to the shell uninterpreted, so
// the caller gets full shell syntax and the full injection surface that
// comes with it. The command is trusted input from a cooperating caller.
// Non-zero exit returns the captured stderr behind an error marker; zero
// exit returns stdout verbatim.
func runCLICommand(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	if err := ensureContext(ctx); err != nil {
		return nil, err
	}

	command := stringArg(args, "command")

	if timeout := getTimeouts().TimeoutForTool("run_cli_command"); timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, getShell(), "-c", command)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	configureCommandGroup(cmd)

	err := cmd.Run()

	if ctx.Err() == context.DeadlineExceeded {
		return fmt.Sprintf("Error: command timed out: %s", stderr.String()), nil
	}
	if ctx.Err() == context.Canceled {
		return nil, ctx.Err()
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "Error: " + stderr.String(), nil
		}
		return nil, NewToolExecutionError("run_cli_command", "start", err)
	}

	return stdout.String(), nil
}
