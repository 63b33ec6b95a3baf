/*
	arduino-flashrom
	Copyright (c) 2026 Arduino LLC.  All right reserved.

	This program is free software: you can redistribute it and/or modify
	it under the terms of the GNU Affero General Public License as published
	by the Free Software Foundation, either version 3 of the License, or
	(at your option) any later version.

	This program is distributed in the hope that it will be useful,
	but WITHOUT ANY WARRANTY; without even the implied warranty of
	MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
	GNU Affero General Public License for more details.

	You should have received a copy of the GNU Affero General Public License
	along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/

package flashrom

import (
	"context"
	"errors"
	"os/exec"

	"github.com/arduino/arduino-cli/executils"
	"github.com/arduino/go-paths-helper"
)

// Outcome is what a process left behind after exiting.
type Outcome struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
}

// Launcher runs a single process to completion. A non-zero exit code is
// not an error: the returned error is reserved for processes that could not
// be started.
type Launcher interface {
	Launch(ctx context.Context, executable *paths.Path, args []string) (Outcome, error)
}

// LauncherFunc adapts a function to the Launcher interface.
type LauncherFunc func(ctx context.Context, executable *paths.Path, args []string) (Outcome, error)

// Launch implements Launcher
func (f LauncherFunc) Launch(ctx context.Context, executable *paths.Path, args []string) (Outcome, error) {
	return f(ctx, executable, args)
}

// processLauncher spawns a real process through executils.
type processLauncher struct {
	extraEnv []string
}

// NewProcessLauncher returns the Launcher used in production. extraEnv is
// appended to the environment of every spawned process.
func NewProcessLauncher(extraEnv ...string) Launcher {
	return &processLauncher{extraEnv: extraEnv}
}

func (l *processLauncher) Launch(ctx context.Context, executable *paths.Path, args []string) (Outcome, error) {
	proc, err := executils.NewProcessFromPath(l.extraEnv, executable, args...)
	if err != nil {
		return Outcome{}, &LaunchError{Executable: executable, Err: err}
	}
	stdout, stderr, err := proc.RunAndCaptureOutput(ctx)
	out := Outcome{Stdout: stdout, Stderr: stderr}
	if err == nil {
		return out, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		out.ExitCode = exitErr.ExitCode()
		return out, nil
	}
	return out, &LaunchError{Executable: executable, Err: err}
}
