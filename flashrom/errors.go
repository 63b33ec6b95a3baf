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
	"errors"
	"fmt"
	"strings"

	"github.com/arduino/go-paths-helper"
)

var (
	// ErrInvalidRequest is returned before spawning anything when a request
	// misses a required parameter.
	ErrInvalidRequest = errors.New("InvalidRequest")
	// ErrToolNotFound means no flashrom executable could be located.
	ErrToolNotFound = errors.New("ToolNotFound")
	// ErrLaunchFailed means the operating system refused to start flashrom.
	ErrLaunchFailed = errors.New("LaunchFailed")
	// ErrProcessFailed means flashrom ran and exited with a non-zero code.
	ErrProcessFailed = errors.New("ProcessFailed")
)

// ToolNotFoundError lists every location tried while resolving the executable.
type ToolNotFoundError struct {
	Name     string
	Searched paths.PathList
	PathErr  error
}

func (e *ToolNotFoundError) Error() string {
	tried := make([]string, 0, len(e.Searched)+1)
	for _, p := range e.Searched {
		tried = append(tried, p.String())
	}
	if e.PathErr != nil {
		tried = append(tried, "$PATH")
	}
	if len(tried) == 0 {
		return fmt.Sprintf("%s not found", e.Name)
	}
	return fmt.Sprintf("%s not found (searched: %s)", e.Name, strings.Join(tried, ", "))
}

// Is makes errors.Is(err, ErrToolNotFound) succeed.
func (e *ToolNotFoundError) Is(target error) bool {
	return target == ErrToolNotFound
}

// LaunchError wraps the error returned by the operating system when starting
// the process.
type LaunchError struct {
	Executable *paths.Path
	Err        error
}

func (e *LaunchError) Error() string {
	if e.Executable == nil {
		return fmt.Sprintf("starting %s: %s", ToolName, e.Err)
	}
	return fmt.Sprintf("starting %s: %s", e.Executable, e.Err)
}

func (e *LaunchError) Unwrap() error {
	return e.Err
}

func (e *LaunchError) Is(target error) bool {
	return target == ErrLaunchFailed
}

// ProcessError reports a non-zero exit code.
type ProcessError struct {
	ExitCode int
	Stderr   string
}

func (e *ProcessError) Error() string {
	msg := strings.TrimSpace(e.Stderr)
	if msg == "" {
		return fmt.Sprintf("flashrom exited with code %d", e.ExitCode)
	}
	return fmt.Sprintf("flashrom exited with code %d: %s", e.ExitCode, msg)
}

func (e *ProcessError) Is(target error) bool {
	return target == ErrProcessFailed
}

func invalidRequest(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidRequest, fmt.Sprintf(format, args...))
}

// failureLine formats a launch failure the way it is embedded in the result
// stderr, e.g. "ToolNotFound: flashrom not found".
func failureLine(err error) string {
	kind := ErrLaunchFailed
	if errors.Is(err, ErrToolNotFound) {
		kind = ErrToolNotFound
	}
	return kind.Error() + ": " + err.Error()
}
