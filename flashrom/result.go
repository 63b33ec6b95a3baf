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
)

// ExecutionResult is the outcome of one request. ExitCode is nil when the
// process could not be started at all.
type ExecutionResult struct {
	Request   ExecutionRequest `json:"request"`
	ExitCode  *int             `json:"exit_code"`
	Stdout    string           `json:"stdout"`
	Stderr    string           `json:"stderr"`
	Succeeded bool             `json:"succeeded"`

	launchErr error
}

func completed(req ExecutionRequest, out Outcome) ExecutionResult {
	code := out.ExitCode
	return ExecutionResult{
		Request:   req,
		ExitCode:  &code,
		Stdout:    string(out.Stdout),
		Stderr:    string(out.Stderr),
		Succeeded: code == 0,
	}
}

func launchFailed(req ExecutionRequest, err error) ExecutionResult {
	return ExecutionResult{
		Request:   req,
		Stderr:    failureLine(err),
		launchErr: err,
	}
}

// Err returns nil on success, otherwise an error matching one of
// ErrToolNotFound, ErrLaunchFailed or ErrProcessFailed.
func (r ExecutionResult) Err() error {
	if r.Succeeded {
		return nil
	}
	if r.ExitCode == nil {
		if r.launchErr != nil {
			return r.launchErr
		}
		return fmt.Errorf("%w: %s", ErrLaunchFailed, strings.TrimSpace(r.Stderr))
	}
	return &ProcessError{ExitCode: *r.ExitCode, Stderr: r.Stderr}
}

// Status is a one word summary suitable for a status bar.
func (r ExecutionResult) Status() string {
	err := r.Err()
	switch {
	case err == nil:
		return "Done"
	case errors.Is(err, ErrProcessFailed):
		return "Failed"
	default:
		return "Error"
	}
}

// Message combines everything flashrom printed into a human readable text.
// It is never empty.
func (r ExecutionResult) Message() string {
	var b strings.Builder
	stdout := strings.TrimRight(r.Stdout, "\r\n")
	stderr := strings.TrimRight(r.Stderr, "\r\n")
	if stdout != "" {
		b.WriteString(stdout)
	}
	if stderr != "" {
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		if r.ExitCode != nil {
			b.WriteString("Errors:\n")
		}
		b.WriteString(stderr)
	}
	if b.Len() > 0 {
		b.WriteString("\n")
	}
	switch {
	case r.Succeeded:
		fmt.Fprintf(&b, "%s completed successfully.", capitalize(r.Request.Operation.String()))
	case r.ExitCode != nil:
		fmt.Fprintf(&b, "%s failed: flashrom exited with code %d.", capitalize(r.Request.Operation.String()), *r.ExitCode)
	default:
		fmt.Fprintf(&b, "%s failed: flashrom could not be started.", capitalize(r.Request.Operation.String()))
	}
	return b.String()
}

// String implements feedback.Result
func (r ExecutionResult) String() string {
	if r.Succeeded {
		return r.Message()
	}
	return strings.TrimRight(r.Stdout, "\r\n")
}

// ErrorString implements feedback.ErrorResult
func (r ExecutionResult) ErrorString() string {
	if r.Succeeded {
		return ""
	}
	msg := r.Message()
	if stdout := strings.TrimRight(r.Stdout, "\r\n"); stdout != "" {
		msg = strings.TrimPrefix(strings.TrimPrefix(msg, stdout), "\n")
	}
	return msg
}

// Data implements feedback.Result
func (r ExecutionResult) Data() interface{} {
	return r
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
