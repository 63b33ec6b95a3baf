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
	"strings"

	"golang.org/x/exp/slices"
)

// ExecutionRequest describes a single flashrom invocation. It is passed by
// value and never modified by the Runner.
type ExecutionRequest struct {
	Operation  Operation `json:"operation"`
	File       string    `json:"file,omitempty"`
	Programmer string    `json:"programmer,omitempty"`
	ExtraArgs  []string  `json:"extra_args,omitempty"`
}

// Validate checks the request shape without touching the filesystem.
func (r ExecutionRequest) Validate() error {
	if _, ok := operationNames[r.Operation]; !ok {
		return invalidRequest("unknown operation %s", r.Operation)
	}
	if r.Operation.NeedsProgrammer() && strings.TrimSpace(r.Programmer) == "" {
		return invalidRequest("%s requires a programmer", r.Operation)
	}
	if r.Operation.NeedsFile() && strings.TrimSpace(r.File) == "" {
		return invalidRequest("%s requires a file path", r.Operation)
	}
	return nil
}

// BuildArguments returns the flashrom argument vector (without the
// executable) for the request:
//
//	probe:  <extra>
//	detect: -p <programmer> <extra>
//	read:   -p <programmer> -r <file> <extra>
//	write:  -p <programmer> -w <file> <extra>
//	verify: -p <programmer> -v <file> <extra>
func BuildArguments(req ExecutionRequest) ([]string, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	args := []string{}
	if req.Operation.NeedsProgrammer() {
		args = append(args, "-p", strings.TrimSpace(req.Programmer))
	}
	if req.Operation.NeedsFile() {
		args = append(args, req.Operation.Flag(), req.File)
	}
	return append(args, slices.Clone(req.ExtraArgs)...), nil
}

// WithChip returns a copy of the request selecting the chip with `-c`.
func (r ExecutionRequest) WithChip(chip string) ExecutionRequest {
	chip = strings.TrimSpace(chip)
	if chip == "" {
		return r
	}
	r.ExtraArgs = append(slices.Clone(r.ExtraArgs), "-c", chip)
	return r
}
