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
	"encoding/json"
	"fmt"
	"strings"
)

// Operation is one of the actions flashrom can be asked to perform.
type Operation int

const (
	// Probe runs flashrom without any operation flag
	Probe Operation = iota
	// Detect runs flashrom against a programmer to identify the chip
	Detect
	// Read dumps the chip content into a file
	Read
	// Write programs a file into the chip
	Write
	// Verify compares the chip content with a file
	Verify
)

var operationNames = map[Operation]string{
	Probe:  "probe",
	Detect: "detect",
	Read:   "read",
	Write:  "write",
	Verify: "verify",
}

func (o Operation) String() string {
	if name, ok := operationNames[o]; ok {
		return name
	}
	return fmt.Sprintf("operation(%d)", int(o))
}

// Flag returns the flashrom flag selecting the operation, empty for
// Probe and Detect.
func (o Operation) Flag() string {
	switch o {
	case Read:
		return "-r"
	case Write:
		return "-w"
	case Verify:
		return "-v"
	}
	return ""
}

// NeedsFile is true for the operations that transfer data from or to a file.
func (o Operation) NeedsFile() bool {
	return o == Read || o == Write || o == Verify
}

// NeedsProgrammer is true for every operation except Probe.
func (o Operation) NeedsProgrammer() bool {
	return o != Probe
}

// ParseOperation converts a name (case insensitive) to an Operation.
func ParseOperation(name string) (Operation, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for op, n := range operationNames {
		if n == name {
			return op, nil
		}
	}
	return 0, fmt.Errorf("unknown operation: %q", name)
}

// MarshalJSON implements json.Marshaler
func (o Operation) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.String())
}
