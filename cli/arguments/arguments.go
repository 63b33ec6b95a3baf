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

package arguments

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// Flags contains the flags shared by the commands that talk to a programmer.
// This is useful so all flags used by commands that need
// this information are consistent with each other.
type Flags struct {
	Programmer string
	Chip       string
}

// AddToCommand adds the flags used to set programmer and chip to the specified Command
func (f *Flags) AddToCommand(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.Programmer, "programmer", "p", "", "flashrom programmer, e.g.: ch341a_spi, internal, linux_spi:dev=/dev/spidev0.0 (defaults to the configured programmer)")
	cmd.Flags().StringVarP(&f.Chip, "chip", "c", "", "Flash chip name, passed to flashrom as -c, e.g.: W25Q64.V")
}

// ExtraArgs returns the arguments given after "--", they are passed to flashrom unchanged.
func ExtraArgs(cmd *cobra.Command, args []string) []string {
	if n := cmd.ArgsLenAtDash(); n >= 0 {
		return args[n:]
	}
	return nil
}

// NormalizedProgrammer returns the --programmer value, or def when it is empty.
func (f *Flags) NormalizedProgrammer(def string) string {
	if p := strings.TrimSpace(f.Programmer); p != "" {
		return p
	}
	return strings.TrimSpace(def)
}

// NoArgsBeforeDash rejects positional arguments, only the ones after "--" are accepted.
func NoArgsBeforeDash(cmd *cobra.Command, args []string) error {
	n := cmd.ArgsLenAtDash()
	if n < 0 {
		n = len(args)
	}
	if n > 0 {
		return fmt.Errorf("unexpected argument %q, flashrom flags must follow --", args[0])
	}
	return nil
}
