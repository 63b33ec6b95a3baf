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

package chip

import (
	"os"

	"github.com/arduino/arduino-flashrom/cli/arguments"
	"github.com/arduino/arduino-flashrom/flashrom"
	"github.com/spf13/cobra"
)

var outputFile string

// NewReadCommand creates a new `read` command
func NewReadCommand() *cobra.Command {
	command := &cobra.Command{
		Use:   "read",
		Short: "Reads the flash chip content into a file.",
		Long:  "Reads the whole content of the flash chip connected to the programmer and saves it to the output file.",
		Example: "" +
			"  " + os.Args[0] + " read -p ch341a_spi -o dump.bin\n" +
			"  " + os.Args[0] + " read -p ch341a_spi -c W25Q64.V -o dump.bin\n" +
			"  " + os.Args[0] + " read -p internal -o bios.rom -- --ifd -i bios\n",
		Args: arguments.NoArgsBeforeDash,
		Run: func(cmd *cobra.Command, args []string) {
			runOperation(cmd, flashrom.Read, outputFile, args)
		},
	}
	commonFlags.AddToCommand(command)
	command.Flags().StringVarP(&outputFile, "output-file", "o", "", "Path of the file where the chip content is saved")
	addSaveLogFlag(command)
	return command
}
