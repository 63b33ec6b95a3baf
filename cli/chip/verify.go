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
	"github.com/arduino/arduino-flashrom/cli/feedback"
	"github.com/arduino/arduino-flashrom/flashrom"
	"github.com/arduino/go-paths-helper"
	"github.com/spf13/cobra"
)

var verifyFile string

// NewVerifyCommand creates a new `verify` command
func NewVerifyCommand() *cobra.Command {
	command := &cobra.Command{
		Use:   "verify",
		Short: "Verifies the flash chip content against a file.",
		Long:  "Compares the content of the flash chip connected to the programmer with the given image.",
		Example: "" +
			"  " + os.Args[0] + " verify -p ch341a_spi -i firmware.bin\n" +
			"  " + os.Args[0] + " verify -p ch341a_spi -c auto -i firmware.bin\n",
		Args: arguments.NoArgsBeforeDash,
		Run: func(cmd *cobra.Command, args []string) {
			checkInputFile(verifyFile)
			runOperation(cmd, flashrom.Verify, verifyFile, args)
		},
	}
	commonFlags.AddToCommand(command)
	command.Flags().StringVarP(&verifyFile, "input-file", "i", "", "Path of the image to compare")
	addSaveLogFlag(command)
	return command
}

// checkInputFile fails early when an image to be sent to the chip is missing.
func checkInputFile(file string) {
	if file == "" {
		// reported as an invalid request
		return
	}
	info, err := paths.New(file).Stat()
	if err != nil {
		feedback.Fatal("image file not found: "+file, feedback.ErrBadArgument)
		return
	}
	if info.IsDir() {
		feedback.Fatal("image file is a directory: "+file, feedback.ErrBadArgument)
	}
}
