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
	"fmt"
	"os"

	"github.com/arduino/arduino-flashrom/cli/arguments"
	"github.com/arduino/arduino-flashrom/cli/feedback"
	"github.com/arduino/arduino-flashrom/cli/globals"
	"github.com/arduino/arduino-flashrom/download"
	"github.com/arduino/arduino-flashrom/flashrom"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	writeFile string
	imageURL  string
	checksum  string
	imageSize int64
)

// NewWriteCommand creates a new `write` command
func NewWriteCommand() *cobra.Command {
	command := &cobra.Command{
		Use:   "write",
		Short: "Writes an image to the flash chip.",
		Long:  "Erases the flash chip connected to the programmer and writes the given image. The image can be a local file or downloaded from a URL.",
		Example: "" +
			"  " + os.Args[0] + " write -p ch341a_spi -i firmware.bin\n" +
			"  " + os.Args[0] + " write -p ch341a_spi -c W25Q64.V -i firmware.bin --save-log write.log\n" +
			"  " + os.Args[0] + " write -p ch341a_spi --url https://example.com/rom.bin --checksum SHA-256:<hash>\n",
		Args: arguments.NoArgsBeforeDash,
		Run:  runWrite,
	}
	commonFlags.AddToCommand(command)
	command.Flags().StringVarP(&writeFile, "input-file", "i", "", "Path of the image to write")
	command.Flags().StringVar(&imageURL, "url", "", "Download the image to write from this URL")
	command.Flags().StringVar(&checksum, "checksum", "", "Expected checksum of the downloaded image, e.g.: SHA-256:<hex>")
	command.Flags().Int64Var(&imageSize, "size", 0, "Expected size in bytes of the downloaded image")
	addSaveLogFlag(command)
	return command
}

func runWrite(cmd *cobra.Command, args []string) {
	if writeFile != "" && imageURL != "" {
		feedback.Fatal("--input-file and --url can't be used together", feedback.ErrBadArgument)
		return
	}
	if imageURL != "" {
		// at the end cleanup the downloaded image
		defer globals.DownloadDir.RemoveAll()
		img := &download.Image{URL: imageURL, Checksum: checksum, Size: imageSize}
		var progress download.Progress
		if feedback.GetFormat() == feedback.Text {
			progress = printProgress
		}
		file, err := download.Fetch(img, globals.DownloadDir, progress)
		if err != nil {
			feedback.Fatal(fmt.Sprintf("Error downloading image from %s: %s", imageURL, err), feedback.ErrNetwork)
			return
		}
		if progress != nil {
			fmt.Println()
		}
		logrus.Debugf("image downloaded in %s", file)
		writeFile = file.String()
	}
	checkInputFile(writeFile)
	runOperation(cmd, flashrom.Write, writeFile, args)
}

// callback used to print the download progress
func printProgress(current int64) {
	fmt.Printf("Downloading image: %d bytes\r", current)
}
