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
	"github.com/arduino/arduino-flashrom/cli/common"
	"github.com/arduino/arduino-flashrom/flashrom"
	"github.com/spf13/cobra"
)

// NewProbeCommand creates a new `probe` command
func NewProbeCommand() *cobra.Command {
	command := &cobra.Command{
		Use:   "probe [-- flashrom flags...]",
		Short: "Runs flashrom without an operation.",
		Long:  "Runs flashrom without any operation flag. Flags after -- are passed to flashrom unchanged.",
		Example: "" +
			"  " + os.Args[0] + " probe\n" +
			"  " + os.Args[0] + " probe -- -p ch341a_spi --flash-name\n",
		Args: arguments.NoArgsBeforeDash,
		Run:  runProbe,
	}
	addSaveLogFlag(command)
	return command
}

func runProbe(cmd *cobra.Command, args []string) {
	ctx := cmd.Context()
	runner := common.NewRunner(common.LoadConfig())
	req := flashrom.ExecutionRequest{
		Operation: flashrom.Probe,
		ExtraArgs: arguments.ExtraArgs(cmd, args),
	}
	common.Report(common.Execute(ctx, runner, req), saveLog)
}
