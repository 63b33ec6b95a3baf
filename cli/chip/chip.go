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
	"context"
	"fmt"
	"strings"

	"github.com/arduino/arduino-flashrom/cli/arguments"
	"github.com/arduino/arduino-flashrom/cli/common"
	"github.com/arduino/arduino-flashrom/cli/feedback"
	"github.com/arduino/arduino-flashrom/config"
	"github.com/arduino/arduino-flashrom/flashrom"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// AutoChip asks to detect the chip before running the operation.
const AutoChip = "auto"

var (
	commonFlags arguments.Flags // contains programmer and chip
	saveLog     string
)

// NewCommands returns the commands running a flashrom operation.
func NewCommands() []*cobra.Command {
	return []*cobra.Command{
		NewProbeCommand(),
		NewDetectCommand(),
		NewReadCommand(),
		NewWriteCommand(),
		NewVerifyCommand(),
	}
}

func addSaveLogFlag(cmd *cobra.Command) {
	cmd.Flags().StringVar(&saveLog, "save-log", "", "Save the flashrom output and the outcome to the specified file")
}

// newRequest builds the request for op from the command line, resolving the
// programmer from the configuration and the chip from --chip.
func newRequest(ctx context.Context, runner *flashrom.Runner, cfg *config.Config, op flashrom.Operation, file string, extra []string) flashrom.ExecutionRequest {
	req := flashrom.ExecutionRequest{
		Operation:  op,
		File:       file,
		Programmer: commonFlags.NormalizedProgrammer(cfg.DefaultProgrammer),
		ExtraArgs:  extra,
	}
	if err := req.Validate(); err != nil {
		feedback.Fatal(err.Error(), common.ExitCodeFor(err))
	}
	return req.WithChip(selectChip(ctx, runner, req.Programmer, commonFlags.Chip))
}

// selectChip returns the chip to pass with -c. With "auto" the chip is
// detected and accepted only if flashrom lists it as supported.
func selectChip(ctx context.Context, runner *flashrom.Runner, programmer, chip string) string {
	chip = strings.TrimSpace(chip)
	if !strings.EqualFold(chip, AutoChip) {
		return chip
	}
	detected, found := runner.DetectChip(ctx, programmer)
	if !found {
		feedback.Warning("No chip detected, flashrom will probe the chip by itself.")
		return ""
	}
	chips, _ := runner.ListChips(ctx)
	if match, ok := flashrom.MatchChip(chips, detected); ok {
		logrus.WithField("chip", match).Info("Chip selected")
		return match
	}
	feedback.Warning(fmt.Sprintf("Detected chip %s is not in the supported chip list, flashrom will probe the chip by itself.", detected))
	return ""
}

func runOperation(cmd *cobra.Command, op flashrom.Operation, file string, args []string) {
	ctx := cmd.Context()
	cfg := common.LoadConfig()
	runner := common.NewRunner(cfg)
	req := newRequest(ctx, runner, cfg, op, file, arguments.ExtraArgs(cmd, args))
	res := common.Execute(ctx, runner, req)
	common.Report(res, saveLog)
}
