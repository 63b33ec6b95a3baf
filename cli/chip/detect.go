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
	"strings"

	"github.com/arduino/arduino-flashrom/cli/arguments"
	"github.com/arduino/arduino-flashrom/cli/common"
	"github.com/arduino/arduino-flashrom/cli/feedback"
	"github.com/arduino/arduino-flashrom/flashrom"
	"github.com/spf13/cobra"
)

var matchList bool

// NewDetectCommand creates a new `detect` command
func NewDetectCommand() *cobra.Command {
	command := &cobra.Command{
		Use:   "detect",
		Short: "Detects the flash chip connected to the programmer.",
		Long:  "Runs flashrom with the given programmer and reports the flash chip it found.",
		Example: "" +
			"  " + os.Args[0] + " detect -p ch341a_spi\n" +
			"  " + os.Args[0] + " detect -p ch341a_spi --match-list\n",
		Args: arguments.NoArgsBeforeDash,
		Run:  runDetect,
	}
	command.Flags().StringVarP(&commonFlags.Programmer, "programmer", "p", "", "flashrom programmer, e.g.: ch341a_spi, internal (defaults to the configured programmer)")
	command.Flags().BoolVar(&matchList, "match-list", false, "Check the detected chip against the list of chips supported by flashrom")
	addSaveLogFlag(command)
	return command
}

// DetectResult is the outcome of a chip detection.
type DetectResult struct {
	Result   flashrom.ExecutionResult `json:"result"`
	Chip     string                   `json:"chip,omitempty"`
	Detected bool                     `json:"detected"`
	// Supported and ListedAs are set only when the chip list was checked
	Supported *bool  `json:"supported,omitempty"`
	ListedAs  string `json:"listed_as,omitempty"`
}

func runDetect(cmd *cobra.Command, args []string) {
	ctx := cmd.Context()
	cfg := common.LoadConfig()
	runner := common.NewRunner(cfg)
	req := flashrom.ExecutionRequest{
		Operation:  flashrom.Detect,
		Programmer: commonFlags.NormalizedProgrammer(cfg.DefaultProgrammer),
		ExtraArgs:  arguments.ExtraArgs(cmd, args),
	}
	res := common.Execute(ctx, runner, req)
	if saveLog != "" {
		if err := common.SaveLog(saveLog, res); err != nil {
			feedback.Warning(err.Error())
		}
	}

	detect := NewDetectResult(res)
	if matchList && detect.Detected {
		chips, _ := runner.ListChips(ctx)
		detect.MatchList(chips)
	}
	if !res.Succeeded {
		feedback.FatalResult(detect, common.ExitCodeFor(res.Err()))
		return
	}
	feedback.PrintResult(detect)
}

// NewDetectResult extracts the chip name from the output of a Detect run.
// The output is inspected whatever the exit status: flashrom may report the
// chip and still fail afterwards.
func NewDetectResult(res flashrom.ExecutionResult) *DetectResult {
	detect := &DetectResult{Result: res}
	if res.ExitCode != nil {
		detect.Chip, detect.Detected = flashrom.ExtractChipName(res.Stdout)
	}
	return detect
}

// MatchList checks the detected chip against chips.
func (d *DetectResult) MatchList(chips []string) {
	listed, ok := flashrom.MatchChip(chips, d.Chip)
	d.Supported = &ok
	d.ListedAs = listed
}

func (d *DetectResult) String() string {
	var lines []string
	if out := d.Result.String(); out != "" {
		lines = append(lines, out)
	}
	if d.Detected {
		lines = append(lines, fmt.Sprintf("Detected chip: %s", d.Chip))
	} else {
		lines = append(lines, "No chip detected.")
	}
	if d.Supported != nil {
		if *d.Supported {
			lines = append(lines, fmt.Sprintf("Supported by flashrom as: %s", d.ListedAs))
		} else {
			lines = append(lines, "Not found in the flashrom chip list.")
		}
	}
	return strings.Join(lines, "\n")
}

// ErrorString implements feedback.ErrorResult
func (d *DetectResult) ErrorString() string {
	return d.Result.ErrorString()
}

// Data implements feedback.Result
func (d *DetectResult) Data() interface{} {
	return d
}
