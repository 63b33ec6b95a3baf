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

package chips

import (
	"os"
	"strings"

	"github.com/arduino/arduino-cli/table"
	"github.com/arduino/arduino-flashrom/cli/common"
	"github.com/arduino/arduino-flashrom/cli/feedback"
	"github.com/spf13/cobra"
)

// NewCommand created a new `chips` command
func NewCommand() *cobra.Command {
	chipsCmd := &cobra.Command{
		Use:     "chips",
		Short:   "Commands to operate on the flash chips supported by flashrom.",
		Long:    "A subset of commands to query the flash chips known by flashrom.",
		Example: "  " + os.Args[0] + " chips list",
	}
	chipsCmd.AddCommand(newListCommand())
	return chipsCmd
}

func newListCommand() *cobra.Command {
	var filter *string
	listCmd := &cobra.Command{
		Use:     "list",
		Short:   "List supported flash chips",
		Long:    "Displays the flash chips supported by flashrom (flashrom -L), is it possible to filter results by name.",
		Example: "  " + os.Args[0] + " chips list --filter W25Q64",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			runner := common.NewRunner(common.LoadConfig())
			chips, res := runner.ListChips(cmd.Context())
			if !res.Succeeded {
				feedback.FatalResult(res, common.ExitCodeFor(res.Err()))
				return
			}
			feedback.PrintResult(Filter(chips, *filter))
		},
	}
	filter = listCmd.Flags().StringP("filter", "f", "", "Show only the chips containing this text (case insensitive)")
	return listCmd
}

// ListResult is the list of supported chips
type ListResult []string

// Filter returns the chips containing text, ignoring case.
func Filter(chips []string, text string) ListResult {
	text = strings.ToLower(strings.TrimSpace(text))
	res := ListResult{}
	for _, chip := range chips {
		if text == "" || strings.Contains(strings.ToLower(chip), text) {
			res = append(res, chip)
		}
	}
	return res
}

func (l ListResult) String() string {
	if len(l) == 0 {
		return "No flash chips found."
	}
	t := table.New()
	t.SetHeader("Chip")
	for _, chip := range l {
		t.AddRow(chip)
	}
	return t.Render()
}

// Data implements feedback.Result
func (l ListResult) Data() interface{} {
	return l
}
