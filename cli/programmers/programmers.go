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

package programmers

import (
	"os"

	"github.com/arduino/arduino-cli/table"
	"github.com/arduino/arduino-flashrom/cli/common"
	"github.com/arduino/arduino-flashrom/cli/feedback"
	"github.com/spf13/cobra"
)

// NewCommand created a new `programmers` command
func NewCommand() *cobra.Command {
	programmersCmd := &cobra.Command{
		Use:     "programmers",
		Short:   "Commands to operate on flashrom programmers.",
		Long:    "A subset of commands to query the programmers that can be passed to flashrom.",
		Example: "  " + os.Args[0] + " programmers list",
	}
	programmersCmd.AddCommand(&cobra.Command{
		Use:     "list",
		Short:   "List known programmers",
		Long:    "Displays the programmer identifiers from the configuration, the default one is marked. Other identifiers supported by flashrom can be used too.",
		Example: "  " + os.Args[0] + " programmers list",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			cfg := common.LoadConfig()
			feedback.PrintResult(NewListResult(cfg.Programmers, cfg.DefaultProgrammer))
		},
	})
	return programmersCmd
}

// ProgrammerResult describes a programmer identifier
type ProgrammerResult struct {
	Name    string `json:"name"`
	Default bool   `json:"default"`
}

// ListResult is the list of known programmers
type ListResult []*ProgrammerResult

// NewListResult builds the list marking def as the default programmer.
func NewListResult(programmers []string, def string) ListResult {
	res := ListResult{}
	for _, p := range programmers {
		res = append(res, &ProgrammerResult{Name: p, Default: p == def})
	}
	return res
}

func (l ListResult) String() string {
	if len(l) == 0 {
		return "No programmers configured."
	}
	t := table.New()
	t.SetHeader("Programmer", "")
	for _, p := range l {
		def := ""
		if p.Default {
			def = "default"
		}
		t.AddRow(p.Name, def)
	}
	return t.Render()
}

// Data implements feedback.Result
func (l ListResult) Data() interface{} {
	return l
}
