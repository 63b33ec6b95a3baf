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

package tool

import (
	"fmt"
	"os"

	"github.com/arduino/arduino-flashrom/cli/common"
	"github.com/arduino/arduino-flashrom/cli/feedback"
	"github.com/arduino/arduino-flashrom/flashrom"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	semver "go.bug.st/relaxed-semver"
)

// NewCommand created a new `tool` command
func NewCommand() *cobra.Command {
	toolCmd := &cobra.Command{
		Use:     "tool",
		Short:   "Commands to inspect the flashrom executable.",
		Long:    "A subset of commands to check which flashrom executable is used and its version.",
		Example: "  " + os.Args[0] + " tool version",
	}
	toolCmd.AddCommand(newPathCommand())
	toolCmd.AddCommand(newVersionCommand())
	return toolCmd
}

func newPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "path",
		Short:   "Shows the flashrom executable in use",
		Long:    "Searches flashrom in the configured and platform locations and prints the executable that would be run.",
		Example: "  " + os.Args[0] + " tool path",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			runner := common.NewRunner(common.LoadConfig())
			exe, err := runner.ResolveTool()
			if err != nil {
				feedback.Fatal(err.Error(), common.ExitCodeFor(err))
				return
			}
			feedback.PrintResult(&Info{Path: exe})
		},
	}
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   "Shows the flashrom version",
		Long:    "Runs flashrom --version and checks that the version is supported.",
		Example: "  " + os.Args[0] + " tool version",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			runner := common.NewRunner(common.LoadConfig())
			exe, err := runner.ResolveTool()
			if err != nil {
				feedback.Fatal(err.Error(), common.ExitCodeFor(err))
				return
			}
			version, err := runner.QueryVersion(cmd.Context())
			if err != nil {
				feedback.Fatal(fmt.Sprintf("Error querying flashrom version: %s", err), common.ExitCodeFor(err))
				return
			}
			info := NewInfo(exe, version)
			if !info.Supported {
				logrus.WithField("version", version).Warn("Unsupported flashrom version")
				feedback.Warning(fmt.Sprintf("flashrom %s is older than the minimum supported version %s", version, flashrom.MinimumToolVersion))
			}
			feedback.PrintResult(info)
		},
	}
}

// Info describes the flashrom executable
type Info struct {
	Path      string                 `json:"path"`
	Version   *semver.RelaxedVersion `json:"version,omitempty"`
	Supported bool                   `json:"supported"`
}

// NewInfo returns the Info for the executable at path reporting version.
func NewInfo(path string, version *semver.RelaxedVersion) *Info {
	return &Info{
		Path:      path,
		Version:   version,
		Supported: flashrom.IsSupportedVersion(version),
	}
}

func (i *Info) String() string {
	if i.Version == nil {
		return i.Path
	}
	return fmt.Sprintf("%s (version %s)", i.Path, i.Version)
}

// Data implements feedback.Result
func (i *Info) Data() interface{} {
	return i
}
