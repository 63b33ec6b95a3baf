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

package version

import (
	"fmt"
	"runtime"
)

// set at build time with -ldflags "-X github.com/arduino/arduino-flashrom/version.versionString=..."
var (
	defaultVersionString = "0.0.0-git"
	versionString        = ""
	commit               = ""
	date                 = ""
	// VersionInfo describes the running binary
	VersionInfo *Info
)

// Info contains the build information of the program
type Info struct {
	Application   string `json:"Application"`
	VersionString string `json:"VersionString"`
	Commit        string `json:"Commit"`
	Date          string `json:"Date"`
	Platform      string `json:"Platform"`
}

// NewInfo returns the build information for application.
func NewInfo(application string) *Info {
	v := versionString
	if v == "" {
		v = defaultVersionString
	}
	return &Info{
		Application:   application,
		VersionString: v,
		Commit:        commit,
		Date:          date,
		Platform:      runtime.GOOS + "/" + runtime.GOARCH,
	}
}

func (i *Info) String() string {
	res := fmt.Sprintf("%s Version: %s", i.Application, i.VersionString)
	if i.Commit != "" {
		res += " Commit: " + i.Commit
	}
	if i.Date != "" {
		res += " Date: " + i.Date
	}
	return res + " (" + i.Platform + ")"
}

// Data implements feedback.Result interface
func (i *Info) Data() interface{} {
	return i
}

func init() {
	VersionInfo = NewInfo("arduino-flashrom")
}
