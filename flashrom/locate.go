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

package flashrom

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"

	"github.com/arduino/go-paths-helper"
	"github.com/sirupsen/logrus"
)

// ToolName is the base name of the flashrom executable.
const ToolName = "flashrom"

// Resolver locates the flashrom executable.
type Resolver interface {
	Resolve() (*paths.Path, error)
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func() (*paths.Path, error)

// Resolve implements Resolver
func (f ResolverFunc) Resolve() (*paths.Path, error) {
	return f()
}

// StaticResolver always returns the same executable if it exists.
func StaticResolver(exe *paths.Path) Resolver {
	return &Locator{Name: ToolName, Override: exe}
}

// Locator searches a fixed, ordered list of locations. The first existing
// executable file wins:
//
//  1. Override, when set
//  2. Candidates, in order
//  3. the PATH lookup (unless LookPath is nil)
//  4. Fallbacks, in order
type Locator struct {
	Name       string
	Override   *paths.Path
	Candidates paths.PathList
	Fallbacks  paths.PathList
	LookPath   func(file string) (string, error)
}

// DefaultLocator returns the Locator for the running platform.
func DefaultLocator() *Locator {
	var exeDir *paths.Path
	if exe, err := os.Executable(); err == nil {
		exeDir = paths.New(exe).Parent()
	}
	workDir, _ := paths.Getwd()
	return NewLocator(runtime.GOOS, exeDir, workDir)
}

// NewLocator builds the search list used on goos. exeDir and workDir are
// used for the bundled executable on windows and may be nil.
func NewLocator(goos string, exeDir, workDir *paths.Path) *Locator {
	l := &Locator{
		Name:     ToolName,
		LookPath: exec.LookPath,
	}
	switch goos {
	case "windows":
		for _, dir := range []*paths.Path{exeDir, workDir} {
			if dir != nil {
				l.Candidates.Add(dir.Join("flashrom", "flashrom.exe"))
			}
		}
	case "darwin":
		l.Candidates = paths.NewPathList(
			"/opt/local/bin/flashrom",    // MacPorts
			"/usr/local/bin/flashrom",    // Homebrew (Intel)
			"/opt/homebrew/bin/flashrom", // Homebrew (Apple Silicon)
		)
	default:
		// flashrom usually lands in sbin, which is not always in PATH
		l.Fallbacks = paths.NewPathList(
			"/usr/local/sbin/flashrom",
			"/usr/sbin/flashrom",
		)
	}
	return l
}

// AddSearchDirs makes the Locator look for the executable in dirs before the
// platform locations.
func (l *Locator) AddSearchDirs(dirs ...string) {
	extra := paths.PathList{}
	for _, dir := range dirs {
		if d := paths.New(dir); d != nil {
			extra.Add(d.Join(l.executableName()))
		}
	}
	l.Candidates = append(extra, l.Candidates...)
}

// SearchList returns the locations tried before and after the PATH lookup.
func (l *Locator) SearchList() (before, after paths.PathList) {
	if l.Override != nil {
		before.Add(l.Override)
	}
	before = append(before, l.Candidates...)
	return before, append(paths.PathList{}, l.Fallbacks...)
}

// Resolve implements Resolver
func (l *Locator) Resolve() (*paths.Path, error) {
	notFound := &ToolNotFoundError{Name: l.Name}
	try := func(candidates paths.PathList) *paths.Path {
		for _, candidate := range candidates {
			notFound.Searched.Add(candidate)
			if isExecutable(candidate) {
				return candidate
			}
			logrus.WithField("candidate", candidate).Debug("flashrom not found here")
		}
		return nil
	}

	before, after := l.SearchList()
	if exe := try(before); exe != nil {
		return exe, nil
	}
	if l.LookPath != nil {
		found, err := l.LookPath(l.Name)
		if err == nil {
			if exe := paths.New(found); exe != nil && isExecutable(exe) {
				return exe, nil
			}
			err = fmt.Errorf("%s is not executable", found)
		}
		notFound.PathErr = err
	}
	if exe := try(after); exe != nil {
		return exe, nil
	}
	return nil, notFound
}

func (l *Locator) executableName() string {
	if l.Override != nil {
		return l.Override.Base()
	}
	if runtime.GOOS == "windows" {
		return l.Name + ".exe"
	}
	return l.Name
}

func isExecutable(p *paths.Path) bool {
	info, err := p.Stat()
	if err != nil || info.IsDir() {
		return false
	}
	return canExecute(p, info)
}
