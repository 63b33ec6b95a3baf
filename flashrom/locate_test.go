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
	"errors"
	"os"
	"runtime"
	"testing"

	"github.com/arduino/go-paths-helper"
	"github.com/stretchr/testify/require"
)

func fakeExecutable(t *testing.T, dir *paths.Path, name string) *paths.Path {
	require.NoError(t, dir.MkdirAll())
	exe := dir.Join(name)
	require.NoError(t, exe.WriteFile([]byte("#!/bin/sh\nexit 0\n")))
	require.NoError(t, os.Chmod(exe.String(), 0o755))
	return exe
}

func noLookPath(string) (string, error) {
	return "", errors.New("not in PATH")
}

func TestNewLocatorPlatforms(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("expects unix path separators")
	}
	exeDir := paths.New("/opt/app")
	workDir := paths.New("/home/user")

	windows := NewLocator("windows", exeDir, workDir)
	require.Equal(t, []string{
		"/opt/app/flashrom/flashrom.exe",
		"/home/user/flashrom/flashrom.exe",
	}, windows.Candidates.AsStrings())
	require.Empty(t, windows.Fallbacks)

	darwin := NewLocator("darwin", exeDir, workDir)
	require.Equal(t, []string{
		"/opt/local/bin/flashrom",
		"/usr/local/bin/flashrom",
		"/opt/homebrew/bin/flashrom",
	}, darwin.Candidates.AsStrings())
	require.NotNil(t, darwin.LookPath)

	linux := NewLocator("linux", nil, nil)
	require.Empty(t, linux.Candidates)
	require.Equal(t, []string{"/usr/local/sbin/flashrom", "/usr/sbin/flashrom"}, linux.Fallbacks.AsStrings())
}

func TestLocatorResolveOrder(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses unix permissions")
	}
	root := paths.New(t.TempDir())
	first := root.Join("first")
	second := fakeExecutable(t, root.Join("second"), "flashrom")
	fallback := fakeExecutable(t, root.Join("fallback"), "flashrom")
	inPath := fakeExecutable(t, root.Join("path"), "flashrom")

	l := &Locator{
		Name:       ToolName,
		Candidates: paths.PathList{first.Join("flashrom"), second},
		Fallbacks:  paths.PathList{fallback},
		LookPath:   func(string) (string, error) { return inPath.String(), nil },
	}
	exe, err := l.Resolve()
	require.NoError(t, err)
	require.Equal(t, second.String(), exe.String())

	l.Candidates = paths.PathList{first.Join("flashrom")}
	exe, err = l.Resolve()
	require.NoError(t, err)
	require.Equal(t, inPath.String(), exe.String())

	l.LookPath = noLookPath
	exe, err = l.Resolve()
	require.NoError(t, err)
	require.Equal(t, fallback.String(), exe.String())

	override := fakeExecutable(t, root.Join("override"), "my-flashrom")
	l.Override = override
	exe, err = l.Resolve()
	require.NoError(t, err)
	require.Equal(t, override.String(), exe.String())
}

func TestLocatorNotFound(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses unix permissions")
	}
	root := paths.New(t.TempDir())
	notExecutable := root.Join("plain")
	require.NoError(t, notExecutable.WriteFile([]byte("data")))
	require.NoError(t, os.Chmod(notExecutable.String(), 0o644))
	directory := root.Join("dir")
	require.NoError(t, directory.MkdirAll())

	l := &Locator{
		Name:       ToolName,
		Candidates: paths.PathList{notExecutable, directory},
		Fallbacks:  paths.PathList{root.Join("missing")},
		LookPath:   noLookPath,
	}
	exe, err := l.Resolve()
	require.Nil(t, exe)
	require.ErrorIs(t, err, ErrToolNotFound)

	var notFound *ToolNotFoundError
	require.True(t, errors.As(err, &notFound))
	require.Equal(t, []string{notExecutable.String(), directory.String(), root.Join("missing").String()}, notFound.Searched.AsStrings())
	require.Contains(t, err.Error(), "$PATH")
	require.Contains(t, failureLine(err), "ToolNotFound: ")
}

func TestAddSearchDirs(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses unix permissions")
	}
	root := paths.New(t.TempDir())
	exe := fakeExecutable(t, root.Join("custom"), "flashrom")

	l := NewLocator("darwin", nil, nil)
	l.LookPath = noLookPath
	l.AddSearchDirs("", root.Join("custom").String())
	before, _ := l.SearchList()
	require.Equal(t, exe.String(), before[0].String())

	found, err := l.Resolve()
	require.NoError(t, err)
	require.Equal(t, exe.String(), found.String())
}

func TestStaticResolver(t *testing.T) {
	_, err := StaticResolver(paths.New(t.TempDir(), "nothing-here")).Resolve()
	require.ErrorIs(t, err, ErrToolNotFound)

	_, err = StaticResolver(nil).Resolve()
	require.ErrorIs(t, err, ErrToolNotFound)
}
