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

package common

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/arduino/arduino-flashrom/cli/feedback"
	"github.com/arduino/arduino-flashrom/flashrom"
	"github.com/arduino/go-paths-helper"
	"github.com/stretchr/testify/require"
)

func TestExitCodeFor(t *testing.T) {
	require.Equal(t, feedback.Success, ExitCodeFor(nil))
	require.Equal(t, feedback.ErrBadArgument, ExitCodeFor(fmt.Errorf("%w: missing file", flashrom.ErrInvalidRequest)))
	require.Equal(t, feedback.ErrToolNotFound, ExitCodeFor(&flashrom.ToolNotFoundError{Name: "flashrom"}))
	require.Equal(t, feedback.ErrGeneric, ExitCodeFor(&flashrom.ProcessError{ExitCode: 1}))
	require.Equal(t, feedback.ErrGeneric, ExitCodeFor(flashrom.ErrLaunchFailed))
}

func TestSaveLog(t *testing.T) {
	code := 1
	res := flashrom.ExecutionResult{
		Request:  flashrom.ExecutionRequest{Operation: flashrom.Write, Programmer: "ch341a_spi", File: "fw.bin"},
		ExitCode: &code,
		Stdout:   "Erasing and writing flash chip...",
		Stderr:   "access denied",
	}
	file := paths.New(t.TempDir(), "flashrom.log")
	require.NoError(t, SaveLog(file.String(), res))
	data, err := file.ReadFile()
	require.NoError(t, err)
	require.Equal(t, res.Message()+"\n", string(data))
	require.Contains(t, string(data), "access denied")

	require.Error(t, SaveLog("", res))
	require.Error(t, SaveLog(paths.New(t.TempDir(), "missing", "dir", "x.log").String(), res))
}

func TestShowActivity(t *testing.T) {
	var out bytes.Buffer
	done := make(chan struct{})
	go func() {
		time.Sleep(30 * time.Millisecond)
		close(done)
	}()
	ShowActivity(&out, "Running read...", done, 5*time.Millisecond)
	require.True(t, strings.HasPrefix(out.String(), "\rRunning read... |"))
	require.True(t, strings.HasSuffix(out.String(), "\r"))
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("FLASHROM_TOOL", "")
	t.Setenv("FLASHROM_PROGRAMMER", "")
	t.Setenv("FLASHROM_SEARCH_DIRS", "")

	file := paths.New(t.TempDir(), "flashrom.yaml")
	require.NoError(t, file.WriteFile([]byte("default_programmer: ch341a_spi\ntool_path: /opt/flashrom\n")))

	cfg, err := loadConfig(file.String(), "")
	require.NoError(t, err)
	require.Equal(t, "ch341a_spi", cfg.DefaultProgrammer)
	require.Equal(t, "/opt/flashrom", cfg.ToolPath)

	cfg, err = loadConfig(file.String(), " /usr/bin/flashrom ")
	require.NoError(t, err)
	require.Equal(t, "/usr/bin/flashrom", cfg.ToolPath)

	_, err = loadConfig(paths.New(t.TempDir(), "missing.yaml").String(), "")
	require.Error(t, err)
}
