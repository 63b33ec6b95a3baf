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
	"testing"

	"github.com/arduino/arduino-flashrom/flashrom"
	"github.com/arduino/go-paths-helper"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slices"
)

const detectOutput = "flashrom v1.3.0 on Linux 6.1.0 (x86_64)\nFound Winbond flash chip \"W25Q64.V\" (8192 kB, SPI) on ch341a_spi.\n"

// fakeFlashrom answers -L with a chip list and everything else with the
// detection output.
func fakeFlashrom(detect string) *flashrom.Runner {
	return flashrom.NewRunner(
		flashrom.ResolverFunc(func() (*paths.Path, error) { return paths.New("/fake/flashrom"), nil }),
		flashrom.LauncherFunc(func(_ context.Context, _ *paths.Path, args []string) (flashrom.Outcome, error) {
			if slices.Contains(args, "-L") {
				return flashrom.Outcome{Stdout: []byte("Supported flash chips:\nMacronix MX25L6405\nWinbond\n")}, nil
			}
			return flashrom.Outcome{Stdout: []byte(detect)}, nil
		}),
	)
}

func TestNewDetectResult(t *testing.T) {
	code := 0
	res := flashrom.ExecutionResult{
		Request:   flashrom.ExecutionRequest{Operation: flashrom.Detect, Programmer: "ch341a_spi"},
		ExitCode:  &code,
		Stdout:    detectOutput,
		Succeeded: true,
	}
	detect := NewDetectResult(res)
	require.True(t, detect.Detected)
	require.Equal(t, "Winbond", detect.Chip)
	require.Nil(t, detect.Supported)
	require.Contains(t, detect.String(), "Detected chip: Winbond")

	detect.MatchList([]string{"Macronix MX25L6405", "WINBOND"})
	require.NotNil(t, detect.Supported)
	require.True(t, *detect.Supported)
	require.Equal(t, "WINBOND", detect.ListedAs)
	require.Contains(t, detect.String(), "Supported by flashrom as: WINBOND")

	detect.MatchList([]string{"Macronix MX25L6405"})
	require.False(t, *detect.Supported)
	require.Contains(t, detect.String(), "Not found in the flashrom chip list.")
}

func TestNewDetectResultFailedRun(t *testing.T) {
	code := 1
	res := flashrom.ExecutionResult{
		Request:  flashrom.ExecutionRequest{Operation: flashrom.Detect, Programmer: "ch341a_spi"},
		ExitCode: &code,
		Stdout:   detectOutput,
		Stderr:   "Multiple flash chip definitions match the detected chip.",
	}
	detect := NewDetectResult(res)
	require.True(t, detect.Detected)
	require.Contains(t, detect.ErrorString(), "Multiple flash chip definitions")

	launchFailed := NewDetectResult(flashrom.ExecutionResult{
		Request: flashrom.ExecutionRequest{Operation: flashrom.Detect, Programmer: "ch341a_spi"},
		Stderr:  "ToolNotFound: flashrom not found",
	})
	require.False(t, launchFailed.Detected)
	require.Contains(t, launchFailed.String(), "No chip detected.")
}

func TestSelectChip(t *testing.T) {
	ctx := context.Background()
	runner := fakeFlashrom(detectOutput)
	require.Equal(t, "MX25L6405", selectChip(ctx, runner, "ch341a_spi", " MX25L6405 "))
	require.Equal(t, "", selectChip(ctx, runner, "ch341a_spi", ""))
	require.Equal(t, "Winbond", selectChip(ctx, runner, "ch341a_spi", "auto"))
	require.Equal(t, "Winbond", selectChip(ctx, runner, "ch341a_spi", "AUTO"))

	unlisted := fakeFlashrom("Found Gigadevice flash chip \"GD25Q64\"\n")
	require.Equal(t, "", selectChip(ctx, unlisted, "ch341a_spi", "auto"))

	none := fakeFlashrom("No EEPROM/flash device found.\n")
	require.Equal(t, "", selectChip(ctx, none, "ch341a_spi", "auto"))
}

func TestCommandsFlags(t *testing.T) {
	names := []string{}
	for _, cmd := range NewCommands() {
		names = append(names, cmd.Name())
		require.NotNil(t, cmd.Flags().Lookup("save-log"), cmd.Name())
		if cmd.Name() != "probe" {
			require.NotNil(t, cmd.Flags().Lookup("programmer"), cmd.Name())
		}
	}
	require.Equal(t, []string{"probe", "detect", "read", "write", "verify"}, names)

	write := NewWriteCommand()
	for _, flag := range []string{"input-file", "url", "checksum", "size", "chip"} {
		require.NotNil(t, write.Flags().Lookup(flag), flag)
	}
	require.NotNil(t, NewReadCommand().Flags().Lookup("output-file"))
}
