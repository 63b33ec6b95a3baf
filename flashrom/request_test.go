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
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildArguments(t *testing.T) {
	testrunner := func(req ExecutionRequest, expected []string) {
		t.Run(req.Operation.String(), func(t *testing.T) {
			args, err := BuildArguments(req)
			require.NoError(t, err)
			require.Equal(t, expected, args)

			again, err := BuildArguments(req)
			require.NoError(t, err)
			require.Equal(t, args, again)
		})
	}

	testrunner(ExecutionRequest{Operation: Probe}, []string{})
	testrunner(ExecutionRequest{Operation: Detect, Programmer: "ch341a_spi"}, []string{"-p", "ch341a_spi"})
	testrunner(ExecutionRequest{Operation: Read, Programmer: "ch341a_spi", File: "/tmp/dump.bin"}, []string{"-p", "ch341a_spi", "-r", "/tmp/dump.bin"})
	testrunner(ExecutionRequest{Operation: Write, Programmer: "internal", File: "bios.rom"}, []string{"-p", "internal", "-w", "bios.rom"})
	testrunner(ExecutionRequest{Operation: Verify, Programmer: "dummy", File: "bios.rom"}, []string{"-p", "dummy", "-v", "bios.rom"})
}

func TestBuildArgumentsExtraArgs(t *testing.T) {
	extra := []string{"-c", "W25Q64.V"}
	req := ExecutionRequest{Operation: Write, Programmer: "ch341a_spi", File: "fw.bin", ExtraArgs: extra}
	args, err := BuildArguments(req)
	require.NoError(t, err)
	require.Equal(t, []string{"-p", "ch341a_spi", "-w", "fw.bin", "-c", "W25Q64.V"}, args)

	args[5] = "changed"
	require.Equal(t, "W25Q64.V", extra[1])
}

func TestBuildArgumentsInvalid(t *testing.T) {
	for _, op := range []Operation{Read, Write, Verify} {
		for _, file := range []string{"", "   "} {
			_, err := BuildArguments(ExecutionRequest{Operation: op, Programmer: "internal", File: file})
			require.ErrorIs(t, err, ErrInvalidRequest, "%s with file %q", op, file)
		}
	}
	for _, op := range []Operation{Detect, Read, Write, Verify} {
		_, err := BuildArguments(ExecutionRequest{Operation: op, File: "fw.bin"})
		require.ErrorIs(t, err, ErrInvalidRequest, "%s without programmer", op)
	}
	_, err := BuildArguments(ExecutionRequest{Operation: Operation(42), Programmer: "internal"})
	require.ErrorIs(t, err, ErrInvalidRequest)

	require.NoError(t, ExecutionRequest{Operation: Probe}.Validate())
}

func TestWithChip(t *testing.T) {
	req := ExecutionRequest{Operation: Read, Programmer: "internal", File: "dump.bin"}
	withChip := req.WithChip(" MX25L6405 ")
	require.Nil(t, req.ExtraArgs)
	require.Equal(t, []string{"-c", "MX25L6405"}, withChip.ExtraArgs)
	require.Equal(t, req, req.WithChip(""))
}

func TestOperation(t *testing.T) {
	for _, name := range []string{"probe", "detect", "read", "write", "verify"} {
		op, err := ParseOperation(name)
		require.NoError(t, err)
		require.Equal(t, name, op.String())
	}
	op, err := ParseOperation(" WRITE ")
	require.NoError(t, err)
	require.Equal(t, Write, op)

	_, err = ParseOperation("erase")
	require.Error(t, err)

	require.Equal(t, "", Probe.Flag())
	require.Equal(t, "", Detect.Flag())
	require.Equal(t, "-r", Read.Flag())
	require.Equal(t, "-w", Write.Flag())
	require.Equal(t, "-v", Verify.Flag())

	data, err := json.Marshal(Verify)
	require.NoError(t, err)
	require.Equal(t, `"verify"`, string(data))
}
