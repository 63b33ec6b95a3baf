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

package config

import (
	"testing"

	"github.com/arduino/go-paths-helper"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Setenv("FLASHROM_TOOL", "")
	t.Setenv("FLASHROM_PROGRAMMER", "")
	t.Setenv("FLASHROM_SEARCH_DIRS", "")
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(nil)
	require.NoError(t, err)
	require.Equal(t, "internal", cfg.DefaultProgrammer)
	require.Empty(t, cfg.ToolPath)
	require.Empty(t, cfg.SearchDirs)
	require.Equal(t, DefaultProgrammers, cfg.Programmers)
}

func TestLoadYAML(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(paths.New("testdata", "flashrom.yaml"))
	require.NoError(t, err)
	require.Equal(t, "/opt/flashrom/bin/flashrom", cfg.ToolPath)
	require.Equal(t, []string{"/opt/flashrom/bin", "/usr/lib/flashrom"}, cfg.SearchDirs)
	require.Equal(t, "ch341a_spi", cfg.DefaultProgrammer)
	require.Equal(t, []string{"ch341a_spi", "internal", "dummy"}, cfg.Programmers)
}

func TestLoadTOML(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(paths.New("testdata", "flashrom.toml"))
	require.NoError(t, err)
	require.Equal(t, "/opt/flashrom/bin/flashrom", cfg.ToolPath)
	require.Equal(t, []string{"/opt/flashrom/bin"}, cfg.SearchDirs)
	require.Equal(t, "internal", cfg.DefaultProgrammer)
	require.Equal(t, DefaultProgrammers, cfg.Programmers)
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	t.Setenv("FLASHROM_TOOL", "/custom/flashrom")
	t.Setenv("FLASHROM_PROGRAMMER", "dummy")
	t.Setenv("FLASHROM_SEARCH_DIRS", "/a,/b")
	cfg, err := Load(paths.New("testdata", "flashrom.yaml"))
	require.NoError(t, err)
	require.Equal(t, "/custom/flashrom", cfg.ToolPath)
	require.Equal(t, "dummy", cfg.DefaultProgrammer)
	require.Equal(t, []string{"/a", "/b"}, cfg.SearchDirs)
}

func TestLoadErrors(t *testing.T) {
	clearEnv(t)
	_, err := Load(paths.New("testdata", "invalid.yaml"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "parsing configuration")

	_, err = Load(paths.New("testdata", "missing.yaml"))
	require.Error(t, err)

	unsupported := paths.New(t.TempDir(), "flashrom.json")
	require.NoError(t, unsupported.WriteFile([]byte(`{"tool_path": "/usr/sbin/flashrom"}`)))
	_, err = Load(unsupported)
	require.Error(t, err)
	require.Contains(t, err.Error(), "unsupported configuration format")
}

func TestLocator(t *testing.T) {
	cfg := &Config{ToolPath: "/opt/flashrom/bin/flashrom", SearchDirs: []string{"/srv/tools"}}
	l := cfg.Locator()
	require.Equal(t, "/opt/flashrom/bin/flashrom", l.Override.String())
	before, _ := l.SearchList()
	require.Equal(t, "/opt/flashrom/bin/flashrom", before[0].String())
	require.Equal(t, paths.New("/srv/tools").Join(l.Name).String(), before[1].String())
}
