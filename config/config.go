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
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/arduino/arduino-flashrom/flashrom"
	"github.com/arduino/go-paths-helper"
	"github.com/caarlos0/env/v11"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// DefaultProgrammers are the programmer identifiers offered to the user when
// the configuration does not list any. flashrom owns the real list, these
// are not used for validation.
var DefaultProgrammers = []string{
	"ch341a_spi", "internal", "dummy", "nic3com", "nicrealtek", "nicnatsemi", "gfxnvidia",
	"raiden_debug_spi", "drkaiser", "satasii", "atahpt", "atavia", "atapromise", "it8212",
	"ft2232_spi", "serprog", "buspirate_spi", "dediprog", "developerbox", "rayer_spi",
	"pony_spi", "nicintel", "nicintel_spi", "nicintel_eeprom", "ogp_spi", "satamv",
	"linux_mtd", "linux_spi", "parade_lspcon", "mediatek_i2c_spi", "realtek_mst_i2c_spi",
	"usbblaster_spi", "mstarddc_spi", "pickit2_spi", "ch347_spi", "digilent_spi",
	"jlink_spi", "ni845x_spi", "stlinkv3_spi", "dirtyjtag_spi", "spidriver",
}

// Config holds the settings read from the configuration file and the
// environment. Environment variables win over the file.
type Config struct {
	ToolPath          string   `yaml:"tool_path" toml:"tool_path" env:"FLASHROM_TOOL"`
	SearchDirs        []string `yaml:"search_dirs" toml:"search_dirs" env:"FLASHROM_SEARCH_DIRS"`
	DefaultProgrammer string   `yaml:"default_programmer" toml:"default_programmer" env:"FLASHROM_PROGRAMMER"`
	Programmers       []string `yaml:"programmers" toml:"programmers"`
}

// Default returns the configuration used when nothing else is specified.
func Default() *Config {
	return &Config{
		DefaultProgrammer: "internal",
		Programmers:       append([]string{}, DefaultProgrammers...),
	}
}

// DefaultPath is the configuration file looked up when --config is not given.
func DefaultPath() *paths.Path {
	dir, err := os.UserConfigDir()
	if err != nil {
		return nil
	}
	return paths.New(dir, "arduino-flashrom", "config.yaml")
}

// Load reads the configuration file at path (yaml or toml, chosen by
// extension) on top of the defaults, then applies the environment. A nil
// path skips the file.
func Load(path *paths.Path) (*Config, error) {
	cfg := Default()
	if path != nil {
		if err := cfg.decodeFile(path); err != nil {
			return nil, err
		}
		logrus.WithField("file", path).Info("Configuration loaded")
	}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("reading configuration from environment: %w", err)
	}
	cfg.normalize()
	return cfg, nil
}

func (c *Config) decodeFile(path *paths.Path) error {
	data, err := path.ReadFile()
	if err != nil {
		return fmt.Errorf("reading configuration: %w", err)
	}
	switch strings.ToLower(path.Ext()) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, c)
	case ".toml":
		_, err = toml.Decode(string(data), c)
	default:
		return fmt.Errorf("unsupported configuration format: %s", path)
	}
	if err != nil {
		return fmt.Errorf("parsing configuration %s: %w", path, err)
	}
	return nil
}

func (c *Config) normalize() {
	c.ToolPath = strings.TrimSpace(c.ToolPath)
	c.DefaultProgrammer = strings.TrimSpace(c.DefaultProgrammer)
	c.SearchDirs = compact(c.SearchDirs)
	c.Programmers = compact(c.Programmers)
	if len(c.Programmers) == 0 {
		c.Programmers = append([]string{}, DefaultProgrammers...)
	}
}

// Locator returns the flashrom search list for this configuration.
func (c *Config) Locator() *flashrom.Locator {
	l := flashrom.DefaultLocator()
	if c.ToolPath != "" {
		l.Override = paths.New(c.ToolPath)
	}
	l.AddSearchDirs(c.SearchDirs...)
	return l
}

func compact(values []string) []string {
	res := []string{}
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			res = append(res, v)
		}
	}
	return res
}
