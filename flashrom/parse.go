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
	"regexp"
	"strings"

	semver "go.bug.st/relaxed-semver"
	"golang.org/x/exp/slices"
)

// This is the only place where flashrom output is pattern matched, every
// caller goes through the helpers below.
var (
	foundChipRegexp   = regexp.MustCompile(`Found\s+(.+?)\s+flash\s+chip`)
	toolVersionRegexp = regexp.MustCompile(`(?m)^\s*flashrom\s+v?(\d[^\s,]*)`)
)

const chipListHeader = "Supported"

// ExtractChipName returns the chip name from the first line of stdout
// matching "Found <NAME> flash chip". Surrounding whitespace and quotes are
// removed from NAME.
func ExtractChipName(stdout string) (string, bool) {
	for _, line := range splitLines(stdout) {
		m := foundChipRegexp.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		name := strings.TrimSpace(m[1])
		name = strings.TrimSpace(strings.Trim(name, `"'`))
		if name == "" {
			continue
		}
		return name, true
	}
	return "", false
}

// ParseChipList extracts chip descriptors from the output of `flashrom -L`.
// Header lines starting with "Supported" and blank lines are discarded, the
// order of the remaining lines is preserved.
func ParseChipList(output string) []string {
	chips := []string{}
	for _, line := range splitLines(output) {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, chipListHeader) {
			continue
		}
		chips = append(chips, line)
	}
	return chips
}

// MatchChip looks for name in the chip list ignoring case and returns the
// entry as spelled in the list.
func MatchChip(chips []string, name string) (string, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", false
	}
	idx := slices.IndexFunc(chips, func(c string) bool {
		return strings.EqualFold(strings.TrimSpace(c), name)
	})
	if idx < 0 {
		return "", false
	}
	return chips[idx], true
}

// ParseToolVersion extracts the version from `flashrom --version`.
func ParseToolVersion(output string) (*semver.RelaxedVersion, error) {
	m := toolVersionRegexp.FindStringSubmatch(output)
	if m == nil {
		return nil, fmt.Errorf("no version found in flashrom output")
	}
	return semver.ParseRelaxed(m[1]), nil
}

func splitLines(s string) []string {
	return strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
}
