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

// Package main generates the Markdown documentation of the arduino-flashrom commands.
package main

import (
	"os"

	"github.com/arduino/arduino-flashrom/cli"
	"github.com/arduino/go-paths-helper"
	"github.com/spf13/cobra/doc"
)

func main() {
	if len(os.Args) < 2 {
		os.Stderr.WriteString("usage: docsgen <output folder>\n")
		os.Exit(1)
	}

	outDir := paths.New(os.Args[1])
	if err := outDir.MkdirAll(); err != nil {
		panic(err)
	}

	rootCmd := cli.NewCommand()
	rootCmd.DisableAutoGenTag = true // no date stamp, keeps the output reproducible
	if err := doc.GenMarkdownTree(rootCmd, outDir.String()); err != nil {
		panic(err)
	}
}
