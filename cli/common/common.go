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
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/arduino/arduino-flashrom/cli/feedback"
	"github.com/arduino/arduino-flashrom/cli/globals"
	"github.com/arduino/arduino-flashrom/config"
	"github.com/arduino/arduino-flashrom/flashrom"
	"github.com/arduino/go-paths-helper"
	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
)

// LoadConfig reads the configuration selected by --config, or the default
// configuration file if present, and applies --tool on top of it.
func LoadConfig() *config.Config {
	cfg, err := loadConfig(globals.ConfigFile, globals.ToolPath)
	if err != nil {
		feedback.Fatal(fmt.Sprintf("Error loading configuration: %s", err), feedback.ErrNoConfigFile)
	}
	return cfg
}

func loadConfig(file, tool string) (*config.Config, error) {
	var path *paths.Path
	if file != "" {
		path = paths.New(file)
		if !path.Exist() {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
	} else if def := config.DefaultPath(); def != nil && def.Exist() {
		path = def
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if tool = strings.TrimSpace(tool); tool != "" {
		cfg.ToolPath = tool
	}
	return cfg, nil
}

// NewRunner creates the flashrom runner for cfg. Progress messages of the
// chip helpers are printed in text mode.
func NewRunner(cfg *config.Config) *flashrom.Runner {
	runner := flashrom.NewRunner(cfg.Locator(), nil)
	runner.Output = feedback.Print
	return runner
}

// Execute runs req and waits for the result. While flashrom runs an activity
// indicator is shown on interactive terminals. It measures nothing.
func Execute(ctx context.Context, runner *flashrom.Runner, req flashrom.ExecutionRequest) flashrom.ExecutionResult {
	logrus.WithField("request", req).Debug("Executing flashrom")
	task, err := runner.Execute(ctx, req, func(res flashrom.ExecutionResult) {
		logrus.WithField("status", res.Status()).Infof("%s finished", req.Operation)
	})
	if err != nil {
		feedback.Fatal(err.Error(), ExitCodeFor(err))
		return flashrom.ExecutionResult{}
	}
	if feedback.GetFormat() == feedback.Text && isatty.IsTerminal(os.Stderr.Fd()) {
		ShowActivity(os.Stderr, fmt.Sprintf("Running %s...", req.Operation), task.Done(), 150*time.Millisecond)
	}
	return task.Wait()
}

// ShowActivity draws a spinner on w until done is closed, then clears it.
func ShowActivity(w io.Writer, label string, done <-chan struct{}, interval time.Duration) {
	const frames = `|/-\`
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for i := 0; ; i++ {
		fmt.Fprintf(w, "\r%s %c", label, frames[i%len(frames)])
		select {
		case <-done:
			fmt.Fprint(w, "\r"+strings.Repeat(" ", len(label)+2)+"\r")
			return
		case <-ticker.C:
		}
	}
}

// ExitCodeFor maps a runner error to the exit code of the program.
func ExitCodeFor(err error) feedback.ExitCode {
	switch {
	case err == nil:
		return feedback.Success
	case errors.Is(err, flashrom.ErrInvalidRequest):
		return feedback.ErrBadArgument
	case errors.Is(err, flashrom.ErrToolNotFound):
		return feedback.ErrToolNotFound
	default:
		return feedback.ErrGeneric
	}
}

// SaveLog writes the human readable message of res to file.
func SaveLog(file string, res flashrom.ExecutionResult) error {
	path := paths.New(file)
	if path == nil {
		return errors.New("missing log file name")
	}
	if err := path.WriteFile([]byte(res.Message() + "\n")); err != nil {
		return fmt.Errorf("saving log: %w", err)
	}
	logrus.WithField("file", path).Info("Log saved")
	return nil
}

// Report prints res, saves it to logFile when requested, and exits with a
// non-zero status if the operation did not succeed.
func Report(res flashrom.ExecutionResult, logFile string) {
	if logFile != "" {
		if err := SaveLog(logFile, res); err != nil {
			feedback.Warning(err.Error())
		}
	}
	if !res.Succeeded {
		feedback.FatalResult(res, ExitCodeFor(res.Err()))
		return
	}
	feedback.PrintResult(res)
}
