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
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	semver "go.bug.st/relaxed-semver"
	"golang.org/x/exp/slices"
)

// MinimumToolVersion is the oldest flashrom release known to accept the
// flag grammar used by BuildArguments.
var MinimumToolVersion = semver.ParseRelaxed("1.0")

// Runner executes flashrom requests. It holds no state besides the set of
// in-flight tasks, so a single Runner can be shared. The Runner does not
// serialize requests: callers must avoid running concurrent operations
// against the same programmer.
type Runner struct {
	resolver Resolver
	launcher Launcher

	// Output, when set, receives the progress messages of the synchronous
	// helpers (DetectChip, ListChips).
	Output func(msg string)

	mu     sync.Mutex
	active map[string]*Task
}

// Task is an in-flight execution. Its result is available once Done is
// closed.
type Task struct {
	ID      string
	Request ExecutionRequest

	done   chan struct{}
	result ExecutionResult
}

// Done is closed after the completion callback has returned.
func (t *Task) Done() <-chan struct{} {
	return t.done
}

// Wait blocks until the task completes and returns its result.
func (t *Task) Wait() ExecutionResult {
	<-t.done
	return t.result
}

// NewRunner creates a Runner. A nil resolver searches the platform default
// locations, a nil launcher spawns real processes.
func NewRunner(resolver Resolver, launcher Launcher) *Runner {
	if resolver == nil {
		resolver = DefaultLocator()
	}
	if launcher == nil {
		launcher = NewProcessLauncher()
	}
	return &Runner{
		resolver: resolver,
		launcher: launcher,
		active:   map[string]*Task{},
	}
}

// Execute validates req and runs it in the background. An invalid request
// is reported through the returned error and nothing is spawned. Every
// other outcome, including a missing executable, is delivered to
// onComplete exactly once. The context is the cancellation token: a
// cancelled run completes with an unsuccessful result.
func (r *Runner) Execute(ctx context.Context, req ExecutionRequest, onComplete func(ExecutionResult)) (*Task, error) {
	args, err := BuildArguments(req)
	if err != nil {
		return nil, err
	}
	req.ExtraArgs = slices.Clone(req.ExtraArgs)
	task := &Task{
		ID:      uuid.NewString(),
		Request: req,
		done:    make(chan struct{}),
	}
	r.track(task)

	go func() {
		defer close(task.done)
		task.result = r.run(ctx, task, args)
		r.untrack(task)
		if onComplete != nil {
			r.notify(task, onComplete)
		}
	}()
	return task, nil
}

// Run executes req and waits for its completion.
func (r *Runner) Run(ctx context.Context, req ExecutionRequest) (ExecutionResult, error) {
	task, err := r.Execute(ctx, req, nil)
	if err != nil {
		return ExecutionResult{}, err
	}
	return task.Wait(), nil
}

// InFlight returns the number of tasks that have not completed yet.
func (r *Runner) InFlight() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.active)
}

// DetectChip runs a Detect with the given programmer and extracts the chip
// name from its output. Failures are reported through Output and result in
// no chip being returned.
func (r *Runner) DetectChip(ctx context.Context, programmer string) (string, bool) {
	res, err := r.Run(ctx, ExecutionRequest{Operation: Detect, Programmer: programmer})
	if err != nil {
		r.output("Detection failed: %s", err)
		return "", false
	}
	r.output("Detecting chip with programmer '%s'...\n%s", programmer, res.Message())
	if res.ExitCode == nil {
		return "", false
	}
	chip, found := ExtractChipName(res.Stdout)
	if found {
		r.output("Detected chip: %s", chip)
	} else {
		r.output("No chip detected.")
	}
	return chip, found
}

// ListChips runs `flashrom -L` and returns the supported chips. The list is
// empty when the run fails.
func (r *Runner) ListChips(ctx context.Context) ([]string, ExecutionResult) {
	res, err := r.Run(ctx, ExecutionRequest{Operation: Probe, ExtraArgs: []string{"-L"}})
	if err != nil {
		// unreachable: a Probe request is always valid
		return []string{}, ExecutionResult{Stderr: err.Error()}
	}
	if !res.Succeeded {
		r.output("Failed to load chip list:\n%s", res.Message())
		return []string{}, res
	}
	chips := ParseChipList(res.Stdout)
	if len(chips) == 0 {
		r.output("Flashrom returned no chip list output.")
	}
	return chips, res
}

// QueryVersion returns the version reported by `flashrom --version`.
func (r *Runner) QueryVersion(ctx context.Context) (*semver.RelaxedVersion, error) {
	res, err := r.Run(ctx, ExecutionRequest{Operation: Probe, ExtraArgs: []string{"--version"}})
	if err != nil {
		return nil, err
	}
	if !res.Succeeded {
		return nil, res.Err()
	}
	return ParseToolVersion(res.Stdout)
}

// ResolveTool returns the flashrom executable the Runner would use.
func (r *Runner) ResolveTool() (string, error) {
	exe, err := r.resolver.Resolve()
	if err != nil {
		return "", err
	}
	return exe.String(), nil
}

func (r *Runner) run(ctx context.Context, task *Task, args []string) (res ExecutionResult) {
	log := logrus.WithField("task", task.ID).WithField("operation", task.Request.Operation.String())
	defer func() {
		if p := recover(); p != nil {
			log.Errorf("panic while running flashrom: %v", p)
			res = launchFailed(task.Request, &LaunchError{Err: fmt.Errorf("panic: %v", p)})
		}
	}()

	exe, err := r.resolver.Resolve()
	if err != nil {
		log.WithError(err).Error("Cannot locate flashrom")
		return launchFailed(task.Request, err)
	}
	log.Infof("Running: %s %s", exe, strings.Join(args, " "))

	out, err := r.launcher.Launch(ctx, exe, args)
	if err != nil {
		log.WithError(err).Error("Cannot start flashrom")
		return launchFailed(task.Request, err)
	}
	if ctxErr := ctx.Err(); ctxErr != nil && out.ExitCode != 0 {
		out.Stderr = append(out.Stderr, []byte("\noperation canceled: "+ctxErr.Error())...)
	}
	log.WithField("exit_code", out.ExitCode).Info("flashrom exited")
	return completed(task.Request, out)
}

func (r *Runner) notify(task *Task, onComplete func(ExecutionResult)) {
	defer func() {
		if p := recover(); p != nil {
			logrus.WithField("task", task.ID).Errorf("panic in completion callback: %v", p)
		}
	}()
	onComplete(task.result)
}

func (r *Runner) track(task *Task) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.active == nil {
		r.active = map[string]*Task{}
	}
	r.active[task.ID] = task
}

func (r *Runner) untrack(task *Task) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.active, task.ID)
}

func (r *Runner) output(format string, args ...interface{}) {
	if r.Output == nil {
		return
	}
	r.Output(fmt.Sprintf(format, args...))
}

// IsSupportedVersion tells if v is recent enough.
func IsSupportedVersion(v *semver.RelaxedVersion) bool {
	return v != nil && v.CompareTo(MinimumToolVersion) >= 0
}
