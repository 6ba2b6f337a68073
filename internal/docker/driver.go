package docker

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/briandowns/spinner"
	"github.com/charmbracelet/log"

	"github.com/scontain/sconectl/internal/model"
)

// State is a step of the execution driver's state machine:
//
//	Idle -> Pulling -> Running -> Succeeded | Failed
//
// Pulling is skipped when pulling is disabled, and Pulling always moves on
// to Running regardless of the pull outcome.
type State string

const (
	StateIdle      State = "idle"
	StatePulling   State = "pulling"
	StateRunning   State = "running"
	StateSucceeded State = "succeeded"
	StateFailed    State = "failed"
)

// Invocation is what the driver needs from an assembled command.
type Invocation interface {
	// PullCommand is the shell command that pulls the image.
	PullCommand() (string, error)
	// RunCommand is the shell command that runs the image.
	RunCommand() (string, error)
	// Command is the first pass-through token, used in diagnostics.
	Command() string
}

// DriverOption configures a Driver.
type DriverOption func(*Driver)

// WithShell overrides the shell binary (default "sh").
func WithShell(shell string) DriverOption {
	return func(d *Driver) { d.shell = shell }
}

// WithStdio overrides the streams inherited by the run step.
func WithStdio(stdin io.Reader, stdout, stderr io.Writer) DriverOption {
	return func(d *Driver) {
		d.stdin, d.stdout, d.stderr = stdin, stdout, stderr
	}
}

// WithProgress draws a spinner on w while pulling. A nil writer disables it.
func WithProgress(w io.Writer) DriverOption {
	return func(d *Driver) { d.progress = w }
}

// WithSkipPull disables the pull step.
func WithSkipPull(skip bool) DriverOption {
	return func(d *Driver) { d.skipPull = skip }
}

// Driver runs one invocation: an optional pull followed by the run. It
// performs one child process at a time and blocks on each.
type Driver struct {
	shell    string
	stdin    io.Reader
	stdout   io.Writer
	stderr   io.Writer
	progress io.Writer
	skipPull bool
	logger   *log.Logger

	state      State
	history    []State
	pullResult *model.ExecutionResult
	spinner    *spinner.Spinner
}

// NewDriver creates a Driver that inherits the launcher's standard streams.
func NewDriver(logger *log.Logger, opts ...DriverOption) *Driver {
	d := &Driver{
		shell:  "sh",
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
		logger: logger,
		state:  StateIdle,
	}
	for _, opt := range opts {
		opt(d)
	}
	d.history = []State{StateIdle}
	return d
}

// State returns the current state.
func (d *Driver) State() State {
	return d.state
}

// History returns every state visited so far, starting with Idle.
func (d *Driver) History() []State {
	return append([]State(nil), d.history...)
}

// PullResult returns the captured result of the pull step, or nil when the
// pull was skipped or has not happened yet.
func (d *Driver) PullResult() *model.ExecutionResult {
	return d.pullResult
}

func (d *Driver) transition(s State) {
	d.state = s
	d.history = append(d.history, s)
	d.logger.Debug("driver state", "state", s)
}

// Execute pulls (unless disabled) and then runs inv. A failed pull is only
// a warning, since a cached local image may still satisfy the run. A
// non-zero or abnormal run status is returned as an ExitExecutionFailed
// CLIError naming the failing command.
func (d *Driver) Execute(ctx context.Context, inv Invocation) (model.ExecutionResult, error) {
	if d.state != StateIdle {
		return model.ExecutionResult{}, fmt.Errorf("driver already used (state %s)", d.state)
	}

	if !d.skipPull {
		d.transition(StatePulling)
		if err := d.pull(ctx, inv); err != nil {
			d.transition(StateFailed)
			return model.ExecutionResult{ExitCode: -1}, err
		}
	}

	d.transition(StateRunning)
	runCmd, err := inv.RunCommand()
	if err != nil {
		d.transition(StateFailed)
		return model.ExecutionResult{ExitCode: -1}, model.UsageError("failed to assemble command", err)
	}
	d.logger.Debug("running", "command", runCmd)

	res, runErr := d.runShell(ctx, runCmd, d.stdin, d.stdout, d.stderr)
	if runErr == nil && res.Succeeded() {
		d.transition(StateSucceeded)
		return res, nil
	}

	d.transition(StateFailed)
	var cause error
	if runErr != nil {
		cause = fmt.Errorf("%w: %v", model.ErrExecutionFailed, runErr)
	} else {
		cause = fmt.Errorf("%w: exit status %d", model.ErrExecutionFailed, res.ExitCode)
	}
	return res, model.WrapCLIError(model.ExitExecutionFailed,
		fmt.Sprintf("failed to execute command %q (%s)", inv.Command(), runCmd), cause)
}

// pull runs the pull command with captured output. Only an unassemblable
// command is an error; a failing pull is logged and swallowed.
func (d *Driver) pull(ctx context.Context, inv Invocation) error {
	pullCmd, err := inv.PullCommand()
	if err != nil {
		return model.UsageError("failed to assemble pull command", err)
	}
	d.logger.Debug("pulling", "command", pullCmd)

	if d.progress != nil {
		d.spinner = newPullSpinner(d.progress, "pulling image")
		d.spinner.Start()
	}

	var stdout, stderr bytes.Buffer
	res, runErr := d.runShell(ctx, pullCmd, nil, &stdout, &stderr)
	res.Stdout, res.Stderr = stdout.String(), stderr.String()
	d.pullResult = &res

	// The spinner must be gone before Running writes to the terminal.
	if d.spinner != nil {
		d.spinner.Stop()
	}

	if runErr != nil || !res.Succeeded() {
		d.logger.Warn("failed to pull image, trying to continue with a cached image",
			"command", pullCmd, "exit", res.ExitCode, "stderr", lastLine(res.Stderr))
		return nil
	}
	d.logger.Debug("pull finished", "output", lastLine(res.Stdout))
	return nil
}

// runShell runs command through "<shell> -c". The returned error is set only
// when the process could not be started or waited for; a non-zero exit is
// reported through ExitCode alone.
func (d *Driver) runShell(ctx context.Context, command string, stdin io.Reader, stdout, stderr io.Writer) (model.ExecutionResult, error) {
	cmd := exec.CommandContext(ctx, d.shell, "-c", command)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	err := cmd.Run()
	if err == nil {
		return model.ExecutionResult{ExitCode: 0}, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		// ExitCode is -1 when the process was terminated by a signal.
		return model.ExecutionResult{ExitCode: exitErr.ExitCode()}, nil
	}
	return model.ExecutionResult{ExitCode: -1}, err
}

// lastLine returns the last non-empty line of s, which for docker output is
// the summary (e.g. "Status: Image is up to date" or the error).
func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	return strings.TrimSpace(lines[len(lines)-1])
}
