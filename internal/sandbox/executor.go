package sandbox

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// maxStreamBytes caps each captured stream so a chatty command cannot
// balloon memory. The overflow is discarded, not an error.
const maxStreamBytes = 1 << 20 // 1 MiB

// reapDelay bounds the wait for a killed process group to be reaped.
const reapDelay = 5 * time.Second

// Executor supervises sandboxed shell commands. It carries only immutable
// configuration, so a single Executor may serve concurrent invocations; each
// call builds its own policy and spawns its own process tree.
type Executor struct {
	opts   Options
	logger *log.Logger
}

// NewExecutor creates an executor with the given options.
func NewExecutor(opts Options, logger *log.Logger) *Executor {
	if logger == nil {
		logger = log.Default()
	}
	return &Executor{opts: opts.withDefaults(), logger: logger}
}

// Run executes a command in the sandbox and returns the normalized output
// text. It never returns an error: timeouts, a missing bwrap binary, and
// launch failures are all reported in-band in the returned string.
func (e *Executor) Run(ctx context.Context, command string) string {
	return e.Execute(ctx, BuildPolicy(CaptureAmbient(), e.opts), command).Format()
}

// Execute runs one command under the given policy and classifies the result.
// It blocks until the child exits or the policy timeout elapses; on timeout
// the entire process group is killed and reaped before returning.
func (e *Executor) Execute(ctx context.Context, policy Policy, command string) Outcome {
	id := uuid.NewString()

	bwrapPath, err := FindBwrap(e.opts.BwrapPath)
	if err != nil {
		e.logger.Warn("bwrap unavailable", "invocation", id, "err", err)
		return Outcome{State: ToolMissing, Timeout: policy.Timeout}
	}

	ctx, cancel := context.WithTimeout(ctx, policy.Timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, bwrapPath, policy.Args(command)...)

	// Own process group, so the kill below takes out everything the shell
	// spawned, not just bwrap.
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		if cmd.Process == nil {
			return nil
		}
		return syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	}
	cmd.WaitDelay = reapDelay

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &limitedWriter{w: &stdout, remaining: maxStreamBytes}
	cmd.Stderr = &limitedWriter{w: &stderr, remaining: maxStreamBytes}

	e.logger.Debug("sandbox executing",
		"invocation", id,
		"workdir", policy.WorkDir,
		"timeout", policy.Timeout,
		"cap_drop", policy.DropCapabilities,
	)

	start := time.Now()
	runErr := cmd.Run()
	elapsed := time.Since(start)

	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		e.logger.Warn("sandbox command timed out", "invocation", id, "elapsed", elapsed)
		return Outcome{State: TimedOut, Timeout: policy.Timeout}

	case ctx.Err() != nil:
		return Outcome{State: LaunchFailed, Err: ctx.Err().Error(), Timeout: policy.Timeout}

	case runErr == nil:
		return Outcome{
			State:   Completed,
			Stdout:  stdout.String(),
			Stderr:  stderr.String(),
			Timeout: policy.Timeout,
		}
	}

	var exitErr *exec.ExitError
	if errors.As(runErr, &exitErr) {
		// bwrap relays the sandboxed command's exit code.
		return Outcome{
			State:    Completed,
			ExitCode: exitErr.ExitCode(),
			Stdout:   stdout.String(),
			Stderr:   stderr.String(),
			Timeout:  policy.Timeout,
		}
	}

	if errors.Is(runErr, exec.ErrNotFound) || errors.Is(runErr, os.ErrNotExist) {
		// The binary vanished between lookup and spawn.
		e.logger.Warn("bwrap unavailable", "invocation", id, "err", runErr)
		return Outcome{State: ToolMissing, Timeout: policy.Timeout}
	}

	e.logger.Error("sandbox launch failed", "invocation", id, "err", runErr)
	return Outcome{State: LaunchFailed, Err: runErr.Error(), Timeout: policy.Timeout}
}

// limitedWriter writes up to remaining bytes and silently discards the rest,
// reporting full success to keep the pipe draining.
type limitedWriter struct {
	w         io.Writer
	remaining int
}

func (l *limitedWriter) Write(p []byte) (int, error) {
	n := len(p)
	if l.remaining <= 0 {
		return n, nil
	}
	if n > l.remaining {
		p = p[:l.remaining]
	}
	if _, err := l.w.Write(p); err != nil {
		return 0, err
	}
	l.remaining -= len(p)
	return n, nil
}
