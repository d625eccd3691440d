// Package process runs short-lived external programs under a wall-clock budget,
// buffering their standard output and standard error in full.
package process

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"
)

// CommandFunc builds the command for a run. It matches exec.CommandContext.
type CommandFunc func(ctx context.Context, name string, args ...string) *exec.Cmd

// Request describes a single program invocation.
// A nil Stdin leaves the child's standard input attached to the null device.
type Request struct {
	Name    string
	Args    []string
	Stdin   []byte
	Timeout time.Duration
}

// Result carries the captured output of a completed or failed run.
type Result struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
	Duration time.Duration
}

// Runner executes requests. The zero value is not usable; call New.
type Runner struct {
	command   CommandFunc
	waitDelay time.Duration
}

// Option configures a Runner.
type Option func(*Runner)

// WithCommandFunc overrides how commands are constructed.
func WithCommandFunc(fn CommandFunc) Option {
	return func(r *Runner) {
		if fn != nil {
			r.command = fn
		}
	}
}

// WithWaitDelay bounds how long Run waits for output pipes to drain
// after the child has been killed.
func WithWaitDelay(d time.Duration) Option {
	return func(r *Runner) {
		if d > 0 {
			r.waitDelay = d
		}
	}
}

// New creates a Runner backed by exec.CommandContext.
func New(opts ...Option) *Runner {
	r := &Runner{
		command:   exec.CommandContext,
		waitDelay: 2 * time.Second,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run starts the program, optionally feeds Stdin, and waits for it to exit.
// The child is killed when ctx is done or the request timeout elapses.
// On ErrExit, ErrTimeout and ErrCanceled the partial Result is returned
// alongside the error so callers can log captured diagnostics.
func (r *Runner) Run(ctx context.Context, req Request) (*Result, error) {
	if req.Name == "" {
		return nil, ErrNoCommand
	}

	runCtx := ctx
	if req.Timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, req.Timeout)
		defer cancel()
	}

	var stdout, stderr bytes.Buffer

	cmd := r.command(runCtx, req.Name, req.Args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = r.waitDelay
	if req.Stdin != nil {
		cmd.Stdin = bytes.NewReader(req.Stdin)
	}

	start := time.Now()
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrStart, req.Name, err)
	}

	waitErr := cmd.Wait()

	result := &Result{
		Stdout:   stdout.Bytes(),
		Stderr:   stderr.Bytes(),
		ExitCode: -1,
		Duration: time.Since(start),
	}
	if cmd.ProcessState != nil {
		result.ExitCode = cmd.ProcessState.ExitCode()
	}

	switch {
	case ctx.Err() != nil:
		return result, fmt.Errorf("%w: %s: %w", ErrCanceled, req.Name, ctx.Err())
	case errors.Is(runCtx.Err(), context.DeadlineExceeded):
		return result, fmt.Errorf("%w: %s after %s", ErrTimeout, req.Name, req.Timeout)
	case waitErr != nil:
		return result, fmt.Errorf("%w: %s: exit code %d: %w", ErrExit, req.Name, result.ExitCode, waitErr)
	}

	return result, nil
}
