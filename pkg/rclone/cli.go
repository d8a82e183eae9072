package rclone

import (
	"bytes"
	"context"
	"errors"
	"os/exec"

	"github.com/browsey/browsey/pkg/logging"
	"github.com/browsey/browsey/pkg/process"
)

// cli wraps the resolved rclone binary path and knows how to run one
// subcommand to completion, classifying the result into the broker's error
// taxonomy. It has no knowledge of cloud paths or entries; that belongs to
// read.go/write.go/remotes.go.
type cli struct {
	binary string
	logger *logging.Logger
}

// runCaptureText executes rclone with args, streaming stderr through the
// logger's line writer for visibility, and returns the buffered stdout.
func (c *cli) runCaptureText(ctx context.Context, args ...string) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	cmd := exec.CommandContext(ctx, c.binary, args...)
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = c.logger.LineWriter()

	supervisor := process.NewSupervisor()
	err := supervisor.Run(ctx, cmd)
	if err != nil {
		return stdout.String(), classifyRunError(ctx, err, cmd)
	}
	return stdout.String(), nil
}

// classifyRunError maps a Supervisor.Run error into the broker's typed
// error taxonomy: context cancellation/deadline takes priority since the
// process error alone can't distinguish "killed because cancelled" from
// "killed because shutting down" — the caller threads that distinction
// through ctx.
func classifyRunError(ctx context.Context, err error, cmd *exec.Cmd) error {
	if errors.Is(ctx.Err(), context.Canceled) {
		return newError(ErrorCodeCancelled, "rclone invocation cancelled")
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return newError(ErrorCodeTimeout, "rclone invocation timed out")
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		apiErr := newError(ErrorCodeNonZero, "rclone %s exited with status %d", cmd.Args[0], exitErr.ExitCode())
		apiErr.ExitCode = exitErr.ExitCode()
		return apiErr
	}

	return newError(ErrorCodeIO, "unable to run rclone: %s", err.Error())
}

// toError normalizes any error returned by runCaptureText into *Error,
// since ensureRuntimeReady needs a concrete *Error to cache.
func toError(err error) *Error {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return newError(ErrorCodeIO, "%s", err.Error())
}

// runWithProgress runs rclone with args, parsing --use-json-log progress
// lines from stderr and invoking onProgress as they arrive.
func (c *cli) runWithProgress(ctx context.Context, onProgress ProgressFunc, args ...string) error {
	cmd := exec.CommandContext(ctx, c.binary, args...)
	cmd.Stdout = c.logger.LineWriter()
	cmd.Stderr = &progressWriter{onProgress: onProgress, fallback: c.logger.LineWriter()}

	supervisor := process.NewSupervisor()
	if err := supervisor.Run(ctx, cmd); err != nil {
		return classifyRunError(ctx, err, cmd)
	}
	return nil
}
