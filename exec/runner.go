// Package exec runs external extraction tools as subprocesses: trafilatura
// for article text and yt-dlp for video metadata.
package exec

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
	"time"

	"github.com/fwojciec/clipper"
)

// DefaultTimeout bounds a single subprocess invocation.
const DefaultTimeout = 30 * time.Second

// waitDelay bounds how long Wait drains pipes after the process is killed.
const waitDelay = 2 * time.Second

// maxStderr is the number of stderr bytes kept in error messages.
const maxStderr = 512

// Runner invokes a binary with a hard timeout. A Runner holds no per-call
// state and is safe for concurrent use.
type Runner struct {
	// Binary is the executable name or path.
	Binary string

	// Timeout bounds each invocation. Zero means DefaultTimeout.
	Timeout time.Duration
}

// Run executes the binary with args and returns its stdout.
// A non-zero exit, a missing binary, or a timeout is returned as
// ESUBPROCESS with the captured stderr. The process and everything it
// started are killed when the timeout expires or ctx is cancelled.
func (r *Runner) Run(ctx context.Context, args ...string) ([]byte, error) {
	timeout := r.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, r.Binary, args...)
	cmd.WaitDelay = waitDelay
	killGroup(cmd)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err == nil {
		return stdout.Bytes(), nil
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		if errors.Is(ctxErr, context.DeadlineExceeded) {
			return nil, clipper.WrapError(clipper.ESUBPROCESS, ctxErr, "%s timed out after %s", r.Binary, timeout)
		}
		return nil, clipper.WrapError(clipper.ESUBPROCESS, ctxErr, "%s cancelled", r.Binary)
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return nil, clipper.WrapError(clipper.ESUBPROCESS, err, "%s exited with code %d: %s",
			r.Binary, exitErr.ExitCode(), tail(stderr.String(), maxStderr))
	}
	return nil, clipper.WrapError(clipper.ESUBPROCESS, err, "running %s", r.Binary)
}

func tail(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}
