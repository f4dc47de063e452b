package ffmpeg

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
)

// Result holds the outcome of a single encoder invocation. Stderr is always
// captured so a failure can surface the tool's own diagnostics; ExitCode is
// -1 when the process could not be started at all.
type Result struct {
	Args     []string
	Stderr   string
	ExitCode int
	Err      error
}

// Failed reports whether the invocation did not complete successfully.
func (r Result) Failed() bool { return r.Err != nil }

// run executes the binary with args. When verbose is enabled, stderr is
// tee'd to os.Stderr in real time; otherwise it is captured silently and
// only surfaced on failure by the caller.
func (e *Encoder) run(ctx context.Context, args []string) Result {
	cmd := exec.CommandContext(ctx, e.Bin, args...)

	var stderrBuf bytes.Buffer
	if e.Verbose {
		cmd.Stderr = io.MultiWriter(&stderrBuf, os.Stderr)
	} else {
		cmd.Stderr = &stderrBuf
	}

	err := cmd.Run()

	exitCode := 0
	if err != nil {
		exitCode = -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
	}

	return Result{
		Args:     args,
		Stderr:   stderrBuf.String(),
		ExitCode: exitCode,
		Err:      err,
	}
}
