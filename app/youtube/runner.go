package youtube

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
)

// Runner shells out to the yt-dlp binary. execFn is swappable in tests.
type Runner struct {
	path   string
	execFn func(ctx context.Context, name string, args ...string) (stdout []byte, stderr []byte, err error)
}

func NewRunner(path string) *Runner {
	if strings.TrimSpace(path) == "" {
		path = "yt-dlp"
	}
	return &Runner{path: path}
}

type ExecError struct {
	Cmd      string
	Args     []string
	ExitCode int
	Stderr   string
	Cause    error
}

func (e *ExecError) Error() string {
	cmdline := strings.TrimSpace(e.Cmd + " " + strings.Join(e.Args, " "))
	if e.ExitCode != 0 {
		return fmt.Sprintf("ytdlp: command failed (exit %d): %s", e.ExitCode, cmdline)
	}
	return fmt.Sprintf("ytdlp: command failed: %s", cmdline)
}

func (e *ExecError) Unwrap() error { return e.Cause }

func (r *Runner) run(ctx context.Context, args ...string) (stdout []byte, stderr []byte, err error) {
	if r.execFn != nil {
		return r.execFn(ctx, r.path, args...)
	}

	slog.Debug("Executing yt-dlp", "cmd", r.path, "args", args)

	cmd := exec.CommandContext(ctx, r.path, args...)
	var outBuf, errBuf bytes.Buffer
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf

	err = cmd.Run()
	return outBuf.Bytes(), errBuf.Bytes(), err
}

func wrapExecError(cmd string, args []string, stderr []byte, cause error) error {
	exitCode := 0
	var ee *exec.ExitError
	if errors.As(cause, &ee) {
		exitCode = ee.ExitCode()
	}

	return &ExecError{
		Cmd:      cmd,
		Args:     args,
		ExitCode: exitCode,
		Stderr:   strings.TrimSpace(string(stderr)),
		Cause:    cause,
	}
}
