package docfx

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	"go.uber.org/zap"
)

// ErrMissingDocfx signals the compiler is not installed. The check runs
// before any filesystem mutation.
var ErrMissingDocfx = errors.New("docfx executable not found in PATH")

// Runner wraps the docfx executable.
type Runner struct {
	Verbose bool
	Stdout  io.Writer
	Stderr  io.Writer
	Log     *zap.Logger
}

// NewRunner creates a runner with default output writers.
func NewRunner(verbose bool, log *zap.Logger) *Runner {
	return &Runner{
		Verbose: verbose,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Log:     log,
	}
}

// CheckInstalled verifies the compiler is on PATH.
func CheckInstalled() error {
	if _, err := exec.LookPath("docfx"); err != nil {
		return ErrMissingDocfx
	}
	return nil
}

// Build runs the compiler against a configuration file. The compiler's
// output streams through; a nonzero exit aborts the run.
func (r *Runner) Build(ctx context.Context, configPath string) error {
	args := []string{configPath}
	if r.Verbose {
		args = append(args, "--logLevel", "verbose")
	}

	r.Log.Debug("exec", zap.String("cmd", "docfx"), zap.Strings("args", args))

	cmd := exec.CommandContext(ctx, "docfx", args...)
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("docfx build failed: %w", err)
	}
	return nil
}
