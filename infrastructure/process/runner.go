package process

import (
	"context"
	"os"
	"os/exec"

	"yt-segment-extractor/domain/launch"
)

// Runner implements launch.Runner using os/exec. The child shares the
// parent's terminal: stdin, stdout and stderr are all inherited, so the
// runner's own output and any startup failure are visible as-is.
type Runner struct{}

// NewRunner creates a new process runner
func NewRunner() *Runner {
	return &Runner{}
}

// Run spawns the command and blocks until it exits
func (r *Runner) Run(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// Ensure Runner implements launch.Runner
var _ launch.Runner = (*Runner)(nil)
