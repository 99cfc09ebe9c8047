package ffmpeg

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	"yt-segment-extractor/domain/video"
)

// CommandRunner defines the interface for running external commands
// This allows mocking exec.Command in tests
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) error
	Output(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ExecCommandRunner is the production implementation using os/exec
type ExecCommandRunner struct{}

// Run executes a command and returns any error
func (r *ExecCommandRunner) Run(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// Output executes a command and returns its output
func (r *ExecCommandRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	return cmd.Output()
}

// Clipper implements video.Clipper using ffmpeg
type Clipper struct {
	ffmpegPath string
	runner     CommandRunner
}

// ClipperOption is a functional option for configuring Clipper
type ClipperOption func(*Clipper)

// WithFFmpegPath sets a custom ffmpeg executable path
func WithFFmpegPath(path string) ClipperOption {
	return func(c *Clipper) {
		c.ffmpegPath = path
	}
}

// WithCommandRunner sets a custom command runner (for testing)
func WithCommandRunner(runner CommandRunner) ClipperOption {
	return func(c *Clipper) {
		c.runner = runner
	}
}

// NewClipper creates a new FFmpeg-based clipper
func NewClipper(opts ...ClipperOption) *Clipper {
	c := &Clipper{
		ffmpegPath: "ffmpeg",
		runner:     &ExecCommandRunner{},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Clip implements video.Clipper using stream copy, so cutting a segment
// does not re-encode it
func (c *Clipper) Clip(ctx context.Context, req *video.ClipRequest, outputPath string) error {
	args := []string{
		"-i", req.SourcePath,
		"-ss", req.Start.String(),
		"-to", req.End.String(),
		"-c", "copy",
		"-y", // Overwrite output file if it exists
		outputPath,
	}

	if err := c.runner.Run(ctx, c.ffmpegPath, args...); err != nil {
		return fmt.Errorf("ffmpeg clip failed: %w", err)
	}

	return nil
}

// VerifyInstalled checks that ffmpeg is available
func (c *Clipper) VerifyInstalled(ctx context.Context) error {
	_, err := c.runner.Output(ctx, c.ffmpegPath, "-version")
	if err != nil {
		return fmt.Errorf("ffmpeg not found or not executable: %w", err)
	}
	return nil
}

// Ensure Clipper implements video.Clipper
var _ video.Clipper = (*Clipper)(nil)
