package launcher

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"yt-segment-extractor/domain/launch"
)

// Service sequences the web-UI launch flow: announce the banner, spawn the
// runner and block on it, then hold the terminal open until the user
// acknowledges. The flow is strictly linear with no retry or recovery; a
// child failure is visible only through the inherited console output.
type Service struct {
	runner launch.Runner
	output io.Writer
	input  io.Reader
}

// NewService creates a new launcher service
func NewService(runner launch.Runner, output io.Writer, input io.Reader) *Service {
	return &Service{
		runner: runner,
		output: output,
		input:  input,
	}
}

// Announce writes the banner, the expected URL and shutdown instructions.
// It completes before the child process is spawned.
func (s *Service) Announce(cfg launch.Config) {
	fmt.Fprintln(s.output, "==============================================")
	fmt.Fprintln(s.output, "        YouTube Segment Extractor")
	fmt.Fprintln(s.output, "==============================================")
	fmt.Fprintln(s.output)
	fmt.Fprintln(s.output, "Starting the web UI...")
	fmt.Fprintf(s.output, "Once running, it will be available at %s\n", cfg.URL())
	fmt.Fprintln(s.output)
	fmt.Fprintln(s.output, "Press Ctrl+C in this window to stop the server.")
	fmt.Fprintln(s.output)
}

// Launch spawns the runner process and blocks until it exits
func (s *Service) Launch(ctx context.Context, cfg launch.Config) error {
	return s.runner.Run(ctx, cfg.Runner, cfg.Args()...)
}

// AwaitExit prompts and blocks for a single acknowledgment so the terminal
// window does not close before the child's final output can be read
func (s *Service) AwaitExit() {
	fmt.Fprintln(s.output)
	fmt.Fprint(s.output, "Press Enter to close...")
	bufio.NewReader(s.input).ReadString('\n')
}

// Run executes the full announce -> launch -> await sequence. A failing
// child does not abort the sequence: its error is echoed and the
// acknowledgment prompt is still reached.
func (s *Service) Run(ctx context.Context, cfg launch.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	s.Announce(cfg)

	if err := s.Launch(ctx, cfg); err != nil {
		fmt.Fprintf(s.output, "\nThe web UI exited with an error: %v\n", err)
	}

	s.AwaitExit()
	return nil
}
