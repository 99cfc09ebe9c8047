package cmd

import (
	"context"
	"io"
	"os"
	"os/signal"

	"yt-segment-extractor/application/launcher"
	"yt-segment-extractor/domain/launch"
	"yt-segment-extractor/infrastructure/process"

	"github.com/spf13/cobra"
)

var (
	launchRunner   string
	launchModule   string
	launchPort     int
	launchHeadless bool
)

var launchCmd = &cobra.Command{
	Use:   "launch",
	Short: "Start the web UI",
	Long: `Start the web UI on a local port and keep this terminal open.

The UI runner's console output is streamed here. By default headless mode
is disabled, so the runner opens a browser once the UI is ready; the
expected address is printed as a hint either way.

After the UI stops (Ctrl+C, or a startup failure such as the port already
being in use), the terminal stays open until you press Enter so any final
output can be read.

Example:
  yt-segment-extractor launch
  yt-segment-extractor launch --port 8502`,
	RunE: runLaunch,
}

func init() {
	rootCmd.AddCommand(launchCmd)
	launchCmd.Flags().StringVar(&launchRunner, "runner", launch.DefaultRunner, "UI runner command")
	launchCmd.Flags().StringVar(&launchModule, "module", launch.DefaultModule, "UI module to run")
	launchCmd.Flags().IntVar(&launchPort, "port", launch.DefaultPort, "TCP port to serve the UI on")
	launchCmd.Flags().BoolVar(&launchHeadless, "headless", false, "do not open a browser automatically")
}

func runLaunch(cmd *cobra.Command, args []string) error {
	lc := GetConfig().LaunchConfig()

	// Flags win over the config file
	if cmd.Flags().Changed("runner") {
		lc.Runner = launchRunner
	}
	if cmd.Flags().Changed("module") {
		lc.Module = launchModule
	}
	if cmd.Flags().Changed("port") {
		lc.Port = launchPort
	}
	if cmd.Flags().Changed("headless") {
		lc.Headless = launchHeadless
	}

	// Ctrl+C is meant for the child, which shares this process group.
	// Swallowing it here keeps the parent alive through the child's
	// shutdown so the acknowledgment prompt is always reached.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)
	defer signal.Stop(sigCh)
	go func() {
		for range sigCh {
		}
	}()

	return RunLaunchWithDependencies(cmd.Context(), process.NewRunner(), lc, os.Stdout, os.Stdin)
}

// RunLaunchWithDependencies runs the launch command with injected dependencies (for testing)
func RunLaunchWithDependencies(
	ctx context.Context,
	runner launch.Runner,
	cfg launch.Config,
	output io.Writer,
	input io.Reader,
) error {
	service := launcher.NewService(runner, output, input)
	return service.Run(ctx, cfg)
}
