package launch

import "context"

// Runner defines the interface for spawning the web-UI process
// This is a port that can be implemented by different infrastructure adapters
type Runner interface {
	// Run spawns the named command, streams its output to the invoking
	// terminal and blocks until the process exits
	Run(ctx context.Context, name string, args ...string) error
}
