package launch

import (
	"fmt"
	"strconv"
)

// Defaults for the web-UI runner invocation
const (
	DefaultRunner = "streamlit"
	DefaultModule = "ui_app.py"
	DefaultPort   = 8501
)

// Config is the immutable launch configuration for the web-UI process.
// It is constructed once at startup from defaults, the config file and
// flags, and consumed when the child process is spawned.
type Config struct {
	Runner   string
	Module   string
	Port     int
	Headless bool
}

// DefaultConfig returns the stock launch configuration: UI served on
// port 8501 with headless mode disabled so the runner opens a browser.
func DefaultConfig() Config {
	return Config{
		Runner:   DefaultRunner,
		Module:   DefaultModule,
		Port:     DefaultPort,
		Headless: false,
	}
}

// Validate checks that the launch configuration can be executed
func (c Config) Validate() error {
	if c.Runner == "" {
		return fmt.Errorf("runner command is required")
	}
	if c.Module == "" {
		return fmt.Errorf("UI module is required")
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port %d is outside the valid TCP range 1-65535", c.Port)
	}
	return nil
}

// Args returns the runner invocation arguments
func (c Config) Args() []string {
	return []string{
		"run", c.Module,
		"--server.port", strconv.Itoa(c.Port),
		"--server.headless", strconv.FormatBool(c.Headless),
	}
}

// URL returns the address the UI is expected to serve on once ready
func (c Config) URL() string {
	return fmt.Sprintf("http://localhost:%d", c.Port)
}
