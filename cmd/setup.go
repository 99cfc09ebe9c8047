package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"yt-segment-extractor/infrastructure/config"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"
)

// Prompter interface for interactive prompts (allows mocking in tests)
type Prompter interface {
	Input(message string, defaultValue string) (string, error)
	Confirm(message string, defaultValue bool) (bool, error)
}

// SurveyPrompter implements Prompter using the survey library
type SurveyPrompter struct{}

func (p *SurveyPrompter) Input(message string, defaultValue string) (string, error) {
	result := ""
	prompt := &survey.Input{
		Message: message,
		Default: defaultValue,
	}
	if err := survey.AskOne(prompt, &result); err != nil {
		return "", err
	}
	return result, nil
}

func (p *SurveyPrompter) Confirm(message string, defaultValue bool) (bool, error) {
	result := defaultValue
	prompt := &survey.Confirm{
		Message: message,
		Default: defaultValue,
	}
	if err := survey.AskOne(prompt, &result); err != nil {
		return false, err
	}
	return result, nil
}

// DefaultPrompter is the prompter used in production
var DefaultPrompter Prompter = &SurveyPrompter{}

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Create configuration file interactively",
	Long: `Prompts for configuration values and creates config.yaml.

This command guides you through setting up the web-UI launch options,
output paths, download settings and the metadata source.`,
	RunE: runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(cmd *cobra.Command, args []string) error {
	return RunSetupWithPrompter(DefaultPrompter, "config/config.yaml")
}

// RunSetupWithPrompter runs the setup with a given prompter (for testing)
func RunSetupWithPrompter(prompter Prompter, configPath string) error {
	// Check if config already exists
	if _, err := os.Stat(configPath); err == nil {
		overwrite, err := prompter.Confirm("config.yaml already exists. Overwrite?", false)
		if err != nil {
			return fmt.Errorf("prompt cancelled")
		}
		if !overwrite {
			fmt.Println("Setup cancelled.")
			return nil
		}
	}

	fmt.Println("Welcome to yt-segment-extractor setup!")
	fmt.Println()

	cfg := config.Default()

	if err := promptUI(prompter, cfg); err != nil {
		return err
	}

	if err := promptPaths(prompter, cfg); err != nil {
		return err
	}

	if err := promptDownload(prompter, cfg); err != nil {
		return err
	}

	if err := promptMetadata(prompter, cfg); err != nil {
		return err
	}

	if err := promptLimits(prompter, cfg); err != nil {
		return err
	}

	// Ensure config directory exists
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Save configuration
	if err := config.Save(cfg, configPath); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	fmt.Println()
	fmt.Printf("Configuration saved to %s\n", configPath)
	return nil
}

func promptUI(prompter Prompter, cfg *config.Config) error {
	runner, err := prompter.Input("Web-UI runner command:", cfg.UI.Runner)
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	cfg.UI.Runner = runner

	module, err := prompter.Input("Web-UI module:", cfg.UI.Module)
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	cfg.UI.Module = module

	portStr, err := prompter.Input("UI port:", strconv.Itoa(cfg.UI.Port))
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	port, err := strconv.Atoi(portStr)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("invalid port %q: expected a number between 1 and 65535", portStr)
	}
	cfg.UI.Port = port

	headless, err := prompter.Confirm("Run headless (no automatic browser)?", cfg.UI.Headless)
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	cfg.UI.Headless = headless

	return nil
}

func promptPaths(prompter Prompter, cfg *config.Config) error {
	outputDir, err := prompter.Input("Output directory for extracted segments:", cfg.Paths.OutputDirectory)
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	cfg.Paths.OutputDirectory = outputDir

	tempDir, err := prompter.Input("Temporary download directory:", cfg.Paths.TempDirectory)
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	cfg.Paths.TempDirectory = tempDir

	return nil
}

func promptDownload(prompter Prompter, cfg *config.Config) error {
	format, err := prompter.Input("yt-dlp format selector:", cfg.Download.Format)
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	cfg.Download.Format = format

	return nil
}

func promptMetadata(prompter Prompter, cfg *config.Config) error {
	useAPI, err := prompter.Confirm("Use the YouTube Data API for metadata instead of yt-dlp?", false)
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	if !useAPI {
		cfg.Metadata.Source = "ytdlp"
		return nil
	}

	cfg.Metadata.Source = "api"

	apiKey, err := prompter.Input("YouTube Data API key (leave empty to use OAuth):", "")
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	cfg.Metadata.APIKey = apiKey

	if apiKey == "" {
		credentials, err := prompter.Input("OAuth credentials file:", "credentials.json")
		if err != nil {
			return fmt.Errorf("prompt cancelled")
		}
		cfg.Metadata.CredentialsFile = credentials

		tokenFile, err := prompter.Input("OAuth token cache file:", "youtube_token.json")
		if err != nil {
			return fmt.Errorf("prompt cancelled")
		}
		cfg.Metadata.TokenFile = tokenFile
	}

	return nil
}

func promptLimits(prompter Prompter, cfg *config.Config) error {
	limited, err := prompter.Confirm("Apply shared-deployment limits (duration/size/chapter caps)?", false)
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	if !limited {
		return nil
	}

	maxDuration, err := promptInt(prompter, "Maximum video duration in seconds:", 3600)
	if err != nil {
		return err
	}
	cfg.Limits.MaxVideoDuration = maxDuration

	maxChapters, err := promptInt(prompter, "Maximum chapters per video:", 20)
	if err != nil {
		return err
	}
	cfg.Limits.MaxChapters = maxChapters

	maxFileSize, err := promptInt(prompter, "Maximum download size in MB:", 500)
	if err != nil {
		return err
	}
	cfg.Limits.MaxFileSizeMB = maxFileSize

	return nil
}

func promptInt(prompter Prompter, message string, defaultValue int) (int, error) {
	raw, err := prompter.Input(message, strconv.Itoa(defaultValue))
	if err != nil {
		return 0, fmt.Errorf("prompt cancelled")
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return 0, fmt.Errorf("invalid value %q: expected a non-negative number", raw)
	}
	return value, nil
}
