package config

import (
	"fmt"
	"os"

	"yt-segment-extractor/domain/launch"

	"gopkg.in/yaml.v3"
)

// DefaultDownloadFormat caps downloads at 480p to keep extraction fast
const DefaultDownloadFormat = "best[height<=480]/worst"

// Config represents the complete application configuration
type Config struct {
	UI       UIConfig       `yaml:"ui"`
	Paths    PathsConfig    `yaml:"paths"`
	Download DownloadConfig `yaml:"download"`
	Limits   LimitsConfig   `yaml:"limits"`
	Metadata MetadataConfig `yaml:"metadata"`
	Tools    ToolsConfig    `yaml:"tools"`
}

// UIConfig contains the web-UI launch settings
type UIConfig struct {
	Runner   string `yaml:"runner"`
	Module   string `yaml:"module"`
	Port     int    `yaml:"port"`
	Headless bool   `yaml:"headless"`
}

// PathsConfig contains directory paths for extraction output
type PathsConfig struct {
	OutputDirectory string `yaml:"output_directory"`
	TempDirectory   string `yaml:"temp_directory"`
}

// DownloadConfig contains video download settings
type DownloadConfig struct {
	Format string `yaml:"format"`
}

// LimitsConfig contains optional caps for shared/public deployments.
// Zero values disable the corresponding check.
type LimitsConfig struct {
	MaxVideoDuration int `yaml:"max_video_duration"` // seconds
	MaxChapters      int `yaml:"max_chapters"`
	MaxFileSizeMB    int `yaml:"max_file_size_mb"`
}

// MetadataConfig selects and configures the video metadata source
type MetadataConfig struct {
	Source          string `yaml:"source"` // "ytdlp" (default) or "api"
	APIKey          string `yaml:"api_key"`
	CredentialsFile string `yaml:"credentials_file"`
	TokenFile       string `yaml:"token_file"`
}

// ToolsConfig contains paths to the external tools
type ToolsConfig struct {
	YtDlpPath   string `yaml:"ytdlp_path"`
	FFmpegPath  string `yaml:"ffmpeg_path"`
	FFprobePath string `yaml:"ffprobe_path"`
}

// Default returns the configuration used when no config file exists
func Default() *Config {
	return &Config{
		UI: UIConfig{
			Runner:   launch.DefaultRunner,
			Module:   launch.DefaultModule,
			Port:     launch.DefaultPort,
			Headless: false,
		},
		Paths: PathsConfig{
			OutputDirectory: "extracted_segments",
			TempDirectory:   os.TempDir(),
		},
		Download: DownloadConfig{
			Format: DefaultDownloadFormat,
		},
		Metadata: MetadataConfig{
			Source: "ytdlp",
		},
	}
}

// Load reads and parses the configuration from the specified YAML file.
// Empty fields are filled with defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.applyDefaults()

	return &cfg, nil
}

// Save writes the configuration to the specified YAML file
func Save(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// applyDefaults fills unset fields with the stock configuration
func (c *Config) applyDefaults() {
	def := Default()

	if c.UI.Runner == "" {
		c.UI.Runner = def.UI.Runner
	}
	if c.UI.Module == "" {
		c.UI.Module = def.UI.Module
	}
	if c.UI.Port == 0 {
		c.UI.Port = def.UI.Port
	}
	if c.Paths.OutputDirectory == "" {
		c.Paths.OutputDirectory = def.Paths.OutputDirectory
	}
	if c.Paths.TempDirectory == "" {
		c.Paths.TempDirectory = def.Paths.TempDirectory
	}
	if c.Download.Format == "" {
		c.Download.Format = def.Download.Format
	}
	if c.Metadata.Source == "" {
		c.Metadata.Source = def.Metadata.Source
	}
}

// LaunchConfig converts the UI section into a launch configuration
func (c *Config) LaunchConfig() launch.Config {
	return launch.Config{
		Runner:   c.UI.Runner,
		Module:   c.UI.Module,
		Port:     c.UI.Port,
		Headless: c.UI.Headless,
	}
}
