package cmd

import (
	"context"
	"fmt"
	"os"

	"yt-segment-extractor/domain/video"
	"yt-segment-extractor/infrastructure/config"
	"yt-segment-extractor/infrastructure/youtube"
	"yt-segment-extractor/infrastructure/ytdlp"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "yt-segment-extractor",
	Short: "Extract chapter segments from YouTube videos",
	Long: `yt-segment-extractor pulls individual chapters out of YouTube videos
using the timestamps listed in their descriptions:

  - Launch the web UI on a local port
  - List the chapters found in a video description
  - Download and cut a single chapter, all chapters, or an explicit range

Example:
  yt-segment-extractor chapters --url "https://www.youtube.com/watch?v=dQw4w9WgXcQ"
  yt-segment-extractor extract --url "https://youtu.be/dQw4w9WgXcQ" --chapter 3`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config/config.yaml)")
}

func initConfig() {
	explicit := cfgFile != ""
	if !explicit {
		cfgFile = "config/config.yaml"
	}

	var err error
	cfg, err = loadConfig(cfgFile, explicit)
	cobra.CheckErr(err)
}

// loadConfig reads the config file. The implicit default path is optional
// and falls back to stock settings; a path passed explicitly via --config
// must load.
func loadConfig(path string, explicit bool) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err == nil {
		return cfg, nil
	}
	if explicit {
		return nil, err
	}
	return config.Default(), nil
}

// GetConfig returns the loaded configuration
func GetConfig() *config.Config {
	return cfg
}

// newMetadataFetcher builds the metadata source the configuration selects:
// the yt-dlp executable by default, or the YouTube Data API when configured
func newMetadataFetcher(ctx context.Context, cfg *config.Config) (video.MetadataFetcher, error) {
	switch cfg.Metadata.Source {
	case "", "ytdlp":
		var opts []ytdlp.FetcherOption
		if cfg.Tools.YtDlpPath != "" {
			opts = append(opts, ytdlp.WithFetcherYtDlpPath(cfg.Tools.YtDlpPath))
		}
		return ytdlp.NewFetcher(opts...), nil

	case "api":
		if cfg.Metadata.APIKey != "" {
			return youtube.NewFetcherWithAPIKey(ctx, cfg.Metadata.APIKey)
		}
		if cfg.Metadata.CredentialsFile != "" {
			tokenFile := cfg.Metadata.TokenFile
			if tokenFile == "" {
				tokenFile = "youtube_token.json"
			}
			return youtube.NewFetcherWithOAuth(ctx, cfg.Metadata.CredentialsFile, tokenFile)
		}
		return nil, fmt.Errorf("metadata source %q needs an api_key or credentials_file in the config", cfg.Metadata.Source)

	default:
		return nil, fmt.Errorf("unknown metadata source %q: expected \"ytdlp\" or \"api\"", cfg.Metadata.Source)
	}
}
