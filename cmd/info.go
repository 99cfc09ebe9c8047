package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	appvideo "yt-segment-extractor/application/video"
	"yt-segment-extractor/domain/video"

	"github.com/spf13/cobra"
)

var infoURL string

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show metadata for a YouTube video",
	Long: `Fetch and display the title, uploader, duration and chapter count
for a YouTube video.

Example:
  yt-segment-extractor info --url "https://www.youtube.com/watch?v=dQw4w9WgXcQ"`,
	RunE: runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
	infoCmd.Flags().StringVar(&infoURL, "url", "", "YouTube video URL (required)")
	infoCmd.MarkFlagRequired("url")
}

func runInfo(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	fetcher, err := newMetadataFetcher(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	return RunInfoWithDependencies(cmd.Context(), fetcher, cfg.Limits.MaxVideoDuration, infoURL, os.Stdout)
}

// RunInfoWithDependencies runs the info command with injected dependencies (for testing)
func RunInfoWithDependencies(
	ctx context.Context,
	fetcher video.MetadataFetcher,
	maxDuration int,
	url string,
	output io.Writer,
) error {
	service := appvideo.NewInfoService(fetcher, maxDuration)

	info, err := service.Fetch(ctx, url)
	if err != nil {
		return err
	}

	chapters := video.ParseChapters(info.Description)

	fmt.Fprintf(output, "Title:    %s\n", info.Title)
	fmt.Fprintf(output, "Uploader: %s\n", info.Uploader)
	fmt.Fprintf(output, "Duration: %s\n", info.DurationTimestamp())
	fmt.Fprintf(output, "Video ID: %s\n", info.ID)
	fmt.Fprintf(output, "Chapters: %d\n", len(chapters))

	return nil
}
