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

var (
	chaptersURL string
	chaptersMax int
)

var chaptersCmd = &cobra.Command{
	Use:   "chapters",
	Short: "List the chapters found in a video description",
	Long: `Fetch a video's description and list the chapter timestamps found in it.

The chapter numbers shown here are the ones the extract command accepts
with --chapter.

Example:
  yt-segment-extractor chapters --url "https://www.youtube.com/watch?v=dQw4w9WgXcQ"`,
	RunE: runChapters,
}

func init() {
	rootCmd.AddCommand(chaptersCmd)
	chaptersCmd.Flags().StringVar(&chaptersURL, "url", "", "YouTube video URL (required)")
	chaptersCmd.Flags().IntVar(&chaptersMax, "max", 0, "maximum number of chapters to list (0 = unlimited)")
	chaptersCmd.MarkFlagRequired("url")
}

func runChapters(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	fetcher, err := newMetadataFetcher(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	max := chaptersMax
	if max == 0 {
		max = cfg.Limits.MaxChapters
	}

	return RunChaptersWithDependencies(cmd.Context(), fetcher, cfg.Limits.MaxVideoDuration, max, chaptersURL, os.Stdout)
}

// RunChaptersWithDependencies runs the chapters command with injected dependencies (for testing)
func RunChaptersWithDependencies(
	ctx context.Context,
	fetcher video.MetadataFetcher,
	maxDuration int,
	maxChapters int,
	url string,
	output io.Writer,
) error {
	service := appvideo.NewChapterService(fetcher, maxDuration, maxChapters)

	info, chapters, err := service.List(ctx, url)
	if err != nil {
		return err
	}

	if len(chapters) == 0 {
		fmt.Fprintln(output, "No chapter timestamps found in the video description.")
		return nil
	}

	fmt.Fprintf(output, "%s (%s)\n\n", info.Title, info.DurationTimestamp())

	for i := range chapters {
		start, end, err := chapters.SegmentRange(i, info.Duration)
		if err != nil {
			return err
		}
		fmt.Fprintf(output, "%3d. %8s - %-8s %s\n", i+1, start.String(), end.String(), chapters[i].Title)
	}

	return nil
}
