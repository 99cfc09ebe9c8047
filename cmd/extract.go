package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	appvideo "yt-segment-extractor/application/video"
	"yt-segment-extractor/domain/video"
	"yt-segment-extractor/infrastructure/ffmpeg"
	"yt-segment-extractor/infrastructure/filesystem"
	"yt-segment-extractor/infrastructure/ytdlp"

	"github.com/spf13/cobra"
)

var (
	extractURL      string
	extractChapters []int
	extractAll      bool
	extractFull     bool
	extractStart    string
	extractEnd      string
	extractOutDir   string
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Download and cut video segments",
	Long: `Download a YouTube video segment and save it as an mp4 file.

Segments are selected either by chapter number (as listed by the chapters
command), with --all for every chapter, or by an explicit --start/--end
time range. A single chapter downloads only that range of the video;
multiple chapters download the video once and cut it locally. For videos
without chapter timestamps, --full downloads the whole video uncut.

Output files are named NN_<chapter title>.mp4 in the output directory;
--full saves <video title>.mp4.

Example:
  yt-segment-extractor extract --url "https://youtu.be/dQw4w9WgXcQ" --chapter 3
  yt-segment-extractor extract --url "https://youtu.be/dQw4w9WgXcQ" --all
  yt-segment-extractor extract --url "https://youtu.be/dQw4w9WgXcQ" --full
  yt-segment-extractor extract --url "https://youtu.be/dQw4w9WgXcQ" --start 5:30 --end 12:00`,
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)
	extractCmd.Flags().StringVar(&extractURL, "url", "", "YouTube video URL (required)")
	extractCmd.Flags().IntSliceVar(&extractChapters, "chapter", nil, "chapter number(s) to extract (can be repeated)")
	extractCmd.Flags().BoolVar(&extractAll, "all", false, "extract every chapter")
	extractCmd.Flags().BoolVar(&extractFull, "full", false, "download the whole video uncut")
	extractCmd.Flags().StringVar(&extractStart, "start", "", "start timestamp (M:SS or H:MM:SS)")
	extractCmd.Flags().StringVar(&extractEnd, "end", "", "end timestamp (M:SS or H:MM:SS)")
	extractCmd.Flags().StringVar(&extractOutDir, "output", "", "output directory (defaults to the configured one)")
	extractCmd.MarkFlagRequired("url")
}

func runExtract(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	ctx := cmd.Context()

	fetcher, err := newMetadataFetcher(ctx, cfg)
	if err != nil {
		return err
	}

	var downloaderOpts []ytdlp.DownloaderOption
	if cfg.Tools.YtDlpPath != "" {
		downloaderOpts = append(downloaderOpts, ytdlp.WithYtDlpPath(cfg.Tools.YtDlpPath))
	}
	if cfg.Download.Format != "" {
		downloaderOpts = append(downloaderOpts, ytdlp.WithFormat(cfg.Download.Format))
	}
	downloader := ytdlp.NewDownloader(downloaderOpts...)

	var clipperOpts []ffmpeg.ClipperOption
	if cfg.Tools.FFmpegPath != "" {
		clipperOpts = append(clipperOpts, ffmpeg.WithFFmpegPath(cfg.Tools.FFmpegPath))
	}
	clipper := ffmpeg.NewClipper(clipperOpts...)

	var proberOpts []ffmpeg.ProberOption
	if cfg.Tools.FFprobePath != "" {
		proberOpts = append(proberOpts, ffmpeg.WithFFprobePath(cfg.Tools.FFprobePath))
	}
	prober := ffmpeg.NewProber(proberOpts...)

	outputDir := cfg.Paths.OutputDirectory
	if extractOutDir != "" {
		outputDir = extractOutDir
	}

	input := appvideo.ExtractInput{
		URL:       extractURL,
		Chapters:  extractChapters,
		All:       extractAll,
		Full:      extractFull,
		StartTime: extractStart,
		EndTime:   extractEnd,
	}

	limits := appvideo.Limits{
		MaxVideoDuration: cfg.Limits.MaxVideoDuration,
		MaxChapters:      cfg.Limits.MaxChapters,
		MaxFileSizeMB:    cfg.Limits.MaxFileSizeMB,
	}

	return RunExtractWithDependencies(
		ctx,
		fetcher,
		downloader,
		clipper,
		prober,
		filesystem.NewChecker(),
		outputDir,
		cfg.Paths.TempDirectory,
		limits,
		input,
		os.Stdout,
	)
}

// RunExtractWithDependencies runs the extract command with injected dependencies (for testing)
func RunExtractWithDependencies(
	ctx context.Context,
	fetcher video.MetadataFetcher,
	downloader video.SegmentDownloader,
	clipper video.Clipper,
	prober video.DurationProber,
	store appvideo.FileStore,
	outputDir string,
	tempDir string,
	limits appvideo.Limits,
	input appvideo.ExtractInput,
	output io.Writer,
) error {
	// Verify the external tools are available before touching the network
	if verifiable, ok := downloader.(interface{ VerifyInstalled(context.Context) error }); ok {
		verifyCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := verifiable.VerifyInstalled(verifyCtx); err != nil {
			return fmt.Errorf("yt-dlp verification failed: %w", err)
		}
	}
	if verifiable, ok := clipper.(interface{ VerifyInstalled(context.Context) error }); ok {
		verifyCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := verifiable.VerifyInstalled(verifyCtx); err != nil {
			return fmt.Errorf("ffmpeg verification failed: %w", err)
		}
	}

	service := appvideo.NewExtractService(
		fetcher,
		downloader,
		clipper,
		prober,
		store,
		outputDir,
		tempDir,
		limits,
		output,
	)

	result, err := service.Extract(ctx, input)
	if err != nil {
		return err
	}

	fmt.Fprintf(output, "\nExtracted %d file(s) to %s\n", len(result.Files), outputDir)
	return nil
}
