package ytdlp

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"yt-segment-extractor/domain/video"
)

// containerExtensions are the formats yt-dlp may leave behind, probed in
// order to locate the finished download
var containerExtensions = []string{"mp4", "webm", "mkv", "avi", "flv"}

// Downloader implements video.SegmentDownloader using the yt-dlp executable
type Downloader struct {
	ytdlpPath string
	format    string
	runner    CommandRunner
}

// DownloaderOption is a functional option for configuring Downloader
type DownloaderOption func(*Downloader)

// WithYtDlpPath sets a custom yt-dlp executable path
func WithYtDlpPath(path string) DownloaderOption {
	return func(d *Downloader) {
		d.ytdlpPath = path
	}
}

// WithFormat sets the yt-dlp format selector
func WithFormat(format string) DownloaderOption {
	return func(d *Downloader) {
		d.format = format
	}
}

// WithDownloaderCommandRunner sets a custom command runner (for testing)
func WithDownloaderCommandRunner(runner CommandRunner) DownloaderOption {
	return func(d *Downloader) {
		d.runner = runner
	}
}

// NewDownloader creates a new yt-dlp-based downloader
func NewDownloader(opts ...DownloaderOption) *Downloader {
	d := &Downloader{
		ytdlpPath: "yt-dlp",
		format:    "best[height<=480]/worst",
		runner:    &ExecCommandRunner{},
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// DownloadSegment implements video.SegmentDownloader. Only the requested
// range is fetched, with ffmpeg as the external downloader seeking on the
// input, which is far faster than downloading the whole video.
func (d *Downloader) DownloadSegment(ctx context.Context, url string, start, end video.Timestamp, outputBase string) (string, error) {
	removeStaleDownloads(outputBase)

	args := []string{
		"-f", d.format,
		"--no-warnings",
		"--no-check-certificates",
		"-o", outputBase + ".%(ext)s",
		"--external-downloader", "ffmpeg",
		"--external-downloader-args",
		"ffmpeg_i:-ss " + strconv.Itoa(start.TotalSeconds()) + " -to " + strconv.Itoa(end.TotalSeconds()),
		"--remux-video", "mp4",
		url,
	}

	if err := d.runner.Run(ctx, d.ytdlpPath, args...); err != nil {
		return "", fmt.Errorf("yt-dlp segment download failed: %w", err)
	}

	return locateDownload(outputBase)
}

// DownloadVideo implements video.SegmentDownloader
func (d *Downloader) DownloadVideo(ctx context.Context, url string, outputBase string) (string, error) {
	removeStaleDownloads(outputBase)

	args := []string{
		"-f", d.format,
		"--no-warnings",
		"--no-check-certificates",
		"-o", outputBase + ".%(ext)s",
		url,
	}

	if err := d.runner.Run(ctx, d.ytdlpPath, args...); err != nil {
		return "", fmt.Errorf("yt-dlp download failed: %w", err)
	}

	return locateDownload(outputBase)
}

// VerifyInstalled checks that yt-dlp is available
func (d *Downloader) VerifyInstalled(ctx context.Context) error {
	_, err := d.runner.Output(ctx, d.ytdlpPath, "--version")
	if err != nil {
		return fmt.Errorf("yt-dlp not found or not executable: %w", err)
	}
	return nil
}

// removeStaleDownloads clears leftovers from an earlier interrupted run so
// locateDownload cannot pick up an old file
func removeStaleDownloads(outputBase string) {
	matches, err := filepath.Glob(outputBase + ".*")
	if err != nil {
		return
	}
	for _, path := range matches {
		os.Remove(path)
	}
}

// locateDownload finds the file yt-dlp produced for the given output base
func locateDownload(outputBase string) (string, error) {
	for _, ext := range containerExtensions {
		path := outputBase + "." + ext
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	// yt-dlp can leave other extensions behind; take whatever matches
	matches, err := filepath.Glob(outputBase + ".*")
	if err == nil && len(matches) > 0 {
		return matches[0], nil
	}

	return "", fmt.Errorf("no downloaded file found for %s", outputBase)
}

// Ensure Downloader implements video.SegmentDownloader
var _ video.SegmentDownloader = (*Downloader)(nil)
