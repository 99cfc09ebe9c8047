package ytdlp

import (
	"context"
	"encoding/json"
	"fmt"

	"yt-segment-extractor/domain/video"
)

// Fetcher implements video.MetadataFetcher using the yt-dlp executable
type Fetcher struct {
	ytdlpPath string
	runner    CommandRunner
}

// FetcherOption is a functional option for configuring Fetcher
type FetcherOption func(*Fetcher)

// WithFetcherYtDlpPath sets a custom yt-dlp executable path
func WithFetcherYtDlpPath(path string) FetcherOption {
	return func(f *Fetcher) {
		f.ytdlpPath = path
	}
}

// WithFetcherCommandRunner sets a custom command runner (for testing)
func WithFetcherCommandRunner(runner CommandRunner) FetcherOption {
	return func(f *Fetcher) {
		f.runner = runner
	}
}

// NewFetcher creates a new yt-dlp-based metadata fetcher
func NewFetcher(opts ...FetcherOption) *Fetcher {
	f := &Fetcher{
		ytdlpPath: "yt-dlp",
		runner:    &ExecCommandRunner{},
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// videoJSON is the subset of yt-dlp's --dump-json output the extractor uses
type videoJSON struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Duration    float64 `json:"duration"`
	Uploader    string  `json:"uploader"`
	IsLive      bool    `json:"is_live"`
}

// Fetch implements video.MetadataFetcher
func (f *Fetcher) Fetch(ctx context.Context, url string) (*video.Info, error) {
	args := []string{
		"--dump-json",
		"--skip-download",
		"--no-warnings",
		"--no-check-certificates",
		url,
	}

	out, err := f.runner.Output(ctx, f.ytdlpPath, args...)
	if err != nil {
		return nil, fmt.Errorf("yt-dlp metadata fetch failed: %w", err)
	}

	var raw videoJSON
	if err := json.Unmarshal(out, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse yt-dlp metadata: %w", err)
	}

	return &video.Info{
		ID:          raw.ID,
		Title:       raw.Title,
		Description: raw.Description,
		Duration:    int(raw.Duration),
		Uploader:    raw.Uploader,
		IsLive:      raw.IsLive,
	}, nil
}

// VerifyInstalled checks that yt-dlp is available
func (f *Fetcher) VerifyInstalled(ctx context.Context) error {
	_, err := f.runner.Output(ctx, f.ytdlpPath, "--version")
	if err != nil {
		return fmt.Errorf("yt-dlp not found or not executable: %w", err)
	}
	return nil
}

// Ensure Fetcher implements video.MetadataFetcher
var _ video.MetadataFetcher = (*Fetcher)(nil)
