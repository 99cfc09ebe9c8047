package video

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"yt-segment-extractor/domain/video"
)

// FileStore abstracts the filesystem operations the extract flow needs
type FileStore interface {
	EnsureDir(path string) error
	Move(src, dst string) error
	Remove(path string) error
	Size(path string) int64
}

// Limits are optional caps for shared deployments; zero values disable them
type Limits struct {
	MaxVideoDuration int // seconds
	MaxChapters      int
	MaxFileSizeMB    int
}

// ExtractService coordinates the full extraction flow: fetch metadata,
// resolve the requested segments, download and cut them
type ExtractService struct {
	fetcher    video.MetadataFetcher
	downloader video.SegmentDownloader
	clipper    video.Clipper
	prober     video.DurationProber
	store      FileStore
	outputDir  string
	tempDir    string
	limits     Limits
	output     io.Writer
}

// NewExtractService creates a new ExtractService
func NewExtractService(
	fetcher video.MetadataFetcher,
	downloader video.SegmentDownloader,
	clipper video.Clipper,
	prober video.DurationProber,
	store FileStore,
	outputDir string,
	tempDir string,
	limits Limits,
	output io.Writer,
) *ExtractService {
	return &ExtractService{
		fetcher:    fetcher,
		downloader: downloader,
		clipper:    clipper,
		prober:     prober,
		store:      store,
		outputDir:  outputDir,
		tempDir:    tempDir,
		limits:     limits,
		output:     output,
	}
}

// ExtractInput represents the input for an extraction operation.
// Either a chapter selection (Chapters/All) or an explicit time range
// (StartTime/EndTime) is given.
type ExtractInput struct {
	URL       string
	Chapters  []int // 1-based chapter numbers
	All       bool
	Full      bool
	StartTime string
	EndTime   string
}

// ExtractResult contains the files written by an extraction
type ExtractResult struct {
	Files []string
}

// segmentTarget is one resolved range to cut, with its output filename
type segmentTarget struct {
	start    video.Timestamp
	end      video.Timestamp
	filename string
}

// Extract runs the extraction flow for the given input
func (s *ExtractService) Extract(ctx context.Context, input ExtractInput) (*ExtractResult, error) {
	if _, err := video.ParseVideoID(input.URL); err != nil {
		return nil, err
	}

	fmt.Fprintln(s.output, "Fetching video info...")

	info, err := s.fetcher.Fetch(ctx, input.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch video info: %w", err)
	}

	if err := info.Validate(s.limits.MaxVideoDuration); err != nil {
		return nil, err
	}

	if input.Full {
		if len(input.Chapters) > 0 || input.All || input.StartTime != "" || input.EndTime != "" {
			return nil, fmt.Errorf("--full cannot be combined with a chapter or time range selection")
		}
		return s.extractFullVideo(ctx, input.URL, info)
	}

	targets, err := s.resolveTargets(info, input)
	if err != nil {
		return nil, err
	}

	if err := s.store.EnsureDir(s.outputDir); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	sourcePath, segmentDownloaded, err := s.download(ctx, input.URL, info, targets)
	if err != nil {
		return nil, err
	}

	if s.limits.MaxFileSizeMB > 0 {
		if size := s.store.Size(sourcePath); size > int64(s.limits.MaxFileSizeMB)*1024*1024 {
			s.store.Remove(sourcePath)
			return nil, fmt.Errorf("downloaded file is %d MB; maximum allowed is %d MB",
				size/(1024*1024), s.limits.MaxFileSizeMB)
		}
	}

	if segmentDownloaded {
		return s.finishSegmentDownload(ctx, sourcePath, targets[0])
	}

	return s.clipTargets(ctx, sourcePath, targets)
}

// resolveTargets turns the input selection into concrete segment ranges
func (s *ExtractService) resolveTargets(info *video.Info, input ExtractInput) ([]segmentTarget, error) {
	if input.StartTime != "" || input.EndTime != "" {
		return s.resolveRangeTarget(info, input)
	}

	chapters := video.ParseChaptersWithLimit(info.Description, s.limits.MaxChapters)
	if len(chapters) == 0 {
		return nil, fmt.Errorf("no chapter timestamps found in the video description; use --full to download the whole video")
	}

	indexes := input.Chapters
	if input.All {
		indexes = make([]int, len(chapters))
		for i := range chapters {
			indexes[i] = i + 1
		}
	}
	if len(indexes) == 0 {
		return nil, fmt.Errorf("no chapters selected; use --chapter or --all")
	}

	var targets []segmentTarget
	for _, n := range indexes {
		if n < 1 || n > len(chapters) {
			return nil, fmt.Errorf("chapter %d does not exist; the video has %d chapters", n, len(chapters))
		}

		start, end, err := chapters.SegmentRange(n-1, info.Duration)
		if err != nil {
			return nil, err
		}

		targets = append(targets, segmentTarget{
			start:    start,
			end:      end,
			filename: fmt.Sprintf("%02d_%s.mp4", n, video.CleanTitle(chapters[n-1].Title)),
		})
	}

	return targets, nil
}

// resolveRangeTarget builds a single target for an explicit start/end range
func (s *ExtractService) resolveRangeTarget(info *video.Info, input ExtractInput) ([]segmentTarget, error) {
	if input.StartTime == "" || input.EndTime == "" {
		return nil, fmt.Errorf("both --start and --end are required for a time range")
	}

	start, err := video.ParseTimestamp(input.StartTime)
	if err != nil {
		return nil, fmt.Errorf("invalid start time: %w", err)
	}

	end, err := video.ParseTimestamp(input.EndTime)
	if err != nil {
		return nil, fmt.Errorf("invalid end time: %w", err)
	}

	if info.Duration > 0 && end.TotalSeconds() > info.Duration {
		end = video.TimestampFromSeconds(info.Duration)
	}

	if !end.After(start) {
		return nil, fmt.Errorf("end time %s must be after start time %s", end, start)
	}

	title := info.Title
	if title == "" {
		title = "segment"
	}

	name := video.CleanTitle(fmt.Sprintf("%s %s-%s", title, start, end))
	return []segmentTarget{{start: start, end: end, filename: name + ".mp4"}}, nil
}

// extractFullVideo downloads the whole video and places it in the output
// directory uncut, named after the video title
func (s *ExtractService) extractFullVideo(ctx context.Context, url string, info *video.Info) (*ExtractResult, error) {
	if err := s.store.EnsureDir(s.outputDir); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	fmt.Fprintln(s.output, "Downloading the full video...")

	tempBase := filepath.Join(s.tempDir, "yt-segment-"+info.ID)
	sourcePath, err := s.downloader.DownloadVideo(ctx, url, tempBase)
	if err != nil {
		return nil, fmt.Errorf("failed to download video: %w", err)
	}

	if s.limits.MaxFileSizeMB > 0 {
		if size := s.store.Size(sourcePath); size > int64(s.limits.MaxFileSizeMB)*1024*1024 {
			s.store.Remove(sourcePath)
			return nil, fmt.Errorf("downloaded file is %d MB; maximum allowed is %d MB",
				size/(1024*1024), s.limits.MaxFileSizeMB)
		}
	}

	title := info.Title
	if title == "" {
		title = "video"
	}

	outputPath := filepath.Join(s.outputDir, video.CleanTitle(title)+filepath.Ext(sourcePath))
	if err := s.store.Move(sourcePath, outputPath); err != nil {
		return nil, fmt.Errorf("failed to place video: %w", err)
	}

	fmt.Fprintf(s.output, "Successfully created: %s\n", outputPath)
	return &ExtractResult{Files: []string{outputPath}}, nil
}

// download fetches the source media: a single target uses the much faster
// segment-only download, falling back to the full video when that fails
func (s *ExtractService) download(ctx context.Context, url string, info *video.Info, targets []segmentTarget) (string, bool, error) {
	tempBase := filepath.Join(s.tempDir, "yt-segment-"+info.ID)

	if len(targets) == 1 {
		t := targets[0]
		fmt.Fprintf(s.output, "Downloading segment %s - %s...\n", t.start, t.end)

		path, err := s.downloader.DownloadSegment(ctx, url, t.start, t.end, tempBase)
		if err == nil {
			return path, true, nil
		}

		fmt.Fprintf(s.output, "Segment download failed (%v), downloading the full video instead...\n", err)
	} else {
		fmt.Fprintf(s.output, "Downloading video for %d chapters...\n", len(targets))
	}

	path, err := s.downloader.DownloadVideo(ctx, url, tempBase)
	if err != nil {
		return "", false, fmt.Errorf("failed to download video: %w", err)
	}

	return path, false, nil
}

// finishSegmentDownload places a segment-only download at its final path.
// The file already contains exactly the requested range, so an mp4 is
// moved as-is and any other container is re-cut from zero to convert it.
func (s *ExtractService) finishSegmentDownload(ctx context.Context, sourcePath string, target segmentTarget) (*ExtractResult, error) {
	outputPath := filepath.Join(s.outputDir, target.filename)

	if filepath.Ext(sourcePath) == ".mp4" {
		if err := s.store.Move(sourcePath, outputPath); err != nil {
			return nil, fmt.Errorf("failed to place segment: %w", err)
		}
		fmt.Fprintf(s.output, "Successfully created: %s\n", outputPath)
		return &ExtractResult{Files: []string{outputPath}}, nil
	}

	// The temp download is spent whether or not the cut succeeds
	defer s.store.Remove(sourcePath)

	req, err := video.NewClipRequest(sourcePath, video.Timestamp{}, target.end.AddSeconds(-target.start.TotalSeconds()))
	if err != nil {
		return nil, err
	}

	if err := s.clipper.Clip(ctx, req, outputPath); err != nil {
		return nil, err
	}

	fmt.Fprintf(s.output, "Successfully created: %s\n", outputPath)
	return &ExtractResult{Files: []string{outputPath}}, nil
}

// clipTargets cuts each target range out of a full download. A failing
// chapter is reported and skipped so the remaining chapters still extract.
func (s *ExtractService) clipTargets(ctx context.Context, sourcePath string, targets []segmentTarget) (*ExtractResult, error) {
	defer s.store.Remove(sourcePath)

	// The playable length bounds every cut; chapter math can overshoot it
	var mediaDuration int
	if duration, err := s.prober.Duration(ctx, sourcePath); err == nil {
		mediaDuration = int(duration)
	}

	var files []string
	for i, t := range targets {
		end := t.end
		if mediaDuration > 0 && end.TotalSeconds() > mediaDuration {
			end = video.TimestampFromSeconds(mediaDuration)
		}

		if !end.After(t.start) {
			fmt.Fprintf(s.output, "Skipping %s: range %s - %s is outside the video\n", t.filename, t.start, t.end)
			continue
		}

		req, err := video.NewClipRequest(sourcePath, t.start, end)
		if err != nil {
			fmt.Fprintf(s.output, "Skipping %s: %v\n", t.filename, err)
			continue
		}

		outputPath := filepath.Join(s.outputDir, t.filename)
		fmt.Fprintf(s.output, "Extracting %d/%d: %s - %s...\n", i+1, len(targets), t.start, end)

		if err := s.clipper.Clip(ctx, req, outputPath); err != nil {
			fmt.Fprintf(s.output, "Failed to extract %s: %v\n", t.filename, err)
			continue
		}

		fmt.Fprintf(s.output, "Successfully created: %s\n", outputPath)
		files = append(files, outputPath)
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("no segments were extracted")
	}

	return &ExtractResult{Files: files}, nil
}
