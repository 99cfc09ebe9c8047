package video

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"yt-segment-extractor/domain/video"
)

const testURL = "https://www.youtube.com/watch?v=dQw4w9WgXcQ"

const chapteredDescription = `A video with chapters.

0:00 Intro
1:00 Middle part
2:30 Ending`

type fakeFetcher struct {
	info *video.Info
	err  error
}

func (f *fakeFetcher) Fetch(ctx context.Context, url string) (*video.Info, error) {
	return f.info, f.err
}

type fakeDownloader struct {
	segmentPath  string
	segmentErr   error
	videoPath    string
	videoErr     error
	segmentCalls int
	videoCalls   int
	lastStart    video.Timestamp
	lastEnd      video.Timestamp
}

func (f *fakeDownloader) DownloadSegment(ctx context.Context, url string, start, end video.Timestamp, outputBase string) (string, error) {
	f.segmentCalls++
	f.lastStart = start
	f.lastEnd = end
	return f.segmentPath, f.segmentErr
}

func (f *fakeDownloader) DownloadVideo(ctx context.Context, url string, outputBase string) (string, error) {
	f.videoCalls++
	return f.videoPath, f.videoErr
}

type clipCall struct {
	request *video.ClipRequest
	output  string
}

type fakeClipper struct {
	calls   []clipCall
	failOn  map[string]bool // output paths that should fail
	failAll bool
}

func (f *fakeClipper) Clip(ctx context.Context, req *video.ClipRequest, outputPath string) error {
	f.calls = append(f.calls, clipCall{request: req, output: outputPath})
	if f.failAll || f.failOn[outputPath] {
		return errors.New("clip failed")
	}
	return nil
}

type fakeProber struct {
	duration float64
	err      error
}

func (f *fakeProber) Duration(ctx context.Context, path string) (float64, error) {
	return f.duration, f.err
}

type fakeStore struct {
	dirs    []string
	moves   map[string]string
	removed []string
	sizes   map[string]int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{moves: map[string]string{}, sizes: map[string]int64{}}
}

func (f *fakeStore) EnsureDir(path string) error {
	f.dirs = append(f.dirs, path)
	return nil
}

func (f *fakeStore) Move(src, dst string) error {
	f.moves[src] = dst
	return nil
}

func (f *fakeStore) Remove(path string) error {
	f.removed = append(f.removed, path)
	return nil
}

func (f *fakeStore) Size(path string) int64 {
	return f.sizes[path]
}

func chapteredInfo() *video.Info {
	return &video.Info{
		ID:          "dQw4w9WgXcQ",
		Title:       "My Video",
		Description: chapteredDescription,
		Duration:    300,
		Uploader:    "someone",
	}
}

func newTestService(fetcher *fakeFetcher, downloader *fakeDownloader, clipper *fakeClipper, prober *fakeProber, store *fakeStore, limits Limits) *ExtractService {
	return NewExtractService(fetcher, downloader, clipper, prober, store, "out", "tmp", limits, &bytes.Buffer{})
}

func TestExtractSingleChapterUsesSegmentDownload(t *testing.T) {
	downloader := &fakeDownloader{segmentPath: "tmp/yt-segment-dQw4w9WgXcQ.mp4"}
	clipper := &fakeClipper{}
	store := newFakeStore()
	service := newTestService(&fakeFetcher{info: chapteredInfo()}, downloader, clipper, &fakeProber{}, store, Limits{})

	result, err := service.Extract(context.Background(), ExtractInput{URL: testURL, Chapters: []int{2}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if downloader.segmentCalls != 1 || downloader.videoCalls != 0 {
		t.Errorf("segment calls = %d, video calls = %d; want 1 and 0", downloader.segmentCalls, downloader.videoCalls)
	}
	if got := downloader.lastStart.String(); got != "1:00" {
		t.Errorf("segment start = %s, want 1:00", got)
	}
	if got := downloader.lastEnd.String(); got != "2:30" {
		t.Errorf("segment end = %s, want 2:30", got)
	}

	wantFile := filepath.Join("out", "02_Middle part.mp4")
	if len(result.Files) != 1 || result.Files[0] != wantFile {
		t.Errorf("result files = %v, want [%s]", result.Files, wantFile)
	}
	if store.moves[downloader.segmentPath] != wantFile {
		t.Errorf("segment was not moved to %s (moves: %v)", wantFile, store.moves)
	}
	if len(clipper.calls) != 0 {
		t.Error("an mp4 segment download should not be re-cut")
	}
}

func TestExtractNonMP4SegmentIsRecut(t *testing.T) {
	downloader := &fakeDownloader{segmentPath: "tmp/yt-segment-dQw4w9WgXcQ.webm"}
	clipper := &fakeClipper{}
	store := newFakeStore()
	service := newTestService(&fakeFetcher{info: chapteredInfo()}, downloader, clipper, &fakeProber{}, store, Limits{})

	result, err := service.Extract(context.Background(), ExtractInput{URL: testURL, Chapters: []int{1}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(clipper.calls) != 1 {
		t.Fatalf("clip calls = %d, want 1", len(clipper.calls))
	}

	// The segment file already starts at the requested range, so the
	// cut runs from zero for the length of the chapter
	call := clipper.calls[0]
	if !call.request.Start.IsZero() {
		t.Errorf("re-cut start = %s, want 0:00", call.request.Start)
	}
	if got := call.request.End.TotalSeconds(); got != 60 {
		t.Errorf("re-cut end = %d seconds, want 60", got)
	}

	wantFile := filepath.Join("out", "01_Intro.mp4")
	if len(result.Files) != 1 || result.Files[0] != wantFile {
		t.Errorf("result files = %v, want [%s]", result.Files, wantFile)
	}
	if len(store.removed) == 0 || store.removed[0] != downloader.segmentPath {
		t.Errorf("source %s was not removed (removed: %v)", downloader.segmentPath, store.removed)
	}
}

func TestExtractFallsBackToFullDownload(t *testing.T) {
	downloader := &fakeDownloader{
		segmentErr: errors.New("fragment not supported"),
		videoPath:  "tmp/yt-segment-dQw4w9WgXcQ.mp4",
	}
	clipper := &fakeClipper{}
	store := newFakeStore()
	service := newTestService(&fakeFetcher{info: chapteredInfo()}, downloader, clipper, &fakeProber{duration: 300}, store, Limits{})

	result, err := service.Extract(context.Background(), ExtractInput{URL: testURL, Chapters: []int{1}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if downloader.segmentCalls != 1 || downloader.videoCalls != 1 {
		t.Errorf("segment calls = %d, video calls = %d; want 1 and 1", downloader.segmentCalls, downloader.videoCalls)
	}
	if len(clipper.calls) != 1 {
		t.Fatalf("clip calls = %d, want 1", len(clipper.calls))
	}
	if got := clipper.calls[0].request.Start.String(); got != "0:00" {
		t.Errorf("clip start = %s, want 0:00", got)
	}
	if len(result.Files) != 1 {
		t.Errorf("result files = %v, want one file", result.Files)
	}
}

func TestExtractAllChaptersDownloadsOnce(t *testing.T) {
	downloader := &fakeDownloader{videoPath: "tmp/yt-segment-dQw4w9WgXcQ.mp4"}
	clipper := &fakeClipper{}
	store := newFakeStore()
	service := newTestService(&fakeFetcher{info: chapteredInfo()}, downloader, clipper, &fakeProber{duration: 300}, store, Limits{})

	result, err := service.Extract(context.Background(), ExtractInput{URL: testURL, All: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if downloader.segmentCalls != 0 || downloader.videoCalls != 1 {
		t.Errorf("segment calls = %d, video calls = %d; want 0 and 1", downloader.segmentCalls, downloader.videoCalls)
	}
	if len(result.Files) != 3 {
		t.Fatalf("result files = %v, want 3 files", result.Files)
	}

	wantNames := []string{"01_Intro.mp4", "02_Middle part.mp4", "03_Ending.mp4"}
	for i, want := range wantNames {
		if got := filepath.Base(result.Files[i]); got != want {
			t.Errorf("file %d = %q, want %q", i, got, want)
		}
	}

	// The last chapter ends at the video duration
	last := clipper.calls[2].request
	if got := last.End.TotalSeconds(); got != 300 {
		t.Errorf("last chapter end = %d seconds, want 300", got)
	}

	if len(store.removed) == 0 || store.removed[len(store.removed)-1] != downloader.videoPath {
		t.Errorf("full download %s was not cleaned up (removed: %v)", downloader.videoPath, store.removed)
	}
}

func TestExtractSkipsFailingChapter(t *testing.T) {
	downloader := &fakeDownloader{videoPath: "tmp/yt-segment-dQw4w9WgXcQ.mp4"}
	clipper := &fakeClipper{failOn: map[string]bool{
		filepath.Join("out", "02_Middle part.mp4"): true,
	}}
	store := newFakeStore()
	service := newTestService(&fakeFetcher{info: chapteredInfo()}, downloader, clipper, &fakeProber{duration: 300}, store, Limits{})

	result, err := service.Extract(context.Background(), ExtractInput{URL: testURL, All: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Files) != 2 {
		t.Fatalf("result files = %v, want the 2 surviving chapters", result.Files)
	}
	for _, f := range result.Files {
		if strings.Contains(f, "02_") {
			t.Errorf("failed chapter %s should not be in the result", f)
		}
	}
}

func TestExtractErrorsWhenEveryChapterFails(t *testing.T) {
	downloader := &fakeDownloader{videoPath: "tmp/yt-segment-dQw4w9WgXcQ.mp4"}
	clipper := &fakeClipper{failAll: true}
	store := newFakeStore()
	service := newTestService(&fakeFetcher{info: chapteredInfo()}, downloader, clipper, &fakeProber{duration: 300}, store, Limits{})

	_, err := service.Extract(context.Background(), ExtractInput{URL: testURL, All: true})
	if err == nil || !strings.Contains(err.Error(), "no segments were extracted") {
		t.Errorf("error = %v, want no-segments error", err)
	}
}

func TestExtractClampsChapterEndToMediaDuration(t *testing.T) {
	// The probed file is shorter than the metadata claims
	downloader := &fakeDownloader{videoPath: "tmp/yt-segment-dQw4w9WgXcQ.mp4"}
	clipper := &fakeClipper{}
	store := newFakeStore()
	service := newTestService(&fakeFetcher{info: chapteredInfo()}, downloader, clipper, &fakeProber{duration: 200}, store, Limits{})

	result, err := service.Extract(context.Background(), ExtractInput{URL: testURL, All: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Chapter 3 starts at 2:30 (150s) and its end is clamped to 200s
	last := clipper.calls[len(clipper.calls)-1].request
	if got := last.End.TotalSeconds(); got != 200 {
		t.Errorf("clamped end = %d seconds, want 200", got)
	}
	if len(result.Files) != 3 {
		t.Errorf("result files = %v, want 3 files", result.Files)
	}
}

func TestExtractTimeRange(t *testing.T) {
	downloader := &fakeDownloader{segmentPath: "tmp/yt-segment-dQw4w9WgXcQ.mp4"}
	store := newFakeStore()
	service := newTestService(&fakeFetcher{info: chapteredInfo()}, downloader, &fakeClipper{}, &fakeProber{}, store, Limits{})

	result, err := service.Extract(context.Background(), ExtractInput{
		URL:       testURL,
		StartTime: "0:30",
		EndTime:   "1:45",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if downloader.segmentCalls != 1 {
		t.Fatalf("segment calls = %d, want 1", downloader.segmentCalls)
	}

	wantFile := filepath.Join("out", "My Video 0_30-1_45.mp4")
	if len(result.Files) != 1 || result.Files[0] != wantFile {
		t.Errorf("result files = %v, want [%s]", result.Files, wantFile)
	}
}

func TestExtractTimeRangeClampedToVideoDuration(t *testing.T) {
	downloader := &fakeDownloader{segmentPath: "tmp/yt-segment-dQw4w9WgXcQ.mp4"}
	store := newFakeStore()
	service := newTestService(&fakeFetcher{info: chapteredInfo()}, downloader, &fakeClipper{}, &fakeProber{}, store, Limits{})

	_, err := service.Extract(context.Background(), ExtractInput{
		URL:       testURL,
		StartTime: "4:00",
		EndTime:   "10:00",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The 300 second video caps the requested end
	if got := downloader.lastEnd.TotalSeconds(); got != 300 {
		t.Errorf("range end = %d seconds, want 300", got)
	}
}

func TestExtractInputValidation(t *testing.T) {
	tests := []struct {
		name   string
		input  ExtractInput
		info   *video.Info
		errMsg string
	}{
		{
			name:   "invalid url",
			input:  ExtractInput{URL: "https://example.com/watch?v=nope"},
			info:   chapteredInfo(),
			errMsg: "not a valid YouTube URL",
		},
		{
			name:   "chapter out of range",
			input:  ExtractInput{URL: testURL, Chapters: []int{9}},
			info:   chapteredInfo(),
			errMsg: "chapter 9 does not exist",
		},
		{
			name:   "no selection",
			input:  ExtractInput{URL: testURL},
			info:   chapteredInfo(),
			errMsg: "no chapters selected",
		},
		{
			name:  "no chapters in description",
			input: ExtractInput{URL: testURL, All: true},
			info: &video.Info{
				ID: "dQw4w9WgXcQ", Title: "Plain", Description: "nothing here", Duration: 300,
			},
			errMsg: "no chapter timestamps found",
		},
		{
			name:   "start without end",
			input:  ExtractInput{URL: testURL, StartTime: "1:00"},
			info:   chapteredInfo(),
			errMsg: "both --start and --end are required",
		},
		{
			name:   "end before start",
			input:  ExtractInput{URL: testURL, StartTime: "2:00", EndTime: "1:00"},
			info:   chapteredInfo(),
			errMsg: "must be after start",
		},
		{
			name:   "live stream",
			input:  ExtractInput{URL: testURL, All: true},
			info:   &video.Info{ID: "dQw4w9WgXcQ", IsLive: true},
			errMsg: "live streams",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := newTestService(&fakeFetcher{info: tt.info}, &fakeDownloader{}, &fakeClipper{}, &fakeProber{}, newFakeStore(), Limits{})

			_, err := service.Extract(context.Background(), tt.input)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.errMsg) {
				t.Errorf("error = %v, want error containing %q", err, tt.errMsg)
			}
		})
	}
}

func TestExtractFullVideo(t *testing.T) {
	downloader := &fakeDownloader{videoPath: "tmp/yt-segment-dQw4w9WgXcQ.mp4"}
	clipper := &fakeClipper{}
	store := newFakeStore()
	info := &video.Info{
		ID:          "dQw4w9WgXcQ",
		Title:       "My Video",
		Description: "no timestamps here",
		Duration:    300,
	}
	service := newTestService(&fakeFetcher{info: info}, downloader, clipper, &fakeProber{}, store, Limits{})

	result, err := service.Extract(context.Background(), ExtractInput{URL: testURL, Full: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if downloader.segmentCalls != 0 || downloader.videoCalls != 1 {
		t.Errorf("segment calls = %d, video calls = %d; want 0 and 1", downloader.segmentCalls, downloader.videoCalls)
	}

	wantFile := filepath.Join("out", "My Video.mp4")
	if len(result.Files) != 1 || result.Files[0] != wantFile {
		t.Errorf("result files = %v, want [%s]", result.Files, wantFile)
	}
	if store.moves[downloader.videoPath] != wantFile {
		t.Errorf("download was not moved to %s (moves: %v)", wantFile, store.moves)
	}
	if len(clipper.calls) != 0 {
		t.Error("a full download should not be cut")
	}
}

func TestExtractFullRejectsOtherSelections(t *testing.T) {
	tests := []struct {
		name  string
		input ExtractInput
	}{
		{name: "with chapters", input: ExtractInput{URL: testURL, Full: true, Chapters: []int{1}}},
		{name: "with all", input: ExtractInput{URL: testURL, Full: true, All: true}},
		{name: "with range", input: ExtractInput{URL: testURL, Full: true, StartTime: "1:00", EndTime: "2:00"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := newTestService(&fakeFetcher{info: chapteredInfo()}, &fakeDownloader{}, &fakeClipper{}, &fakeProber{}, newFakeStore(), Limits{})

			_, err := service.Extract(context.Background(), tt.input)
			if err == nil || !strings.Contains(err.Error(), "--full cannot be combined") {
				t.Errorf("error = %v, want combination error", err)
			}
		})
	}
}

func TestExtractChapterlessDescriptionSuggestsFull(t *testing.T) {
	info := &video.Info{
		ID:          "dQw4w9WgXcQ",
		Title:       "Plain",
		Description: "no timestamps here",
		Duration:    300,
	}
	service := newTestService(&fakeFetcher{info: info}, &fakeDownloader{}, &fakeClipper{}, &fakeProber{}, newFakeStore(), Limits{})

	_, err := service.Extract(context.Background(), ExtractInput{URL: testURL, All: true})
	if err == nil || !strings.Contains(err.Error(), "use --full") {
		t.Errorf("error = %v, want hint at --full", err)
	}
}

func TestExtractRemovesTempOnFailedRecut(t *testing.T) {
	downloader := &fakeDownloader{segmentPath: "tmp/yt-segment-dQw4w9WgXcQ.webm"}
	clipper := &fakeClipper{failAll: true}
	store := newFakeStore()
	service := newTestService(&fakeFetcher{info: chapteredInfo()}, downloader, clipper, &fakeProber{}, store, Limits{})

	_, err := service.Extract(context.Background(), ExtractInput{URL: testURL, Chapters: []int{1}})
	if err == nil {
		t.Fatal("expected error when the re-cut fails")
	}

	found := false
	for _, removed := range store.removed {
		if removed == downloader.segmentPath {
			found = true
		}
	}
	if !found {
		t.Errorf("temp download %s was not removed after the failed cut (removed: %v)", downloader.segmentPath, store.removed)
	}
}

func TestExtractEnforcesFileSizeLimit(t *testing.T) {
	downloader := &fakeDownloader{segmentPath: "tmp/yt-segment-dQw4w9WgXcQ.mp4"}
	store := newFakeStore()
	store.sizes[downloader.segmentPath] = 600 * 1024 * 1024
	service := newTestService(&fakeFetcher{info: chapteredInfo()}, downloader, &fakeClipper{}, &fakeProber{}, store, Limits{MaxFileSizeMB: 500})

	_, err := service.Extract(context.Background(), ExtractInput{URL: testURL, Chapters: []int{1}})
	if err == nil || !strings.Contains(err.Error(), "maximum allowed is 500 MB") {
		t.Fatalf("error = %v, want size limit error", err)
	}
	if len(store.removed) == 0 || store.removed[0] != downloader.segmentPath {
		t.Errorf("oversized download was not removed (removed: %v)", store.removed)
	}
}

func TestExtractEnforcesChapterLimit(t *testing.T) {
	downloader := &fakeDownloader{videoPath: "tmp/yt-segment-dQw4w9WgXcQ.mp4"}
	store := newFakeStore()
	service := newTestService(&fakeFetcher{info: chapteredInfo()}, downloader, &fakeClipper{}, &fakeProber{duration: 300}, store, Limits{MaxChapters: 2})

	result, err := service.Extract(context.Background(), ExtractInput{URL: testURL, All: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Files) != 2 {
		t.Errorf("result files = %v, want 2 (chapter limit)", result.Files)
	}
}

func TestExtractFetchFailure(t *testing.T) {
	service := newTestService(&fakeFetcher{err: errors.New("network down")}, &fakeDownloader{}, &fakeClipper{}, &fakeProber{}, newFakeStore(), Limits{})

	_, err := service.Extract(context.Background(), ExtractInput{URL: testURL, All: true})
	if err == nil || !strings.Contains(err.Error(), "failed to fetch video info") {
		t.Errorf("error = %v, want fetch failure", err)
	}
}

func TestInfoServiceFetch(t *testing.T) {
	service := NewInfoService(&fakeFetcher{info: chapteredInfo()}, 0)

	info, err := service.Fetch(context.Background(), testURL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.Title != "My Video" {
		t.Errorf("Title = %q, want %q", info.Title, "My Video")
	}

	if _, err := service.Fetch(context.Background(), "not a url"); err == nil {
		t.Error("expected error for an unparseable URL")
	}
}

func TestChapterServiceList(t *testing.T) {
	service := NewChapterService(&fakeFetcher{info: chapteredInfo()}, 0, 0)

	info, chapters, err := service.List(context.Background(), testURL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.ID != "dQw4w9WgXcQ" {
		t.Errorf("ID = %q, want %q", info.ID, "dQw4w9WgXcQ")
	}
	if len(chapters) != 3 {
		t.Fatalf("chapters = %d, want 3", len(chapters))
	}
	if chapters[1].Title != "Middle part" {
		t.Errorf("chapter 2 title = %q, want %q", chapters[1].Title, "Middle part")
	}
}
