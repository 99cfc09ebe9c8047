//go:build integration

package steps

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	appvideo "yt-segment-extractor/application/video"
	"yt-segment-extractor/cmd"
	"yt-segment-extractor/domain/video"

	"github.com/cucumber/godog"
)

const extractTestURL = "https://www.youtube.com/watch?v=dQw4w9WgXcQ"

// mockSegmentDownloader records downloads without touching the network
type mockSegmentDownloader struct {
	segmentCalls int
	videoCalls   int
	segmentErr   error
	lastStart    video.Timestamp
	lastEnd      video.Timestamp
}

func (m *mockSegmentDownloader) DownloadSegment(ctx context.Context, url string, start, end video.Timestamp, outputBase string) (string, error) {
	m.segmentCalls++
	m.lastStart = start
	m.lastEnd = end
	if m.segmentErr != nil {
		return "", m.segmentErr
	}
	return outputBase + ".mp4", nil
}

func (m *mockSegmentDownloader) DownloadVideo(ctx context.Context, url string, outputBase string) (string, error) {
	m.videoCalls++
	return outputBase + ".mp4", nil
}

// mockClipper records the files it would have produced
type mockClipper struct {
	outputs []string
}

func (m *mockClipper) Clip(ctx context.Context, req *video.ClipRequest, outputPath string) error {
	m.outputs = append(m.outputs, outputPath)
	return nil
}

// mockDurationProber plays back a fixed media duration
type mockDurationProber struct {
	duration float64
}

func (m *mockDurationProber) Duration(ctx context.Context, path string) (float64, error) {
	return m.duration, nil
}

// mockFileStore records the filesystem operations of the extract flow
type mockFileStore struct {
	moves map[string]string
}

func (m *mockFileStore) EnsureDir(path string) error { return nil }

func (m *mockFileStore) Move(src, dst string) error {
	m.moves[src] = dst
	return nil
}

func (m *mockFileStore) Remove(path string) error { return nil }

func (m *mockFileStore) Size(path string) int64 { return 0 }

// extractContext holds test state for extract scenarios
type extractContext struct {
	fetcher    *mockMetadataFetcher
	downloader *mockSegmentDownloader
	clipper    *mockClipper
	prober     *mockDurationProber
	store      *mockFileStore
	output     *bytes.Buffer
	err        error
}

// SharedExtractContext is reset before each scenario via Before hook
var SharedExtractContext *extractContext

func getExtractContext() *extractContext {
	return SharedExtractContext
}

func InitializeExtractScenario(ctx *godog.ScenarioContext) {
	ctx.Before(func(c context.Context, sc *godog.Scenario) (context.Context, error) {
		SharedExtractContext = &extractContext{
			fetcher:    &mockMetadataFetcher{},
			downloader: &mockSegmentDownloader{},
			clipper:    &mockClipper{},
			prober:     &mockDurationProber{},
			store:      &mockFileStore{moves: map[string]string{}},
			output:     &bytes.Buffer{},
		}
		return c, nil
	})

	ctx.After(func(c context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		SharedExtractContext = nil
		return c, nil
	})

	ctx.Step(`^a chaptered video titled "([^"]*)" lasting "([^"]*)" with the description:$`, aChapteredVideoTitledLastingWithTheDescription)
	ctx.Step(`^the segment download will fail$`, theSegmentDownloadWillFail)
	ctx.Step(`^I extract chapter (\d+)$`, iExtractChapter)
	ctx.Step(`^I attempt to extract chapter (\d+)$`, iAttemptToExtractChapter)
	ctx.Step(`^I extract all chapters$`, iExtractAllChapters)
	ctx.Step(`^I extract the full video$`, iExtractTheFullVideo)
	ctx.Step(`^I extract the range "([^"]*)" to "([^"]*)"$`, iExtractTheRangeTo)
	ctx.Step(`^only the segment download should have been used$`, onlyTheSegmentDownloadShouldHaveBeenUsed)
	ctx.Step(`^only the full download should have been used$`, onlyTheFullDownloadShouldHaveBeenUsed)
	ctx.Step(`^the full download should have been used after the segment download$`, theFullDownloadShouldHaveBeenUsedAfterTheSegmentDownload)
	ctx.Step(`^the segment range should be "([^"]*)" to "([^"]*)"$`, theSegmentRangeShouldBeTo)
	ctx.Step(`^the output file should be "([^"]*)"$`, theExtractOutputFileShouldBe)
	ctx.Step(`^I should get (\d+) output files$`, iShouldGetOutputFiles)
	ctx.Step(`^I should receive an error about the chapter number$`, iShouldReceiveAnErrorAboutTheChapterNumber)
}

func aChapteredVideoTitledLastingWithTheDescription(title, duration string, description *godog.DocString) error {
	e := getExtractContext()

	ts, err := video.ParseTimestamp(duration)
	if err != nil {
		return fmt.Errorf("bad duration in scenario: %v", err)
	}

	e.fetcher.info = &video.Info{
		ID:          "dQw4w9WgXcQ",
		Title:       title,
		Description: description.Content,
		Duration:    ts.TotalSeconds(),
		Uploader:    "someone",
	}
	e.prober.duration = float64(ts.TotalSeconds())
	return nil
}

func theSegmentDownloadWillFail() error {
	e := getExtractContext()
	e.downloader.segmentErr = errors.New("fragment not supported")
	return nil
}

func runExtract(input appvideo.ExtractInput) error {
	e := getExtractContext()

	e.err = cmd.RunExtractWithDependencies(
		context.Background(),
		e.fetcher,
		e.downloader,
		e.clipper,
		e.prober,
		e.store,
		"out",
		"tmp",
		appvideo.Limits{},
		input,
		e.output,
	)
	return e.err
}

func iExtractChapter(number int) error {
	if err := runExtract(appvideo.ExtractInput{URL: extractTestURL, Chapters: []int{number}}); err != nil {
		return fmt.Errorf("unexpected error: %v", err)
	}
	return nil
}

func iAttemptToExtractChapter(number int) error {
	runExtract(appvideo.ExtractInput{URL: extractTestURL, Chapters: []int{number}})
	return nil
}

func iExtractAllChapters() error {
	if err := runExtract(appvideo.ExtractInput{URL: extractTestURL, All: true}); err != nil {
		return fmt.Errorf("unexpected error: %v", err)
	}
	return nil
}

func iExtractTheFullVideo() error {
	if err := runExtract(appvideo.ExtractInput{URL: extractTestURL, Full: true}); err != nil {
		return fmt.Errorf("unexpected error: %v", err)
	}
	return nil
}

func iExtractTheRangeTo(start, end string) error {
	if err := runExtract(appvideo.ExtractInput{URL: extractTestURL, StartTime: start, EndTime: end}); err != nil {
		return fmt.Errorf("unexpected error: %v", err)
	}
	return nil
}

func onlyTheSegmentDownloadShouldHaveBeenUsed() error {
	e := getExtractContext()
	if e.downloader.segmentCalls != 1 || e.downloader.videoCalls != 0 {
		return fmt.Errorf("segment calls = %d, video calls = %d; expected 1 and 0",
			e.downloader.segmentCalls, e.downloader.videoCalls)
	}
	return nil
}

func onlyTheFullDownloadShouldHaveBeenUsed() error {
	e := getExtractContext()
	if e.downloader.segmentCalls != 0 || e.downloader.videoCalls != 1 {
		return fmt.Errorf("segment calls = %d, video calls = %d; expected 0 and 1",
			e.downloader.segmentCalls, e.downloader.videoCalls)
	}
	return nil
}

func theFullDownloadShouldHaveBeenUsedAfterTheSegmentDownload() error {
	e := getExtractContext()
	if e.downloader.segmentCalls != 1 || e.downloader.videoCalls != 1 {
		return fmt.Errorf("segment calls = %d, video calls = %d; expected 1 and 1",
			e.downloader.segmentCalls, e.downloader.videoCalls)
	}
	return nil
}

func theSegmentRangeShouldBeTo(start, end string) error {
	e := getExtractContext()
	if got := e.downloader.lastStart.String(); got != start {
		return fmt.Errorf("segment start = %s, expected %s", got, start)
	}
	if got := e.downloader.lastEnd.String(); got != end {
		return fmt.Errorf("segment end = %s, expected %s", got, end)
	}
	return nil
}

func theExtractOutputFileShouldBe(expected string) error {
	e := getExtractContext()

	for _, dst := range e.store.moves {
		if filepath.Base(dst) == expected {
			return nil
		}
	}
	for _, out := range e.clipper.outputs {
		if filepath.Base(out) == expected {
			return nil
		}
	}

	return fmt.Errorf("output file %q not produced; moves: %v, clips: %v", expected, e.store.moves, e.clipper.outputs)
}

func iShouldGetOutputFiles(count int) error {
	e := getExtractContext()
	got := len(e.store.moves) + len(e.clipper.outputs)
	if got != count {
		return fmt.Errorf("expected %d output files, got %d (moves: %v, clips: %v)",
			count, got, e.store.moves, e.clipper.outputs)
	}
	return nil
}

func iShouldReceiveAnErrorAboutTheChapterNumber() error {
	e := getExtractContext()
	if e.err == nil {
		return fmt.Errorf("expected an error but got none")
	}
	if !strings.Contains(e.err.Error(), "does not exist") {
		return fmt.Errorf("expected error about the chapter number, got: %v", e.err)
	}
	return nil
}
