//go:build integration

package steps

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"yt-segment-extractor/cmd"
	"yt-segment-extractor/domain/video"

	"github.com/cucumber/godog"
)

// mockMetadataFetcher plays back a canned video description
type mockMetadataFetcher struct {
	info *video.Info
	err  error
}

func (m *mockMetadataFetcher) Fetch(ctx context.Context, url string) (*video.Info, error) {
	return m.info, m.err
}

// chaptersContext holds test state for chapters scenarios
type chaptersContext struct {
	fetcher *mockMetadataFetcher
	output  *bytes.Buffer
	err     error
}

// SharedChaptersContext is reset before each scenario via Before hook
var SharedChaptersContext *chaptersContext

func getChaptersContext() *chaptersContext {
	return SharedChaptersContext
}

func InitializeChaptersScenario(ctx *godog.ScenarioContext) {
	ctx.Before(func(c context.Context, sc *godog.Scenario) (context.Context, error) {
		SharedChaptersContext = &chaptersContext{
			fetcher: &mockMetadataFetcher{},
			output:  &bytes.Buffer{},
		}
		return c, nil
	})

	ctx.After(func(c context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		SharedChaptersContext = nil
		return c, nil
	})

	ctx.Step(`^a video titled "([^"]*)" lasting "([^"]*)" with the description:$`, aVideoTitledLastingWithTheDescription)
	ctx.Step(`^I list the chapters for "([^"]*)"$`, iListTheChaptersFor)
	ctx.Step(`^I attempt to list the chapters for "([^"]*)"$`, iAttemptToListTheChaptersFor)
	ctx.Step(`^I should see (\d+) chapters$`, iShouldSeeChapters)
	ctx.Step(`^chapter (\d+) should be "([^"]*)" from "([^"]*)" to "([^"]*)"$`, chapterShouldBeFromTo)
	ctx.Step(`^I should be told no chapters were found$`, iShouldBeToldNoChaptersWereFound)
	ctx.Step(`^I should receive an error about the URL$`, iShouldReceiveAnErrorAboutTheURL)
}

func aVideoTitledLastingWithTheDescription(title, duration string, description *godog.DocString) error {
	c := getChaptersContext()

	ts, err := video.ParseTimestamp(duration)
	if err != nil {
		return fmt.Errorf("bad duration in scenario: %v", err)
	}

	c.fetcher.info = &video.Info{
		ID:          "dQw4w9WgXcQ",
		Title:       title,
		Description: description.Content,
		Duration:    ts.TotalSeconds(),
		Uploader:    "someone",
	}
	return nil
}

func iListTheChaptersFor(url string) error {
	c := getChaptersContext()

	c.err = cmd.RunChaptersWithDependencies(context.Background(), c.fetcher, 0, 0, url, c.output)
	if c.err != nil {
		return fmt.Errorf("unexpected error: %v", c.err)
	}
	return nil
}

func iAttemptToListTheChaptersFor(url string) error {
	c := getChaptersContext()
	c.err = cmd.RunChaptersWithDependencies(context.Background(), c.fetcher, 0, 0, url, c.output)
	return nil
}

func iShouldSeeChapters(count int) error {
	c := getChaptersContext()

	got := 0
	for _, line := range strings.Split(c.output.String(), "\n") {
		if strings.Contains(line, ". ") && strings.Contains(line, " - ") {
			got++
		}
	}

	if got != count {
		return fmt.Errorf("expected %d chapter lines, got %d in output:\n%s", count, got, c.output.String())
	}
	return nil
}

func chapterShouldBeFromTo(number int, title, start, end string) error {
	c := getChaptersContext()

	for _, line := range strings.Split(c.output.String(), "\n") {
		if !strings.HasPrefix(strings.TrimSpace(line), fmt.Sprintf("%d.", number)) {
			continue
		}
		for _, want := range []string{title, start, end} {
			if !strings.Contains(line, want) {
				return fmt.Errorf("chapter line %q missing %q", line, want)
			}
		}
		return nil
	}

	return fmt.Errorf("chapter %d not found in output:\n%s", number, c.output.String())
}

func iShouldBeToldNoChaptersWereFound() error {
	c := getChaptersContext()
	if !strings.Contains(c.output.String(), "No chapter timestamps found") {
		return fmt.Errorf("expected no-chapters message, got:\n%s", c.output.String())
	}
	return nil
}

func iShouldReceiveAnErrorAboutTheURL() error {
	c := getChaptersContext()
	if c.err == nil {
		return fmt.Errorf("expected an error but got none")
	}
	if !strings.Contains(c.err.Error(), "YouTube URL") {
		return fmt.Errorf("expected error about the URL, got: %v", c.err)
	}
	return nil
}
