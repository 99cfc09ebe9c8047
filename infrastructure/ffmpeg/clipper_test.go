package ffmpeg

import (
	"context"
	"errors"
	"strings"
	"testing"

	"yt-segment-extractor/domain/video"
)

// mockCommandRunner records invocations and plays back canned output
type mockCommandRunner struct {
	name      string
	args      []string
	runErr    error
	output    []byte
	outputErr error
}

func (m *mockCommandRunner) Run(ctx context.Context, name string, args ...string) error {
	m.name = name
	m.args = args
	return m.runErr
}

func (m *mockCommandRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	m.name = name
	m.args = args
	return m.output, m.outputErr
}

func TestClip(t *testing.T) {
	runner := &mockCommandRunner{}
	clipper := NewClipper(WithCommandRunner(runner))

	req, err := video.NewClipRequest("/tmp/source.mp4",
		video.Timestamp{Minutes: 1, Seconds: 30},
		video.Timestamp{Hours: 1, Minutes: 2, Seconds: 3})
	if err != nil {
		t.Fatal(err)
	}

	if err := clipper.Clip(context.Background(), req, "/tmp/out.mp4"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if runner.name != "ffmpeg" {
		t.Errorf("command = %q, want %q", runner.name, "ffmpeg")
	}

	got := strings.Join(runner.args, " ")
	want := "-i /tmp/source.mp4 -ss 1:30 -to 1:02:03 -c copy -y /tmp/out.mp4"
	if got != want {
		t.Errorf("args = %q, want %q", got, want)
	}
}

func TestClipCommandFailure(t *testing.T) {
	runner := &mockCommandRunner{runErr: errors.New("exit status 1")}
	clipper := NewClipper(WithCommandRunner(runner))

	req, err := video.NewClipRequest("/tmp/source.mp4", video.Timestamp{}, video.Timestamp{Seconds: 10})
	if err != nil {
		t.Fatal(err)
	}

	err = clipper.Clip(context.Background(), req, "/tmp/out.mp4")
	if err == nil || !strings.Contains(err.Error(), "ffmpeg clip failed") {
		t.Errorf("error = %v, want wrapped clip failure", err)
	}
}

func TestClipperCustomPath(t *testing.T) {
	runner := &mockCommandRunner{}
	clipper := NewClipper(WithFFmpegPath("/usr/local/bin/ffmpeg"), WithCommandRunner(runner))

	req, err := video.NewClipRequest("/tmp/source.mp4", video.Timestamp{}, video.Timestamp{Seconds: 10})
	if err != nil {
		t.Fatal(err)
	}

	if err := clipper.Clip(context.Background(), req, "/tmp/out.mp4"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if runner.name != "/usr/local/bin/ffmpeg" {
		t.Errorf("command = %q, want %q", runner.name, "/usr/local/bin/ffmpeg")
	}
}

func TestClipperVerifyInstalled(t *testing.T) {
	runner := &mockCommandRunner{output: []byte("ffmpeg version 7.1")}
	clipper := NewClipper(WithCommandRunner(runner))

	if err := clipper.VerifyInstalled(context.Background()); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if len(runner.args) != 1 || runner.args[0] != "-version" {
		t.Errorf("args = %v, want [-version]", runner.args)
	}

	runner.outputErr = errors.New("executable file not found")
	if err := clipper.VerifyInstalled(context.Background()); err == nil {
		t.Error("expected error when ffmpeg is missing")
	}
}
