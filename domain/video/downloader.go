package video

import "context"

// SegmentDownloader defines the interface for downloading video content
// This is a port that can be implemented by different infrastructure adapters
type SegmentDownloader interface {
	// DownloadSegment downloads only the start-end range of the video.
	// outputBase is a path without extension; the resulting file path,
	// including the container extension, is returned.
	DownloadSegment(ctx context.Context, url string, start, end Timestamp, outputBase string) (string, error)

	// DownloadVideo downloads the whole video. outputBase is a path without
	// extension; the resulting file path is returned.
	DownloadVideo(ctx context.Context, url string, outputBase string) (string, error)
}
