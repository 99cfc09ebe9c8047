package video

import "context"

// Clipper defines the interface for cutting a segment out of a local file
// This is a port that can be implemented by different infrastructure adapters
type Clipper interface {
	// Clip cuts the requested range out of the source and saves to outputPath
	Clip(ctx context.Context, req *ClipRequest, outputPath string) error
}

// DurationProber reports the playable length of a local media file
type DurationProber interface {
	// Duration returns the media duration in seconds
	Duration(ctx context.Context, path string) (float64, error)
}

// FileChecker defines the interface for checking file existence
// This is used to validate that downloaded files exist before clipping
type FileChecker interface {
	// Exists returns true if the file exists
	Exists(path string) bool
}
