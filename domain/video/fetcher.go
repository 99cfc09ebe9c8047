package video

import "context"

// MetadataFetcher defines the interface for retrieving video metadata
// This is a port that can be implemented by different infrastructure adapters
type MetadataFetcher interface {
	// Fetch returns the metadata for the video at the given URL
	Fetch(ctx context.Context, url string) (*Info, error)
}
