package video

import (
	"context"
	"fmt"

	"yt-segment-extractor/domain/video"
)

// InfoService fetches and validates video metadata
type InfoService struct {
	fetcher     video.MetadataFetcher
	maxDuration int // seconds, 0 = unlimited
}

// NewInfoService creates a new InfoService
func NewInfoService(fetcher video.MetadataFetcher, maxDuration int) *InfoService {
	return &InfoService{
		fetcher:     fetcher,
		maxDuration: maxDuration,
	}
}

// Fetch returns validated metadata for the video at the given URL
func (s *InfoService) Fetch(ctx context.Context, url string) (*video.Info, error) {
	if _, err := video.ParseVideoID(url); err != nil {
		return nil, err
	}

	info, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch video info: %w", err)
	}

	if err := info.Validate(s.maxDuration); err != nil {
		return nil, err
	}

	return info, nil
}
