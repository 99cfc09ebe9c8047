package video

import (
	"context"

	"yt-segment-extractor/domain/video"
)

// ChapterService lists the chapters found in a video's description
type ChapterService struct {
	info        *InfoService
	maxChapters int // 0 = unlimited
}

// NewChapterService creates a new ChapterService
func NewChapterService(fetcher video.MetadataFetcher, maxDuration, maxChapters int) *ChapterService {
	return &ChapterService{
		info:        NewInfoService(fetcher, maxDuration),
		maxChapters: maxChapters,
	}
}

// List fetches the video metadata and parses chapters from its description
func (s *ChapterService) List(ctx context.Context, url string) (*video.Info, video.ChapterList, error) {
	info, err := s.info.Fetch(ctx, url)
	if err != nil {
		return nil, nil, err
	}

	chapters := video.ParseChaptersWithLimit(info.Description, s.maxChapters)
	return info, chapters, nil
}
