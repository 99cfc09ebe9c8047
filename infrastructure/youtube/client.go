package youtube

import (
	"context"
	"fmt"
	"regexp"
	"strconv"

	"yt-segment-extractor/domain/video"

	"google.golang.org/api/option"
	youtubeapi "google.golang.org/api/youtube/v3"
)

// VideosService defines the interface for YouTube Data API video lookups
// This allows mocking the API in tests
type VideosService interface {
	Get(ctx context.Context, id string) (*youtubeapi.Video, error)
}

// GoogleVideosService is the production implementation using the
// YouTube Data API v3
type GoogleVideosService struct {
	service *youtubeapi.Service
}

// Get fetches a single video by ID
func (s *GoogleVideosService) Get(ctx context.Context, id string) (*youtubeapi.Video, error) {
	r, err := s.service.Videos.
		List([]string{"snippet", "contentDetails", "liveStreamingDetails"}).
		Id(id).
		Context(ctx).
		Do()
	if err != nil {
		return nil, err
	}
	if len(r.Items) == 0 {
		return nil, fmt.Errorf("video %s not found or unavailable", id)
	}
	return r.Items[0], nil
}

// Fetcher implements video.MetadataFetcher using the YouTube Data API.
// It is an alternative to the yt-dlp fetcher for setups with an API key
// or OAuth credentials.
type Fetcher struct {
	videos VideosService
}

// FetcherOption is a functional option for configuring Fetcher
type FetcherOption func(*Fetcher)

// WithVideosService sets a custom videos service (for testing)
func WithVideosService(svc VideosService) FetcherOption {
	return func(f *Fetcher) {
		f.videos = svc
	}
}

// NewFetcherWithAPIKey creates a Fetcher authenticated with an API key
func NewFetcherWithAPIKey(ctx context.Context, apiKey string, opts ...FetcherOption) (*Fetcher, error) {
	f := &Fetcher{}

	for _, opt := range opts {
		opt(f)
	}

	if f.videos == nil {
		svc, err := youtubeapi.NewService(ctx, option.WithAPIKey(apiKey))
		if err != nil {
			return nil, fmt.Errorf("unable to create YouTube service: %w", err)
		}
		f.videos = &GoogleVideosService{service: svc}
	}

	return f, nil
}

// NewFetcherWithOAuth creates a Fetcher using OAuth 2.0 user authentication
func NewFetcherWithOAuth(ctx context.Context, credentialsPath, tokenPath string, opts ...FetcherOption) (*Fetcher, error) {
	f := &Fetcher{}

	for _, opt := range opts {
		opt(f)
	}

	if f.videos == nil {
		svc, err := newOAuthYouTubeService(ctx, OAuthConfig{
			CredentialsFile: credentialsPath,
			TokenFile:       tokenPath,
		})
		if err != nil {
			return nil, err
		}
		f.videos = svc
	}

	return f, nil
}

// Fetch implements video.MetadataFetcher
func (f *Fetcher) Fetch(ctx context.Context, url string) (*video.Info, error) {
	id, err := video.ParseVideoID(url)
	if err != nil {
		return nil, err
	}

	v, err := f.videos.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("YouTube API lookup failed: %w", err)
	}

	info := &video.Info{ID: v.Id}

	if v.Snippet != nil {
		info.Title = v.Snippet.Title
		info.Description = v.Snippet.Description
		info.Uploader = v.Snippet.ChannelTitle
		info.IsLive = v.Snippet.LiveBroadcastContent == "live"
	}

	if v.ContentDetails != nil {
		duration, err := parseISODuration(v.ContentDetails.Duration)
		if err != nil {
			return nil, err
		}
		info.Duration = duration
	}

	return info, nil
}

// isoDurationRegex matches the ISO 8601 durations the API returns,
// e.g. PT1H2M3S or P1DT2H
var isoDurationRegex = regexp.MustCompile(`^P(?:(\d+)D)?(?:T(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?)?$`)

// parseISODuration converts an ISO 8601 duration into total seconds
func parseISODuration(s string) (int, error) {
	matches := isoDurationRegex.FindStringSubmatch(s)
	if matches == nil {
		return 0, fmt.Errorf("unexpected video duration format %q", s)
	}

	total := 0
	for i, unit := range []int{86400, 3600, 60, 1} {
		if matches[i+1] == "" {
			continue
		}
		n, _ := strconv.Atoi(matches[i+1])
		total += n * unit
	}

	return total, nil
}

// Ensure Fetcher implements video.MetadataFetcher
var _ video.MetadataFetcher = (*Fetcher)(nil)
