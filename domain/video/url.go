package video

import (
	"fmt"
	"regexp"
)

// watchURLRegexes match the YouTube URL forms the extractor accepts
var watchURLRegexes = []*regexp.Regexp{
	regexp.MustCompile(`(?:https?://)?(?:www\.)?youtube\.com/watch\?(?:.*&)?v=([a-zA-Z0-9_-]+)`),
	regexp.MustCompile(`(?:https?://)?(?:www\.)?youtu\.be/([a-zA-Z0-9_-]+)`),
}

// ParseVideoID extracts the video ID from a YouTube watch URL.
// Both youtube.com/watch?v= and youtu.be/ short links are accepted.
func ParseVideoID(url string) (string, error) {
	if url == "" {
		return "", fmt.Errorf("video URL is required")
	}

	for _, re := range watchURLRegexes {
		if matches := re.FindStringSubmatch(url); matches != nil {
			return matches[1], nil
		}
	}

	return "", fmt.Errorf("%q is not a valid YouTube URL", url)
}

// IsValidURL returns true if the URL is an accepted YouTube watch URL
func IsValidURL(url string) bool {
	_, err := ParseVideoID(url)
	return err == nil
}
