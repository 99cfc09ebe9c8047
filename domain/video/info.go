package video

import "fmt"

// Info holds the metadata the extractor needs about a video
type Info struct {
	ID          string
	Title       string
	Description string
	Duration    int // seconds, 0 when unknown
	Uploader    string
	IsLive      bool
}

// Validate checks that the video can be processed.
// maxDuration is a cap in seconds; 0 disables the check.
func (i *Info) Validate(maxDuration int) error {
	if i.IsLive {
		return fmt.Errorf("live streams are not supported")
	}

	if maxDuration > 0 && i.Duration > maxDuration {
		return fmt.Errorf("video too long (%d minutes); maximum allowed is %d minutes",
			i.Duration/60, maxDuration/60)
	}

	return nil
}

// DurationTimestamp returns the video duration as a Timestamp
func (i *Info) DurationTimestamp() Timestamp {
	return TimestampFromSeconds(i.Duration)
}
