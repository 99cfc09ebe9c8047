package video

import "fmt"

// ClipRequest represents a request to cut a time range out of a local video file
type ClipRequest struct {
	SourcePath string
	Start      Timestamp
	End        Timestamp
}

// NewClipRequest creates a validated ClipRequest
func NewClipRequest(sourcePath string, start, end Timestamp) (*ClipRequest, error) {
	req := &ClipRequest{
		SourcePath: sourcePath,
		Start:      start,
		End:        end,
	}

	if err := req.Validate(); err != nil {
		return nil, err
	}

	return req, nil
}

// Validate checks that the clip request is valid
func (r *ClipRequest) Validate() error {
	if r.SourcePath == "" {
		return fmt.Errorf("source path is required")
	}

	if !r.End.After(r.Start) {
		return fmt.Errorf("end time %s must be after start time %s", r.End, r.Start)
	}

	return nil
}

// DurationSeconds returns the length of the requested clip in seconds
func (r *ClipRequest) DurationSeconds() int {
	return r.End.TotalSeconds() - r.Start.TotalSeconds()
}
