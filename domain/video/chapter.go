package video

import "fmt"

// DefaultLastChapterSeconds is the assumed length of the final chapter
// when the video duration is unknown
const DefaultLastChapterSeconds = 60

// Chapter is a titled position in a video, taken from its description
type Chapter struct {
	Start Timestamp
	Title string
}

// ChapterList is an ordered list of chapters for one video
type ChapterList []Chapter

// SegmentEnd returns the end timestamp for the chapter at index i.
// A chapter runs until the next chapter starts; the last chapter runs to the
// video duration when known, otherwise a fixed fallback length is assumed.
func (l ChapterList) SegmentEnd(i int, videoDuration int) (Timestamp, error) {
	if i < 0 || i >= len(l) {
		return Timestamp{}, fmt.Errorf("chapter index %d out of range (have %d chapters)", i, len(l))
	}

	if i+1 < len(l) {
		return l[i+1].Start, nil
	}

	start := l[i].Start
	if videoDuration > start.TotalSeconds() {
		return TimestampFromSeconds(videoDuration), nil
	}

	return start.AddSeconds(DefaultLastChapterSeconds), nil
}

// SegmentRange returns the start and end timestamps for the chapter at index i
func (l ChapterList) SegmentRange(i int, videoDuration int) (start, end Timestamp, err error) {
	end, err = l.SegmentEnd(i, videoDuration)
	if err != nil {
		return Timestamp{}, Timestamp{}, err
	}
	return l[i].Start, end, nil
}
