package video

import (
	"fmt"
	"regexp"
	"strconv"
)

// Timestamp represents a position in a video, parsed from the compact
// forms YouTube descriptions use: M:SS, MM:SS or H:MM:SS.
type Timestamp struct {
	Hours   int
	Minutes int
	Seconds int
}

var (
	// minutesSecondsRegex matches M:SS through MMM:SS
	minutesSecondsRegex = regexp.MustCompile(`^(\d{1,3}):(\d{2})$`)
	// hoursMinutesSecondsRegex matches H:MM:SS and HH:MM:SS
	hoursMinutesSecondsRegex = regexp.MustCompile(`^(\d{1,2}):(\d{2}):(\d{2})$`)
)

// ParseTimestamp parses a timestamp string in M:SS or H:MM:SS form
func ParseTimestamp(s string) (Timestamp, error) {
	if matches := hoursMinutesSecondsRegex.FindStringSubmatch(s); matches != nil {
		hours, _ := strconv.Atoi(matches[1])
		minutes, _ := strconv.Atoi(matches[2])
		seconds, _ := strconv.Atoi(matches[3])

		if hours > 23 {
			return Timestamp{}, fmt.Errorf("invalid timestamp %q: hours must be 0-23", s)
		}
		if minutes > 59 {
			return Timestamp{}, fmt.Errorf("invalid timestamp %q: minutes must be 0-59", s)
		}
		if seconds > 59 {
			return Timestamp{}, fmt.Errorf("invalid timestamp %q: seconds must be 0-59", s)
		}

		return Timestamp{Hours: hours, Minutes: minutes, Seconds: seconds}, nil
	}

	if matches := minutesSecondsRegex.FindStringSubmatch(s); matches != nil {
		minutes, _ := strconv.Atoi(matches[1])
		seconds, _ := strconv.Atoi(matches[2])

		if seconds > 59 {
			return Timestamp{}, fmt.Errorf("invalid timestamp %q: seconds must be 0-59", s)
		}

		return Timestamp{
			Hours:   minutes / 60,
			Minutes: minutes % 60,
			Seconds: seconds,
		}, nil
	}

	return Timestamp{}, fmt.Errorf("invalid timestamp format %q: expected M:SS or H:MM:SS", s)
}

// TimestampFromSeconds converts a total-seconds value into a Timestamp
func TimestampFromSeconds(total int) Timestamp {
	if total < 0 {
		total = 0
	}
	return Timestamp{
		Hours:   total / 3600,
		Minutes: (total % 3600) / 60,
		Seconds: total % 60,
	}
}

// String returns the timestamp in H:MM:SS form, or M:SS when under an hour
func (t Timestamp) String() string {
	if t.Hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", t.Hours, t.Minutes, t.Seconds)
	}
	return fmt.Sprintf("%d:%02d", t.Minutes, t.Seconds)
}

// TotalSeconds returns the timestamp as total seconds
func (t Timestamp) TotalSeconds() int {
	return t.Hours*3600 + t.Minutes*60 + t.Seconds
}

// IsZero returns true if the timestamp is 0:00
func (t Timestamp) IsZero() bool {
	return t.Hours == 0 && t.Minutes == 0 && t.Seconds == 0
}

// Before returns true if t is before other
func (t Timestamp) Before(other Timestamp) bool {
	return t.TotalSeconds() < other.TotalSeconds()
}

// After returns true if t is after other
func (t Timestamp) After(other Timestamp) bool {
	return t.TotalSeconds() > other.TotalSeconds()
}

// AddSeconds returns a new timestamp offset by the given number of seconds
func (t Timestamp) AddSeconds(n int) Timestamp {
	return TimestampFromSeconds(t.TotalSeconds() + n)
}
