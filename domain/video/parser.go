package video

import (
	"regexp"
	"sort"
	"strings"
)

var (
	// chapterLineRegex matches the most common chapter form:
	// a timestamp at the start of a line followed by the title
	chapterLineRegex = regexp.MustCompile(`^(\d{1,2}:\d{2}(?::\d{2})?)\s+(.+)$`)

	// anyTimestampRegex finds timestamps anywhere in a line for the
	// fallback forms: "1:23 - Title", "[1:23] Title", "Title - 1:23"
	anyTimestampRegex = regexp.MustCompile(`\d{1,2}:\d{2}(?::\d{2})?`)

	// nextTimestampRegex locates a following timestamp so the title of the
	// current one does not swallow it
	nextTimestampRegex = regexp.MustCompile(`\s+\d{1,2}:\d{2}(?::\d{2})?`)

	leadingSeparatorRegex   = regexp.MustCompile(`^[-–—:\s\[\]()•]+`)
	trailingSeparatorRegex  = regexp.MustCompile(`[,\s\[\]()]+$`)
	separatorRunSuffixRegex = regexp.MustCompile(`[\s\-–—•:\[\]()]+$`)
	digitsOnlyRegex         = regexp.MustCompile(`^\d+$`)
)

// ParseChapters extracts chapter timestamps from a video description.
// Chapters are de-duplicated and returned sorted by start time.
func ParseChapters(description string) ChapterList {
	return ParseChaptersWithLimit(description, 0)
}

// ParseChaptersWithLimit extracts chapters and caps the result at max
// entries. A max of 0 means unlimited.
func ParseChaptersWithLimit(description string, max int) ChapterList {
	var found []Chapter

	for _, line := range strings.Split(description, "\n") {
		line = strings.TrimSpace(line)
		if len(line) < 4 {
			continue
		}

		locs := anyTimestampRegex.FindAllStringIndex(line, -1)
		if len(locs) == 0 {
			continue
		}

		// A single timestamp at the start of the line is the common case
		if len(locs) == 1 {
			if matches := chapterLineRegex.FindStringSubmatch(line); matches != nil {
				if chapter, ok := makeChapter(matches[1], matches[2]); ok {
					found = append(found, chapter)
					continue
				}
			}
		}

		// Fallback: timestamps anywhere in the line, title taken from the
		// text after the timestamp, or before it when nothing follows
		for _, loc := range locs {
			raw := line[loc[0]:loc[1]]

			title := titleAfter(line[loc[1]:])
			if title == "" && loc[0] > 0 {
				title = titleBefore(line[:loc[0]])
			}

			if chapter, ok := makeChapter(raw, title); ok {
				found = append(found, chapter)
			}
		}
	}

	chapters := dedupeChapters(found)

	sort.SliceStable(chapters, func(i, j int) bool {
		return chapters[i].Start.Before(chapters[j].Start)
	})

	if max > 0 && len(chapters) > max {
		chapters = chapters[:max]
	}

	return chapters
}

// makeChapter validates and cleans a raw timestamp/title pair
func makeChapter(rawTimestamp, rawTitle string) (Chapter, bool) {
	start, err := ParseTimestamp(rawTimestamp)
	if err != nil {
		return Chapter{}, false
	}

	title := cleanChapterTitle(rawTitle)
	if !isUsableTitle(title) {
		return Chapter{}, false
	}

	return Chapter{Start: start, Title: title}, true
}

// titleAfter extracts a chapter title from the text following a timestamp,
// stopping before any further timestamp on the same line
func titleAfter(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	if loc := nextTimestampRegex.FindStringIndex(text); loc != nil {
		text = text[:loc[0]]
	}
	return strings.TrimSpace(text)
}

// titleBefore extracts a chapter title from the text preceding a timestamp
func titleBefore(text string) string {
	text = strings.TrimSpace(text)
	return separatorRunSuffixRegex.ReplaceAllString(text, "")
}

// cleanChapterTitle strips separator punctuation from both ends of a title
func cleanChapterTitle(title string) string {
	title = strings.TrimSpace(title)
	title = leadingSeparatorRegex.ReplaceAllString(title, "")
	title = trailingSeparatorRegex.ReplaceAllString(title, "")
	return title
}

// isUsableTitle filters out titles that are URLs, bare numbers or too short
func isUsableTitle(title string) bool {
	if len(title) <= 1 {
		return false
	}
	if strings.HasPrefix(title, "http") {
		return false
	}
	if digitsOnlyRegex.MatchString(title) {
		return false
	}
	return true
}

// dedupeChapters drops repeated chapters. Descriptions often repeat the same
// listing in multiple formats, so two entries with the same start and the
// same leading title words count as one.
func dedupeChapters(chapters []Chapter) ChapterList {
	type key struct {
		seconds int
		title   string
	}

	seen := make(map[key]bool)
	var unique ChapterList

	for _, c := range chapters {
		words := strings.Fields(strings.ToLower(c.Title))
		if len(words) > 3 {
			words = words[:3]
		}
		k := key{seconds: c.Start.TotalSeconds(), title: strings.Join(words, " ")}

		if seen[k] {
			continue
		}
		seen[k] = true
		unique = append(unique, c)
	}

	return unique
}
