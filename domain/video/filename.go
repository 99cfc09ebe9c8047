package video

import (
	"regexp"
	"strings"
)

var (
	invalidFilenameCharsRegex = regexp.MustCompile(`[<>:"/\\|?*]`)
	urlInTitleRegex           = regexp.MustCompile(`https?://\S+`)
	whitespaceRunRegex        = regexp.MustCompile(`\s+`)
	quoteCharsRegex           = regexp.MustCompile("[\"'`,]")
	bracketCharsRegex         = regexp.MustCompile(`[{}\[\];]`)
)

// CleanTitle turns a chapter title into a filename that is safe on every
// platform, including the Windows reserved-character set. Parentheses are
// kept so music credits like "(feat. X)" survive.
func CleanTitle(title string) string {
	cleaned := urlInTitleRegex.ReplaceAllString(title, "")
	cleaned = invalidFilenameCharsRegex.ReplaceAllString(cleaned, "_")
	cleaned = strings.TrimSpace(whitespaceRunRegex.ReplaceAllString(cleaned, " "))
	cleaned = quoteCharsRegex.ReplaceAllString(cleaned, "")
	cleaned = bracketCharsRegex.ReplaceAllString(cleaned, "_")
	return cleaned
}
