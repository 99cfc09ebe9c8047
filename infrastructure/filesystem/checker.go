package filesystem

import (
	"io"
	"os"

	"yt-segment-extractor/domain/video"
)

// Checker implements video.FileChecker using the os package
type Checker struct{}

// NewChecker creates a new filesystem checker
func NewChecker() *Checker {
	return &Checker{}
}

// Exists returns true if the file exists
func (c *Checker) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Size returns the file size in bytes, or 0 when the file cannot be stat'd
func (c *Checker) Size(path string) int64 {
	info, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return info.Size()
}

// EnsureDir creates the directory if it does not exist
func (c *Checker) EnsureDir(path string) error {
	return os.MkdirAll(path, 0755)
}

// Remove deletes the file; a missing file is not an error
func (c *Checker) Remove(path string) error {
	err := os.Remove(path)
	if err != nil && os.IsNotExist(err) {
		return nil
	}
	return err
}

// Move renames the file, falling back to copy-and-delete when the source
// and destination are on different filesystems
func (c *Checker) Move(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}

	return os.Remove(src)
}

// Ensure Checker implements video.FileChecker
var _ video.FileChecker = (*Checker)(nil)
