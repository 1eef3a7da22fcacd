package model

import (
	"errors"
	"path/filepath"
	"regexp"
	"strings"
)

// Well-known extensions.
const (
	ExtStream  = ".m3u8"
	ExtArchive = ".zip"
	ExtVideo   = ".mp4"
)

// ErrNoFileName is returned when a URL does not name a file.
var ErrNoFileName = errors.New("url does not contain a file name")

// Kind tells the dispatcher which actions apply to a target.
type Kind int

const (
	KindOther Kind = iota
	KindMedia
	KindArchive
	KindStream
)

// String returns a lowercase name for the kind.
func (k Kind) String() string {
	switch k {
	case KindMedia:
		return "media"
	case KindArchive:
		return "archive"
	case KindStream:
		return "stream"
	default:
		return "other"
	}
}

// Target is a single URL resolved against the output directory.
type Target struct {
	// URL is the input URL, unchanged.
	URL string

	// FileName is the sanitized file name taken from the URL.
	FileName string

	// Ext is the lower-cased extension of FileName, including the dot.
	Ext string

	// Kind selects the post-download actions.
	Kind Kind

	// OutputPath is where the downloaded (or muxed) file is written.
	// For streams the ".m3u8" part of the name is replaced with ".mp4".
	OutputPath string
}

// NewTarget classifies url and computes its output path inside dir.
//
// A URL is treated as an HLS stream when it contains ".m3u8" anywhere,
// even if the file name itself has another extension.
func NewTarget(url, dir string, openExts []string) (*Target, error) {
	name := sanitizeFileName(FileNameFromURL(url))
	if name == "" {
		return nil, ErrNoFileName
	}

	t := &Target{
		URL:      url,
		FileName: name,
		Ext:      strings.ToLower(filepath.Ext(name)),
	}

	switch {
	case strings.Contains(url, ExtStream) || t.Ext == ExtStream:
		t.Kind = KindStream
		t.OutputPath = filepath.Join(dir, streamFileName(name))
		return t, nil
	case t.Ext == ExtArchive:
		t.Kind = KindArchive
	case hasExt(t.Ext, openExts):
		t.Kind = KindMedia
	default:
		t.Kind = KindOther
	}

	t.OutputPath = filepath.Join(dir, name)
	return t, nil
}

// FileNameFromURL returns the last path segment of url without its query string.
//
//	FileNameFromURL("https://host/a/720p.zip?token=1") // "720p.zip"
func FileNameFromURL(url string) string {
	name := url
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	if i := strings.Index(name, "?"); i >= 0 {
		name = name[:i]
	}
	return name
}

// IsOpenable reports whether name ends with one of openExts, ignoring case.
func IsOpenable(name string, openExts []string) bool {
	lower := strings.ToLower(name)
	for _, ext := range openExts {
		if ext != "" && strings.HasSuffix(lower, strings.ToLower(ext)) {
			return true
		}
	}
	return false
}

// streamFileName swaps ".m3u8" for ".mp4" so ffmpeg can pick the muxer from
// the output name.
func streamFileName(name string) string {
	name = strings.ReplaceAll(name, ExtStream, ExtVideo)
	if !strings.EqualFold(filepath.Ext(name), ExtVideo) {
		name += ExtVideo
	}
	return name
}

func hasExt(ext string, exts []string) bool {
	for _, e := range exts {
		if strings.EqualFold(ext, e) {
			return true
		}
	}
	return false
}

var (
	invalidChars  = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)
	trailingDots  = regexp.MustCompile(`\.+$`)
	repeatedSpace = regexp.MustCompile(`\s+`)
)

// sanitizeFileName removes or replaces characters that are invalid in file names.
//
// The following transformations are applied:
//   - Invalid characters (<>:"/\|?* and control chars) are replaced with underscore
//   - Trailing dots are removed (Windows limitation, also rejects "." and "..")
//   - Multiple whitespace is collapsed to single space
//   - Surrounding whitespace is removed
func sanitizeFileName(name string) string {
	name = invalidChars.ReplaceAllString(name, "_")
	name = trailingDots.ReplaceAllString(name, "")
	name = repeatedSpace.ReplaceAllString(name, " ")
	return strings.TrimSpace(name)
}
