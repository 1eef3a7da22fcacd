package notify

import (
	"path/filepath"
	"strings"

	"github.com/bogem/id3v2"
)

// Caption returns a caption for the file at path.
//
// MP3 files are captioned "Artist - Title" from their ID3 tag, falling
// back to whichever of the two is present. Anything else, including MP3s
// without readable tags, gets an empty caption.
func Caption(path string) string {
	if !strings.EqualFold(filepath.Ext(path), ".mp3") {
		return ""
	}

	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return ""
	}
	defer tag.Close()

	artist := strings.TrimSpace(tag.Artist())
	title := strings.TrimSpace(tag.Title())
	switch {
	case artist != "" && title != "":
		return artist + " - " + title
	case title != "":
		return title
	default:
		return artist
	}
}
