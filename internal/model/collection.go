package model

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// Collection is a subject's recordings laid out for export.
//
// Paths are computed when the collection is created and as clips are added:
//
//	c := NewCollection("/exports", "Emma", PlaylistFormatM3U)
//	// c.Path = "/exports/Emma"
//	clip := c.Add(StageKey("Emma", StageFullName), rec)
//	// clip.Path = "/exports/Emma/01 Emma - Full name.mp3"
type Collection struct {
	// DisplayName is the child's name as entered.
	DisplayName string

	// Title is the playlist title.
	Title string

	// Clips contains the clips in deck order.
	Clips []*Clip

	// Path is the directory the clips are written to.
	Path string

	// PlaylistPath is the computed playlist file path.
	PlaylistPath string

	// CoverPath is the computed path of the child photo.
	CoverPath string
}

// Clip is one exported recording.
type Clip struct {
	// Number is the 1-based order within the collection.
	Number int

	// Title is the display title (e.g. "Letter E (1)").
	Title string

	// Key addresses the clip in the store.
	Key RecordingKey

	// Recording is the clip content.
	Recording Recording

	// Path is the computed file path including extension.
	Path string
}

// PlaylistFormat represents supported playlist file formats.
type PlaylistFormat int

const (
	// PlaylistFormatM3U creates .m3u playlist files (most widely supported).
	PlaylistFormatM3U PlaylistFormat = iota

	// PlaylistFormatPLS creates .pls playlist files (used by Winamp).
	PlaylistFormatPLS

	// PlaylistFormatWPL creates .wpl playlist files (Windows Media Player).
	PlaylistFormatWPL

	// PlaylistFormatZPL creates .zpl playlist files (Zune Media Player).
	PlaylistFormatZPL
)

// ParsePlaylistFormat maps a settings string ("m3u", "pls", "wpl", "zpl")
// to a PlaylistFormat. Unknown values fall back to M3U.
func ParsePlaylistFormat(s string) PlaylistFormat {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pls":
		return PlaylistFormatPLS
	case "wpl":
		return PlaylistFormatWPL
	case "zpl":
		return PlaylistFormatZPL
	default:
		return PlaylistFormatM3U
	}
}

// Extension returns the file extension for the playlist format, including the dot.
func (pf PlaylistFormat) Extension() string {
	switch pf {
	case PlaylistFormatM3U:
		return ".m3u"
	case PlaylistFormatPLS:
		return ".pls"
	case PlaylistFormatWPL:
		return ".wpl"
	case PlaylistFormatZPL:
		return ".zpl"
	default:
		return ".m3u"
	}
}

// NewCollection creates an empty collection rooted at dir/<displayName>.
func NewCollection(dir, displayName string, format PlaylistFormat) *Collection {
	name := sanitizeFileName(displayName)
	if name == "" {
		name = "unnamed"
	}

	c := &Collection{
		DisplayName: displayName,
		Title:       fmt.Sprintf("My name is %s", displayName),
		Path:        filepath.Join(dir, name),
	}
	if len(c.Path) >= 248 {
		c.Path = c.Path[:247]
	}
	c.PlaylistPath = filepath.Join(c.Path, name+format.Extension())
	c.CoverPath = filepath.Join(c.Path, "cover.jpg")
	return c
}

// Add appends a clip and computes its file path.
func (c *Collection) Add(key RecordingKey, rec Recording) *Clip {
	clip := &Clip{
		Number:    len(c.Clips) + 1,
		Title:     key.Title(),
		Key:       key,
		Recording: rec,
	}
	clip.Path = c.clipPath(clip)
	c.Clips = append(c.Clips, clip)
	return clip
}

// clipPath computes "NN <name> - <title><ext>" inside the collection folder.
func (c *Collection) clipPath(clip *Clip) string {
	ext := MimeExtension(clip.Recording.MimeType)
	fileName := sanitizeFileName(fmt.Sprintf("%02d %s - %s", clip.Number, c.DisplayName, clip.Title))
	filePath := filepath.Join(c.Path, fileName+ext)

	// Limit total path length for Windows compatibility (MAX_PATH = 260)
	if len(filePath) >= 260 {
		filePath = filepath.Join(c.Path, fmt.Sprintf("%02d%s", clip.Number, ext))
	}
	return filePath
}

// sanitizeFileName removes or replaces characters that are invalid in file/folder names.
//
// The following transformations are applied:
//   - Invalid characters (<>:"/\|?* and control chars) are replaced with underscore
//   - Trailing dots are removed (Windows limitation)
//   - Multiple whitespace is collapsed to single space
//   - Surrounding whitespace is removed
//
// Example:
//
//	sanitizeFileName("Song: Part 1/2") // Returns "Song_ Part 1_2"
func sanitizeFileName(name string) string {
	name = invalidFileChars.ReplaceAllString(name, "_")
	name = trailingDots.ReplaceAllString(name, "")
	name = multiSpace.ReplaceAllString(name, " ")
	return strings.TrimSpace(name)
}

var (
	invalidFileChars = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)
	trailingDots     = regexp.MustCompile(`\.+$`)
	multiSpace       = regexp.MustCompile(`\s+`)
)
